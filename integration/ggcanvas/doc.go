// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggcanvas shows a ggedit editor in a gogpu GPU-accelerated window.
//
// A View owns an editor and a gg ggcanvas.Canvas. The editor paints its
// display, selection decorations included, straight into the canvas's
// gg.Context; the canvas uploads the pixels to a GPU texture that is drawn
// into the window. The data flow is:
//
//	Editor (layers) -> gg.Context (CPU) -> GPU Texture -> Window
//
// # Usage
//
//	view, err := ggcanvas.New(app.GPUContextProvider(), ggedit.WithCanvasSize(1200, 630))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer view.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    view.RenderToPosition(dc.AsTextureDrawer(), 40, 40)
//	})
//
// Input events are forwarded to view.Editor() in window coordinates; the
// view keeps the editor's viewport offset in step with the position the
// canvas is drawn at.
//
// # Thread Safety
//
// The editor is safe for concurrent use. The View's render methods must be
// called from the render loop goroutine only.
//
// # Performance Notes
//
//   - The editor repaints only after a change.
//   - The texture is uploaded only after a repaint.
package ggcanvas
