// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggcanvas

import (
	"fmt"
	"sync/atomic"

	ggc "github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/ggedit"
	"github.com/gogpu/ggedit/internal/logx"
	"github.com/gogpu/ggedit/surface"
	"github.com/gogpu/gpucontext"
)

// View presents an editor through a ggcanvas.Canvas.
type View struct {
	editor *ggedit.Editor
	canvas *ggc.Canvas
	dirty  atomic.Bool
	offset [2]float32
	closed bool
}

// canvasSurface draws into the canvas's context and resizes the canvas
// itself, so its texture follows canvas size changes.
type canvasSurface struct {
	*surface.ContextSurface
	canvas *ggc.Canvas
}

func (s canvasSurface) Resize(w, h int) error {
	return s.canvas.Resize(w, h)
}

// New creates a canvas on provider and an editor that paints into it. The
// editor options are applied as given, except that the display surface and
// the invalidate hook belong to the view.
func New(provider gpucontext.DeviceProvider, opts ...ggedit.Option) (*View, error) {
	canvas, err := ggc.New(provider, ggedit.DefaultCanvasWidth, ggedit.DefaultCanvasHeight)
	if err != nil {
		return nil, err
	}

	v := &View{canvas: canvas}
	v.dirty.Store(true)

	display := canvasSurface{
		ContextSurface: surface.NewContextSurfaceFor(canvas.Context()),
		canvas:         canvas,
	}
	opts = append(opts,
		ggedit.WithSurface(display),
		ggedit.WithInvalidateHook(func() { v.dirty.Store(true) }),
	)
	ed, err := ggedit.New(opts...)
	if err != nil {
		_ = canvas.Close()
		return nil, fmt.Errorf("ggcanvas: %w", err)
	}
	v.editor = ed

	w, h := canvas.Size()
	logx.Logger().Debug("ggcanvas: view created", "width", w, "height", h)
	return v, nil
}

// Editor returns the editor shown by the view.
func (v *View) Editor() *ggedit.Editor { return v.editor }

// Canvas returns the underlying canvas.
func (v *View) Canvas() *ggc.Canvas { return v.canvas }

// RenderTo draws the editor at the window origin.
func (v *View) RenderTo(dc gpucontext.TextureDrawer) error {
	return v.RenderToEx(dc, ggc.DefaultRenderOptions())
}

// RenderToPosition draws the editor with its top-left corner at (x, y).
func (v *View) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	opts := ggc.DefaultRenderOptions()
	opts.X, opts.Y = x, y
	return v.RenderToEx(dc, opts)
}

// RenderToEx repaints the editor if it changed, uploads the canvas and
// draws it. The editor's viewport offset is set to (opts.X, opts.Y).
func (v *View) RenderToEx(dc gpucontext.TextureDrawer, opts ggc.RenderOptions) error {
	if v.closed {
		return ggc.ErrCanvasClosed
	}
	if v.offset != [2]float32{opts.X, opts.Y} {
		v.offset = [2]float32{opts.X, opts.Y}
		v.editor.SetViewportOffset(float64(opts.X), float64(opts.Y))
	}
	if v.dirty.Swap(false) {
		v.editor.Surface()
		v.canvas.MarkDirty()
	}
	return v.canvas.RenderToEx(dc, opts)
}

// Close releases the canvas and its textures. Close is idempotent.
func (v *View) Close() error {
	v.closed = true
	return v.canvas.Close()
}
