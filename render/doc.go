// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws a layer stack onto a surface.
//
// A Pipeline renders one Frame at a time: it clears the surface, paints
// every layer in list order (index 0 at the back) through its render
// matrix, and, when the frame asks for it, paints the selection outline and
// the interaction handles on top of everything.
//
// # Frames
//
// The editor renders two kinds of frames. The interactive view sets
// Decorate so the user sees the selection. Export renders the same layers
// with Decorate unset into a separate surface, so outlines and handles never
// reach the exported image.
//
//	p := render.NewPipeline(render.WithFaces(resolver))
//	p.Render(view, render.Frame{Layers: ls, Selected: sel, Decorate: true})
//	p.Render(offscreen, render.Frame{Layers: ls, Background: color.White})
//
// # Colors
//
// Text colors are CSS-like strings. ParseColor understands #rgb, #rgba,
// #rrggbb, #rrggbbaa and the CSS named colors; anything else renders black
// and logs a warning once per string.
//
// # Thread Safety
//
// A Pipeline is NOT thread-safe. Each pipeline should be used from a single
// goroutine, or external synchronization must be used.
package render
