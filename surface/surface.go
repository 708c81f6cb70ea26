// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/ggedit/geom"
)

// Surface is the drawing target of the render pipeline.
//
// Surfaces are NOT thread-safe. The editor draws from one goroutine at a
// time under its own lock.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear fills the entire surface with c. A nil color clears to
	// transparent.
	Clear(c color.Color)

	// DrawBitmap scales img to fill dst and then maps it through m.
	DrawBitmap(img image.Image, m gg.Matrix, dst geom.Rect)

	// DrawText draws s with the top of its first line at the top of dst,
	// then maps it through m. Text is not clipped to dst.
	DrawText(s string, style TextStyle, m gg.Matrix, dst geom.Rect)

	// StrokeRect strokes the outline of r. No transform is applied.
	StrokeRect(r geom.Rect, style StrokeStyle)

	// FillRect fills r. No transform is applied.
	FillRect(r geom.Rect, c color.Color)

	// StrokeLine strokes the segment from a to b.
	StrokeLine(a, b gg.Point, style StrokeStyle)

	// Resize changes the surface dimensions. Content is discarded.
	Resize(width, height int) error

	// Image returns a copy of the current contents.
	Image() image.Image
}

// TextStyle describes how DrawText renders a string.
type TextStyle struct {
	// Face is the resolved font face. Raster surfaces skip text with a nil
	// face.
	Face text.Face

	// Family and Size are the requested font, kept for inspection.
	Family string
	Size   float64

	// Color is the fill color of the glyphs.
	Color color.Color
}

// StrokeStyle describes an outline.
type StrokeStyle struct {
	Color color.Color
	Width float64
}
