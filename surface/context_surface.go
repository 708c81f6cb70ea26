// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/ggedit/geom"
	"github.com/gogpu/ggedit/internal/logx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ContextSurface is a raster Surface backed by a *gg.Context.
//
// Rectangles and lines are drawn as gg paths, so they use gg's analytic
// anti-aliasing and any registered GPU accelerator. gg's own image drawing
// only maps corners and cannot rotate, so bitmaps and text are resampled
// with x/image/draw directly into the context's pixmap.
type ContextSurface struct {
	ctx *gg.Context
}

// NewContextSurface creates a surface with its own context.
func NewContextSurface(width, height int) *ContextSurface {
	return &ContextSurface{ctx: gg.NewContext(width, height)}
}

// NewContextSurfaceFor wraps an existing context, for example the one owned
// by a ggcanvas.Canvas.
func NewContextSurfaceFor(ctx *gg.Context) *ContextSurface {
	return &ContextSurface{ctx: ctx}
}

// Context returns the underlying gg context.
func (s *ContextSurface) Context() *gg.Context { return s.ctx }

// Width returns the surface width in pixels.
func (s *ContextSurface) Width() int { return s.ctx.Width() }

// Height returns the surface height in pixels.
func (s *ContextSurface) Height() int { return s.ctx.Height() }

// Clear fills the surface with c, or transparent when c is nil.
func (s *ContextSurface) Clear(c color.Color) {
	if c == nil {
		s.ctx.Clear()
		return
	}
	s.ctx.ClearWithColor(gg.FromColor(c))
}

// pixels exposes the pixmap as an *image.RGBA without copying. Pending GPU
// work is flushed first so direct writes land on top of it.
func (s *ContextSurface) pixels() *image.RGBA {
	_ = s.ctx.FlushGPU()
	pm := s.ctx.ResizeTarget()
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: pm.Width() * 4,
		Rect:   image.Rect(0, 0, pm.Width(), pm.Height()),
	}
}

// DrawBitmap scales img to dst and maps it through m with bilinear
// filtering.
func (s *ContextSurface) DrawBitmap(img image.Image, m gg.Matrix, dst geom.Rect) {
	if img == nil || dst.Empty() {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	s2d := m.
		Multiply(gg.Translate(dst.X, dst.Y)).
		Multiply(gg.Scale(dst.W/float64(b.Dx()), dst.H/float64(b.Dy()))).
		Multiply(gg.Translate(-float64(b.Min.X), -float64(b.Min.Y)))
	xdraw.BiLinear.Transform(s.pixels(), aff3(s2d), img, b, xdraw.Over, nil)
}

// DrawText rasterizes s offscreen with gg's text package and maps the
// result through m. The first line's top sits at dst.Y.
func (s *ContextSurface) DrawText(str string, style TextStyle, m gg.Matrix, dst geom.Rect) {
	if str == "" || style.Face == nil {
		return
	}
	w, h := text.Measure(str, style.Face)
	if w <= 0 || h <= 0 {
		return
	}
	col := style.Color
	if col == nil {
		col = color.Black
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w))+1, int(math.Ceil(h))+1))
	text.Draw(glyphs, str, style.Face, 0, style.Face.Metrics().Ascent, col)

	s2d := m.Multiply(gg.Translate(dst.X, dst.Y))
	xdraw.BiLinear.Transform(s.pixels(), aff3(s2d), glyphs, glyphs.Bounds(), xdraw.Over, nil)
}

// StrokeRect strokes the outline of r in surface coordinates.
func (s *ContextSurface) StrokeRect(r geom.Rect, style StrokeStyle) {
	s.path(func() {
		s.ctx.SetColor(style.Color)
		s.ctx.SetLineWidth(style.Width)
		s.ctx.DrawRectangle(r.X, r.Y, r.W, r.H)
		s.report("stroke rect", s.ctx.Stroke())
	})
}

// FillRect fills r in surface coordinates.
func (s *ContextSurface) FillRect(r geom.Rect, c color.Color) {
	s.path(func() {
		s.ctx.SetColor(c)
		s.ctx.DrawRectangle(r.X, r.Y, r.W, r.H)
		s.report("fill rect", s.ctx.Fill())
	})
}

// StrokeLine strokes the segment from a to b.
func (s *ContextSurface) StrokeLine(a, b gg.Point, style StrokeStyle) {
	s.path(func() {
		s.ctx.SetColor(style.Color)
		s.ctx.SetLineWidth(style.Width)
		s.ctx.DrawLine(a.X, a.Y, b.X, b.Y)
		s.report("stroke line", s.ctx.Stroke())
	})
}

// path runs fn with an identity transform and restores the context state.
func (s *ContextSurface) path(fn func()) {
	s.ctx.Push()
	s.ctx.Identity()
	fn()
	s.ctx.Pop()
}

func (s *ContextSurface) report(op string, err error) {
	if err != nil {
		logx.Logger().Debug("surface: draw failed", "op", op, "err", err)
	}
}

// Resize reallocates the pixmap. Content is discarded.
func (s *ContextSurface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	if err := s.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("surface: resize: %w", err)
	}
	return nil
}

// Image returns a copy of the pixels.
func (s *ContextSurface) Image() image.Image {
	src := s.pixels()
	out := image.NewRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// aff3 converts a gg.Matrix to the x/image form. Both are row-major 2x3.
func aff3(m gg.Matrix) f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}
