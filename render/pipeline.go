// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/ggedit/internal/logx"
	"github.com/gogpu/ggedit/layer"
	"github.com/gogpu/ggedit/surface"
	"github.com/gogpu/ggedit/transform"
)

// FaceResolver maps a font family and size to a text face. A nil face
// means the text cannot be drawn.
type FaceResolver interface {
	Face(family string, size float64) text.Face
}

// Frame is one render request.
type Frame struct {
	// Layers are painted in order; the last entry is in front.
	Layers layer.List

	// Selected is decorated when Decorate is set. It must be a member of
	// Layers; a stale pointer is ignored.
	Selected *layer.Layer

	// Decorate draws the selection outline and handles.
	Decorate bool

	// Background clears the surface before painting. Nil is transparent.
	Background color.Color
}

// Style controls the look of the selection decorations.
type Style struct {
	Outline      color.Color
	OutlineWidth float64
	Handle       color.Color
	Geometry     transform.Geometry
}

// DefaultStyle returns a 2px blue outline with blue handles.
func DefaultStyle() Style {
	blue := color.NRGBA{B: 0xff, A: 0xff}
	return Style{
		Outline:      blue,
		OutlineWidth: 2,
		Handle:       blue,
		Geometry:     transform.DefaultGeometry(),
	}
}

// Pipeline renders frames onto surfaces.
type Pipeline struct {
	faces FaceResolver
	style Style

	// warned remembers color strings that already produced a warning.
	warned sync.Map
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFaces sets the font resolver used for text layers. Without one, text
// layers are skipped.
func WithFaces(r FaceResolver) Option {
	return func(p *Pipeline) { p.faces = r }
}

// WithStyle overrides the decoration style.
func WithStyle(s Style) Option {
	return func(p *Pipeline) { p.style = s }
}

// NewPipeline creates a pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{style: DefaultStyle()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Style returns the decoration style.
func (p *Pipeline) Style() Style { return p.style }

// Render clears s and paints f. Decorations are painted after all content.
func (p *Pipeline) Render(s surface.Surface, f Frame) {
	s.Clear(f.Background)
	for _, l := range f.Layers {
		p.paint(s, l)
	}
	if f.Decorate && f.Selected != nil && f.Layers.Contains(f.Selected) {
		p.decorate(s, f.Selected)
	}
}

func (p *Pipeline) paint(s surface.Surface, l *layer.Layer) {
	m := transform.RenderMatrix(l)
	box := l.BoundingBox()
	switch l.Kind() {
	case layer.KindImage:
		if b := l.Bitmap(); b != nil {
			s.DrawBitmap(b.Image(), m, box)
		}
	case layer.KindText:
		style := surface.TextStyle{
			Family: l.FontFamily(),
			Size:   l.FontSize(),
			Color:  p.color(l.Color()),
		}
		if p.faces != nil {
			style.Face = p.faces.Face(l.FontFamily(), l.FontSize())
		}
		s.DrawText(l.Text(), style, m, box)
	}
}

// decorate outlines the untransformed box and draws both handles. The
// rotate handle hangs from the top edge on a short stem.
func (p *Pipeline) decorate(s surface.Surface, l *layer.Layer) {
	st := p.style
	box := l.BoundingBox()
	s.StrokeRect(box, surface.StrokeStyle{Color: st.Outline, Width: st.OutlineWidth})

	s.FillRect(st.Geometry.HandleRect(l, transform.HandleResize), st.Handle)

	rot := st.Geometry.HandleRect(l, transform.HandleRotate)
	top := gg.Pt(box.X+box.W/2, box.Y)
	s.StrokeLine(top, gg.Pt(top.X, rot.Y+rot.H), surface.StrokeStyle{Color: st.Outline, Width: 1})
	s.FillRect(rot, st.Handle)
}

func (p *Pipeline) color(spec string) color.Color {
	c, err := ParseColor(spec)
	if err == nil {
		return c
	}
	if _, seen := p.warned.LoadOrStore(spec, struct{}{}); !seen {
		logx.Logger().Warn("render: unknown color, using black", "color", spec)
	}
	return color.Black
}
