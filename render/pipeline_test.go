// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg/text"
	"github.com/gogpu/ggedit/layer"
	"github.com/gogpu/ggedit/surface"
	"golang.org/x/image/font/gofont/goregular"
)

type stubFaces struct {
	face  text.Face
	calls []string
}

func (s *stubFaces) Face(family string, size float64) text.Face {
	s.calls = append(s.calls, family)
	return s.face
}

func imageLayer(x, y float64, w, h int) *layer.Layer {
	l := layer.NewImage(layer.NewBitmap(image.NewNRGBA(image.Rect(0, 0, w, h))))
	l.SetPosition(x, y)
	return l
}

func kinds(ops []surface.Op) []surface.OpKind {
	out := make([]surface.OpKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}

func TestRenderOrderAndDecorations(t *testing.T) {
	back := imageLayer(0, 0, 50, 50)
	front := layer.NewText("hi")
	front.SetPosition(20, 30)
	faces := &stubFaces{}

	rec := surface.NewRecorder(200, 200)
	p := NewPipeline(WithFaces(faces))
	p.Render(rec, Frame{Layers: layer.List{back, front}, Selected: back, Decorate: true})

	got := kinds(rec.Ops())
	want := []surface.OpKind{
		surface.OpClear,
		surface.OpDrawBitmap,
		surface.OpDrawText,
		surface.OpStrokeRect,
		surface.OpFillRect,
		surface.OpStrokeLine,
		surface.OpFillRect,
	}
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op %d = %v, want %v", i, got[i], want[i])
		}
	}

	ops := rec.Ops()
	if r := ops[3].Rect; r != back.BoundingBox() {
		t.Errorf("outline rect = %+v, want selection box %+v", r, back.BoundingBox())
	}
	if r := ops[4].Rect; r.X != 40 || r.Y != 40 || r.W != 10 || r.H != 10 {
		t.Errorf("resize handle = %+v", r)
	}
	if r := ops[6].Rect; r.X != 20 || r.Y != -25 || r.W != 10 || r.H != 10 {
		t.Errorf("rotate handle = %+v", r)
	}
	if ops[2].Text != "hi" || ops[2].Style.Family != layer.DefaultFontFamily || ops[2].Style.Size != layer.DefaultFontSize {
		t.Errorf("text op = %+v", ops[2])
	}
	if len(faces.calls) != 1 {
		t.Errorf("face resolver called %d times", len(faces.calls))
	}
}

func TestRenderUndecorated(t *testing.T) {
	l := imageLayer(0, 0, 10, 10)
	rec := surface.NewRecorder(20, 20)
	NewPipeline().Render(rec, Frame{Layers: layer.List{l}, Selected: l})
	for _, k := range []surface.OpKind{surface.OpStrokeRect, surface.OpFillRect, surface.OpStrokeLine} {
		if n := rec.Count(k); n != 0 {
			t.Errorf("undecorated frame has %d %v ops", n, k)
		}
	}
}

func TestRenderIgnoresStaleSelection(t *testing.T) {
	l := imageLayer(0, 0, 10, 10)
	stale := imageLayer(0, 0, 10, 10)
	rec := surface.NewRecorder(20, 20)
	NewPipeline().Render(rec, Frame{Layers: layer.List{l}, Selected: stale, Decorate: true})
	if n := rec.Count(surface.OpStrokeRect); n != 0 {
		t.Errorf("decorated a layer that is not in the list")
	}
}

func TestRenderUsesRotationMatrix(t *testing.T) {
	l := imageLayer(0, 0, 100, 50)
	l.SetRotation(90)
	rec := surface.NewRecorder(200, 200)
	NewPipeline().Render(rec, Frame{Layers: layer.List{l}})

	op := rec.Ops()[1]
	c := l.Center()
	got := op.Matrix.TransformPoint(c)
	if math.Abs(got.X-c.X) > 1e-9 || math.Abs(got.Y-c.Y) > 1e-9 {
		t.Errorf("render matrix moved the center to %v", got)
	}
	if op.Rect != l.BoundingBox() {
		t.Errorf("content drawn at %+v, want untransformed box", op.Rect)
	}
}

func TestExportHasNoDecorationPixels(t *testing.T) {
	l := imageLayer(10, 10, 30, 30) // fully transparent content
	p := NewPipeline()

	view := surface.NewContextSurface(60, 60)
	p.Render(view, Frame{Layers: layer.List{l}, Selected: l, Decorate: true, Background: color.White})
	out := surface.NewContextSurface(60, 60)
	p.Render(out, Frame{Layers: layer.List{l}, Selected: l, Background: color.White})

	blueish := func(img image.Image) int {
		n := 0
		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bb, _ := img.At(x, y).RGBA()
				if bb > 0x8000 && r < 0x8000 && g < 0x8000 {
					n++
				}
			}
		}
		return n
	}
	if blueish(view.Image()) == 0 {
		t.Fatal("decorated frame has no outline pixels")
	}
	if n := blueish(out.Image()); n != 0 {
		t.Errorf("export frame has %d decoration pixels", n)
	}
}

func TestRenderTextWithRealFace(t *testing.T) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	l := layer.NewText("Go")
	if err := layer.Color("#ff0000").Apply(l); err != nil {
		t.Fatal(err)
	}
	s := surface.NewContextSurface(100, 100)
	NewPipeline(WithFaces(&stubFaces{face: src.Face(32)})).Render(s, Frame{Layers: layer.List{l}})

	img := s.Image()
	reds := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			r, g, _, a := img.At(x, y).RGBA()
			if a > 0x8000 && r > 0x8000 && g < 0x4000 {
				reds++
			}
		}
	}
	if reds == 0 {
		t.Error("no red glyph pixels rendered")
	}
}
