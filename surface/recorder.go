// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/ggedit/geom"
)

// OpKind identifies a recorded primitive.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpDrawBitmap
	OpDrawText
	OpStrokeRect
	OpFillRect
	OpStrokeLine
)

var opNames = [...]string{
	OpClear:      "Clear",
	OpDrawBitmap: "DrawBitmap",
	OpDrawText:   "DrawText",
	OpStrokeRect: "StrokeRect",
	OpFillRect:   "FillRect",
	OpStrokeLine: "StrokeLine",
}

// String returns the name of the Surface method that produced the op.
func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", uint8(k))
}

// Op is one recorded call. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	Color  color.Color
	Image  image.Image
	Text   string
	Style  TextStyle
	Stroke StrokeStyle
	Matrix gg.Matrix
	Rect   geom.Rect
	From   gg.Point
	To     gg.Point
}

// Recorder is a Surface that records primitives instead of rasterizing
// them. Clear starts a new frame, so the recorder always holds the most
// recent frame.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	ops           []Op
}

// NewRecorder creates a recorder with the given logical size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

// Width returns the logical width.
func (r *Recorder) Width() int { return r.width }

// Height returns the logical height.
func (r *Recorder) Height() int { return r.height }

// Clear drops earlier ops and records a clear.
func (r *Recorder) Clear(c color.Color) {
	clear(r.ops)
	r.ops = append(r.ops[:0], Op{Kind: OpClear, Color: c})
}

// DrawBitmap records a bitmap draw.
func (r *Recorder) DrawBitmap(img image.Image, m gg.Matrix, dst geom.Rect) {
	r.ops = append(r.ops, Op{Kind: OpDrawBitmap, Image: img, Matrix: m, Rect: dst})
}

// DrawText records a text draw.
func (r *Recorder) DrawText(s string, style TextStyle, m gg.Matrix, dst geom.Rect) {
	r.ops = append(r.ops, Op{Kind: OpDrawText, Text: s, Style: style, Color: style.Color, Matrix: m, Rect: dst})
}

// StrokeRect records a rectangle outline.
func (r *Recorder) StrokeRect(rect geom.Rect, style StrokeStyle) {
	r.ops = append(r.ops, Op{Kind: OpStrokeRect, Rect: rect, Stroke: style, Color: style.Color})
}

// FillRect records a filled rectangle.
func (r *Recorder) FillRect(rect geom.Rect, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, Rect: rect, Color: c})
}

// StrokeLine records a line.
func (r *Recorder) StrokeLine(a, b gg.Point, style StrokeStyle) {
	r.ops = append(r.ops, Op{Kind: OpStrokeLine, From: a, To: b, Stroke: style, Color: style.Color})
}

// Resize changes the logical size and drops recorded ops.
func (r *Recorder) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	r.width, r.height = width, height
	r.Reset()
	return nil
}

// Image rasterizes the recorded frame onto a fresh ContextSurface.
func (r *Recorder) Image() image.Image {
	if r.width <= 0 || r.height <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	dst := NewContextSurface(r.width, r.height)
	r.Playback(dst)
	return dst.Image()
}

// Ops returns a copy of the recorded ops.
func (r *Recorder) Ops() []Op {
	return append([]Op(nil), r.ops...)
}

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() {
	clear(r.ops)
	r.ops = r.ops[:0]
}

// Playback replays the recorded ops onto dst in order.
func (r *Recorder) Playback(dst Surface) {
	for _, op := range r.ops {
		switch op.Kind {
		case OpClear:
			dst.Clear(op.Color)
		case OpDrawBitmap:
			dst.DrawBitmap(op.Image, op.Matrix, op.Rect)
		case OpDrawText:
			dst.DrawText(op.Text, op.Style, op.Matrix, op.Rect)
		case OpStrokeRect:
			dst.StrokeRect(op.Rect, op.Stroke)
		case OpFillRect:
			dst.FillRect(op.Rect, op.Color)
		case OpStrokeLine:
			dst.StrokeLine(op.From, op.To, op.Stroke)
		}
	}
}

var (
	_ Surface = (*Recorder)(nil)
	_ Surface = (*ContextSurface)(nil)
)
