// Package layer defines the editor's drawable units and the ordered list
// that holds them.
//
// A Layer is either an image or a text element with a position, a size and a
// rotation. Geometry is kept behind setters so that width and height can
// never become zero or negative; every write clamps to MinSize.
package layer

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gg"
	"github.com/gogpu/ggedit/geom"
	"golang.org/x/text/unicode/norm"
)

// Defaults for freshly created layers.
const (
	// MinSize is the smallest width or height a layer may have, in pixels.
	MinSize = 1.0

	// MinFontSize is the smallest accepted font size.
	MinFontSize = 1.0

	DefaultTextWidth  = 100.0
	DefaultTextHeight = 100.0
	DefaultFontSize   = 20.0
	DefaultFontFamily = "Arial"
	DefaultColor      = "black"
)

// Kind is the content type of a layer.
type Kind uint8

const (
	// KindImage is a layer showing a decoded bitmap.
	KindImage Kind = iota
	// KindText is a layer showing a single string.
	KindText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

var nextID atomic.Uint64

// Bitmap is an immutable decoded image. Layers and history snapshots share
// bitmaps freely; replacing a layer's content swaps in a new Bitmap.
type Bitmap struct {
	id  uint64
	img image.Image
}

// NewBitmap wraps a decoded image.
func NewBitmap(img image.Image) *Bitmap {
	return &Bitmap{id: nextID.Add(1), img: img}
}

// ID returns a process-unique identifier.
func (b *Bitmap) ID() uint64 { return b.id }

// Image returns the decoded image. Callers must not modify it.
func (b *Bitmap) Image() image.Image { return b.img }

// Width returns the natural pixel width.
func (b *Bitmap) Width() int { return b.img.Bounds().Dx() }

// Height returns the natural pixel height.
func (b *Bitmap) Height() int { return b.img.Bounds().Dy() }

// Layer is one image or text element on the canvas.
type Layer struct {
	id     uint64
	kind   Kind
	bitmap *Bitmap
	text   string

	x, y          float64
	width, height float64
	rotation      float64

	fontSize   float64
	fontFamily string
	color      string
}

func newLayer(kind Kind) *Layer {
	return &Layer{
		id:         nextID.Add(1),
		kind:       kind,
		width:      DefaultTextWidth,
		height:     DefaultTextHeight,
		fontSize:   DefaultFontSize,
		fontFamily: DefaultFontFamily,
		color:      DefaultColor,
	}
}

// NewImage creates an image layer at the origin sized to the bitmap's
// natural pixel dimensions.
func NewImage(b *Bitmap) *Layer {
	l := newLayer(KindImage)
	l.bitmap = b
	l.SetSize(float64(b.Width()), float64(b.Height()))
	return l
}

// NewText creates a text layer at the origin with the default box and style.
func NewText(s string) *Layer {
	l := newLayer(KindText)
	l.text = norm.NFC.String(s)
	return l
}

// ID returns the identifier assigned at creation. Clones keep it.
func (l *Layer) ID() uint64 { return l.id }

// Kind returns the content type.
func (l *Layer) Kind() Kind { return l.kind }

// Bitmap returns the image content, or nil for text layers.
func (l *Layer) Bitmap() *Bitmap { return l.bitmap }

// Text returns the text content, or "" for image layers.
func (l *Layer) Text() string { return l.text }

// Position returns the top-left corner of the untransformed box.
func (l *Layer) Position() gg.Point { return gg.Pt(l.x, l.y) }

// Size returns the width and height.
func (l *Layer) Size() (w, h float64) { return l.width, l.height }

// Width returns the box width.
func (l *Layer) Width() float64 { return l.width }

// Height returns the box height.
func (l *Layer) Height() float64 { return l.height }

// Rotation returns the rotation in degrees. It is not wrapped.
func (l *Layer) Rotation() float64 { return l.rotation }

// DisplayRotation returns the rotation normalized to [0, 360).
func (l *Layer) DisplayRotation() float64 { return geom.NormalizeDegrees(l.rotation) }

// FontSize returns the text size in pixels.
func (l *Layer) FontSize() float64 { return l.fontSize }

// FontFamily returns the font family name.
func (l *Layer) FontFamily() string { return l.fontFamily }

// Color returns the text color specification.
func (l *Layer) Color() string { return l.color }

// BoundingBox returns the untransformed, axis-aligned box.
func (l *Layer) BoundingBox() geom.Rect {
	return geom.R(l.x, l.y, l.width, l.height)
}

// Center returns the pivot used for rotation: position + size/2.
func (l *Layer) Center() gg.Point {
	return gg.Pt(l.x+l.width/2, l.y+l.height/2)
}

// SetPosition moves the top-left corner to (x, y).
func (l *Layer) SetPosition(x, y float64) {
	l.x, l.y = x, y
}

// Translate moves the layer by (dx, dy).
func (l *Layer) Translate(dx, dy float64) {
	l.x += dx
	l.y += dy
}

// SetSize sets width and height, clamping each to MinSize.
func (l *Layer) SetSize(w, h float64) {
	l.width = clampSize(w)
	l.height = clampSize(h)
}

// SetRotation sets the rotation in degrees.
func (l *Layer) SetRotation(deg float64) {
	l.rotation = deg
}

// Rotate adds deg degrees to the rotation.
func (l *Layer) Rotate(deg float64) {
	l.rotation += deg
}

// SetBitmap replaces the image content. The box size is kept.
func (l *Layer) SetBitmap(b *Bitmap) {
	l.bitmap = b
}

// Clone returns an independent copy. Only the immutable Bitmap is shared.
func (l *Layer) Clone() *Layer {
	c := *l
	return &c
}

// Equal reports whether l and o hold identical field values.
func (l *Layer) Equal(o *Layer) bool {
	if l == nil || o == nil {
		return l == o
	}
	return *l == *o
}

// String implements fmt.Stringer for logs and test failures.
func (l *Layer) String() string {
	return fmt.Sprintf("%s#%d{(%g,%g) %gx%g rot=%g}",
		l.kind, l.id, l.x, l.y, l.width, l.height, l.rotation)
}

func clampSize(v float64) float64 {
	if v < MinSize || v != v {
		return MinSize
	}
	return v
}
