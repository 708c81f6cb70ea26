// Package transform maps layer geometry to screen space: the render matrix
// that rotates a layer about its own center, the interaction handles drawn
// around the selected layer, and the hit tests used by the pointer state
// machine.
//
// Hit testing works on the untransformed bounding box. Rotation is ignored,
// so a rotated layer is picked by the rectangle it had before rotating.
package transform

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/ggedit/geom"
	"github.com/gogpu/ggedit/layer"
)

// Handle geometry defaults.
const (
	// DefaultHandleSize is the side of a square handle in pixels.
	DefaultHandleSize = 10.0

	// DefaultRotateOffset is the distance from the top edge of the layer to
	// the center of the rotate handle.
	DefaultRotateOffset = 20.0
)

// Handle identifies a hit target on the selected layer.
type Handle uint8

const (
	// HandleNone means no handle or body was hit.
	HandleNone Handle = iota
	// HandleRotate starts a rotate gesture.
	HandleRotate
	// HandleResize starts a resize gesture.
	HandleResize
	// HandleBody starts a drag gesture.
	HandleBody
)

// String returns the handle name.
func (h Handle) String() string {
	switch h {
	case HandleRotate:
		return "rotate"
	case HandleResize:
		return "resize"
	case HandleBody:
		return "body"
	default:
		return "none"
	}
}

// Geometry configures handle placement.
type Geometry struct {
	HandleSize   float64
	RotateOffset float64
}

// DefaultGeometry returns the default handle geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		HandleSize:   DefaultHandleSize,
		RotateOffset: DefaultRotateOffset,
	}
}

// HandleRect returns the square occupied by handle h of l. The resize
// handle sits in the inside bottom-right corner of the box; the rotate
// handle is centered above the top edge. HandleBody yields the bounding box.
func (g Geometry) HandleRect(l *layer.Layer, h Handle) geom.Rect {
	box := l.BoundingBox()
	s := g.HandleSize
	switch h {
	case HandleResize:
		return geom.R(box.X+box.W-s, box.Y+box.H-s, s, s)
	case HandleRotate:
		cx := box.X + box.W/2
		cy := box.Y - g.RotateOffset
		return geom.R(cx-s/2, cy-s/2, s, s)
	case HandleBody:
		return box
	}
	return geom.Rect{}
}

// HitHandle classifies p against l in priority order: rotate handle, then
// resize handle, then layer body. The first match wins.
func (g Geometry) HitHandle(l *layer.Layer, p gg.Point) Handle {
	if l == nil {
		return HandleNone
	}
	for _, h := range [...]Handle{HandleRotate, HandleResize, HandleBody} {
		if g.HandleRect(l, h).Contains(p) {
			return h
		}
	}
	return HandleNone
}

// Contains reports whether p lies in the untransformed box of l.
func Contains(l *layer.Layer, p gg.Point) bool {
	return l.BoundingBox().Contains(p)
}

// Topmost returns the front-most layer whose box contains p, or nil.
// The list is scanned from the last entry to the first.
func Topmost(ls layer.List, p gg.Point) *layer.Layer {
	for i := len(ls) - 1; i >= 0; i-- {
		if Contains(ls[i], p) {
			return ls[i]
		}
	}
	return nil
}

// RenderMatrix returns the matrix that places l's content on the canvas:
// translate to the center, rotate, translate back. Content is then drawn
// at its untransformed bounding box.
func RenderMatrix(l *layer.Layer) gg.Matrix {
	if l.Rotation() == 0 {
		return gg.Identity()
	}
	return geom.RotateAbout(l.Center(), l.Rotation())
}

// ScaleAboutCenter multiplies the size of l by f and shifts its position by
// half the size change, keeping the center fixed. Sizes clamp to
// layer.MinSize; f <= 0 is ignored.
func ScaleAboutCenter(l *layer.Layer, f float64) {
	if f <= 0 {
		return
	}
	c := l.Center()
	w, h := l.Size()
	l.SetSize(w*f, h*f)
	nw, nh := l.Size()
	l.SetPosition(c.X-nw/2, c.Y-nh/2)
}
