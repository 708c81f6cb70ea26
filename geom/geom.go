// Package geom provides the small amount of plane geometry the editor needs
// on top of gg's Matrix and Point: an axis-aligned rectangle and
// rotation-about-a-point helpers working in degrees.
//
// All coordinates are canvas pixels with the origin at the top-left and Y
// growing downward, matching gg.
package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

// R is a convenience constructor for Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Min returns the top-left corner.
func (r Rect) Min() gg.Point {
	return gg.Pt(r.X, r.Y)
}

// Max returns the bottom-right corner.
func (r Rect) Max() gg.Point {
	return gg.Pt(r.X+r.W, r.Y+r.H)
}

// Center returns the center of the rectangle.
func (r Rect) Center() gg.Point {
	return gg.Pt(r.X+r.W/2, r.Y+r.H/2)
}

// Contains reports whether p lies inside r. Edges are inclusive.
func (r Rect) Contains(p gg.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees maps deg into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// WrapDelta maps an angle difference in radians into (-pi, pi].
// It removes the 2*pi jump that appears when two atan2 results straddle
// the branch cut on the negative X axis.
func WrapDelta(rad float64) float64 {
	for rad > math.Pi {
		rad -= 2 * math.Pi
	}
	for rad <= -math.Pi {
		rad += 2 * math.Pi
	}
	return rad
}

// RotateAbout returns the matrix that rotates by deg degrees about c:
// translate to c, rotate, translate back. The order matters; reversing it
// moves the pivot to the origin.
func RotateAbout(c gg.Point, deg float64) gg.Matrix {
	return gg.Translate(c.X, c.Y).
		Multiply(gg.Rotate(Radians(deg))).
		Multiply(gg.Translate(-c.X, -c.Y))
}

// Angle returns the atan2 angle in radians of p as seen from c.
func Angle(c, p gg.Point) float64 {
	return math.Atan2(p.Y-c.Y, p.X-c.X)
}
