// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package interact turns pointer, wheel and keyboard events into layer
// mutations.
//
// A Machine is in one of four modes. Idle waits for a press on the selected
// layer; Dragging, Rotating and Resizing each last from a press to the next
// release. Only one gesture runs at a time.
//
// History is written through the Document: a gesture commits one snapshot
// immediately before its first geometry change, so the undo stack holds the
// state from before the gesture. A press and release without movement
// commits nothing. Wheel and key commands commit once per event.
package interact

import (
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/ggedit/geom"
	"github.com/gogpu/ggedit/internal/logx"
	"github.com/gogpu/ggedit/layer"
	"github.com/gogpu/ggedit/transform"
)

// Scale factors applied by the wheel and keyboard shortcuts.
const (
	WheelShrink = 0.95
	WheelGrow   = 1.05
	KeyGrow     = 1.1
	KeyShrink   = 0.9
)

// Nudge distances for the arrow keys, in canvas pixels.
const (
	NudgeStep       = 1.0
	NudgeStepCoarse = 10.0
)

// Document is the editor state the machine reads and mutates. All calls
// happen on the goroutine that feeds events to the machine.
type Document interface {
	// Layers returns the current list. The machine mutates layers in place
	// but never reorders the list.
	Layers() layer.List
	// Selected returns the selected layer or nil.
	Selected() *layer.Layer
	// Select changes the selection. l is nil or a member of Layers.
	Select(l *layer.Layer)
	// Commit snapshots the current list onto the undo stack.
	Commit()
	// Invalidate requests a redraw.
	Invalidate()
	// CanvasSize returns the canvas dimensions in pixels.
	CanvasSize() (w, h int)
	// DeleteSelected removes the selected layer.
	DeleteSelected()
	// Undo and Redo restore history entries.
	Undo()
	Redo()
}

// Mode is the gesture state.
type Mode uint8

const (
	Idle Mode = iota
	Dragging
	Rotating
	Resizing
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Dragging:
		return "dragging"
	case Rotating:
		return "rotating"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// ClickPolicy decides what a click on empty canvas does.
type ClickPolicy uint8

const (
	// KeepSelection leaves the selection unchanged.
	KeepSelection ClickPolicy = iota
	// ClearSelection deselects.
	ClearSelection
)

// Machine is the interaction state machine. It is not safe for concurrent
// use; the editor serializes calls.
type Machine struct {
	doc    Document
	geo    transform.Geometry
	policy ClickPolicy
	origin gg.Point

	mode   Mode
	target *layer.Layer

	// Dragging: pointer minus layer position at press time.
	grab gg.Point
	// Rotating: atan2 angle of the previous pointer position.
	lastAngle float64
	// Resizing: press position and size at press time.
	anchor         gg.Point
	startW, startH float64

	committed bool
	moved     bool
	// swallowClick drops the click that follows a gesture which moved.
	swallowClick bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithGeometry overrides the handle geometry.
func WithGeometry(g transform.Geometry) Option {
	return func(m *Machine) { m.geo = g }
}

// WithClickPolicy sets the empty-canvas click behavior.
func WithClickPolicy(p ClickPolicy) Option {
	return func(m *Machine) { m.policy = p }
}

// New creates a Machine bound to doc.
func New(doc Document, opts ...Option) *Machine {
	m := &Machine{
		doc: doc,
		geo: transform.DefaultGeometry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mode returns the current gesture state.
func (m *Machine) Mode() Mode { return m.mode }

// Geometry returns the handle geometry used for hit testing.
func (m *Machine) Geometry() transform.Geometry { return m.geo }

// SetViewportOffset sets the client position of the canvas origin. Event
// positions are translated by -(dx, dy) before use.
func (m *Machine) SetViewportOffset(dx, dy float64) {
	m.origin = gg.Pt(dx, dy)
}

// SetClickPolicy changes the empty-canvas click behavior.
func (m *Machine) SetClickPolicy(p ClickPolicy) { m.policy = p }

// Cancel abandons the current gesture without undoing it. The editor calls
// it when the layer list is replaced underneath a gesture.
func (m *Machine) Cancel() {
	if m.mode != Idle {
		logx.Logger().Debug("interact: gesture canceled", "mode", m.mode)
	}
	m.reset()
}

func (m *Machine) reset() {
	m.mode = Idle
	m.target = nil
	m.committed = false
	m.moved = false
}

func (m *Machine) local(p gg.Point) gg.Point {
	return gg.Pt(p.X-m.origin.X, p.Y-m.origin.Y)
}

// PointerDown starts a gesture on the selected layer. The rotate handle
// wins over the resize handle, which wins over the body. It reports whether
// a gesture started.
func (m *Machine) PointerDown(ev PointerEvent) bool {
	m.swallowClick = false
	if m.mode != Idle {
		return false
	}
	sel := m.doc.Selected()
	if sel == nil {
		return false
	}
	p := m.local(ev.Position)

	switch m.geo.HitHandle(sel, p) {
	case transform.HandleRotate:
		m.mode = Rotating
		m.lastAngle = geom.Angle(sel.Center(), p)
	case transform.HandleResize:
		m.mode = Resizing
		m.anchor = p
		m.startW, m.startH = sel.Size()
	case transform.HandleBody:
		m.mode = Dragging
		pos := sel.Position()
		m.grab = gg.Pt(p.X-pos.X, p.Y-pos.Y)
	default:
		return false
	}
	m.target = sel
	m.committed = false
	m.moved = false
	logx.Logger().Debug("interact: gesture start", "mode", m.mode, "layer", sel.ID())
	return true
}

// PointerMove advances the current gesture, or in Idle reports the cursor
// for the hovered target without mutating anything.
func (m *Machine) PointerMove(ev PointerEvent) Cursor {
	p := m.local(ev.Position)
	if m.mode == Idle {
		return m.hover(p)
	}
	if !m.doc.Layers().Contains(m.target) {
		m.Cancel()
		return m.hover(p)
	}

	l := m.target
	switch m.mode {
	case Dragging:
		x, y := p.X-m.grab.X, p.Y-m.grab.Y
		if pos := l.Position(); pos.X != x || pos.Y != y {
			m.change(func() { l.SetPosition(x, y) })
		}
		return CursorMove

	case Rotating:
		cur := geom.Angle(l.Center(), p)
		delta := geom.WrapDelta(cur - m.lastAngle)
		m.lastAngle = cur
		if delta != 0 {
			m.change(func() { l.Rotate(geom.Degrees(delta)) })
		}
		return CursorGrabbing

	case Resizing:
		w, h := m.resized(p, ev.Modifiers.Contain(ModShift))
		if cw, ch := l.Size(); cw != w || ch != h {
			m.change(func() { l.SetSize(w, h) })
		}
		return CursorResize
	}
	return CursorDefault
}

// resized returns the box size for pointer p during a resize. With lock
// set the axis with the larger absolute delta drives and the other
// follows the starting aspect ratio.
func (m *Machine) resized(p gg.Point, lock bool) (w, h float64) {
	dx, dy := p.X-m.anchor.X, p.Y-m.anchor.Y
	w, h = m.startW+dx, m.startH+dy
	if !lock || m.startW <= 0 || m.startH <= 0 {
		return w, h
	}
	aspect := m.startW / m.startH
	if math.Abs(dx) >= math.Abs(dy) {
		w = math.Max(w, layer.MinSize)
		return w, w / aspect
	}
	h = math.Max(h, layer.MinSize)
	return h * aspect, h
}

// change commits once per gesture and then applies fn.
func (m *Machine) change(fn func()) {
	if !m.committed {
		m.doc.Commit()
		m.committed = true
	}
	m.moved = true
	fn()
	m.doc.Invalidate()
}

func (m *Machine) hover(p gg.Point) Cursor {
	if sel := m.doc.Selected(); sel != nil {
		switch m.geo.HitHandle(sel, p) {
		case transform.HandleRotate:
			return CursorGrab
		case transform.HandleResize:
			return CursorResize
		}
	}
	if transform.Topmost(m.doc.Layers(), p) != nil {
		return CursorMove
	}
	return CursorDefault
}

// PointerUp ends the current gesture.
func (m *Machine) PointerUp(PointerEvent) {
	if m.mode == Idle {
		return
	}
	logx.Logger().Debug("interact: gesture end", "mode", m.mode, "moved", m.moved)
	m.swallowClick = m.moved
	m.reset()
}

// Click selects the top-most layer under the pointer. Clicks outside the
// canvas and the click that ends a gesture which moved are ignored. A click
// on empty canvas follows the ClickPolicy.
func (m *Machine) Click(ev PointerEvent) {
	if m.swallowClick {
		m.swallowClick = false
		return
	}
	if m.mode != Idle {
		return
	}
	p := m.local(ev.Position)
	w, h := m.doc.CanvasSize()
	if p.X < 0 || p.Y < 0 || p.X > float64(w) || p.Y > float64(h) {
		return
	}

	hit := transform.Topmost(m.doc.Layers(), p)
	if hit == nil && m.policy == KeepSelection {
		return
	}
	if hit != m.doc.Selected() {
		m.doc.Select(hit)
		m.doc.Invalidate()
	}
}

// Wheel scales the selected layer about its center when ctrl is held:
// scrolling down shrinks, up grows. It reports whether the event was used,
// in which case the host should suppress page scrolling.
func (m *Machine) Wheel(ev WheelEvent) bool {
	if m.mode != Idle || !ev.Modifiers.Contain(ModCtrl) {
		return false
	}
	f := WheelGrow
	if ev.DeltaY > 0 {
		f = WheelShrink
	}
	return m.scale(f)
}

// Key handles keyboard shortcuts. It reports whether the key was used.
//
//	Ctrl + or Ctrl =     grow the selection by 10%
//	Ctrl -               shrink the selection by 10%
//	arrows               nudge by 1px, 10px with Shift
//	Delete, Backspace    delete the selection
//	Ctrl Z               undo
//	Ctrl Shift Z, Ctrl Y redo
func (m *Machine) Key(ev KeyEvent) bool {
	if m.mode != Idle {
		return false
	}
	ctrl := ev.Modifiers.Contain(ModCtrl)
	shift := ev.Modifiers.Contain(ModShift)
	name := ev.Name

	if ctrl {
		switch {
		case name == KeyPlus || name == KeyEqual:
			return m.scale(KeyGrow)
		case name == KeyMinus:
			return m.scale(KeyShrink)
		case strings.EqualFold(name, KeyZ) && shift, strings.EqualFold(name, KeyY):
			m.doc.Redo()
			return true
		case strings.EqualFold(name, KeyZ):
			m.doc.Undo()
			return true
		}
		return false
	}

	step := NudgeStep
	if shift {
		step = NudgeStepCoarse
	}
	switch name {
	case KeyLeft:
		return m.nudge(-step, 0)
	case KeyRight:
		return m.nudge(step, 0)
	case KeyUp:
		return m.nudge(0, -step)
	case KeyDown:
		return m.nudge(0, step)
	case KeyDelete, KeyBackspace:
		if m.doc.Selected() == nil {
			return false
		}
		m.doc.DeleteSelected()
		return true
	}
	return false
}

func (m *Machine) scale(f float64) bool {
	sel := m.doc.Selected()
	if sel == nil {
		return false
	}
	m.doc.Commit()
	transform.ScaleAboutCenter(sel, f)
	m.doc.Invalidate()
	return true
}

func (m *Machine) nudge(dx, dy float64) bool {
	sel := m.doc.Selected()
	if sel == nil {
		return false
	}
	m.doc.Commit()
	sel.Translate(dx, dy)
	m.doc.Invalidate()
	return true
}
