// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package interact

import (
	"strings"

	"github.com/gogpu/gg"
)

// Modifiers is a set of modifier keys held during an event.
type Modifiers uint32

const (
	// ModCtrl is the ctrl key. It turns the wheel and +/- into scaling and
	// enables the undo and redo shortcuts.
	ModCtrl Modifiers = 1 << iota
	// ModShift is the shift key. It locks the aspect ratio while resizing
	// and makes arrow-key nudges coarse.
	ModShift
	// ModAlt is the alt or option key.
	ModAlt
	// ModSuper is the logo key.
	ModSuper
)

// Contain reports whether m contains all modifiers in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// String returns the modifiers joined by "-", for example "Ctrl-Shift".
func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, "Ctrl")
	}
	if m.Contain(ModShift) {
		strs = append(strs, "Shift")
	}
	if m.Contain(ModAlt) {
		strs = append(strs, "Alt")
	}
	if m.Contain(ModSuper) {
		strs = append(strs, "Super")
	}
	return strings.Join(strs, "-")
}

// Key names understood by the machine. Letters and punctuation use the
// character itself; letter matching is case-insensitive.
const (
	KeyLeft      = "Left"
	KeyRight     = "Right"
	KeyUp        = "Up"
	KeyDown      = "Down"
	KeyDelete    = "Delete"
	KeyBackspace = "Backspace"
	KeyPlus      = "+"
	KeyEqual     = "="
	KeyMinus     = "-"
	KeyZ         = "Z"
	KeyY         = "Y"
)

// PointerEvent is a press, move, release or click at a client position.
type PointerEvent struct {
	// Position is in client coordinates. The machine subtracts the
	// viewport offset to obtain canvas coordinates.
	Position  gg.Point
	Modifiers Modifiers
}

// WheelEvent is a scroll wheel notch.
type WheelEvent struct {
	Position gg.Point
	// DeltaY is positive when scrolling down.
	DeltaY    float64
	Modifiers Modifiers
}

// KeyEvent is a key press.
type KeyEvent struct {
	Name      string
	Modifiers Modifiers
}

// Cursor is the pointer shape requested by the machine. Names follow the
// CSS cursor keywords.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	// CursorMove is shown over a layer body and while dragging.
	CursorMove
	// CursorGrab is shown over the rotate handle.
	CursorGrab
	// CursorGrabbing is shown while rotating.
	CursorGrabbing
	// CursorResize is shown over the resize handle and while resizing.
	CursorResize
)

// String returns the CSS cursor keyword.
func (c Cursor) String() string {
	switch c {
	case CursorMove:
		return "move"
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	case CursorResize:
		return "nwse-resize"
	default:
		return "default"
	}
}
