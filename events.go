package ggedit

import "github.com/gogpu/ggedit/interact"

// SetViewportOffset sets the position of the canvas in host coordinates.
// Pointer positions passed to the event methods are translated by it.
func (e *Editor) SetViewportOffset(dx, dy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.machine.SetViewportOffset(dx, dy)
}

// PointerDown starts a rotate, resize or drag gesture on the selected
// layer. It reports whether a gesture started.
func (e *Editor) PointerDown(ev interact.PointerEvent) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.PointerDown(ev)
}

// PointerMove continues the active gesture, or hovers when idle. It
// returns the cursor the host should show.
func (e *Editor) PointerMove(ev interact.PointerEvent) interact.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.PointerMove(ev)
}

// PointerUp ends the active gesture.
func (e *Editor) PointerUp(ev interact.PointerEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.machine.PointerUp(ev)
}

// Click selects the top-most layer under the pointer.
func (e *Editor) Click(ev interact.PointerEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.machine.Click(ev)
}

// Wheel scales the selected layer when ctrl is held. It reports whether
// the event was consumed.
func (e *Editor) Wheel(ev interact.WheelEvent) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Wheel(ev)
}

// Key handles keyboard shortcuts. It reports whether the key was consumed.
func (e *Editor) Key(ev interact.KeyEvent) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Key(ev)
}

// Mode returns the active gesture.
func (e *Editor) Mode() interact.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Mode()
}
