// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package history implements snapshot-based undo and redo for a layer list.
//
// Every entry is a deep copy of the whole list taken with layer.List.Clone.
// Bitmaps are immutable and shared between snapshots, so a snapshot costs
// one small struct per layer regardless of image size.
//
// The caller commits the state it is about to change:
//
//	m.Commit(doc.Layers())
//	layer.Translate(10, 0)
//
// and restores with Undo/Redo, which take the current list and return the
// list to install in its place.
package history

import "github.com/gogpu/ggedit/layer"

// Manager holds the undo and redo stacks. The zero value is ready to use
// and has no depth limit. A Manager is not safe for concurrent use.
type Manager struct {
	undo  []layer.List
	redo  []layer.List
	limit int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps the number of undo entries. When a commit would exceed
// n, the oldest entry is dropped. n <= 0 means unlimited.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n < 0 {
			n = 0
		}
		m.limit = n
	}
}

// New creates a Manager.
func New(opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Commit records a deep copy of current as the newest undo entry and
// discards the redo stack.
func (m *Manager) Commit(current layer.List) {
	m.undo = append(m.undo, current.Clone())
	if m.limit > 0 && len(m.undo) > m.limit {
		drop := len(m.undo) - m.limit
		clear(m.undo[:drop])
		m.undo = m.undo[drop:]
	}
	clear(m.redo)
	m.redo = m.redo[:0]
}

// Undo pops the newest undo entry and returns it. A copy of current is
// pushed onto the redo stack. When there is nothing to undo it returns
// current unchanged and false.
func (m *Manager) Undo(current layer.List) (layer.List, bool) {
	prev, ok := pop(&m.undo)
	if !ok {
		return current, false
	}
	m.redo = append(m.redo, current.Clone())
	return prev, true
}

// Redo pops the newest redo entry and returns it. A copy of current is
// pushed onto the undo stack. When there is nothing to redo it returns
// current unchanged and false.
func (m *Manager) Redo(current layer.List) (layer.List, bool) {
	next, ok := pop(&m.redo)
	if !ok {
		return current, false
	}
	m.undo = append(m.undo, current.Clone())
	return next, true
}

// CanUndo reports whether Undo would change anything.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Len returns the number of undo and redo entries.
func (m *Manager) Len() (undo, redo int) { return len(m.undo), len(m.redo) }

// Reset drops both stacks.
func (m *Manager) Reset() {
	m.undo = nil
	m.redo = nil
}

func pop(stack *[]layer.List) (layer.List, bool) {
	s := *stack
	if len(s) == 0 {
		return nil, false
	}
	top := s[len(s)-1]
	s[len(s)-1] = nil
	*stack = s[:len(s)-1]
	return top, true
}
