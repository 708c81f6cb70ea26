package layer

import (
	"fmt"
	"slices"
)

// List is an ordered layer stack. Index 0 is painted first (back), the last
// entry is painted last (front).
type List []*Layer

// Clone returns a deep copy: every layer is cloned.
func (ls List) Clone() List {
	if ls == nil {
		return nil
	}
	out := make(List, len(ls))
	for i, l := range ls {
		out[i] = l.Clone()
	}
	return out
}

// IndexOf returns the position of l by identity, or -1.
func (ls List) IndexOf(l *Layer) int {
	if l == nil {
		return -1
	}
	for i, m := range ls {
		if m == l {
			return i
		}
	}
	return -1
}

// Contains reports whether l is a member of the list by identity.
func (ls List) Contains(l *Layer) bool {
	return ls.IndexOf(l) >= 0
}

// Last returns the front-most layer, or nil for an empty list.
func (ls List) Last() *Layer {
	if len(ls) == 0 {
		return nil
	}
	return ls[len(ls)-1]
}

// Without returns a new list with l removed. The receiver is not modified.
func (ls List) Without(l *Layer) List {
	i := ls.IndexOf(l)
	if i < 0 {
		return ls
	}
	return slices.Delete(slices.Clone(ls), i, i+1)
}

// CanMove reports whether Move(l, d) would change the list.
func (ls List) CanMove(l *Layer, d Direction) bool {
	i := ls.IndexOf(l)
	if i < 0 {
		return false
	}
	j := i + d.step()
	return j >= 0 && j < len(ls)
}

// Move swaps l with its neighbor in direction d. It reports whether the
// list changed; moving the front layer up or the back layer down does not.
func (ls List) Move(l *Layer, d Direction) bool {
	if !ls.CanMove(l, d) {
		return false
	}
	i := ls.IndexOf(l)
	j := i + d.step()
	ls[i], ls[j] = ls[j], ls[i]
	return true
}

// Equal compares two lists field by field.
func (ls List) Equal(o List) bool {
	return slices.EqualFunc(ls, o, (*Layer).Equal)
}

// Direction is a z-order move direction.
type Direction uint8

const (
	// Up moves a layer toward the front of the paint order.
	Up Direction = iota
	// Down moves a layer toward the back.
	Down
)

func (d Direction) step() int {
	if d == Up {
		return 1
	}
	return -1
}

// String returns "up" or "down".
func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ParseDirection parses "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("layer: unknown direction %q", s)
}
