// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"
)

func TestBuiltinsRegistered(t *testing.T) {
	names := List()
	if len(names) < 2 || names[0] != "raster" {
		t.Fatalf("List() = %v, want raster first", names)
	}
	found := false
	for _, n := range names {
		if n == "recorder" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v, missing recorder", names)
	}

	s, err := NewSurface(16, 9)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	if _, ok := s.(*ContextSurface); !ok {
		t.Errorf("NewSurface returned %T, want *ContextSurface", s)
	}
}

func TestRegistryByName(t *testing.T) {
	r := NewRegistry()
	r.Register("rec", 1, func(w, h int) (Surface, error) { return NewRecorder(w, h), nil })

	s, err := r.NewSurfaceByName("rec", 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if s.Width() != 3 || s.Height() != 4 {
		t.Errorf("size = %dx%d", s.Width(), s.Height())
	}

	_, err = r.NewSurfaceByName("vulkan", 3, 4)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Name != "vulkan" {
		t.Errorf("unknown name error = %v", err)
	}

	if _, err := r.NewSurfaceByName("rec", 0, 4); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width error = %v", err)
	}
}

func TestRegistryPriorityAndFallback(t *testing.T) {
	r := NewRegistry()
	if _, err := r.NewSurface(1, 1); !errors.Is(err, ErrNoSurface) {
		t.Errorf("empty registry error = %v", err)
	}

	broken := errors.New("no device")
	r.Register("gpu", 100, func(int, int) (Surface, error) { return nil, broken })
	r.Register("rec", 1, func(w, h int) (Surface, error) { return NewRecorder(w, h), nil })

	if got := r.List(); len(got) != 2 || got[0] != "gpu" {
		t.Errorf("List() = %v, want gpu first", got)
	}
	s, err := r.NewSurface(2, 2)
	if err != nil {
		t.Fatalf("fallback failed: %v", err)
	}
	if _, ok := s.(*Recorder); !ok {
		t.Errorf("NewSurface returned %T", s)
	}

	r.Unregister("rec")
	if _, err := r.NewSurface(2, 2); !errors.Is(err, broken) {
		t.Errorf("error = %v, want the factory error", err)
	}
}

func TestRegisterNilFactoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register(nil) did not panic")
		}
	}()
	NewRegistry().Register("x", 0, nil)
}
