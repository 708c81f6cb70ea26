// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"
)

// Factory creates a Surface of the given size.
type Factory func(width, height int) (Surface, error)

// RegistryEntry represents a registered surface implementation.
type RegistryEntry struct {
	// Name is the unique identifier, for example "raster".
	Name string

	// Priority determines selection order for NewSurface (higher wins).
	Priority int

	// Factory creates surface instances.
	Factory Factory
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry manages named surface implementations.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and NewSurface.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds an implementation to the global registry.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory) {
	globalRegistry.Register(name, priority, factory)
}

// Unregister removes an implementation from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// NewSurface creates a surface with the highest-priority implementation.
func NewSurface(width, height int) (Surface, error) {
	return globalRegistry.NewSurface(width, height)
}

// NewSurfaceByName creates a surface with a specific implementation.
func NewSurfaceByName(name string, width, height int) (Surface, error) {
	return globalRegistry.NewSurfaceByName(name, width, height)
}

// Register adds an implementation to this registry.
func (r *Registry) Register(name string, priority int, factory Factory) {
	if factory == nil {
		panic("surface: Register factory is nil for " + name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[name] = &RegistryEntry{
		Name:     name,
		Priority: priority,
		Factory:  factory,
	}
}

// Unregister removes an implementation from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames()
}

// NewSurface creates a surface trying implementations in priority order.
func (r *Registry) NewSurface(width, height int) (Surface, error) {
	r.mu.RLock()
	names := r.sortedNames()
	r.mu.RUnlock()

	if len(names) == 0 {
		return nil, ErrNoSurface
	}

	var errs []error
	for _, name := range names {
		s, err := r.NewSurfaceByName(name, width, height)
		if err == nil {
			return s, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// NewSurfaceByName creates a surface with a specific implementation.
func (r *Registry) NewSurfaceByName(name string, width, height int) (Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return entry.Factory(width, height)
}

// sortedNames returns names sorted by priority (highest first), then by
// name. Must be called with lock held.
func (r *Registry) sortedNames() []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Errors.
var (
	// ErrNoSurface is returned when no implementation is registered.
	ErrNoSurface = errors.New("surface: no implementation registered")

	// ErrInvalidSize is returned for non-positive dimensions.
	ErrInvalidSize = errors.New("surface: width and height must be positive")
)

// NotFoundError indicates a named implementation is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "surface: implementation not found: " + e.Name
}

func init() {
	Register("raster", 10, func(w, h int) (Surface, error) {
		return NewContextSurface(w, h), nil
	})
	Register("recorder", 0, func(w, h int) (Surface, error) {
		return NewRecorder(w, h), nil
	})
}
