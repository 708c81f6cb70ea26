// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fonts resolves font family names to gg text faces.
//
// A family string may list alternatives separated by commas, as in CSS
// ("Helvetica, Arial, sans-serif"). Each candidate is tried in order:
//
//  1. fonts registered with Register
//  2. the generic families sans-serif, serif and monospace, served by the
//     embedded Go fonts
//  3. installed system fonts, found with go-text/typesetting's fontscan
//     when the resolver was created WithSystemFonts
//
// When nothing matches, the Go Regular font is used and a warning is logged
// once per family string. Parsed sources and sized faces are cached.
package fonts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-text/typesetting/fontscan"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/ggedit/internal/logx"
	"github.com/patrickmn/go-cache"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/singleflight"
)

// Cache lifetimes for parsed sources and sized faces.
const (
	defaultExpiration = 30 * time.Minute
	cleanupInterval   = time.Hour
)

// ErrNotFound is returned by Lookup when no candidate family is available.
var ErrNotFound = errors.New("fonts: family not found")

// Resolver maps family names to faces. It is safe for concurrent use.
type Resolver struct {
	fallback *text.FontSource
	mono     *text.FontSource

	mu         sync.RWMutex
	registered map[string]*text.FontSource

	system   bool
	cacheDir string
	scanOnce sync.Once
	fontMap  *fontscan.FontMap
	scanErr  error

	sources *cache.Cache // normalized family -> *text.FontSource
	faces   *cache.Cache // family|size -> text.Face
	loads   singleflight.Group
	warned  sync.Map
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSystemFonts enables lookup of installed fonts. The font index is
// built on first use and stored under cacheDir; an empty cacheDir selects
// the user cache directory.
func WithSystemFonts(cacheDir string) Option {
	return func(r *Resolver) {
		r.system = true
		r.cacheDir = cacheDir
	}
}

// New creates a Resolver with the embedded Go fonts loaded.
func New(opts ...Option) (*Resolver, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("fonts: load Go Regular: %w", err)
	}
	mono, err := text.NewFontSource(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("fonts: load Go Mono: %w", err)
	}
	r := &Resolver{
		fallback:   regular,
		mono:       mono,
		registered: make(map[string]*text.FontSource),
		sources:    cache.New(defaultExpiration, cleanupInterval),
		faces:      cache.New(defaultExpiration, cleanupInterval),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Register makes the font in data available under family. It replaces any
// earlier registration of the same family.
func (r *Resolver) Register(family string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("fonts: register %q: %w", family, err)
	}
	key := normalize(family)
	r.mu.Lock()
	r.registered[key] = src
	r.mu.Unlock()
	r.sources.Delete(key)
	r.faces.Flush()
	return nil
}

// Face returns a face for family at size. It never returns nil.
func (r *Resolver) Face(family string, size float64) text.Face {
	key := family + "|" + strconv.FormatFloat(size, 'g', -1, 64)
	if f, ok := r.faces.Get(key); ok {
		return f.(text.Face)
	}
	face := r.Source(family).Face(size)
	r.faces.SetDefault(key, face)
	return face
}

// Source returns the font source for family, falling back to Go Regular.
func (r *Resolver) Source(family string) *text.FontSource {
	src, err := r.Lookup(family)
	if err != nil {
		if _, seen := r.warned.LoadOrStore(family, struct{}{}); !seen {
			logx.Logger().Warn("fonts: family not available, using Go Regular", "family", family)
		}
		return r.fallback
	}
	return src
}

// Lookup resolves family without falling back.
func (r *Resolver) Lookup(family string) (*text.FontSource, error) {
	for _, candidate := range strings.Split(family, ",") {
		key := normalize(candidate)
		if key == "" {
			continue
		}
		if src := r.lookupOne(key); src != nil {
			return src, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, family)
}

func (r *Resolver) lookupOne(key string) *text.FontSource {
	r.mu.RLock()
	src, ok := r.registered[key]
	r.mu.RUnlock()
	if ok {
		return src
	}

	switch key {
	case "sans-serif", "serif", "system-ui", "go":
		return r.fallback
	case "monospace", "go mono":
		return r.mono
	}

	if !r.system {
		return nil
	}
	if v, ok := r.sources.Get(key); ok {
		src, _ := v.(*text.FontSource)
		return src
	}

	v, err, _ := r.loads.Do(key, func() (interface{}, error) {
		if v, ok := r.sources.Get(key); ok {
			return v, nil
		}
		src, err := r.loadSystem(key)
		if err != nil {
			return nil, err
		}
		// A nil entry records a miss so the scan is not repeated.
		r.sources.SetDefault(key, src)
		return src, nil
	})
	if err != nil {
		logx.Logger().Debug("fonts: system lookup failed", "family", key, "err", err)
		return nil
	}
	src, _ = v.(*text.FontSource)
	return src
}

// loadSystem finds key among installed fonts. It returns (nil, nil) when
// the family is not installed.
func (r *Resolver) loadSystem(key string) (*text.FontSource, error) {
	r.scanOnce.Do(func() {
		fm := fontscan.NewFontMap(logx.PrintfLogger{})
		if err := fm.UseSystemFonts(r.cacheDir); err != nil {
			r.scanErr = fmt.Errorf("fonts: scan system fonts: %w", err)
			return
		}
		r.fontMap = fm
	})
	if r.scanErr != nil {
		return nil, r.scanErr
	}

	loc, ok := r.fontMap.FindSystemFont(key)
	if !ok {
		return nil, nil
	}
	if loc.Index != 0 {
		// Collections beyond their first face are not supported by
		// text.NewFontSourceFromFile.
		return nil, nil
	}
	src, err := text.NewFontSourceFromFile(loc.File)
	if err != nil {
		return nil, fmt.Errorf("fonts: load %s: %w", loc.File, err)
	}
	logx.Logger().Debug("fonts: loaded system font", "family", key, "file", loc.File)
	return src, nil
}

func normalize(family string) string {
	s := strings.TrimSpace(family)
	s = strings.Trim(s, `"'`)
	return strings.ToLower(s)
}
