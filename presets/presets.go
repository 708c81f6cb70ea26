// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package presets lists common canvas sizes and defines how one is chosen.
package presets

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrCanceled is returned by a Picker when the user makes no choice.
var ErrCanceled = errors.New("presets: canceled")

// ErrUnknown is returned when a preset or group name is not found.
var ErrUnknown = errors.New("presets: unknown preset")

// Preset is a named canvas size in pixels.
type Preset struct {
	Name   string
	Width  int
	Height int
}

// String formats p as "Name (WxH)".
func (p Preset) String() string {
	return fmt.Sprintf("%s (%dx%d)", p.Name, p.Width, p.Height)
}

var catalog = []Preset{
	{"Facebook Post", 1200, 630},
	{"Instagram Post", 1080, 1080},
	{"Twitter Post", 1024, 512},
	{"LinkedIn Post", 1200, 627},
	{"YouTube Thumbnail", 1280, 720},
	{"A4 Portrait", 2480, 3508},
	{"A4 Landscape", 3508, 2480},
}

var groups = map[string][]Preset{
	"facebook": {
		{"Profile Picture", 400, 400},
		{"AD", 1200, 630},
		{"Story", 1080, 1920},
		{"Post", 1200, 630},
		{"Cover", 1125, 633},
	},
	"instagram": {
		{"Story", 1080, 1920},
		{"Profile Picture", 320, 320},
	},
}

// Catalog returns the general-purpose presets.
func Catalog() []Preset {
	return append([]Preset(nil), catalog...)
}

// GroupNames returns the names of the platform groups, sorted.
func GroupNames() []string {
	return []string{"facebook", "instagram"}
}

// Group returns the presets of a platform group such as "facebook".
func Group(name string) ([]Preset, error) {
	ps, ok := groups[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: group %q", ErrUnknown, name)
	}
	return append([]Preset(nil), ps...), nil
}

// Find looks up a catalog preset by case-insensitive name. A "group/name"
// form searches a platform group instead, e.g. "instagram/story".
func Find(name string) (Preset, error) {
	list := catalog
	if g, rest, ok := strings.Cut(name, "/"); ok {
		ps, err := Group(g)
		if err != nil {
			return Preset{}, err
		}
		list, name = ps, rest
	}
	for _, p := range list {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// ParseSize parses "WxH" into a custom preset.
func ParseSize(s string) (Preset, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Preset{}, fmt.Errorf("presets: size %q is not WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return Preset{}, fmt.Errorf("presets: size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return Preset{}, fmt.Errorf("presets: size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return Preset{}, fmt.Errorf("presets: size %q must be positive", s)
	}
	return Preset{Name: "Custom", Width: w, Height: h}, nil
}

// Picker asks for one of the offered presets. It returns ErrCanceled when
// the choice is dismissed.
type Picker interface {
	Pick(ctx context.Context, offered []Preset) (Preset, error)
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(ctx context.Context, offered []Preset) (Preset, error)

// Pick calls f.
func (f PickerFunc) Pick(ctx context.Context, offered []Preset) (Preset, error) {
	return f(ctx, offered)
}

// Named picks the offered preset called Name without asking anyone. An
// empty Name cancels.
type Named struct {
	Name string
}

// Pick implements Picker.
func (n Named) Pick(ctx context.Context, offered []Preset) (Preset, error) {
	if err := ctx.Err(); err != nil {
		return Preset{}, err
	}
	if n.Name == "" {
		return Preset{}, ErrCanceled
	}
	for _, p := range offered {
		if strings.EqualFold(p.Name, n.Name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknown, n.Name)
}

// Prompt lists the offered presets on Out and reads a 1-based choice from
// In. An empty line, "q" or end of input cancels.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// Pick implements Picker.
func (p Prompt) Pick(ctx context.Context, offered []Preset) (Preset, error) {
	if len(offered) == 0 {
		return Preset{}, ErrCanceled
	}
	fmt.Fprintln(p.Out, "Canvas Presets")
	for i, ps := range offered {
		fmt.Fprintf(p.Out, "  %d) %s\n", i+1, ps)
	}

	sc := bufio.NewScanner(p.In)
	for {
		fmt.Fprint(p.Out, "choice (empty to cancel): ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return Preset{}, fmt.Errorf("presets: read choice: %w", err)
			}
			return Preset{}, ErrCanceled
		}
		if err := ctx.Err(); err != nil {
			return Preset{}, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.EqualFold(line, "q") {
			return Preset{}, ErrCanceled
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(offered) {
			fmt.Fprintf(p.Out, "enter a number between 1 and %d\n", len(offered))
			continue
		}
		return offered[n-1], nil
	}
}
