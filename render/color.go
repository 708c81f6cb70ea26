// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ErrBadColor is returned by ParseColor for strings it cannot interpret.
var ErrBadColor = errors.New("render: unrecognized color")

// ParseColor converts a color string to a color.Color. Hex forms go through
// gg.Hex; names are looked up case-insensitively in the CSS color table.
func ParseColor(spec string) (color.Color, error) {
	s := strings.TrimSpace(spec)
	if strings.HasPrefix(s, "#") {
		if !validHex(s[1:]) {
			return nil, fmt.Errorf("%w: %q", ErrBadColor, spec)
		}
		return gg.Hex(s).Color(), nil
	}
	name := strings.ToLower(s)
	switch name {
	case "transparent":
		return color.Transparent, nil
	case "rebeccapurple":
		// CSS Color 4; x/image/colornames stops at SVG 1.1.
		return color.RGBA{0x66, 0x33, 0x99, 0xff}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrBadColor, spec)
}

func validHex(h string) bool {
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for i := 0; i < len(h); i++ {
		c := h[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
