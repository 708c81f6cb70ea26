package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/ggedit/layer"
)

// Script describes a composition: the canvas and the layers to place on
// it, back to front.
//
//	{
//	  "preset": "Facebook Post",
//	  "background": "white",
//	  "fonts": {"Brand": "fonts/brand.ttf"},
//	  "layers": [
//	    {"image": "photo.jpg", "x": 40, "y": 40, "width": 600, "removeBackground": true},
//	    {"text": "Hello", "x": 700, "y": 80, "fontSize": 64, "color": "#ff6600", "rotation": -8}
//	  ]
//	}
type Script struct {
	Width      int               `json:"width,omitempty"`
	Height     int               `json:"height,omitempty"`
	Preset     string            `json:"preset,omitempty"`
	Background string            `json:"background,omitempty"`
	Fonts      map[string]string `json:"fonts,omitempty"`
	Layers     []ScriptLayer     `json:"layers"`

	// dir resolves relative paths.
	dir string
}

// ScriptLayer is one layer of a Script. Exactly one of Image and Text is
// set. Unset geometry keeps the layer's defaults.
type ScriptLayer struct {
	Image string `json:"image,omitempty"`
	Text  string `json:"text,omitempty"`

	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	// Scale multiplies the size about the center after the other fields.
	Scale *float64 `json:"scale,omitempty"`

	FontSize   *float64 `json:"fontSize,omitempty"`
	FontFamily string   `json:"fontFamily,omitempty"`
	Color      string   `json:"color,omitempty"`

	RemoveBackground bool `json:"removeBackground,omitempty"`
}

// LoadScript reads a script file. Relative paths inside it are resolved
// against the file's directory.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// DecodeScript parses and validates a script.
func DecodeScript(r io.Reader) (*Script, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	if (s.Width == 0) != (s.Height == 0) {
		return errors.New("script: width and height must be set together")
	}
	if s.Width < 0 || s.Height < 0 {
		return errors.New("script: canvas size must be positive")
	}
	if s.Preset != "" && s.Width != 0 {
		return errors.New("script: set either preset or width/height")
	}
	for i, l := range s.Layers {
		if (l.Image == "") == (l.Text == "") {
			return fmt.Errorf("script: layer %d: set exactly one of image and text", i)
		}
		if l.Image != "" && (l.FontSize != nil || l.FontFamily != "" || l.Color != "") {
			return fmt.Errorf("script: layer %d: text style on an image layer", i)
		}
		if l.Text != "" && l.RemoveBackground {
			return fmt.Errorf("script: layer %d: removeBackground needs an image layer", i)
		}
	}
	return nil
}

// Path resolves p relative to the script's directory.
func (s *Script) Path(p string) string {
	if filepath.IsAbs(p) || s.dir == "" {
		return p
	}
	return filepath.Join(s.dir, p)
}

// Edits returns the property edits that configure l, in application order.
func (l ScriptLayer) Edits() []layer.Edit {
	var edits []layer.Edit
	add := func(v *float64, fn func(float64) layer.Edit) {
		if v != nil {
			edits = append(edits, fn(*v))
		}
	}
	add(l.Width, layer.Width)
	add(l.Height, layer.Height)
	add(l.X, layer.X)
	add(l.Y, layer.Y)
	add(l.Rotation, layer.Rotation)
	add(l.FontSize, layer.FontSize)
	if l.FontFamily != "" {
		edits = append(edits, layer.FontFamily(l.FontFamily))
	}
	if l.Color != "" {
		edits = append(edits, layer.Color(l.Color))
	}
	return edits
}
