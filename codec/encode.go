// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Export defaults.
const (
	// DefaultFormat is used when ExportImage is given an empty format.
	DefaultFormat = "png"

	// DefaultJPEGQuality is the quality of the built-in jpeg encoder.
	DefaultJPEGQuality = 92

	// FilenameBase is the stem of suggested export filenames.
	FilenameBase = "edited-image"
)

// Encoder writes an image in one format.
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
	// MIMEType is the media type of the output, e.g. "image/png".
	MIMEType() string
	// Extension is the filename extension without the dot.
	Extension() string
}

// EncoderFunc adapts a plain encode function to Encoder.
type EncoderFunc struct {
	Fn   func(w io.Writer, img image.Image) error
	MIME string
	Ext  string
}

// Encode calls f.Fn.
func (f EncoderFunc) Encode(w io.Writer, img image.Image) error { return f.Fn(w, img) }

// MIMEType returns f.MIME.
func (f EncoderFunc) MIMEType() string { return f.MIME }

// Extension returns f.Ext.
func (f EncoderFunc) Extension() string { return f.Ext }

// Encoded is the output of Encode.
type Encoded struct {
	Data     []byte
	MIMEType string
	Filename string
}

var (
	encodersMu sync.RWMutex
	encoders   = make(map[string]Encoder)
)

// RegisterEncoder makes an encoder available under name, typically from an
// init function:
//
//	func init() {
//	    codec.RegisterEncoder("webp", webpEncoder{})
//	}
//
// Names are case-insensitive. RegisterEncoder panics if enc is nil or the
// name is already taken.
func RegisterEncoder(name string, enc Encoder) {
	encodersMu.Lock()
	defer encodersMu.Unlock()

	if enc == nil {
		panic("codec: RegisterEncoder encoder is nil")
	}
	key := strings.ToLower(name)
	if _, dup := encoders[key]; dup {
		panic("codec: RegisterEncoder called twice for " + name)
	}
	encoders[key] = enc
}

// UnregisterEncoder removes an encoder. Missing names are ignored.
func UnregisterEncoder(name string) {
	encodersMu.Lock()
	defer encodersMu.Unlock()
	delete(encoders, strings.ToLower(name))
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	encodersMu.RLock()
	defer encodersMu.RUnlock()

	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupEncoder returns the encoder for format. An empty format selects
// DefaultFormat.
func LookupEncoder(format string) (Encoder, error) {
	if format == "" {
		format = DefaultFormat
	}
	encodersMu.RLock()
	enc, ok := encoders[strings.ToLower(format)]
	encodersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("codec: unknown export format %q (forgotten import?)", format)
	}
	return enc, nil
}

// Encode encodes img in format and suggests a filename.
func Encode(img image.Image, format string) (*Encoded, error) {
	enc, err := LookupEncoder(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("codec: encode %s: %w", enc.Extension(), err)
	}
	return &Encoded{
		Data:     buf.Bytes(),
		MIMEType: enc.MIMEType(),
		Filename: FilenameBase + "." + enc.Extension(),
	}, nil
}

// Flatten composites img over an opaque background.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Over)
	return dst
}

func init() {
	RegisterEncoder("png", EncoderFunc{
		Fn:   png.Encode,
		MIME: "image/png",
		Ext:  "png",
	})
	RegisterEncoder("jpeg", EncoderFunc{
		Fn: func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, Flatten(img, color.White), &jpeg.Options{Quality: DefaultJPEGQuality})
		},
		MIME: "image/jpeg",
		Ext:  "jpeg",
	})
	RegisterEncoder("bmp", EncoderFunc{
		Fn:   bmp.Encode,
		MIME: "image/bmp",
		Ext:  "bmp",
	})
	RegisterEncoder("tiff", EncoderFunc{
		Fn: func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		},
		MIME: "image/tiff",
		Ext:  "tiff",
	})
}
