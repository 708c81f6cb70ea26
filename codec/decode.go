// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package codec decodes imported images into layer bitmaps and encodes the
// composited canvas for export.
//
// Decoding understands PNG, JPEG, GIF, BMP, TIFF and WebP. Export encoders
// are looked up by format name; PNG, JPEG, BMP and TIFF are built in and
// further formats can be added with RegisterEncoder.
package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	// Decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/ggedit/internal/logx"
	"github.com/gogpu/ggedit/layer"
	"golang.org/x/sync/errgroup"
)

// Decoding limits.
const (
	// DefaultMaxPixels bounds width*height of a decoded image.
	DefaultMaxPixels = 64 << 20

	// DefaultConcurrency bounds parallel decodes in DecodeAll.
	DefaultConcurrency = 4
)

// ErrTooLarge is wrapped by DecodeError when an image exceeds the pixel limit.
var ErrTooLarge = errors.New("codec: image exceeds pixel limit")

// DecodeError reports a failed decode. No layer should be created for it.
type DecodeError struct {
	// Index is the position of the input in DecodeAll, or -1 for Decode.
	Index int
	// Format is the detected format, empty if detection failed.
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := "codec: decode"
	if e.Index >= 0 {
		msg += fmt.Sprintf(" input %d", e.Index)
	}
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	return msg + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Result is the outcome of decoding one input in DecodeAll.
type Result struct {
	Bitmap *layer.Bitmap
	Format string
	Err    error
}

// Decoder turns encoded image data into bitmaps.
type Decoder struct {
	maxPixels   int
	concurrency int
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithMaxPixels sets the pixel limit. Values <= 0 disable the limit.
func WithMaxPixels(n int) DecoderOption {
	return func(d *Decoder) {
		d.maxPixels = n
	}
}

// WithConcurrency sets how many inputs DecodeAll decodes at once.
func WithConcurrency(n int) DecoderOption {
	return func(d *Decoder) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		maxPixels:   DefaultMaxPixels,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads one image. Errors are *DecodeError.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (*layer.Bitmap, error) {
	b, _, err := d.decode(ctx, -1, r)
	return b, err
}

// DecodeAll decodes every input concurrently and returns one Result per
// input, in input order. A failed input does not stop the others; only
// cancellation of ctx does.
func (d *Decoder) DecodeAll(ctx context.Context, inputs []io.Reader) []Result {
	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, r := range inputs {
		g.Go(func() error {
			b, format, err := d.decode(gctx, i, r)
			results[i] = Result{Bitmap: b, Format: format, Err: err}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (d *Decoder) decode(ctx context.Context, index int, r io.Reader) (*layer.Bitmap, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", &DecodeError{Index: index, Err: err}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", &DecodeError{Index: index, Err: err}
	}
	if d.maxPixels > 0 {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, "", &DecodeError{Index: index, Err: err}
		}
		if cfg.Width*cfg.Height > d.maxPixels {
			return nil, format, &DecodeError{
				Index:  index,
				Format: format,
				Err:    fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height),
			}
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, &DecodeError{Index: index, Format: format, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, format, &DecodeError{Index: index, Format: format, Err: errors.New("empty image")}
	}
	if err := ctx.Err(); err != nil {
		return nil, format, &DecodeError{Index: index, Format: format, Err: err}
	}

	b := layer.NewBitmap(img)
	logx.Logger().Debug("codec: decoded", "format", format, "width", b.Width(), "height", b.Height())
	return b, format, nil
}
