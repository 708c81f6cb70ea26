package ggedit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/ggedit/codec"
	"github.com/gogpu/ggedit/layer"
	"github.com/gogpu/ggedit/presets"
	"github.com/gogpu/ggedit/surface"
)

// ExportImage renders the canvas without selection decorations and encodes
// it. An empty format selects PNG; see codec.Formats for the others.
func (e *Editor) ExportImage(format string) (*codec.Encoded, error) {
	e.mu.Lock()
	frame := e.frame(false)
	frame.Layers = frame.Layers.Clone()
	w, h := e.width, e.height
	e.mu.Unlock()

	if _, err := codec.LookupEncoder(format); err != nil {
		return nil, err
	}

	off := surface.NewContextSurface(w, h)
	e.pipeline.Render(off, frame)
	out, err := codec.Encode(off.Image(), format)
	if err != nil {
		return nil, err
	}
	Logger().Info("ggedit: exported", "file", out.Filename, "bytes", len(out.Data), "layers", len(frame.Layers))
	return out, nil
}

// ImportImages decodes every reader concurrently and adds one image layer
// per decoded image, in input order, at its natural size. Inputs that fail
// to decode add nothing; their errors are joined into the returned error.
// The last added layer is selected.
func (e *Editor) ImportImages(ctx context.Context, inputs ...io.Reader) ([]*layer.Layer, error) {
	results := e.decoder.DecodeAll(ctx, inputs)

	e.mu.Lock()
	defer e.mu.Unlock()

	var added []*layer.Layer
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		added = append(added, e.addLayer(layer.NewImage(r.Bitmap)))
	}
	return added, errors.Join(errs...)
}

// ChooseCanvasSize asks picker for one of the catalog presets and applies
// it. If the picker cancels, the canvas is unchanged and the picker's
// error (presets.ErrCanceled) is returned.
func (e *Editor) ChooseCanvasSize(ctx context.Context, picker presets.Picker) (presets.Preset, error) {
	p, err := picker.Pick(ctx, presets.Catalog())
	if err != nil {
		return presets.Preset{}, err
	}
	if err := e.SetCanvasSize(p.Width, p.Height); err != nil {
		return presets.Preset{}, fmt.Errorf("ggedit: apply preset %s: %w", p.Name, err)
	}
	return p, nil
}
