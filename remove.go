package ggedit

import (
	"context"
	"errors"
	"image"
	"math"

	"github.com/gogpu/ggedit/bgremove"
	"github.com/gogpu/ggedit/layer"
	xdraw "golang.org/x/image/draw"
)

// RemoveBackground sends the selected image layer, rendered at its current
// box size, to the background-removal service and replaces the layer's
// content with the result.
//
// The call returns at once. The returned channel receives exactly one value
// and is then closed: nil on success or when there is nothing to do (no
// selection, or a text layer), ErrNoRemover, ErrBusy, a
// *bgremove.ServiceError, or ErrLayerGone when the layer left the canvas
// before the result arrived. Busy reports true until the value is sent.
// The replacement is one undoable step.
func (e *Editor) RemoveBackground(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	finish := func(err error) {
		done <- err
		close(done)
	}

	e.mu.Lock()
	target := e.selected
	switch {
	case target == nil || target.Kind() != layer.KindImage:
		e.mu.Unlock()
		finish(nil)
		return done
	case e.opts.remover == nil:
		e.mu.Unlock()
		finish(ErrNoRemover)
		return done
	case e.busy:
		e.mu.Unlock()
		finish(ErrBusy)
		return done
	}
	snapshot := boxSnapshot(target)
	e.busy = true
	remover := e.opts.remover
	e.mu.Unlock()

	Logger().Info("ggedit: background removal started", "layer", target)
	go func() {
		out, err := remover.Remove(ctx, snapshot)
		finish(e.applyRemoval(target, out, err))
	}()
	return done
}

func (e *Editor) applyRemoval(target *layer.Layer, out image.Image, err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = false

	if err == nil && out == nil {
		err = bgremove.ErrNoImage
	}
	if err != nil {
		Logger().Warn("ggedit: background removal failed", "layer", target, "err", err)
		var se *bgremove.ServiceError
		if errors.As(err, &se) {
			return err
		}
		return &bgremove.ServiceError{Err: err}
	}
	if !e.layers.Contains(target) {
		Logger().Info("ggedit: background removal result discarded", "layer", target)
		return ErrLayerGone
	}

	e.hist.Commit(e.layers)
	target.SetBitmap(layer.NewBitmap(out))
	e.invalidate()
	Logger().Info("ggedit: background removed", "layer", target)
	return nil
}

// Busy reports whether a background removal is in progress.
func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// boxSnapshot draws the layer's bitmap at its box size, unrotated.
func boxSnapshot(l *layer.Layer) image.Image {
	w := max(1, int(math.Round(l.Width())))
	h := max(1, int(math.Round(l.Height())))
	src := l.Bitmap().Image()
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
