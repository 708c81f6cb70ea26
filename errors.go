package ggedit

import "errors"

var (
	// ErrInvalidCanvasSize is returned for a canvas width or height that is
	// not positive.
	ErrInvalidCanvasSize = errors.New("ggedit: canvas width and height must be positive")

	// ErrNoRemover is returned by RemoveBackground when the editor was
	// created without a background-removal service.
	ErrNoRemover = errors.New("ggedit: no background removal service configured")

	// ErrBusy is returned by RemoveBackground while another removal is in
	// progress.
	ErrBusy = errors.New("ggedit: background removal already in progress")

	// ErrLayerGone is delivered by RemoveBackground when the layer left the
	// canvas (deleted, or replaced by undo or redo) before the result
	// arrived. The result is discarded.
	ErrLayerGone = errors.New("ggedit: layer no longer on canvas")
)
