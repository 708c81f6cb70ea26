package ggedit

import (
	"fmt"
	"sync"

	"github.com/gogpu/ggedit/codec"
	"github.com/gogpu/ggedit/fonts"
	"github.com/gogpu/ggedit/history"
	"github.com/gogpu/ggedit/interact"
	"github.com/gogpu/ggedit/layer"
	"github.com/gogpu/ggedit/render"
	"github.com/gogpu/ggedit/surface"
	"github.com/gogpu/ggedit/transform"
)

// Editor is the compositing editor. The zero value is not usable; create
// one with New.
type Editor struct {
	mu sync.Mutex

	layers   layer.List
	selected *layer.Layer
	width    int
	height   int

	hist     *history.Manager
	machine  *interact.Machine
	pipeline *render.Pipeline
	display  surface.Surface
	dirty    bool
	opts     options

	decoder *codec.Decoder
	busy    bool
}

// New creates an editor with an empty canvas.
func New(opts ...Option) (*Editor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvasSize, o.width, o.height)
	}

	display := o.surface
	if display == nil {
		s, err := surface.NewSurface(o.width, o.height)
		if err != nil {
			return nil, fmt.Errorf("ggedit: create display surface: %w", err)
		}
		display = s
	} else if display.Width() != o.width || display.Height() != o.height {
		if err := display.Resize(o.width, o.height); err != nil {
			return nil, fmt.Errorf("ggedit: resize display surface: %w", err)
		}
	}

	faces := o.faces
	if faces == nil {
		r, err := fonts.New()
		if err != nil {
			return nil, err
		}
		faces = r
	}

	style := render.DefaultStyle()
	if o.style != nil {
		style = *o.style
	}
	style.Geometry = o.geometry

	decoder := o.decoder
	if decoder == nil {
		decoder = codec.NewDecoder()
	}

	var histOpts []history.Option
	if o.historyLimit > 0 {
		histOpts = append(histOpts, history.WithLimit(o.historyLimit))
	}

	e := &Editor{
		width:    o.width,
		height:   o.height,
		hist:     history.New(histOpts...),
		pipeline: render.NewPipeline(render.WithFaces(faces), render.WithStyle(style)),
		display:  display,
		dirty:    true,
		opts:     o,
		decoder:  decoder,
	}
	e.machine = interact.New(document{e},
		interact.WithGeometry(o.geometry),
		interact.WithClickPolicy(o.policy))

	Logger().Info("ggedit: editor created", "width", o.width, "height", o.height)
	return e, nil
}

// AddImageLayer appends an image layer at the natural size of b, selects it
// and returns it.
func (e *Editor) AddImageLayer(b *layer.Bitmap) *layer.Layer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addLayer(layer.NewImage(b))
}

// AddTextLayer appends a text layer with the default style, selects it and
// returns it.
func (e *Editor) AddTextLayer(s string) *layer.Layer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addLayer(layer.NewText(s))
}

func (e *Editor) addLayer(l *layer.Layer) *layer.Layer {
	e.hist.Commit(e.layers)
	e.layers = append(e.layers, l)
	e.selected = l
	e.invalidate()
	Logger().Info("ggedit: layer added", "layer", l, "count", len(e.layers))
	return l
}

// SelectLayer selects l, or clears the selection when l is nil. It reports
// false, leaving the selection unchanged, if l is not on the canvas.
func (e *Editor) SelectLayer(l *layer.Layer) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l != nil && !e.layers.Contains(l) {
		return false
	}
	if l != e.selected {
		e.selected = l
		e.invalidate()
	}
	return true
}

// SetLayerProperty applies edit to the selected layer as one undoable step.
// Without a selection it does nothing. An edit that does not apply to the
// selected layer's kind returns layer.ErrWrongKind, and an empty edit
// returns layer.ErrEmptyEdit; neither records anything.
func (e *Editor) SetLayerProperty(edit layer.Edit) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected == nil {
		return nil
	}
	if err := edit.Check(e.selected.Kind()); err != nil {
		return err
	}
	e.hist.Commit(e.layers)
	if err := edit.Apply(e.selected); err != nil {
		return err
	}
	e.invalidate()
	return nil
}

// MoveLayer moves the selected layer one step in the paint order. It
// reports whether the order changed; nothing is recorded otherwise.
func (e *Editor) MoveLayer(dir layer.Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.layers.CanMove(e.selected, dir) {
		return false
	}
	e.hist.Commit(e.layers)
	e.layers.Move(e.selected, dir)
	e.invalidate()
	return true
}

// DeleteSelectedLayer removes the selected layer and selects the front
// layer, if any. It reports whether a layer was removed.
func (e *Editor) DeleteSelectedLayer() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deleteSelected()
}

func (e *Editor) deleteSelected() bool {
	if e.selected == nil {
		return false
	}
	e.machine.Cancel()
	e.hist.Commit(e.layers)
	gone := e.selected
	e.layers = e.layers.Without(gone)
	e.selected = e.layers.Last()
	e.invalidate()
	Logger().Info("ggedit: layer deleted", "layer", gone, "count", len(e.layers))
	return true
}

// Undo restores the previous history entry and selects the front layer.
// It reports false when there is nothing to undo.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.undo()
}

// Redo re-applies the last undone entry and selects the front layer.
// It reports false when there is nothing to redo.
func (e *Editor) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.redo()
}

func (e *Editor) undo() bool {
	list, ok := e.hist.Undo(e.layers)
	if !ok {
		return false
	}
	e.restore(list)
	return true
}

func (e *Editor) redo() bool {
	list, ok := e.hist.Redo(e.layers)
	if !ok {
		return false
	}
	e.restore(list)
	return true
}

func (e *Editor) restore(list layer.List) {
	e.machine.Cancel()
	e.layers = list
	e.selected = list.Last()
	e.invalidate()
}

// ScaleSelected scales the selected layer about its center by f as one
// undoable step. It reports false without a selection or for f <= 0.
func (e *Editor) ScaleSelected(f float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected == nil || f <= 0 {
		return false
	}
	e.hist.Commit(e.layers)
	transform.ScaleAboutCenter(e.selected, f)
	e.invalidate()
	return true
}

// SetCanvasSize changes the canvas size. Layers keep their positions.
func (e *Editor) SetCanvasSize(w, h int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setCanvasSize(w, h)
}

func (e *Editor) setCanvasSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCanvasSize, w, h)
	}
	if w == e.width && h == e.height {
		return nil
	}
	if err := e.display.Resize(w, h); err != nil {
		return fmt.Errorf("ggedit: resize display surface: %w", err)
	}
	e.width, e.height = w, h
	e.invalidate()
	Logger().Info("ggedit: canvas resized", "width", w, "height", h)
	return nil
}

// CanvasSize returns the canvas size in pixels.
func (e *Editor) CanvasSize() (w, h int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}

// Layers returns the layers in paint order, back to front. The slice is a
// copy; the layers are live and must only be changed through the Editor.
func (e *Editor) Layers() layer.List {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append(layer.List(nil), e.layers...)
}

// Selected returns the selected layer or nil.
func (e *Editor) Selected() *layer.Layer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// CanUndo reports whether Undo would change anything.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanUndo()
}

// CanRedo reports whether Redo would change anything.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanRedo()
}

// Surface returns the display surface, repainted first if anything changed
// since the last call. The surface shows the selection decorations.
func (e *Editor) Surface() surface.Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dirty {
		e.pipeline.Render(e.display, e.frame(true))
		e.dirty = false
	}
	return e.display
}

func (e *Editor) frame(decorate bool) render.Frame {
	return render.Frame{
		Layers:     e.layers,
		Selected:   e.selected,
		Decorate:   decorate,
		Background: e.opts.background,
	}
}

// invalidate marks the display stale. Callers hold e.mu.
func (e *Editor) invalidate() {
	e.dirty = true
	if e.opts.onInvalidate != nil {
		e.opts.onInvalidate()
	}
}

// document gives the interaction machine access to editor state. Its
// methods run with e.mu already held by the event entry points.
type document struct {
	e *Editor
}

func (d document) Layers() layer.List     { return d.e.layers }
func (d document) Selected() *layer.Layer { return d.e.selected }
func (d document) Select(l *layer.Layer)  { d.e.selected = l }
func (d document) Commit()                { d.e.hist.Commit(d.e.layers) }
func (d document) Invalidate()            { d.e.invalidate() }
func (d document) CanvasSize() (w, h int) { return d.e.width, d.e.height }
func (d document) DeleteSelected()        { d.e.deleteSelected() }
func (d document) Undo()                  { d.e.undo() }
func (d document) Redo()                  { d.e.redo() }

var _ interact.Document = document{}
