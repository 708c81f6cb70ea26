package ggedit

import (
	"image/color"

	"github.com/gogpu/ggedit/bgremove"
	"github.com/gogpu/ggedit/codec"
	"github.com/gogpu/ggedit/interact"
	"github.com/gogpu/ggedit/render"
	"github.com/gogpu/ggedit/surface"
	"github.com/gogpu/ggedit/transform"
)

// Default canvas size.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

// Option configures an Editor during creation.
//
// Example:
//
//	ed, err := ggedit.New(
//	    ggedit.WithCanvasSize(1080, 1080),
//	    ggedit.WithRemover(bgremove.NewClient(key)),
//	)
type Option func(*options)

// options holds optional configuration for Editor creation.
type options struct {
	width, height int
	surface       surface.Surface
	faces         render.FaceResolver
	remover       bgremove.Service
	decoder       *codec.Decoder
	historyLimit  int
	policy        interact.ClickPolicy
	geometry      transform.Geometry
	style         *render.Style
	background    color.Color
	onInvalidate  func()
}

// defaultOptions returns the default editor options.
func defaultOptions() options {
	return options{
		width:    DefaultCanvasWidth,
		height:   DefaultCanvasHeight,
		policy:   interact.KeepSelection,
		geometry: transform.DefaultGeometry(),
	}
}

// WithCanvasSize sets the initial canvas size in pixels.
func WithCanvasSize(w, h int) Option {
	return func(o *options) {
		o.width, o.height = w, h
	}
}

// WithSurface sets the display surface. It is resized to the canvas.
// By default the highest-priority surface from the surface registry is
// used.
func WithSurface(s surface.Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithFonts sets the font resolver for text layers. By default a
// fonts.Resolver without system font lookup is used.
func WithFonts(r render.FaceResolver) Option {
	return func(o *options) {
		o.faces = r
	}
}

// WithRemover enables RemoveBackground with the given service.
func WithRemover(s bgremove.Service) Option {
	return func(o *options) {
		o.remover = s
	}
}

// WithDecoder sets the decoder used by ImportImages.
func WithDecoder(d *codec.Decoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// WithHistoryLimit bounds the undo stack. Zero means unbounded.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		o.historyLimit = n
	}
}

// WithClickPolicy sets what a click on empty canvas does to the selection.
func WithClickPolicy(p interact.ClickPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithGeometry sets the size and placement of the interaction handles.
// The same geometry is used for hit testing and drawing.
func WithGeometry(g transform.Geometry) Option {
	return func(o *options) {
		o.geometry = g
	}
}

// WithStyle sets the look of the selection decorations. The handle
// geometry of s is replaced by the one set with WithGeometry.
func WithStyle(s render.Style) Option {
	return func(o *options) {
		o.style = &s
	}
}

// WithBackground sets the canvas background. The default is transparent.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithInvalidateHook registers fn to be called whenever the display needs
// repainting. fn runs while the editor is locked and must not call back
// into the Editor.
func WithInvalidateHook(fn func()) Option {
	return func(o *options) {
		o.onInvalidate = fn
	}
}
