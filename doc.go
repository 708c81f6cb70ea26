// Package ggedit is the core of an interactive 2D compositing editor built
// on gg.
//
// An [Editor] holds an ordered stack of image and text layers on a
// fixed-size canvas. Layers are moved, resized and rotated with pointer
// gestures or keyboard shortcuts, edited through typed property edits, and
// reordered or deleted with commands. Every change is undoable. The
// composited canvas is exported as PNG, JPEG, BMP or TIFF.
//
// # Quick Start
//
//	ed, err := ggedit.New(ggedit.WithCanvasSize(1200, 630))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ed.AddTextLayer("Hello")
//	ed.SetLayerProperty(layer.FontSize(48))
//	out, err := ed.ExportImage("png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(out.Filename, out.Data, 0o644)
//
// # Events
//
// A host feeds raw input to the editor with [Editor.PointerDown],
// [Editor.PointerMove], [Editor.PointerUp], [Editor.Click], [Editor.Wheel]
// and [Editor.Key]. Pointer positions are in host coordinates; set the
// canvas offset with [Editor.SetViewportOffset]. The display surface,
// including the selection outline and handles, is returned by
// [Editor.Surface]. Exports never contain decorations.
//
// # Concurrency
//
// All Editor methods are safe for concurrent use and run one at a time.
// Background removal runs asynchronously; its result is applied only if
// the layer is still part of the canvas when it arrives.
//
// # Logging
//
// ggedit is silent by default. Call [SetLogger] to receive debug, info and
// warning records from the editor and its sub-packages.
package ggedit
