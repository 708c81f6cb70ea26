// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the drawing target the editor renders into.
//
// Surface is deliberately small: clear, draw a bitmap or a string through an
// affine matrix, stroke and fill axis-aligned rectangles, stroke a line. The
// render pipeline needs nothing else, and a narrow interface keeps the
// pipeline testable without pixels.
//
// # Implementations
//
//   - ContextSurface: raster surface over a *gg.Context. Rectangles and
//     lines go through gg paths; bitmaps and text are resampled through the
//     matrix with golang.org/x/image/draw.
//   - Recorder: records every primitive as an Op. Tests inspect the ops;
//     Playback replays them onto another surface.
//
// # Registry
//
// Surfaces are created by name through a small registry, so hosts can plug
// in their own targets:
//
//	s, err := surface.NewSurfaceByName("raster", 800, 600)
//
// Both built-in implementations register themselves in init.
//
// # Coordinates
//
// Pixels, origin top-left, Y down. The matrix passed to DrawBitmap and
// DrawText maps canvas coordinates of the untransformed destination rect to
// surface pixels.
package surface
