// Package codeshot renders source code to syntax-highlighted PNG images.
//
// # Quick Start
//
//	import "github.com/gogpu/codeshot"
//
//	r, err := codeshot.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	png, err := r.RenderCode("print('hi')", "py")
//
// # Pipeline
//
// A render is a pure function of (source, hint) given a Renderer:
//
//   - highlight: prepare the source, resolve the hint to a syntax and split
//     the token stream into styled lines
//   - text: shape each line (HarfBuzz), lay lines out and compute the canvas
//     extent, then rasterize glyphs into coverage events
//   - Composite: blend coverage over the theme background in linear,
//     premultiplied space
//   - Encode: convert to 8-bit sRGB and write a PNG
//
// # Concurrency
//
// A Renderer owns mutable shaping and glyph caches; concurrent RenderCode
// calls on one Renderer are serialized. Pool hands out N independent
// Renderers for parallel callers.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down.
package codeshot
