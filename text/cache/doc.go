// Package cache memoises text shaping.
//
// ShapingCache wraps any text.Shaper and remembers the glyphs produced for
// each (text, font, size) combination. Source code repeats lines often
// (closing braces, blank-ish lines, imports), so a per-renderer cache skips
// most HarfBuzz calls:
//
//	shaper := cache.NewShapingCache(text.NewGoTextShaper(), cache.DefaultCapacity)
//	engine := text.NewLayoutEngine(text.DefaultLayoutConfig(), text.GoMono(), shaper)
package cache
