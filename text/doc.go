// Package text turns styled source lines into positioned glyphs and glyph
// coverage.
//
// The pipeline follows a separation of concerns:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF once)
//   - Face: lightweight font instance at a specific pixel size
//   - Shaper: text to glyph IDs and advances (HarfBuzz via go-text/typesetting)
//   - LayoutEngine: styled lines to positioned glyphs and canvas extent
//   - GlyphRenderer: positioned glyphs to a stream of coverage events
//
// # Example usage
//
//	engine := text.NewLayoutEngine(text.DefaultLayoutConfig(), text.GoMono(), text.NewGoTextShaper())
//	layout := engine.Layout(lines)
//
//	glyphs := text.NewGlyphRenderer(engine.Face(), text.DefaultGlyphCacheConfig())
//	err := glyphs.Draw(layout, func(c text.Coverage) {
//	    canvas.Blend(c)
//	})
//
// LayoutEngine and GlyphRenderer keep mutable caches and are not safe for
// concurrent use. FontSource and Face are immutable and may be shared.
package text
