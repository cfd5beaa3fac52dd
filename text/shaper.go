package text

// Shaper converts a run of text into positioned glyphs.
//
// Implementations return nil for empty text. The returned slice may be
// shared with a cache and must not be modified.
type Shaper interface {
	Shape(text string, face *Face) []ShapedGlyph
}
