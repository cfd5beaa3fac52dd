package text

// GlyphID is a glyph index within a font.
type GlyphID uint16

// ShapedGlyph is a glyph with its position relative to the start of the run.
type ShapedGlyph struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// Cluster is the rune index in the shaped text that produced this glyph.
	Cluster int

	// X is the horizontal pen position, including any mark offset.
	X float64

	// Y is the vertical offset from the baseline, positive downwards.
	Y float64

	// XAdvance is the horizontal advance to the next glyph.
	XAdvance float64
}
