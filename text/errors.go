package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrColoredGlyph is returned for glyphs that have no vector outline
	// (bitmap or color glyphs).
	ErrColoredGlyph = errors.New("text: glyph has no outline")
)

// GlyphError reports a glyph that could not be rasterized.
type GlyphError struct {
	GID GlyphID
	Err error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("text: rasterize glyph %d: %v", e.GID, e.Err)
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}
