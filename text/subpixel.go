package text

import "math"

// SubpixelMode is the number of horizontal positions a glyph may take
// within one pixel. Every position is rasterized and cached on its own.
type SubpixelMode int

const (
	// SubpixelNone snaps glyphs to whole pixels.
	SubpixelNone SubpixelMode = 0

	// Subpixel4 places glyphs at quarter pixels.
	Subpixel4 SubpixelMode = 4
)

// positions returns how many offsets the mode distinguishes, at least 1.
func (m SubpixelMode) positions() int {
	return max(int(m), 1)
}

// Quantize splits a horizontal pen position into the pixel column and the
// subpixel index the glyph is drawn at. Without subpixel positioning the
// position is rounded half up and the index is 0.
func Quantize(pos float64, mode SubpixelMode) (px int, sub uint8) {
	if mode <= SubpixelNone {
		return int(math.Floor(pos + 0.5)), 0
	}
	whole := math.Floor(pos)
	n := mode.positions()
	i := min(int((pos-whole)*float64(n)), n-1)
	return int(whole), uint8(i) //nolint:gosec // i is in [0, n)
}

// SubpixelOffset returns the fractional x offset of subpixel index sub.
func SubpixelOffset(sub uint8, mode SubpixelMode) float64 {
	if mode <= SubpixelNone {
		return 0
	}
	return float64(sub) / float64(mode.positions())
}
