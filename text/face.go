package text

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is a font at a specific pixel size.
// Faces are cheap to create and immutable.
type Face struct {
	source  *FontSource
	size    float64
	metrics Metrics
}

func newFace(source *FontSource, size float64) *Face {
	f := &Face{source: source, size: size}

	var buf sfnt.Buffer
	m, err := source.sfnt.Metrics(&buf, f.PPEM(), font.HintingNone)
	if err == nil {
		f.metrics = Metrics{
			Ascent:  math.Abs(fixedToFloat(m.Ascent)),
			Descent: math.Abs(fixedToFloat(m.Descent)),
			LineGap: math.Max(0, fixedToFloat(m.Height-m.Ascent-m.Descent)),
		}
	} else {
		// Fonts without hhea/OS2 tables: use typical proportions.
		f.metrics = Metrics{Ascent: size * 0.8, Descent: size * 0.2}
	}
	return f
}

// Size returns the pixel size of the face.
func (f *Face) Size() float64 {
	return f.size
}

// PPEM returns the size as 26.6 fixed point pixels per em.
func (f *Face) PPEM() fixed.Int26_6 {
	return floatToFixed(f.size)
}

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource {
	return f.source
}

// Metrics returns the scaled font metrics.
func (f *Face) Metrics() Metrics {
	return f.metrics
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
// The fixed-point representation uses 6 fractional bits, so we multiply by 64.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(size * 64))
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
