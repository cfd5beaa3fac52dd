package text

// Metrics are the vertical font metrics of a Face, in pixels. Ascent and
// Descent are both positive distances from the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height is the extent of the glyph box, ascent plus descent. Lines are
// centred on it inside the configured line height.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

// LineHeight is the font's own recommended baseline-to-baseline distance.
func (m Metrics) LineHeight() float64 {
	return m.Height() + m.LineGap
}
