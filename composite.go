package codeshot

import (
	"github.com/gogpu/codeshot/internal/color"
	"github.com/gogpu/codeshot/text"
)

// DrawFunc produces the coverage events of a layout, in order.
// text.GlyphRenderer.Draw is the usual implementation.
type DrawFunc func(layout text.Layout, emit func(text.Coverage)) error

// Composite creates a canvas sized by layout, filled with background, and
// blends every event produced by draw onto it in emission order.
func Composite(layout text.Layout, background color.ColorU8, draw DrawFunc) (*Canvas, error) {
	c := NewCanvas(layout.Width, layout.Height, background)
	if err := draw(layout, c.Blend); err != nil {
		return nil, err
	}
	return c, nil
}
