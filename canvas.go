package codeshot

import (
	"image"

	"github.com/gogpu/codeshot/internal/color"
	"github.com/gogpu/codeshot/text"
)

// Canvas is a rectangular buffer of linear, premultiplied RGBA pixels.
type Canvas struct {
	width  int
	height int
	pix    []color.ColorF32
}

// NewCanvas creates a canvas filled with the background color bg (sRGB).
// Negative dimensions are treated as zero.
func NewCanvas(width, height int, bg color.ColorU8) *Canvas {
	width, height = max(width, 0), max(height, 0)
	c := &Canvas{
		width:  width,
		height: height,
		pix:    make([]color.ColorF32, width*height),
	}
	c.Clear(bg)
	return c
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the height of the canvas.
func (c *Canvas) Height() int {
	return c.height
}

// Clear fills the canvas with bg (sRGB, straight alpha).
func (c *Canvas) Clear(bg color.ColorU8) {
	p := bg.Linear().Premultiply()
	for i := range c.pix {
		c.pix[i] = p
	}
}

// At returns the premultiplied linear pixel at (x, y).
// Out-of-bounds reads return transparent black.
func (c *Canvas) At(x, y int) color.ColorF32 {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return color.ColorF32{}
	}
	return c.pix[y*c.width+x]
}

// Blend composites a coverage event with the Over operator.
// Only the part of the event inside the canvas is written.
func (c *Canvas) Blend(cov text.Coverage) {
	x0, y0 := max(cov.X, 0), max(cov.Y, 0)
	x1, y1 := min(cov.X+cov.Width, c.width), min(cov.Y+cov.Height, c.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	src := cov.Color.Premultiply()
	if src.A <= 0 {
		return
	}
	for y := y0; y < y1; y++ {
		row := c.pix[y*c.width : (y+1)*c.width]
		for x := x0; x < x1; x++ {
			row[x] = color.Over(src, row[x])
		}
	}
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ToNRGBA converts the canvas to an 8-bit sRGB image with straight alpha.
func (c *Canvas) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(c.Bounds())
	for i, p := range c.pix {
		u := color.Encode(p.Unpremultiply())
		o := i * 4
		img.Pix[o+0] = u.R
		img.Pix[o+1] = u.G
		img.Pix[o+2] = u.B
		img.Pix[o+3] = u.A
	}
	return img
}
