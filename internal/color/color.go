// Package color provides the color types and color space conversions used by
// the rendering pipeline.
//
// Theme colors arrive gamma-encoded (sRGB, 8 bits per channel). All blending
// happens on linear float32 values; the encoder converts back to sRGB at the
// very end.
package color

// ColorF32 is a linear color with float32 channels, nominally in [0, 1].
// Whether it is premultiplied depends on where it is used.
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 is an 8-bit sRGB color with straight alpha.
type ColorU8 struct {
	R, G, B, A uint8
}

// RGB returns an opaque 8-bit color.
func RGB(r, g, b uint8) ColorU8 {
	return ColorU8{R: r, G: g, B: b, A: 255}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c ColorF32) WithAlpha(a float32) ColorF32 {
	c.A *= a
	return c
}
