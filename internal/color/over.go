package color

// Premultiply returns c with its color channels multiplied by alpha.
func (c ColorF32) Premultiply() ColorF32 {
	return ColorF32{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply reverses Premultiply. A fully transparent color maps to
// transparent black.
func (c ColorF32) Unpremultiply() ColorF32 {
	if c.A <= 0 {
		return ColorF32{}
	}
	inv := 1 / c.A
	return ColorF32{R: c.R * inv, G: c.G * inv, B: c.B * inv, A: c.A}
}

// Over composites src over dst (Porter-Duff source-over).
// Both colors are linear and premultiplied; so is the result.
//
//	out = src + dst * (1 - src.A)
func Over(src, dst ColorF32) ColorF32 {
	inv := 1 - src.A
	return ColorF32{
		R: src.R + dst.R*inv,
		G: src.G + dst.G*inv,
		B: src.B + dst.B*inv,
		A: src.A + dst.A*inv,
	}
}
