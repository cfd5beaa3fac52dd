package color

import "math"

// decodeTable holds the linear value of every 8-bit sRGB channel value.
var decodeTable = func() (t [256]float32) {
	for i := range t {
		t[i] = float32(decode(float64(i) / 255))
	}
	return t
}()

// decode is the sRGB electro-optical transfer function.
func decode(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// encode is the inverse of decode.
func encode(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// Linear converts an 8-bit sRGB color to straight-alpha linear float32.
func (c ColorU8) Linear() ColorF32 {
	return ColorF32{
		R: decodeTable[c.R],
		G: decodeTable[c.G],
		B: decodeTable[c.B],
		A: float32(c.A) / 255,
	}
}

// Encode converts a straight-alpha linear color to 8-bit sRGB. Channels are
// clamped to [0, 1] first. Encode(c.Linear()) == c for every opaque c.
func Encode(c ColorF32) ColorU8 {
	return ColorU8{
		R: quantize(encode(float64(unit(c.R)))),
		G: quantize(encode(float64(unit(c.G)))),
		B: quantize(encode(float64(unit(c.B)))),
		A: quantize(float64(unit(c.A))),
	}
}

func unit(v float32) float32 {
	return min(max(v, 0), 1)
}

func quantize(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}
