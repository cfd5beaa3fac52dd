package codeshot

import (
	"bytes"
	"fmt"
	"image/png"
)

// Encode converts the canvas to 8-bit sRGB and encodes it as PNG.
func Encode(c *Canvas) ([]byte, error) {
	if c == nil || c.width <= 0 || c.height <= 0 {
		return nil, ErrInvalidCanvas
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, c.ToNRGBA()); err != nil {
		return nil, fmt.Errorf("codeshot: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
