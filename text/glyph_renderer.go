package text

import (
	"math"

	"github.com/gogpu/codeshot/internal/cache"
	"github.com/gogpu/codeshot/internal/color"
)

// Coverage is a rectangle of canvas pixels covered by a foreground color.
// Color is linear straight-alpha; its alpha already includes the
// anti-aliasing coverage. Glyph rendering emits 1×1 events.
type Coverage struct {
	X, Y          int
	Width, Height int
	Color         color.ColorF32
}

// GlyphRenderer converts positioned glyphs into coverage events.
// Masks are rasterized once per (glyph, size, subpixel offset) and kept in
// a GlyphCache.
//
// GlyphRenderer is not safe for concurrent use.
type GlyphRenderer struct {
	face     *Face
	cache    *GlyphCache
	raster   *Rasterizer
	subpixel SubpixelMode
}

// NewGlyphRenderer creates a renderer for glyphs of face.
func NewGlyphRenderer(face *Face, config GlyphCacheConfig) *GlyphRenderer {
	return &GlyphRenderer{
		face:     face,
		cache:    NewGlyphCache(config.MaxEntries),
		raster:   NewRasterizer(),
		subpixel: config.Subpixel,
	}
}

// Draw emits the coverage of every glyph in layout, lines top to bottom and
// glyphs left to right. Coordinates are canvas pixels; events may fall
// outside the canvas and are clamped by the consumer.
func (r *GlyphRenderer) Draw(layout Layout, emit func(Coverage)) error {
	ox, oy := layout.Origin()
	for _, line := range layout.Lines {
		for _, g := range line.Glyphs {
			if err := r.drawGlyph(g, ox, oy, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *GlyphRenderer) drawGlyph(g PositionedGlyph, ox, oy float64, emit func(Coverage)) error {
	x, subX := Quantize(ox+g.X, r.subpixel)
	y := int(math.Floor(oy + g.Y + 0.5))

	key := NewGlyphKey(r.face, g.GID, subX)
	mask, err := r.cache.GetOrCreate(key, func() (*GlyphMask, error) {
		return r.raster.Rasterize(r.face, g.GID, SubpixelOffset(subX, r.subpixel))
	})
	if err != nil {
		return err
	}
	if mask.Empty() {
		return nil
	}

	fg := g.Color.Linear()
	b := mask.Mask.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			a := mask.Mask.AlphaAt(px, py).A
			if a == 0 {
				continue
			}
			emit(Coverage{
				X:      x + mask.Offset.X + px - b.Min.X,
				Y:      y + mask.Offset.Y + py - b.Min.Y,
				Width:  1,
				Height: 1,
				Color:  fg.WithAlpha(float32(a) / 255),
			})
		}
	}
	return nil
}

// CacheStats returns the glyph cache counters.
func (r *GlyphRenderer) CacheStats() cache.Stats {
	return r.cache.Stats()
}

// Face returns the face being rendered.
func (r *GlyphRenderer) Face() *Face {
	return r.face
}
