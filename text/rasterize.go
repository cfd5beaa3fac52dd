package text

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// GlyphMask is a rasterized glyph coverage mask.
// Offset is the position of the mask's top-left pixel relative to the
// integer pen position on the baseline.
type GlyphMask struct {
	Mask   *image.Alpha
	Offset image.Point
}

// Empty reports whether the mask covers no pixels (e.g. a space).
func (m *GlyphMask) Empty() bool {
	return m == nil || m.Mask == nil
}

// Rasterizer converts glyph outlines into anti-aliased coverage masks.
// Rasterizer reuses its buffers and is not safe for concurrent use.
type Rasterizer struct {
	buf sfnt.Buffer
	vec vector.Rasterizer
}

// NewRasterizer creates a Rasterizer.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Rasterize renders glyph gid of face with the pen shifted right by subX
// pixels. Glyphs without ink yield an empty mask and no error.
func (r *Rasterizer) Rasterize(face *Face, gid GlyphID, subX float64) (*GlyphMask, error) {
	f := face.Source().sfnt
	segments, err := f.LoadGlyph(&r.buf, sfnt.GlyphIndex(gid), face.PPEM(), nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			err = ErrColoredGlyph
		}
		return nil, &GlyphError{GID: gid, Err: err}
	}
	if len(segments) == 0 {
		return &GlyphMask{}, nil
	}

	bounds := segments.Bounds()
	minX := int(math.Floor(fixedToFloat(bounds.Min.X) + subX))
	minY := int(math.Floor(fixedToFloat(bounds.Min.Y)))
	maxX := int(math.Ceil(fixedToFloat(bounds.Max.X) + subX))
	maxY := int(math.Ceil(fixedToFloat(bounds.Max.Y)))
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return &GlyphMask{}, nil
	}

	dx := float32(subX) - float32(minX)
	dy := -float32(minY)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 + dx, float32(p.Y)/64 + dy
	}

	r.vec.Reset(w, h)
	open := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.vec.ClosePath()
			}
			r.vec.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			r.vec.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			r.vec.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			r.vec.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	if open {
		r.vec.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.vec.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &GlyphMask{Mask: mask, Offset: image.Pt(minX, minY)}, nil
}
