package cache

import (
	"hash/fnv"
	"io"
	"math"

	lru "github.com/gogpu/codeshot/internal/cache"
	"github.com/gogpu/codeshot/text"
)

// DefaultCapacity is the default maximum number of shaped lines.
const DefaultCapacity = 2048

// ShapingKey identifies one shaped line.
type ShapingKey struct {
	TextHash uint64
	FontID   uint64
	SizeBits uint32
}

// NewShapingKey builds the key for line s shaped with the given font and size.
func NewShapingKey(s string, fontID uint64, size float32) ShapingKey {
	return ShapingKey{
		TextHash: hashString(s),
		FontID:   fontID,
		SizeBits: math.Float32bits(size),
	}
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = io.WriteString(h, s)
	return h.Sum64()
}

// entry keeps the text alongside the glyphs so hash collisions miss.
type entry struct {
	text   string
	glyphs []text.ShapedGlyph
}

// ShapingCache is an LRU cache of shaped lines in front of a text.Shaper.
// It implements text.Shaper itself.
//
// ShapingCache is not safe for concurrent use.
type ShapingCache struct {
	next    text.Shaper
	entries *lru.LRU[ShapingKey, entry]
}

var _ text.Shaper = (*ShapingCache)(nil)

// NewShapingCache wraps next with a cache of at most capacity lines.
// If capacity <= 0, DefaultCapacity is used.
func NewShapingCache(next text.Shaper, capacity int) *ShapingCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ShapingCache{
		next:    next,
		entries: lru.New[ShapingKey, entry](capacity),
	}
}

// Shape returns cached glyphs for s, shaping and storing them on a miss.
// The returned slice is shared with the cache and must not be modified.
func (c *ShapingCache) Shape(s string, face *text.Face) []text.ShapedGlyph {
	if s == "" || face == nil {
		return nil
	}

	key := NewShapingKey(s, face.Source().ID(), float32(face.Size()))
	if e, ok := c.entries.Get(key); ok && e.text == s {
		return e.glyphs
	}

	glyphs := c.next.Shape(s, face)
	c.entries.Put(key, entry{text: s, glyphs: glyphs})
	return glyphs
}

// Len returns the number of cached lines.
func (c *ShapingCache) Len() int {
	return c.entries.Len()
}

// Stats returns hit, miss and eviction counters.
func (c *ShapingCache) Stats() lru.Stats {
	return c.entries.Stats()
}

// Clear drops every cached line.
func (c *ShapingCache) Clear() {
	c.entries.Clear()
}
