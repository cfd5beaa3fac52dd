package text

import (
	"math"

	"github.com/gogpu/codeshot/internal/cache"
)

// GlyphKey identifies a rasterized glyph in the GlyphCache.
type GlyphKey struct {
	// FontID is the FontSource identifier.
	FontID uint64

	// GID is the glyph index.
	GID GlyphID

	// SizeBits holds math.Float32bits of the pixel size.
	SizeBits uint32

	// SubX is the quantized horizontal subpixel index.
	SubX uint8
}

// NewGlyphKey builds the cache key for a glyph of face at subpixel index subX.
func NewGlyphKey(face *Face, gid GlyphID, subX uint8) GlyphKey {
	return GlyphKey{
		FontID:   face.Source().ID(),
		GID:      gid,
		SizeBits: math.Float32bits(float32(face.Size())),
		SubX:     subX,
	}
}

// GlyphCacheConfig holds configuration for GlyphCache.
type GlyphCacheConfig struct {
	// MaxEntries is the maximum number of cached masks.
	MaxEntries int

	// Subpixel is the horizontal subpixel positioning mode.
	Subpixel SubpixelMode
}

// DefaultGlyphCacheConfig returns the default configuration:
// 4096 masks with 4 horizontal subpixel positions.
func DefaultGlyphCacheConfig() GlyphCacheConfig {
	return GlyphCacheConfig{
		MaxEntries: 4096,
		Subpixel:   Subpixel4,
	}
}

// GlyphCache is an LRU cache of rasterized glyph masks.
// Empty glyphs are cached too, so whitespace is never reloaded.
//
// GlyphCache is not safe for concurrent use.
type GlyphCache struct {
	lru *cache.LRU[GlyphKey, *GlyphMask]
}

// NewGlyphCache creates a glyph cache holding at most maxEntries masks.
func NewGlyphCache(maxEntries int) *GlyphCache {
	return &GlyphCache{lru: cache.New[GlyphKey, *GlyphMask](maxEntries)}
}

// Get returns the cached mask for key.
func (c *GlyphCache) Get(key GlyphKey) (*GlyphMask, bool) {
	return c.lru.Get(key)
}

// Set stores a mask.
func (c *GlyphCache) Set(key GlyphKey, mask *GlyphMask) {
	c.lru.Put(key, mask)
}

// GetOrCreate returns the cached mask or rasterizes it with create.
func (c *GlyphCache) GetOrCreate(key GlyphKey, create func() (*GlyphMask, error)) (*GlyphMask, error) {
	return c.lru.GetOrCreate(key, create)
}

// Len returns the number of cached masks.
func (c *GlyphCache) Len() int {
	return c.lru.Len()
}

// Stats returns hit, miss and eviction counters.
func (c *GlyphCache) Stats() cache.Stats {
	return c.lru.Stats()
}

// Clear drops every cached mask.
func (c *GlyphCache) Clear() {
	c.lru.Clear()
}
