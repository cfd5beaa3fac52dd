// Package cache provides a generic least-recently-used cache.
//
// LRU is owned by a single goroutine at a time. The renderer that holds one
// serializes access through its own mutex, so the cache carries no locks:
//
//	c := cache.New[GlyphKey, *GlyphMask](4096)
//	c.Put(key, mask)
//	mask, ok := c.Get(key)
package cache
