package codeshot

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/codeshot/internal/cache"
)

// Pool shards rendering across N independent Renderers.
// Each call borrows one Renderer for its duration.
//
// Pool is safe for concurrent use.
type Pool struct {
	renderers chan *Renderer
	size      int

	// results memoises RenderCode output; nil when disabled.
	results *cache.Sharded[uint64, result]

	closeOnce sync.Once
	done      chan struct{}
}

// result is a memoised render. source and hint guard against hash collisions.
type result struct {
	source string
	hint   string
	png    []byte
}

// NewPool creates n Renderers configured with opts.
// n < 1 is treated as 1.
func NewPool(n int, opts ...Option) (*Pool, error) {
	n = max(n, 1)
	p := &Pool{
		renderers: make(chan *Renderer, n),
		size:      n,
		done:      make(chan struct{}),
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.resultCache > 0 {
		p.results = cache.NewSharded[uint64, result](o.resultCache, cache.Uint64Hasher)
	}
	for i := range n {
		r, err := NewRenderer(opts...)
		if err != nil {
			return nil, fmt.Errorf("codeshot: renderer %d: %w", i, err)
		}
		p.renderers <- r
	}
	return p, nil
}

// Size returns the number of Renderers in the pool.
func (p *Pool) Size() int {
	return p.size
}

// RenderCode waits for a free Renderer and renders with it.
// ctx bounds only the wait; a render that has started runs to completion.
// With WithResultCache, repeated inputs are answered without rendering.
func (p *Pool) RenderCode(ctx context.Context, source, hint string) ([]byte, error) {
	var key uint64
	if p.results != nil && !p.closed() {
		key = cache.StringHasher(hint + "\x00" + source)
		if res, ok := p.results.Get(key); ok && res.source == source && res.hint == hint {
			return bytes.Clone(res.png), nil
		}
	}

	r, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	png, err := r.RenderCode(source, hint)
	p.release(r)
	if err != nil {
		return nil, err
	}
	if p.results != nil {
		p.results.Put(key, result{source: source, hint: hint, png: bytes.Clone(png)})
	}
	return png, nil
}

// CacheStats reports result cache counters. It is zero without WithResultCache.
func (p *Pool) CacheStats() cache.Stats {
	if p.results == nil {
		return cache.Stats{}
	}
	return p.results.Stats()
}

// RenderImage is the Pool counterpart of Renderer.RenderImage.
func (p *Pool) RenderImage(ctx context.Context, source, hint string) (*image.NRGBA, error) {
	r, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.release(r)
	return r.RenderImage(source, hint)
}

// Close makes further calls fail with ErrPoolClosed.
// Renders in progress are not interrupted.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

func (p *Pool) closed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (p *Pool) acquire(ctx context.Context) (*Renderer, error) {
	if p.closed() {
		return nil, ErrPoolClosed
	}

	select {
	case r := <-p.renderers:
		return r, nil
	case <-p.done:
		return nil, ErrPoolClosed
	case <-ctx.Done():
		return nil, fmt.Errorf("codeshot: waiting for renderer: %w", ctx.Err())
	}
}

func (p *Pool) release(r *Renderer) {
	p.renderers <- r
}
