package codeshot

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPool_RenderCode(t *testing.T) {
	p, err := NewPool(3)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(p.Close)

	if p.Size() != 3 {
		t.Errorf("Size() = %d, want 3", p.Size())
	}

	want := mustRender(t, newTestRenderer(t), "let x = 1;", "rust")

	var wg sync.WaitGroup
	for range 12 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.RenderCode(context.Background(), "let x = 1;", "rust")
			if err != nil {
				t.Error(err)
				return
			}
			if !bytes.Equal(got, want) {
				t.Error("pooled render differs from direct render")
			}
		}()
	}
	wg.Wait()
}

func TestPool_MinimumSize(t *testing.T) {
	p, err := NewPool(0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Size() != 1 {
		t.Errorf("Size() = %d, want 1", p.Size())
	}
}

func TestPool_AcquireHonorsContext(t *testing.T) {
	p, err := NewPool(1)
	if err != nil {
		t.Fatal(err)
	}

	r, err := p.acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer p.release(r)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.RenderCode(ctx, "x", ""); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("RenderCode with busy pool = %v, want DeadlineExceeded", err)
	}
}

func TestPool_Close(t *testing.T) {
	p, err := NewPool(1)
	if err != nil {
		t.Fatal(err)
	}
	p.Close()
	p.Close()

	if _, err := p.RenderCode(context.Background(), "x", ""); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("RenderCode after Close = %v, want ErrPoolClosed", err)
	}
	if _, err := p.RenderImage(context.Background(), "x", ""); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("RenderImage after Close = %v, want ErrPoolClosed", err)
	}
}

func TestNewPool_BadOption(t *testing.T) {
	if _, err := NewPool(2, WithTheme("nope")); err == nil {
		t.Error("NewPool with unknown theme succeeded")
	}
}

func TestPool_ResultCache(t *testing.T) {
	p, err := NewPool(1, WithResultCache(8))
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(p.Close)

	ctx := context.Background()
	first, err := p.RenderCode(ctx, "x = 1", "py")
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.RenderCode(ctx, "x = 1", "py")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached render differs")
	}
	if _, err := p.RenderCode(ctx, "x = 1", "go"); err != nil {
		t.Fatal(err)
	}

	s := p.CacheStats()
	if s.Hits != 1 || s.Misses != 2 {
		t.Errorf("Hits/Misses = %d/%d, want 1/2", s.Hits, s.Misses)
	}

	// Callers own the returned slice.
	second[0] ^= 0xff
	third, _ := p.RenderCode(ctx, "x = 1", "py")
	if !bytes.Equal(first, third) {
		t.Error("mutating a result corrupted the cache")
	}

	p.Close()
	if _, err := p.RenderCode(ctx, "x = 1", "py"); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("closed pool: err = %v, want ErrPoolClosed", err)
	}
}
