package text

import (
	"testing"

	"github.com/gogpu/codeshot/highlight"
	"github.com/gogpu/codeshot/internal/color"
)

func collect(t *testing.T, r *GlyphRenderer, l Layout) []Coverage {
	t.Helper()
	var out []Coverage
	if err := r.Draw(l, func(c Coverage) { out = append(out, c) }); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	return out
}

func TestGlyphRenderer_Draw(t *testing.T) {
	e := newTestEngine()
	r := NewGlyphRenderer(e.Face(), DefaultGlyphCacheConfig())
	l := e.Layout(plainLines("print('hi')"))

	events := collect(t, r, l)
	if len(events) == 0 {
		t.Fatal("no coverage emitted")
	}

	fg := red.Linear()
	for _, c := range events {
		if c.Width != 1 || c.Height != 1 {
			t.Fatalf("event size %dx%d, want 1x1", c.Width, c.Height)
		}
		if c.Color.A <= 0 || c.Color.A > 1 {
			t.Fatalf("event alpha %v outside (0, 1]", c.Color.A)
		}
		if c.Color.R != fg.R || c.Color.G != fg.G || c.Color.B != fg.B {
			t.Fatalf("event color %+v, want straight %+v", c.Color, fg)
		}
		if c.X < 0 || c.Y < 0 || c.X >= l.Width || c.Y >= l.Height {
			t.Errorf("event (%d, %d) outside %dx%d canvas", c.X, c.Y, l.Width, l.Height)
		}
	}
}

func TestGlyphRenderer_Order(t *testing.T) {
	e := newTestEngine()
	r := NewGlyphRenderer(e.Face(), DefaultGlyphCacheConfig())

	// Two lines: every event of line 0 comes before any of line 1.
	events := collect(t, r, e.Layout(plainLines("a\nb")))
	mid := e.Baseline(0) + 24 + e.Face().Metrics().Descent + 1
	seenSecond := false
	for _, c := range events {
		second := float64(c.Y) > mid
		if seenSecond && !second {
			t.Fatal("line 0 coverage emitted after line 1")
		}
		seenSecond = seenSecond || second
	}
	if !seenSecond {
		t.Error("no coverage for line 1")
	}
}

func TestGlyphRenderer_CacheReuse(t *testing.T) {
	e := newTestEngine()
	r := NewGlyphRenderer(e.Face(), DefaultGlyphCacheConfig())
	l := e.Layout(plainLines("aaaa"))

	first := collect(t, r, l)
	misses := r.CacheStats().Misses
	if misses == 0 || misses > 4 {
		t.Errorf("misses after first draw = %d, want 1..4", misses)
	}

	second := collect(t, r, l)
	if got := r.CacheStats().Misses; got != misses {
		t.Errorf("second draw missed the cache: %d -> %d", misses, got)
	}
	if len(first) != len(second) {
		t.Fatalf("event counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("event %d differs between draws", i)
		}
	}
}

func TestGlyphRenderer_Whitespace(t *testing.T) {
	e := newTestEngine()
	r := NewGlyphRenderer(e.Face(), DefaultGlyphCacheConfig())

	if events := collect(t, r, e.Layout(plainLines("    "))); len(events) != 0 {
		t.Errorf("whitespace emitted %d events", len(events))
	}
}

func TestGlyphRenderer_TransparentForeground(t *testing.T) {
	e := newTestEngine()
	r := NewGlyphRenderer(e.Face(), DefaultGlyphCacheConfig())
	line := highlight.StyledLine{Spans: []highlight.StyledSpan{
		{Text: "x", Color: color.ColorU8{R: 255, A: 0}},
	}}

	for _, c := range collect(t, r, e.Layout([]highlight.StyledLine{line})) {
		if c.Color.A != 0 {
			t.Fatalf("alpha = %v, want 0 for transparent foreground", c.Color.A)
		}
	}
}
