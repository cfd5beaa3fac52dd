package cache

import (
	"testing"

	"github.com/gogpu/codeshot/text"
)

// countingShaper records how often the wrapped shaper runs.
type countingShaper struct {
	calls int
	next  text.Shaper
}

func (s *countingShaper) Shape(str string, face *text.Face) []text.ShapedGlyph {
	s.calls++
	return s.next.Shape(str, face)
}

func TestNewShapingKey(t *testing.T) {
	a := NewShapingKey("hello", 1, 48)
	if a != NewShapingKey("hello", 1, 48) {
		t.Error("equal inputs produced different keys")
	}

	tests := []struct {
		name string
		key  ShapingKey
	}{
		{"text", NewShapingKey("hellp", 1, 48)},
		{"font", NewShapingKey("hello", 2, 48)},
		{"size", NewShapingKey("hello", 1, 48.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == a {
				t.Errorf("changing %s did not change the key", tt.name)
			}
		})
	}
}

func TestShapingCache_Memoises(t *testing.T) {
	inner := &countingShaper{next: text.NewGoTextShaper()}
	c := NewShapingCache(inner, 0)
	face := text.GoMono().Face(48)

	first := c.Shape("}", face)
	second := c.Shape("}", face)

	if inner.calls != 1 {
		t.Errorf("inner shaper called %d times, want 1", inner.calls)
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}

	c.Shape("}", text.GoMono().Face(24))
	if inner.calls != 2 {
		t.Errorf("different size must miss, calls = %d", inner.calls)
	}

	if s := c.Stats(); s.Hits != 1 || s.Misses != 2 {
		t.Errorf("Stats() = %+v, want 1 hit 2 misses", s)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestShapingCache_Empty(t *testing.T) {
	inner := &countingShaper{next: text.NewGoTextShaper()}
	c := NewShapingCache(inner, 4)

	if got := c.Shape("", text.GoMono().Face(48)); got != nil {
		t.Errorf("Shape(\"\") = %v, want nil", got)
	}
	if got := c.Shape("x", nil); got != nil {
		t.Errorf("Shape with nil face = %v, want nil", got)
	}
	if inner.calls != 0 {
		t.Errorf("inner shaper called %d times for empty input", inner.calls)
	}
}

func TestShapingCache_Capacity(t *testing.T) {
	inner := &countingShaper{next: text.NewGoTextShaper()}
	c := NewShapingCache(inner, 2)
	face := text.GoMono().Face(48)

	for _, s := range []string{"a", "b", "c", "a"} {
		c.Shape(s, face)
	}
	if inner.calls != 4 {
		t.Errorf("calls = %d, want 4 (a evicted before reuse)", inner.calls)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}
