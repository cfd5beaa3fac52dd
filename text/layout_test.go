package text

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/codeshot/highlight"
	"github.com/gogpu/codeshot/internal/color"
)

var (
	red  = color.RGB(255, 0, 0)
	blue = color.RGB(0, 0, 255)
)

func newTestEngine() *LayoutEngine {
	return NewLayoutEngine(DefaultLayoutConfig(), GoMono(), NewGoTextShaper())
}

func plainLines(src string) []highlight.StyledLine {
	if src == "" {
		return nil
	}
	var out []highlight.StyledLine
	for _, l := range strings.Split(src, "\n") {
		var line highlight.StyledLine
		if l != "" {
			line.Spans = []highlight.StyledSpan{{Text: l, Color: red}}
		}
		out = append(out, line)
	}
	return out
}

func TestLayoutConfig(t *testing.T) {
	c := DefaultLayoutConfig()
	if c.PixelSize() != 48 {
		t.Errorf("PixelSize() = %v, want 48", c.PixelSize())
	}
	if c.PixelLineHeight() != 66 {
		t.Errorf("PixelLineHeight() = %v, want 66", c.PixelLineHeight())
	}
	if c.Margin() != 48 {
		t.Errorf("Margin() = %d, want 48", c.Margin())
	}
}

func TestLayout_Empty(t *testing.T) {
	l := newTestEngine().Layout(nil)

	if len(l.Lines) != 0 {
		t.Errorf("len(Lines) = %d, want 0", len(l.Lines))
	}
	if l.Width != 49 || l.Height != 49 {
		t.Errorf("dims = %dx%d, want 49x49", l.Width, l.Height)
	}
	if x, y := l.Origin(); x != 24 || y != 24 {
		t.Errorf("Origin() = (%v, %v), want (24, 24)", x, y)
	}
}

func TestLayout_Baseline(t *testing.T) {
	e := newTestEngine()
	m := e.Face().Metrics()

	for i := range 3 {
		want := float64(i)*66 + (66-(m.Ascent+m.Descent))/2 + m.Ascent
		if got := e.Baseline(i); math.Abs(got-want) > 1e-9 {
			t.Errorf("Baseline(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestLayout_SingleLine(t *testing.T) {
	e := newTestEngine()
	l := e.Layout(plainLines("print('hi')"))

	if len(l.Lines) != 1 {
		t.Fatalf("len(Lines) = %d, want 1", len(l.Lines))
	}
	line := l.Lines[0]
	if len(line.Glyphs) != 11 {
		t.Fatalf("len(Glyphs) = %d, want 11", len(line.Glyphs))
	}

	wantW := int(math.Ceil(line.Width)) + 48
	wantH := int(math.Ceil(e.Baseline(0))) + 48
	if l.Width != wantW || l.Height != wantH {
		t.Errorf("dims = %dx%d, want %dx%d", l.Width, l.Height, wantW, wantH)
	}

	for i, g := range line.Glyphs {
		if g.Y != line.BaselineY {
			t.Errorf("glyph %d Y = %v, want baseline %v", i, g.Y, line.BaselineY)
		}
		if g.Color != red {
			t.Errorf("glyph %d Color = %v, want %v", i, g.Color, red)
		}
	}
}

func TestLayout_SpanColors(t *testing.T) {
	line := highlight.StyledLine{Spans: []highlight.StyledSpan{
		{Text: "ab", Color: red},
		{Text: "ñc", Color: blue},
	}}
	l := newTestEngine().Layout([]highlight.StyledLine{line})

	want := []color.ColorU8{red, red, blue, blue}
	glyphs := l.Lines[0].Glyphs
	if len(glyphs) != len(want) {
		t.Fatalf("len(Glyphs) = %d, want %d", len(glyphs), len(want))
	}
	for i, g := range glyphs {
		if g.Color != want[i] {
			t.Errorf("glyph %d Color = %v, want %v", i, g.Color, want[i])
		}
	}
}

func TestLayout_MonotonicGrowth(t *testing.T) {
	e := newTestEngine()

	t.Run("height", func(t *testing.T) {
		prev := e.Layout(plainLines("x"))
		src := "x"
		for range 5 {
			src += "\nx"
			next := e.Layout(plainLines(src))
			if next.Height <= prev.Height {
				t.Errorf("%d lines: height %d not greater than %d", len(next.Lines), next.Height, prev.Height)
			}
			prev = next
		}
	})

	t.Run("width", func(t *testing.T) {
		prev := e.Layout(plainLines("x"))
		src := "x"
		for range 5 {
			src += "x"
			next := e.Layout(plainLines(src))
			if next.Width <= prev.Width {
				t.Errorf("%d chars: width %d not greater than %d", len(src), next.Width, prev.Width)
			}
			prev = next
		}
	})
}

func TestLayout_BlankLinesCountTowardsHeight(t *testing.T) {
	e := newTestEngine()
	one := e.Layout(plainLines("a"))
	three := e.Layout(plainLines("a\n\nb"))

	if len(three.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(three.Lines))
	}
	if len(three.Lines[1].Glyphs) != 0 {
		t.Errorf("blank line has %d glyphs", len(three.Lines[1].Glyphs))
	}
	if want := one.Height + 2*66; three.Height < want-1 || three.Height > want+1 {
		t.Errorf("height = %d, want about %d", three.Height, want)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	e := newTestEngine()
	lines := plainLines("func main() {\n    fmt.Println(\"hi\")\n}")

	a := e.Layout(lines)
	b := e.Layout(lines)
	if a.Width != b.Width || a.Height != b.Height || len(a.Lines) != len(b.Lines) {
		t.Fatalf("layouts differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	for i := range a.Lines {
		for j := range a.Lines[i].Glyphs {
			if a.Lines[i].Glyphs[j] != b.Lines[i].Glyphs[j] {
				t.Errorf("line %d glyph %d differs", i, j)
			}
		}
	}
}

func TestSpanAt(t *testing.T) {
	spanOf := []int{0, 0, 1, 2}
	tests := []struct {
		cluster int
		want    int
	}{
		{-1, 0},
		{0, 0},
		{2, 1},
		{3, 2},
		{10, 2},
	}
	for _, tt := range tests {
		if got := spanAt(spanOf, tt.cluster); got != tt.want {
			t.Errorf("spanAt(%d) = %d, want %d", tt.cluster, got, tt.want)
		}
	}
	if got := spanAt(nil, 3); got != 0 {
		t.Errorf("spanAt(nil) = %d, want 0", got)
	}
}
