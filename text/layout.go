package text

import (
	"math"

	"github.com/gogpu/codeshot/highlight"
	"github.com/gogpu/codeshot/internal/color"
)

// LayoutConfig holds the typographic metrics of a rendered image.
// FontSize and LineHeight are in points and multiplied by Scale.
type LayoutConfig struct {
	FontSize   float64
	LineHeight float64
	Scale      float64
}

// DefaultLayoutConfig returns font size 32, line height 44 at scale 1.5.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		FontSize:   32,
		LineHeight: 44,
		Scale:      1.5,
	}
}

// PixelSize returns the font size in pixels.
func (c LayoutConfig) PixelSize() float64 {
	return c.FontSize * c.Scale
}

// PixelLineHeight returns the line height in pixels.
func (c LayoutConfig) PixelLineHeight() float64 {
	return c.LineHeight * c.Scale
}

// Margin returns the total margin added to each canvas dimension.
// It equals the pixel font size; glyphs are offset by half of it.
func (c LayoutConfig) Margin() int {
	return int(math.Ceil(c.PixelSize()))
}

// PositionedGlyph is a glyph placed relative to the layout origin.
// Y is the baseline position, including any shaping offset.
type PositionedGlyph struct {
	GID   GlyphID
	X, Y  float64
	Color color.ColorU8
}

// LayoutLine is one laid out source line.
type LayoutLine struct {
	Glyphs    []PositionedGlyph
	Width     float64
	BaselineY float64
}

// Layout is the result of laying out a document.
// Width and Height are the canvas dimensions, margin included.
type Layout struct {
	Lines  []LayoutLine
	Width  int
	Height int
	Margin int
}

// Origin returns the canvas position of the layout origin.
func (l Layout) Origin() (x, y float64) {
	half := float64(l.Margin) / 2
	return half, half
}

// LayoutEngine positions styled lines on a canvas.
//
// LayoutEngine is not safe for concurrent use when its Shaper is not.
type LayoutEngine struct {
	config     LayoutConfig
	face       *Face
	shaper     Shaper
	lineHeight float64
}

// NewLayoutEngine creates an engine laying out text from source with the
// given shaper.
func NewLayoutEngine(config LayoutConfig, source *FontSource, shaper Shaper) *LayoutEngine {
	return &LayoutEngine{
		config:     config,
		face:       source.Face(config.PixelSize()),
		shaper:     shaper,
		lineHeight: config.PixelLineHeight(),
	}
}

// Face returns the face glyphs are laid out with.
func (e *LayoutEngine) Face() *Face {
	return e.face
}

// Config returns the engine's metrics.
func (e *LayoutEngine) Config() LayoutConfig {
	return e.config
}

// Baseline returns the baseline y of line i, relative to the layout origin.
// The font's ascent+descent box is centred within the line height.
func (e *LayoutEngine) Baseline(i int) float64 {
	m := e.face.Metrics()
	return float64(i)*e.lineHeight + (e.lineHeight-m.Height())/2 + m.Ascent
}

// Layout shapes every line and computes the canvas extent.
// Zero lines yield the minimum canvas.
func (e *LayoutEngine) Layout(lines []highlight.StyledLine) Layout {
	out := Layout{
		Lines:  make([]LayoutLine, 0, len(lines)),
		Margin: e.config.Margin(),
	}

	var maxWidth, maxBaseline float64
	for i, line := range lines {
		ll := e.layoutLine(line, e.Baseline(i))
		maxWidth = math.Max(maxWidth, ll.Width)
		maxBaseline = math.Max(maxBaseline, ll.BaselineY)
		out.Lines = append(out.Lines, ll)
	}

	out.Width = int(math.Ceil(math.Max(1, maxWidth))) + out.Margin
	out.Height = int(math.Ceil(math.Max(1, maxBaseline))) + out.Margin
	return out
}

func (e *LayoutEngine) layoutLine(line highlight.StyledLine, baseline float64) LayoutLine {
	ll := LayoutLine{BaselineY: baseline}

	text, spanOf := flatten(line)
	glyphs := e.shaper.Shape(text, e.face)
	if len(glyphs) == 0 {
		return ll
	}

	ll.Glyphs = make([]PositionedGlyph, len(glyphs))
	for i, g := range glyphs {
		ll.Glyphs[i] = PositionedGlyph{
			GID:   g.GID,
			X:     g.X,
			Y:     baseline + g.Y,
			Color: line.Spans[spanAt(spanOf, g.Cluster)].Color,
		}
		ll.Width = math.Max(ll.Width, g.X+g.XAdvance)
	}
	return ll
}

// flatten joins the spans of line and maps every rune index to its span.
func flatten(line highlight.StyledLine) (string, []int) {
	text := line.Text()
	spanOf := make([]int, 0, len(text))
	for i, span := range line.Spans {
		for range span.Text {
			spanOf = append(spanOf, i)
		}
	}
	return text, spanOf
}

func spanAt(spanOf []int, cluster int) int {
	switch {
	case len(spanOf) == 0 || cluster < 0:
		return 0
	case cluster >= len(spanOf):
		return spanOf[len(spanOf)-1]
	default:
		return spanOf[cluster]
	}
}
