package codeshot

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gogpu/codeshot/highlight"
	"github.com/gogpu/codeshot/text"
	"github.com/gogpu/codeshot/text/cache"
)

// Renderer turns source code into PNG images.
//
// A Renderer owns its shaping and glyph caches. It is safe for concurrent
// use; calls are serialized. Use Pool to render in parallel.
type Renderer struct {
	mu sync.Mutex

	theme       *highlight.Theme
	tabWidth    int
	lineNumbers bool

	shaper *cache.ShapingCache
	layout *text.LayoutEngine
	glyphs *text.GlyphRenderer
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	theme, err := highlight.LoadTheme(o.theme)
	if err != nil {
		return nil, fmt.Errorf("codeshot: %w", err)
	}

	font := o.font
	if font == nil {
		font = text.GoMono()
	}

	shaper := cache.NewShapingCache(text.NewGoTextShaper(), o.shapingCapacity)
	engine := text.NewLayoutEngine(o.layout, font, shaper)

	return &Renderer{
		theme:       theme,
		tabWidth:    o.tabWidth,
		lineNumbers: o.lineNumbers,
		shaper:      shaper,
		layout:      engine,
		glyphs:      text.NewGlyphRenderer(engine.Face(), o.glyphCache),
	}, nil
}

// Theme returns the renderer's color theme.
func (r *Renderer) Theme() *highlight.Theme {
	return r.theme
}

// RenderCode renders source highlighted per hint and returns PNG bytes.
// An unknown or empty hint renders plain text.
func (r *Renderer) RenderCode(source, hint string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.render(source, hint)
	if err != nil {
		return nil, err
	}
	return Encode(c)
}

// RenderImage renders like RenderCode but returns the decoded image.
func (r *Renderer) RenderImage(source, hint string) (*image.NRGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.render(source, hint)
	if err != nil {
		return nil, err
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, ErrInvalidCanvas
	}
	return c.ToNRGBA(), nil
}

func (r *Renderer) render(source, hint string) (*Canvas, error) {
	start := time.Now()

	syntax := highlight.Lookup(hint)
	lines, err := highlight.Highlight(highlight.Prepare(source, r.tabWidth), syntax, r.theme)
	if err != nil {
		return nil, fmt.Errorf("codeshot: highlight: %w", err)
	}
	if r.lineNumbers {
		lines = withLineNumbers(lines, r.theme.Gutter())
	}

	layout := r.layout.Layout(lines)
	c, err := Composite(layout, r.theme.Background(), r.glyphs.Draw)
	if err != nil {
		return nil, fmt.Errorf("codeshot: draw: %w", err)
	}

	glyphs, shaped := r.glyphs.CacheStats(), r.shaper.Stats()
	Logger().Debug("rendered code",
		"hint", hint,
		"syntax", syntax.Name(),
		"lines", len(lines),
		"width", c.width,
		"height", c.height,
		"duration", time.Since(start),
		"glyph_hits", glyphs.Hits,
		"glyph_misses", glyphs.Misses,
		"shape_hits", shaped.Hits,
		"shape_misses", shaped.Misses,
	)
	return c, nil
}
