package codeshot

import (
	"github.com/gogpu/codeshot/highlight"
	"github.com/gogpu/codeshot/text"
	"github.com/gogpu/codeshot/text/cache"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := codeshot.NewRenderer(
//	    codeshot.WithTheme("monokai"),
//	    codeshot.WithLineNumbers(true),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	theme           string
	tabWidth        int
	lineNumbers     bool
	layout          text.LayoutConfig
	font            *text.FontSource
	glyphCache      text.GlyphCacheConfig
	shapingCapacity int
	resultCache     int
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		theme:           highlight.DefaultThemeName,
		tabWidth:        highlight.DefaultTabWidth,
		layout:          text.DefaultLayoutConfig(),
		font:            nil, // Go Mono
		glyphCache:      text.DefaultGlyphCacheConfig(),
		shapingCapacity: cache.DefaultCapacity,
	}
}

// WithTheme selects the color theme by chroma style name.
// Unknown names make NewRenderer fail with highlight.ErrUnknownTheme.
func WithTheme(name string) Option {
	return func(o *options) {
		o.theme = name
	}
}

// WithTabWidth sets the number of columns a tab stop spans.
// Non-positive values keep the default.
func WithTabWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tabWidth = n
		}
	}
}

// WithLineNumbers enables a line-number gutter.
func WithLineNumbers(enabled bool) Option {
	return func(o *options) {
		o.lineNumbers = enabled
	}
}

// WithLayout overrides the font size, line height and scale.
func WithLayout(c text.LayoutConfig) Option {
	return func(o *options) {
		o.layout = c
	}
}

// WithFont replaces the embedded Go Mono font.
func WithFont(src *text.FontSource) Option {
	return func(o *options) {
		o.font = src
	}
}

// WithGlyphCache configures the glyph raster cache.
func WithGlyphCache(c text.GlyphCacheConfig) Option {
	return func(o *options) {
		o.glyphCache = c
	}
}

// WithShapingCache sets how many shaped lines are memoised.
func WithShapingCache(capacity int) Option {
	return func(o *options) {
		o.shapingCapacity = capacity
	}
}

// WithResultCache makes a Pool memoise up to n encoded images per shard,
// keyed by source and hint. Renderers ignore it.
func WithResultCache(n int) Option {
	return func(o *options) {
		o.resultCache = n
	}
}
