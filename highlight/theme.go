package highlight

import (
	"fmt"
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/codeshot/internal/color"
)

// DefaultThemeName is the chroma style used when no theme is configured.
const DefaultThemeName = "solarized-dark"

// gutterBlend is how far the gutter color sits from the background towards
// the text color, measured in CIE L*a*b*.
const gutterBlend = 0.45

// Theme is a fixed color table: one background and a foreground per token
// kind. Theme is immutable and safe for concurrent use.
type Theme struct {
	name       string
	style      *chroma.Style
	background color.ColorU8
	foreground color.ColorU8
	gutter     color.ColorU8
}

// LoadTheme returns the theme registered under name.
func LoadTheme(name string) (*Theme, error) {
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return newTheme(name, style), nil
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() *Theme {
	t, err := LoadTheme(DefaultThemeName)
	if err != nil {
		return newTheme(DefaultThemeName, styles.Fallback)
	}
	return t
}

// Themes returns the names of all registered themes, sorted.
func Themes() []string {
	names := styles.Names()
	sort.Strings(names)
	return names
}

func newTheme(name string, style *chroma.Style) *Theme {
	bgEntry := style.Get(chroma.Background)

	bg := color.RGB(0, 0, 0)
	if bgEntry.Background.IsSet() {
		bg = fromChroma(bgEntry.Background)
	}

	fg := contrasting(bg)
	if text := style.Get(chroma.Text); text.Colour.IsSet() {
		fg = fromChroma(text.Colour)
	} else if bgEntry.Colour.IsSet() {
		fg = fromChroma(bgEntry.Colour)
	}

	return &Theme{
		name:       name,
		style:      style,
		background: bg,
		foreground: fg,
		gutter:     blendLab(bg, fg, gutterBlend),
	}
}

// Name returns the chroma style name.
func (t *Theme) Name() string { return t.name }

// Background returns the canvas color (sRGB).
func (t *Theme) Background() color.ColorU8 { return t.background }

// Foreground returns the default text color (sRGB).
func (t *Theme) Foreground() color.ColorU8 { return t.foreground }

// Gutter returns the muted color used for line numbers (sRGB).
func (t *Theme) Gutter() color.ColorU8 { return t.gutter }

// Color returns the foreground for a token type. Token types without their
// own color inherit from their parent category and finally the text color.
func (t *Theme) Color(tt chroma.TokenType) color.ColorU8 {
	if e := t.style.Get(tt); e.Colour.IsSet() {
		return fromChroma(e.Colour)
	}
	return t.foreground
}

func fromChroma(c chroma.Colour) color.ColorU8 {
	return color.RGB(c.Red(), c.Green(), c.Blue())
}

func toColorful(c color.ColorU8) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func blendLab(from, to color.ColorU8, t float64) color.ColorU8 {
	r, g, b := toColorful(from).BlendLab(toColorful(to), t).Clamped().RGB255()
	return color.RGB(r, g, b)
}

// contrasting picks black or white, whichever reads better on bg.
func contrasting(bg color.ColorU8) color.ColorU8 {
	l, _, _ := toColorful(bg).Lab()
	if l > 0.5 {
		return color.RGB(0, 0, 0)
	}
	return color.RGB(255, 255, 255)
}
