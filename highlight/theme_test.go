package highlight

import (
	"errors"
	"testing"

	"github.com/alecthomas/chroma/v2"
)

func TestDefaultTheme(t *testing.T) {
	th := DefaultTheme()
	if th.Name() != DefaultThemeName {
		t.Errorf("Name() = %q, want %q", th.Name(), DefaultThemeName)
	}
	bg := th.Background()
	if bg.A != 255 {
		t.Errorf("background must be opaque, got %v", bg)
	}
	// solarized-dark has a dark background.
	if int(bg.R)+int(bg.G)+int(bg.B) > 3*128 {
		t.Errorf("background %v is not dark", bg)
	}
	if th.Foreground() == bg {
		t.Error("foreground equals background")
	}
}

func TestLoadThemeUnknown(t *testing.T) {
	_, err := LoadTheme("no-such-theme")
	if !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("err = %v, want ErrUnknownTheme", err)
	}
}

func TestThemeColorFallsBackToForeground(t *testing.T) {
	th := DefaultTheme()
	// Text has no color of its own beyond the theme default.
	if got := th.Color(chroma.Text); got != th.Foreground() {
		t.Errorf("Color(Text) = %v, want %v", got, th.Foreground())
	}
}

func TestGutterBetweenBackgroundAndForeground(t *testing.T) {
	th := DefaultTheme()
	g, bg, fg := th.Gutter(), th.Background(), th.Foreground()
	if g == bg || g == fg {
		t.Errorf("gutter %v should differ from background %v and foreground %v", g, bg, fg)
	}
}

func TestThemesContainsDefault(t *testing.T) {
	found := false
	for _, n := range Themes() {
		if n == DefaultThemeName {
			found = true
		}
	}
	if !found {
		t.Errorf("Themes() does not list %q", DefaultThemeName)
	}
}
