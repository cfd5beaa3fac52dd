package codeshot

import (
	"errors"
	"testing"

	"github.com/gogpu/codeshot/internal/color"
	"github.com/gogpu/codeshot/text"
)

func TestComposite_Order(t *testing.T) {
	bg := color.RGB(0, 0, 0)
	red := color.RGB(255, 0, 0).Linear()
	green := color.RGB(0, 255, 0).Linear()

	layout := text.Layout{Width: 2, Height: 1}
	draw := func(_ text.Layout, emit func(text.Coverage)) error {
		emit(text.Coverage{Width: 2, Height: 1, Color: red})
		emit(text.Coverage{X: 1, Width: 1, Height: 1, Color: green})
		return nil
	}

	c, err := Composite(layout, bg, draw)
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if got := c.At(0, 0); got != red {
		t.Errorf("At(0, 0) = %+v, want red", got)
	}
	if got := c.At(1, 0); got != green {
		t.Errorf("At(1, 0) = %+v, want green (later event wins)", got)
	}
}

func TestComposite_Error(t *testing.T) {
	errDraw := errors.New("draw failed")
	_, err := Composite(text.Layout{Width: 1, Height: 1}, color.RGB(0, 0, 0),
		func(text.Layout, func(text.Coverage)) error { return errDraw })
	if !errors.Is(err, errDraw) {
		t.Errorf("error = %v, want %v", err, errDraw)
	}
}
