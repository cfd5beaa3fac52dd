package codeshot

import (
	"fmt"
	"strconv"

	"github.com/gogpu/codeshot/highlight"
	"github.com/gogpu/codeshot/internal/color"
)

// gutterPadding separates line numbers from code.
const gutterPadding = "  "

// withLineNumbers prefixes every line with its right-aligned 1-based number.
func withLineNumbers(lines []highlight.StyledLine, c color.ColorU8) []highlight.StyledLine {
	if len(lines) == 0 {
		return lines
	}

	width := len(strconv.Itoa(len(lines)))
	out := make([]highlight.StyledLine, len(lines))
	for i, line := range lines {
		spans := make([]highlight.StyledSpan, 0, len(line.Spans)+1)
		spans = append(spans, highlight.StyledSpan{
			Text:  fmt.Sprintf("%*d", width, i+1) + gutterPadding,
			Color: c,
		})
		out[i] = highlight.StyledLine{Spans: append(spans, line.Spans...)}
	}
	return out
}
