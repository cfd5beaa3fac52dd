package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/gogpu/codeshot/internal/color"
)

// StyledSpan is a run of text drawn in one color.
type StyledSpan struct {
	Text  string
	Color color.ColorU8 // sRGB
}

// StyledLine is one physical source line. Its spans are contiguous and
// concatenate to the line text; the line terminator is never included.
type StyledLine struct {
	Spans []StyledSpan
}

// Text returns the line's text.
func (l StyledLine) Text() string {
	switch len(l.Spans) {
	case 0:
		return ""
	case 1:
		return l.Spans[0].Text
	}
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Highlight tokenises source with syntax and colors it with theme, returning
// one StyledLine per source line in order. An empty source yields no lines.
//
// source should already have gone through Prepare; Highlight does not trim.
func Highlight(source string, syntax *Syntax, theme *Theme) ([]StyledLine, error) {
	if source == "" {
		return nil, nil
	}

	it, err := syntax.lexer.Tokenise(nil, source)
	if err != nil {
		return nil, &LexError{Syntax: syntax.Name(), Err: err}
	}

	want := strings.Split(source, "\n")
	tokenLines := chroma.SplitTokensIntoLines(it.Tokens())

	lines := make([]StyledLine, len(want))
	for i := range want {
		var tokens []chroma.Token
		if i < len(tokenLines) {
			tokens = tokenLines[i]
		}
		lines[i] = styleLine(tokens, theme)
		if got := lines[i].Text(); got != want[i] {
			return nil, &LexError{Syntax: syntax.Name(), Line: i + 1, Err: errTokenMismatch}
		}
	}
	return lines, nil
}

// styleLine converts one line of tokens into spans. Line terminators are
// dropped and adjacent tokens of the same color are merged.
func styleLine(tokens []chroma.Token, theme *Theme) StyledLine {
	var line StyledLine
	for _, tok := range tokens {
		text := strings.TrimSuffix(tok.Value, "\n")
		if text == "" {
			continue
		}
		c := theme.Color(tok.Type)
		if n := len(line.Spans); n > 0 && line.Spans[n-1].Color == c {
			line.Spans[n-1].Text += text
			continue
		}
		line.Spans = append(line.Spans, StyledSpan{Text: text, Color: c})
	}
	return line
}
