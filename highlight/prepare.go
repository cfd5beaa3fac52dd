package highlight

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// DefaultTabWidth is the tab stop distance used when none is configured.
const DefaultTabWidth = 4

// Prepare normalizes raw user text before highlighting: invalid UTF-8
// becomes U+FFFD, line endings become "\n", the text is NFC-normalized so
// combining sequences shape as single clusters where possible, surrounding
// whitespace is trimmed, and tabs are expanded to the next multiple of
// tabWidth columns.
func Prepare(source string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	s := strings.ToValidUTF8(source, "\uFFFD")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = norm.NFC.String(s)
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "\t") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		expandTabs(&b, line, tabWidth)
	}
	return b.String()
}

// expandTabs writes line to b with tabs replaced by spaces. Columns are
// counted in grapheme display widths, so wide CJK characters take two.
func expandTabs(b *strings.Builder, line string, tabWidth int) {
	col := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(cluster)
		col += g.Width()
	}
}
