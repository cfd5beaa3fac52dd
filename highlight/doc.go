// Package highlight turns source text into syntax-colored lines.
//
// Highlighting has three parts:
//
//   - Syntax: a lexical grammar resolved from a short user hint (Lookup).
//     Lookup never fails; unknown hints resolve to plain text.
//   - Theme: a fixed color table (background plus one foreground per token
//     kind) taken from a chroma style.
//   - Highlight: runs the lexer over the whole document in source order and
//     splits the token stream into StyledLines.
//
// The lexer keeps its own state while it walks the document, so constructs
// that span several lines (block comments, raw strings) color every line they
// cover. Lines are always produced in order; highlighting individual lines in
// isolation would lose that state.
//
// # Example
//
//	syntax := highlight.Lookup("py")
//	theme := highlight.DefaultTheme()
//	lines, err := highlight.Highlight(highlight.Prepare(src, 4), syntax, theme)
package highlight
