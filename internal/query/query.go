// Package query splits user-supplied text into a language hint and code.
//
// A query may start with a hint token directly followed by a colon:
//
//	py: print('hi')
//	go:fmt.Println(1)
//
// The token must not contain whitespace. A double colon after the token
// (std::vector, crate::mod) belongs to the code.
package query

import (
	"strings"
	"unicode"
)

// Parse returns the hint and the remaining code. Without a hint prefix the
// whole text is code and hint is empty.
func Parse(text string) (hint, code string) {
	i := strings.IndexByte(text, ':')
	if i <= 0 {
		return "", text
	}
	token := text[:i]
	if strings.IndexFunc(token, unicode.IsSpace) >= 0 {
		return "", text
	}
	rest := text[i+1:]
	if strings.HasPrefix(rest, ":") {
		return "", text
	}
	return token, rest
}
