package highlight

import (
	"errors"
	"fmt"
)

// ErrUnknownTheme is returned by LoadTheme for a name no style is registered under.
var ErrUnknownTheme = errors.New("highlight: unknown theme")

// LexError reports that the lexer could not tokenise the document or
// produced a token stream that does not reproduce it. It signals a broken
// grammar, not bad input.
type LexError struct {
	Syntax string
	Line   int // 1-based; 0 when the failure is not tied to a line
	Err    error
}

func (e *LexError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("highlight: %s lexer failed on line %d: %v", e.Syntax, e.Line, e.Err)
	}
	return fmt.Sprintf("highlight: %s lexer failed: %v", e.Syntax, e.Err)
}

func (e *LexError) Unwrap() error { return e.Err }

// errTokenMismatch is wrapped by LexError when spans do not reproduce a line.
var errTokenMismatch = errors.New("token stream does not reproduce the line")
