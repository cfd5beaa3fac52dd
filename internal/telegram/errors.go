package telegram

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedResponse is returned when the API replies with something that
// is not a JSON envelope.
var ErrMalformedResponse = errors.New("telegram: malformed response")

// APIError is an ok=false reply from the Bot API.
type APIError struct {
	Method      string
	Code        int
	Description string

	// RetryAfter is set on flood-control errors (code 429).
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram: %s: %d %s", e.Method, e.Code, e.Description)
}
