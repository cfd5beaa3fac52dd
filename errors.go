package codeshot

import (
	"errors"
	"fmt"
)

// Sentinel errors for codeshot package.
var (
	// ErrInvalidCanvas is returned when encoding a canvas without pixels.
	ErrInvalidCanvas = errors.New("codeshot: invalid canvas dimensions")

	// ErrSourceTooLarge is returned by CheckSourceSize for oversize input.
	ErrSourceTooLarge = errors.New("codeshot: source too large")

	// ErrPoolClosed is returned by Pool methods after Close.
	ErrPoolClosed = errors.New("codeshot: pool closed")
)

// CheckSourceSize returns ErrSourceTooLarge if source exceeds limit bytes.
// A non-positive limit disables the check.
func CheckSourceSize(source string, limit int) error {
	if limit > 0 && len(source) > limit {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrSourceTooLarge, len(source), limit)
	}
	return nil
}
