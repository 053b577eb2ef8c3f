package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput rejects a submission with a malformed or missing
	// required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStore marks underlying persistence failures.
	ErrStore = errors.New("store failure")
)

// RateLimitedError is returned while a session's cooldown window has not yet
// elapsed.
type RateLimitedError struct {
	MinutesRemaining int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: %d minute(s) remaining", e.MinutesRemaining)
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStore, err)
}
