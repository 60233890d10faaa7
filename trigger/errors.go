package trigger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChannel indicates a channel name outside the recognized set.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrInvalidDuration indicates a duration outside [MinDuration, MaxDuration].
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrNoTriggersConfigured indicates Configure was called with no triggers.
	ErrNoTriggersConfigured = errors.New("no triggers configured")

	// ErrNotConfigured indicates Acquire was called before a successful Configure.
	ErrNotConfigured = errors.New("session not configured")
)

// TransportError wraps a failure of the underlying channel. The session never
// retries; the caller decides whether to reconnect.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
