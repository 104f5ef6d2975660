package timer

import (
	"errors"
)

// Common errors
var (
	// ErrOutput indicates that writing or flushing an update failed
	ErrOutput = errors.New("output error")

	// ErrDone indicates that the countdown already reached zero
	ErrDone = errors.New("countdown done")
)

// IsOutputError checks if the error came from the output stream
func IsOutputError(err error) bool {
	return errors.Is(err, ErrOutput)
}

// IsDone checks if the error indicates the countdown is over
func IsDone(err error) bool {
	return errors.Is(err, ErrDone)
}
