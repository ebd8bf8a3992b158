package config

import (
	"errors"
	"fmt"
)

// Configuration errors. Every one of them is recoverable: the offending line
// is skipped and loading continues.
var (
	ErrFieldCount     = errors.New("engine line must have 12 comma separated fields")
	ErrInvalidRange   = errors.New("invalid unicode range")
	ErrNoRanges       = errors.New("no unicode ranges found")
	ErrInvalidSetting = errors.New("setting must have the form key: value")
	ErrInvalidOption  = errors.New("invalid option")
)

// LineError reports a configuration line that was skipped.
type LineError struct {
	Line int    // 1-based line number
	Text string // The offending line
	Err  error  // The underlying error
}

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}
