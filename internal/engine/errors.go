package engine

import "errors"

var (
	// ErrStartup is returned when an engine process cannot be launched.
	ErrStartup = errors.New("unable to start engine")
	// ErrBackendIO is returned when writing to an engine fails.
	ErrBackendIO = errors.New("engine I/O failed")
	// ErrPoolClosed is returned when a read is requested after the reader
	// pool was closed.
	ErrPoolClosed = errors.New("reader pool is closed")
)
