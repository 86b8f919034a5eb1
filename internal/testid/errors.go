package testid

import "errors"

var (
	// ErrInputNotReadable is returned when a source file is missing or cannot be read.
	ErrInputNotReadable = errors.New("input not readable")

	// ErrOutputNotWritable is returned when the rewritten file cannot be created or written.
	ErrOutputNotWritable = errors.New("output not writable")
)
