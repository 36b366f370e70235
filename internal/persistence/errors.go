package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested key does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrEmptyKey is returned when an operation is attempted with a blank key.
	ErrEmptyKey = errors.New("persistence: key is required")
)
