package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyText is returned when an input text side is empty.
	ErrEmptyText = errors.New("input text cannot be empty")
)
