package align

import "errors"

// Common errors returned by the align package
var (
	// ErrAlignmentFailed is returned when alignment fails for any general reason
	ErrAlignmentFailed = errors.New("failed to align text chunks")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed or is malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during alignment")

	// ErrInvalidConfig is returned when the aligner configuration is invalid
	ErrInvalidConfig = errors.New("invalid aligner configuration")
)
