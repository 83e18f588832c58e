package pipeline

import "errors"

// Error definitions for the pipeline package.
var (
	// ErrSentenceCountMismatch is returned by the heuristic work function
	// when the English and Hindi sides split into different sentence
	// counts. The entry is recorded as failed; an align-mode run with
	// retry_failed re-processes exactly those entries through the LLM.
	ErrSentenceCountMismatch = errors.New("sentence counts do not match")
)
