package task

import "context"

// Item pairs a work payload with the stable identifier used for
// checkpointing and result reporting.
type Item[E any] struct {
	ID    int
	Entry E
}

// WorkFunc executes one item and returns the chunks it produced. The
// engine calls it up to MaxRetries times per item, acquiring the shared
// rate limiter before every call.
type WorkFunc[E, C any] func(ctx context.Context, entry E, id int) ([]C, error)

// Result reports the outcome of one item after all retry attempts.
type Result[C any] struct {
	ID      int
	Success bool
	Chunks  []C
	Err     error
}

// ChunkCount returns the number of chunks the item produced.
func (r Result[C]) ChunkCount() int {
	return len(r.Chunks)
}
