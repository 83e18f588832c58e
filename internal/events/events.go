package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProgressEvent describes one completed work item plus the running totals at
// the moment it finished. The pipeline emits one per completion from its
// callback goroutine, so handlers observe totals in completion order.
type ProgressEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// EntryID is the corpus entry this completion refers to
	EntryID int `json:"entry_id"`

	// Success reports whether the entry was processed cleanly
	Success bool `json:"success"`

	// ChunkCount is the number of output chunks the entry produced
	ChunkCount int `json:"chunk_count"`

	// Completed is the number of entries finished so far in this run
	Completed int `json:"completed"`

	// Total is the number of entries submitted in this run
	Total int `json:"total"`

	// Successful is the running count of clean completions
	Successful int `json:"successful"`

	// Failed is the running count of failed completions
	Failed int `json:"failed"`

	// ChunksCreated is the running total of output chunks
	ChunksCreated int `json:"chunks_created"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewProgressEvent stamps the given event with a fresh identity and creation
// time and returns it.
func NewProgressEvent(event ProgressEvent) *ProgressEvent {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	return &event
}

// Handler defines an interface for components that consume progress events.
type Handler interface {
	// HandleProgress processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleProgress(ctx context.Context, event *ProgressEvent) error
}

// Emitter defines an interface for components that publish progress events.
// This allows the pipeline to report progress without direct knowledge of
// the consumers.
type Emitter interface {
	// EmitProgress publishes the given event to all registered handlers.
	// Returns an error if any handler rejects the event.
	EmitProgress(ctx context.Context, event *ProgressEvent) error
}
