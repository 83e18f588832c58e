package align

import (
	"context"

	"github.com/phrazzld/setu/internal/domain"
)

// Aligner defines the interface for LLM-backed alignment and cleaning of
// English/Hindi text. This interface serves as a boundary between the
// application core and external AI/LLM services; implementations live under
// internal/platform and are injected into the pipeline.
//
// Implementations make exactly one provider call per method invocation.
// Retry belongs to the execution engine, which classifies failures through
// the sentinel errors in this package.
type Aligner interface {
	// AlignChunks verifies and fixes the pairing of English and Hindi text
	// whose sentence counts diverge, returning aligned chunk pairs of up to
	// three English sentences each, in order.
	AlignChunks(ctx context.Context, english, hindi string) ([]domain.ChunkPair, error)

	// CleanPair deep-cleans one existing English/Hindi pair, removing
	// formatting artifacts and verifying that the two sides are actual
	// translations of each other.
	CleanPair(ctx context.Context, english, hindi string) (*Cleaned, error)
}

// Cleaned is the result of a CleanPair call.
type Cleaned struct {
	English string
	Hindi   string

	// IsAligned reports whether the two sides are translations of each
	// other. Misaligned pairs are dropped by the caller rather than
	// written to the output corpus.
	IsAligned bool

	// Issues describes the problems the cleaner found, if any.
	Issues []string
}
