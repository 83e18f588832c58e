package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/setu/internal/align"
	"github.com/phrazzld/setu/internal/domain"
)

// MockAligner implements align.Aligner for testing
type MockAligner struct {
	// AlignChunksFn allows test cases to mock the AlignChunks behavior
	AlignChunksFn func(ctx context.Context, english, hindi string) ([]domain.ChunkPair, error)

	// CleanPairFn allows test cases to mock the CleanPair behavior
	CleanPairFn func(ctx context.Context, english, hindi string) (*align.Cleaned, error)

	// Default response values. When neither a function nor a value is
	// configured, both methods echo their input back as aligned output.
	Pairs   []domain.ChunkPair
	Cleaned *align.Cleaned
	Err     error

	// Call tracking for verification
	AlignChunksCalls struct {
		// mu protects the call tracking state; engine workers call
		// concurrently
		mu sync.Mutex

		// Count tracks how many times AlignChunks was called
		Count int

		// English and Hindi record the inputs of every call
		English []string
		Hindi   []string
	}

	CleanPairCalls struct {
		mu sync.Mutex

		// Count tracks how many times CleanPair was called
		Count int

		// English and Hindi record the inputs of every call
		English []string
		Hindi   []string
	}
}

// AlignChunks implements the align.Aligner interface
func (m *MockAligner) AlignChunks(ctx context.Context, english, hindi string) ([]domain.ChunkPair, error) {
	m.AlignChunksCalls.mu.Lock()
	m.AlignChunksCalls.Count++
	m.AlignChunksCalls.English = append(m.AlignChunksCalls.English, english)
	m.AlignChunksCalls.Hindi = append(m.AlignChunksCalls.Hindi, hindi)
	m.AlignChunksCalls.mu.Unlock()

	if m.AlignChunksFn != nil {
		return m.AlignChunksFn(ctx, english, hindi)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Pairs != nil {
		return m.Pairs, nil
	}
	return []domain.ChunkPair{{English: english, Hindi: hindi}}, nil
}

// CleanPair implements the align.Aligner interface
func (m *MockAligner) CleanPair(ctx context.Context, english, hindi string) (*align.Cleaned, error) {
	m.CleanPairCalls.mu.Lock()
	m.CleanPairCalls.Count++
	m.CleanPairCalls.English = append(m.CleanPairCalls.English, english)
	m.CleanPairCalls.Hindi = append(m.CleanPairCalls.Hindi, hindi)
	m.CleanPairCalls.mu.Unlock()

	if m.CleanPairFn != nil {
		return m.CleanPairFn(ctx, english, hindi)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Cleaned != nil {
		return m.Cleaned, nil
	}
	return &align.Cleaned{English: english, Hindi: hindi, IsAligned: true}, nil
}

// NewMockAlignerWithPairs creates a MockAligner that returns the specified pairs
func NewMockAlignerWithPairs(pairs []domain.ChunkPair) *MockAligner {
	return &MockAligner{
		Pairs: pairs,
	}
}

// NewMockAlignerWithCleaned creates a MockAligner that returns the specified clean result
func NewMockAlignerWithCleaned(cleaned *align.Cleaned) *MockAligner {
	return &MockAligner{
		Cleaned: cleaned,
	}
}

// NewMockAlignerWithError creates a MockAligner that returns the specified error
func NewMockAlignerWithError(err error) *MockAligner {
	return &MockAligner{
		Err: err,
	}
}

// MockAlignerThatFails creates a MockAligner that simulates an alignment failure
func MockAlignerThatFails() *MockAligner {
	return &MockAligner{
		Err: align.ErrAlignmentFailed,
	}
}

// MockAlignerWithTransientFailure creates a MockAligner that simulates a transient failure
func MockAlignerWithTransientFailure() *MockAligner {
	return &MockAligner{
		Err: align.ErrTransientFailure,
	}
}

// MockAlignerWithContentBlocked creates a MockAligner that simulates content being blocked
func MockAlignerWithContentBlocked() *MockAligner {
	return &MockAligner{
		Err: align.ErrContentBlocked,
	}
}

// Reset resets the call tracking state
func (m *MockAligner) Reset() {
	m.AlignChunksCalls.mu.Lock()
	m.AlignChunksCalls.Count = 0
	m.AlignChunksCalls.English = nil
	m.AlignChunksCalls.Hindi = nil
	m.AlignChunksCalls.mu.Unlock()

	m.CleanPairCalls.mu.Lock()
	m.CleanPairCalls.Count = 0
	m.CleanPairCalls.English = nil
	m.CleanPairCalls.Hindi = nil
	m.CleanPairCalls.mu.Unlock()
}
