package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/setu/internal/align"
	"github.com/phrazzld/setu/internal/domain"
	"github.com/phrazzld/setu/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func TestMockAligner(t *testing.T) {
	t.Parallel()

	t.Run("Default echo behavior", func(t *testing.T) {
		t.Parallel()

		mockAligner := &mocks.MockAligner{}
		ctx := context.Background()

		pairs, err := mockAligner.AlignChunks(ctx, "Some English.", "कुछ हिंदी।")
		assert.NoError(t, err, "Should not return an error")
		assert.Len(t, pairs, 1, "Should echo the input as one pair")
		assert.Equal(t, "Some English.", pairs[0].English)
		assert.Equal(t, "कुछ हिंदी।", pairs[0].Hindi)

		cleaned, err := mockAligner.CleanPair(ctx, "Some English.", "कुछ हिंदी।")
		assert.NoError(t, err)
		assert.True(t, cleaned.IsAligned, "Echoed pair should count as aligned")
		assert.Equal(t, "Some English.", cleaned.English)

		// Verify call tracking
		assert.Equal(t, 1, mockAligner.AlignChunksCalls.Count, "AlignChunks should be called once")
		assert.Equal(t, 1, mockAligner.CleanPairCalls.Count, "CleanPair should be called once")
		assert.Equal(t, "Some English.", mockAligner.AlignChunksCalls.English[0], "Should record correct input")
	})

	t.Run("Configured pairs", func(t *testing.T) {
		t.Parallel()

		want := []domain.ChunkPair{
			{English: "One.", Hindi: "एक।"},
			{English: "Two.", Hindi: "दो।"},
		}
		mockAligner := mocks.NewMockAlignerWithPairs(want)

		pairs, err := mockAligner.AlignChunks(context.Background(), "ignored", "ignored")
		assert.NoError(t, err)
		assert.Equal(t, want, pairs, "Should return the configured pairs")
	})

	t.Run("Error case", func(t *testing.T) {
		t.Parallel()

		mockAligner := mocks.MockAlignerThatFails()

		pairs, err := mockAligner.AlignChunks(context.Background(), "Some English.", "कुछ हिंदी।")
		assert.Error(t, err, "Should return an error")
		assert.Equal(t, align.ErrAlignmentFailed, err, "Should return ErrAlignmentFailed")
		assert.Empty(t, pairs, "Should not return any pairs")

		assert.Equal(t, 1, mockAligner.AlignChunksCalls.Count, "AlignChunks should be called once")
	})

	t.Run("Custom function", func(t *testing.T) {
		t.Parallel()

		customErr := errors.New("custom error")
		mockAligner := &mocks.MockAligner{
			AlignChunksFn: func(ctx context.Context, english, hindi string) ([]domain.ChunkPair, error) {
				if english == "trigger error" {
					return nil, customErr
				}
				return []domain.ChunkPair{}, nil
			},
		}

		ctx := context.Background()
		pairs, err := mockAligner.AlignChunks(ctx, "trigger error", "कुछ")
		assert.Error(t, err)
		assert.Equal(t, customErr, err)
		assert.Empty(t, pairs)

		pairs, err = mockAligner.AlignChunks(ctx, "normal text", "कुछ")
		assert.NoError(t, err)
		assert.Empty(t, pairs)

		assert.Equal(t, 2, mockAligner.AlignChunksCalls.Count, "AlignChunks should be called twice")
	})

	t.Run("Reset", func(t *testing.T) {
		t.Parallel()

		mockAligner := &mocks.MockAligner{}
		ctx := context.Background()

		_, _ = mockAligner.AlignChunks(ctx, "one", "एक")
		_, _ = mockAligner.CleanPair(ctx, "two", "दो")
		assert.Equal(t, 1, mockAligner.AlignChunksCalls.Count)
		assert.Equal(t, 1, mockAligner.CleanPairCalls.Count)

		mockAligner.Reset()
		assert.Equal(t, 0, mockAligner.AlignChunksCalls.Count)
		assert.Equal(t, 0, mockAligner.CleanPairCalls.Count)
		assert.Empty(t, mockAligner.AlignChunksCalls.English)
		assert.Empty(t, mockAligner.CleanPairCalls.Hindi)
	})
}
