package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	t.Parallel()
	sentences := []string{"one.", "two.", "three.", "four.", "five.", "six.", "seven."}

	t.Run("groups of three with short tail", func(t *testing.T) {
		chunks := Chunk(sentences, 3)
		assert.Equal(t, []string{
			"one. two. three.",
			"four. five. six.",
			"seven.",
		}, chunks)
	})

	t.Run("exact multiple leaves no tail", func(t *testing.T) {
		chunks := Chunk(sentences[:6], 3)
		assert.Equal(t, []string{"one. two. three.", "four. five. six."}, chunks)
	})

	t.Run("size one keeps sentences separate", func(t *testing.T) {
		chunks := Chunk(sentences[:2], 1)
		assert.Equal(t, []string{"one.", "two."}, chunks)
	})

	t.Run("non-positive size treated as one", func(t *testing.T) {
		chunks := Chunk(sentences[:3], 0)
		assert.Equal(t, []string{"one.", "two.", "three."}, chunks)
	})

	t.Run("empty input yields no chunks", func(t *testing.T) {
		assert.Empty(t, Chunk(nil, 3))
	})
}
