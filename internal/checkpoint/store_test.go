package checkpoint

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/setu/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "checkpoint.json")

	first := NewStore(path, testLogger())
	first.MarkProcessed(1, true, 4)
	first.MarkProcessed(2, false, 0)
	first.MarkProcessed(3, true, 2)
	require.NoError(t, first.Save())

	second := NewStore(path, testLogger())
	second.Load()

	assert.Equal(t, []int{1, 2, 3}, second.ProcessedIDs())
	assert.Equal(t, []int{2}, second.FailedIDs())
	assert.Equal(t, first.Stats(), second.Stats())
	assert.Equal(t, first.SessionID(), second.SessionID(),
		"resuming a run keeps the original session identity")
	for _, id := range []int{1, 2, 3} {
		assert.True(t, second.IsProcessed(id), "id %d should be recorded", id)
	}
	assert.False(t, second.IsProcessed(4))
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "never-written.json")

	store := NewStore(path, testLogger())
	store.Load()

	assert.Zero(t, store.ProcessedCount())
	assert.Equal(t, Stats{}, store.Stats())
}

func TestLoadBadFileStartsFresh(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{name: "truncated json", content: `{"processed_ids": [1, 2`},
		{name: "wrong shape", content: `{"processed_ids": "not a list"}`},
		{name: "not json at all", content: "hello world"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "checkpoint.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			log, logBuf := logger.GetTestLogger(t)
			store := NewStore(path, log)
			store.Load()

			assert.Zero(t, store.ProcessedCount(),
				"a damaged checkpoint must be treated as empty")
			assert.Equal(t, Stats{}, store.Stats())
			logger.AssertLogContains(t, logBuf, "checkpoint corrupt")
		})
	}
}

func TestMarkProcessedDeduplicatesIDsButCountsEveryCall(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "checkpoint.json"), testLogger())

	store.MarkProcessed(9, true, 3)
	store.MarkProcessed(9, true, 3)

	assert.Equal(t, []int{9}, store.ProcessedIDs(), "the ID set stays deduplicated")
	assert.Equal(t, Stats{
		TotalProcessed: 2,
		Successful:     2,
		ChunksCreated:  6,
	}, store.Stats(), "counters increment on every call")
}

func TestMarkProcessedSuccessClearsEarlierFailure(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "checkpoint.json"), testLogger())

	store.MarkProcessed(7, false, 0)
	assert.Equal(t, []int{7}, store.FailedIDs())

	store.MarkProcessed(7, true, 2)
	assert.Empty(t, store.FailedIDs(), "a success supersedes a recorded failure")
	assert.Equal(t, 1, store.Stats().Failed)
	assert.Equal(t, 1, store.Stats().Successful)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "checkpoint.json")

	store := NewStore(path, testLogger())
	store.MarkProcessed(1, true, 1)
	require.NoError(t, store.Save())

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "the temp file must be renamed away")

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deeper", "checkpoint.json")

	store := NewStore(path, testLogger())
	store.MarkProcessed(1, true, 1)
	require.NoError(t, store.Save())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestCheckpointFileUsesStableFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "checkpoint.json")

	store := NewStore(path, testLogger())
	store.MarkProcessed(5, true, 2)
	require.NoError(t, store.Save())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Contains(t, doc, "processed_ids")
	require.Contains(t, doc, "stats")

	var stats map[string]int
	require.NoError(t, json.Unmarshal(doc["stats"], &stats))
	for _, key := range []string{"total_processed", "successful", "failed", "chunks_created"} {
		assert.Contains(t, stats, key)
	}
}

func TestClearRemovesFileAndResetsState(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "checkpoint.json")

	store := NewStore(path, testLogger())
	store.MarkProcessed(1, true, 1)
	require.NoError(t, store.Save())

	oldSession := store.SessionID()
	require.NoError(t, store.Clear())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "clear removes the file")
	assert.Zero(t, store.ProcessedCount())
	assert.Equal(t, Stats{}, store.Stats())
	assert.NotEqual(t, oldSession, store.SessionID(), "clear starts a new session")

	require.NoError(t, store.Clear(), "clearing an already missing file succeeds")
}
