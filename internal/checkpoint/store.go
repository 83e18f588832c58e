package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Stats aggregates the outcome counters of a run.
//
// MarkProcessed increments the counters on every call, so re-marking an
// already recorded ID inflates them even though the ID set itself stays
// deduplicated. Callers that need exact figures mark each entry once.
type Stats struct {
	TotalProcessed int `json:"total_processed"`
	Successful     int `json:"successful"`
	Failed         int `json:"failed"`
	ChunksCreated  int `json:"chunks_created"`
}

// state is the on-disk shape of a checkpoint file.
type state struct {
	SessionID    string    `json:"session_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastSavedAt  time.Time `json:"last_saved_at"`
	ProcessedIDs []int     `json:"processed_ids"`
	FailedIDs    []int     `json:"failed_ids,omitempty"`
	Stats        Stats     `json:"stats"`
}

// Store tracks processed entry IDs and run statistics, backed by a
// single JSON file.
type Store struct {
	path      string
	logger    *slog.Logger
	sessionID string
	createdAt time.Time
	processed map[int]struct{}
	failed    map[int]struct{}
	stats     Stats
}

// NewStore creates a checkpoint store backed by the file at path. The
// store starts empty; call Load to restore any previously saved state.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:      path,
		logger:    logger.With("component", "checkpoint"),
		sessionID: uuid.New().String(),
		createdAt: time.Now().UTC(),
		processed: make(map[int]struct{}),
		failed:    make(map[int]struct{}),
	}
}

// Load restores state from the checkpoint file. A missing, unreadable,
// or corrupt file is not an error: the store logs the condition and
// keeps its empty state so the run starts from scratch.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info("no checkpoint found, starting fresh", "path", s.path)
		} else {
			s.logger.Warn("checkpoint unreadable, starting fresh", "path", s.path, "error", err)
		}
		return
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("checkpoint corrupt, starting fresh", "path", s.path, "error", err)
		return
	}

	for _, id := range st.ProcessedIDs {
		s.processed[id] = struct{}{}
	}
	for _, id := range st.FailedIDs {
		s.failed[id] = struct{}{}
	}
	s.stats = st.Stats
	if st.SessionID != "" {
		s.sessionID = st.SessionID
	}
	if !st.CreatedAt.IsZero() {
		s.createdAt = st.CreatedAt
	}

	s.logger.Info("checkpoint loaded",
		"path", s.path,
		"processed", len(s.processed),
		"failed", len(s.failed),
		"last_saved_at", st.LastSavedAt)
}

// MarkProcessed records the outcome of one entry. The ID is added to
// the processed set regardless of outcome; a later success removes the
// ID from the failed set. Chunk counts accumulate as reported.
func (s *Store) MarkProcessed(id int, success bool, chunksCreated int) {
	s.processed[id] = struct{}{}
	s.stats.TotalProcessed++
	if success {
		s.stats.Successful++
		delete(s.failed, id)
	} else {
		s.stats.Failed++
		s.failed[id] = struct{}{}
	}
	s.stats.ChunksCreated += chunksCreated
}

// Save writes the current state to disk. The file is written to a
// temporary sibling first and moved into place with a rename, so a
// crash mid-save never leaves a truncated checkpoint behind.
func (s *Store) Save() error {
	st := state{
		SessionID:    s.sessionID,
		CreatedAt:    s.createdAt,
		LastSavedAt:  time.Now().UTC(),
		ProcessedIDs: sortedIDs(s.processed),
		FailedIDs:    sortedIDs(s.failed),
		Stats:        s.stats,
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create checkpoint directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace checkpoint file: %w", err)
	}

	s.logger.Debug("checkpoint saved", "path", s.path, "processed", len(s.processed))
	return nil
}

// Clear removes the checkpoint file and resets the in-memory state,
// starting a new session. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove checkpoint file: %w", err)
	}
	s.processed = make(map[int]struct{})
	s.failed = make(map[int]struct{})
	s.stats = Stats{}
	s.sessionID = uuid.New().String()
	s.createdAt = time.Now().UTC()
	s.logger.Info("checkpoint cleared", "path", s.path)
	return nil
}

// IsProcessed reports whether the entry ID has already been recorded.
func (s *Store) IsProcessed(id int) bool {
	_, ok := s.processed[id]
	return ok
}

// ProcessedCount returns the number of distinct recorded entry IDs.
func (s *Store) ProcessedCount() int {
	return len(s.processed)
}

// ProcessedIDs returns the recorded entry IDs in ascending order.
func (s *Store) ProcessedIDs() []int {
	return sortedIDs(s.processed)
}

// FailedIDs returns the IDs whose most recent outcome was a failure,
// in ascending order.
func (s *Store) FailedIDs() []int {
	return sortedIDs(s.failed)
}

// Stats returns a copy of the aggregate counters.
func (s *Store) Stats() Stats {
	return s.stats
}

// SessionID identifies the run this checkpoint belongs to. Loading an
// existing checkpoint adopts its session; Clear starts a new one.
func (s *Store) SessionID() string {
	return s.sessionID
}

func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
