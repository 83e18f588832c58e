package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/setu/internal/config"
	"github.com/phrazzld/setu/internal/events"
)

// statusTracker keeps the latest progress totals for the read-only
// status endpoint. It implements events.Handler; the pipeline updates it
// from the completion callback while HTTP handlers read concurrently.
type statusTracker struct {
	mu    sync.RWMutex
	mode  string
	start time.Time
	last  events.ProgressEvent
}

var _ events.Handler = (*statusTracker)(nil)

func (t *statusTracker) HandleProgress(ctx context.Context, event *events.ProgressEvent) error {
	t.mu.Lock()
	t.last = *event
	t.mu.Unlock()
	return nil
}

// statusSnapshot is the JSON body served by GET /status.
type statusSnapshot struct {
	Mode           string  `json:"mode"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Successful     int     `json:"successful"`
	Failed         int     `json:"failed"`
	ChunksCreated  int     `json:"chunks_created"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

func (t *statusTracker) snapshot() statusSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return statusSnapshot{
		Mode:           t.mode,
		Total:          t.last.Total,
		Completed:      t.last.Completed,
		Successful:     t.last.Successful,
		Failed:         t.last.Failed,
		ChunksCreated:  t.last.ChunksCreated,
		ElapsedSeconds: time.Since(t.start).Seconds(),
	}
}

// statusServer exposes the optional HTTP status surface while a run is
// in flight: GET /healthz for liveness and GET /status for a snapshot of
// the run's progress.
type statusServer struct {
	server  *http.Server
	tracker *statusTracker
	logger  *slog.Logger
}

func newStatusServer(cfg config.ServerConfig, mode string, logger *slog.Logger) *statusServer {
	s := &statusServer{
		tracker: &statusTracker{
			mode:  mode,
			start: time.Now(),
		},
		logger: logger.With("component", "status_server"),
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.routes(),
	}
	return s
}

// routes builds the router for the status surface.
func (s *statusServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/status", s.handleStatus)
	return r
}

func (s *statusServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *statusServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.tracker.snapshot())
}

func (s *statusServer) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}

// Start begins serving in the background. Listen failures are logged
// and do not stop the pipeline.
func (s *statusServer) Start() {
	go func() {
		s.logger.Info("status server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("status server failed", "error", err)
		}
	}()
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *statusServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("status server shutdown failed", "error", err)
	}
}
