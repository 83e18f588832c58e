package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/phrazzld/setu/internal/align"
	"github.com/phrazzld/setu/internal/checkpoint"
	"github.com/phrazzld/setu/internal/config"
	"github.com/phrazzld/setu/internal/corpus"
	"github.com/phrazzld/setu/internal/domain"
	"github.com/phrazzld/setu/internal/events"
	"github.com/phrazzld/setu/internal/task"
	"github.com/phrazzld/setu/internal/text"
)

// Pipeline runs one batch over the input corpus in the configured mode.
type Pipeline struct {
	config   config.Config
	aligner  align.Aligner
	store    *checkpoint.Store
	emitter  events.Emitter
	logger   *slog.Logger
	assessor text.Assessor
	extract  *text.Extractor
}

// NewPipeline creates a Pipeline with the provided dependencies. The
// aligner may be nil only in heuristic mode, which never calls the LLM.
func NewPipeline(
	cfg config.Config,
	aligner align.Aligner,
	store *checkpoint.Store,
	emitter events.Emitter,
	logger *slog.Logger,
) (*Pipeline, error) {
	if store == nil {
		return nil, errors.New("checkpoint store cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("progress emitter cannot be nil")
	}
	if cfg.Pipeline.Mode != config.ModeHeuristic && aligner == nil {
		return nil, fmt.Errorf("mode %q requires an aligner", cfg.Pipeline.Mode)
	}
	if logger == nil {
		logger = slog.Default()
	}

	extractor, err := text.NewExtractor(text.DefaultPatterns())
	if err != nil {
		return nil, fmt.Errorf("build metadata extractor: %w", err)
	}

	return &Pipeline{
		config:   cfg,
		aligner:  aligner,
		store:    store,
		emitter:  emitter,
		logger:   logger.With("component", "pipeline"),
		assessor: text.Assessor{MinLength: cfg.Quality.MinLength},
		extract:  extractor,
	}, nil
}

// Summary reports the outcome of one pipeline run.
type Summary struct {
	Mode         string
	TotalEntries int

	// Skipped counts entries the checkpoint already recorded; Submitted
	// counts the entries actually handed to the engine this run.
	Skipped   int
	Submitted int

	Successful    int
	Failed        int
	ChunksCreated int
	Elapsed       time.Duration
	OutputPath    string
}

// Run executes the configured mode over the input corpus. It returns a
// Summary in every case where the corpus loaded, alongside the first
// unrecoverable error if one occurred. Cancellation of ctx stops the run
// after in-flight items finish; the checkpoint is saved before returning
// so the interrupted run resumes cleanly.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	entries, err := corpus.ReadEntries(p.config.Pipeline.InputPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	p.logger.Info("corpus loaded",
		"path", p.config.Pipeline.InputPath,
		"entries", len(entries))

	if p.config.Pipeline.Resume {
		p.store.Load()
	} else if err := p.store.Clear(); err != nil {
		return nil, fmt.Errorf("reset checkpoint: %w", err)
	}

	work := p.workList(entries)
	summary := &Summary{
		Mode:         p.config.Pipeline.Mode,
		TotalEntries: len(entries),
		Skipped:      len(entries) - len(work),
		Submitted:    len(work),
		OutputPath:   p.config.Pipeline.OutputPath,
	}

	if len(work) == 0 {
		p.logger.Info("nothing to process, every entry already recorded",
			"entries", len(entries))
		summary.Elapsed = time.Since(start)
		return summary, nil
	}

	workFn, err := p.workFunc()
	if err != nil {
		return nil, err
	}

	processor, err := p.buildProcessor()
	if err != nil {
		return nil, err
	}

	out, err := corpus.NewWriter(p.config.Pipeline.OutputPath, p.config.Pipeline.Resume)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}

	var report *corpus.ReportWriter
	if p.config.Pipeline.Mode == config.ModeHeuristic {
		report, err = corpus.NewReportWriter(reportPath(p.config.Pipeline.OutputPath), p.config.Pipeline.Resume)
		if err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("open quality report: %w", err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	interval := p.config.Pipeline.CheckpointInterval
	if interval < 1 {
		interval = 1
	}

	state := &runState{
		p:        p,
		ctx:      runCtx,
		cancel:   cancel,
		out:      out,
		report:   report,
		total:    len(work),
		interval: interval,
	}

	items := make(chan task.Item[domain.Entry])
	go func() {
		defer close(items)
		for _, item := range work {
			select {
			case items <- item:
			case <-runCtx.Done():
				return
			}
		}
	}()

	p.logger.Info("run starting",
		"mode", p.config.Pipeline.Mode,
		"submitted", len(work),
		"skipped", summary.Skipped,
		"workers", p.config.Engine.Workers,
		"session_id", p.store.SessionID())

	processor.RunStream(runCtx, items, p.config.Engine.BatchSize, workFn, state.onDone)

	if err := p.store.Save(); err != nil {
		p.logger.Error("final checkpoint save failed", "error", err)
		state.fail(fmt.Errorf("save checkpoint: %w", err))
	}
	if err := out.Close(); err != nil {
		state.fail(fmt.Errorf("close output: %w", err))
	}
	if report != nil {
		if err := report.Close(); err != nil {
			state.fail(fmt.Errorf("close quality report: %w", err))
		}
	}

	summary.Successful = state.successful
	summary.Failed = state.failed
	summary.ChunksCreated = state.chunks
	summary.Elapsed = time.Since(start)

	p.logger.Info("run finished",
		"mode", summary.Mode,
		"submitted", summary.Submitted,
		"successful", summary.Successful,
		"failed", summary.Failed,
		"chunks_created", summary.ChunksCreated,
		"elapsed", summary.Elapsed.Round(time.Millisecond).String(),
		"output", summary.OutputPath)

	if state.writeErr != nil {
		return summary, state.writeErr
	}
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run interrupted: %w", err)
	}
	return summary, nil
}

// workList filters entries through the checkpoint. With retry_failed,
// entries whose recorded outcome was a failure are re-admitted.
func (p *Pipeline) workList(entries []domain.Entry) []task.Item[domain.Entry] {
	retry := make(map[int]struct{})
	if p.config.Pipeline.RetryFailed {
		for _, id := range p.store.FailedIDs() {
			retry[id] = struct{}{}
		}
	}

	items := make([]task.Item[domain.Entry], 0, len(entries))
	for _, entry := range entries {
		if p.store.IsProcessed(entry.ID) {
			if _, ok := retry[entry.ID]; !ok {
				continue
			}
		}
		items = append(items, task.Item[domain.Entry]{ID: entry.ID, Entry: entry})
	}
	return items
}

// workFunc selects the per-entry work function for the configured mode.
func (p *Pipeline) workFunc() (task.WorkFunc[domain.Entry, domain.ChunkPair], error) {
	switch p.config.Pipeline.Mode {
	case config.ModeAlign:
		return p.alignWork, nil
	case config.ModeClean:
		return p.cleanWork, nil
	case config.ModeHeuristic:
		return p.heuristicWork, nil
	default:
		return nil, fmt.Errorf("unknown pipeline mode %q", p.config.Pipeline.Mode)
	}
}

func (p *Pipeline) alignWork(ctx context.Context, entry domain.Entry, id int) ([]domain.ChunkPair, error) {
	return p.aligner.AlignChunks(ctx, entry.English, entry.Hindi)
}

func (p *Pipeline) cleanWork(ctx context.Context, entry domain.Entry, id int) ([]domain.ChunkPair, error) {
	cleaned, err := p.aligner.CleanPair(ctx, entry.English, entry.Hindi)
	if err != nil {
		return nil, err
	}

	// Misaligned pairs produce no output chunks; the entry still counts
	// as processed.
	if !cleaned.IsAligned {
		return nil, nil
	}

	return []domain.ChunkPair{{
		English: cleaned.English,
		Hindi:   cleaned.Hindi,
		Issues:  cleaned.Issues,
	}}, nil
}

func (p *Pipeline) heuristicWork(ctx context.Context, entry domain.Entry, id int) ([]domain.ChunkPair, error) {
	english := text.CleanEnglish(entry.English)
	hindi := text.CleanHindi(entry.Hindi)

	engSentences := text.SplitEnglish(english)
	hinSentences := text.SplitHindi(hindi)

	if len(engSentences) != len(hinSentences) {
		return nil, fmt.Errorf("%w: english %d vs hindi %d",
			ErrSentenceCountMismatch, len(engSentences), len(hinSentences))
	}

	size := p.config.Quality.ChunkSentences
	engChunks := text.Chunk(engSentences, size)
	hinChunks := text.Chunk(hinSentences, size)

	pairs := make([]domain.ChunkPair, 0, len(engChunks))
	for i := range engChunks {
		pair := domain.ChunkPair{English: engChunks[i], Hindi: hinChunks[i]}
		p.grade(&pair)
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// grade attaches the quality assessment to a chunk pair. Structural rule
// failures reject the pair outright; otherwise the weighted score picks
// the grade.
func (p *Pipeline) grade(pair *domain.ChunkPair) {
	assessment := p.assessor.Assess(pair.English, pair.Hindi)
	pair.Score = assessment.Score
	pair.Issues = assessment.Issues
	if assessment.Valid {
		pair.Grade = domain.GradeFor(assessment.Score)
	} else {
		pair.Grade = domain.QualityRejected
	}
}

// buildProcessor assembles the engine for this run. Heuristic work is
// local: it gets an unlimited call rate and a single attempt per entry.
func (p *Pipeline) buildProcessor() (*task.Processor[domain.Entry, domain.ChunkPair], error) {
	engineCfg := task.Config{
		Workers:        p.config.Engine.Workers,
		MaxRetries:     p.config.Engine.MaxRetries,
		RetryBaseDelay: time.Second,
	}

	rps := p.config.Engine.CallsPerSecond
	if p.config.Pipeline.Mode == config.ModeHeuristic {
		rps = math.Inf(1)
		engineCfg.MaxRetries = 1
	}

	limiter, err := task.NewLimiter(rps)
	if err != nil {
		return nil, fmt.Errorf("build rate limiter: %w", err)
	}

	return task.NewProcessor[domain.Entry, domain.ChunkPair](engineCfg, limiter, p.logger), nil
}

// runState is the mutable state of one run, touched only from the engine's
// single-goroutine completion callback.
type runState struct {
	p      *Pipeline
	ctx    context.Context
	cancel context.CancelFunc
	out    *corpus.Writer
	report *corpus.ReportWriter

	total    int
	interval int

	completed  int
	successful int
	failed     int
	chunks     int
	chunkSeq   int

	writeErr error
}

// onDone handles one engine completion: write output chunks, record the
// outcome in the checkpoint, save periodically, and publish progress.
func (s *runState) onDone(result task.Result[domain.ChunkPair]) {
	s.completed++

	// Items that failed because the run was cancelled are not marked
	// processed: resuming the interrupted run must attempt them again.
	if s.ctx.Err() != nil && interrupted(result.Err) {
		s.failed++
		s.emit(result, 0)
		return
	}

	written := 0
	if result.Success {
		s.successful++
		for _, pair := range result.Chunks {
			if pair.Validate() != nil {
				continue
			}
			if s.writePair(pair, result.ID) {
				written++
			}
		}
	} else {
		s.failed++
		s.p.logger.Warn("entry failed", "entry_id", result.ID, "error", result.Err)
	}

	s.p.store.MarkProcessed(result.ID, result.Success, written)
	s.chunks += written

	if s.completed%s.interval == 0 {
		s.persist()
	}

	s.emit(result, written)
}

// writePair routes one chunk pair to the outputs of the current mode. In
// heuristic mode every pair lands in the quality report, but rejected
// pairs never reach the JSONL output. Reports whether the pair was
// written to the output corpus.
func (s *runState) writePair(pair domain.ChunkPair, entryID int) bool {
	if s.report != nil {
		matches := s.p.extract.Extract(pair.English + "\n" + pair.Hindi)
		row := corpus.ReportRow{
			EntryID: entryID,
			ChunkID: s.chunkSeq,
			Pair:    pair,
			Ratio:   text.LengthRatio(pair.English, pair.Hindi),
			Chapter: text.ChapterNumber(matches),
			Matches: matches,
		}
		s.chunkSeq++
		if err := s.report.Write(row); err != nil {
			s.fail(fmt.Errorf("write quality report: %w", err))
			return false
		}
	}

	if pair.Grade == domain.QualityRejected {
		return false
	}

	if err := s.out.Write(pair); err != nil {
		s.fail(fmt.Errorf("write output: %w", err))
		return false
	}
	return true
}

// persist saves the checkpoint and flushes the writers so an interrupt
// between intervals loses at most one interval of output.
func (s *runState) persist() {
	if err := s.p.store.Save(); err != nil {
		s.p.logger.Error("periodic checkpoint save failed", "error", err)
	}
	if err := s.out.Flush(); err != nil {
		s.fail(fmt.Errorf("flush output: %w", err))
	}
	if s.report != nil {
		if err := s.report.Flush(); err != nil {
			s.fail(fmt.Errorf("flush quality report: %w", err))
		}
	}
}

// fail records the first unrecoverable write error and cancels the run so
// remaining items stop instead of producing output nobody can keep.
func (s *runState) fail(err error) {
	if s.writeErr == nil {
		s.writeErr = err
		s.p.logger.Error("run aborted", "error", err)
		s.cancel()
	}
}

// emit publishes one progress event with the running totals.
func (s *runState) emit(result task.Result[domain.ChunkPair], written int) {
	event := events.NewProgressEvent(events.ProgressEvent{
		EntryID:       result.ID,
		Success:       result.Success,
		ChunkCount:    written,
		Completed:     s.completed,
		Total:         s.total,
		Successful:    s.successful,
		Failed:        s.failed,
		ChunksCreated: s.chunks,
	})
	if err := s.p.emitter.EmitProgress(s.ctx, event); err != nil {
		s.p.logger.Warn("progress event rejected", "error", err)
	}
}

// interrupted reports whether a result error stems from context
// cancellation rather than from the work itself.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// reportPath derives the quality report location from the output path by
// swapping the extension for .csv.
func reportPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".csv"
}
