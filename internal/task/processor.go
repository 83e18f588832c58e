package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Config holds the engine settings for a Processor.
type Config struct {
	// Workers determines how many items are processed concurrently.
	Workers int

	// MaxRetries is the total number of attempts per item, including
	// the first.
	MaxRetries int

	// RetryBaseDelay is the backoff unit between failed attempts: the
	// wait before attempt n+1 is RetryBaseDelay << n, so the default of
	// one second backs off 1s, 2s, 4s, ...
	RetryBaseDelay time.Duration
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Workers:        3,
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
	}
}

// defaultStreamBatchSize is the window size RunStream falls back to when
// given a non-positive batch size.
const defaultStreamBatchSize = 100

// Processor runs a WorkFunc over batches of items using a bounded pool of
// workers. All attempts across all workers share one Limiter, so the
// global call rate holds regardless of concurrency.
type Processor[E, C any] struct {
	config  Config
	limiter *Limiter
	logger  *slog.Logger
}

// NewProcessor creates a Processor with the given configuration and shared
// rate limiter. Invalid config values are replaced with defaults and logged.
func NewProcessor[E, C any](config Config, limiter *Limiter, logger *slog.Logger) *Processor[E, C] {
	defaults := DefaultConfig()

	if config.Workers <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.Workers,
			"default_count", defaults.Workers)
		config.Workers = defaults.Workers
	}

	if config.MaxRetries <= 0 {
		logger.Warn("invalid max retries specified, using default",
			"specified_retries", config.MaxRetries,
			"default_retries", defaults.MaxRetries)
		config.MaxRetries = defaults.MaxRetries
	}

	if config.RetryBaseDelay <= 0 {
		logger.Warn("invalid retry base delay specified, using default",
			"specified_delay", config.RetryBaseDelay,
			"default_delay", defaults.RetryBaseDelay)
		config.RetryBaseDelay = defaults.RetryBaseDelay
	}

	return &Processor[E, C]{
		config:  config,
		limiter: limiter,
		logger:  logger.With("component", "processor"),
	}
}

// Run processes every item and returns one Result per item. Workers pull
// items off a shared channel; a single coordinating loop drains completions,
// appending each to the returned slice and invoking onDone (when non-nil)
// synchronously, in completion order. Because the callback runs on exactly
// one goroutine, callers may mutate unsynchronized state from it.
//
// Run returns only after every item has a result. The returned slice always
// has len(items) entries: when ctx is cancelled, unfinished items complete
// as failed Results carrying the context error.
func (p *Processor[E, C]) Run(
	ctx context.Context,
	items []Item[E],
	work WorkFunc[E, C],
	onDone func(Result[C]),
) []Result[C] {
	if len(items) == 0 {
		return nil
	}

	workers := p.config.Workers
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan Item[E])
	// Buffered to len(items) so neither workers nor the feeder ever block
	// on delivering a result.
	results := make(chan Result[C], len(items))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for item := range jobs {
				results <- p.processItem(ctx, item, work, workerID)
			}
		}(i)
	}

	// Feed jobs until done or cancelled. Items that were never handed to a
	// worker still get a result so the caller can tell what was attempted.
	go func() {
		defer close(jobs)
		for _, item := range items {
			select {
			case jobs <- item:
			case <-ctx.Done():
				results <- Result[C]{
					ID:  item.ID,
					Err: fmt.Errorf("item %d not attempted: %w", item.ID, ctx.Err()),
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]Result[C], 0, len(items))
	for result := range results {
		collected = append(collected, result)
		if onDone != nil {
			onDone(result)
		}
	}

	return collected
}

// RunStream consumes items lazily, processing them in windows of batchSize
// so very large inputs never need to be fully materialized. Completions are
// reported through onDone exactly as in Run, and the aggregated results of
// every window are returned once the channel is exhausted.
func (p *Processor[E, C]) RunStream(
	ctx context.Context,
	items <-chan Item[E],
	batchSize int,
	work WorkFunc[E, C],
	onDone func(Result[C]),
) []Result[C] {
	if batchSize <= 0 {
		p.logger.Warn("invalid stream batch size, using default",
			"specified_size", batchSize,
			"default_size", defaultStreamBatchSize)
		batchSize = defaultStreamBatchSize
	}

	var all []Result[C]
	window := make([]Item[E], 0, batchSize)

	flush := func() {
		if len(window) == 0 {
			return
		}
		all = append(all, p.Run(ctx, window, work, onDone)...)
		window = window[:0]
	}

	for item := range items {
		window = append(window, item)
		if len(window) >= batchSize {
			flush()
		}
	}
	flush()

	return all
}

// processItem runs the retry loop for a single item. The rate limiter is
// acquired before every attempt, so retries count against the global call
// rate like first attempts do.
func (p *Processor[E, C]) processItem(
	ctx context.Context,
	item Item[E],
	work WorkFunc[E, C],
	workerID int,
) Result[C] {
	logger := p.logger.With("item_id", item.ID, "worker_id", workerID)

	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		if err := p.limiter.Acquire(ctx); err != nil {
			return Result[C]{
				ID:  item.ID,
				Err: fmt.Errorf("item %d interrupted: %w", item.ID, err),
			}
		}

		chunks, err := p.invoke(ctx, item, work)
		if err == nil {
			if attempt > 0 {
				logger.Info("item succeeded after retry", "attempt", attempt+1)
			}
			return Result[C]{ID: item.ID, Success: true, Chunks: chunks}
		}

		lastErr = err
		logger.Warn("item attempt failed",
			"attempt", attempt+1,
			"max_attempts", p.config.MaxRetries,
			"error", err)

		if attempt+1 < p.config.MaxRetries {
			delay := p.config.RetryBaseDelay << attempt
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Result[C]{
					ID:  item.ID,
					Err: fmt.Errorf("item %d interrupted: %w", item.ID, ctx.Err()),
				}
			}
		}
	}

	return Result[C]{
		ID: item.ID,
		Err: fmt.Errorf("item %d failed after %d attempts: %w",
			item.ID, p.config.MaxRetries, lastErr),
	}
}

// invoke calls the work function, converting a panic into an error so one
// bad item cannot take down the whole run.
func (p *Processor[E, C]) invoke(
	ctx context.Context,
	item Item[E],
	work WorkFunc[E, C],
) (chunks []C, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("work function panicked on item %d: %v", item.ID, r)
		}
	}()

	return work(ctx, item.Entry, item.ID)
}
