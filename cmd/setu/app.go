package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/setu/internal/align"
	"github.com/phrazzld/setu/internal/checkpoint"
	"github.com/phrazzld/setu/internal/config"
	"github.com/phrazzld/setu/internal/events"
	"github.com/phrazzld/setu/internal/pipeline"
	"github.com/phrazzld/setu/internal/platform/gemini"
)

// application holds the shared application dependencies so wiring and
// cleanup stay in one place.
type application struct {
	config *config.Config
	logger *slog.Logger

	store    *checkpoint.Store
	aligner  align.Aligner
	emitter  *events.InMemoryEmitter
	pipe     *pipeline.Pipeline
	progress *progressPrinter
	status   *statusServer
}

// newApplication creates an application instance with all dependencies
// initialized. The Gemini client is only constructed for the modes that
// call the LLM; the heuristic pipeline runs without one.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.store = checkpoint.NewStore(cfg.Pipeline.CheckpointPath, logger)

	if cfg.Pipeline.Mode != config.ModeHeuristic {
		var err error
		app.aligner, err = gemini.NewAligner(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini aligner: %w", err)
		}
		logger.Info("Gemini aligner initialized", "model", cfg.LLM.Model)
	}

	app.emitter = events.NewInMemoryEmitter(logger)

	app.progress = newProgressPrinter(os.Stdout)
	app.emitter.RegisterHandler(app.progress)

	if cfg.Server.Enabled {
		app.status = newStatusServer(cfg.Server, cfg.Pipeline.Mode, logger)
		app.emitter.RegisterHandler(app.status.tracker)
	}

	pipe, err := pipeline.NewPipeline(*cfg, app.aligner, app.store, app.emitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pipeline: %w", err)
	}
	app.pipe = pipe

	logger.Info("application initialized", "mode", cfg.Pipeline.Mode)
	return app, nil
}

// Run executes one pipeline pass, rendering the console surface around
// it. The returned error is the pipeline's verdict; cancellation shows
// up as context.Canceled after the checkpoint has been saved.
func (app *application) Run(ctx context.Context) error {
	app.printBanner()

	if app.status != nil {
		app.status.Start()
		defer app.status.Stop()
	}

	app.progress.Start()
	summary, err := app.pipe.Run(ctx)
	app.progress.Finish()

	if summary == nil {
		return err
	}

	if summary.Submitted == 0 && err == nil {
		fmt.Println("All entries already processed. Nothing to do.")
		return nil
	}

	app.printSummary(summary, err)
	return err
}

const bannerWidth = 70

// printBanner writes the run configuration to stdout before processing
// starts.
func (app *application) printBanner() {
	line := strings.Repeat("=", bannerWidth)
	cfg := app.config

	fmt.Println(line)
	fmt.Println("setu - English/Hindi bilingual corpus pipeline")
	fmt.Println(line)
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("  Mode:                 %s\n", cfg.Pipeline.Mode)
	if cfg.Pipeline.Mode != config.ModeHeuristic {
		fmt.Printf("  Model:                %s\n", cfg.LLM.Model)
		fmt.Printf("  Rate limit:           %.1f req/s\n", cfg.Engine.CallsPerSecond)
	}
	fmt.Printf("  Workers:              %d\n", cfg.Engine.Workers)
	fmt.Printf("  Checkpoint interval:  %d entries\n", cfg.Pipeline.CheckpointInterval)
	fmt.Printf("  Input:                %s\n", cfg.Pipeline.InputPath)
	fmt.Printf("  Output:               %s\n", cfg.Pipeline.OutputPath)
	fmt.Printf("  Checkpoint:           %s\n", cfg.Pipeline.CheckpointPath)
	fmt.Printf("  Resume:               %t\n", cfg.Pipeline.Resume)
	fmt.Println()
}

// printSummary writes the final statistics block to stdout after the
// run ends, whether it completed, failed, or was interrupted.
func (app *application) printSummary(summary *pipeline.Summary, runErr error) {
	line := strings.Repeat("=", bannerWidth)

	title := "RUN COMPLETE"
	interrupted := errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded)
	switch {
	case interrupted:
		title = "RUN INTERRUPTED"
	case runErr != nil:
		title = "RUN FAILED"
	}

	processed := summary.Successful + summary.Failed

	fmt.Println()
	fmt.Println(line)
	fmt.Println(title)
	fmt.Println(line)
	fmt.Println()
	fmt.Println("Statistics:")
	fmt.Printf("  Total entries:        %d\n", summary.TotalEntries)
	fmt.Printf("  Skipped (checkpoint): %d\n", summary.Skipped)
	fmt.Printf("  Processed:            %d\n", processed)
	fmt.Printf("  Successful:           %d\n", summary.Successful)
	fmt.Printf("  Failed:               %d\n", summary.Failed)
	fmt.Printf("  Chunks created:       %d\n", summary.ChunksCreated)
	fmt.Printf("  Elapsed:              %.1f seconds (%.1f minutes)\n",
		summary.Elapsed.Seconds(), summary.Elapsed.Minutes())
	if processed > 0 && summary.Elapsed > 0 {
		fmt.Printf("  Rate:                 %.2f entries/second\n",
			float64(processed)/summary.Elapsed.Seconds())
	}
	fmt.Println()
	fmt.Printf("Output:     %s (%d chunks)\n", summary.OutputPath, summary.ChunksCreated)
	fmt.Printf("Checkpoint: %s\n", app.config.Pipeline.CheckpointPath)

	switch {
	case interrupted:
		fmt.Println()
		fmt.Println("Checkpoint saved. Run again with -resume to continue.")
	case runErr != nil:
		fmt.Println()
		fmt.Printf("Error: %v\n", runErr)
	}
	fmt.Println(line)
}
