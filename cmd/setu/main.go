// Package main implements the setu command line interface, which runs
// one pass of the English/Hindi corpus pipeline: LLM-driven chunk
// alignment, LLM deep cleaning, or local heuristic chunking, with
// checkpointed resume and a console progress display.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/setu/internal/checkpoint"
	"github.com/phrazzld/setu/internal/config"
	"github.com/phrazzld/setu/internal/platform/logger"
)

// flagKeys maps each override flag to its configuration key. Flags not
// listed here (like -clear-checkpoint) control the CLI itself rather
// than the configuration.
var flagKeys = map[string]string{
	"mode":         "pipeline.mode",
	"input":        "pipeline.input_path",
	"output":       "pipeline.output_path",
	"checkpoint":   "pipeline.checkpoint_path",
	"resume":       "pipeline.resume",
	"retry-failed": "pipeline.retry_failed",
	"workers":      "engine.workers",
	"rps":          "engine.calls_per_second",
}

// cliFlags holds the flags that change what the CLI does, as opposed to
// the override flags that only feed the configuration.
type cliFlags struct {
	clearCheckpoint *bool
}

// registerFlags defines the CLI flags on the given flag set. Override
// flag defaults are never used: only flags the user explicitly set are
// turned into configuration overrides, so the documented SETU_* defaults
// stay in charge.
func registerFlags(fs *flag.FlagSet) *cliFlags {
	fs.String("mode", "", "pipeline mode: align, clean or heuristic (overrides SETU_MODE)")
	fs.String("input", "", "input corpus JSONL path (overrides SETU_INPUT_PATH)")
	fs.String("output", "", "output JSONL path for chunk pairs (overrides SETU_OUTPUT_PATH)")
	fs.String("checkpoint", "", "checkpoint file path (overrides SETU_CHECKPOINT_PATH)")
	fs.Bool("resume", true, "continue from the checkpoint instead of starting over (overrides SETU_RESUME)")
	fs.Bool("retry-failed", false, "re-submit entries whose previous attempt failed (overrides SETU_RETRY_FAILED)")
	fs.Int("workers", 0, "parallel workers (overrides SETU_ENGINE_WORKERS)")
	fs.Float64("rps", 0, "LLM calls per second (overrides SETU_ENGINE_CALLS_PER_SECOND)")

	return &cliFlags{
		clearCheckpoint: fs.Bool("clear-checkpoint", false, "clear the checkpoint file and exit"),
	}
}

// overridesFrom turns the flags the user explicitly set into
// configuration overrides.
func overridesFrom(fs *flag.FlagSet) []config.Override {
	var overrides []config.Override
	fs.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		value := any(f.Value.String())
		if getter, ok := f.Value.(flag.Getter); ok {
			value = getter.Get()
		}
		overrides = append(overrides, config.Override{Key: key, Value: value})
	})
	return overrides
}

func main() {
	os.Exit(run())
}

// run executes the CLI and returns the process exit code. Interrupted
// runs exit with 130 after the checkpoint has been saved.
func run() int {
	flags := registerFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(overridesFrom(flag.CommandLine)...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setu: %v\n", err)
		return 1
	}

	log, err := logger.Setup(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setu: failed to set up logging: %v\n", err)
		return 1
	}

	if *flags.clearCheckpoint {
		store := checkpoint.NewStore(cfg.Pipeline.CheckpointPath, log)
		if err := store.Clear(); err != nil {
			log.Error("failed to clear checkpoint", "error", err)
			return 1
		}
		fmt.Printf("Checkpoint cleared: %s\n", cfg.Pipeline.CheckpointPath)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Once the first signal cancels the context, restore default signal
	// handling so a second interrupt kills the process instead of waiting
	// for in-flight work.
	go func() {
		<-ctx.Done()
		stop()
	}()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		return 1
	}

	if err := app.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		log.Error("run failed", "error", err)
		return 1
	}
	return 0
}
