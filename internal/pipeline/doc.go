// Package pipeline orchestrates one processing run: it loads the input
// corpus, filters entries through the checkpoint, drives the parallel
// engine with the work function for the configured mode, and writes output
// chunks and checkpoint state from the engine's completion callback.
//
// The callback runs on a single goroutine (the engine's coordinator), so
// the checkpoint store and the output writers are used without locks.
//
// The three modes share one entry/chunk shape:
//
//   - align: each entry goes to the LLM for 3-sentence chunk alignment
//   - clean: each pair goes to the LLM for deep cleaning and verification
//   - heuristic: clean, split, chunk, and grade locally with no LLM calls;
//     entries whose sentence counts diverge are recorded as failed so a
//     later align run with retry_failed picks up exactly those
package pipeline
