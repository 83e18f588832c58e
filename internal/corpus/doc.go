// Package corpus handles file IO for the pipeline: streaming JSONL entry
// input, appendable JSONL chunk output, and the CSV quality report. All
// writers are single-goroutine; the pipeline drives them from its
// completion callback, which the engine already serializes.
package corpus
