// Package checkpoint persists resumable progress for long corpus runs.
//
// A checkpoint file records which entry IDs have already been handled,
// together with aggregate counters and session metadata, so an
// interrupted run can restart without redoing or duplicating work.
// Saves are atomic (temp file then rename) and loads are tolerant: a
// missing or corrupt file yields a fresh, empty store rather than an
// error.
//
// The store is not safe for concurrent use. The pipeline drives it
// from a single goroutine, which is the same guarantee the execution
// engine gives its completion callback.
package checkpoint
