// Package task provides the parallel execution engine used to run large
// batches of failure-prone work against a rate-limited external service.
// It combines a bounded worker pool, a shared rate limiter applied before
// every attempt, and per-item retry with exponential backoff. Completions
// are reported to a single callback goroutine in completion order, so
// callers can checkpoint progress without any locking of their own.
package task
