// Package gemini provides an implementation of the align.Aligner interface
// that uses Google's Gemini API for bilingual alignment and deep cleaning.
//
// This package is an infrastructure adapter: it translates between the
// application's domain models and the Gemini API without exposing provider
// details to the core application. Each Aligner method issues exactly one
// generate call; retry, backoff, and rate limiting belong to the execution
// engine driving it.
//
// Key components:
//
// 1. Aligner:
//   - Implements the align.Aligner interface
//   - Builds alignment and cleaning prompts with sentence counts from the
//     same splitter the heuristic pipeline uses
//   - Classifies provider failures into the align sentinel errors so
//     callers never import genai types
//
// 2. Response Processing:
//   - Strips the markdown code fences models wrap around JSON output
//   - Parses aligned chunk arrays and clean/verify objects
//   - Drops chunks with an empty side before they reach the caller
//
// 3. Error Handling:
//   - Rate limits (429) and server errors map to ErrTransientFailure
//   - Auth failures (401/403) map to ErrInvalidConfig
//   - Safety blocks map to ErrContentBlocked
//   - All provider error text passes through redact before surfacing
package gemini
