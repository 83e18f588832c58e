// Package align defines the boundary between the pipeline core and external
// LLM services. It contains the Aligner interface for chunk alignment and
// pair cleaning, and the error types callers use to classify failures
// without depending on any concrete provider.
package align
