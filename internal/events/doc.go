// Package events provides types and interfaces for run progress reporting.
//
// The pipeline publishes one ProgressEvent per completed entry without
// knowing which handlers consume it; the console progress surface and the
// status server register as handlers. This keeps the pipeline free of UI
// and HTTP concerns.
//
// The primary components are:
// - ProgressEvent: One completion plus the run's running totals
// - Handler: Interface for components that consume progress events
// - Emitter: Interface for components that publish progress events
package events
