// Package model defines the data structures shared by the pipeline, the
// report writers and the history database.
//
// This package contains the following main types:
//   - FileReport: the outcome of processing one source file
//   - RunReport: one invocation over a set of files
//   - Summary: aggregated counts and sample identifiers for display
//   - Diagnostic: a per-file note such as a skipped, unterminated tag
//
// The models are designed to be serializable to JSON for report output and
// database storage. Fields that only carry data between pipeline steps are
// excluded from JSON.
package model
