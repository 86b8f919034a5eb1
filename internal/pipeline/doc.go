// Package pipeline runs the per-file injection steps.
//
// A Pipeline takes one source file through a fixed sequence of steps:
// read, resolve targets, inject identifiers, optionally verify, hash,
// diff and finally write. Each step receives the FileReport built so far
// and adds to it.
//
// Per-occurrence problems never fail a step. They are recorded as
// diagnostics on the report. A step returns an error only when the file
// as a whole cannot be processed, e.g. the source is unreadable or the
// output cannot be written.
//
// BatchProcessor runs one pipeline per file with bounded concurrency
// using errgroup. Every pipeline works on its own report and its own
// testid.Session, so files never share allocation state.
package pipeline
