// Package database provides SQLite-based run history for locators.
//
// Every inject run is stored as one row in runs plus one row per processed
// file in file_results. A file row keeps the source and output fingerprints
// and the identifiers assigned, which is what the history and compare
// commands read back.
//
// The driver is modernc.org/sqlite, a CGO-free implementation, so the
// database is a single file under the XDG data directory and the binary
// still cross-compiles. WAL mode is enabled by default.
package database
