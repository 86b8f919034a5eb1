// Package main provides the entry point for the locators CLI.
//
// locators injects stable, human-readable test identifiers such as
// data-testid="button-save-1" into the component tags of JSX and TSX
// source files, so that UI tests can locate elements reliably.
//
// Usage:
//
//	locators inject <dir-or-file>...
//	locators watch <dir>
//	locators history
//	locators compare [run-a run-b]
//
// See --help for all available options.
package main

// main is the entry point for locators.
func main() {
	Execute()
}
