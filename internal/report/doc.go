// Package report renders run reports and run comparisons.
//
// This package contains writers for different output formats:
//   - SimpleWriter: human-readable text for the terminal, styled with
//     lipgloss when color is enabled
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: GitHub flavored Markdown with a mermaid chart of
//     identifiers per tag
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed with MultiWriter.
package report
