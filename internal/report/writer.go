package report

import (
	"fmt"
	"io"

	"github.com/harsha7innerscore/ui-playground/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the run report.
	// Returns the number of bytes written and any error encountered.
	Write(run *model.RunReport) (int, error)

	// WriteComparison outputs the difference between two runs.
	WriteComparison(c *model.Comparison) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(run *model.RunReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(run)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteComparison outputs the comparison to all configured Writers.
func (m *MultiWriter) WriteComparison(c *model.Comparison) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteComparison(c)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Format names accepted by New.
const (
	FormatSimple   = "simple"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Options holds settings shared by the writers built with New.
type Options struct {
	// Version is embedded in JSON output and footers.
	Version string
	// Color enables ANSI styling in the simple format.
	Color bool
	// Verbose lists every identifier in the simple format.
	Verbose bool
	// ShowDiff includes unified diffs in the simple format.
	ShowDiff bool
}

// New returns the writer for format.
func New(format string, output io.Writer, opts Options) (Writer, error) {
	switch format {
	case FormatSimple, "":
		return NewSimpleWriter(output,
			WithColor(opts.Color),
			WithVerbose(opts.Verbose),
			WithDiff(opts.ShowDiff),
		), nil
	case FormatJSON:
		return NewJSONWriter(output, opts.Version, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output, opts.Version), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// Formats returns the accepted format names.
func Formats() []string {
	return []string{FormatSimple, FormatJSON, FormatMarkdown}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// title returns s with each word capitalized, e.g. "injected" becomes
// "Injected". A Caser is stateful, so one is made per call.
func title(s string) string {
	return cases.Title(language.English).String(s)
}
