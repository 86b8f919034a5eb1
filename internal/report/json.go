package report

import (
	"encoding/json"
	"io"

	"github.com/harsha7innerscore/ui-playground/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// version is the locators version embedded in the output.
	version string

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		version:    version,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport wraps a run with its summary and the tool version.
type JSONReport struct {
	// Version is the locators version that generated this report.
	Version string `json:"version"`

	// Summary aggregates the run.
	Summary *model.Summary `json:"summary"`

	// Run is the full run report.
	Run *model.RunReport `json:"run"`
}

// JSONComparison wraps a comparison with the tool version.
type JSONComparison struct {
	Version    string            `json:"version"`
	Comparison *model.Comparison `json:"comparison"`
}

// Write outputs the run report in JSON format.
func (w *JSONWriter) Write(run *model.RunReport) (int, error) {
	return w.writeJSON(&JSONReport{
		Version: w.version,
		Summary: model.NewSummary(run),
		Run:     run,
	})
}

// WriteComparison outputs the comparison in JSON format.
func (w *JSONWriter) WriteComparison(c *model.Comparison) (int, error) {
	return w.writeJSON(&JSONComparison{Version: w.version, Comparison: c})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
