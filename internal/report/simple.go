package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/harsha7innerscore/ui-playground/internal/model"
)

const ruleWidth = 70

// Palette used when color is enabled.
var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6C7A89")
)

// styles holds the lipgloss styles of a SimpleWriter. Without color every
// style is empty and renders text unchanged.
type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
}

func newStyles(output io.Writer, color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(output)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorAccent),
		heading: r.NewStyle().Bold(true),
		ok:      r.NewStyle().Foreground(colorSuccess),
		warn:    r.NewStyle().Foreground(colorWarning),
		err:     r.NewStyle().Foreground(colorError),
		muted:   r.NewStyle().Foreground(colorMuted),
		added:   r.NewStyle().Foreground(colorSuccess),
		removed: r.NewStyle().Foreground(colorError),
	}
}

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// color enables lipgloss styling.
	color bool

	// verbose lists every identifier per file.
	verbose bool

	// showDiff prints the unified diff of each changed file.
	showDiff bool

	st styles
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor enables ANSI styling. Callers usually pass whether the output
// is a terminal.
func WithColor(color bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.color = color
	}
}

// WithVerbose enables verbose output with every identifier listed.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithDiff includes the unified diff of each changed file.
func WithDiff(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showDiff = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}
	w.st = newStyles(output, w.color)

	return w
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(run *model.RunReport) (int, error) {
	var sb strings.Builder
	summary := model.NewSummary(run)

	w.writeHeader(&sb, run)
	w.writeSummary(&sb, summary)
	w.writeTags(&sb, summary)
	w.writeFiles(&sb, run)
	w.writeDiagnostics(&sb, run)
	if w.showDiff {
		w.writeDiffs(&sb, run)
	}

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) rule(sb *strings.Builder, ch string) {
	sb.WriteString(w.st.muted.Render(strings.Repeat(ch, ruleWidth)))
	sb.WriteString("\n")
}

func (w *SimpleWriter) section(sb *strings.Builder, name string) {
	w.rule(sb, "-")
	sb.WriteString(w.st.heading.Render(name))
	sb.WriteString("\n")
	w.rule(sb, "-")
	sb.WriteString("\n")
}

// writeHeader writes the run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, run *model.RunReport) {
	w.rule(sb, "=")
	sb.WriteString(w.st.title.Render("LOCATORS REPORT"))
	sb.WriteString("\n")
	w.rule(sb, "=")
	sb.WriteString("\n")

	fmt.Fprintf(sb, "Run:       %s\n", run.RunID)
	fmt.Fprintf(sb, "Root:      %s\n", run.Root)
	fmt.Fprintf(sb, "Started:   %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST"))
	if d := run.Duration(); d > 0 {
		fmt.Fprintf(sb, "Duration:  %s\n", d.Round(time.Millisecond))
	}
	fmt.Fprintf(sb, "Mode:      %s\n", run.Mode)
	fmt.Fprintf(sb, "Attribute: %s\n", run.Attribute)
	if run.Prefix != "" {
		fmt.Fprintf(sb, "Prefix:    %s\n", run.Prefix)
	}
	if run.DryRun {
		sb.WriteString(w.st.warn.Render("Dry run:   no files were written"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeSummary writes file and identifier counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, s *model.Summary) {
	w.section(sb, "SUMMARY")

	fmt.Fprintf(sb, "  Files:      %d\n", s.Files)
	for _, row := range []struct {
		status model.FileStatus
		count  int
	}{
		{model.StatusInjected, s.Injected},
		{model.StatusPreview, s.Preview},
		{model.StatusUnchanged, s.Unchanged},
		{model.StatusRejected, s.Rejected},
		{model.StatusFailed, s.Failed},
	} {
		if row.count == 0 {
			continue
		}
		label := fmt.Sprintf("%-11s", title(row.status.String())+":")
		fmt.Fprintf(sb, "    %s %d\n", w.statusStyle(row.status).Render(label), row.count)
	}
	fmt.Fprintf(sb, "  IDs:        %d assigned\n", s.IDs)
	fmt.Fprintf(sb, "  Existing:   %d\n", s.Existing)
	if s.Skipped > 0 {
		fmt.Fprintf(sb, "  Skipped:    %s\n", w.st.warn.Render(fmt.Sprintf("%d", s.Skipped)))
	}
	sb.WriteString("\n")
}

// writeTags writes identifier counts per tag and the sample identifiers.
func (w *SimpleWriter) writeTags(sb *strings.Builder, s *model.Summary) {
	if s.IDs == 0 {
		return
	}
	w.section(sb, "IDS BY TAG")

	width := 0
	for _, tc := range s.ByTag {
		width = max(width, len(tc.Tag))
	}
	for _, tc := range s.ByTag {
		fmt.Fprintf(sb, "  %-*s  %d\n", width, tc.Tag, tc.Count)
	}
	sb.WriteString("\n")

	sb.WriteString("  Sample:\n")
	for _, id := range s.Samples {
		fmt.Fprintf(sb, "    %s\n", id)
	}
	if s.More > 0 {
		sb.WriteString(w.st.muted.Render(fmt.Sprintf("    ... and %d more", s.More)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeFiles writes one line per file.
func (w *SimpleWriter) writeFiles(sb *strings.Builder, run *model.RunReport) {
	if len(run.Files) == 0 {
		return
	}
	w.section(sb, "FILES")

	for _, f := range run.Files {
		icon := w.statusStyle(f.Status).Render(statusIcon(f.Status))
		fmt.Fprintf(sb, "  %s %s  %s", icon, f.Path, title(f.Status.String()))
		if n := f.Total(); n > 0 {
			fmt.Fprintf(sb, ", %d ids", n)
		}
		if f.OutputPath != "" && f.OutputPath != f.Path {
			fmt.Fprintf(sb, " -> %s", f.OutputPath)
		}
		if f.Error != "" {
			fmt.Fprintf(sb, " (%s)", w.st.err.Render(f.Error))
		}
		sb.WriteString("\n")

		if w.verbose {
			for _, a := range f.Assignments {
				fmt.Fprintf(sb, "      %4d  %-12s %s\n", a.Line, a.Tag, a.ID)
			}
			if len(f.Frameworks) > 0 {
				names := make([]string, len(f.Frameworks))
				for i, fw := range f.Frameworks {
					names[i] = title(fw)
				}
				sb.WriteString(w.st.muted.Render("      frameworks: " + strings.Join(names, ", ")))
				sb.WriteString("\n")
			}
		}
	}
	sb.WriteString("\n")
}

// writeDiagnostics writes warnings and errors, and infos in verbose mode.
func (w *SimpleWriter) writeDiagnostics(sb *strings.Builder, run *model.RunReport) {
	var lines []string
	for _, f := range run.Files {
		for _, d := range f.Diagnostics {
			if d.Severity < model.SeverityWarning && !w.verbose {
				continue
			}
			loc := f.Path
			if d.Line > 0 {
				loc = fmt.Sprintf("%s:%d", f.Path, d.Line)
			}
			sev := w.severityStyle(d.Severity).Render(fmt.Sprintf("%-7s", d.Severity.String()))
			lines = append(lines, fmt.Sprintf("  %s %s: %s", sev, loc, d.Message))
		}
	}
	if len(lines) == 0 {
		return
	}

	w.section(sb, "DIAGNOSTICS")
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeDiffs writes the unified diff of each changed file.
func (w *SimpleWriter) writeDiffs(sb *strings.Builder, run *model.RunReport) {
	for _, f := range run.Files {
		if f.Diff == "" {
			continue
		}
		for _, line := range strings.SplitAfter(f.Diff, "\n") {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				sb.WriteString(w.st.heading.Render(strings.TrimSuffix(line, "\n")))
				sb.WriteString("\n")
			case strings.HasPrefix(line, "+"):
				sb.WriteString(w.st.added.Render(strings.TrimSuffix(line, "\n")))
				sb.WriteString("\n")
			case strings.HasPrefix(line, "-"):
				sb.WriteString(w.st.removed.Render(strings.TrimSuffix(line, "\n")))
				sb.WriteString("\n")
			default:
				sb.WriteString(line)
			}
		}
		if !strings.HasSuffix(f.Diff, "\n") {
			sb.WriteString("\n")
		}
	}
}

// WriteComparison outputs the difference between two runs.
func (w *SimpleWriter) WriteComparison(c *model.Comparison) (int, error) {
	var sb strings.Builder

	w.rule(&sb, "=")
	sb.WriteString(w.st.title.Render("RUN COMPARISON"))
	sb.WriteString("\n")
	w.rule(&sb, "=")
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Base:   %s  %s  %d files, %d ids\n",
		c.Base.RunID, c.Base.StartedAt.Format("2006-01-02 15:04:05"), c.Base.Files, c.Base.IDs)
	fmt.Fprintf(&sb, "Target: %s  %s  %d files, %d ids\n\n",
		c.Target.RunID, c.Target.StartedAt.Format("2006-01-02 15:04:05"), c.Target.Files, c.Target.IDs)

	fmt.Fprintf(&sb, "IDs: %s  %s  %d unchanged\n\n",
		w.st.added.Render(fmt.Sprintf("+%d", c.Added)),
		w.st.removed.Render(fmt.Sprintf("-%d", c.Removed)),
		c.Unchanged)

	changed := c.Changed()
	if len(changed) == 0 {
		sb.WriteString(w.st.ok.Render("No differences."))
		sb.WriteString("\n")
		return io.WriteString(w.output, sb.String())
	}

	w.section(&sb, "CHANGED FILES")
	for _, d := range changed {
		fmt.Fprintf(&sb, "  %-8s %s  +%d -%d", d.Change, d.Path, len(d.Added), len(d.Removed))
		if d.SourceChanged {
			sb.WriteString(w.st.muted.Render(" (source changed)"))
		}
		sb.WriteString("\n")
		for _, id := range d.Added {
			sb.WriteString(w.st.added.Render("      + " + id))
			sb.WriteString("\n")
		}
		for _, id := range d.Removed {
			sb.WriteString(w.st.removed.Render("      - " + id))
			sb.WriteString("\n")
		}
	}

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) statusStyle(s model.FileStatus) lipgloss.Style {
	switch s {
	case model.StatusInjected, model.StatusPreview:
		return w.st.ok
	case model.StatusRejected:
		return w.st.warn
	case model.StatusFailed:
		return w.st.err
	default:
		return w.st.muted
	}
}

func (w *SimpleWriter) severityStyle(s model.Severity) lipgloss.Style {
	switch s {
	case model.SeverityError:
		return w.st.err
	case model.SeverityWarning:
		return w.st.warn
	default:
		return w.st.muted
	}
}

// statusIcon returns a single character marker for a file status.
func statusIcon(s model.FileStatus) string {
	switch s {
	case model.StatusInjected:
		return "+"
	case model.StatusPreview:
		return "~"
	case model.StatusRejected:
		return "!"
	case model.StatusFailed:
		return "x"
	default:
		return "="
	}
}
