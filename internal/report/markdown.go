package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/harsha7innerscore/ui-playground/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for pull request comments and sharing.
type MarkdownWriter struct {
	baseWriter

	// version is printed in the footer.
	version string
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, version string) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		version:    version,
	}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(run *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := model.NewSummary(run)

	w.writeHeader(md, run)
	w.writeSummary(md, summary)
	w.writeFiles(md, run)
	w.writeDiagnostics(md, run)
	w.writeSamples(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.RunReport) {
	md.H1("Locators Report")
	md.PlainText("")

	rows := [][]string{
		{"Run", "`" + run.RunID + "`"},
		{"Root", "`" + run.Root + "`"},
		{"Started", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Mode", run.Mode},
		{"Attribute", "`" + run.Attribute + "`"},
	}
	if run.Prefix != "" {
		rows = append(rows, []string{"Prefix", "`" + run.Prefix + "`"})
	}
	if run.DryRun {
		rows = append(rows, []string{"Dry run", "yes"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSummary writes the status table, the tag chart and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s *model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Files"},
		Rows: [][]string{
			{"Injected", strconv.Itoa(s.Injected)},
			{"Preview", strconv.Itoa(s.Preview)},
			{"Unchanged", strconv.Itoa(s.Unchanged)},
			{"Rejected", strconv.Itoa(s.Rejected)},
			{"Failed", strconv.Itoa(s.Failed)},
			{"**Total**", "**" + strconv.Itoa(s.Files) + "**"},
		},
	})
	md.PlainText("")

	md.PlainTextf("%d identifiers assigned, %d tags already had one, %d tags skipped.",
		s.IDs, s.Existing, s.Skipped)
	md.PlainText("")

	if len(s.ByTag) > 0 {
		w.writePieChart(md, s)
	}

	w.writeAlert(md, s)
}

// writePieChart writes a mermaid pie chart of identifiers per tag.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Identifiers by Tag"),
		piechart.WithShowData(true),
	)

	for _, tc := range s.ByTag {
		chart.LabelAndIntValue(tc.Tag, uint64(tc.Count))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert chosen by the worst outcome in the run.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *model.Summary) {
	switch {
	case s.Failed > 0:
		md.Cautionf("%d file(s) could not be read or written.", s.Failed)
	case s.Rejected > 0:
		md.Warningf("%d file(s) were withheld because the rewritten output no longer parses.", s.Rejected)
	case s.Skipped > 0:
		md.Importantf("%d tag(s) were left untouched because they are unterminated.", s.Skipped)
	case s.IDs == 0:
		md.Note("No identifiers were needed.")
	default:
		md.Tip(fmt.Sprintf("%d identifiers assigned across %d file(s).", s.IDs, s.Changed()))
	}
	md.PlainText("")
}

// writeFiles writes one table row per file.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, run *model.RunReport) {
	md.H2("Files")
	md.PlainText("")

	if len(run.Files) == 0 {
		md.PlainText("No files matched.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(run.Files))
	for i, f := range run.Files {
		frameworks := "-"
		if len(f.Frameworks) > 0 {
			frameworks = strings.Join(f.Frameworks, ", ")
		}
		rows[i] = []string{
			"`" + f.Path + "`",
			title(f.Status.String()),
			strconv.Itoa(f.Total()),
			strconv.Itoa(f.Existing),
			frameworks,
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"File", "Status", "IDs", "Existing", "Frameworks"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDiagnostics writes every diagnostic with its recommendation.
func (w *MarkdownWriter) writeDiagnostics(md *markdown.Markdown, run *model.RunReport) {
	var rows [][]string
	for _, f := range run.Files {
		for _, d := range f.Diagnostics {
			loc := "`" + f.Path + "`"
			if d.Line > 0 {
				loc = fmt.Sprintf("`%s:%d`", f.Path, d.Line)
			}
			rec := model.GetDiagnosticInfo(d.Code).Recommendation
			if rec == "" {
				rec = "-"
			}
			rows = append(rows, []string{
				d.Severity.String(),
				loc,
				truncateString(d.Message, 80),
				rec,
			})
		}
	}
	if len(rows) == 0 {
		return
	}

	md.H2("Diagnostics")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Location", "Message", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSamples writes the sample identifiers in a collapsible block.
func (w *MarkdownWriter) writeSamples(md *markdown.Markdown, s *model.Summary) {
	if len(s.Samples) == 0 {
		return
	}

	body := "`" + strings.Join(s.Samples, "`, `") + "`"
	if s.More > 0 {
		body += fmt.Sprintf(" ... and %d more", s.More)
	}
	md.Details("Sample identifiers", body)
	md.PlainText("")
}

// WriteComparison outputs the difference between two runs in Markdown.
func (w *MarkdownWriter) WriteComparison(c *model.Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Locators Run Comparison")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"", "Run", "Started", "Files", "IDs"},
		Rows: [][]string{
			{"Base", "`" + c.Base.RunID + "`", c.Base.StartedAt.Format("2006-01-02 15:04:05"),
				strconv.Itoa(c.Base.Files), strconv.Itoa(c.Base.IDs)},
			{"Target", "`" + c.Target.RunID + "`", c.Target.StartedAt.Format("2006-01-02 15:04:05"),
				strconv.Itoa(c.Target.Files), strconv.Itoa(c.Target.IDs)},
		},
	})
	md.PlainText("")
	md.PlainTextf("Added %d, removed %d, unchanged %d.", c.Added, c.Removed, c.Unchanged)
	md.PlainText("")

	changed := c.Changed()
	if len(changed) == 0 {
		md.Tip("No differences between the two runs.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	md.H2("Changed Files")
	md.PlainText("")
	rows := make([][]string, len(changed))
	for i, d := range changed {
		source := "no"
		if d.SourceChanged {
			source = "yes"
		}
		rows[i] = []string{
			"`" + d.Path + "`",
			d.Change,
			strconv.Itoa(len(d.Added)),
			strconv.Itoa(len(d.Removed)),
			source,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"File", "Change", "Added", "Removed", "Source changed"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, d := range changed {
		if len(d.Added) == 0 && len(d.Removed) == 0 {
			continue
		}
		var lines []string
		for _, id := range d.Added {
			lines = append(lines, "+ "+id)
		}
		for _, id := range d.Removed {
			lines = append(lines, "- "+id)
		}
		md.Details(d.Path, "\n```diff\n"+strings.Join(lines, "\n")+"\n```\n")
	}
	md.PlainText("")

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	if w.version != "" {
		md.PlainTextf("*Report generated by locators %s*", w.version)
		return
	}
	md.PlainText("*Report generated by locators*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
