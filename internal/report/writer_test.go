package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/harsha7innerscore/ui-playground/internal/model"
)

// createTestRun creates a run with one injected, one unchanged and one
// failed file.
func createTestRun() *model.RunReport {
	run := model.NewRunReport("run-123", "src")
	run.Mode = "library"
	run.Attribute = "data-testid"
	run.Prefix = "app"

	injected := model.NewFileReport("src/Card.jsx")
	injected.Assignments = []model.Assignment{
		{Tag: "Button", ID: "app-button-save-1", Line: 3},
		{Tag: "Box", ID: "app-box-card-1", Line: 2},
	}
	injected.Existing = 1
	injected.Skipped = 1
	injected.Frameworks = []string{"chakra"}
	injected.AddDiagnostic(model.CodeUnterminatedTag, 9, "unterminated <Input> tag")
	injected.Diff = "--- a/src/Card.jsx\n+++ b/src/Card.jsx\n@@ -1 +1 @@\n-<Box>\n+<Box data-testid=\"app-box-card-1\">\n"
	injected.SetStatus(model.StatusInjected)

	unchanged := model.NewFileReport("src/Empty.jsx")
	unchanged.SetStatus(model.StatusUnchanged)

	failed := model.NewFileReport("src/Broken.jsx")
	failed.Fail(model.CodeReadFailed, errors.New("permission denied"))

	run.Files = append(run.Files, injected, unchanged, failed)
	run.Complete()
	return run
}

func createTestComparison() *model.Comparison {
	base := model.NewRunReport("run-a", "src")
	f := model.NewFileReport("src/Card.jsx")
	f.Assignments = []model.Assignment{
		{Tag: "Box", ID: "box-1"},
		{Tag: "Button", ID: "button-old-1"},
	}
	base.Files = append(base.Files, f)

	target := model.NewRunReport("run-b", "src")
	g := model.NewFileReport("src/Card.jsx")
	g.Assignments = []model.Assignment{
		{Tag: "Box", ID: "box-1"},
		{Tag: "Button", ID: "button-new-1"},
	}
	target.Files = append(target.Files, g)

	return model.Compare(base, target)
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"LOCATORS REPORT", "run-123", "data-testid", "library", "app"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes status counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "SUMMARY") {
			t.Error("expected summary section")
		}
		if !strings.Contains(output, "Injected:") {
			t.Error("expected injected count")
		}
		if !strings.Contains(output, "Failed:") {
			t.Error("expected failed count")
		}
		if strings.Contains(output, "Preview:") {
			t.Error("zero counts should be omitted")
		}
		if !strings.Contains(output, "2 assigned") {
			t.Error("expected identifier total")
		}
	})

	t.Run("writes identifiers by tag", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "IDS BY TAG") {
			t.Error("expected tag section")
		}
		if !strings.Contains(output, "app-button-save-1") {
			t.Error("expected sample identifier")
		}
	})

	t.Run("writes diagnostics with location", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		if _, err := w.Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "src/Card.jsx:9") {
			t.Error("expected diagnostic location")
		}
		if !strings.Contains(output, "permission denied") {
			t.Error("expected failure message")
		}
	})

	t.Run("omits per-file identifiers unless verbose", func(t *testing.T) {
		t.Parallel()

		var quiet, verbose bytes.Buffer
		if _, err := NewSimpleWriter(&quiet).Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := NewSimpleWriter(&verbose, WithVerbose(true)).Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(quiet.String(), "frameworks:") {
			t.Error("non-verbose output should not list frameworks")
		}
		if !strings.Contains(verbose.String(), "frameworks: Chakra") {
			t.Error("verbose output should list frameworks")
		}
	})

	t.Run("writes diffs only when enabled", func(t *testing.T) {
		t.Parallel()

		var plain, withDiff bytes.Buffer
		if _, err := NewSimpleWriter(&plain).Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := NewSimpleWriter(&withDiff, WithDiff(true)).Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(plain.String(), "+++ b/src/Card.jsx") {
			t.Error("diff should be omitted by default")
		}
		if !strings.Contains(withDiff.String(), "+++ b/src/Card.jsx") {
			t.Error("expected diff header")
		}
	})

	t.Run("no color by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "\x1b[") {
			t.Error("expected no ANSI escape sequences")
		}
	})

	t.Run("returns bytes written", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewSimpleWriter(&buf).Write(createTestRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != buf.Len() {
			t.Errorf("n = %d, want %d", n, buf.Len())
		}
	})
}

func TestSimpleWriterEmptyRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	run := model.NewRunReport("empty", "src")

	if _, err := NewSimpleWriter(&buf).Write(run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "IDS BY TAG") {
		t.Error("tag section should be omitted when nothing was assigned")
	}
	if strings.Contains(output, "FILES") {
		t.Error("files section should be omitted for an empty run")
	}
}

func TestSimpleWriterSampleOverflow(t *testing.T) {
	t.Parallel()

	run := model.NewRunReport("big", "src")
	f := model.NewFileReport("src/Big.jsx")
	for i := range model.DefaultSampleSize + 3 {
		f.Assignments = append(f.Assignments, model.Assignment{Tag: "div", ID: "div-" + string(rune('a'+i))})
	}
	f.SetStatus(model.StatusInjected)
	run.Files = append(run.Files, f)

	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf).Write(run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "... and 3 more") {
		t.Errorf("expected overflow line, got:\n%s", buf.String())
	}
}

func TestSimpleWriterComparison(t *testing.T) {
	t.Parallel()

	t.Run("lists changed files", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteComparison(createTestComparison()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"RUN COMPARISON", "run-a", "run-b", "+ button-new-1", "- button-old-1", "modified"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("reports no differences", func(t *testing.T) {
		t.Parallel()

		run := createTestRun()
		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteComparison(model.Compare(run, run)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No differences.") {
			t.Error("expected no differences message")
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON with summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, "v1.2.3")

		if _, err := w.Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got struct {
			Version string         `json:"version"`
			Summary *model.Summary `json:"summary"`
			Run     struct {
				RunID string `json:"run_id"`
				Files []struct {
					Path   string `json:"path"`
					Status string `json:"status"`
				} `json:"files"`
			} `json:"run"`
		}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}

		if got.Version != "v1.2.3" {
			t.Errorf("version = %q", got.Version)
		}
		if got.Summary.IDs != 2 || got.Summary.Failed != 1 {
			t.Errorf("summary = %+v", got.Summary)
		}
		if got.Run.RunID != "run-123" {
			t.Errorf("run_id = %q", got.Run.RunID)
		}
		if len(got.Run.Files) != 3 || got.Run.Files[0].Status != "injected" {
			t.Errorf("files = %+v", got.Run.Files)
		}
	})

	t.Run("source text is not serialized", func(t *testing.T) {
		t.Parallel()

		run := createTestRun()
		run.Files[0].Source = "SECRET-SOURCE"

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, "").Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "SECRET-SOURCE") {
			t.Error("source text leaked into JSON")
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, "").Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected single line output")
		}
	})

	t.Run("writes comparison", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, "dev").WriteComparison(createTestComparison()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got JSONComparison
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Comparison.Added != 1 || got.Comparison.Removed != 1 || got.Comparison.Unchanged != 1 {
			t.Errorf("comparison = %+v", got.Comparison)
		}
	})
}

func TestWithIndent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		indent string
		want   string
	}{
		{name: "two spaces", prefix: "", indent: "  ", want: "\n  \"version\""},
		{name: "tab", prefix: "", indent: "\t", want: "\n\t\"version\""},
		{name: "prefix", prefix: ">", indent: " ", want: "\n> \"version\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w := NewJSONWriter(&buf, "v", WithIndent(tt.prefix, tt.indent))
			if _, err := w.Write(createTestRun()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %q in output", tt.want)
			}
		})
	}
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and tables", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf, "v1.0.0")

		if _, err := w.Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Locators Report",
			"## Summary",
			"## Files",
			"## Diagnostics",
			"`src/Card.jsx`",
			"`src/Card.jsx:9`",
			"locators v1.0.0",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes pie chart of tags", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf, "").Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "```mermaid") {
			t.Error("expected mermaid block")
		}
		if !strings.Contains(output, "Identifiers by Tag") {
			t.Error("expected chart title")
		}
	})

	t.Run("alert follows worst outcome", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf, "").Write(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!CAUTION]") {
			t.Error("expected caution alert for failed file")
		}
	})

	t.Run("tip for clean run", func(t *testing.T) {
		t.Parallel()

		run := model.NewRunReport("clean", "src")
		f := model.NewFileReport("src/A.jsx")
		f.Assignments = []model.Assignment{{Tag: "div", ID: "div-1"}}
		f.SetStatus(model.StatusInjected)
		run.Files = append(run.Files, f)

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf, "").Write(run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Error("expected tip alert")
		}
		if strings.Contains(buf.String(), "## Diagnostics") {
			t.Error("diagnostics section should be omitted")
		}
	})

	t.Run("writes comparison", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf, "").WriteComparison(createTestComparison()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"# Locators Run Comparison", "## Changed Files", "+ button-new-1", "- button-old-1"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b, ""))

	n, err := mw.Write(createTestRun())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
	if n != a.Len()+b.Len() {
		t.Errorf("n = %d, want %d", n, a.Len()+b.Len())
	}

	a.Reset()
	b.Reset()
	if _, err := mw.WriteComparison(createTestComparison()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("expected both writers to receive the comparison")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		want    any
		wantErr bool
	}{
		{format: "", want: &SimpleWriter{}},
		{format: FormatSimple, want: &SimpleWriter{}},
		{format: FormatJSON, want: &JSONWriter{}},
		{format: FormatMarkdown, want: &MarkdownWriter{}},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			w, err := New(tt.format, &bytes.Buffer{}, Options{})
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			switch tt.want.(type) {
			case *SimpleWriter:
				if _, ok := w.(*SimpleWriter); !ok {
					t.Errorf("got %T", w)
				}
			case *JSONWriter:
				if _, ok := w.(*JSONWriter); !ok {
					t.Errorf("got %T", w)
				}
			case *MarkdownWriter:
				if _, ok := w.(*MarkdownWriter); !ok {
					t.Errorf("got %T", w)
				}
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short", input: "abc", maxLen: 10, want: "abc"},
		{name: "exact", input: "abcde", maxLen: 5, want: "abcde"},
		{name: "long", input: "abcdefghij", maxLen: 6, want: "abc..."},
		{name: "tiny max", input: "abcdef", maxLen: 2, want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}
