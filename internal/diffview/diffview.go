// Package diffview renders a rewrite as a unified diff.
//
// Identifier insertion never adds or removes newlines, so the original and
// rewritten texts always have the same number of lines and every change is
// a one-line replacement. Hunks are built by grouping changed lines with
// surrounding context and printed with go-diff.
package diffview

import (
	"bytes"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Build returns the file diff between orig and updated. It returns nil when
// the texts are equal.
func Build(name, orig, updated string, context int) *diff.FileDiff {
	if orig == updated {
		return nil
	}
	if context < 0 {
		context = 0
	}

	a := splitLines(orig)
	b := splitLines(updated)

	fd := &diff.FileDiff{
		OrigName: "a/" + name,
		NewName:  "b/" + name,
	}
	for _, r := range changedRanges(a, b, context) {
		fd.Hunks = append(fd.Hunks, hunk(a, b, r))
	}
	return fd
}

// Render returns the unified diff text between orig and updated, or "" when
// they are equal.
func Render(name, orig, updated string, context int) (string, error) {
	fd := Build(name, orig, updated, context)
	if fd == nil {
		return "", nil
	}
	out, err := diff.PrintFileDiff(fd)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Stats returns the number of added and removed lines of a rendered diff.
func Stats(fd *diff.FileDiff) (added, removed int) {
	if fd == nil {
		return 0, 0
	}
	for _, h := range fd.Hunks {
		st := h.Stat()
		added += int(st.Added + st.Changed)
		removed += int(st.Deleted + st.Changed)
	}
	return added, removed
}

// span is a half-open range of line indexes.
type span struct {
	start, end int
}

// changedRanges groups changed lines into hunk ranges, merging changes that
// are within 2*context lines of each other.
func changedRanges(a, b []string, context int) []span {
	n := max(len(a), len(b))

	var spans []span
	for i := 0; i < n; i++ {
		if lineAt(a, i) == lineAt(b, i) {
			continue
		}
		start := max(i-context, 0)
		end := min(i+1+context, n)
		if len(spans) > 0 && start <= spans[len(spans)-1].end {
			spans[len(spans)-1].end = end
			continue
		}
		spans = append(spans, span{start: start, end: end})
	}
	return spans
}

func hunk(a, b []string, r span) *diff.Hunk {
	var body bytes.Buffer
	var origLines, newLines int32

	for i := r.start; i < r.end; i++ {
		ol, nl := lineAt(a, i), lineAt(b, i)
		if ol == nl {
			writeLine(&body, ' ', ol)
			origLines++
			newLines++
			continue
		}
		if i < len(a) && ol != "" {
			writeLine(&body, '-', ol)
			origLines++
		}
		if i < len(b) && nl != "" {
			writeLine(&body, '+', nl)
			newLines++
		}
	}

	return &diff.Hunk{
		OrigStartLine: int32(r.start) + 1,
		OrigLines:     origLines,
		NewStartLine:  int32(r.start) + 1,
		NewLines:      newLines,
		Body:          body.Bytes(),
	}
}

func writeLine(buf *bytes.Buffer, prefix byte, line string) {
	buf.WriteByte(prefix)
	buf.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		buf.WriteString("\n\\ No newline at end of file\n")
	}
}

// splitLines splits s after each newline without a trailing empty line.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
