package testid

import (
	"sort"
	"strings"

	"github.com/harsha7innerscore/ui-playground/internal/scanner"
)

// edit is a pending insertion into the source text.
type edit struct {
	at   int
	text string
}

// Rewrite inserts identifiers into every target tag of src that does not
// already carry one. Tags are processed in source order: opening tags are
// described, allocated and pushed onto the hierarchy, closing tags pop it.
// Tags that already carry the attribute are left unchanged and their value
// is pushed so descendants still see it as ancestor context. Existing
// values are reserved first, so no new identifier repeats one.
//
// An empty target set or a source with no matches returns src unchanged.
func (s *Session) Rewrite(src string, targets scanner.TagSet) *Result {
	res := &Result{Output: src}
	if targets.Len() == 0 {
		return res
	}

	tags := scanner.Find(src, targets)
	if len(tags) == 0 {
		return res
	}

	s.reserveExisting(src)

	lines := scanner.NewLineIndex(src)
	edits := make([]edit, 0, len(tags))

	for _, tag := range tags {
		switch tag.Kind {
		case scanner.Unterminated:
			res.Skipped = append(res.Skipped, Skip{Tag: tag.Name, Line: lines.Line(tag.Start)})

		case scanner.Closing:
			s.stack.Pop(tag.Name)

		case scanner.Opening:
			if id, ok := s.existingID(tag.Attrs); ok {
				res.Existing++
				if !tag.SelfClosing {
					s.stack.Push(tag.Name, id)
				}
				continue
			}

			in := Input{
				Tag:      tag.Name,
				Attrs:    tag.Attrs,
				Ancestor: s.stack.Top(),
			}
			if !tag.SelfClosing {
				in.Text = textAfter(src, tag.End)
			}
			id := s.alloc.Next(s.describer.Describe(in))

			edits = append(edits, s.insertion(src, tag, id))
			res.Assignments = append(res.Assignments, Assignment{
				Tag:  tag.Name,
				ID:   id,
				Line: lines.Line(tag.Start),
			})
			if !tag.SelfClosing {
				s.stack.Push(tag.Name, id)
			}
		}
	}

	res.Output = apply(src, edits)
	res.Unclosed = s.replayHierarchy(res.Output, targets)
	return res
}

// reserveExisting reserves every identifier value already present in src,
// on any tag, so allocation never repeats one.
func (s *Session) reserveExisting(src string) {
	for _, m := range s.existing.FindAllStringSubmatch(src, -1) {
		for _, v := range m[1:] {
			if v = strings.TrimSpace(v); v != "" {
				s.alloc.Reserve(v)
				break
			}
		}
	}
}

// insertion places the attribute right before the terminating '>', or
// before the '/' of a self-closing tag. When the '/' already follows
// whitespace the attribute takes that whitespace and is followed by a
// space, so "<Box />" becomes `<Box data-testid="x" />`.
func (s *Session) insertion(src string, tag scanner.Tag, id string) edit {
	attr := s.attribute + `="` + id + `"`
	if !tag.SelfClosing {
		return edit{at: tag.Close(), text: " " + attr}
	}

	slash := tag.Close() - 1
	if slash > tag.Start && isSpace(src[slash-1]) {
		return edit{at: slash, text: attr + " "}
	}
	return edit{at: slash, text: " " + attr}
}

// replayHierarchy rebuilds the hierarchy over the rewritten text and
// returns the identifiers whose closing tags were never found. It never
// mutates the text.
func (s *Session) replayHierarchy(out string, targets scanner.TagSet) []string {
	s.stack.Drain()
	for _, tag := range scanner.Find(out, targets) {
		switch tag.Kind {
		case scanner.Opening:
			if tag.SelfClosing {
				continue
			}
			if id, ok := s.existingID(tag.Attrs); ok {
				s.stack.Push(tag.Name, id)
			}
		case scanner.Closing:
			s.stack.Pop(tag.Name)
		}
	}
	return s.stack.Drain()
}

// apply copies src forward, splicing in edits in offset order.
func apply(src string, edits []edit) string {
	if len(edits) == 0 {
		return src
	}
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].at < edits[j].at
	})

	size := len(src)
	for _, e := range edits {
		size += len(e.text)
	}

	var b strings.Builder
	b.Grow(size)
	prev := 0
	for _, e := range edits {
		b.WriteString(src[prev:e.at])
		b.WriteString(e.text)
		prev = e.at
	}
	b.WriteString(src[prev:])
	return b.String()
}

// textAfter returns the text between offset and the next '<'.
func textAfter(src string, offset int) string {
	if offset >= len(src) {
		return ""
	}
	rest := src[offset:]
	if i := strings.IndexByte(rest, '<'); i >= 0 {
		return rest[:i]
	}
	return rest
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
