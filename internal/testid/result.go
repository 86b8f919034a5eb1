package testid

import "sort"

// Assignment is one identifier placed on one tag.
type Assignment struct {
	Tag  string `json:"tag"`
	ID   string `json:"id"`
	Line int    `json:"line"`
}

// Skip is an occurrence left untouched because its boundary was not found.
type Skip struct {
	Tag  string `json:"tag"`
	Line int    `json:"line"`
}

// Result is the outcome of rewriting one source text.
type Result struct {
	// Output is the rewritten text. It equals the input when nothing was assigned.
	Output string
	// Assignments lists new identifiers in source order.
	Assignments []Assignment
	// Existing counts target tags that already carried the attribute.
	Existing int
	// Skipped lists occurrences that could not be scanned.
	Skipped []Skip
	// Unclosed lists identifiers whose closing tag was never seen.
	Unclosed []string
}

// Total returns the number of identifiers assigned.
func (r *Result) Total() int {
	return len(r.Assignments)
}

// Changed reports whether Output differs from the input.
func (r *Result) Changed() bool {
	return len(r.Assignments) > 0
}

// IDs returns the assigned identifiers in source order.
func (r *Result) IDs() []string {
	ids := make([]string, len(r.Assignments))
	for i, a := range r.Assignments {
		ids[i] = a.ID
	}
	return ids
}

// ByTag groups the assigned identifiers by tag name, preserving source
// order within each group.
func (r *Result) ByTag() map[string][]string {
	groups := make(map[string][]string)
	for _, a := range r.Assignments {
		groups[a.Tag] = append(groups[a.Tag], a.ID)
	}
	return groups
}

// Tags returns the distinct tag names that received identifiers, sorted.
func (r *Result) Tags() []string {
	groups := r.ByTag()
	tags := make([]string, 0, len(groups))
	for tag := range groups {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
