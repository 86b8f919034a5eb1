package model

import "sort"

// DefaultSampleSize is the number of sample identifiers kept in a Summary.
const DefaultSampleSize = 10

// TagCount is the number of identifiers assigned to one tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Summary aggregates a RunReport for display.
type Summary struct {
	Files     int `json:"files"`
	Injected  int `json:"injected"`
	Preview   int `json:"preview"`
	Unchanged int `json:"unchanged"`
	Rejected  int `json:"rejected"`
	Failed    int `json:"failed"`

	// IDs is the total number of identifiers assigned.
	IDs int `json:"ids"`

	// Existing is the number of tags that already had an identifier.
	Existing int `json:"existing"`

	// Skipped is the number of unterminated tags left untouched.
	Skipped int `json:"skipped"`

	// Warnings counts diagnostics of warning severity or above.
	Warnings int `json:"warnings"`

	// ByTag lists identifier counts per tag, sorted by tag name.
	ByTag []TagCount `json:"by_tag,omitempty"`

	// Samples holds the first identifiers assigned in the run.
	Samples []string `json:"samples,omitempty"`

	// More is how many identifiers were assigned beyond Samples.
	More int `json:"more,omitempty"`
}

// NewSummary aggregates run.
func NewSummary(run *RunReport) *Summary {
	s := &Summary{}
	counts := make(map[string]int)

	for _, f := range run.Files {
		s.Files++
		switch f.Status {
		case StatusInjected:
			s.Injected++
		case StatusPreview:
			s.Preview++
		case StatusRejected:
			s.Rejected++
		case StatusFailed:
			s.Failed++
		default:
			s.Unchanged++
		}

		s.IDs += f.Total()
		s.Existing += f.Existing
		s.Skipped += f.Skipped
		for _, d := range f.Diagnostics {
			if d.Severity >= SeverityWarning {
				s.Warnings++
			}
		}
		for _, a := range f.Assignments {
			counts[a.Tag]++
			if len(s.Samples) < DefaultSampleSize {
				s.Samples = append(s.Samples, a.ID)
			}
		}
	}

	s.More = s.IDs - len(s.Samples)
	for tag, n := range counts {
		s.ByTag = append(s.ByTag, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(s.ByTag, func(i, j int) bool {
		return s.ByTag[i].Tag < s.ByTag[j].Tag
	})
	return s
}

// Changed returns the number of files that received identifiers.
func (s *Summary) Changed() int {
	return s.Injected + s.Preview + s.Rejected
}

// HasFailures reports whether any file failed or was rejected.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0 || s.Rejected > 0
}
