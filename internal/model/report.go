package model

import (
	"sort"
	"time"
)

// FileStatus is the outcome of processing one file.
type FileStatus int

const (
	// StatusPending means the file has not finished processing.
	StatusPending FileStatus = iota
	// StatusUnchanged means no identifier was assigned.
	StatusUnchanged
	// StatusInjected means identifiers were assigned and the output written.
	StatusInjected
	// StatusPreview means identifiers were assigned but nothing was written
	// because the run was a dry run.
	StatusPreview
	// StatusRejected means identifiers were assigned but the output was
	// withheld because verification failed.
	StatusRejected
	// StatusFailed means the file could not be read or written.
	StatusFailed
)

// String returns the lower case status name.
func (s FileStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusUnchanged:
		return "unchanged"
	case StatusInjected:
		return "injected"
	case StatusPreview:
		return "preview"
	case StatusRejected:
		return "rejected"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseFileStatus is the inverse of FileStatus.String. Unknown names map
// to StatusPending.
func ParseFileStatus(s string) FileStatus {
	for st := StatusPending; st <= StatusFailed; st++ {
		if st.String() == s {
			return st
		}
	}
	return StatusPending
}

// Assignment is one identifier placed on one tag.
type Assignment struct {
	Tag  string `json:"tag"`
	ID   string `json:"id"`
	Line int    `json:"line"`
}

// Diagnostic is a note attached to a file report.
type Diagnostic struct {
	Code         string   `json:"code"`
	Severity     Severity `json:"-"`
	SeverityText string   `json:"severity"`
	Line         int      `json:"line,omitempty"`
	Message      string   `json:"message"`
}

// FileReport is the result of running the pipeline over one source file.
type FileReport struct {
	// === Identity ===

	// Path is the source file path.
	Path string `json:"path"`

	// OutputPath is where the rewritten file is (or would be) written.
	OutputPath string `json:"output_path,omitempty"`

	// ProcessedAt is when processing started.
	ProcessedAt time.Time `json:"processed_at"`

	// Duration is the wall time spent on the file.
	Duration time.Duration `json:"duration_ns"`

	// === Outcome ===

	// Status is the processing outcome.
	Status FileStatus `json:"-"`

	// StatusText is Status.String(), kept for serialization.
	StatusText string `json:"status"`

	// Assignments lists the identifiers assigned, in source order.
	Assignments []Assignment `json:"assignments,omitempty"`

	// Existing counts target tags that already had an identifier.
	Existing int `json:"existing"`

	// Skipped counts occurrences left untouched because they were unterminated.
	Skipped int `json:"skipped"`

	// Unclosed lists identifiers whose closing tag was not found.
	Unclosed []string `json:"unclosed,omitempty"`

	// Diagnostics holds warnings and errors for this file.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// === Targets ===

	// Targets is the sorted TargetTagSet used for this file.
	Targets []string `json:"targets,omitempty"`

	// Frameworks lists UI libraries detected in the source.
	Frameworks []string `json:"frameworks,omitempty"`

	// UsedFallback is set when the fallback component list was targeted.
	UsedFallback bool `json:"used_fallback,omitempty"`

	// === Fingerprints ===

	// SourceHash is the content fingerprint of the source text.
	SourceHash string `json:"source_hash,omitempty"`

	// OutputHash is the content fingerprint of the rewritten text.
	OutputHash string `json:"output_hash,omitempty"`

	// === Extras ===

	// Diff is a unified diff of the rewrite, filled in preview runs.
	Diff string `json:"diff,omitempty"`

	// Verified is set when the output was checked by the syntax verifier.
	Verified bool `json:"verified,omitempty"`

	// Steps lists the pipeline steps that ran.
	Steps []string `json:"steps,omitempty"`

	// Error contains the error message if processing failed.
	Error string `json:"error,omitempty"`

	// === Pipeline state (not serialized) ===

	// Source is the text read from Path.
	Source string `json:"-"`

	// Output is the rewritten text.
	Output string `json:"-"`

	// TargetSet is the TargetTagSet handed to the rewrite engine.
	TargetSet map[string]bool `json:"-"`

	// Err is the error that failed processing.
	Err error `json:"-"`
}

// NewFileReport creates a pending report for path.
func NewFileReport(path string) *FileReport {
	return &FileReport{
		Path:        path,
		ProcessedAt: time.Now(),
		Status:      StatusPending,
		StatusText:  StatusPending.String(),
	}
}

// SetStatus updates Status and StatusText together.
func (r *FileReport) SetStatus(s FileStatus) {
	r.Status = s
	r.StatusText = s.String()
}

// Fail records err and marks the file failed.
func (r *FileReport) Fail(code string, err error) {
	r.Err = err
	r.Error = err.Error()
	r.AddDiagnostic(code, 0, err.Error())
	r.SetStatus(StatusFailed)
}

// AddDiagnostic appends a diagnostic whose severity is looked up from code.
func (r *FileReport) AddDiagnostic(code string, line int, message string) {
	sev := GetSeverity(code)
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Code:         code,
		Severity:     sev,
		SeverityText: sev.String(),
		Line:         line,
		Message:      message,
	})
}

// HasErrors reports whether any diagnostic has error severity.
func (r *FileReport) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// Total returns the number of identifiers assigned.
func (r *FileReport) Total() int {
	return len(r.Assignments)
}

// IDs returns the assigned identifiers in source order.
func (r *FileReport) IDs() []string {
	ids := make([]string, len(r.Assignments))
	for i, a := range r.Assignments {
		ids[i] = a.ID
	}
	return ids
}

// ByTag groups the assigned identifiers by tag.
func (r *FileReport) ByTag() map[string][]string {
	groups := make(map[string][]string)
	for _, a := range r.Assignments {
		groups[a.Tag] = append(groups[a.Tag], a.ID)
	}
	return groups
}

// RunReport is one invocation of the tool over a set of files.
type RunReport struct {
	// RunID uniquely identifies the run in history.
	RunID string `json:"run_id"`

	// Root is the directory or file the run was started on.
	Root string `json:"root"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// CompletedAt is when the last file finished.
	CompletedAt time.Time `json:"completed_at"`

	// Mode is the targeting mode.
	Mode string `json:"mode"`

	// Prefix is the identifier prefix, if any.
	Prefix string `json:"prefix,omitempty"`

	// Attribute is the identifier attribute name.
	Attribute string `json:"attribute"`

	// DryRun is set when no files were written.
	DryRun bool `json:"dry_run,omitempty"`

	// Files holds the per-file reports in discovery order.
	Files []*FileReport `json:"files"`
}

// NewRunReport creates a run report.
func NewRunReport(runID, root string) *RunReport {
	return &RunReport{
		RunID:     runID,
		Root:      root,
		StartedAt: time.Now(),
		Files:     make([]*FileReport, 0),
	}
}

// Complete stamps the completion time.
func (r *RunReport) Complete() {
	r.CompletedAt = time.Now()
}

// Duration returns the wall time of the run.
func (r *RunReport) Duration() time.Duration {
	if r.CompletedAt.IsZero() {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// File returns the report for path, or nil.
func (r *RunReport) File(path string) *FileReport {
	for _, f := range r.Files {
		if f.Path == path {
			return f
		}
	}
	return nil
}

// SortFiles orders the file reports by path.
func (r *RunReport) SortFiles() {
	sort.SliceStable(r.Files, func(i, j int) bool {
		return r.Files[i].Path < r.Files[j].Path
	})
}
