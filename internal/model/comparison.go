package model

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Change kinds for a file between two runs.
const (
	ChangeSame     = "same"
	ChangeModified = "modified"
	ChangeNew      = "new"
	ChangeMissing  = "missing"
)

// RunRef summarizes one side of a comparison.
type RunRef struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Files     int       `json:"files"`
	IDs       int       `json:"ids"`
}

// FileDelta is the difference in assigned identifiers for one file.
type FileDelta struct {
	// Path is the file path relative to the run root.
	Path string `json:"path"`

	// Change is one of ChangeSame, ChangeModified, ChangeNew, ChangeMissing.
	Change string `json:"change"`

	// Added lists identifiers assigned in the target run only.
	Added []string `json:"added,omitempty"`

	// Removed lists identifiers assigned in the base run only.
	Removed []string `json:"removed,omitempty"`

	// Unchanged counts identifiers assigned in both runs.
	Unchanged int `json:"unchanged"`

	// SourceChanged is set when the source fingerprints differ.
	SourceChanged bool `json:"source_changed,omitempty"`
}

// Comparison is the difference between two runs, file by file.
type Comparison struct {
	Base   RunRef      `json:"base"`
	Target RunRef      `json:"target"`
	Files  []FileDelta `json:"files"`

	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// Compare reports how the identifiers assigned in target differ from base.
// Files are matched by their path relative to each run's root, and the
// result is sorted by path.
func Compare(base, target *RunReport) *Comparison {
	c := &Comparison{
		Base:   refOf(base),
		Target: refOf(target),
	}

	baseFiles := indexFiles(base)
	targetFiles := indexFiles(target)

	paths := make([]string, 0, len(baseFiles)+len(targetFiles))
	for p := range baseFiles {
		paths = append(paths, p)
	}
	for p := range targetFiles {
		if _, ok := baseFiles[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	for _, p := range paths {
		d := diffFile(p, baseFiles[p], targetFiles[p])
		c.Added += len(d.Added)
		c.Removed += len(d.Removed)
		c.Unchanged += d.Unchanged
		c.Files = append(c.Files, d)
	}
	return c
}

// Changed returns the deltas whose change is not ChangeSame.
func (c *Comparison) Changed() []FileDelta {
	var out []FileDelta
	for _, d := range c.Files {
		if d.Change != ChangeSame {
			out = append(out, d)
		}
	}
	return out
}

func refOf(r *RunReport) RunRef {
	ref := RunRef{RunID: r.RunID, StartedAt: r.StartedAt, Files: len(r.Files)}
	for _, f := range r.Files {
		ref.IDs += f.Total()
	}
	return ref
}

func indexFiles(r *RunReport) map[string]*FileReport {
	m := make(map[string]*FileReport, len(r.Files))
	for _, f := range r.Files {
		m[relativePath(r.Root, f.Path)] = f
	}
	return m
}

func relativePath(root, path string) string {
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
			if rel == "." {
				return filepath.ToSlash(filepath.Base(path))
			}
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

func diffFile(path string, base, target *FileReport) FileDelta {
	d := FileDelta{Path: path}

	switch {
	case base == nil:
		d.Change = ChangeNew
		d.Added = target.IDs()
		return d
	case target == nil:
		d.Change = ChangeMissing
		d.Removed = base.IDs()
		return d
	}

	before := make(map[string]bool, len(base.Assignments))
	for _, id := range base.IDs() {
		before[id] = true
	}
	after := make(map[string]bool, len(target.Assignments))
	for _, id := range target.IDs() {
		after[id] = true
		if before[id] {
			d.Unchanged++
		} else {
			d.Added = append(d.Added, id)
		}
	}
	for _, id := range base.IDs() {
		if !after[id] {
			d.Removed = append(d.Removed, id)
		}
	}

	d.SourceChanged = base.SourceHash != "" && target.SourceHash != "" && base.SourceHash != target.SourceHash
	if len(d.Added) > 0 || len(d.Removed) > 0 || d.SourceChanged {
		d.Change = ChangeModified
	} else {
		d.Change = ChangeSame
	}
	return d
}
