package model

import (
	"fmt"
	"testing"
)

// TestNewSummary tests aggregation over a run.
func TestNewSummary(t *testing.T) {
	t.Parallel()

	run := NewRunReport("run-1", ".")

	injected := NewFileReport("a.jsx")
	injected.SetStatus(StatusInjected)
	for i := 1; i <= 12; i++ {
		injected.Assignments = append(injected.Assignments, Assignment{Tag: "Box", ID: fmt.Sprintf("box-%d", i)})
	}
	injected.Assignments = append(injected.Assignments, Assignment{Tag: "Flex", ID: "flex-1"})
	injected.Existing = 2
	injected.Skipped = 1
	injected.AddDiagnostic(CodeUnterminatedTag, 3, "Box")

	unchanged := NewFileReport("b.jsx")
	unchanged.SetStatus(StatusUnchanged)

	failed := NewFileReport("c.jsx")
	failed.Fail(CodeReadFailed, fmt.Errorf("missing"))

	run.Files = append(run.Files, injected, unchanged, failed)
	s := NewSummary(run)

	if s.Files != 3 || s.Injected != 1 || s.Unchanged != 1 || s.Failed != 1 {
		t.Errorf("unexpected file counts %+v", s)
	}
	if s.IDs != 13 || s.Existing != 2 || s.Skipped != 1 {
		t.Errorf("unexpected id counts %+v", s)
	}
	if s.Warnings != 2 {
		t.Errorf("got %d warnings, expected 2", s.Warnings)
	}
	if len(s.Samples) != DefaultSampleSize || s.More != 3 {
		t.Errorf("got %d samples and %d more", len(s.Samples), s.More)
	}
	if len(s.ByTag) != 2 || s.ByTag[0] != (TagCount{Tag: "Box", Count: 12}) {
		t.Errorf("unexpected tag counts %+v", s.ByTag)
	}
	if s.Changed() != 1 || !s.HasFailures() {
		t.Error("unexpected Changed/HasFailures")
	}
}

// TestNewSummaryEmpty tests an empty run.
func TestNewSummaryEmpty(t *testing.T) {
	t.Parallel()

	s := NewSummary(NewRunReport("run-1", "."))
	if s.Files != 0 || s.IDs != 0 || s.More != 0 || s.HasFailures() {
		t.Errorf("unexpected summary %+v", s)
	}
}
