package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harsha7innerscore/ui-playground/internal/model"
)

func sampleRun() *model.RunReport {
	run := model.NewRunReport("run-1", "src")

	a := model.NewFileReport("src/Task.jsx")
	a.SetStatus(model.StatusInjected)
	a.Duration = 2 * time.Millisecond
	a.Existing = 1
	a.Assignments = []model.Assignment{
		{Tag: "Box", ID: "box-1", Line: 3},
		{Tag: "Box", ID: "box-2", Line: 4},
		{Tag: "Button", ID: "button-1", Line: 5},
	}

	b := model.NewFileReport("src/Empty.jsx")
	b.SetStatus(model.StatusUnchanged)
	b.Skipped = 2

	run.Files = []*model.FileReport{a, b}
	return run
}

func TestRecorderWriteFile(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	rec.Record(sampleRun())

	path := filepath.Join(t.TempDir(), "locators.prom")
	require.NoError(t, rec.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, `locators_files_total{status="injected"} 1`)
	assert.Contains(t, text, `locators_files_total{status="unchanged"} 1`)
	assert.Contains(t, text, `locators_ids_assigned_total{tag="Box"} 2`)
	assert.Contains(t, text, `locators_ids_assigned_total{tag="Button"} 1`)
	assert.Contains(t, text, "locators_ids_existing_total 1")
	assert.Contains(t, text, "locators_tags_skipped_total 2")
	assert.Contains(t, text, "locators_runs_total 1")
	assert.Contains(t, text, "locators_file_duration_seconds_count 2")
}

func TestRecorderAccumulates(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	rec.Record(sampleRun())
	rec.Record(sampleRun())

	families, err := rec.Registry().Gather()
	require.NoError(t, err)

	var runs float64
	for _, mf := range families {
		if mf.GetName() == "locators_runs_total" {
			runs = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.InDelta(t, 2.0, runs, 0)
}

func TestRecorderWriteFileBadPath(t *testing.T) {
	t.Parallel()

	rec := NewRecorder()
	err := rec.WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "m.prom"))
	assert.Error(t, err)
}
