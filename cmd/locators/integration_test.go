package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harsha7innerscore/ui-playground/internal/model"
)

// TestInjectHistoryCompare runs inject three times against one history
// database, then inspects it with history and compare.
func TestInjectHistoryCompare(t *testing.T) {
	t.Parallel()

	dir := writeProject(t)
	cfgPath := writeConfig(t, "")
	dbPath := filepath.Join(filepath.Dir(cfgPath), "history.db")

	inject := func() string {
		t.Helper()
		output, err := runCLI(t, "inject", "--config", cfgPath, "-F", "json", dir)
		if err != nil {
			t.Fatalf("inject failed: %v", err)
		}
		return decodeRun(t, output).Run.RunID
	}

	first := inject()
	second := inject()

	// Compare the two identical runs.
	output, err := runCLI(t, "compare", "--db", dbPath, "-F", "json")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	var same model.Comparison
	if err := json.Unmarshal([]byte(output), &same); err != nil {
		t.Fatalf("invalid comparison JSON: %v", err)
	}
	if same.Base.RunID != first || same.Target.RunID != second {
		t.Errorf("compared %s..%s, want %s..%s", same.Base.RunID, same.Target.RunID, first, second)
	}
	if same.Added != 0 || same.Removed != 0 || same.Unchanged != 3 {
		t.Errorf("added %d, removed %d, unchanged %d", same.Added, same.Removed, same.Unchanged)
	}

	// A new element gets a new identifier in the next run.
	edited := strings.Replace(cardSource,
		"<Button onClick={save}>Save</Button>",
		"<Button onClick={save}>Save</Button>\n      <Button onClick={cancel}>Cancel</Button>", 1)
	writeFile(t, dir, "src/Card.jsx", edited)
	third := inject()

	output, err = runCLI(t, "compare", "--db", dbPath, "-F", "json", second, third)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	var changed model.Comparison
	if err := json.Unmarshal([]byte(output), &changed); err != nil {
		t.Fatalf("invalid comparison JSON: %v", err)
	}
	if changed.Added != 1 || changed.Removed != 0 {
		t.Errorf("added %d, removed %d, want 1 and 0", changed.Added, changed.Removed)
	}
	deltas := changed.Changed()
	if len(deltas) != 1 || !deltas[0].SourceChanged {
		t.Fatalf("unexpected deltas: %+v", deltas)
	}
	if strings.Join(deltas[0].Added, ",") != "button-cancel-1" {
		t.Errorf("added ids = %v", deltas[0].Added)
	}

	// The simple comparison names the new identifier.
	output, err = runCLI(t, "compare", "--db", dbPath)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(output, "+ button-cancel-1") {
		t.Errorf("expected added id in comparison:\n%s", output)
	}

	// History lists every run, newest first.
	output, err = runCLI(t, "history", "--db", dbPath)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	for _, id := range []string{first, second, third} {
		if !strings.Contains(output, id) {
			t.Errorf("expected run %s in history:\n%s", id, output)
		}
	}
	if strings.Index(output, third) > strings.Index(output, first) {
		t.Error("expected newest run first")
	}

	// Per-file history follows the source path.
	output, err = runCLI(t, "history", "--db", dbPath, "--file", filepath.Join(dir, "src", "Card.jsx"))
	if err != nil {
		t.Fatalf("file history failed: %v", err)
	}
	if !strings.Contains(output, "(3 runs)") {
		t.Errorf("unexpected file history:\n%s", output)
	}

	// Pruning keeps the most recent run.
	output, err = runCLI(t, "history", "--db", dbPath, "--prune", "1")
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if !strings.Contains(output, "Removed 2 run(s)") {
		t.Errorf("unexpected prune output: %s", output)
	}

	_, err = runCLI(t, "compare", "--db", dbPath)
	if err == nil || !strings.Contains(err.Error(), errNotEnoughRuns.Error()) {
		t.Errorf("expected errNotEnoughRuns after prune, got %v", err)
	}
}
