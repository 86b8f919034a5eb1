package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harsha7innerscore/ui-playground/internal/database"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of runs listed by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded inject runs",
		Long: `History lists the inject runs stored in the history database,
newest first.

Examples:
  # List the last 20 runs
  locators history

  # Show what each run assigned to one file
  locators history --file src/Card.jsx

  # Keep only the 50 most recent runs
  locators history --prune 50`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", defaultHistoryLimit,
		"Maximum number of runs to list (0 for all)")
	cmd.Flags().String("file", "",
		"Show the stored results of one file across runs")
	cmd.Flags().Int("prune", -1,
		"Delete all but this many recent runs")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().String("db", "",
		"History database path (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	prune, err := cmd.Flags().GetInt("prune")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	switch {
	case prune >= 0:
		removed, err := db.PruneRuns(ctx, prune)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d run(s), kept the %d most recent.\n", removed, prune)
		return nil
	case file != "":
		return listFileHistory(ctx, db, file, jsonOutput, out)
	default:
		return listRuns(ctx, db, limit, jsonOutput, out)
	}
}

// openHistory opens the history database named by --db, or the one from
// the configuration. The database must already exist.
func openHistory(cmd *cobra.Command) (*database.RunDB, error) {
	dbPath, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		dbPath = cfg.HistoryPath()
	}

	db, err := database.Open(dbPath, database.Options{EnableWAL: true})
	if errors.Is(err, database.ErrDatabaseNotFound) {
		return nil, fmt.Errorf("no history yet at %s (run 'locators inject' first)", dbPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// listRuns prints the most recent runs.
func listRuns(ctx context.Context, db *database.RunDB, limit int, jsonOutput bool, out io.Writer) error {
	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		if runs == nil {
			runs = []database.RunInfo{}
		}
		return writeJSON(out, runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		fmt.Fprintln(out, "\nUse 'locators inject' to process files.")
		return nil
	}

	fmt.Fprintf(out, "Recorded runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-36s  %-19s  %-10s  %5s  %5s  %s\n", "ID", "Date", "Mode", "Files", "IDs", "Root")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 96))

	for _, r := range runs {
		root := r.Root
		if r.DryRun {
			root += " (dry run)"
		}
		fmt.Fprintf(out, "  %-36s  %-19s  %-10s  %5d  %5d  %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Mode,
			r.Files,
			r.IDs,
			root,
		)
	}

	fmt.Fprintln(out, "\nUse 'locators compare' to compare the latest two runs.")
	fmt.Fprintln(out, "Use 'locators compare <run-a> <run-b>' to compare specific runs.")
	return nil
}

// listFileHistory prints the stored results of one file.
func listFileHistory(ctx context.Context, db *database.RunDB, path string, jsonOutput bool, out io.Writer) error {
	results, err := db.FileHistory(ctx, path)
	if err != nil {
		return err
	}

	if jsonOutput {
		if results == nil {
			results = []database.FileResult{}
		}
		return writeJSON(out, results)
	}

	if len(results) == 0 {
		fmt.Fprintf(out, "No history found for %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "History of %s (%d runs):\n\n", path, len(results))
	for _, r := range results {
		fmt.Fprintf(out, "  %s  %-19s  %-9s  %d ids  source %s\n",
			r.RunID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			len(r.IDs),
			shortHash(r.SourceHash),
		)
	}
	return nil
}

// writeJSON writes v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// shortHash shortens a fingerprint for display.
func shortHash(h string) string {
	if h == "" {
		return "-"
	}
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
