package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/harsha7innerscore/ui-playground/internal/config"
	"github.com/harsha7innerscore/ui-playground/internal/model"
	"github.com/harsha7innerscore/ui-playground/internal/report"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
// This command compares the identifiers assigned by two recorded runs.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [run-a run-b]",
		Short: "Compare the identifiers assigned by two runs",
		Long: `Compare shows, file by file, which identifiers were added, removed
or kept between two runs stored in the history database.

Files are matched by their path relative to each run's root. A file
whose source fingerprint changed is marked as such.

With no arguments the latest two runs are compared, older first.

Examples:
  # Compare the latest two runs
  locators compare

  # Compare two specific runs (see 'locators history')
  locators compare 1b4e28ba-2fa1-11d2-883f-0016d3cca427 6fa459ea-ee8a-3ca4-894e-db77e160355e

  # Markdown output for a pull request comment
  locators compare --format markdown`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected zero or two run ids, got %d", len(args))
			}
			return nil
		},
		RunE: runCompareCmd,
	}

	cmd.Flags().StringP("format", "F", config.DefaultFormat,
		"Output format: simple, json or markdown")
	cmd.Flags().String("db", "",
		"History database path (default: XDG data directory)")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	// Validate the format before opening the database.
	writer, err := report.New(format, cmd.OutOrStdout(), report.Options{
		Version: getVersion(),
		Color:   isTerminal(cmd.OutOrStdout()),
	})
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

	baseID, targetID, err := resolveRunIDs(ctx, db, args)
	if err != nil {
		return err
	}

	base, err := db.GetRun(ctx, baseID)
	if err != nil {
		return err
	}
	target, err := db.GetRun(ctx, targetID)
	if err != nil {
		return err
	}

	_, err = writer.WriteComparison(model.Compare(base, target))
	return err
}

// errNotEnoughRuns is returned when fewer than two runs are recorded.
var errNotEnoughRuns = errors.New("at least 2 runs are required for comparison")

// runLister is the part of the history database resolveRunIDs needs.
type runLister interface {
	LatestRuns(ctx context.Context, n int) ([]string, error)
}

// resolveRunIDs returns the base and target run ids: the two arguments,
// or the latest two runs with the older as base.
func resolveRunIDs(ctx context.Context, db runLister, args []string) (string, string, error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}

	ids, err := db.LatestRuns(ctx, 2)
	if err != nil {
		return "", "", err
	}
	if len(ids) < 2 {
		return "", "", fmt.Errorf("%w: found %d", errNotEnoughRuns, len(ids))
	}
	return ids[1], ids[0], nil
}
