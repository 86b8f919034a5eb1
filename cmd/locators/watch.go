package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/harsha7innerscore/ui-playground/internal/config"
	"github.com/harsha7innerscore/ui-playground/internal/model"
	"github.com/harsha7innerscore/ui-playground/internal/watch"
	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-inject test identifiers when source files change",
		Long: `Watch observes a directory and runs injection on every source file
that is written or created, after a short debounce.

Generated outputs (files ending in the output suffix) are ignored, so
writing next to the sources does not trigger another pass. Runs in
watch mode are not recorded in history.

Examples:
  # Watch src and write outputs next to the sources
  locators watch src

  # Watch and rewrite sources in place
  locators watch --in-place src`,
		Args: cobra.ExactArgs(1),
		RunE: runWatchCmd,
	}

	addInjectFlags(cmd)
	cmd.Flags().Duration("debounce", watch.DefaultDebounce,
		"How long to wait for more changes before processing")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}

	root := args[0]
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	logger := setupLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)...\n", root)

	w := newWatcher(cfg, root, out, logger, debounce)
	return w.Run(ctx)
}

// newWatcher creates a watcher that runs the pipeline over each batch of
// changed files and prints one line per file.
func newWatcher(cfg *config.Config, root string, out io.Writer, logger *slog.Logger, debounce time.Duration) *watch.Watcher {
	finder := newFinder(cfg)
	var mu sync.Mutex

	handler := func(ctx context.Context, paths []string) {
		files, err := processFiles(ctx, cfg, root, paths, logger)
		if err != nil {
			logger.Warn("watch batch stopped early", "error", err)
		}

		mu.Lock()
		defer mu.Unlock()
		for _, f := range files {
			if f == nil {
				continue
			}
			printWatchResult(out, root, f)
		}
	}

	return watch.New(root, handler,
		watch.WithDebounce(debounce),
		watch.WithExclude(cfg.Exclude),
		watch.WithFilter(finder.Matches),
		watch.WithLogger(logger),
	)
}

// printWatchResult prints a one-line summary of a processed file.
func printWatchResult(out io.Writer, root string, f *model.FileReport) {
	rel, err := filepath.Rel(root, f.Path)
	if err != nil {
		rel = f.Path
	}

	switch f.Status {
	case model.StatusFailed:
		fmt.Fprintf(out, "x %s: %s\n", rel, f.Error)
	case model.StatusRejected:
		fmt.Fprintf(out, "! %s: rejected, output no longer parses\n", rel)
	case model.StatusUnchanged:
		fmt.Fprintf(out, "= %s: up to date\n", rel)
	default:
		fmt.Fprintf(out, "+ %s: %d ids -> %s\n", rel, f.Total(), f.OutputPath)
	}
}
