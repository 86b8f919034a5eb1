package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/harsha7innerscore/ui-playground/internal/config"
	"github.com/harsha7innerscore/ui-playground/internal/database"
	"github.com/harsha7innerscore/ui-playground/internal/discovery"
	"github.com/harsha7innerscore/ui-playground/internal/imports"
	"github.com/harsha7innerscore/ui-playground/internal/metrics"
	"github.com/harsha7innerscore/ui-playground/internal/model"
	"github.com/harsha7innerscore/ui-playground/internal/pipeline"
	"github.com/harsha7innerscore/ui-playground/internal/report"
	"github.com/harsha7innerscore/ui-playground/internal/testid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// errFilesFailed is returned when at least one file failed or was
// rejected, so the process exits non-zero.
var errFilesFailed = errors.New("not all files were processed")

// NewInjectCmd creates the inject command.
func NewInjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inject [dir-or-file]",
		Short: "Add test identifiers to component tags",
		Long: `Inject scans JSX/TSX source files and adds a test identifier attribute
to every targeted tag that does not already have one.

Targeted tags depend on --mode:
- components: components imported from known UI libraries, plus
  extra_components; the fallback list when none are recognized
- html: intrinsic HTML elements
- all: both

By default the result is written next to each source as
<name>_with_testids<ext>. Use --in-place to overwrite sources, or
--output-dir to mirror the tree elsewhere.

Examples:
  # Process every .jsx/.tsx/.js file under src
  locators inject src

  # Preview without writing, with a unified diff per file
  locators inject --dry-run --diff src

  # Overwrite sources, prefix ids, and fail on syntax regressions
  locators inject --in-place --prefix checkout --verify src

  # Markdown report for a pull request comment
  locators inject --format markdown -o report.md src`,
		Args: cobra.ExactArgs(1),
		RunE: runInjectCmd,
	}

	addInjectFlags(cmd)

	// Run flags
	cmd.Flags().BoolP("dry-run", "n", false,
		"Compute identifiers but write no files")
	cmd.Flags().BoolP("diff", "d", false,
		"Print a unified diff for every changed file")

	// Report flags
	cmd.Flags().StringP("format", "F", config.DefaultFormat,
		"Report format: simple, json or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("metrics-file", "",
		"Write Prometheus text metrics to this file after the run")
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// addInjectFlags registers the flags shared by inject and watch.
func addInjectFlags(cmd *cobra.Command) {
	// Identifier flags
	cmd.Flags().StringP("attribute", "a", config.DefaultAttribute,
		"Attribute that carries the identifier")
	cmd.Flags().StringP("prefix", "p", "",
		"Prefix for every identifier")
	cmd.Flags().StringP("mode", "m", config.DefaultMode,
		"Targeted tags: components, html or all")
	cmd.Flags().StringSlice("extra-components", nil,
		"Component names that are always targeted")

	// Discovery flags
	cmd.Flags().StringSlice("ext", config.DefaultExtensions,
		"File extensions to process")
	cmd.Flags().StringSlice("exclude", config.DefaultExclude,
		"Directory names to skip")

	// Output flags
	cmd.Flags().StringP("output-dir", "O", "",
		"Write outputs under this directory, mirroring the source tree")
	cmd.Flags().String("suffix", config.DefaultOutputSuffix,
		"Suffix added to output file names")
	cmd.Flags().BoolP("in-place", "i", false,
		"Overwrite the source files")

	// Processing flags
	cmd.Flags().IntP("concurrency", "j", config.DefaultConcurrency,
		"Number of files processed concurrently")
	cmd.Flags().Bool("continue-on-error", true,
		"Keep processing other files after one fails")
	cmd.Flags().Bool("verify", false,
		"Parse outputs and refuse to write those that introduce syntax errors")
	cmd.Flags().BoolP("force", "f", false,
		"Write outputs even when verification fails")
}

// runInjectCmd executes the inject command.
func runInjectCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := setupLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	run, err := runInject(ctx, cfg, args[0], logger)
	if err != nil {
		return err
	}

	if err := outputReport(cfg, run, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.MetricsFile != "" {
		rec := metrics.NewRecorder()
		rec.Record(run)
		if err := rec.WriteFile(cfg.MetricsFile); err != nil {
			logger.Error("failed to write metrics", "path", cfg.MetricsFile, "error", err)
		}
	}

	if cfg.History {
		if err := saveRun(ctx, cfg, run, logger); err != nil {
			logger.Error("failed to save run history", "error", err)
		}
	}

	summary := model.NewSummary(run)
	if summary.HasFailures() {
		return fmt.Errorf("%w: %d failed, %d rejected", errFilesFailed, summary.Failed, summary.Rejected)
	}
	return nil
}

// buildConfig creates a Config from defaults, the configuration file and
// the command flags. Flags override the file only when set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	stringFlags := map[string]*string{
		"attribute":  &cfg.Attribute,
		"prefix":     &cfg.Prefix,
		"mode":       &cfg.Mode,
		"output-dir": &cfg.OutputDir,
		"suffix":     &cfg.OutputSuffix,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, err
		}
	}

	sliceFlags := map[string]*[]string{
		"ext":              &cfg.Extensions,
		"exclude":          &cfg.Exclude,
		"extra-components": &cfg.ExtraComponents,
	}
	for name, dst := range sliceFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetStringSlice(name); err != nil {
			return nil, err
		}
	}

	boolFlags := map[string]*bool{
		"in-place":          &cfg.InPlace,
		"continue-on-error": &cfg.ContinueOnError,
		"verify":            &cfg.VerifySyntax,
	}
	for name, dst := range boolFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return nil, err
		}
	}

	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}

	// CLI-only settings. Flags missing from a command keep their defaults.
	if f := flags.Lookup("force"); f != nil {
		cfg.Force, _ = flags.GetBool("force")
	}
	if f := flags.Lookup("dry-run"); f != nil {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}
	if f := flags.Lookup("diff"); f != nil {
		cfg.ShowDiff, _ = flags.GetBool("diff")
	}
	if f := flags.Lookup("format"); f != nil {
		cfg.Format, _ = flags.GetString("format")
	}
	if f := flags.Lookup("output"); f != nil {
		cfg.ReportFile, _ = flags.GetString("output")
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}
	if noHistory, _ := flags.GetBool("no-history"); noHistory {
		cfg.History = false
	}

	return cfg, nil
}

// runInject discovers the files under target and runs the pipeline over
// them. A failed file does not make runInject fail; it is recorded in the
// returned run.
func runInject(ctx context.Context, cfg *config.Config, target string, logger *slog.Logger) (*model.RunReport, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", testid.ErrInputNotReadable, target)
	}

	root := target
	var paths []string
	if info.IsDir() {
		paths, err = newFinder(cfg).Find(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("failed to discover files: %w", err)
		}
	} else {
		root = filepath.Dir(target)
		paths = []string{target}
	}

	run := model.NewRunReport(uuid.NewString(), target)
	run.Mode = cfg.Mode
	run.Attribute = cfg.Attribute
	run.Prefix = testid.FormatPrefix(cfg.Prefix)
	run.DryRun = cfg.DryRun

	logger.Info("starting run",
		"run", run.RunID,
		"root", target,
		"files", len(paths),
		"mode", cfg.Mode,
		"concurrency", cfg.Concurrency,
		"dryRun", cfg.DryRun,
	)

	startTime := time.Now()
	files, err := processFiles(ctx, cfg, root, paths, logger)
	for _, f := range files {
		if f != nil {
			run.Files = append(run.Files, f)
		}
	}
	run.Complete()

	logger.Info("run complete",
		"run", run.RunID,
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	// Fail-fast errors are already recorded on the file that failed.
	if err != nil && ctx.Err() != nil {
		return run, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return run, nil
}

// processFiles runs one pipeline per file through a BatchProcessor.
func processFiles(ctx context.Context, cfg *config.Config, root string, paths []string, logger *slog.Logger) ([]*model.FileReport, error) {
	bp := pipeline.NewBatchProcessor(
		func(path string) *pipeline.Pipeline {
			return createPipelineForFile(cfg, root, path, logger)
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithFailFast(!cfg.ContinueOnError),
		pipeline.WithBatchLogger(logger),
	)
	return bp.ProcessBatch(ctx, paths)
}

// newFinder creates the file finder for cfg. Generated outputs are never
// picked up as inputs.
func newFinder(cfg *config.Config) *discovery.Finder {
	return discovery.NewFinder(
		discovery.WithExtensions(cfg.Extensions),
		discovery.WithExclude(cfg.Exclude),
		discovery.WithSkip(func(path string) bool {
			return !cfg.InPlace && testid.IsGenerated(path, cfg.OutputSuffix)
		}),
	)
}

// createPipelineForFile creates a pipeline with the settings that apply
// to path, including any per-path override.
func createPipelineForFile(cfg *config.Config, root, path string, logger *slog.Logger) *pipeline.Pipeline {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	pathConfig := cfg.ForPath(rel)

	// Validate has already checked every mode.
	mode, err := imports.ParseMode(pathConfig.Mode)
	if err != nil {
		mode = imports.ModeComponents
	}

	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(logger),
	}

	configOpts := []pipeline.DefaultPipelineOption{
		pipeline.WithPipelineRoot(root),
		pipeline.WithPipelineAttribute(cfg.Attribute),
		pipeline.WithPipelinePrefix(pathConfig.Prefix),
		pipeline.WithPipelineMode(mode),
		pipeline.WithPipelineComponents(cfg.FallbackComponents, pathConfig.ExtraComponents),
		pipeline.WithPipelineImageTags(cfg.ImageTags),
		pipeline.WithPipelineVerify(cfg.VerifySyntax, cfg.Force),
		pipeline.WithPipelineDiff(cfg.ShowDiff),
		pipeline.WithPipelineOutput(cfg.OutputDir, cfg.OutputSuffix, cfg.InPlace),
		pipeline.WithPipelineDryRun(cfg.DryRun),
	}

	return pipeline.DefaultPipeline(pipelineOpts, configOpts...)
}

// outputReport writes the run report in the configured format to
// ReportFile, or to stdout when no file is set.
func outputReport(cfg *config.Config, run *model.RunReport, stdout io.Writer) error {
	output, closeFn, err := openReportOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeFn()

	writer, err := report.New(cfg.Format, output, report.Options{
		Version:  getVersion(),
		Color:    cfg.ReportFile == "" && isTerminal(stdout),
		Verbose:  cfg.Verbose,
		ShowDiff: cfg.ShowDiff,
	})
	if err != nil {
		return err
	}

	_, err = writer.Write(run)
	return err
}

// openReportOutput returns path opened for writing, or stdout when path
// is empty. The returned func closes the file.
func openReportOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// saveRun records run in the history database.
func saveRun(ctx context.Context, cfg *config.Config, run *model.RunReport, logger *slog.Logger) error {
	db, err := database.Open(cfg.HistoryPath(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Save even when the run was cancelled.
	if err := db.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		return err
	}

	logger.Info("run saved to history", "run", run.RunID, "db", db.Path())
	return nil
}
