package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/harsha7innerscore/ui-playground/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files processed at once.
const DefaultConcurrency = 10

// Factory builds the pipeline for one file. It receives the path so
// per-path configuration can be applied.
type Factory func(path string) *Pipeline

// BatchProcessor handles concurrent processing of multiple files.
// It uses errgroup to manage goroutines and respect concurrency limits.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each file.
	pipelineFactory Factory

	// concurrency is the maximum number of files in flight.
	concurrency int

	// failFast cancels the remaining files after the first failure.
	failFast bool

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed file reports.
	// Access is synchronized via mutex.
	results []*model.FileReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent files.
// Default is DefaultConcurrency if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithFailFast stops scheduling files once one has failed. Files already
// running finish; files never started get no report.
func WithFailFast(failFast bool) BatchOption {
	return func(b *BatchProcessor) {
		b.failFast = failFast
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each file to create a fresh
// pipeline instance, so no state leaks between files.
func NewBatchProcessor(pipelineFactory Factory, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
		results:         make([]*model.FileReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch runs the pipeline over paths concurrently.
//
// Reports are returned in the order of paths. A slot is nil only when
// the file was never started because the batch was cancelled. The error
// is non-nil when the context was cancelled or, in fail-fast mode, a file
// failed.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string) ([]*model.FileReport, error) {
	bp.logger.Info("starting batch processing",
		"total_files", len(paths),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.results = make([]*model.FileReport, len(paths))

	err := bp.run(ctx, paths, func(report *model.FileReport, i int) {
		bp.mu.Lock()
		bp.results[i] = report
		bp.mu.Unlock()
	})

	bp.logger.Info("batch processing complete",
		"total_files", len(paths),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// ProcessBatchWithCallback runs the pipeline over paths and calls
// callback for each completed file. The callback is called from the
// worker goroutine, so it must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	paths []string,
	callback func(report *model.FileReport, index int),
) error {
	bp.logger.Info("starting batch processing with callback",
		"total_files", len(paths),
		"concurrency", bp.concurrency,
	)
	return bp.run(ctx, paths, callback)
}

func (bp *BatchProcessor) run(
	ctx context.Context,
	paths []string,
	callback func(report *model.FileReport, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := model.NewFileReport(path)
			pipeline := bp.pipelineFactory(path)
			err := pipeline.Execute(ctx, report)

			callback(report, i)

			if err != nil {
				bp.logger.Warn("file failed",
					"path", path,
					"error", err,
				)
				if bp.failFast {
					return err
				}
				return nil
			}

			bp.logger.Debug("file processed",
				"path", path,
				"status", report.Status,
				"ids", report.Total(),
			)
			return nil
		})
	}

	return g.Wait()
}
