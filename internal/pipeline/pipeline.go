package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/harsha7innerscore/ui-playground/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the report
// accumulated by the previous steps.
type Step interface {
	// Do executes the pipeline step.
	// Non-critical problems should be recorded in the report and nil
	// returned; an error means the file cannot be processed further.
	Do(ctx context.Context, report *model.FileReport) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, the default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to run the remaining steps
// after one fails. Steps that depend on missing state return early.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:           make([]Step, 0),
		continueOnError: false,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// Cancellation is checked before each step; steps are short and do not
// check it themselves.
//
// Returns the first error encountered if continueOnError is false,
// or nil if all steps ran (errors are recorded in the report).
// When no step decided the file's status, it is derived from the
// report: Unchanged when the output equals the source, Preview otherwise.
func (p *Pipeline) Execute(ctx context.Context, report *model.FileReport) error {
	start := time.Now()
	defer func() {
		report.Duration = time.Since(start)
		if report.Status == model.StatusPending {
			if report.Output == report.Source {
				report.SetStatus(model.StatusUnchanged)
			} else {
				report.SetStatus(model.StatusPreview)
			}
		}
	}()

	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"path", report.Path,
				"reason", ctx.Err(),
			)
			report.Err = ctx.Err()
			report.Error = ctx.Err().Error()
			report.SetStatus(model.StatusFailed)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"path", report.Path,
		)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"path", report.Path,
				"error", err,
			)

			if report.Err == nil {
				report.Err = err
				report.Error = err.Error()
			}
			if report.Status != model.StatusFailed {
				report.SetStatus(model.StatusFailed)
			}

			if !p.continueOnError {
				report.Steps = append(report.Steps, step.Name())
				return err
			}
		}

		report.Steps = append(report.Steps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
