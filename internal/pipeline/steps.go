package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/harsha7innerscore/ui-playground/internal/diffview"
	"github.com/harsha7innerscore/ui-playground/internal/digest"
	"github.com/harsha7innerscore/ui-playground/internal/imports"
	"github.com/harsha7innerscore/ui-playground/internal/model"
	"github.com/harsha7innerscore/ui-playground/internal/scanner"
	"github.com/harsha7innerscore/ui-playground/internal/testid"
	"github.com/harsha7innerscore/ui-playground/internal/verify"
)

// DefaultOutputSuffix is appended to the file stem of generated outputs.
const DefaultOutputSuffix = "_with_testids"

// ReadSourceStep loads the source text of the file.
type ReadSourceStep struct{}

// NewReadSourceStep creates a new read step.
func NewReadSourceStep() *ReadSourceStep {
	return &ReadSourceStep{}
}

// Name returns the step name.
func (s *ReadSourceStep) Name() string {
	return "read"
}

// Do reads report.Path into report.Source.
func (s *ReadSourceStep) Do(_ context.Context, report *model.FileReport) error {
	src, err := testid.ReadSource(report.Path)
	if err != nil {
		report.Fail(model.CodeReadFailed, err)
		return err
	}
	report.Source = src
	report.Output = src
	return nil
}

// ResolveTargetsStep derives the TargetTagSet from the file's imports.
type ResolveTargetsStep struct {
	resolver *imports.Resolver
}

// NewResolveTargetsStep creates a step that resolves targets with resolver.
func NewResolveTargetsStep(resolver *imports.Resolver) *ResolveTargetsStep {
	if resolver == nil {
		resolver = imports.NewResolver()
	}
	return &ResolveTargetsStep{resolver: resolver}
}

// Name returns the step name.
func (s *ResolveTargetsStep) Name() string {
	return "resolve"
}

// Do fills report.TargetSet, Targets and Frameworks.
func (s *ResolveTargetsStep) Do(_ context.Context, report *model.FileReport) error {
	if report.Status == model.StatusFailed {
		return nil
	}

	res := s.resolver.Resolve(report.Source)
	report.TargetSet = res.Targets
	report.Targets = res.Targets.Names()
	report.Frameworks = res.Frameworks
	report.UsedFallback = res.UsedFallback

	if res.UsedFallback {
		report.AddDiagnostic(model.CodeFallbackTargets, 0,
			"no component imports recognized; using the fallback component list")
	}
	if res.Targets.Len() == 0 {
		report.AddDiagnostic(model.CodeNoTargets, 0,
			fmt.Sprintf("no target tags in %s mode", s.resolver.Mode()))
	}
	return nil
}

// InjectStep rewrites the source with identifiers.
// A fresh Session is built for every Do call, so the step may be shared.
type InjectStep struct {
	opts []testid.Option
}

// NewInjectStep creates an injection step; opts configure each session.
func NewInjectStep(opts ...testid.Option) *InjectStep {
	return &InjectStep{opts: opts}
}

// Name returns the step name.
func (s *InjectStep) Name() string {
	return "inject"
}

// Do runs the rewrite over report.Source.
func (s *InjectStep) Do(_ context.Context, report *model.FileReport) error {
	if report.Status == model.StatusFailed {
		return nil
	}

	session := testid.NewSession(s.opts...)
	result := session.Rewrite(report.Source, scanner.TagSet(report.TargetSet))

	report.Output = result.Output
	report.Existing = result.Existing
	report.Skipped = len(result.Skipped)
	report.Unclosed = result.Unclosed

	report.Assignments = make([]model.Assignment, len(result.Assignments))
	for i, a := range result.Assignments {
		report.Assignments[i] = model.Assignment{Tag: a.Tag, ID: a.ID, Line: a.Line}
	}

	for _, skip := range result.Skipped {
		report.AddDiagnostic(model.CodeUnterminatedTag, skip.Line,
			fmt.Sprintf("<%s> has no closing '>'; left unchanged", skip.Tag))
	}
	if len(result.Unclosed) > 0 {
		report.AddDiagnostic(model.CodeUnclosedTag, 0,
			"no closing tag for "+strings.Join(result.Unclosed, ", "))
	}
	return nil
}

// VerifyStep parses the source and the output and rejects rewrites that
// introduce syntax errors.
type VerifyStep struct {
	verifier *verify.Verifier
	force    bool
	logger   *slog.Logger
}

// VerifyStepOption configures a VerifyStep.
type VerifyStepOption func(*VerifyStep)

// WithForce keeps the output writable even when verification fails.
func WithForce(force bool) VerifyStepOption {
	return func(s *VerifyStep) {
		s.force = force
	}
}

// WithVerifyLogger sets the logger of the verify step.
func WithVerifyLogger(logger *slog.Logger) VerifyStepOption {
	return func(s *VerifyStep) {
		s.logger = logger
	}
}

// NewVerifyStep creates a verification step.
func NewVerifyStep(opts ...VerifyStepOption) *VerifyStep {
	s := &VerifyStep{
		verifier: verify.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *VerifyStep) Name() string {
	return "verify"
}

// Do compares the syntax errors of source and output.
func (s *VerifyStep) Do(ctx context.Context, report *model.FileReport) error {
	if report.Status == model.StatusFailed || report.Output == report.Source {
		return nil
	}

	res, err := s.verifier.Check(ctx, report.Path, report.Source, report.Output)
	if errors.Is(err, verify.ErrUnsupportedLanguage) {
		s.logger.Debug("skipping verification", "path", report.Path, "reason", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to verify %s: %w", report.Path, err)
	}

	report.Verified = true
	if !res.Regressed() {
		return nil
	}

	report.AddDiagnostic(model.CodeSyntaxRegression, res.FirstErrorLine,
		fmt.Sprintf("%s parse errors went from %d to %d", res.Language, res.BeforeErrors, res.AfterErrors))
	if !s.force {
		report.SetStatus(model.StatusRejected)
	}
	return nil
}

// HashStep fingerprints the source and the output.
type HashStep struct{}

// NewHashStep creates a fingerprint step.
func NewHashStep() *HashStep {
	return &HashStep{}
}

// Name returns the step name.
func (s *HashStep) Name() string {
	return "hash"
}

// Do sets SourceHash and OutputHash.
func (s *HashStep) Do(_ context.Context, report *model.FileReport) error {
	if report.Status == model.StatusFailed {
		return nil
	}

	sum, err := digest.String(report.Source)
	if err != nil {
		return err
	}
	report.SourceHash = sum

	if report.Output == report.Source {
		report.OutputHash = sum
		return nil
	}
	sum, err = digest.String(report.Output)
	if err != nil {
		return err
	}
	report.OutputHash = sum
	return nil
}

// DiffStep renders a unified diff of the rewrite.
type DiffStep struct {
	context int
}

// NewDiffStep creates a diff step with the given number of context lines.
func NewDiffStep(context int) *DiffStep {
	if context < 0 {
		context = diffview.DefaultContext
	}
	return &DiffStep{context: context}
}

// Name returns the step name.
func (s *DiffStep) Name() string {
	return "diff"
}

// Do sets report.Diff when the output differs from the source.
func (s *DiffStep) Do(_ context.Context, report *model.FileReport) error {
	if report.Status == model.StatusFailed || report.Output == report.Source {
		return nil
	}
	text, err := diffview.Render(report.Path, report.Source, report.Output, s.context)
	if err != nil {
		return fmt.Errorf("failed to render diff for %s: %w", report.Path, err)
	}
	report.Diff = text
	return nil
}

// WriteOutputStep writes the rewritten text and settles the file status.
type WriteOutputStep struct {
	root      string
	outputDir string
	suffix    string
	inPlace   bool
	dryRun    bool
}

// WriteOption configures a WriteOutputStep.
type WriteOption func(*WriteOutputStep)

// WithOutputDir places outputs under dir, mirroring the layout below root.
func WithOutputDir(dir string) WriteOption {
	return func(s *WriteOutputStep) {
		s.outputDir = dir
	}
}

// WithSuffix sets the suffix added to output file stems.
func WithSuffix(suffix string) WriteOption {
	return func(s *WriteOutputStep) {
		s.suffix = suffix
	}
}

// WithInPlace overwrites the source file.
func WithInPlace(inPlace bool) WriteOption {
	return func(s *WriteOutputStep) {
		s.inPlace = inPlace
	}
}

// WithDryRun computes the output path but writes nothing.
func WithDryRun(dryRun bool) WriteOption {
	return func(s *WriteOutputStep) {
		s.dryRun = dryRun
	}
}

// NewWriteOutputStep creates a write step for files found under root.
func NewWriteOutputStep(root string, opts ...WriteOption) *WriteOutputStep {
	s := &WriteOutputStep{
		root:   root,
		suffix: DefaultOutputSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *WriteOutputStep) Name() string {
	return "write"
}

// Do writes report.Output. A file without new identifiers is still
// written to its output path, unchanged, unless it is rewritten in place.
// Rejected files are not written.
func (s *WriteOutputStep) Do(_ context.Context, report *model.FileReport) error {
	switch report.Status {
	case model.StatusFailed, model.StatusRejected:
		return nil
	}
	unchanged := report.Output == report.Source
	if unchanged && s.inPlace {
		report.SetStatus(model.StatusUnchanged)
		return nil
	}

	report.OutputPath = s.target(report.Path)
	if s.dryRun {
		if unchanged {
			report.SetStatus(model.StatusUnchanged)
		} else {
			report.SetStatus(model.StatusPreview)
		}
		return nil
	}

	if err := testid.WriteOutput(report.OutputPath, report.Output); err != nil {
		report.Fail(model.CodeWriteFailed, err)
		return err
	}
	if unchanged {
		report.SetStatus(model.StatusUnchanged)
	} else {
		report.SetStatus(model.StatusInjected)
	}
	return nil
}

func (s *WriteOutputStep) target(path string) string {
	if s.inPlace {
		return path
	}
	return testid.OutputPath(path, s.root, s.outputDir, s.suffix)
}
