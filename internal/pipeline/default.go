package pipeline

import (
	"github.com/harsha7innerscore/ui-playground/internal/imports"
	"github.com/harsha7innerscore/ui-playground/internal/testid"
)

// DefaultPipelineConfig holds the settings of the standard file pipeline.
type DefaultPipelineConfig struct {
	// Root is the directory the run was started on. Output paths under
	// OutputDir mirror the layout below it.
	Root string

	// Attribute is the identifier attribute name.
	Attribute string

	// Prefix is prepended to every identifier.
	Prefix string

	// Mode selects the targeted tags.
	Mode imports.Mode

	// Fallback is targeted when no component import is recognized.
	Fallback []string

	// Extra components are always targeted in components and all modes.
	Extra []string

	// ImageTags are tags whose src attribute names the identifier.
	ImageTags []string

	// VerifySyntax adds the verify step.
	VerifySyntax bool

	// Force writes outputs that fail verification.
	Force bool

	// ShowDiff adds the diff step.
	ShowDiff bool

	// OutputDir, Suffix and InPlace choose where outputs are written.
	OutputDir string
	Suffix    string
	InPlace   bool

	// DryRun writes nothing.
	DryRun bool
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineRoot sets the run root.
func WithPipelineRoot(root string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Root = root
	}
}

// WithPipelineAttribute sets the identifier attribute.
func WithPipelineAttribute(attr string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Attribute = attr
	}
}

// WithPipelinePrefix sets the identifier prefix.
func WithPipelinePrefix(prefix string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Prefix = prefix
	}
}

// WithPipelineMode sets the targeting mode.
func WithPipelineMode(mode imports.Mode) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Mode = mode
	}
}

// WithPipelineComponents sets the fallback and extra component lists.
func WithPipelineComponents(fallback, extra []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Fallback = fallback
		c.Extra = extra
	}
}

// WithPipelineImageTags sets the image-like tags.
func WithPipelineImageTags(tags []string) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.ImageTags = tags
	}
}

// WithPipelineVerify enables syntax verification. With force, outputs
// that fail it are written anyway.
func WithPipelineVerify(verify, force bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.VerifySyntax = verify
		c.Force = force
	}
}

// WithPipelineDiff enables the diff step.
func WithPipelineDiff(show bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.ShowDiff = show
	}
}

// WithPipelineOutput sets where outputs are written.
func WithPipelineOutput(outputDir, suffix string, inPlace bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.OutputDir = outputDir
		c.Suffix = suffix
		c.InPlace = inPlace
	}
}

// WithPipelineDryRun disables writing.
func WithPipelineDryRun(dryRun bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.DryRun = dryRun
	}
}

// DefaultPipeline creates the standard file pipeline:
// read, resolve, inject, optional verify, hash, optional diff, write.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameter accepts config options (WithPipelinePrefix, etc).
func DefaultPipeline(pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := DefaultPipelineConfig{
		Attribute: testid.DefaultAttribute,
		Mode:      imports.ModeComponents,
		Fallback:  imports.DefaultComponents,
		ImageTags: testid.DefaultImageTags,
		Suffix:    DefaultOutputSuffix,
	}
	for _, opt := range configOpts {
		opt(&cfg)
	}

	resolver := imports.NewResolver(
		imports.WithMode(cfg.Mode),
		imports.WithFallback(cfg.Fallback),
		imports.WithExtra(cfg.Extra),
	)

	p.AddSteps(
		NewReadSourceStep(),
		NewResolveTargetsStep(resolver),
		NewInjectStep(
			testid.WithAttribute(cfg.Attribute),
			testid.WithPrefix(cfg.Prefix),
			testid.WithImageTags(cfg.ImageTags),
		),
	)
	if cfg.VerifySyntax {
		p.AddStep(NewVerifyStep(WithForce(cfg.Force), WithVerifyLogger(p.logger)))
	}
	p.AddStep(NewHashStep())
	if cfg.ShowDiff {
		p.AddStep(NewDiffStep(-1))
	}
	p.AddStep(NewWriteOutputStep(cfg.Root,
		WithOutputDir(cfg.OutputDir),
		WithSuffix(cfg.Suffix),
		WithInPlace(cfg.InPlace),
		WithDryRun(cfg.DryRun),
	))

	p.logger.Debug("default pipeline created", "steps", p.StepNames())
	return p
}
