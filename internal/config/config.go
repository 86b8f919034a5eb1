package config

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "locators"

	// DefaultAttribute is the attribute that carries the identifier.
	DefaultAttribute = "data-testid"

	// DefaultMode targets imported UI components.
	DefaultMode = "components"

	// DefaultOutputSuffix is appended to the stem of generated files.
	DefaultOutputSuffix = "_with_testids"

	// DefaultConcurrency is the number of files processed at once.
	DefaultConcurrency = 10

	// MaxConcurrency caps the number of files processed at once.
	MaxConcurrency = 100

	// DefaultFormat is the report format written to stdout.
	DefaultFormat = "simple"

	// DefaultDBFile is the history database file name in the data directory.
	DefaultDBFile = "history.db"
)

var (
	// DefaultExtensions are the source file extensions processed.
	DefaultExtensions = []string{".jsx", ".tsx", ".js"}

	// DefaultExclude are directory names never descended into.
	DefaultExclude = []string{"node_modules", ".git", "dist", "build"}

	// DefaultFallbackComponents are targeted when a file imports no
	// recognizable component.
	DefaultFallbackComponents = []string{"Box", "Flex", "VStack", "HStack", "Image", "Text", "Button", "Container", "Input"}

	// DefaultImageTags are the tags whose src attribute names the identifier.
	DefaultImageTags = []string{"Image", "img", "Avatar"}

	// Formats are the accepted report formats.
	Formats = []string{"simple", "json", "markdown"}

	attributeRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_:.-]*$`)
)

// Config holds all configuration options for locators.
// It is populated from defaults, then locators.yaml, then CLI flags, and
// passed through the application rather than kept in global state.
type Config struct {
	// Attribute is the JSX attribute that carries the identifier.
	Attribute string `yaml:"attribute" validate:"required"`

	// Prefix is prepended to every identifier after kebab-casing.
	Prefix string `yaml:"prefix,omitempty"`

	// Mode selects the targeted tags: components, html or all.
	Mode string `yaml:"mode" validate:"required"`

	// Extensions are the file extensions processed in directories.
	Extensions []string `yaml:"extensions" validate:"min=1,dive,required"`

	// Exclude are directory names skipped during discovery.
	Exclude []string `yaml:"exclude,omitempty"`

	// OutputSuffix is added to the stem of generated files.
	OutputSuffix string `yaml:"output_suffix"`

	// InPlace overwrites the source files.
	InPlace bool `yaml:"in_place"`

	// OutputDir places generated files under a separate directory,
	// mirroring the source layout.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Concurrency is the number of files processed at once.
	Concurrency int `yaml:"concurrency"`

	// ContinueOnError keeps processing other files after one fails.
	ContinueOnError bool `yaml:"continue_on_error"`

	// VerifySyntax parses source and output and refuses to write outputs
	// that introduce syntax errors.
	VerifySyntax bool `yaml:"verify_syntax"`

	// History records each run in the SQLite database.
	History bool `yaml:"history"`

	// DBPath is the history database path.
	// Defaults to the XDG data directory.
	DBPath string `yaml:"db_path,omitempty"`

	// MetricsFile receives Prometheus text metrics after each run.
	MetricsFile string `yaml:"metrics_file,omitempty"`

	// FallbackComponents are targeted when no component import is found.
	FallbackComponents []string `yaml:"fallback_components"`

	// ExtraComponents are always targeted in components and all modes.
	ExtraComponents []string `yaml:"extra_components,omitempty"`

	// ImageTags are tags whose src attribute names the identifier.
	ImageTags []string `yaml:"image_tags"`

	// Paths maps glob patterns, relative to the run root, to overrides.
	Paths map[string]PathConfig `yaml:"paths,omitempty" validate:"dive"`

	// === CLI-only settings ===

	// Verbose enables debug logging.
	Verbose bool `yaml:"-"`

	// ConfigFilePath is the configuration file that was loaded, if any.
	ConfigFilePath string `yaml:"-"`

	// DryRun computes everything but writes no source files.
	DryRun bool `yaml:"-"`

	// ShowDiff prints a unified diff per changed file.
	ShowDiff bool `yaml:"-"`

	// Force writes outputs even when verification fails.
	Force bool `yaml:"-"`

	// Format is the report format: simple, json or markdown.
	Format string `yaml:"-"`

	// ReportFile is where the report is written instead of stdout.
	ReportFile string `yaml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Attribute:          DefaultAttribute,
		Mode:               DefaultMode,
		Extensions:         append([]string(nil), DefaultExtensions...),
		Exclude:            append([]string(nil), DefaultExclude...),
		OutputSuffix:       DefaultOutputSuffix,
		Concurrency:        DefaultConcurrency,
		ContinueOnError:    true,
		History:            true,
		FallbackComponents: append([]string(nil), DefaultFallbackComponents...),
		ImageTags:          append([]string(nil), DefaultImageTags...),
		Format:             DefaultFormat,
	}
}

// XDGDataDir returns the XDG data directory for locators.
// On Linux: ~/.local/share/locators
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for locators.
// On Linux: ~/.config/locators
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// HistoryPath returns DBPath, or the default database in the XDG data
// directory when DBPath is empty.
func (c *Config) HistoryPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(XDGDataDir(), DefaultDBFile)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if !attributeRe.MatchString(c.Attribute) {
		return ErrInvalidAttribute
	}

	if !validMode(c.Mode) {
		return ErrInvalidMode
	}

	if c.Concurrency < 1 || c.Concurrency > MaxConcurrency {
		return ErrInvalidConcurrency
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}

	if c.InPlace && c.OutputDir != "" {
		return ErrConflictingOutput
	}

	if c.OutputSuffix == "" && !c.InPlace && c.OutputDir == "" {
		return ErrInvalidOutputSuffix
	}

	if c.Format != "" && !slices.Contains(Formats, c.Format) {
		return ErrInvalidFormat
	}

	for pattern, pc := range c.Paths {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidPathPattern, pattern, err)
		}
		if pc.Mode != "" && !validMode(pc.Mode) {
			return fmt.Errorf("%w: paths[%q]", ErrInvalidMode, pattern)
		}
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func validMode(mode string) bool {
	switch mode {
	case "components", "html", "all":
		return true
	default:
		return false
	}
}
