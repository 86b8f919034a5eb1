package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() for programmatic error handling.
var (
	// ErrInvalidAttribute is returned when the identifier attribute is empty
	// or not a valid JSX attribute name.
	ErrInvalidAttribute = errors.New("invalid attribute: must be a JSX attribute name such as data-testid")

	// ErrInvalidMode is returned when the targeting mode is unknown.
	ErrInvalidMode = errors.New("invalid mode: must be one of components, html, all")

	// ErrInvalidConcurrency is returned when concurrency is outside 1..100.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be between 1 and 100")

	// ErrInvalidExtension is returned when an extension does not start with a dot.
	ErrInvalidExtension = errors.New("invalid extension: must start with '.'")

	// ErrInvalidOutputSuffix is returned when the output suffix is empty
	// while neither in-place nor an output directory is configured, which
	// would overwrite the sources.
	ErrInvalidOutputSuffix = errors.New("invalid output suffix: must not be empty unless writing in place or to an output directory")

	// ErrConflictingOutput is returned when both in-place and an output
	// directory are requested.
	ErrConflictingOutput = errors.New("conflicting output: --in-place and --output-dir cannot be used together")

	// ErrInvalidFormat is returned when the report format is unknown.
	ErrInvalidFormat = errors.New("invalid format: must be one of simple, json, markdown")

	// ErrInvalidPathPattern is returned when a per-path override key is not
	// a valid glob.
	ErrInvalidPathPattern = errors.New("invalid path pattern")

	// ErrInvalidConfig wraps struct validation failures.
	ErrInvalidConfig = errors.New("invalid configuration")
)
