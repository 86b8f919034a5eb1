package model

// Severity represents how serious a diagnostic is.
type Severity int

const (
	// SeverityInfo is informational, e.g. the fallback component list was used.
	SeverityInfo Severity = iota

	// SeverityWarning marks something that was skipped but did not stop
	// processing, e.g. an unterminated tag left untouched.
	SeverityWarning

	// SeverityError marks a failure that prevented the file from being
	// written, e.g. the rewritten output no longer parses.
	SeverityError
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic codes.
const (
	CodeUnterminatedTag  = "unterminated_tag"
	CodeUnclosedTag      = "unclosed_tag"
	CodeFallbackTargets  = "fallback_targets"
	CodeNoTargets        = "no_targets"
	CodeSyntaxRegression = "syntax_regression"
	CodeReadFailed       = "read_failed"
	CodeWriteFailed      = "write_failed"
)

// DiagnosticInfo contains metadata about a diagnostic code.
type DiagnosticInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// diagnosticInfoMapping is the single source of severity and guidance for
// every diagnostic code.
var diagnosticInfoMapping = map[string]DiagnosticInfo{
	CodeUnterminatedTag: {
		Severity:       SeverityWarning,
		Impact:         "An opening tag never reaches a closing '>' outside quotes and braces, so it was left unchanged.",
		Recommendation: "Check the tag for an unbalanced brace or quote.",
	},
	CodeUnclosedTag: {
		Severity:       SeverityInfo,
		Impact:         "An identifier-bearing tag has no matching closing tag; ancestor context after it may be off.",
		Recommendation: "Verify the element is closed in the same file.",
	},
	CodeFallbackTargets: {
		Severity:       SeverityInfo,
		Impact:         "No component imports were recognized, so the default component list was targeted.",
		Recommendation: "Add extra_components to the configuration if the file uses other components.",
	},
	CodeNoTargets: {
		Severity:       SeverityInfo,
		Impact:         "The target tag set is empty; the file was not modified.",
		Recommendation: "Enable html mode or configure components to target.",
	},
	CodeSyntaxRegression: {
		Severity:       SeverityError,
		Impact:         "The rewritten file has syntax errors that the source did not have.",
		Recommendation: "Inspect the reported line; rerun with --force to write anyway.",
	},
	CodeReadFailed: {
		Severity:       SeverityError,
		Impact:         "The source file could not be read.",
		Recommendation: "Check that the file exists and is readable.",
	},
	CodeWriteFailed: {
		Severity:       SeverityError,
		Impact:         "The output file could not be written.",
		Recommendation: "Check permissions on the output directory.",
	},
}

// GetSeverity returns the severity for a diagnostic code, or SeverityInfo
// for unknown codes.
func GetSeverity(code string) Severity {
	if info, ok := diagnosticInfoMapping[code]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetDiagnosticInfo returns the metadata for a diagnostic code.
func GetDiagnosticInfo(code string) DiagnosticInfo {
	if info, ok := diagnosticInfoMapping[code]; ok {
		return info
	}
	return DiagnosticInfo{
		Severity:       SeverityInfo,
		Impact:         "Unknown diagnostic.",
		Recommendation: "No recommendation available.",
	}
}
