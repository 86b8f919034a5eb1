package imports

import (
	"fmt"

	"github.com/harsha7innerscore/ui-playground/internal/scanner"
)

// Mode selects which kinds of tags are targeted.
type Mode string

const (
	// ModeComponents targets imported components only.
	ModeComponents Mode = "components"
	// ModeHTML targets intrinsic HTML elements only.
	ModeHTML Mode = "html"
	// ModeAll targets both.
	ModeAll Mode = "all"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeComponents, ModeHTML, ModeAll:
		return m, nil
	case "":
		return ModeComponents, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want components, html or all)", s)
	}
}

// DefaultComponents is used when a file imports no recognized components.
var DefaultComponents = []string{
	"Box", "Flex", "VStack", "HStack", "Image", "Text", "Button", "Container", "Input",
}

// HTMLElements lists the intrinsic elements targeted in html and all modes.
var HTMLElements = []string{
	// structure
	"div", "span", "section", "article", "header", "footer", "main", "aside", "nav",
	// forms
	"form", "input", "button", "select", "option", "textarea", "label",
	"fieldset", "legend", "datalist", "output", "progress", "meter",
	// tables
	"table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption", "colgroup", "col",
	// media
	"img", "video", "audio", "source", "track", "figure", "figcaption",
	"canvas", "picture", "svg", "map", "area",
	// interactive
	"a", "dialog", "details", "summary", "menu", "menuitem",
	// text
	"p", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "dl", "dt", "dd",
	"blockquote", "q", "cite", "pre", "code", "kbd", "samp", "var", "mark",
	"bdi", "bdo", "ruby", "rt", "rp", "abbr", "address",
	// semantic
	"time", "data", "slot", "template", "wbr", "embed",
	"object", "param", "iframe", "noscript", "hr",
}

// Resolution is the outcome of resolving targets for one file.
type Resolution struct {
	// Targets is the TargetTagSet handed to the rewrite engine.
	Targets scanner.TagSet
	// Matched lists the imports accepted by the classifier.
	Matched []ImportSpec
	// Frameworks lists the UI libraries detected in the file.
	Frameworks []string
	// UsedFallback is set when no component import was recognized and
	// DefaultComponents (or the configured fallback) was used.
	UsedFallback bool
}

// Resolver builds TargetTagSets from source text.
type Resolver struct {
	mode       Mode
	classifier Classifier
	fallback   []string
	extra      []string
	html       []string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMode sets the targeting mode.
func WithMode(mode Mode) ResolverOption {
	return func(r *Resolver) {
		if mode != "" {
			r.mode = mode
		}
	}
}

// WithClassifier replaces the import classifier.
func WithClassifier(c Classifier) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.classifier = c
		}
	}
}

// WithFallback sets the components used when no import is recognized.
// An empty list disables the fallback.
func WithFallback(names []string) ResolverOption {
	return func(r *Resolver) {
		r.fallback = names
	}
}

// WithExtra adds component names that are always targeted in components
// and all modes.
func WithExtra(names []string) ResolverOption {
	return func(r *Resolver) {
		r.extra = append(r.extra, names...)
	}
}

// NewResolver returns a Resolver in components mode with the default
// classifier and fallback list.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		mode:       ModeComponents,
		classifier: DefaultClassifier(),
		fallback:   DefaultComponents,
		html:       HTMLElements,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode returns the configured mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Resolve derives the targets for src.
func (r *Resolver) Resolve(src string) Resolution {
	res := Resolution{
		Targets:    scanner.NewTagSet(),
		Frameworks: DetectFrameworks(src),
	}

	if r.mode == ModeComponents || r.mode == ModeAll {
		for _, spec := range Parse(src) {
			if IsCapitalized(spec.Local) && r.classifier(spec) {
				res.Matched = append(res.Matched, spec)
				res.Targets.Add(spec.Local)
			}
		}
		if res.Targets.Len() == 0 && len(r.fallback) > 0 {
			res.Targets.Add(r.fallback...)
			res.UsedFallback = true
		}
		res.Targets.Add(r.extra...)
	}

	if r.mode == ModeHTML || r.mode == ModeAll {
		res.Targets.Add(r.html...)
	}
	return res
}
