package testid

import (
	"regexp"
	"strings"
)

// DefaultAttribute is the identifier attribute inserted into tags.
const DefaultAttribute = "data-testid"

// Session holds the state for rewriting one file.
type Session struct {
	attribute string
	prefix    string
	imageTags []string

	alloc     *AllocationTable
	stack     *HierarchyStack
	describer *Describer
	existing  *regexp.Regexp
}

// Option configures a Session.
type Option func(*Session)

// WithAttribute sets the identifier attribute name.
func WithAttribute(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.attribute = name
		}
	}
}

// WithPrefix sets a prefix for every identifier. It is normalized with
// FormatPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Session) {
		s.prefix = FormatPrefix(prefix)
	}
}

// WithImageTags sets the tags treated as image-like by the Describer.
func WithImageTags(tags []string) Option {
	return func(s *Session) {
		s.imageTags = tags
	}
}

// NewSession creates a Session with fresh allocation and hierarchy state.
func NewSession(opts ...Option) *Session {
	s := &Session{
		attribute: DefaultAttribute,
		imageTags: DefaultImageTags,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.alloc = NewAllocationTable(s.prefix)
	s.stack = &HierarchyStack{}
	s.describer = NewDescriber(s.imageTags, s.prefix)
	s.existing = regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(s.attribute) +
		`\s*=\s*(?:"([^"]*)"|'([^']*)'|\{\s*(?:"([^"]*)"|'([^']*)'|` + "`([^`]*)`" + `|([^}]*?))\s*\})`)
	return s
}

// Attribute returns the identifier attribute name.
func (s *Session) Attribute() string {
	return s.attribute
}

// Prefix returns the normalized identifier prefix.
func (s *Session) Prefix() string {
	return s.prefix
}

// existingID reports whether attrs already carries the identifier
// attribute and returns its value. A value given as a non-literal
// expression is returned as written. Matches nested inside expression
// attributes, such as an icon element passed as a prop, belong to other
// tags and are ignored.
func (s *Session) existingID(attrs string) (string, bool) {
	top := topLevel(attrs)
	for _, loc := range s.existing.FindAllStringSubmatchIndex(attrs, -1) {
		if !top[loc[0]] {
			continue
		}
		for g := 2; g < len(loc); g += 2 {
			if loc[g] >= 0 && loc[g+1] > loc[g] {
				return strings.TrimSpace(attrs[loc[g]:loc[g+1]]), true
			}
		}
		return "", true
	}
	return "", false
}

// topLevel marks the offsets of attrs that sit outside any brace
// expression and outside any quoted string.
func topLevel(attrs string) []bool {
	top := make([]bool, len(attrs)+1)
	depth := 0
	var quote byte
	for i := 0; i < len(attrs); i++ {
		c := attrs[i]
		top[i] = depth == 0 && quote == 0
		switch {
		case quote != 0:
			if c == '\\' && depth > 0 {
				i++
				if i < len(attrs) {
					top[i] = false
				}
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || (c == '`' && depth > 0):
			quote = c
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		}
	}
	top[len(attrs)] = depth == 0 && quote == 0
	return top
}

var prefixJunkRe = regexp.MustCompile(`[^a-z0-9-]+`)
var dashRunRe = regexp.MustCompile(`-+`)

// FormatPrefix kebab-cases prefix and gives it a single trailing dash.
// An empty or all-punctuation prefix yields "".
func FormatPrefix(prefix string) string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	p = prefixJunkRe.ReplaceAllString(p, "-")
	p = dashRunRe.ReplaceAllString(p, "-")
	p = strings.Trim(p, "-")
	if p == "" {
		return ""
	}
	return p + "-"
}
