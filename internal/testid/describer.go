package testid

import (
	"regexp"
	"strings"
)

// DefaultImageTags are tag names treated as image-like by the src rule.
var DefaultImageTags = []string{"Image", "img", "Avatar"}

const maxInlineTextLen = 20

var (
	styleClassRe   = regexp.MustCompile(`(?:^|\s)className\s*=\s*\{\s*(?:[\w$]+\s*\.\s*)+([\w$]+)\s*\}`)
	literalClassRe = regexp.MustCompile(`(?:^|\s)className\s*=\s*(?:"([^"]*)"|'([^']*)'|\{\s*(?:"([^"]*)"|'([^']*)'|` + "`([^`$]*)`" + `)\s*\})`)
	literalIDRe    = regexp.MustCompile(`(?:^|\s)id\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	bracedIDRe     = regexp.MustCompile(`(?:^|\s)id\s*=\s*\{\s*["'` + "`" + `]?([^}"'` + "`" + `]+)["'` + "`" + `]?\s*\}`)
	keyRe          = regexp.MustCompile(`(?:^|\s)key\s*=\s*(\{[^}]*\}|"[^"]*"|'[^']*')`)
	bareIdentRe    = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
	srcRe          = regexp.MustCompile(`(?:^|\s)src\s*=\s*\{\s*([^}]+?)\s*\}`)
	inlineTextRe   = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
	nonWordRe      = regexp.MustCompile(`\W+`)
	counterRe      = regexp.MustCompile(`-\d+$`)
)

// Input is everything the Describer may look at for one tag.
type Input struct {
	// Tag is the tag name as written, e.g. "Box".
	Tag string
	// Attrs is the raw attribute text of the opening tag.
	Attrs string
	// Text is the source text immediately after a non-self-closing opening
	// tag, up to the next '<'. Empty for self-closing tags.
	Text string
	// Ancestor is the identifier on top of the HierarchyStack, if any.
	Ancestor string
}

// Describer derives base names from tag attributes.
type Describer struct {
	imageTags map[string]bool
	prefix    string
}

// NewDescriber returns a Describer. imageTags lists the tags whose src
// attribute names them; prefix is stripped from ancestor identifiers.
func NewDescriber(imageTags []string, prefix string) *Describer {
	d := &Describer{
		imageTags: make(map[string]bool, len(imageTags)),
		prefix:    prefix,
	}
	for _, tag := range imageTags {
		d.imageTags[strings.ToLower(tag)] = true
	}
	return d
}

// Describe returns the lowercase base name for a tag. The first matching
// rule wins:
//
//  1. className={styles.x}     -> tag-x
//  2. className="a b"          -> tag-a-b
//  3. id="x" or id={x}         -> tag-x
//  4. key={x}                  -> tag-item, any other key -> tag-list-item
//  5. image-like src={a.b.c}   -> tag-c
//  6. short inline text "Hi"   -> tag-hi
//  7. ancestor "box-card-1"    -> box-card-tag
//  8. tag
//
// Describe never fails and never returns an empty string.
func (d *Describer) Describe(in Input) string {
	tag := Sanitize(in.Tag)
	if tag == "" {
		tag = "element"
	}

	if part := d.fromAttrs(in); part != "" {
		return tag + "-" + part
	}
	if part := inlineText(in.Text); part != "" {
		return tag + "-" + part
	}
	if base := d.ancestorBase(in.Ancestor); base != "" {
		return base + "-" + tag
	}
	return tag
}

func (d *Describer) fromAttrs(in Input) string {
	attrs := in.Attrs

	if m := styleClassRe.FindStringSubmatch(attrs); m != nil {
		if part := Sanitize(m[1]); part != "" {
			return part
		}
	}
	if m := literalClassRe.FindStringSubmatch(attrs); m != nil {
		if part := Sanitize(firstGroup(m)); part != "" {
			return part
		}
	}
	if m := literalIDRe.FindStringSubmatch(attrs); m != nil {
		if part := Sanitize(firstGroup(m)); part != "" {
			return part
		}
	}
	if m := bracedIDRe.FindStringSubmatch(attrs); m != nil {
		if part := Sanitize(m[1]); part != "" {
			return part
		}
	}
	if m := keyRe.FindStringSubmatch(attrs); m != nil {
		expr := strings.TrimSpace(m[1])
		if strings.HasPrefix(expr, "{") {
			expr = strings.TrimSpace(expr[1 : len(expr)-1])
			if bareIdentRe.MatchString(expr) {
				return "item"
			}
		}
		return "list-item"
	}
	if d.imageTags[strings.ToLower(in.Tag)] {
		if m := srcRe.FindStringSubmatch(attrs); m != nil && strings.Contains(m[1], ".") {
			segments := strings.Split(m[1], ".")
			if part := Sanitize(segments[len(segments)-1]); part != "" {
				return part
			}
		}
	}
	return ""
}

func inlineText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || len(text) >= maxInlineTextLen || !inlineTextRe.MatchString(text) {
		return ""
	}
	return Sanitize(text)
}

// ancestorBase strips the configured prefix and the trailing counter from
// an ancestor identifier: "page-box-card-2" becomes "box-card".
func (d *Describer) ancestorBase(ancestor string) string {
	if ancestor == "" {
		return ""
	}
	base := strings.TrimPrefix(ancestor, d.prefix)
	base = counterRe.ReplaceAllString(base, "")
	return Sanitize(base)
}

// Sanitize lowercases s and replaces every run of non-word characters with
// a single dash. Leading and trailing dashes are removed.
func Sanitize(s string) string {
	s = nonWordRe.ReplaceAllString(s, "-")
	return strings.ToLower(strings.Trim(s, "-_"))
}

func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
