package imports

import (
	"regexp"
	"sort"
	"strings"
)

// ImportSpec is one name brought into scope by an import statement.
type ImportSpec struct {
	// Local is the name used in the file, which is the tag name in markup.
	Local string `json:"local"`
	// Imported is the exported name; it differs from Local for "X as Y".
	Imported string `json:"imported"`
	// Package is the module specifier, e.g. "@chakra-ui/react".
	Package string `json:"package"`
	// Default is set for default imports.
	Default bool `json:"default,omitempty"`
}

var (
	namedImportRe   = regexp.MustCompile(`import\s+(?:type\s+)?(?:([\w$]+)\s*,\s*)?\{([^}]*)\}\s*from\s*["']([^"']+)["']`)
	defaultImportRe = regexp.MustCompile(`import\s+([\w$]+)\s+from\s*["']([^"']+)["']`)
	asRe            = regexp.MustCompile(`^([\w$]+)\s+as\s+([\w$]+)$`)
)

// Parse extracts named, aliased and default imports from src in source
// order. Type-only names are skipped.
func Parse(src string) []ImportSpec {
	type located struct {
		at   int
		spec ImportSpec
	}
	var found []located

	for _, m := range namedImportRe.FindAllStringSubmatchIndex(src, -1) {
		pkg := src[m[6]:m[7]]
		if m[2] >= 0 {
			name := src[m[2]:m[3]]
			found = append(found, located{at: m[0], spec: ImportSpec{Local: name, Imported: "default", Package: pkg, Default: true}})
		}
		for _, part := range strings.Split(src[m[4]:m[5]], ",") {
			spec, ok := parseNamed(part, pkg)
			if ok {
				found = append(found, located{at: m[0], spec: spec})
			}
		}
	}
	for _, m := range defaultImportRe.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		if name == "type" {
			continue
		}
		found = append(found, located{at: m[0], spec: ImportSpec{
			Local:    name,
			Imported: "default",
			Package:  src[m[4]:m[5]],
			Default:  true,
		}})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].at < found[j].at
	})
	specs := make([]ImportSpec, len(found))
	for i, f := range found {
		specs[i] = f.spec
	}
	return specs
}

func parseNamed(part, pkg string) (ImportSpec, bool) {
	part = strings.TrimSpace(part)
	if part == "" || strings.HasPrefix(part, "type ") {
		return ImportSpec{}, false
	}
	if m := asRe.FindStringSubmatch(part); m != nil {
		return ImportSpec{Local: m[2], Imported: m[1], Package: pkg}, true
	}
	if strings.ContainsAny(part, " \t\n") {
		return ImportSpec{}, false
	}
	return ImportSpec{Local: part, Imported: part, Package: pkg}, true
}
