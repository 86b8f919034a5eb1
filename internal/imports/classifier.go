package imports

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classifier decides whether an imported name is a candidate target tag.
type Classifier func(spec ImportSpec) bool

// DefaultUIPackages are the module prefixes of component libraries whose
// exports are tagged.
var DefaultUIPackages = []string{
	"@chakra-ui",
	"@mui",
	"@material-ui",
	"antd",
	"@ant-design",
	"@mantine",
	"@radix-ui",
	"@headlessui",
	"@nextui-org",
	"@shadcn/ui",
	"shadcn/ui",
}

// PackageClassifier accepts names imported from any package equal to, or
// nested under, one of prefixes.
func PackageClassifier(prefixes ...string) Classifier {
	return func(spec ImportSpec) bool {
		for _, p := range prefixes {
			if spec.Package == p || strings.HasPrefix(spec.Package, strings.TrimSuffix(p, "/")+"/") {
				return true
			}
		}
		return false
	}
}

var componentPatterns = regexp.MustCompile(`(?:` +
	`Button|Card|Container|Dialog|Dropdown|Form|Grid|Header|Icon|Input|Item|` +
	`List|Menu|Modal|Nav|Panel|Popover|Section|Select|Sidebar|Table|Tabs|` +
	`Text|Tooltip|View|Wrapper|Provider|Context|Component|Avatar|Badge|Banner|` +
	`Calendar|Chart|Drawer|Editor|Field|Layout|Page|Preview|Progress|Skeleton|` +
	`Spinner|Toast|Tool|Box|Element)$` +
	`|^(?:App|Page|Form|Modal|Dialog|Card|Nav|Menu|Tab|List|Item|Button)`)

// ComponentNameClassifier accepts capitalized names that look like UI
// components by suffix or prefix, such as "TaskCard" or "ModalHeader".
func ComponentNameClassifier(spec ImportSpec) bool {
	return IsCapitalized(spec.Local) && componentPatterns.MatchString(spec.Local)
}

// Any accepts a name when at least one of classifiers does.
func Any(classifiers ...Classifier) Classifier {
	return func(spec ImportSpec) bool {
		for _, c := range classifiers {
			if c != nil && c(spec) {
				return true
			}
		}
		return false
	}
}

// DefaultClassifier accepts UI library exports and names that look like
// components.
func DefaultClassifier() Classifier {
	return Any(PackageClassifier(DefaultUIPackages...), ComponentNameClassifier)
}

// IsCapitalized reports whether name starts with an upper case letter.
// Markup treats lower case names as intrinsic elements.
func IsCapitalized(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
