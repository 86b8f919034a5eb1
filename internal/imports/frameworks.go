package imports

import (
	"regexp"
	"sort"
	"strings"
)

// framework is a UI library recognized by markers in the source text.
type framework struct {
	name    string
	markers []string
	pattern *regexp.Regexp
}

var frameworks = []framework{
	{name: "chakra-ui", markers: []string{"@chakra-ui/"}},
	{name: "material-ui", markers: []string{"@mui/", "@material-ui/"}},
	{name: "ant-design", markers: []string{`from "antd"`, `from 'antd'`, "@ant-design/"}},
	{name: "styled-components", markers: []string{"styled-components"}},
	{name: "emotion", markers: []string{"@emotion/"}},
	{name: "nextui", markers: []string{"@nextui-org/"}},
	{name: "radix-ui", markers: []string{"@radix-ui/"}},
	{name: "headless-ui", markers: []string{"@headlessui/"}},
	{name: "shadcn-ui", markers: []string{"shadcn/ui"}},
	{name: "mantine", markers: []string{"@mantine/"}},
	{
		name:    "tailwind",
		markers: []string{"tailwind"},
		pattern: regexp.MustCompile(`className=["'][^"']*\b(?:bg|text|border|rounded|shadow)-\w+`),
	},
	{
		name:    "bootstrap",
		markers: []string{"react-bootstrap"},
		pattern: regexp.MustCompile(`className=["'][^"']*\b(?:btn|col|form|navbar)-\w+`),
	},
}

// DetectFrameworks returns the sorted names of the UI libraries src appears
// to use. It is informational and does not affect targeting.
func DetectFrameworks(src string) []string {
	var found []string
	for _, fw := range frameworks {
		if fw.matches(src) {
			found = append(found, fw.name)
		}
	}
	sort.Strings(found)
	return found
}

func (f framework) matches(src string) bool {
	for _, m := range f.markers {
		if strings.Contains(src, m) {
			return true
		}
	}
	return f.pattern != nil && f.pattern.MatchString(src)
}
