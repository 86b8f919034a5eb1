package config

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// PathConfig overrides settings for files matching a glob pattern.
type PathConfig struct {
	// Prefix replaces the global identifier prefix.
	Prefix string `yaml:"prefix,omitempty"`

	// Mode replaces the global targeting mode.
	Mode string `yaml:"mode,omitempty"`

	// ExtraComponents are added to the global extra components.
	ExtraComponents []string `yaml:"extra_components,omitempty" validate:"dive,required"`
}

// ForPath returns the settings for a file at rel, a slash or OS separated
// path relative to the run root. The global settings are the defaults;
// the most specific matching pattern (the longest, ties broken by name)
// overrides them.
func (c *Config) ForPath(rel string) PathConfig {
	result := PathConfig{
		Prefix:          c.Prefix,
		Mode:            c.Mode,
		ExtraComponents: append([]string(nil), c.ExtraComponents...),
	}

	pattern, ok := c.matchPath(filepath.ToSlash(rel))
	if !ok {
		return result
	}

	override := c.Paths[pattern]
	if override.Prefix != "" {
		result.Prefix = override.Prefix
	}
	if override.Mode != "" {
		result.Mode = override.Mode
	}
	result.ExtraComponents = append(result.ExtraComponents, override.ExtraComponents...)

	return result
}

// matchPath returns the pattern chosen for rel.
func (c *Config) matchPath(rel string) (string, bool) {
	patterns := make([]string, 0, len(c.Paths))
	for p := range c.Paths {
		patterns = append(patterns, p)
	}
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i]) != len(patterns[j]) {
			return len(patterns[i]) > len(patterns[j])
		}
		return patterns[i] < patterns[j]
	})

	for _, p := range patterns {
		if matchGlob(p, rel) {
			return p, true
		}
	}
	return "", false
}

// matchGlob matches rel against pattern. A trailing "/**" matches the
// directory and everything below it, and a pattern without a slash is
// matched against the base name as well.
func matchGlob(pattern, rel string) bool {
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
		return rel == dir || strings.HasPrefix(rel, dir+"/")
	}
	if ok, _ := path.Match(pattern, rel); ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, _ := path.Match(pattern, path.Base(rel))
		return ok
	}
	return false
}
