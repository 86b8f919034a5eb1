// Package discovery finds markup source files under a directory tree.
package discovery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// DefaultExtensions are the file extensions scanned by default.
var DefaultExtensions = []string{".jsx", ".tsx", ".js"}

// DefaultExclude are directory names never descended into.
var DefaultExclude = []string{"node_modules", ".git", "dist", "build"}

// Finder walks a directory tree and collects candidate source files.
type Finder struct {
	fs         afs.Service
	extensions map[string]bool
	exclude    map[string]bool
	skip       func(path string) bool
}

// Option configures a Finder.
type Option func(*Finder)

// WithExtensions sets the accepted file extensions, e.g. ".jsx".
func WithExtensions(exts []string) Option {
	return func(f *Finder) {
		f.extensions = toSet(exts, normalizeExt)
	}
}

// WithExclude sets the directory names that are skipped.
func WithExclude(names []string) Option {
	return func(f *Finder) {
		f.exclude = toSet(names, func(s string) string { return s })
	}
}

// WithSkip sets a predicate for files that must not be returned, such as
// previously generated outputs.
func WithSkip(skip func(path string) bool) Option {
	return func(f *Finder) {
		f.skip = skip
	}
}

// NewFinder returns a Finder with the default extensions and exclusions.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		fs:         afs.New(),
		extensions: toSet(DefaultExtensions, normalizeExt),
		exclude:    toSet(DefaultExclude, func(s string) string { return s }),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Matches reports whether path has an accepted extension and is not
// skipped.
func (f *Finder) Matches(path string) bool {
	if !f.extensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	return f.skip == nil || !f.skip(path)
}

// Find returns the matching files under root in lexical order. When root
// is a file it is returned as is, provided it matches.
func (f *Finder) Find(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		if f.Matches(root) {
			return []string{root}, nil
		}
		return nil, nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	var files []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !f.exclude[info.Name()], nil
		}
		abs := filepath.Join(url.Path(url.Join(baseURL, parent)), info.Name())
		if !f.Matches(abs) {
			return true, nil
		}
		files = append(files, rebase(abs, absRoot, root))
		return true, nil
	}
	if err := f.fs.Walk(ctx, absRoot, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// rebase expresses abs relative to root the way the caller spelled root.
func rebase(abs, absRoot, root string) string {
	rel, err := filepath.Rel(absRoot, abs)
	if err != nil {
		return abs
	}
	return filepath.Join(root, rel)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func toSet(items []string, norm func(string) string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if n := norm(item); n != "" {
			set[n] = true
		}
	}
	return set
}
