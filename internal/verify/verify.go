// Package verify checks that a rewrite did not break the syntax of a file.
//
// Both the original and the rewritten text are parsed with tree-sitter. The
// rewrite is rejected only when it introduces errors: a source file that
// already fails to parse is compared by error count so pre-existing problems
// are not blamed on the rewrite.
package verify

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrUnsupportedLanguage is returned for file extensions with no grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Result is the outcome of verifying one rewrite.
type Result struct {
	// Language is the grammar used.
	Language string
	// BeforeErrors and AfterErrors count error or missing nodes.
	BeforeErrors int
	AfterErrors  int
	// FirstErrorLine is the 1-based line of the first error in the
	// rewritten text, or 0.
	FirstErrorLine int
}

// Regressed reports whether the rewrite introduced syntax errors.
func (r Result) Regressed() bool {
	return r.AfterErrors > r.BeforeErrors
}

// LanguageFor returns the grammar name for path, or "" when unsupported.
// Plain .js files are parsed with the javascript grammar, which accepts
// JSX.
func LanguageFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript"
	case ".tsx":
		return "tsx"
	case ".ts", ".mts", ".cts":
		return "typescript"
	default:
		return ""
	}
}

func grammar(lang string) *sitter.Language {
	switch lang {
	case "javascript":
		return javascript.GetLanguage()
	case "tsx":
		return tsx.GetLanguage()
	case "typescript":
		return typescript.GetLanguage()
	default:
		return nil
	}
}

// Verifier parses sources with tree-sitter.
type Verifier struct{}

// New returns a Verifier.
func New() *Verifier {
	return &Verifier{}
}

// Check parses before and after with the grammar for path.
func (v *Verifier) Check(ctx context.Context, path, before, after string) (Result, error) {
	lang := LanguageFor(path)
	g := grammar(lang)
	if g == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filepath.Ext(path))
	}

	res := Result{Language: lang}

	beforeCount, _, err := v.countErrors(ctx, g, before)
	if err != nil {
		return res, fmt.Errorf("parsing original: %w", err)
	}
	afterCount, line, err := v.countErrors(ctx, g, after)
	if err != nil {
		return res, fmt.Errorf("parsing rewritten: %w", err)
	}

	res.BeforeErrors = beforeCount
	res.AfterErrors = afterCount
	res.FirstErrorLine = line
	return res, nil
}

// countErrors parses src and returns the number of error nodes and the line
// of the first one.
func (v *Verifier) countErrors(ctx context.Context, lang *sitter.Language, src string) (int, int, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, []byte(src))
	if err != nil {
		return 0, 0, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return 0, 0, nil
	}

	count := 0
	line := 0
	walk(root, func(n *sitter.Node) {
		if n.IsError() || n.IsMissing() {
			count++
			if line == 0 {
				line = int(n.StartPoint().Row) + 1
			}
		}
	})
	return count, line, nil
}

// walk visits n and its descendants in document order.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}
