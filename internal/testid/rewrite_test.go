package testid

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/harsha7innerscore/ui-playground/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		targets []string
		src     string
		want    string
		ids     []string
	}{
		{
			name:    "key outranks nothing and id outranks text",
			targets: []string{"Flex", "Box"},
			src:     `<Flex key={item.id}><Box id="hero">Hi</Box></Flex>`,
			want:    `<Flex key={item.id} data-testid="flex-list-item-1"><Box id="hero" data-testid="box-hero-1">Hi</Box></Flex>`,
			ids:     []string{"flex-list-item-1", "box-hero-1"},
		},
		{
			name:    "quoted gt and nested braces",
			targets: []string{"Box"},
			src:     `<Box style={{color: "red"}} className="a>b" />`,
			want:    `<Box style={{color: "red"}} className="a>b" data-testid="box-a-b-1" />`,
			ids:     []string{"box-a-b-1"},
		},
		{
			name:    "numbering follows source order",
			targets: []string{"Box"},
			src:     `<Box className="card" /><Box className="card" />`,
			want:    `<Box className="card" data-testid="box-card-1" /><Box className="card" data-testid="box-card-2" />`,
			ids:     []string{"box-card-1", "box-card-2"},
		},
		{
			name:    "existing identifier is kept and used as ancestor",
			targets: []string{"Box", "Image"},
			src:     `<Box data-testid="existing-1"><Image /></Box>`,
			want:    `<Box data-testid="existing-1"><Image data-testid="existing-image-1" /></Box>`,
			ids:     []string{"existing-image-1"},
		},
		{
			name:    "ancestor counter is stripped",
			targets: []string{"Box", "Text"},
			src:     `<Box className="card"><Text /></Box><Text />`,
			want:    `<Box className="card" data-testid="box-card-1"><Text data-testid="box-card-text-1" /></Box><Text data-testid="text-1" />`,
			ids:     []string{"box-card-1", "box-card-text-1", "text-1"},
		},
		{
			name:    "inline text",
			targets: []string{"Button"},
			src:     `<Button>Save</Button>`,
			want:    `<Button data-testid="button-save-1">Save</Button>`,
			ids:     []string{"button-save-1"},
		},
		{
			name:    "self closing without space",
			targets: []string{"Input"},
			src:     `<Input/>`,
			want:    `<Input data-testid="input-1"/>`,
			ids:     []string{"input-1"},
		},
		{
			name:    "element inside expression attribute",
			targets: []string{"Button", "Icon"},
			src:     `<Button leftIcon={<Icon />}>Save</Button>`,
			want:    `<Button leftIcon={<Icon data-testid="button-save-icon-1" />} data-testid="button-save-1">Save</Button>`,
			ids:     []string{"button-save-1", "button-save-icon-1"},
		},
		{
			name:    "multi line tag",
			targets: []string{"Flex"},
			src:     "<Flex\n  direction=\"column\"\n  className={styles.sidebar}\n>\n</Flex>",
			want:    "<Flex\n  direction=\"column\"\n  className={styles.sidebar}\n data-testid=\"flex-sidebar-1\">\n</Flex>",
			ids:     []string{"flex-sidebar-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := NewSession().Rewrite(tt.src, scanner.NewTagSet(tt.targets...))
			assert.Equal(t, tt.want, res.Output)
			assert.Equal(t, tt.ids, res.IDs())
			assert.Empty(t, res.Unclosed)
		})
	}
}

func TestRewriteUnterminatedTag(t *testing.T) {
	t.Parallel()

	src := "<Box className=\"card\"\n  <Text"
	res := NewSession().Rewrite(src, scanner.NewTagSet("Box"))

	assert.Equal(t, src, res.Output)
	assert.Zero(t, res.Total())
	assert.False(t, res.Changed())
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, Skip{Tag: "Box", Line: 1}, res.Skipped[0])
}

func TestRewriteEmptyTargets(t *testing.T) {
	t.Parallel()

	src := `<Box className="card" />`
	for _, targets := range []scanner.TagSet{nil, scanner.NewTagSet()} {
		res := NewSession().Rewrite(src, targets)
		assert.Equal(t, src, res.Output)
		assert.Zero(t, res.Total())
	}
}

func TestRewriteNoMatches(t *testing.T) {
	t.Parallel()

	src := `<div className="card">plain</div>`
	res := NewSession().Rewrite(src, scanner.NewTagSet("Box"))
	assert.Equal(t, src, res.Output)
	assert.Empty(t, res.Assignments)
}

func TestRewriteIsIdempotent(t *testing.T) {
	t.Parallel()

	src := `import { Box, Flex, Text, Button } from "@chakra-ui/react";

export function Card({ items }) {
  return (
    <Flex className={styles.wrapper}>
      {items.map((item) => (
        <Box key={item.id} onClick={() => select(item)}>
          <Text>{item.label}</Text>
        </Box>
      ))}
      <Button
        variant="ghost"
        onClick={() => setOpen(count > 1)}
      >
        Close
      </Button>
    </Flex>
  );
}
`
	targets := scanner.NewTagSet("Box", "Flex", "Text", "Button")

	first := NewSession().Rewrite(src, targets)
	require.Equal(t, 4, first.Total())
	assert.Equal(t, []string{"flex-wrapper-1", "box-list-item-1", "box-list-item-text-1", "button-close-1"}, first.IDs())
	assert.Equal(t, 4, strings.Count(first.Output, "data-testid="))

	second := NewSession().Rewrite(first.Output, targets)
	assert.Zero(t, second.Total())
	assert.Equal(t, 4, second.Existing)
	assert.Equal(t, first.Output, second.Output)
}

func TestRewriteUniqueIdentifiers(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := range 50 {
		fmt.Fprintf(&b, "<Box className=\"card\"><Text>Row</Text><Text /></Box>\n<Image src={row%d.thumb} />\n", i)
	}
	res := NewSession().Rewrite(b.String(), scanner.NewTagSet("Box", "Text", "Image"))

	seen := make(map[string]bool)
	for _, id := range res.IDs() {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 200)
	assert.Len(t, res.ByTag()["Image"], 50)
	assert.Equal(t, []string{"Box", "Image", "Text"}, res.Tags())
}

func TestRewriteSkipsExistingIdentifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		src  string
		want string
	}{
		{
			name: "existing before",
			src:  `<Flex data-testid="box-1" /><Box />`,
			want: `<Flex data-testid="box-1" /><Box data-testid="box-2" />`,
		},
		{
			name: "existing after",
			src:  `<Box /><Box /><Flex data-testid="box-2" />`,
			want: `<Box data-testid="box-1" /><Box data-testid="box-3" /><Flex data-testid="box-2" />`,
		},
		{
			name: "existing on other tag",
			src:  `<div data-testid="box-1"><Box /></div>`,
			want: `<div data-testid="box-1"><Box data-testid="box-2" /></div>`,
		},
		{
			name: "existing with prefix",
			opts: []Option{WithPrefix("app")},
			src:  `<Flex data-testid="app-box-1" /><Box />`,
			want: `<Flex data-testid="app-box-1" /><Box data-testid="app-box-2" />`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := NewSession(tt.opts...).Rewrite(tt.src, scanner.NewTagSet("Flex", "Box"))
			assert.Equal(t, tt.want, res.Output)

			values := make(map[string]bool)
			for _, m := range testIDValueRe.FindAllStringSubmatch(res.Output, -1) {
				assert.False(t, values[m[1]], "duplicate id %s", m[1])
				values[m[1]] = true
			}
		})
	}
}

var testIDValueRe = regexp.MustCompile(`data-testid="([^"]*)"`)

func TestRewriteEmptyExistingValue(t *testing.T) {
	t.Parallel()

	src := `<Box className="outer"><Box data-testid=""><Text /></Box><Text /></Box>`
	res := NewSession().Rewrite(src, scanner.NewTagSet("Box", "Text"))

	assert.Equal(t, []string{"box-outer-1", "box-outer-text-1", "box-outer-text-2"}, res.IDs())
	assert.Equal(t, 1, res.Existing)
	assert.Empty(t, res.Unclosed)
}

func TestRewriteUnclosed(t *testing.T) {
	t.Parallel()

	res := NewSession().Rewrite(`<Box className="a"><Flex>`, scanner.NewTagSet("Box", "Flex"))

	assert.Equal(t, []string{"box-a-1", "box-a-flex-1"}, res.IDs())
	assert.Equal(t, []string{"box-a-1", "box-a-flex-1"}, res.Unclosed)
}

func TestRewriteWithOptions(t *testing.T) {
	t.Parallel()

	s := NewSession(WithPrefix("Task Page"), WithAttribute("data-cy"), WithImageTags([]string{"Logo"}))
	res := s.Rewrite(`<Box className="card"><Logo src={brand.mark} /></Box>`, scanner.NewTagSet("Box", "Logo"))

	assert.Equal(t, "task-page-", s.Prefix())
	assert.Equal(t, "data-cy", s.Attribute())
	assert.Equal(t,
		`<Box className="card" data-cy="task-page-box-card-1"><Logo src={brand.mark} data-cy="task-page-logo-mark-1" /></Box>`,
		res.Output)
}

func TestRewriteParallelSessions(t *testing.T) {
	t.Parallel()

	src := `<Box className="card"><Text>Hi</Text></Box><Box className="card" />`
	targets := scanner.NewTagSet("Box", "Text")

	var wg sync.WaitGroup
	results := make([]*Result, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = NewSession().Rewrite(src, targets)
		}()
	}
	wg.Wait()

	for _, res := range results {
		assert.Equal(t, []string{"box-card-1", "text-hi-1", "box-card-2"}, res.IDs())
	}
}
