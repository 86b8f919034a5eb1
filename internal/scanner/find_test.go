package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	t.Parallel()

	src := `<Flex key={item.id}><Box id="hero">Hi</Box><BoxGroup /></Flex>`
	tags := Find(src, NewTagSet("Flex", "Box"))

	require.Len(t, tags, 4)

	assert.Equal(t, Opening, tags[0].Kind)
	assert.Equal(t, "Flex", tags[0].Name)
	assert.Equal(t, " key={item.id}", tags[0].Attrs)
	assert.Equal(t, `<Flex key={item.id}>`, src[tags[0].Start:tags[0].End])

	assert.Equal(t, Opening, tags[1].Kind)
	assert.Equal(t, "Box", tags[1].Name)
	assert.Equal(t, ` id="hero"`, tags[1].Attrs)
	assert.False(t, tags[1].SelfClosing)

	assert.Equal(t, Closing, tags[2].Kind)
	assert.Equal(t, "Box", tags[2].Name)
	assert.Equal(t, "</Box>", src[tags[2].Start:tags[2].End])

	assert.Equal(t, Closing, tags[3].Kind)
	assert.Equal(t, "Flex", tags[3].Name)
}

func TestFindSelfClosingAttrs(t *testing.T) {
	t.Parallel()

	src := `<Image src={logo.url} />`
	tags := Find(src, NewTagSet("Image"))

	require.Len(t, tags, 1)
	assert.True(t, tags[0].SelfClosing)
	assert.Equal(t, " src={logo.url} ", tags[0].Attrs)
	assert.Equal(t, len(src)-1, tags[0].Close())
}

func TestFindUnterminated(t *testing.T) {
	t.Parallel()

	src := "<Box className=\"card\"\n"
	tags := Find(src, NewTagSet("Box"))

	require.Len(t, tags, 1)
	assert.Equal(t, Unterminated, tags[0].Kind)
	assert.Equal(t, 0, tags[0].Start)
}

func TestFindNestedInExpression(t *testing.T) {
	t.Parallel()

	src := `<Button leftIcon={<Icon />}>Save</Button>`
	tags := Find(src, NewTagSet("Button", "Icon"))

	require.Len(t, tags, 3)
	assert.Equal(t, "Button", tags[0].Name)
	assert.Equal(t, "Icon", tags[1].Name)
	assert.True(t, tags[1].SelfClosing)
	assert.Equal(t, Closing, tags[2].Kind)
}

func TestFindIgnoresOtherNames(t *testing.T) {
	t.Parallel()

	tags := Find(`<div><span>x</span></div><Box.Item />`, NewTagSet("Box"))
	assert.Empty(t, tags)
}

func TestFindEmptySet(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Find(`<Box />`, nil))
	assert.Nil(t, Find(`<Box />`, NewTagSet()))
}

func TestFindClosingWithWhitespace(t *testing.T) {
	t.Parallel()

	tags := Find("<Box>\n</Box \n>", NewTagSet("Box"))

	require.Len(t, tags, 2)
	assert.Equal(t, Closing, tags[1].Kind)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "opening", Opening.String())
	assert.Equal(t, "closing", Closing.String())
	assert.Equal(t, "unterminated", Unterminated.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestTagSet(t *testing.T) {
	t.Parallel()

	set := NewTagSet("Box", "", "Flex")
	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("Box"))
	assert.False(t, set.Has(""))
	assert.Equal(t, []string{"Box", "Flex"}, set.Names())

	union := set.Union(NewTagSet("div"))
	assert.Equal(t, []string{"Box", "Flex", "div"}, union.Names())
	assert.Equal(t, 2, set.Len())
}

func TestLineIndex(t *testing.T) {
	t.Parallel()

	idx := NewLineIndex("ab\ncd\n\nef")
	assert.Equal(t, 1, idx.Line(0))
	assert.Equal(t, 1, idx.Line(2))
	assert.Equal(t, 2, idx.Line(3))
	assert.Equal(t, 3, idx.Line(6))
	assert.Equal(t, 4, idx.Line(7))
}
