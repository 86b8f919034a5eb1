package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		src         string
		wantClose   string
		selfClosing bool
	}{
		{
			name:      "plain opening tag",
			src:       `<Box className="card">text`,
			wantClose: `<Box className="card">`,
		},
		{
			name:        "self closing",
			src:         `<Image src={a.b} />`,
			wantClose:   `<Image src={a.b} />`,
			selfClosing: true,
		},
		{
			name:        "self closing without space",
			src:         `<Input/>`,
			wantClose:   `<Input/>`,
			selfClosing: true,
		},
		{
			name:        "gt inside quotes and nested braces",
			src:         `<Box style={{color: "red"}} className="a>b" />`,
			wantClose:   `<Box style={{color: "red"}} className="a>b" />`,
			selfClosing: true,
		},
		{
			name:      "arrow function inside expression",
			src:       `<Button onClick={() => setOpen(x > 1)}>Go</Button>`,
			wantClose: `<Button onClick={() => setOpen(x > 1)}>`,
		},
		{
			name:      "closing brace inside quoted string inside braces",
			src:       `<Text title={"}" + name}>hi`,
			wantClose: `<Text title={"}" + name}>`,
		},
		{
			name:      "single quotes",
			src:       `<Box title='a > b'>`,
			wantClose: `<Box title='a > b'>`,
		},
		{
			name:      "template literal inside expression",
			src:       "<Box className={`x ${y > 2 ? '}' : ''}`}>",
			wantClose: "<Box className={`x ${y > 2 ? '}' : ''}`}>",
		},
		{
			name:      "escaped quote inside expression string",
			src:       `<Box title={"a\"}>"}>`,
			wantClose: `<Box title={"a\"}>"}>`,
		},
		{
			name: "multi line attributes",
			src: "<Flex\n  direction=\"column\"\n  gap={4}\n>\n  child",
			wantClose: "<Flex\n  direction=\"column\"\n  gap={4}\n>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pos := strings.IndexAny(tt.src[1:], " />\n") + 1
			b, err := ScanBoundary(tt.src, pos)
			require.NoError(t, err)
			assert.Equal(t, tt.wantClose, tt.src[:b.End()])
			assert.Equal(t, tt.selfClosing, b.SelfClosing)
		})
	}
}

func TestScanBoundaryNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "end of input", src: `<Box className="card"`},
		{name: "unbalanced brace", src: `<Box style={{color: "red"}>`},
		{name: "unterminated quote", src: `<Box title="oops>`},
		{name: "empty remainder", src: `<Box`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ScanBoundary(tt.src, len("<Box"))
			assert.ErrorIs(t, err, ErrBoundaryNotFound)
		})
	}
}

func TestScanBoundaryNegativePosition(t *testing.T) {
	t.Parallel()

	b, err := ScanBoundary(`a>`, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Close)
	assert.False(t, b.SelfClosing)
}
