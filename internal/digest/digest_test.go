package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	t.Parallel()

	a, err := String(`<Box />`)
	require.NoError(t, err)
	b, err := String(`<Box />`)
	require.NoError(t, err)
	c, err := String(`<Box data-testid="box-1" />`)
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0000000000000000", Format(0))
	assert.Equal(t, "00000000000000ff", Format(255))
	assert.Equal(t, "ffffffffffffffff", Format(^uint64(0)))
}
