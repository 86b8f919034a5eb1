package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chakraSource = `import { Box, Flex as Row, useToast } from "@chakra-ui/react";
import TaskCard from "./TaskCard";
import helpers from "./helpers";
`

func TestResolveComponents(t *testing.T) {
	t.Parallel()

	res := NewResolver().Resolve(chakraSource)

	assert.Equal(t, []string{"Box", "Row", "TaskCard"}, res.Targets.Names())
	assert.False(t, res.UsedFallback)
	require.Len(t, res.Matched, 3)
	assert.Equal(t, "Flex", res.Matched[1].Imported)
	assert.Equal(t, []string{"chakra-ui"}, res.Frameworks)
}

func TestResolveFallback(t *testing.T) {
	t.Parallel()

	res := NewResolver().Resolve(`import React from "react";`)
	assert.True(t, res.UsedFallback)
	assert.Equal(t, len(DefaultComponents), res.Targets.Len())
	assert.True(t, res.Targets.Has("VStack"))

	none := NewResolver(WithFallback(nil)).Resolve(`import React from "react";`)
	assert.False(t, none.UsedFallback)
	assert.Zero(t, none.Targets.Len())
}

func TestResolveModes(t *testing.T) {
	t.Parallel()

	html := NewResolver(WithMode(ModeHTML), WithExtra([]string{"Custom"})).Resolve(chakraSource)
	assert.Equal(t, len(HTMLElements), html.Targets.Len())
	assert.True(t, html.Targets.Has("div"))
	assert.False(t, html.Targets.Has("Box"))
	assert.False(t, html.Targets.Has("Custom"))

	all := NewResolver(WithMode(ModeAll), WithExtra([]string{"Custom"})).Resolve(chakraSource)
	assert.True(t, all.Targets.Has("div"))
	assert.True(t, all.Targets.Has("Box"))
	assert.True(t, all.Targets.Has("Custom"))
	assert.Equal(t, ModeAll, NewResolver(WithMode(ModeAll)).Mode())
}

func TestResolveCustomClassifier(t *testing.T) {
	t.Parallel()

	onlyLocal := func(spec ImportSpec) bool { return spec.Package[0] == '.' }
	res := NewResolver(WithClassifier(onlyLocal)).Resolve(chakraSource)

	assert.Equal(t, []string{"TaskCard"}, res.Targets.Names())
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Mode{"": ModeComponents, "components": ModeComponents, "html": ModeHTML, "all": ModeAll} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("vue")
	assert.Error(t, err)
}
