package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/libstate/internal/validator"
	"github.com/aretw0/libstate/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() graph.Description[string] {
	return graph.Description[string]{
		States: []graph.StateInfo[string]{{ID: "a", HasDo: true}, {ID: "b"}},
		Transitions: []graph.TransitionInfo[string]{
			{Entry: true, Destination: "a"},
			{Source: "a", Destination: "b", Guarded: true},
		},
	}
}

func TestMarkdown(t *testing.T) {
	d := sample()
	md := Markdown(Summary[string]{
		Name:       "demo",
		Graph:      d,
		Validation: validator.Validate(d),
	})

	assert.Contains(t, md, "# demo\n")
	assert.Contains(t, md, "## States (2)")
	assert.Contains(t, md, "| `a` | - | yes | - |")
	assert.Contains(t, md, "| *start* | `a` | - | - |")
	assert.Contains(t, md, "| `a` | `b` | yes | - |")
	assert.Contains(t, md, "No problems found. 2 states reachable.")
}

func TestMarkdown_Findings(t *testing.T) {
	d := sample()
	d.Transitions = d.Transitions[1:]
	md := Markdown(Summary[string]{Graph: d, Validation: validator.Validate(d)})

	assert.Contains(t, md, "# State graph")
	assert.Contains(t, md, "- **error**: expected exactly one entry transition, found 0")
}

func TestRenderers(t *testing.T) {
	render, err := NewRenderer(60)
	require.NoError(t, err)
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")

	plain, err := PlainRenderer()("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", plain)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|_|_.__/")
}
