package definition_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/libstate"
	"github.com/aretw0/libstate/pkg/definition"
	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/graph"
	"github.com/aretw0/libstate/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	def, err := definition.Load("testdata/counter.yaml")
	require.NoError(t, err)

	assert.Equal(t, "counter", def.Name)
	require.Len(t, def.States, 2)
	require.Len(t, def.Transitions, 3)
	assert.Empty(t, def.Transitions[0].From)
	assert.Equal(t, "less_than", def.Transitions[1].When.Condition)
	assert.Equal(t, 3, def.Transitions[1].When.Args["value"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := definition.Load("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown field", "states: []\nbogus: 1\n"},
		{"malformed", "states: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := definition.Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestBuildAndRun(t *testing.T) {
	def, err := definition.Load("testdata/counter.yaml")
	require.NoError(t, err)

	g, err := definition.Build(def, registry.NewWithBuiltins(nil))
	require.NoError(t, err)

	r, err := libstate.New(g)
	require.NoError(t, err)

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, report.Outcome)
	assert.Equal(t, "done", report.Last)
	// count x3 then done
	assert.Equal(t, 4, report.Visits)

	done, ok := g.State("done")
	require.True(t, ok)
	assert.Equal(t, 3, done.Get("n"))
	assert.Equal(t, true, done.Get("finished"))
}

func TestBuild_MissingDestination(t *testing.T) {
	def, err := definition.Parse([]byte("states: [{id: a}]\ntransitions: [{from: a}]\n"))
	require.NoError(t, err)

	_, err = definition.Build(def, registry.NewRegistry())
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrMissingDestination)
}

func TestBuild_UnregisteredEndpoints(t *testing.T) {
	def, err := definition.Parse([]byte("states: [{id: a}]\ntransitions: [{from: a, to: b}]\n"))
	require.NoError(t, err)

	_, err = definition.Build(def, registry.NewRegistry())
	assert.ErrorIs(t, err, domain.ErrUnregisteredDestination)
}

func TestBuild_UnknownHook(t *testing.T) {
	doc := `
states:
  - id: a
    do: {action: teleport}
transitions:
  - to: a
`
	def, err := definition.Parse([]byte(doc))
	require.NoError(t, err)

	_, err = definition.Build(def, registry.NewWithBuiltins(nil))
	assert.ErrorIs(t, err, registry.ErrActionNotFound)
	assert.Contains(t, err.Error(), "state a: do hook")
}

func TestBuild_GuardWithoutCondition(t *testing.T) {
	doc := `
states: [{id: a}, {id: b}]
transitions:
  - to: a
  - from: a
    to: b
    when: {action: set}
`
	def, err := definition.Parse([]byte(doc))
	require.NoError(t, err)

	_, err = definition.Build(def, registry.NewWithBuiltins(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transition a -> b")
}

func TestBuild_EntryTransitionKey(t *testing.T) {
	def, err := definition.Parse([]byte("states: [{id: a}]\ntransitions: [{to: a}, {from: a, to: a}]\n"))
	require.NoError(t, err)

	g, err := definition.Build(def, registry.NewRegistry())
	require.NoError(t, err)

	entry := g.Transitions(graph.Initial[string]())
	require.Len(t, entry, 1)
	assert.True(t, entry[0].IsEntry())
	assert.Len(t, g.Transitions(graph.From("a")), 1)
}

func TestMarshal_RoundTrip(t *testing.T) {
	def, err := definition.Load("testdata/counter.yaml")
	require.NoError(t, err)

	out, err := definition.Marshal(def)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "name: counter"))

	again, err := definition.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, def, again)
}
