package validator

import (
	"errors"
	"testing"

	"github.com/aretw0/libstate/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func describe(states []string, edges ...graph.TransitionInfo[string]) graph.Description[string] {
	var d graph.Description[string]
	for _, s := range states {
		d.States = append(d.States, graph.StateInfo[string]{ID: s})
	}
	d.Transitions = edges
	return d
}

func entry(to string) graph.TransitionInfo[string] {
	return graph.TransitionInfo[string]{Entry: true, Destination: to}
}

func edge(from, to string, guarded bool) graph.TransitionInfo[string] {
	return graph.TransitionInfo[string]{Source: from, Destination: to, Guarded: guarded}
}

func TestValidate_Valid(t *testing.T) {
	d := describe([]string{"a", "b", "c"},
		entry("a"),
		edge("a", "b", true),
		edge("a", "c", false),
		edge("b", "c", false),
	)

	report := Validate(d)
	assert.NoError(t, report.Err())
	assert.Empty(t, report.Findings)
	assert.Equal(t, 3, report.Reachable)
}

func TestValidate_EntryCount(t *testing.T) {
	report := Validate(describe([]string{"a"}))
	require.Error(t, report.Err())
	assert.Contains(t, report.Err().Error(), "found 0")

	report = Validate(describe([]string{"a", "b"}, entry("a"), entry("b")))
	require.Error(t, report.Err())
	assert.Contains(t, report.Err().Error(), "found 2")
}

func TestValidate_Dangling(t *testing.T) {
	d := describe([]string{"a", "b"},
		entry("a"),
		edge("a", "ghost", false),
		edge("b", "ghost", false),
	)

	report := Validate(d)
	err := report.Err()
	require.Error(t, err)

	var agg *AggregateError
	require.True(t, errors.As(err, &agg))
	require.Len(t, agg.Errors, 2)
	assert.Contains(t, agg.Errors[0].Error(), "state a: transition to ghost")
	assert.Contains(t, agg.Errors[1].Error(), "state b: transition to ghost")

	require.Len(t, report.Warnings(), 1)
	assert.Equal(t, "b", report.Warnings()[0].StateID)
}

func TestValidate_EntryToUnregistered(t *testing.T) {
	report := Validate(describe([]string{"a"}, entry("ghost")))
	assert.Error(t, report.Err())
}

func TestValidate_ShadowedFallback(t *testing.T) {
	d := describe([]string{"a", "b", "c"},
		entry("a"),
		edge("a", "b", false),
		edge("a", "c", false),
	)

	report := Validate(d)
	assert.NoError(t, report.Err())
	require.Len(t, report.Warnings(), 1)
	assert.Contains(t, report.Warnings()[0].Message, "2 unguarded transitions")

	strict := Validate(d, Strict(true))
	assert.Error(t, strict.Err())
}

func TestValidate_UnregisteredSource(t *testing.T) {
	d := describe([]string{"a"},
		entry("a"),
		edge("gone", "a", false),
	)

	report := Validate(d)
	assert.NoError(t, report.Err())
	require.Len(t, report.Warnings(), 1)
	assert.Equal(t, "gone", report.Warnings()[0].StateID)
}

func TestValidate_FromGraph(t *testing.T) {
	g := graph.New[int]()
	g.RegisterState(1)
	g.RegisterState(2)
	require.NoError(t, g.RegisterEntry(1))
	require.NoError(t, g.RegisterTransition(1, 2))
	g.DeregisterState(2)

	report := Validate(g.Inspect())
	assert.Error(t, report.Err())
}

func TestAggregateError_Multiple(t *testing.T) {
	err := &AggregateError{Errors: []error{errors.New("one"), errors.New("two")}}
	assert.Equal(t, "2 validation errors:\n  1. one\n  2. two\n", err.Error())
}
