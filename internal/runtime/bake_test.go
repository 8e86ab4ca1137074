package runtime_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/libstate/internal/runtime"
	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBake_EntryTransitionCount(t *testing.T) {
	g := graph.New[string]()
	g.RegisterState("a")
	g.RegisterState("b")

	_, err := runtime.NewRunner(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrEntryTransition)

	require.NoError(t, g.RegisterEntry("a"))
	require.NoError(t, g.RegisterEntry("b"))
	_, err = runtime.NewRunner(g)
	assert.ErrorIs(t, err, domain.ErrEntryTransition)

	require.NoError(t, g.DeregisterEntry("b"))
	r, err := runtime.NewRunner(g)
	require.NoError(t, err)
	assert.Equal(t, "a", r.Initial().ID())
}

func TestBake_DanglingTransition(t *testing.T) {
	g := graph.New[string]()
	g.RegisterState("a")
	g.RegisterState("b")
	require.NoError(t, g.RegisterEntry("a"))
	require.NoError(t, g.RegisterTransition("a", "b"))

	g.DeregisterState("b")

	_, err := runtime.NewRunner(g)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrDanglingTransition)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "b", cfgErr.ID)
}

func TestBake_DanglingEntry(t *testing.T) {
	g := graph.New[string]()
	g.RegisterState("a")
	require.NoError(t, g.RegisterEntry("a"))
	g.DeregisterState("a")

	_, err := runtime.NewRunner(g)
	assert.ErrorIs(t, err, domain.ErrDanglingTransition)
}

func TestBake_DeregisteredSourceListIsIgnored(t *testing.T) {
	g := graph.New[string]()
	g.RegisterState("a")
	g.RegisterState("gone")
	require.NoError(t, g.RegisterEntry("a"))
	require.NoError(t, g.RegisterTransition("gone", "a"))
	g.DeregisterState("gone")

	_, err := runtime.NewRunner(g)
	require.NoError(t, err)
}

func TestBake_AmbiguousFallbacks(t *testing.T) {
	g := graph.New[string]()
	g.RegisterState("a")
	g.RegisterState("b")
	g.RegisterState("c")
	require.NoError(t, g.RegisterEntry("a"))
	require.NoError(t, g.RegisterTransition("a", "b"))
	require.NoError(t, g.RegisterTransition("a", "c"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r, err := runtime.NewRunner(g, runtime.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "multiple unguarded transitions")

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", report.Last, "first registered fallback wins")

	_, err = runtime.NewRunner(g, runtime.WithStrictFallbacks(true))
	assert.ErrorIs(t, err, domain.ErrAmbiguousFallback)
}

func TestBake_LaterGraphChangesAreNotObserved(t *testing.T) {
	g := graph.New[string]()
	g.RegisterState("a")
	g.RegisterState("b")
	require.NoError(t, g.RegisterEntry("a"))

	r, err := runtime.NewRunner(g)
	require.NoError(t, err)

	require.NoError(t, g.RegisterTransition("a", "b"))
	g.OverrideState("a")

	report, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Visits)
	assert.Equal(t, "a", report.Last)
}
