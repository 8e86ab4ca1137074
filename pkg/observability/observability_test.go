package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/libstate"
	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/graph"
	"github.com/aretw0/libstate/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pingPong visits ping three times, then pong once.
func pingPong(t *testing.T) *graph.Graph[string] {
	t.Helper()
	count := func(_ context.Context, s *domain.State[string]) error {
		n, _ := domain.Lookup[int](s, "n")
		s.Put("n", n+1)
		return nil
	}
	again := func(_ context.Context, tr *domain.Transition[string]) (bool, error) {
		n, _ := domain.Lookup[int](tr.Source(), "n")
		return n < 3, nil
	}

	g := graph.New[string]()
	g.RegisterState("ping", graph.OnDo(count))
	g.RegisterState("pong")
	require.NoError(t, g.RegisterEntry("ping"))
	require.NoError(t, g.RegisterTransition("ping", "ping", graph.When(again)))
	require.NoError(t, g.RegisterTransition("ping", "pong"))
	return g
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m, err := observability.NewMetrics(reg, "libstate")
	require.NoError(t, err)

	r, err := libstate.New(pingPong(t), libstate.WithLifecycleHooks(m.Hooks()))
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("completed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Visits.WithLabelValues("ping")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Visits.WithLabelValues("pong")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("ping", "ping")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("ping", "pong")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Running))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))

	expected := `
# HELP libstate_runs_total Finished runs by outcome.
# TYPE libstate_runs_total counter
libstate_runs_total{outcome="completed"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "libstate_runs_total"))
}

func TestMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg, "libstate")
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg, "libstate")
	assert.Error(t, err)
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r, err := libstate.New(pingPong(t), libstate.WithLifecycleHooks(observability.LoggingHooks(logger)))
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="run started" initial=ping`)
	assert.Contains(t, out, "self_loop=true")
	assert.Contains(t, out, "from=ping to=pong guarded=false")
	assert.Contains(t, out, "outcome=completed visits=4")
}

func TestLoggingHooks_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hooks := observability.LoggingHooks(logger)

	hooks.OnRunEnd(context.Background(), &domain.RunEvent{Outcome: domain.OutcomeAborted, Err: errors.New("boom")})
	assert.Contains(t, buf.String(), `msg="run failed"`)
	assert.Contains(t, buf.String(), "err=boom")
}
