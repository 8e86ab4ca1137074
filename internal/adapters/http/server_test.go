package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/libstate"
	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/graph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func linear(t *testing.T) *libstate.Runner[string] {
	t.Helper()
	g := graph.New[string]()
	g.RegisterState("a")
	g.RegisterState("b")
	require.NoError(t, g.RegisterEntry("a"))
	require.NoError(t, g.RegisterTransition("a", "b"))
	r, err := libstate.New(g)
	require.NoError(t, err)
	return r
}

func TestGetHealthAndInfo(t *testing.T) {
	h := NewHandler[string](linear(t), WithVersion("1.2.3"))

	rr := serve(t, h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	var health map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "ok", health["status"])

	rr = serve(t, h, http.MethodGet, "/info")
	var info map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.Equal(t, "libstate-http", info["app"])
	assert.Equal(t, "1.2.3", info["version"])
	assert.Equal(t, APIVersion, info["api_version"])
}

func TestPostRun(t *testing.T) {
	h := NewHandler[string](linear(t))

	rr := serve(t, h, http.MethodPost, "/runs")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp RunResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, domain.OutcomeCompleted, resp.Outcome)
	assert.Equal(t, 2, resp.Visits)
	assert.Equal(t, "b", resp.Last)
	assert.Empty(t, resp.Error)
}

func TestPostRun_Failure(t *testing.T) {
	g := graph.New[string]()
	g.RegisterState("a", graph.OnDo(func(context.Context, *domain.State[string]) error {
		return errors.New("boom")
	}))
	require.NoError(t, g.RegisterEntry("a"))
	r, err := libstate.New(g)
	require.NoError(t, err)

	rr := serve(t, NewHandler[string](r), http.MethodPost, "/runs")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp RunResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, domain.OutcomeAborted, resp.Outcome)
	assert.Contains(t, resp.Error, "boom")
}

func TestPostRun_ConflictAndStop(t *testing.T) {
	var (
		once    sync.Once
		started = make(chan struct{})
		release = make(chan struct{})
	)
	g := graph.New[string]()
	g.RegisterState("wait", graph.OnDo(func(context.Context, *domain.State[string]) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}))
	require.NoError(t, g.RegisterEntry("wait"))
	require.NoError(t, g.RegisterTransition("wait", "wait"))
	r, err := libstate.New(g)
	require.NoError(t, err)
	h := NewHandler[string](r)

	done := make(chan *httptest.ResponseRecorder)
	go func() {
		done <- serve(t, h, http.MethodPost, "/runs")
	}()
	<-started

	rr := serve(t, h, http.MethodGet, "/status")
	assert.JSONEq(t, `{"running":true}`, rr.Body.String())

	rr = serve(t, h, http.MethodPost, "/runs")
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = serve(t, h, http.MethodPost, "/stop")
	assert.Equal(t, http.StatusAccepted, rr.Code)
	close(release)

	select {
	case first := <-done:
		require.Equal(t, http.StatusOK, first.Code)
		var resp RunResponse
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &resp))
		assert.Equal(t, domain.OutcomeStopped, resp.Outcome)
		assert.Equal(t, 1, resp.Visits)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
	assert.False(t, r.Running())
}

func TestGetGraphAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"})
	reg.MustRegister(counter)
	counter.Inc()

	h := NewHandler[string](linear(t),
		WithGraph(func() string { return "graph TD\n" }),
		WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	rr := serve(t, h, http.MethodGet, "/graph")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "graph TD\n", rr.Body.String())

	rr = serve(t, h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "probe_total 1")
}

func TestOptionalRoutesDisabled(t *testing.T) {
	h := NewHandler[string](linear(t))
	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/graph").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, h, http.MethodGet, "/events").Code)
}

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster(16)
	events, cancel := b.Subscribe()

	g := graph.New[string]()
	g.RegisterState("a")
	require.NoError(t, g.RegisterEntry("a"))
	r, err := libstate.New(g, libstate.WithLifecycleHooks(b.Hooks()))
	require.NoError(t, err)
	_, err = r.Run(context.Background())
	require.NoError(t, err)
	cancel()

	var names []string
	for e := range events {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"run_start", "visit", "run_end"}, names)
}

func TestSubscribeEvents(t *testing.T) {
	b := NewBroadcaster(16)
	srv := httptest.NewServer(NewHandler[string](linear(t), WithEvents(b)))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 256)
	n, err := resp.Body.Read(buf)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(buf[:n]), "event: ping"))
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
}
