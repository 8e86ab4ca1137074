package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/libstate/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// APIVersion is reported by GET /info.
const APIVersion = "0.1.0"

// Runner is the part of a libstate runner exposed over HTTP.
type Runner[K comparable] interface {
	Run(ctx context.Context) (domain.Report[K], error)
	Stop()
	Running() bool
}

// Option configures the handler.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	graph   func() string
	metrics http.Handler
	events  *Broadcaster
	version string
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithGraph serves the output of render on GET /graph.
func WithGraph(render func() string) Option {
	return func(c *config) {
		c.graph = render
	}
}

// WithMetrics serves h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(c *config) {
		c.metrics = h
	}
}

// WithEvents streams the broadcaster's events on GET /events.
func WithEvents(b *Broadcaster) Option {
	return func(c *config) {
		c.events = b
	}
}

// WithVersion sets the application version reported by GET /info.
func WithVersion(v string) Option {
	return func(c *config) {
		c.version = v
	}
}

// Server exposes a runner over HTTP.
type Server[K comparable] struct {
	runner Runner[K]
	cfg    config
}

// RunResponse is the body returned by POST /runs.
type RunResponse struct {
	Outcome    domain.Outcome `json:"outcome"`
	Visits     int            `json:"visits"`
	Last       any            `json:"last,omitempty"`
	DurationMS float64        `json:"duration_ms"`
	Error      string         `json:"error,omitempty"`
}

// NewHandler creates the HTTP handler for runner.
func NewHandler[K comparable](runner Runner[K], opts ...Option) http.Handler {
	s := &Server[K]{
		runner: runner,
		cfg:    config{logger: slog.New(slog.DiscardHandler), version: "dev"},
	}
	for _, opt := range opts {
		opt(&s.cfg)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/status", s.GetStatus)
	r.Post("/runs", s.PostRun)
	r.Post("/stop", s.PostStop)
	if s.cfg.graph != nil {
		r.Get("/graph", s.GetGraph)
	}
	if s.cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.metrics)
	}
	if s.cfg.events != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	return r
}

// GetHealth handles the GET /health request.
func (s *Server[K]) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server[K]) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "libstate-http",
		"version":     s.cfg.version,
		"api_version": APIVersion,
	})
}

// GetStatus handles the GET /status request.
func (s *Server[K]) GetStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"running": s.runner.Running()})
}

// PostRun handles the POST /runs request. The run executes on the request
// goroutine and is canceled if the client goes away.
func (s *Server[K]) PostRun(w http.ResponseWriter, r *http.Request) {
	report, err := s.runner.Run(r.Context())
	if errors.Is(err, domain.ErrAlreadyRunning) {
		s.writeJSON(w, http.StatusConflict, RunResponse{Error: err.Error()})
		return
	}

	resp := RunResponse{
		Outcome:    report.Outcome,
		Visits:     report.Visits,
		DurationMS: float64(report.Duration.Microseconds()) / 1000,
	}
	if report.Visits > 0 {
		resp.Last = report.Last
	}

	status := http.StatusOK
	if err != nil {
		s.cfg.logger.Error("run failed", "err", err)
		resp.Error = err.Error()
		status = http.StatusInternalServerError
		if errors.Is(err, domain.ErrConfiguration) {
			status = http.StatusUnprocessableEntity
		}
	}
	s.writeJSON(w, status, resp)
}

// PostStop handles the POST /stop request.
func (s *Server[K]) PostStop(w http.ResponseWriter, r *http.Request) {
	s.runner.Stop()
	s.writeJSON(w, http.StatusAccepted, map[string]bool{"running": s.runner.Running()})
}

// GetGraph handles the GET /graph request.
func (s *Server[K]) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, s.cfg.graph())
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server[K]) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := s.cfg.events.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, event.Data)
			flusher.Flush()
		}
	}
}

func (s *Server[K]) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.cfg.logger.Error("failed to encode response", "err", err)
	}
}
