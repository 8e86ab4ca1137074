package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/libstate"
	httpAdapter "github.com/aretw0/libstate/internal/adapters/http"
	pgraph "github.com/aretw0/libstate/internal/presentation/graph"
	"github.com/aretw0/libstate/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// NewServer builds the HTTP server for the definition without starting it.
func NewServer(opts ServeOptions) (*http.Server, error) {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	_, g, err := loadGraph(opts.Path, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg, "libstate")
	if err != nil {
		return nil, err
	}
	events := httpAdapter.NewBroadcaster(64)

	hooks := metrics.Hooks().
		Merge(observability.LoggingHooks(logger)).
		Merge(events.Hooks())
	r, err := createRunner(g, opts.Options, logger, hooks)
	if err != nil {
		return nil, err
	}

	mermaid := pgraph.GenerateMermaid(g.Inspect(), nil)
	handler := httpAdapter.NewHandler[string](r,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithVersion(libstate.Version),
		httpAdapter.WithGraph(func() string { return mermaid }),
		httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		httpAdapter.WithEvents(events),
	)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Serve runs the HTTP server until ctx is canceled, then shuts it down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	srv, err := NewServer(opts)
	if err != nil {
		return err
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if cerr := srv.Close(); cerr != nil {
			return errors.Join(err, cerr)
		}
		return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
	}
	return nil
}
