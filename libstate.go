package libstate

import (
	"context"
	"log/slog"

	"github.com/aretw0/libstate/internal/runtime"
	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/graph"
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

// Runner is the high-level entry point of the library. It bakes a graph once and
// executes it any number of times.
type Runner[K comparable] struct {
	runtime *runtime.Runner[K]
}

type options struct {
	logger      *slog.Logger
	runtimeOpts []runtime.Option
}

// Option defines a functional option for configuring the Runner.
type Option func(*options)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. It may be given more than once.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.runtimeOpts = append(o.runtimeOpts, runtime.WithLifecycleHooks(hooks))
	}
}

// WithStrictFallbacks rejects graphs where a state has more than one unguarded transition.
func WithStrictFallbacks(strict bool) Option {
	return func(o *options) {
		o.runtimeOpts = append(o.runtimeOpts, runtime.WithStrictFallbacks(strict))
	}
}

// New bakes g into a Runner. It fails with a *domain.ConfigurationError if g does not
// have exactly one entry transition or a transition points to a deregistered state.
func New[K comparable](g *graph.Graph[K], opts ...Option) (*Runner[K], error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	runtimeOpts := []runtime.Option{runtime.WithLogger(o.logger)}
	runtimeOpts = append(runtimeOpts, o.runtimeOpts...)

	rt, err := runtime.NewRunner(g, runtimeOpts...)
	if err != nil {
		return nil, err
	}
	return &Runner[K]{runtime: rt}, nil
}

// Run executes the graph to completion or until Stop is called. Every run starts from
// the same initial memory, regardless of what the previous run left behind.
func (r *Runner[K]) Run(ctx context.Context) (domain.Report[K], error) {
	return r.runtime.Run(ctx)
}

// Stop requests cooperative termination. It is safe to call from any goroutine.
func (r *Runner[K]) Stop() {
	r.runtime.Stop()
}

// Running reports whether a run is in progress.
func (r *Runner[K]) Running() bool {
	return r.runtime.Running()
}

// Initial returns the identity of the state every run starts from.
func (r *Runner[K]) Initial() K {
	return r.runtime.Initial().ID()
}
