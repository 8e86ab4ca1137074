package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/libstate/pkg/domain"
)

type config struct {
	logger          *slog.Logger
	hooks           domain.LifecycleHooks
	strictFallbacks bool
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures a Runner.
type Option func(*config)

// WithLogger sets the structured logger. A nil logger keeps the default no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls chain the hooks
// in the order they were given.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithStrictFallbacks makes baking fail with domain.ErrAmbiguousFallback when a state has
// more than one unguarded transition. By default only a warning is logged and the first
// one registered wins.
func WithStrictFallbacks(strict bool) Option {
	return func(c *config) {
		c.strictFallbacks = strict
	}
}
