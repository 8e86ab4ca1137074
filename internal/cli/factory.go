package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/libstate"
	"github.com/aretw0/libstate/pkg/definition"
	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/graph"
	"github.com/aretw0/libstate/pkg/registry"
)

// loadGraph reads the definition at path and builds its graph with the built-in registry.
func loadGraph(path string, logger *slog.Logger) (*definition.Definition, *graph.Graph[string], error) {
	def, err := definition.Load(path)
	if err != nil {
		return nil, nil, err
	}
	g, err := definition.Build(def, registry.NewWithBuiltins(logger))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build %s: %w", path, err)
	}
	return def, g, nil
}

// createRunner bakes g into a runner with standard CLI conventions.
func createRunner(g *graph.Graph[string], opts Options, logger *slog.Logger, hooks domain.LifecycleHooks) (*libstate.Runner[string], error) {
	r, err := libstate.New(g,
		libstate.WithLogger(logger),
		libstate.WithLifecycleHooks(hooks),
		libstate.WithStrictFallbacks(opts.Strict),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing runner: %w", err)
	}
	return r, nil
}
