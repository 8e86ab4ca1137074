package runtime

import (
	"slices"

	"github.com/aretw0/libstate/pkg/domain"
	"github.com/aretw0/libstate/pkg/graph"
)

// plan is the immutable, runnable form of a graph.
type plan[K comparable] struct {
	initial *domain.State[K]
	entry   *domain.Transition[K]
	edges   map[*domain.State[K]][]*domain.Transition[K]
}

// byGuard orders guarded transitions before unguarded ones.
func byGuard[K comparable](a, b *domain.Transition[K]) int {
	switch {
	case a.Guarded() == b.Guarded():
		return 0
	case a.Guarded():
		return -1
	default:
		return 1
	}
}

// bake validates g and compiles it. Transition lists are copied, so later changes
// to g are not observed by the plan.
func bake[K comparable](g *graph.Graph[K], cfg config) (*plan[K], error) {
	const op = "bake"

	entries := g.Transitions(graph.Initial[K]())
	if len(entries) != 1 {
		return nil, &domain.ConfigurationError{Op: op, Reason: domain.ErrEntryTransition}
	}
	initial, ok := g.State(entries[0].DestinationID())
	if !ok {
		return nil, &domain.ConfigurationError{Op: op, ID: entries[0].DestinationID(), Reason: domain.ErrDanglingTransition}
	}

	p := &plan[K]{
		initial: initial,
		entry:   entries[0].Bind(nil, initial),
		edges:   make(map[*domain.State[K]][]*domain.Transition[K]),
	}

	for _, state := range g.States() {
		list := g.Transitions(graph.From(state.ID()))
		if len(list) == 0 {
			continue
		}
		slices.SortStableFunc(list, byGuard[K])

		bound := make([]*domain.Transition[K], 0, len(list))
		fallbacks := 0
		for _, t := range list {
			dst, ok := g.State(t.DestinationID())
			if !ok {
				return nil, &domain.ConfigurationError{Op: op, ID: t.DestinationID(), Reason: domain.ErrDanglingTransition}
			}
			if !t.Guarded() {
				fallbacks++
			}
			bound = append(bound, t.Bind(state, dst))
		}

		if fallbacks > 1 {
			if cfg.strictFallbacks {
				return nil, &domain.ConfigurationError{Op: op, ID: state.ID(), Reason: domain.ErrAmbiguousFallback}
			}
			cfg.logger.Warn("state has multiple unguarded transitions, only the first registered is reachable",
				"state_id", state.ID(),
				"unguarded", fallbacks)
		}
		p.edges[state] = bound
	}

	cfg.logger.Debug("graph baked",
		"initial", initial.ID(),
		"states", len(g.States()))

	return p, nil
}
