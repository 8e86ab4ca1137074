/*
Package libstate is an embeddable, deterministic execution engine for step-based control flow.

A workflow is a directed graph of named states connected by guarded transitions. The graph is
built with package graph (or the fluent package dsl), baked once into a Runner and then executed
repeatedly, each run going from the single entry state until a terminal state is reached or Stop
is requested.

# Concept

Every visit to a state fires its hooks in a fixed order:

  - entry: unless the state was re-entered through its own transition (self-loop).
  - do: on every visit.
  - transition selection: the first transition whose guard holds. Guarded transitions are always
    tried before unguarded ones, which act as fallbacks. No match means the state is terminal.
  - exit: unless the selected transition loops back to the same state.
  - transition action, then the state's memory is copied into the destination.

The memory of the initial state is rewound before each run, so two consecutive runs over an
unchanged graph visit the same sequence of states. Effects outside state memory are never rewound.

# Usage

	g := graph.New[string]()
	g.RegisterState("ping", graph.OnDo(func(ctx context.Context, s *domain.State[string]) error {
		n, _ := domain.Lookup[int](s, "n")
		s.Put("n", n+1)
		return nil
	}))
	g.RegisterState("done")

	_ = g.RegisterEntry("ping")
	_ = g.RegisterTransition("ping", "ping", graph.When(func(ctx context.Context, t *domain.Transition[string]) (bool, error) {
		n, _ := domain.Lookup[int](t.Source(), "n")
		return n < 3, nil
	}))
	_ = g.RegisterTransition("ping", "done")

	r, err := libstate.New(g)
	if err != nil {
		log.Fatal(err)
	}
	report, err := r.Run(context.Background())

Run must not be called concurrently on one Runner. Stop is the only method meant to be called
from another goroutine.
*/
package libstate
