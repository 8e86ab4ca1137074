/*
Package graph provides the mutable registry of states and transitions that a
libstate runner is baked from.

States are registered under an identity of any comparable type. Transitions are
appended to the list of their source in registration order; the entry transition,
which marks where a run starts, has no source and is kept under the INITIAL key.

	g := graph.New[string]()
	g.RegisterState("greet", graph.OnDo(func(ctx context.Context, s *domain.State[string]) error {
		s.Put("greeted", true)
		return nil
	}))
	g.RegisterState("done")

	if err := g.RegisterEntry("greet"); err != nil {
		return err
	}
	if err := g.RegisterTransition("greet", "done"); err != nil {
		return err
	}

A Graph is not safe for concurrent use. Once a runner has been baked from it, later
changes to the graph do not affect that runner.
*/
package graph
