/*
Package domain contains the entities of the libstate engine.

It defines States (identity, memory and entry/do/exit hooks), Transitions (guarded
edges with an optional action) and the error taxonomy shared by the graph builder and
the runner. This package is kept free of I/O and of any knowledge about how a graph is
baked or executed.

# Key Entities

  - State: a named execution context holding Memory and optional hooks.
  - Transition: an edge between two states; the entry transition has no source.
  - ConfigurationError: a malformed graph, raised at registration or bake time.
  - ActionError / RunAbortedError: a hook failure and the run it terminated.
  - LifecycleHooks: observability callbacks fired by the runner.
*/
package domain
