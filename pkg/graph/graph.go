package graph

import (
	"slices"

	"github.com/aretw0/libstate/pkg/domain"
)

// Key identifies a transition list: either a registered source state or the
// INITIAL sentinel holding the entry transition.
type Key[K comparable] struct {
	ID      K
	Initial bool
}

// Initial returns the key of the entry transition list.
func Initial[K comparable]() Key[K] {
	return Key[K]{Initial: true}
}

// From returns the key of the transitions leaving id.
func From[K comparable](id K) Key[K] {
	return Key[K]{ID: id}
}

// Graph maps identities to states and sources to their outgoing transitions.
type Graph[K comparable] struct {
	states      map[K]*domain.State[K]
	stateOrder  []K
	transitions map[Key[K]][]*domain.Transition[K]
	sourceOrder []Key[K]
}

// New creates an empty graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		states:      make(map[K]*domain.State[K]),
		transitions: make(map[Key[K]][]*domain.Transition[K]),
	}
}

// RegisterState inserts the state keyed by id, replacing any state already registered
// under it. The new state starts with empty memory.
func (g *Graph[K]) RegisterState(id K, opts ...StateOption[K]) {
	var cfg stateConfig[K]
	for _, opt := range opts {
		opt(&cfg)
	}
	if _, ok := g.states[id]; !ok {
		g.stateOrder = append(g.stateOrder, id)
	}
	g.states[id] = domain.NewState(id, cfg.entry, cfg.do, cfg.exit)
}

// DeregisterState removes the state keyed by id.
// Transitions referencing it are left in place; baking reports the dangling ones.
func (g *Graph[K]) DeregisterState(id K) {
	if _, ok := g.states[id]; !ok {
		return
	}
	delete(g.states, id)
	g.stateOrder = slices.DeleteFunc(g.stateOrder, func(k K) bool { return k == id })
}

// OverrideState deregisters and registers id again.
func (g *Graph[K]) OverrideState(id K, opts ...StateOption[K]) {
	g.DeregisterState(id)
	g.RegisterState(id, opts...)
}

// RegisterTransition appends a transition from source to destination.
func (g *Graph[K]) RegisterTransition(source, destination K, opts ...TransitionOption[K]) error {
	return g.register(&source, destination, opts)
}

// RegisterEntry appends a sourceless transition to destination under the INITIAL key.
// Exactly one entry transition must exist when a runner is baked.
func (g *Graph[K]) RegisterEntry(destination K, opts ...TransitionOption[K]) error {
	return g.register(nil, destination, opts)
}

func (g *Graph[K]) register(source *K, destination K, opts []TransitionOption[K]) error {
	const op = "register_transition"

	if isNil(destination) {
		return &domain.ConfigurationError{Op: op, Reason: domain.ErrMissingDestination}
	}
	if source != nil {
		if _, ok := g.states[*source]; !ok {
			return &domain.ConfigurationError{Op: op, ID: *source, Reason: domain.ErrUnregisteredSource}
		}
	}
	if _, ok := g.states[destination]; !ok {
		return &domain.ConfigurationError{Op: op, ID: destination, Reason: domain.ErrUnregisteredDestination}
	}

	var cfg transitionConfig[K]
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		key Key[K]
		t   *domain.Transition[K]
	)
	if source == nil {
		key = Initial[K]()
		t = domain.NewEntryTransition(destination, cfg.condition, cfg.action)
	} else {
		key = From(*source)
		t = domain.NewTransition(*source, destination, cfg.condition, cfg.action)
	}

	if _, ok := g.transitions[key]; !ok {
		g.sourceOrder = append(g.sourceOrder, key)
	}
	g.transitions[key] = append(g.transitions[key], t)
	return nil
}

// DeregisterTransition removes every transition from source to destination.
// Both endpoints must currently be registered.
func (g *Graph[K]) DeregisterTransition(source, destination K) error {
	return g.deregister(&source, destination)
}

// DeregisterEntry removes every entry transition to destination.
func (g *Graph[K]) DeregisterEntry(destination K) error {
	return g.deregister(nil, destination)
}

func (g *Graph[K]) deregister(source *K, destination K) error {
	const op = "deregister_transition"

	key := Initial[K]()
	if source != nil {
		if _, ok := g.states[*source]; !ok {
			return &domain.ConfigurationError{Op: op, ID: *source, Reason: domain.ErrUnregisteredSource}
		}
		key = From(*source)
	}
	if _, ok := g.states[destination]; !ok {
		return &domain.ConfigurationError{Op: op, ID: destination, Reason: domain.ErrUnregisteredDestination}
	}

	list, ok := g.transitions[key]
	if !ok {
		return nil
	}
	list = slices.DeleteFunc(list, func(t *domain.Transition[K]) bool {
		return t.Connects(source, destination)
	})
	if len(list) == 0 {
		delete(g.transitions, key)
		g.sourceOrder = slices.DeleteFunc(g.sourceOrder, func(k Key[K]) bool { return k == key })
		return nil
	}
	g.transitions[key] = list
	return nil
}

// OverrideTransition replaces every transition from source to destination with a new one.
func (g *Graph[K]) OverrideTransition(source, destination K, opts ...TransitionOption[K]) error {
	if err := g.DeregisterTransition(source, destination); err != nil {
		return err
	}
	return g.RegisterTransition(source, destination, opts...)
}

// OverrideEntry replaces every entry transition to destination with a new one.
func (g *Graph[K]) OverrideEntry(destination K, opts ...TransitionOption[K]) error {
	if err := g.DeregisterEntry(destination); err != nil {
		return err
	}
	return g.RegisterEntry(destination, opts...)
}

// State returns the state registered under id.
func (g *Graph[K]) State(id K) (*domain.State[K], bool) {
	s, ok := g.states[id]
	return s, ok
}

// States returns the registered states in registration order.
func (g *Graph[K]) States() []*domain.State[K] {
	out := make([]*domain.State[K], 0, len(g.stateOrder))
	for _, id := range g.stateOrder {
		out = append(out, g.states[id])
	}
	return out
}

// Transitions returns a copy of the list registered under key, in registration order.
func (g *Graph[K]) Transitions(key Key[K]) []*domain.Transition[K] {
	return slices.Clone(g.transitions[key])
}

// Keys returns every transition list key in the order the lists were created,
// including keys of sources that have since been deregistered.
func (g *Graph[K]) Keys() []Key[K] {
	return slices.Clone(g.sourceOrder)
}

func isNil[K comparable](id K) bool {
	var v any = id
	return v == nil
}
