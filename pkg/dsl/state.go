package dsl

import "github.com/aretw0/libstate/pkg/domain"

type edge[K comparable] struct {
	target    K
	condition domain.Condition[K]
	action    domain.TransitionAction[K]
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder[K comparable] struct {
	id    K
	entry domain.Action[K]
	do    domain.Action[K]
	exit  domain.Action[K]
	edges []*edge[K]
}

// Entry sets the hook fired when the state is entered from elsewhere.
func (s *StateBuilder[K]) Entry(fn domain.Action[K]) *StateBuilder[K] {
	s.entry = fn
	return s
}

// Do sets the hook fired on every visit.
func (s *StateBuilder[K]) Do(fn domain.Action[K]) *StateBuilder[K] {
	s.do = fn
	return s
}

// Exit sets the hook fired when the state is left for elsewhere.
func (s *StateBuilder[K]) Exit(fn domain.Action[K]) *StateBuilder[K] {
	s.exit = fn
	return s
}

// Go adds an unconditional transition to the target state.
func (s *StateBuilder[K]) Go(target K) *StateBuilder[K] {
	s.edges = append(s.edges, &edge[K]{target: target})
	return s
}

// Branch adds a guarded transition to the target state.
func (s *StateBuilder[K]) Branch(cond domain.Condition[K], target K) *StateBuilder[K] {
	s.edges = append(s.edges, &edge[K]{target: target, condition: cond})
	return s
}

// Via attaches an action to the transition added last. It is a no-op if no
// transition was added yet.
func (s *StateBuilder[K]) Via(action domain.TransitionAction[K]) *StateBuilder[K] {
	if len(s.edges) > 0 {
		s.edges[len(s.edges)-1].action = action
	}
	return s
}

// Terminal drops every transition, making the state end the run.
func (s *StateBuilder[K]) Terminal() *StateBuilder[K] {
	s.edges = nil
	return s
}

// ID returns the identity of the state being built.
func (s *StateBuilder[K]) ID() K {
	return s.id
}
