package graph

import "github.com/aretw0/libstate/pkg/domain"

type stateConfig[K comparable] struct {
	entry domain.Action[K]
	do    domain.Action[K]
	exit  domain.Action[K]
}

// StateOption configures the hooks of a state being registered.
type StateOption[K comparable] func(*stateConfig[K])

// OnEntry sets the hook fired when the state is entered from another state or the start.
func OnEntry[K comparable](fn domain.Action[K]) StateOption[K] {
	return func(c *stateConfig[K]) {
		c.entry = fn
	}
}

// OnDo sets the hook fired on every visit, self-loops included.
func OnDo[K comparable](fn domain.Action[K]) StateOption[K] {
	return func(c *stateConfig[K]) {
		c.do = fn
	}
}

// OnExit sets the hook fired when the state is left for another state or the run ends.
func OnExit[K comparable](fn domain.Action[K]) StateOption[K] {
	return func(c *stateConfig[K]) {
		c.exit = fn
	}
}

type transitionConfig[K comparable] struct {
	condition domain.Condition[K]
	action    domain.TransitionAction[K]
}

// TransitionOption configures the guard and action of a transition being registered.
type TransitionOption[K comparable] func(*transitionConfig[K])

// When guards the transition. Guarded transitions are always tried before unguarded ones.
func When[K comparable](cond domain.Condition[K]) TransitionOption[K] {
	return func(c *transitionConfig[K]) {
		c.condition = cond
	}
}

// Then sets the action run while the transition is taken.
func Then[K comparable](action domain.TransitionAction[K]) TransitionOption[K] {
	return func(c *transitionConfig[K]) {
		c.action = action
	}
}
