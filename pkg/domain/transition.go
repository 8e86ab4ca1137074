package domain

import (
	"context"
	"fmt"
)

// Condition is a guard evaluated against the transition it belongs to.
// Guards are expected to be free of side effects.
type Condition[K comparable] func(ctx context.Context, t *Transition[K]) (bool, error)

// TransitionAction runs while the transition is taken, before memory hand-off.
type TransitionAction[K comparable] func(ctx context.Context, t *Transition[K]) error

// Transition is a guarded edge between two states.
// The entry transition has no source.
type Transition[K comparable] struct {
	sourceID      K
	hasSource     bool
	destinationID K

	condition Condition[K]
	action    TransitionAction[K]

	// bound on baking
	source      *State[K]
	destination *State[K]
}

// NewTransition creates an edge from source to destination.
func NewTransition[K comparable](source, destination K, condition Condition[K], action TransitionAction[K]) *Transition[K] {
	return &Transition[K]{
		sourceID:      source,
		hasSource:     true,
		destinationID: destination,
		condition:     condition,
		action:        action,
	}
}

// NewEntryTransition creates the sourceless edge that marks where a run starts.
func NewEntryTransition[K comparable](destination K, condition Condition[K], action TransitionAction[K]) *Transition[K] {
	return &Transition[K]{
		destinationID: destination,
		condition:     condition,
		action:        action,
	}
}

// SourceID returns the source identity. The boolean is false for the entry transition.
func (t *Transition[K]) SourceID() (K, bool) {
	return t.sourceID, t.hasSource
}

// DestinationID returns the destination identity.
func (t *Transition[K]) DestinationID() K {
	return t.destinationID
}

// IsEntry reports whether t is the entry transition.
func (t *Transition[K]) IsEntry() bool {
	return !t.hasSource
}

// Guarded reports whether t carries a condition.
func (t *Transition[K]) Guarded() bool {
	return t.condition != nil
}

// Condition returns the guard, or nil.
func (t *Transition[K]) Condition() Condition[K] { return t.condition }

// Action returns the transition hook, or nil.
func (t *Transition[K]) Action() TransitionAction[K] { return t.action }

// Source returns the bound source state. It is nil for the entry transition
// and for transitions that have not been baked.
func (t *Transition[K]) Source() *State[K] {
	return t.source
}

// Destination returns the bound destination state, or nil before baking.
func (t *Transition[K]) Destination() *State[K] {
	return t.destination
}

// Bind returns a copy of t attached to the given endpoint states.
func (t *Transition[K]) Bind(source, destination *State[K]) *Transition[K] {
	bound := *t
	bound.source = source
	bound.destination = destination
	return &bound
}

// Connects reports whether t links the given endpoints. A nil source
// matches only the entry transition.
func (t *Transition[K]) Connects(source *K, destination K) bool {
	if t.destinationID != destination {
		return false
	}
	if source == nil {
		return !t.hasSource
	}
	return t.hasSource && t.sourceID == *source
}

func (t *Transition[K]) String() string {
	if !t.hasSource {
		return fmt.Sprintf("Transition{INITIAL -> %v}", t.destinationID)
	}
	return fmt.Sprintf("Transition{%v -> %v}", t.sourceID, t.destinationID)
}
