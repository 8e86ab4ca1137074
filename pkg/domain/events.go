package domain

import (
	"context"
	"time"
)

// Outcome describes how a run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed" // terminal state reached
	OutcomeStopped   Outcome = "stopped"   // Stop was requested
	OutcomeCanceled  Outcome = "canceled"  // context canceled between visits
	OutcomeAborted   Outcome = "aborted"   // a hook failed
)

// Report summarizes a finished run. Last is the identity of the last visited
// state and is meaningless when Visits is 0.
type Report[K comparable] struct {
	Outcome  Outcome
	Visits   int
	Last     K
	Duration time.Duration
}

// RunEvent is emitted when a run starts and when it ends.
type RunEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Initial   any           `json:"initial"`
	Outcome   Outcome       `json:"outcome,omitempty"`
	Visits    int           `json:"visits,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// VisitEvent is emitted every time a state becomes current.
type VisitEvent struct {
	Timestamp time.Time `json:"timestamp"`
	StateID   any       `json:"state_id"`
	// SelfLoop is true when the state was re-entered through its own transition.
	SelfLoop bool `json:"self_loop"`
}

// TransitionEvent is emitted when a transition is taken.
type TransitionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	From      any       `json:"from"`
	To        any       `json:"to"`
	Guarded   bool      `json:"guarded"`
}

// LifecycleHooks defines callbacks for runner observability.
// Hooks run synchronously on the goroutine executing the run.
type LifecycleHooks struct {
	OnRunStart   func(context.Context, *RunEvent)
	OnRunEnd     func(context.Context, *RunEvent)
	OnVisit      func(context.Context, *VisitEvent)
	OnTransition func(context.Context, *TransitionEvent)
}

// Merge returns hooks that invoke h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:   chain(h.OnRunStart, other.OnRunStart),
		OnRunEnd:     chain(h.OnRunEnd, other.OnRunEnd),
		OnVisit:      chain(h.OnVisit, other.OnVisit),
		OnTransition: chain(h.OnTransition, other.OnTransition),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
