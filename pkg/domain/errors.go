package domain

import (
	"errors"
	"fmt"
)

// ErrConfiguration matches every ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("configuration error")

// Reasons carried by a ConfigurationError.
var (
	// ErrMissingDestination is returned when a transition is declared without a destination.
	ErrMissingDestination = errors.New("destination state is required")

	// ErrUnregisteredSource is returned when a transition references an unknown source.
	ErrUnregisteredSource = errors.New("source state is not registered")

	// ErrUnregisteredDestination is returned when a transition references an unknown destination.
	ErrUnregisteredDestination = errors.New("destination state is not registered")

	// ErrEntryTransition is returned on baking when there is not exactly one entry transition.
	ErrEntryTransition = errors.New("no or multiple entry transitions")

	// ErrDanglingTransition is returned on baking when a transition points to a state
	// that was deregistered after the transition was added.
	ErrDanglingTransition = errors.New("transition references a deregistered state")

	// ErrAmbiguousFallback is returned on strict baking when a state has more than one
	// unguarded transition.
	ErrAmbiguousFallback = errors.New("multiple unguarded transitions")
)

// ErrAlreadyRunning is returned when Run is invoked while another run is in flight.
var ErrAlreadyRunning = errors.New("runner is already running")

// ConfigurationError reports a malformed graph. It is raised at registration or
// bake time and is never retried.
type ConfigurationError struct {
	Op     string // e.g. "register_transition", "bake"
	ID     any    // offending state identity, if any
	Reason error
}

func (e *ConfigurationError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s %v: %v", e.Op, e.ID, e.Reason)
}

// Unwrap exposes the reason so errors.Is can match the sentinel.
func (e *ConfigurationError) Unwrap() error {
	return e.Reason
}

// Is makes every ConfigurationError match ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// HookKind identifies which user hook failed.
type HookKind string

const (
	HookEntry      HookKind = "entry"
	HookDo         HookKind = "do"
	HookExit       HookKind = "exit"
	HookCondition  HookKind = "condition"
	HookTransition HookKind = "transition"
)

// ActionError wraps a failure raised by a user supplied hook or guard.
type ActionError struct {
	Hook    HookKind
	StateID any
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s hook of state %v failed: %v", e.Hook, e.StateID, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// RunAbortedError terminates a run after an ActionError. Effects applied before
// the failure are not rolled back.
type RunAbortedError struct {
	Visits int
	Err    error
}

func (e *RunAbortedError) Error() string {
	return fmt.Sprintf("run aborted after %d visits: %v", e.Visits, e.Err)
}

func (e *RunAbortedError) Unwrap() error {
	return e.Err
}
