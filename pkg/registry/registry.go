package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/libstate/pkg/domain"
)

var (
	// ErrActionNotFound is returned when no action is registered under a name.
	ErrActionNotFound = errors.New("action not found")
	// ErrConditionNotFound is returned when no condition is registered under a name.
	ErrConditionNotFound = errors.New("condition not found")
)

// MemoryAction is a hook body operating on a state's memory.
type MemoryAction func(ctx context.Context, mem domain.Memory) error

// MemoryCondition is a guard body reading a state's memory.
type MemoryCondition func(ctx context.Context, mem domain.Memory) (bool, error)

// ActionFactory builds a MemoryAction from declarative arguments.
// It returns an error if the arguments are invalid.
type ActionFactory func(args map[string]any) (MemoryAction, error)

// ConditionFactory builds a MemoryCondition from declarative arguments.
type ConditionFactory func(args map[string]any) (MemoryCondition, error)

// Registry maps names to hook factories so graphs can be declared outside Go code.
type Registry struct {
	mu         sync.RWMutex
	actions    map[string]ActionFactory
	conditions map[string]ConditionFactory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions:    make(map[string]ActionFactory),
		conditions: make(map[string]ConditionFactory),
	}
}

// RegisterAction adds an action factory to the registry.
// If an action with the same name exists, it is overwritten.
func (r *Registry) RegisterAction(name string, fn ActionFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = fn
}

// RegisterCondition adds a condition factory to the registry.
// If a condition with the same name exists, it is overwritten.
func (r *Registry) RegisterCondition(name string, fn ConditionFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditions[name] = fn
}

// Action looks up an action by name and builds it with args.
func (r *Registry) Action(name string, args map[string]any) (MemoryAction, error) {
	r.mu.RLock()
	factory, ok := r.actions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActionNotFound, name)
	}
	action, err := factory(args)
	if err != nil {
		return nil, fmt.Errorf("invalid arguments for action %s: %w", name, err)
	}
	return action, nil
}

// Condition looks up a condition by name and builds it with args.
func (r *Registry) Condition(name string, args map[string]any) (MemoryCondition, error) {
	r.mu.RLock()
	factory, ok := r.conditions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConditionNotFound, name)
	}
	cond, err := factory(args)
	if err != nil {
		return nil, fmt.Errorf("invalid arguments for condition %s: %w", name, err)
	}
	return cond, nil
}

// Names lists the registered actions and conditions, sorted.
func (r *Registry) Names() (actions, conditions []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name := range r.actions {
		actions = append(actions, name)
	}
	for name := range r.conditions {
		conditions = append(conditions, name)
	}
	sort.Strings(actions)
	sort.Strings(conditions)
	return actions, conditions
}

// StateAction adapts a MemoryAction into a state hook.
func StateAction[K comparable](a MemoryAction) domain.Action[K] {
	return func(ctx context.Context, s *domain.State[K]) error {
		return a(ctx, s.Memory())
	}
}

// TransitionAction adapts a MemoryAction into a transition hook acting on the
// source's memory, which is then handed to the destination.
func TransitionAction[K comparable](a MemoryAction) domain.TransitionAction[K] {
	return func(ctx context.Context, t *domain.Transition[K]) error {
		return a(ctx, t.Source().Memory())
	}
}

// Guard adapts a MemoryCondition into a transition guard reading the source's memory.
func Guard[K comparable](c MemoryCondition) domain.Condition[K] {
	return func(ctx context.Context, t *domain.Transition[K]) (bool, error) {
		return c(ctx, t.Source().Memory())
	}
}
