package dsl

import (
	"fmt"

	"github.com/aretw0/libstate/pkg/graph"
)

// Builder manages the graph construction.
type Builder[K comparable] struct {
	states []*StateBuilder[K]
	index  map[K]*StateBuilder[K]
	start  *edge[K]
}

// New creates a new graph builder.
func New[K comparable]() *Builder[K] {
	return &Builder[K]{
		index: make(map[K]*StateBuilder[K]),
	}
}

// Add declares a state. If the state already exists, it returns the existing builder.
func (b *Builder[K]) Add(id K) *StateBuilder[K] {
	if sb, ok := b.index[id]; ok {
		return sb
	}
	sb := &StateBuilder[K]{id: id}
	b.index[id] = sb
	b.states = append(b.states, sb)
	return sb
}

// Start sets the state every run begins with.
func (b *Builder[K]) Start(id K) *Builder[K] {
	b.start = &edge[K]{target: id}
	return b
}

// Build registers every declared state and transition on a new graph.
func (b *Builder[K]) Build() (*graph.Graph[K], error) {
	g := graph.New[K]()

	for _, sb := range b.states {
		g.RegisterState(sb.id,
			graph.OnEntry(sb.entry),
			graph.OnDo(sb.do),
			graph.OnExit(sb.exit),
		)
	}

	if b.start != nil {
		if err := g.RegisterEntry(b.start.target); err != nil {
			return nil, fmt.Errorf("failed to register start %v: %w", b.start.target, err)
		}
	}

	for _, sb := range b.states {
		for _, e := range sb.edges {
			err := g.RegisterTransition(sb.id, e.target,
				graph.When(e.condition),
				graph.Then(e.action),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to register %v -> %v: %w", sb.id, e.target, err)
			}
		}
	}

	return g, nil
}
