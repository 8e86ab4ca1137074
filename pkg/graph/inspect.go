package graph

// StateInfo is a read-only description of a registered state.
type StateInfo[K comparable] struct {
	ID       K
	HasEntry bool
	HasDo    bool
	HasExit  bool
}

// TransitionInfo is a read-only description of a registered transition.
type TransitionInfo[K comparable] struct {
	Entry       bool // sourceless entry transition; Source is the zero value
	Source      K
	Destination K
	Guarded     bool
	HasAction   bool
}

// Description is a snapshot of the graph topology used by validation and
// visualization tools.
type Description[K comparable] struct {
	States      []StateInfo[K]
	Transitions []TransitionInfo[K]
}

// Inspect describes the graph. States are listed in registration order and
// transitions grouped by source in the order their lists were created.
func (g *Graph[K]) Inspect() Description[K] {
	var d Description[K]
	for _, s := range g.States() {
		d.States = append(d.States, StateInfo[K]{
			ID:       s.ID(),
			HasEntry: s.EntryAction() != nil,
			HasDo:    s.DoAction() != nil,
			HasExit:  s.ExitAction() != nil,
		})
	}
	for _, key := range g.sourceOrder {
		for _, t := range g.transitions[key] {
			src, _ := t.SourceID()
			d.Transitions = append(d.Transitions, TransitionInfo[K]{
				Entry:       t.IsEntry(),
				Source:      src,
				Destination: t.DestinationID(),
				Guarded:     t.Guarded(),
				HasAction:   t.Action() != nil,
			})
		}
	}
	return d
}

// Registered reports whether id names a registered state.
func (d Description[K]) Registered(id K) bool {
	for _, s := range d.States {
		if s.ID == id {
			return true
		}
	}
	return false
}
