package domain

import (
	"context"
	"fmt"
	"maps"
)

// Memory is the associative store a state carries along a run.
// Keys and values are opaque to the engine.
type Memory map[any]any

// Clone returns an independent shallow copy of the memory.
// A nil memory clones to an empty one.
func (m Memory) Clone() Memory {
	if m == nil {
		return make(Memory)
	}
	return maps.Clone(m)
}

// Action is a fallible hook invoked with the state it is attached to.
type Action[K comparable] func(ctx context.Context, state *State[K]) error

// State is a named execution context with memory and optional entry/do/exit hooks.
type State[K comparable] struct {
	id     K
	memory Memory

	entry Action[K]
	do    Action[K]
	exit  Action[K]
}

// NewState creates a state with empty memory. Any hook may be nil.
func NewState[K comparable](id K, entry, do, exit Action[K]) *State[K] {
	return &State[K]{
		id:     id,
		memory: make(Memory),
		entry:  entry,
		do:     do,
		exit:   exit,
	}
}

// ID returns the identity of the state.
func (s *State[K]) ID() K {
	return s.id
}

// Memory returns the live memory of the state.
func (s *State[K]) Memory() Memory {
	return s.memory
}

// CloneMemory returns an independent copy of the current memory.
func (s *State[K]) CloneMemory() Memory {
	return s.memory.Clone()
}

// ReplaceMemory swaps the whole memory of the state.
func (s *State[K]) ReplaceMemory(m Memory) {
	if m == nil {
		m = make(Memory)
	}
	s.memory = m
}

// Get returns the value stored under key, or nil.
func (s *State[K]) Get(key any) any {
	return s.memory[key]
}

// Put stores value under key and returns it.
func (s *State[K]) Put(key, value any) any {
	s.memory[key] = value
	return value
}

// Remove deletes key and returns the value it held.
func (s *State[K]) Remove(key any) any {
	v := s.memory[key]
	delete(s.memory, key)
	return v
}

// EntryAction returns the entry hook, or nil.
func (s *State[K]) EntryAction() Action[K] { return s.entry }

// DoAction returns the do hook, or nil.
func (s *State[K]) DoAction() Action[K] { return s.do }

// ExitAction returns the exit hook, or nil.
func (s *State[K]) ExitAction() Action[K] { return s.exit }

func (s *State[K]) String() string {
	return fmt.Sprintf("State{id=%v}", s.id)
}

// Lookup reads key from the state's memory as a T.
// The boolean is false when the key is missing or holds another type.
func Lookup[T any, K comparable](s *State[K], key any) (T, bool) {
	v, ok := s.memory[key].(T)
	return v, ok
}
