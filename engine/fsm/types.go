package fsm

import "github.com/lixenwraith/vi-pong/event"

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
)

// Machine is a flat finite state machine driven by simulation events
// T is the context type passed to actions and guards (e.g., *engine.Match)
type Machine[T any] struct {
	nodes map[StateID]*Node[T]

	InitialStateID StateID

	activeStateID StateID
	ticksInState  uint64
}

// Node represents a single state
type Node[T any] struct {
	ID   StateID
	Name string

	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType
	Guard    GuardFunc[T] // nil = Always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
