package fsm

import (
	"fmt"

	"github.com/lixenwraith/vi-pong/event"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init enters the initial state and runs its OnEnter actions
func (m *Machine[T]) Init(ctx T, initial StateID) error {
	node, ok := m.nodes[initial]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", initial)
	}
	for id, n := range m.nodes {
		for _, t := range n.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("state %d has transition to missing state %d", id, t.TargetID)
			}
		}
	}

	m.InitialStateID = initial
	m.activeStateID = initial
	m.ticksInState = 0
	for _, fn := range node.OnEnter {
		fn(ctx)
	}
	return nil
}

// Tick counts one simulation step spent in the active state
func (m *Machine[T]) Tick() {
	if m.activeStateID != StateNone {
		m.ticksInState++
	}
}

// HandleEvent fires the first matching transition of the active state
// Returns true if a transition occurred
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	node, ok := m.nodes[m.activeStateID]
	if !ok {
		return false
	}

	for _, trans := range node.Transitions {
		if trans.Event != eventType {
			continue
		}
		if trans.Guard != nil && !trans.Guard(ctx) {
			continue
		}
		m.transition(ctx, node, trans.TargetID)
		return true
	}
	return false
}

func (m *Machine[T]) transition(ctx T, from *Node[T], targetID StateID) {
	target := m.nodes[targetID]

	for _, fn := range from.OnExit {
		fn(ctx)
	}
	m.activeStateID = targetID
	m.ticksInState = 0
	for _, fn := range target.OnEnter {
		fn(ctx)
	}
}

// Active returns the current state ID
func (m *Machine[T]) Active() StateID {
	return m.activeStateID
}

// ActiveName returns the name of the current state, empty before Init
func (m *Machine[T]) ActiveName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TicksInState returns ticks counted since the last transition
func (m *Machine[T]) TicksInState() uint64 {
	return m.ticksInState
}
