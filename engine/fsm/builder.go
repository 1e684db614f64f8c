package fsm

// AddState adds a node to the machine
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{
		ID:   id,
		Name: name,
	}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// OnEnter appends an action run when the state becomes active
func (m *Machine[T]) OnEnter(id StateID, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnEnter = append(node.OnEnter, fn)
	}
}

// OnExit appends an action run when the state is left
func (m *Machine[T]) OnExit(id StateID, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnExit = append(node.OnExit, fn)
	}
}
