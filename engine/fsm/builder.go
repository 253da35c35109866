package fsm

import "fmt"

// NewMachine creates an empty FSM
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// AddState adds a node to the graph
// Returns the node so callers can attach actions directly
func (m *Machine[T]) AddState(id StateID, name string, parentID StateID) *Node[T] {
	node := &Node[T]{
		ID:       id,
		Name:     name,
		ParentID: parentID,
	}
	m.nodes[id] = node
	m.compiled = false
	return node
}

// AddTransition adds a transition to a specific node
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// Enter appends an enter action to a node
func (n *Node[T]) Enter(fn ActionFunc[T], args any) *Node[T] {
	n.OnEnter = append(n.OnEnter, Action[T]{Func: fn, Args: args})
	return n
}

// Update appends a per-tick action to a node
func (n *Node[T]) Update(fn ActionFunc[T], args any) *Node[T] {
	n.OnUpdate = append(n.OnUpdate, Action[T]{Func: fn, Args: args})
	return n
}

// Exit appends an exit action to a node
func (n *Node[T]) Exit(fn ActionFunc[T], args any) *Node[T] {
	n.OnExit = append(n.OnExit, Action[T]{Func: fn, Args: args})
	return n
}

// Compile calculates the Path slice for every node in the graph
// Must be called after all nodes are added and before Init
func (m *Machine[T]) Compile() error {
	for id, node := range m.nodes {
		path := make([]StateID, 0, 4)
		curr := node

		// Walk up to root
		for {
			path = append(path, curr.ID)
			if curr.ParentID == StateNone {
				break
			}
			parent, ok := m.nodes[curr.ParentID]
			if !ok {
				return fmt.Errorf("node %d references missing parent %d", id, curr.ParentID)
			}
			if len(path) > len(m.nodes) {
				return fmt.Errorf("node %d has a cyclic parent chain", id)
			}
			curr = parent
		}

		// Reverse to get [Root, ..., Leaf]
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}

		node.Path = path
	}

	for _, node := range m.nodes {
		for _, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("node %d transitions to missing state %d", node.ID, t.TargetID)
			}
		}
	}

	m.compiled = true
	return nil
}
