package fsm

import (
	"time"

	"github.com/lixenwraith/tubby-terrors/event"
)

type StateID int

// StateNone marks "no state"; StateRoot is the conventional top of the tree
const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is a hierarchical state machine over a context of type T
// It is not safe for concurrent use
type Machine[T any] struct {
	nodes    map[StateID]*Node[T]
	compiled bool

	// InitialStateID is the leaf entered by Init and Reset
	InitialStateID StateID

	activeStateID StateID
	activePath    []StateID // root first, active leaf last
	timeInState   time.Duration
}

// Node is one state; leaves are active, inner nodes group shared behavior
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID
	Path     []StateID // filled by Compile, root first

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Checked in insertion order; the first match wins
	Transitions []Transition[T]
}

// Transition moves to TargetID when Event arrives and Guard passes
// Event EventNone makes it a tick transition evaluated every Update
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType
	Guard    GuardFunc[T]
}

type Action[T any] struct {
	Func ActionFunc[T]
	Args any
}

type GuardFunc[T any] func(ctx T, m *Machine[T]) bool

type ActionFunc[T any] func(ctx T, args any)
