package input

// MoveState is the level-triggered movement input
type MoveState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Sprint   bool
}

// Any reports whether a direction key is held
func (m MoveState) Any() bool {
	return m.Forward || m.Backward || m.Left || m.Right
}

// Frame is one per-frame sample of the tracker
// Interact is true only on the frame following a press edge
type Frame struct {
	Move     MoveState
	Interact bool
	LookDX   float64
	LookDY   float64
}

// Tracker converts raw events into persistent movement state
// Not safe for concurrent use; the frame loop owns it and feeds events between steps
type Tracker struct {
	table *KeyTable

	move MoveState

	interactHeld bool
	interactEdge bool
	pointerHeld  bool

	lookDX float64
	lookDY float64
}

// NewTracker creates a tracker using table, or the default bindings when nil
func NewTracker(table *KeyTable) *Tracker {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Tracker{table: table}
}

// Apply routes a raw event to the matching handler
func (t *Tracker) Apply(ev Event) {
	switch ev.Kind {
	case EventKeyDown:
		t.KeyDown(ev.Code)
	case EventKeyUp:
		t.KeyUp(ev.Code)
	case EventPointerDown:
		t.PointerDown()
	case EventPointerUp:
		t.PointerUp()
	case EventLook:
		t.Look(ev.DX, ev.DY)
	}
}

// KeyDown sets the bound flag; repeats are idempotent
func (t *Tracker) KeyDown(code KeyCode) {
	t.set(t.table.Lookup(code), true)
}

// KeyUp clears the bound flag regardless of how many repeats preceded it
func (t *Tracker) KeyUp(code KeyCode) {
	t.set(t.table.Lookup(code), false)
}

// PointerDown is the primary click, treated as interact
func (t *Tracker) PointerDown() {
	if !t.pointerHeld && !t.interactHeld {
		t.interactEdge = true
	}
	t.pointerHeld = true
}

// PointerUp releases the primary click
func (t *Tracker) PointerUp() {
	t.pointerHeld = false
}

// Look accumulates pointer movement until the next Sample
func (t *Tracker) Look(dx, dy float64) {
	t.lookDX += dx
	t.lookDY += dy
}

func (t *Tracker) set(c Control, down bool) {
	switch c {
	case ControlForward:
		t.move.Forward = down
	case ControlBackward:
		t.move.Backward = down
	case ControlLeft:
		t.move.Left = down
	case ControlRight:
		t.move.Right = down
	case ControlSprint:
		t.move.Sprint = down
	case ControlInteract:
		if down && !t.interactHeld && !t.pointerHeld {
			t.interactEdge = true
		}
		t.interactHeld = down
	}
}

// State returns the held movement flags
func (t *Tracker) State() MoveState {
	return t.move
}

// Sample returns the current frame input and consumes the interact edge and look deltas
func (t *Tracker) Sample() Frame {
	f := Frame{
		Move:     t.move,
		Interact: t.interactEdge,
		LookDX:   t.lookDX,
		LookDY:   t.lookDY,
	}
	t.interactEdge = false
	t.lookDX, t.lookDY = 0, 0
	return f
}
