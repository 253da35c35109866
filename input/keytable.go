package input

// KeyCode names a physical key using the browser KeyboardEvent.code vocabulary
// Frontends translate their native keys into these codes
type KeyCode string

const (
	KeyW          KeyCode = "KeyW"
	KeyA          KeyCode = "KeyA"
	KeyS          KeyCode = "KeyS"
	KeyD          KeyCode = "KeyD"
	KeyE          KeyCode = "KeyE"
	KeyShiftLeft  KeyCode = "ShiftLeft"
	KeyShiftRight KeyCode = "ShiftRight"
	KeySpace      KeyCode = "Space"
)

// Control is a tracked movement or interaction flag
type Control uint8

const (
	ControlNone Control = iota
	ControlForward
	ControlBackward
	ControlLeft
	ControlRight
	ControlSprint
	ControlInteract
)

// KeyTable maps key codes to controls
type KeyTable struct {
	Keys map[KeyCode]Control
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[KeyCode]Control{
			KeyW:         ControlForward,
			KeyS:         ControlBackward,
			KeyA:         ControlLeft,
			KeyD:         ControlRight,
			KeyShiftLeft: ControlSprint,
			KeyE:         ControlInteract,
		},
	}
}

// Lookup returns the control bound to code, ControlNone if unbound
func (kt *KeyTable) Lookup(code KeyCode) Control {
	return kt.Keys[code]
}
