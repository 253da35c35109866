package input

// EventKind discriminates raw input events
type EventKind uint8

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventPointerDown
	EventPointerUp
	EventLook
)

// Event is a raw device event forwarded by a frontend
type Event struct {
	Kind EventKind
	Code KeyCode
	// DX, DY are pointer-lock movement deltas for EventLook
	DX, DY float64
}

// IsGesture reports whether the event counts as a user gesture for audio unlocking
func (e Event) IsGesture() bool {
	return e.Kind == EventKeyDown || e.Kind == EventPointerDown
}
