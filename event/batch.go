package event

// Batch is the side-effect list of one simulation step
// Single goroutine; the caller drains it after Step returns
type Batch struct {
	events []GameEvent
	frame  int64
}

// SetFrame stamps subsequently emitted events with frame
func (b *Batch) SetFrame(frame int64) {
	b.frame = frame
}

// Emit appends an event
func (b *Batch) Emit(t EventType, payload any) {
	b.events = append(b.events, GameEvent{Type: t, Payload: payload, Frame: b.frame})
}

// Drain returns the collected events and resets the batch
// Returned slice is owned by the caller
func (b *Batch) Drain() []GameEvent {
	out := b.events
	b.events = nil
	return out
}

// Len returns the number of pending events
func (b *Batch) Len() int {
	return len(b.events)
}

// Has reports whether an event of type t is pending
func (b *Batch) Has(t EventType) bool {
	for i := range b.events {
		if b.events[i].Type == t {
			return true
		}
	}
	return false
}

// Since returns events emitted at or after index mark
// The returned slice aliases the batch and is only valid until the next Emit
func (b *Batch) Since(mark int) []GameEvent {
	if mark >= len(b.events) {
		return nil
	}
	return b.events[mark:]
}
