package event

import "github.com/lixenwraith/tubby-terrors/component"

// CatchPayload carries the planar distance at which the catch fired
type CatchPayload struct {
	Distance float64
}

// PhaseChangePayload describes a session phase transition
type PhaseChangePayload struct {
	From component.Phase
	To   component.Phase
}

// PickupCollectedPayload describes one collection
type PickupCollectedPayload struct {
	ID         string
	Count      int
	Max        int
	Generation uint64
}

// NarrativeKind selects which narrative text a request or delivery is for
type NarrativeKind uint8

const (
	NarrativeLore NarrativeKind = iota
	NarrativeReaction
)

// NarrativeRequestPayload asks for narrative text bound to a session generation
type NarrativeRequestPayload struct {
	Kind       NarrativeKind
	Count      int
	Generation uint64
}

// NarrativePayload is narrative text bound to the session generation that asked for it
type NarrativePayload struct {
	Kind       NarrativeKind
	Generation uint64
	Text       string
}

// FootstepPayload selects footstep timbre and stereo side
type FootstepPayload struct {
	Sprint bool
	Pan    float64
}

// ProximityPayload carries the chase proximity ratio in [0,1]
type ProximityPayload struct {
	Value   float64
	Chasing bool
}

// VolumePayload carries category volumes in [0,1]
type VolumePayload struct {
	Music   float64
	Effects float64
}
