package event

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero type; FSM tick transitions use it
	EventNone EventType = iota

	// === Session Event ===

	// EventGameStart begins a fresh session
	// Trigger: start or restart intent
	// Consumer: session FSM | Payload: nil
	EventGameStart

	// EventPursuerCatch reports the pursuer reaching the avatar
	// Trigger: pursuer step, once per approach
	// Consumer: session FSM | Payload: CatchPayload
	EventPursuerCatch

	// EventAllCollected reports the final pickup being taken
	// Trigger: pickup step
	// Consumer: session FSM | Payload: nil
	EventAllCollected

	// EventPhaseChange reports a session phase transition
	// Trigger: session FSM enter actions
	// Consumer: Game, metrics | Payload: PhaseChangePayload
	EventPhaseChange

	// EventPickupCollected reports a single collection
	// Trigger: pickup step
	// Consumer: Game narrative dispatch | Payload: PickupCollectedPayload
	EventPickupCollected

	// === Narrative Event ===

	// EventLoreRequest asks for intro lore for the idle screen
	// Trigger: session FSM entering idle
	// Consumer: Game narrative dispatch | Payload: NarrativeRequestPayload
	EventLoreRequest

	// EventNarrativeDelivered carries text back from the narrative service
	// Trigger: narrative dispatcher goroutine via Queue
	// Consumer: Game, applied at frame boundary | Payload: NarrativePayload
	EventNarrativeDelivered

	// === Audio Event ===

	// EventFootstep requests one footstep burst
	// Trigger: locomotion bob zero-crossing
	// Consumer: audio engine | Payload: FootstepPayload
	EventFootstep

	// EventProximity carries the chase proximity ratio every playing frame
	// Trigger: pursuer step
	// Consumer: audio engine | Payload: ProximityPayload
	EventProximity

	// EventScream requests the jumpscare cue
	// Trigger: session FSM entering caught
	// Consumer: audio engine | Payload: nil
	EventScream

	// EventAmbientStart fades the ambient drone in
	// Trigger: session FSM entering playing
	// Consumer: audio engine | Payload: nil
	EventAmbientStart

	// EventAmbientStop fades every continuous layer to silence
	// Trigger: session FSM leaving the session
	// Consumer: audio engine | Payload: nil
	EventAmbientStop

	// EventVolumeChange reports new music/effects volumes
	// Trigger: settings intents
	// Consumer: audio engine | Payload: VolumePayload
	EventVolumeChange
)

var eventNames = map[EventType]string{
	EventNone:               "none",
	EventGameStart:          "game_start",
	EventPursuerCatch:       "pursuer_catch",
	EventAllCollected:       "all_collected",
	EventPhaseChange:        "phase_change",
	EventPickupCollected:    "pickup_collected",
	EventLoreRequest:        "lore_request",
	EventNarrativeDelivered: "narrative_delivered",
	EventFootstep:           "footstep",
	EventProximity:          "proximity",
	EventScream:             "scream",
	EventAmbientStart:       "ambient_start",
	EventAmbientStop:        "ambient_stop",
	EventVolumeChange:       "volume_change",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
