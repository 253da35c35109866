package engine

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/event"
	"github.com/lixenwraith/tubby-terrors/input"
	"github.com/lixenwraith/tubby-terrors/status"
)

// System is a per-frame simulation step
type System interface {
	Name() string
	Priority() int // Lower values run first
	Update(w *World)
}

// SessionResetter is implemented by systems that own per-session state
// ResetSession runs when a new session starts
type SessionResetter interface {
	ResetSession(w *World)
}

// World holds all simulation state
// Single-threaded: only the frame loop touches it
type World struct {
	Avatar   component.Avatar
	Pursuer  component.Pursuer
	Pickups  []component.Pickup
	Session  component.Session
	Settings component.Settings

	// Lore outlives sessions; fetched once per process
	Lore string

	// Per-step inputs and outputs
	Input  input.Frame
	Events event.Batch

	Rand   *rand.Rand
	Status *status.Registry

	DeltaTime   time.Duration
	GameTime    time.Duration
	FrameNumber int64

	systems []System
}

// NewWorld creates a world seeded for reproducible pickup and patrol placement
func NewWorld(seed uint64, reg *status.Registry) *World {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &World{
		Session: component.Session{Max: constant.MaxPickups},
		Settings: component.Settings{
			MusicVolume:   constant.DefaultMusicVolume,
			EffectsVolume: constant.DefaultEffectsVolume,
		},
		Lore:   constant.LoreLoadingText,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Status: reg,
	}
}

// AddSystem registers a system, keeping priority order
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns registered systems in run order
func (w *World) Systems() []System {
	return w.systems
}

// Delta returns the step delta in seconds
func (w *World) Delta() float64 {
	return w.DeltaTime.Seconds()
}

// Playing reports whether the simulation is live
func (w *World) Playing() bool {
	return w.Session.Phase == component.PhasePlaying
}

// SetMessage shows text for the transient message window, replacing any current message
func (w *World) SetMessage(text string) {
	w.Session.Message = text
	w.Session.MessageExpiry = w.GameTime + constant.MessageDuration
}

// CollectedCount counts collected pickups
func (w *World) CollectedCount() int {
	n := 0
	for i := range w.Pickups {
		if w.Pickups[i].Collected {
			n++
		}
	}
	return n
}
