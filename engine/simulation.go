package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/engine/fsm"
	"github.com/lixenwraith/tubby-terrors/event"
	"github.com/lixenwraith/tubby-terrors/input"
	"github.com/lixenwraith/tubby-terrors/status"
	"github.com/lixenwraith/tubby-terrors/vmath"
)

// Simulation is the frame-stepped game core: world state plus the session state machine
// Step is the only place simulation state advances; callers apply the returned events
type Simulation struct {
	world   *World
	machine *fsm.Machine[*World]

	statFrames    *atomic.Int64
	statProximity *status.AtomicFloat
	statChasing   *atomic.Bool
}

// NewSimulation creates a simulation in Idle
// Systems are registered afterwards with AddSystem and take effect from the next start
func NewSimulation(seed uint64, reg *status.Registry) (*Simulation, error) {
	w := NewWorld(seed, reg)
	m, err := newSessionMachine()
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		world:         w,
		machine:       m,
		statFrames:    w.Status.Ints.Get(status.KeyFrames),
		statProximity: w.Status.Floats.Get(status.KeyProximity),
		statChasing:   w.Status.Bools.Get(status.KeyChasing),
	}

	if err := m.Init(w); err != nil {
		return nil, err
	}
	w.Events.Emit(event.EventLoreRequest, event.NarrativeRequestPayload{Kind: event.NarrativeLore})
	return s, nil
}

// AddSystem registers a per-frame system
func (s *Simulation) AddSystem(sys System) {
	s.world.AddSystem(sys)
}

// World exposes state for tests and read-only presentation
func (s *Simulation) World() *World {
	return s.world
}

// Phase returns the current session phase
func (s *Simulation) Phase() component.Phase {
	return s.world.Session.Phase
}

// Step advances the simulation by one frame and returns its side effects
// dt is clamped to [0, MaxFrameDelta]
func (s *Simulation) Step(in input.Frame, dt time.Duration) []event.GameEvent {
	w := s.world

	if dt < 0 {
		dt = 0
	}
	if dt > constant.MaxFrameDelta {
		dt = constant.MaxFrameDelta
	}

	w.FrameNumber++
	w.DeltaTime = dt
	w.GameTime += dt
	w.Input = in
	w.Events.SetFrame(w.FrameNumber)
	s.statFrames.Add(1)

	s.machine.Update(w, dt)

	if w.Session.Message != "" && w.GameTime >= w.Session.MessageExpiry {
		w.Session.Message = ""
		w.Session.MessageExpiry = 0
	}

	for _, sys := range w.systems {
		if !w.Playing() {
			break
		}
		mark := w.Events.Len()
		sys.Update(w)
		s.route(mark)
	}

	chasing := w.Playing() && w.Pursuer.Mode == component.ModeChase
	proximity := 0.0
	if chasing {
		proximity = w.Pursuer.Proximity
	}
	s.statProximity.Set(proximity)
	s.statChasing.Store(chasing)
	w.Events.Emit(event.EventProximity, event.ProximityPayload{Value: proximity, Chasing: chasing})

	return w.Events.Drain()
}

// route forwards session triggers emitted since mark to the state machine
func (s *Simulation) route(mark int) {
	pending := s.world.Events.Since(mark)
	for _, ev := range pending {
		switch ev.Type {
		case event.EventPursuerCatch, event.EventAllCollected:
			s.machine.HandleEvent(s.world, ev.Type)
		}
	}
}

// Dispatch applies a discrete presentation intent
// Returns false when the intent is not valid in the current state
func (s *Simulation) Dispatch(it input.Intent) bool {
	w := s.world
	switch it.Type {
	case input.IntentStart, input.IntentRestart:
		return s.machine.HandleEvent(w, event.EventGameStart)
	case input.IntentOpenSettings:
		w.Settings.Open = true
		return true
	case input.IntentCloseSettings:
		w.Settings.Open = false
		return true
	case input.IntentMusicVolume:
		w.Settings.MusicVolume = vmath.Clamp(it.Value, 0, 1)
	case input.IntentEffectsVolume:
		w.Settings.EffectsVolume = vmath.Clamp(it.Value, 0, 1)
	default:
		return false
	}
	w.Events.Emit(event.EventVolumeChange, event.VolumePayload{
		Music:   w.Settings.MusicVolume,
		Effects: w.Settings.EffectsVolume,
	})
	return true
}

// DeliverNarrative applies async narrative text at a frame boundary
// Reactions bound to an older session generation are dropped
func (s *Simulation) DeliverNarrative(p event.NarrativePayload) bool {
	w := s.world
	switch p.Kind {
	case event.NarrativeLore:
		w.Lore = p.Text
		return true
	case event.NarrativeReaction:
		if p.Generation != w.Session.Generation || w.Session.Phase == component.PhaseIdle {
			return false
		}
		w.SetMessage(p.Text)
		return true
	}
	return false
}

// Snapshot returns a read-only copy of presentation state
func (s *Simulation) Snapshot() *Snapshot {
	return newSnapshot(s.world)
}
