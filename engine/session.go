package engine

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/engine/fsm"
	"github.com/lixenwraith/tubby-terrors/event"
	"github.com/lixenwraith/tubby-terrors/status"
)

// Session FSM states
const (
	StateIdle fsm.StateID = iota + 2
	StateSession
	StatePlaying
	StateCaught
	StateWon
)

// newSessionMachine builds the session graph
//
//	root
//	├── idle
//	└── session (ambient audio lifetime)
//	    ├── playing
//	    ├── caught  → idle after CaughtDuration
//	    └── won     → playing on start
func newSessionMachine() (*fsm.Machine[*World], error) {
	m := fsm.NewMachine[*World]()

	m.AddState(fsm.StateRoot, "root", fsm.StateNone)
	m.AddState(StateIdle, "idle", fsm.StateRoot).
		Enter(enterIdle, nil)
	m.AddState(StateSession, "session", fsm.StateRoot).
		Enter(emit, event.EventAmbientStart).
		Exit(emit, event.EventAmbientStop)
	m.AddState(StatePlaying, "playing", StateSession).
		Enter(enterPlaying, nil)
	m.AddState(StateCaught, "caught", StateSession).
		Enter(enterCaught, nil).
		Exit(exitCaught, nil)
	m.AddState(StateWon, "won", StateSession).
		Enter(enterWon, nil)

	type T = fsm.Transition[*World]

	m.AddTransition(StateIdle, T{TargetID: StatePlaying, Event: event.EventGameStart})
	m.AddTransition(StateWon, T{TargetID: StatePlaying, Event: event.EventGameStart})
	m.AddTransition(StatePlaying, T{
		TargetID: StateCaught,
		Event:    event.EventPursuerCatch,
		Guard:    fsm.When(func(w *World) bool { return !w.Session.Jumpscare }),
	})
	m.AddTransition(StatePlaying, T{
		TargetID: StateWon,
		Event:    event.EventAllCollected,
		Guard:    fsm.When(func(w *World) bool { return w.Session.Collected == w.Session.Max }),
	})
	m.AddTransition(StateCaught, T{
		TargetID: StateIdle,
		Guard:    fsm.StateTimeExceeds[*World](constant.CaughtDuration),
	})

	m.InitialStateID = StateIdle
	if err := m.Compile(); err != nil {
		return nil, err
	}
	return m, nil
}

func emit(w *World, args any) {
	w.Events.Emit(args.(event.EventType), nil)
}

func setPhase(w *World, to component.Phase) {
	from := w.Session.Phase
	w.Session.Phase = to
	w.Status.Strings.Get(status.KeyPhase).Store(to.String())
	w.Events.Emit(event.EventPhaseChange, event.PhaseChangePayload{From: from, To: to})
}

// enterIdle replaces the session wholesale; the new generation orphans in-flight reactions
func enterIdle(w *World, _ any) {
	w.Session = component.Session{
		Generation: w.Session.Generation + 1,
		Phase:      w.Session.Phase,
		Max:        constant.MaxPickups,
	}
	w.Pursuer.Proximity = 0
	setPhase(w, component.PhaseIdle)
}

func enterPlaying(w *World, _ any) {
	w.Session = component.Session{
		ID:         uuid.New(),
		Generation: w.Session.Generation + 1,
		Phase:      w.Session.Phase,
		Max:        constant.MaxPickups,
	}
	for _, s := range w.systems {
		if r, ok := s.(SessionResetter); ok {
			r.ResetSession(w)
		}
	}
	w.Session.Collected = w.CollectedCount()
	// The fresh Session dropped any earlier message; the start banner replaces it with its own window
	w.SetMessage(constant.StartMessage)
	w.Status.Ints.Get(status.KeySessions).Add(1)
	setPhase(w, component.PhasePlaying)
}

func enterCaught(w *World, _ any) {
	w.Session.Jumpscare = true
	w.Pursuer.Proximity = 0
	w.Status.Ints.Get(status.KeyCatches).Add(1)
	w.Events.Emit(event.EventScream, nil)
	setPhase(w, component.PhaseCaught)
}

func exitCaught(w *World, _ any) {
	w.Session.Jumpscare = false
}

func enterWon(w *World, _ any) {
	w.Pursuer.Proximity = 0
	w.Status.Ints.Get(status.KeyWins).Add(1)
	setPhase(w, component.PhaseWon)
}
