package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/input"
)

type fakeLink struct {
	inputs  chan input.Event
	intents chan input.Intent
	snap    *engine.Snapshot
}

func newFakeLink() *fakeLink {
	return &fakeLink{
		inputs:  make(chan input.Event, 32),
		intents: make(chan input.Intent, 32),
		snap:    &engine.Snapshot{Phase: "playing", Max: 10},
	}
}

func (l *fakeLink) Inputs() chan<- input.Event   { return l.inputs }
func (l *fakeLink) Intents() chan<- input.Intent { return l.intents }
func (l *fakeLink) Snapshot() *engine.Snapshot   { return l.snap }

func (l *fakeLink) drain() []input.Event {
	var out []input.Event
	for {
		select {
		case ev := <-l.inputs:
			out = append(out, ev)
		default:
			return out
		}
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestFrontend(t *testing.T) (*Frontend, *fakeLink, *fakeClock) {
	t.Helper()
	link := newFakeLink()
	clock := &fakeClock{t: time.Unix(1000, 0)}
	f := NewFrontend(newSimScreen(t), link)
	f.now = clock.now
	return f, link, clock
}

func TestFrontendSprintHoldAndRelease(t *testing.T) {
	f, link, clock := newTestFrontend(t)
	ctx := context.Background()

	f.Handle(ctx, runeKey('W'))
	got := link.drain()
	if len(got) != 2 || got[0].Code != input.KeyShiftLeft || got[1].Code != input.KeyW {
		t.Fatalf("Expected shift then W down, got %+v", got)
	}
	for _, ev := range got {
		if ev.Kind != input.EventKeyDown {
			t.Errorf("Expected key down, got %+v", ev)
		}
	}

	clock.advance(500 * time.Millisecond)
	f.Handle(ctx, runeKey('W'))
	if got := link.drain(); len(got) != 0 {
		t.Errorf("Expected repeats to be silent, got %+v", got)
	}

	clock.advance(100 * time.Millisecond)
	f.Tick(ctx)
	if got := link.drain(); len(got) != 0 {
		t.Errorf("Expected keys held inside repeat window, got %+v", got)
	}

	clock.advance(50 * time.Millisecond)
	f.Tick(ctx)
	got = link.drain()
	if len(got) != 2 {
		t.Fatalf("Expected two releases, got %+v", got)
	}
	for _, ev := range got {
		if ev.Kind != input.EventKeyUp {
			t.Errorf("Expected key up, got %+v", ev)
		}
	}
}

func TestFrontendWalkDropsSprint(t *testing.T) {
	f, link, _ := newTestFrontend(t)
	ctx := context.Background()

	f.Handle(ctx, runeKey('D'))
	link.drain()

	f.Handle(ctx, runeKey('d'))
	got := link.drain()
	if len(got) != 1 || got[0].Kind != input.EventKeyUp || got[0].Code != input.KeyShiftLeft {
		t.Errorf("Expected only shift release, got %+v", got)
	}
}

func TestFrontendInteractTap(t *testing.T) {
	f, link, _ := newTestFrontend(t)

	f.Handle(context.Background(), runeKey('e'))
	got := link.drain()
	if len(got) != 2 || got[0].Kind != input.EventKeyDown || got[1].Kind != input.EventKeyUp || got[0].Code != input.KeyE {
		t.Errorf("Expected E down then up, got %+v", got)
	}

	tracker := input.NewTracker(nil)
	for _, ev := range got {
		tracker.Apply(ev)
	}
	if !tracker.Sample().Interact {
		t.Error("Expected tap to register an interact edge")
	}
}

func TestFrontendIntentsAndQuit(t *testing.T) {
	f, link, _ := newTestFrontend(t)
	ctx := context.Background()
	link.snap = &engine.Snapshot{Phase: "won"}

	if f.Handle(ctx, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Fatal("Expected Enter not to quit")
	}
	select {
	case it := <-link.intents:
		if it.Type != input.IntentRestart {
			t.Errorf("Expected restart, got %+v", it)
		}
	default:
		t.Error("Expected an intent")
	}

	if !f.Handle(ctx, runeKey('q')) {
		t.Error("Expected q to quit")
	}
}

func TestFrontendMouseInteract(t *testing.T) {
	f, link, _ := newTestFrontend(t)
	ctx := context.Background()

	f.Handle(ctx, tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone))
	f.Handle(ctx, tcell.NewEventMouse(6, 5, tcell.Button1, tcell.ModNone))
	f.Handle(ctx, tcell.NewEventMouse(6, 5, tcell.ButtonNone, tcell.ModNone))

	got := link.drain()
	if len(got) != 2 || got[0].Kind != input.EventPointerDown || got[1].Kind != input.EventPointerUp {
		t.Errorf("Expected pointer down then up, got %+v", got)
	}
}

func TestFrontendRunStopsOnQuit(t *testing.T) {
	link := newFakeLink()
	s := newSimScreen(t)
	f := NewFrontend(s, link)

	done := make(chan error, 1)
	go func() { done <- f.Run(context.Background()) }()

	s.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil from Run, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on quit")
	}

	got := link.drain()
	if len(got) != 2 || got[0].Kind != input.EventKeyDown || got[1].Kind != input.EventKeyUp {
		t.Errorf("Expected W pressed then released on quit, got %+v", got)
	}
}
