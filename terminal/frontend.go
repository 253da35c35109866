package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/input"
)

// GameLink is the frame driver surface the terminal talks to
type GameLink interface {
	Inputs() chan<- input.Event
	Intents() chan<- input.Intent
	Snapshot() *engine.Snapshot
}

// Frontend renders the game in a terminal and forwards keyboard and mouse input
type Frontend struct {
	screen   tcell.Screen
	renderer *Renderer
	holds    *HoldTracker
	link     GameLink
	now      func() time.Time

	pointerHeld bool
}

// NewScreen creates and initializes the host terminal screen
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	return screen, nil
}

// NewFrontend wires an initialized screen to the game
func NewFrontend(screen tcell.Screen, link GameLink) *Frontend {
	screen.SetStyle(tcell.StyleDefault.Background(RgbBackground))
	screen.EnableMouse()
	screen.HideCursor()
	return &Frontend{
		screen:   screen,
		renderer: NewRenderer(screen),
		holds:    NewHoldTracker(),
		link:     link,
		now:      time.Now,
	}
}

// Run draws and polls input until quit or ctx is cancelled
// Returns nil on either; the caller treats return as a request to stop the game
func (f *Frontend) Run(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			// Restore the terminal so the trace is readable
			f.screen.Fini()
			panic(r)
		}
	}()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			// Returns nil once the screen is finalized
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(constant.TerminalFrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if f.Handle(ctx, ev) {
				f.releaseAll(ctx)
				return nil
			}

		case <-ticker.C:
			f.Tick(ctx)
		}
	}
}

// Tick releases expired holds and redraws the latest snapshot
func (f *Frontend) Tick(ctx context.Context) {
	for _, code := range f.holds.Expire(f.now()) {
		f.send(ctx, input.Event{Kind: input.EventKeyUp, Code: code})
	}
	f.renderer.Draw(f.link.Snapshot())
}

// Handle processes one terminal event, returning true on quit
func (f *Frontend) Handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return f.handleKey(ctx, ev)
	case *tcell.EventMouse:
		f.handleMouse(ctx, ev)
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return false
}

func (f *Frontend) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	act := Translate(ev, f.link.Snapshot())
	now := f.now()

	switch act.Kind {
	case ActionQuit:
		return true

	case ActionMove:
		if act.Sprint {
			f.press(ctx, input.KeyShiftLeft, now)
		} else if f.holds.Release(input.KeyShiftLeft) {
			f.send(ctx, input.Event{Kind: input.EventKeyUp, Code: input.KeyShiftLeft})
		}
		f.press(ctx, act.Code, now)

	case ActionInteract:
		// Tap: the tracker latches the press edge until the next frame samples it
		f.send(ctx, input.Event{Kind: input.EventKeyDown, Code: act.Code})
		f.send(ctx, input.Event{Kind: input.EventKeyUp, Code: act.Code})

	case ActionLook:
		f.send(ctx, input.Event{Kind: input.EventLook, DX: act.DX, DY: act.DY})

	case ActionIntent:
		select {
		case f.link.Intents() <- act.Intent:
		case <-ctx.Done():
		}
	}
	return false
}

func (f *Frontend) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !f.pointerHeld:
		f.pointerHeld = true
		f.send(ctx, input.Event{Kind: input.EventPointerDown})
	case !down && f.pointerHeld:
		f.pointerHeld = false
		f.send(ctx, input.Event{Kind: input.EventPointerUp})
	}
}

func (f *Frontend) press(ctx context.Context, code input.KeyCode, now time.Time) {
	if f.holds.Press(code, now) {
		f.send(ctx, input.Event{Kind: input.EventKeyDown, Code: code})
	}
}

func (f *Frontend) releaseAll(ctx context.Context) {
	for _, code := range f.holds.ReleaseAll() {
		f.send(ctx, input.Event{Kind: input.EventKeyUp, Code: code})
	}
}

func (f *Frontend) send(ctx context.Context, ev input.Event) {
	select {
	case f.link.Inputs() <- ev:
	case <-ctx.Done():
	}
}
