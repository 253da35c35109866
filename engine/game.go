package engine

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/event"
	"github.com/lixenwraith/tubby-terrors/input"
	"github.com/lixenwraith/tubby-terrors/status"
)

// AudioSink is the audio surface the frame loop drives
// Implementations must tolerate every call before Activate succeeds
type AudioSink interface {
	Activate() error
	SetVolumes(music, effects float64)
	SetAmbient(on bool)
	PlayFootstep(sprint bool, pan float64)
	SetProximity(p float64)
	PlayScream()
}

// Narrator supplies flavor text; both calls return a usable string even on failure
type Narrator interface {
	FetchIntroLore(ctx context.Context) string
	FetchReactionMessage(ctx context.Context, collected int) string
}

// GameConfig wires the frame driver collaborators
// Nil Audio or Narrator disables that collaborator
type GameConfig struct {
	Audio         AudioSink
	Narrator      Narrator
	Clock         Clock
	FrameInterval time.Duration
	MaxInflight   int64
}

// Game drives a Simulation from a ticker, feeding input and applying side effects
type Game struct {
	sim      *Simulation
	tracker  *input.Tracker
	audio    AudioSink
	narrator Narrator
	clock    Clock
	interval time.Duration

	inputs  chan input.Event
	intents chan input.Intent

	// Narrative results arrive from goroutines and are applied at frame boundaries
	queue    *event.Queue
	sem      *semaphore.Weighted
	inflight sync.WaitGroup

	snapshot    atomic.Pointer[Snapshot]
	subscribers []func(*Snapshot)

	audioActivated bool
	lastTick       time.Time

	statRequests  *atomic.Int64
	statStale     *atomic.Int64
	statPickups   *atomic.Int64
	statAudioLive *atomic.Bool
	statSilent    *atomic.Bool
}

// NewGame creates a frame driver for sim
func NewGame(sim *Simulation, cfg GameConfig) *Game {
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = constant.FrameUpdateInterval
	}
	if cfg.MaxInflight <= 0 {
		cfg.MaxInflight = 2
	}

	reg := sim.world.Status
	g := &Game{
		sim:           sim,
		tracker:       input.NewTracker(nil),
		audio:         cfg.Audio,
		narrator:      cfg.Narrator,
		clock:         cfg.Clock,
		interval:      cfg.FrameInterval,
		inputs:        make(chan input.Event, constant.InputChannelSize),
		intents:       make(chan input.Intent, constant.InputChannelSize),
		queue:         event.NewQueue(),
		sem:           semaphore.NewWeighted(cfg.MaxInflight),
		statRequests:  reg.Ints.Get(status.KeyNarrativeRequests),
		statStale:     reg.Ints.Get(status.KeyNarrativeStale),
		statPickups:   reg.Ints.Get(status.KeyPickups),
		statAudioLive: reg.Bools.Get(status.KeyAudioActive),
		statSilent:    reg.Bools.Get(status.KeyAudioSilent),
	}
	if g.audio == nil {
		g.statSilent.Store(true)
	}
	g.snapshot.Store(sim.Snapshot())
	return g
}

// Inputs is the raw device event channel for frontends
func (g *Game) Inputs() chan<- input.Event {
	return g.inputs
}

// Intents is the discrete action channel for frontends
func (g *Game) Intents() chan<- input.Intent {
	return g.intents
}

// Subscribe registers fn to receive every frame snapshot
// Must be called before Run; fn runs on the frame goroutine and must not block
func (g *Game) Subscribe(fn func(*Snapshot)) {
	g.subscribers = append(g.subscribers, fn)
}

// Snapshot returns the latest published frame
func (g *Game) Snapshot() *Snapshot {
	return g.snapshot.Load()
}

// Run drives frames until ctx is cancelled
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.lastTick = g.clock.Now()

	for {
		select {
		case <-ctx.Done():
			g.inflight.Wait()
			return nil

		case ev := <-g.inputs:
			g.HandleInput(ev)

		case it := <-g.intents:
			g.HandleIntent(it)

		case <-ticker.C:
			now := g.clock.Now()
			dt := now.Sub(g.lastTick)
			g.lastTick = now
			g.Advance(ctx, dt)
		}
	}
}

// HandleInput feeds one raw event to the tracker
// The first gesture unlocks audio
func (g *Game) HandleInput(ev input.Event) {
	if ev.IsGesture() {
		g.activateAudio()
	}
	g.tracker.Apply(ev)
}

// HandleIntent applies a discrete action between frames
func (g *Game) HandleIntent(it input.Intent) {
	switch it.Type {
	case input.IntentStart, input.IntentRestart, input.IntentOpenSettings:
		g.activateAudio()
	}
	if !g.sim.Dispatch(it) {
		log.Printf("intent %d ignored in phase %s", it.Type, g.sim.Phase())
	}
}

// Advance runs one frame of dt: async deliveries, simulation step, side effects, publication
func (g *Game) Advance(ctx context.Context, dt time.Duration) *Snapshot {
	for _, ev := range g.queue.Consume() {
		if p, ok := ev.Payload.(event.NarrativePayload); ok {
			if !g.sim.DeliverNarrative(p) {
				g.statStale.Add(1)
			}
		}
	}

	events := g.sim.Step(g.tracker.Sample(), dt)
	g.apply(ctx, events)

	snap := g.sim.Snapshot()
	g.snapshot.Store(snap)
	for _, fn := range g.subscribers {
		fn(snap)
	}
	return snap
}

// apply routes step side effects to collaborators
func (g *Game) apply(ctx context.Context, events []event.GameEvent) {
	var reaction *event.PickupCollectedPayload

	for _, ev := range events {
		switch ev.Type {
		case event.EventFootstep:
			if p, ok := ev.Payload.(event.FootstepPayload); ok && g.audio != nil {
				g.audio.PlayFootstep(p.Sprint, p.Pan)
			}
		case event.EventProximity:
			if p, ok := ev.Payload.(event.ProximityPayload); ok && g.audio != nil {
				g.audio.SetProximity(p.Value)
			}
		case event.EventScream:
			if g.audio != nil {
				g.audio.PlayScream()
			}
		case event.EventAmbientStart:
			if g.audio != nil {
				g.audio.SetAmbient(true)
			}
		case event.EventAmbientStop:
			if g.audio != nil {
				g.audio.SetAmbient(false)
				g.audio.SetProximity(0)
			}
		case event.EventVolumeChange:
			if p, ok := ev.Payload.(event.VolumePayload); ok && g.audio != nil {
				g.audio.SetVolumes(p.Music, p.Effects)
			}
		case event.EventPickupCollected:
			if p, ok := ev.Payload.(event.PickupCollectedPayload); ok {
				g.statPickups.Add(1)
				// One request per frame; a later reply would replace an earlier one anyway
				reaction = &p
			}
		case event.EventLoreRequest:
			g.request(ctx, event.NarrativeRequestPayload{Kind: event.NarrativeLore})
		case event.EventPhaseChange:
			if p, ok := ev.Payload.(event.PhaseChangePayload); ok && p.From != p.To {
				log.Printf("session %s -> %s", p.From, p.To)
			}
		}
	}

	if reaction != nil {
		g.request(ctx, event.NarrativeRequestPayload{
			Kind:       event.NarrativeReaction,
			Count:      reaction.Count,
			Generation: reaction.Generation,
		})
	}
}

// request fetches narrative text on a background goroutine, bounded by the semaphore
func (g *Game) request(ctx context.Context, req event.NarrativeRequestPayload) {
	if g.narrator == nil {
		return
	}
	g.statRequests.Add(1)
	g.inflight.Add(1)
	go func() {
		defer g.inflight.Done()
		if err := g.sem.Acquire(ctx, 1); err != nil {
			return
		}
		defer g.sem.Release(1)

		var text string
		switch req.Kind {
		case event.NarrativeLore:
			text = g.narrator.FetchIntroLore(ctx)
		case event.NarrativeReaction:
			text = g.narrator.FetchReactionMessage(ctx, req.Count)
		}
		ok := g.queue.Push(event.GameEvent{
			Type:    event.EventNarrativeDelivered,
			Payload: event.NarrativePayload{Kind: req.Kind, Generation: req.Generation, Text: text},
		})
		if !ok {
			log.Printf("narrative %d result dropped: delivery queue full", req.Kind)
		}
	}()
}

// WaitNarrative blocks until in-flight narrative requests finish
func (g *Game) WaitNarrative() {
	g.inflight.Wait()
}

// activateAudio lazily unlocks audio on the first gesture
func (g *Game) activateAudio() {
	if g.audioActivated || g.audio == nil {
		return
	}
	g.audioActivated = true

	if err := g.audio.Activate(); err != nil {
		log.Printf("audio unavailable, continuing silent: %v", err)
		g.statSilent.Store(true)
		return
	}
	g.statAudioLive.Store(true)

	settings := g.sim.world.Settings
	g.audio.SetVolumes(settings.MusicVolume, settings.EffectsVolume)
	if g.sim.Phase() != component.PhaseIdle {
		g.audio.SetAmbient(true)
	}
}
