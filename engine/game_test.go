package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/input"
	"github.com/lixenwraith/tubby-terrors/status"
	"github.com/lixenwraith/tubby-terrors/system"
)

const frame = 16 * time.Millisecond

type fakeAudio struct {
	mu          sync.Mutex
	activateErr error
	activations int
	music       float64
	effects     float64
	ambient     bool
	footsteps   []float64
	proximity   float64
	screams     int
}

func (f *fakeAudio) Activate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activations++
	return f.activateErr
}

func (f *fakeAudio) SetVolumes(music, effects float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.music, f.effects = music, effects
}

func (f *fakeAudio) SetAmbient(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ambient = on
}

func (f *fakeAudio) PlayFootstep(_ bool, pan float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.footsteps = append(f.footsteps, pan)
}

func (f *fakeAudio) SetProximity(p float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.proximity = p
}

func (f *fakeAudio) PlayScream() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screams++
}

type fakeNarrator struct {
	lore     string
	reaction string
	gate     chan struct{} // When set, reactions block until closed

	mu     sync.Mutex
	counts []int
}

func (f *fakeNarrator) FetchIntroLore(context.Context) string {
	return f.lore
}

func (f *fakeNarrator) FetchReactionMessage(ctx context.Context, collected int) string {
	f.mu.Lock()
	f.counts = append(f.counts, collected)
	f.mu.Unlock()
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
		}
	}
	return f.reaction
}

func newGame(t *testing.T, audio *fakeAudio, narrator *fakeNarrator) (*engine.Game, *engine.Simulation) {
	t.Helper()
	sim, err := engine.NewSimulation(11, nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	system.Install(sim)

	var cfg engine.GameConfig
	if audio != nil {
		cfg.Audio = audio
	}
	if narrator != nil {
		cfg.Narrator = narrator
	}
	return engine.NewGame(sim, cfg), sim
}

func TestGameActivatesAudioOnFirstGesture(t *testing.T) {
	fa := &fakeAudio{}
	g, _ := newGame(t, fa, nil)

	g.HandleInput(input.Event{Kind: input.EventLook, DX: 5})
	if fa.activations != 0 {
		t.Fatalf("Expected look not to unlock audio, got %d activations", fa.activations)
	}

	g.HandleInput(input.Event{Kind: input.EventKeyDown, Code: input.KeyW})
	g.HandleInput(input.Event{Kind: input.EventPointerDown})
	if fa.activations != 1 {
		t.Errorf("Expected exactly one activation, got %d", fa.activations)
	}
	if fa.music != constant.DefaultMusicVolume || fa.effects != constant.DefaultEffectsVolume {
		t.Errorf("Expected default volumes applied, got %f/%f", fa.music, fa.effects)
	}
	if fa.ambient {
		t.Error("Expected no ambient bed while idle")
	}
}

func TestGameSilentWhenAudioFails(t *testing.T) {
	fa := &fakeAudio{activateErr: errors.New("no device")}
	g, sim := newGame(t, fa, nil)

	g.HandleIntent(input.Intent{Type: input.IntentStart})
	g.HandleIntent(input.Intent{Type: input.IntentStart})
	snap := g.Advance(context.Background(), frame)

	if fa.activations != 1 {
		t.Errorf("Expected a single activation attempt, got %d", fa.activations)
	}
	if snap.Phase != "playing" {
		t.Errorf("Expected game to proceed silently, got phase %s", snap.Phase)
	}
	if !sim.World().Status.Bools.Get(status.KeyAudioSilent).Load() {
		t.Error("Expected silent mode recorded")
	}
}

func TestGameAudioFollowsSession(t *testing.T) {
	fa := &fakeAudio{}
	g, sim := newGame(t, fa, nil)
	ctx := context.Background()

	g.HandleIntent(input.Intent{Type: input.IntentStart})
	g.Advance(ctx, frame)
	if !fa.ambient {
		t.Fatal("Expected ambient bed during a session")
	}

	w := sim.World()
	w.Pursuer.Position = mgl64.Vec3{45, 0, 45}
	w.Pursuer.PatrolTarget = mgl64.Vec3{45, 0, 45}
	g.HandleInput(input.Event{Kind: input.EventKeyDown, Code: input.KeyW})
	for i := 0; i < 60; i++ {
		g.Advance(ctx, frame)
	}
	if len(fa.footsteps) < 2 {
		t.Fatalf("Expected footsteps while walking, got %d", len(fa.footsteps))
	}
	if fa.footsteps[0] != -fa.footsteps[1] {
		t.Errorf("Expected alternating pan, got %v", fa.footsteps[:2])
	}
	g.HandleInput(input.Event{Kind: input.EventKeyUp, Code: input.KeyW})

	w.Pursuer.Position = w.Avatar.Position.Add(mgl64.Vec3{1, -w.Avatar.Position[1], 0})
	g.Advance(ctx, frame)
	if fa.screams != 1 {
		t.Errorf("Expected one scream on catch, got %d", fa.screams)
	}
	if fa.proximity != 0 {
		t.Errorf("Expected chase layer muted while caught, got %f", fa.proximity)
	}

	for sim.Phase() != component.PhaseIdle {
		g.Advance(ctx, constant.MaxFrameDelta)
	}
	if fa.ambient {
		t.Error("Expected ambient bed stopped in idle")
	}
}

func TestGameVolumeIntents(t *testing.T) {
	fa := &fakeAudio{}
	g, sim := newGame(t, fa, nil)
	ctx := context.Background()

	g.HandleIntent(input.Intent{Type: input.IntentOpenSettings})
	g.HandleIntent(input.Intent{Type: input.IntentMusicVolume, Value: 0.2})
	g.HandleIntent(input.Intent{Type: input.IntentEffectsVolume, Value: 1.5})
	snap := g.Advance(ctx, frame)

	if fa.music != 0.2 || fa.effects != 1 {
		t.Errorf("Expected volumes 0.2/1, got %f/%f", fa.music, fa.effects)
	}
	if !snap.Settings.Open || snap.Settings.MusicVolume != 0.2 || snap.Settings.EffectsVolume != 1 {
		t.Errorf("Expected settings reflected in snapshot, got %+v", snap.Settings)
	}
	if sim.Phase() != component.PhaseIdle {
		t.Errorf("Expected settings not to change phase, got %s", sim.Phase())
	}
}

func TestGameDeliversLore(t *testing.T) {
	fn := &fakeNarrator{lore: "The forest remembers."}
	g, _ := newGame(t, nil, fn)
	ctx := context.Background()

	snap := g.Advance(ctx, frame)
	if snap.Lore != constant.LoreLoadingText {
		t.Errorf("Expected loading text before delivery, got %q", snap.Lore)
	}

	g.WaitNarrative()
	snap = g.Advance(ctx, frame)
	if snap.Lore != "The forest remembers." {
		t.Errorf("Expected lore delivered, got %q", snap.Lore)
	}
}

func TestGameReactionOnPickup(t *testing.T) {
	fn := &fakeNarrator{lore: "lore", reaction: "He is closer now..."}
	g, sim := newGame(t, nil, fn)
	ctx := context.Background()

	g.HandleIntent(input.Intent{Type: input.IntentStart})
	g.Advance(ctx, frame)

	w := sim.World()
	w.Pursuer.Position = mgl64.Vec3{45, 0, 45}
	w.Pickups[0].Position = mgl64.Vec3{w.Avatar.Position[0], 0, w.Avatar.Position[2]}
	g.HandleInput(input.Event{Kind: input.EventKeyDown, Code: input.KeyE})
	snap := g.Advance(ctx, frame)
	if snap.Collected < 1 {
		t.Fatalf("Expected a pickup collected, got %d", snap.Collected)
	}

	g.WaitNarrative()
	snap = g.Advance(ctx, frame)
	if snap.Message != "He is closer now..." {
		t.Errorf("Expected reaction message, got %q", snap.Message)
	}
	fn.mu.Lock()
	defer fn.mu.Unlock()
	if len(fn.counts) != 1 || fn.counts[0] != snap.Collected {
		t.Errorf("Expected one reaction request for count %d, got %v", snap.Collected, fn.counts)
	}
}

func TestGameDropsStaleReaction(t *testing.T) {
	fn := &fakeNarrator{lore: "lore", reaction: "too late", gate: make(chan struct{})}
	g, sim := newGame(t, nil, fn)
	ctx := context.Background()

	g.HandleIntent(input.Intent{Type: input.IntentStart})
	g.Advance(ctx, frame)

	w := sim.World()
	w.Pickups[0].Position = mgl64.Vec3{w.Avatar.Position[0], 0, w.Avatar.Position[2]}
	w.Pursuer.Position = mgl64.Vec3{1, 0, 0}
	g.HandleInput(input.Event{Kind: input.EventKeyDown, Code: input.KeyE})
	g.Advance(ctx, frame)
	if sim.Phase() != component.PhaseCaught {
		t.Fatalf("Expected caught, got %s", sim.Phase())
	}

	for sim.Phase() != component.PhaseIdle {
		g.Advance(ctx, constant.MaxFrameDelta)
	}
	close(fn.gate)
	g.WaitNarrative()
	snap := g.Advance(ctx, frame)

	if snap.Message == "too late" {
		t.Error("Expected stale reaction dropped")
	}
	if n := sim.World().Status.Ints.Get(status.KeyNarrativeStale).Load(); n != 1 {
		t.Errorf("Expected one stale delivery recorded, got %d", n)
	}
}

func TestGameRunStopsOnCancel(t *testing.T) {
	g, _ := newGame(t, &fakeAudio{}, &fakeNarrator{lore: "lore"})

	var got *engine.Snapshot
	var mu sync.Mutex
	g.Subscribe(func(s *engine.Snapshot) {
		mu.Lock()
		got = s
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	g.Intents() <- input.Intent{Type: input.IntentStart}
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Run to return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if got == nil || got.Phase != "playing" {
		t.Errorf("Expected published playing snapshot, got %+v", got)
	}
}

func TestGameRunMeasuresDeltaFromClock(t *testing.T) {
	sim, err := engine.NewSimulation(11, nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	system.Install(sim)

	clock := engine.NewManualClock(time.Unix(0, 0))
	g := engine.NewGame(sim, engine.GameConfig{Clock: clock, FrameInterval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	g.Intents() <- input.Intent{Type: input.IntentStart}
	g.Inputs() <- input.Event{Kind: input.EventKeyDown, Code: input.KeyW}

	// Frozen clock: frames advance with zero delta
	waitSnapshot(t, g, func(s *engine.Snapshot) bool { return s.Phase == "playing" && s.Frame > 5 })
	origin := mgl64.Vec3{0, constant.EyeHeight, 0}
	if pos := g.Snapshot().Avatar.Position; !pos.ApproxEqual(origin) {
		t.Errorf("Expected avatar to stay at %v with a frozen clock, got %v", origin, pos)
	}

	clock.Advance(50 * time.Millisecond)
	waitSnapshot(t, g, func(s *engine.Snapshot) bool { return !s.Avatar.Position.ApproxEqual(origin) })

	cancel()
	<-done
}

func waitSnapshot(t *testing.T, g *engine.Game, cond func(*engine.Snapshot) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s := g.Snapshot(); s != nil && cond(s) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Expected snapshot condition within deadline")
}
