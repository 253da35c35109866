package audio

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/status"
	"github.com/lixenwraith/tubby-terrors/vmath"
)

// Engine is the procedural audio graph
// Every method is safe before Activate: parameter setters record state, one-shots are dropped
type Engine struct {
	cfg    Config
	output Output
	rate   beep.SampleRate

	mu        sync.Mutex // Serializes activation and teardown
	activated bool
	err       error
	graph     *graph

	active atomic.Bool
	closed atomic.Bool

	buses     *buses
	music     status.AtomicFloat
	effects   status.AtomicFloat
	proximity status.AtomicFloat
	ambientOn atomic.Bool

	statFootsteps atomic.Int64
	statScreams   atomic.Int64
}

// NewEngine creates an inactive engine; output may be nil for a silent build
func NewEngine(cfg Config, output Output) *Engine {
	cfg.Normalize()
	e := &Engine{
		cfg:    cfg,
		output: output,
		rate:   beep.SampleRate(cfg.SampleRate),
		buses:  newBuses(),
	}
	e.SetVolumes(cfg.MusicVolume, cfg.EffectsVolume)
	return e
}

// Activate builds the graph and opens the output once
// Later calls return the first result; a failure leaves the engine permanently silent
func (e *Engine) Activate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.activated {
		return e.err
	}
	e.activated = true

	if !e.cfg.Enabled {
		e.err = fmt.Errorf("%w: disabled by config", ErrNoOutput)
		return e.err
	}
	if e.output == nil || e.closed.Load() {
		e.err = ErrNoOutput
		return e.err
	}

	g, err := newGraph(e.rate, e.cfg.MasterVolume, e.buses)
	if err != nil {
		e.err = fmt.Errorf("build audio graph: %w", err)
		return e.err
	}

	if err := e.output.Init(e.rate, e.rate.N(constant.AudioBufferDuration)); err != nil {
		e.err = fmt.Errorf("%w: %v", ErrNoOutput, err)
		return e.err
	}

	e.graph = g
	e.output.Play(g.root)
	e.active.Store(true)
	log.Printf("audio active at %d Hz", e.cfg.SampleRate)
	return nil
}

// Active reports whether the graph is playing
func (e *Engine) Active() bool {
	return e.active.Load()
}

// Err returns ErrNotActive before the first Activate, then the activation result
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.activated {
		return ErrNotActive
	}
	return e.err
}

// SetVolumes applies the music and effects categories, each clamped to [0,1]
func (e *Engine) SetVolumes(music, effects float64) {
	music = vmath.Clamp(music, 0, 1)
	effects = vmath.Clamp(effects, 0, 1)
	e.music.Set(music)
	e.effects.Set(effects)

	if e.ambientOn.Load() {
		e.buses.music.SetTarget(music, constant.VolumeTau)
	}
	e.buses.footsteps.SetTarget(constant.EffectsBusGain*effects, constant.VolumeTau)
	if p := e.proximity.Get(); p > 0 {
		e.buses.chase.SetTarget(p*constant.ChaseDroneGain*effects, constant.ChaseAttackTau)
	}
}

// SetAmbient fades the drone bed in or out
func (e *Engine) SetAmbient(on bool) {
	e.ambientOn.Store(on)
	target := 0.0
	if on {
		target = e.music.Get()
	}
	e.buses.music.SetTarget(target, constant.AmbientFadeTau)
}

// SetProximity drives the chase drone and heartbeat from a [0,1] closeness ratio
// Zero fades the layer out on the slower release
func (e *Engine) SetProximity(p float64) {
	p = vmath.Clamp(p, 0, 1)
	e.proximity.Set(p)
	if p > 0 {
		e.buses.proximity.SetTarget(p, constant.ChaseAttackTau)
		e.buses.chase.SetTarget(p*constant.ChaseDroneGain*e.effects.Get(), constant.ChaseAttackTau)
		return
	}
	e.buses.chase.SetTarget(0, constant.ChaseReleaseTau)
}

// PlayFootstep triggers one footstep; pan is -1 (left) to 1 (right)
func (e *Engine) PlayFootstep(sprint bool, pan float64) {
	if !e.active.Load() {
		return
	}
	s := newFootstep(sprint, vmath.Clamp(pan, -1, 1), e.rate)

	e.output.Lock()
	e.graph.footsteps.Add(s)
	e.output.Unlock()
	e.statFootsteps.Add(1)
}

// PlayScream triggers the jumpscare cue at the current effects volume
func (e *Engine) PlayScream() {
	if !e.active.Load() {
		return
	}
	master := constant.ScreamMasterGain * e.effects.Get()
	if master <= 0 {
		return
	}
	s := newScream(master, e.rate)

	e.output.Lock()
	e.graph.screams.Add(s)
	e.output.Unlock()
	e.statScreams.Add(1)
}

// Silence fades the persistent layers to zero and drops pending one-shots
func (e *Engine) Silence() {
	e.SetAmbient(false)
	e.SetProximity(0)
	if !e.active.Load() {
		return
	}
	e.output.Lock()
	e.graph.footsteps.Clear()
	e.graph.screams.Clear()
	e.output.Unlock()
}

// Close stops playback and releases the output; safe to call repeatedly
func (e *Engine) Close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active.Swap(false) {
		return
	}
	e.output.Lock()
	e.graph.root.Paused = true
	e.output.Unlock()
	e.output.Close()
}

// Stats returns footsteps and screams triggered since activation
func (e *Engine) Stats() (footsteps, screams int64) {
	return e.statFootsteps.Load(), e.statScreams.Load()
}
