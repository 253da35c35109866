package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Volume defaults
const (
	DefaultMasterVolume  = 1.0
	DefaultMusicVolume   = 0.4
	DefaultEffectsVolume = 0.6
)

// Ambient Drone
const (
	AmbientLFOFrequency = 0.1
	AmbientLFODepth     = 5.0

	// AmbientFadeTau is the smoothing time constant when the drone starts or stops
	AmbientFadeTau = 1.0

	// VolumeTau smooths music and effects bus changes from settings
	VolumeTau = 0.1
)

// Footsteps
const (
	// FootstepDuration is the noise burst length; FootstepTail lets the filter ring out
	FootstepDuration     = 100 * time.Millisecond
	FootstepTail         = 100 * time.Millisecond
	FootstepFilterQ      = 1.0
	FootstepAttack       = 10 * time.Millisecond
	FootstepWalkFilter   = 400.0
	FootstepSprintFilter = 600.0
	FootstepWalkPeak     = 0.5
	FootstepSprintPeak   = 0.8
	FootstepWalkDecay    = 120 * time.Millisecond
	FootstepSprintDecay  = 80 * time.Millisecond
	FootstepFloor        = 0.001

	// EffectsBusGain scales the effects volume for footsteps
	EffectsBusGain = 0.15
)

// Pursuer proximity
const (
	ChaseDroneBaseFreq   = 45.0
	ChaseDroneFreqRange  = 20.0
	ChaseDroneCutoff     = 150.0
	ChaseDroneCutoffSpan = 150.0
	ChaseDroneGain       = 0.8
	ChaseDroneQ          = 0.7071
	ChaseAttackTau       = 0.1
	ChaseReleaseTau      = 0.5

	HeartbeatFrequency = 60.0
	HeartbeatInterval  = 800 * time.Millisecond
	HeartbeatGate      = 0.01
	HeartbeatFirstBeat = 0.4
	HeartbeatSecond    = 0.3
	HeartbeatTau       = 0.05
	HeartbeatTailTau   = 0.1
)

// Scream
const (
	ScreamDuration      = 2500 * time.Millisecond
	ScreamMasterGain    = 0.8
	ScreamFloor         = 0.01
	ScreamLowStart      = 80.0
	ScreamLowEnd        = 20.0
	ScreamLowSweep      = 1500 * time.Millisecond
	ScreamLowGain       = 0.6
	ScreamCarrierStart  = 400.0
	ScreamCarrierEnd    = 1200.0
	ScreamCarrierSweep  = 500 * time.Millisecond
	ScreamModFrequency  = 150.0
	ScreamModDepth      = 500.0
	ScreamScreechGain   = 0.5
	ScreamScreechDecay  = 2 * time.Second
	ScreamNoiseStart    = 1000.0
	ScreamNoiseEnd      = 200.0
	ScreamNoiseSweep    = 2 * time.Second
	ScreamNoiseQ        = 1.0
	ScreamGateOpen      = 0.4
	ScreamGateClosed    = 0.1
	ScreamGateStep      = 50 * time.Millisecond
	ScreamGateCycles    = 20
)

// Output shaping
const (
	// LimiterKnee is where the soft limiter starts compressing
	LimiterKnee = 0.8
)
