package constant

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the default simulation frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps a single step so a stalled host cannot tunnel entities through bounds
	MaxFrameDelta = 100 * time.Millisecond

	// SnapshotBroadcastDivisor sends one network snapshot every N frames
	SnapshotBroadcastDivisor = 2

	// InputChannelSize buffers raw input between frontends and the frame loop
	InputChannelSize = 256
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the async event ring buffer
	EventQueueSize = 256
)

// System Execution Priorities (lower runs first)
// Pickups run before the pursuer so a final collection wins over a same-frame catch
const (
	PriorityLocomotion = 10
	PriorityPickup     = 20
	PriorityPursuer    = 30
)
