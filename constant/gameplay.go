package constant

import "time"

// World
const (
	// WorldBound is the half-extent of the square play area on X and Z
	WorldBound = 45.0

	// PickupSpawnBound is the half-extent of the pickup spawn square
	PickupSpawnBound = 40.0

	// PatrolTargetBound is the half-extent of the pursuer patrol target square
	PatrolTargetBound = 45.0
)

// Player Locomotion
const (
	WalkSpeed   = 4.5
	SprintSpeed = 8.5

	// Friction is the per-second velocity damping coefficient
	Friction = 10.0

	// MoveThreshold is the per-axis velocity above which the avatar counts as moving
	MoveThreshold = 0.05

	// EyeHeight is the resting camera height
	EyeHeight = 1.7

	// EyeReturnRate is the lerp rate back to EyeHeight when standing still
	EyeReturnRate = 5.0

	WalkBobFrequency   = 8.0
	WalkBobAmplitude   = 0.04
	SprintBobFrequency = 12.0
	SprintBobAmplitude = 0.08

	// FootstepPan is the stereo offset of alternating footsteps
	FootstepPan = 0.3

	// LookSensitivity converts pointer delta units to radians
	LookSensitivity = 0.002

	// MaxPitch keeps the camera from flipping over
	MaxPitch = 1.5
)

// Pursuer
const (
	PursuerOriginX = 30.0
	PursuerOriginZ = 30.0

	PursuerFirstTargetX = 20.0
	PursuerFirstTargetZ = 20.0

	// ChaseBaseThreshold and ChaseAggressionRange give 18 + aggression*20
	ChaseBaseThreshold   = 18.0
	ChaseAggressionRange = 20.0

	// ChaseBaseSpeed and ChaseAggressionSpeed give 2.8 + aggression*3.5
	ChaseBaseSpeed       = 2.8
	ChaseAggressionSpeed = 3.5

	// PatrolSpeedFactor scales chase speed while patrolling
	PatrolSpeedFactor = 0.5

	// PatrolRetargetInterval is patrol time before a new target is picked
	PatrolRetargetInterval = 6 * time.Second

	// CatchDistance is the planar distance that ends a session
	CatchDistance = 1.8

	// Facing interpolation factor per frame
	ChaseTurnFactor  = 0.1
	PatrolTurnFactor = 0.05

	// Cosmetic idle animation
	ChaseAnimSpeed   = 10.0
	PatrolAnimSpeed  = 5.0
	ChaseLimbSwing   = 0.6
	PatrolLimbSwing  = 0.3
	PursuerBobHeight = 0.15
)

// Pickups
const (
	// MaxPickups is the number of collectibles per session
	MaxPickups = 10

	// CollectRadius is the planar distance within which interact collects
	CollectRadius = 2.5

	// PickupIDPrefix names pickups as custard-<index>
	PickupIDPrefix = "custard-"
)

// Session
const (
	// CaughtDuration is the jumpscare window before returning to idle
	CaughtDuration = 2500 * time.Millisecond

	// MessageDuration is the display window for transient messages
	MessageDuration = 4 * time.Second

	// StartMessage is shown when a hunt begins
	StartMessage = "The hunt begins..."

	// LoreLoadingText is shown on the idle screen until lore resolves
	LoreLoadingText = "Loading nightmare..."
)
