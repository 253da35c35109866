package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// PursuerMode is the pursuer's discrete behavior
type PursuerMode uint8

const (
	ModePatrol PursuerMode = iota
	ModeChase
)

func (m PursuerMode) String() string {
	if m == ModeChase {
		return "chase"
	}
	return "patrol"
}

// Pursuer is the hunting agent
type Pursuer struct {
	Position mgl64.Vec3 // Y carries the cosmetic bob
	Facing   float64
	Mode     PursuerMode

	PatrolTarget mgl64.Vec3
	// PatrolElapsed is patrol time since the target last changed
	PatrolElapsed time.Duration

	// Threshold is the chase radius evaluated this frame
	Threshold float64
	// Proximity is 1 - min(d/threshold, 1) while chasing, 0 otherwise
	Proximity float64

	// CatchLatched suppresses repeat catch reports until the avatar leaves catch range
	CatchLatched bool

	// AnimPhase drives limb swing and bob; LimbSwing is the current swing angle
	AnimPhase float64
	LimbSwing float64
}
