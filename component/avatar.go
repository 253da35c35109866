package component

import "github.com/go-gl/mathgl/mgl64"

// Avatar is the player camera body
// Velocity is held in camera-local axes (X = strafe right, Z = forward) and is applied as a per-frame
// displacement, so travel speed depends on frame rate the same way the damping does
type Avatar struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64
	Pitch    float64

	// StepCycle is the bob oscillator phase in radians, reset when standing still
	StepCycle float64
	// RightFoot selects the pan side of the next footstep
	RightFoot bool

	Moving    bool
	Sprinting bool
}

// BobOffset is the current vertical displacement from eye height
func (a *Avatar) BobOffset(eyeHeight float64) float64 {
	return a.Position[1] - eyeHeight
}
