package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/event"
	"github.com/lixenwraith/tubby-terrors/physics"
	"github.com/lixenwraith/tubby-terrors/vmath"
)

// LocomotionSystem moves the avatar from held input with friction damping, head bob and footstep cues
type LocomotionSystem struct{}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

func (s *LocomotionSystem) Name() string  { return "locomotion" }
func (s *LocomotionSystem) Priority() int { return constant.PriorityLocomotion }

// ResetSession places the avatar at the origin at eye height
func (s *LocomotionSystem) ResetSession(w *engine.World) {
	w.Avatar = component.Avatar{
		Position: mgl64.Vec3{0, constant.EyeHeight, 0},
	}
}

// Update advances one frame
func (s *LocomotionSystem) Update(w *engine.World) {
	if !w.Playing() {
		return
	}

	a := &w.Avatar
	in := w.Input
	dt := w.Delta()

	// Look
	a.Yaw = vmath.WrapAngle(a.Yaw - in.LookDX*constant.LookSensitivity)
	a.Pitch = vmath.Clamp(a.Pitch-in.LookDY*constant.LookSensitivity, -constant.MaxPitch, constant.MaxPitch)

	move := in.Move
	a.Sprinting = move.Sprint
	speed := constant.WalkSpeed
	if move.Sprint {
		speed = constant.SprintSpeed
	}

	// Local intent: X strafe right, Z forward
	dir := mgl64.Vec3{boolAxis(move.Right, move.Left), 0, boolAxis(move.Forward, move.Backward)}
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	a.Velocity = physics.Accelerate(a.Velocity, dir, speed, dt)
	a.Velocity = physics.Damp(a.Velocity, constant.Friction, dt)

	// Velocity is a per-frame displacement in camera-local axes, yaw only
	disp := vmath.RightXZ(a.Yaw).Mul(a.Velocity[0]).Add(vmath.ForwardXZ(a.Yaw).Mul(a.Velocity[2]))
	a.Position = a.Position.Add(disp)

	a.Moving = math.Abs(a.Velocity[0]) > constant.MoveThreshold || math.Abs(a.Velocity[2]) > constant.MoveThreshold
	if a.Moving {
		freq, amount := constant.WalkBobFrequency, constant.WalkBobAmplitude
		if move.Sprint {
			freq, amount = constant.SprintBobFrequency, constant.SprintBobAmplitude
		}

		prev := math.Sin(a.StepCycle)
		a.StepCycle += dt * freq
		curr := math.Sin(a.StepCycle)

		if (prev >= 0 && curr < 0) || (prev <= 0 && curr > 0) {
			pan := -constant.FootstepPan
			if a.RightFoot {
				pan = constant.FootstepPan
			}
			a.RightFoot = !a.RightFoot
			w.Events.Emit(event.EventFootstep, event.FootstepPayload{Sprint: move.Sprint, Pan: pan})
		}

		a.Position[1] = constant.EyeHeight + curr*amount
	} else {
		a.Position[1] = vmath.Lerp(a.Position[1], constant.EyeHeight, dt*constant.EyeReturnRate)
		a.StepCycle = 0
	}

	a.Position = vmath.ClampPlanar(a.Position, constant.WorldBound)
}

func boolAxis(pos, neg bool) float64 {
	v := 0.0
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}
