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

// PursuerSystem runs the patrol/chase agent
// Mode is recomputed from distance every frame with no hysteresis, so the pursuer may flip
// modes frame to frame when the avatar sits on the threshold
// All distances are planar; the cosmetic bob and eye height never affect gameplay
type PursuerSystem struct{}

func NewPursuerSystem() *PursuerSystem {
	return &PursuerSystem{}
}

func (s *PursuerSystem) Name() string  { return "pursuer" }
func (s *PursuerSystem) Priority() int { return constant.PriorityPursuer }

// ResetSession returns the pursuer to its fixed origin in patrol
// The patrol clock starts expired so the first patrol frame picks a random target
func (s *PursuerSystem) ResetSession(w *engine.World) {
	w.Pursuer = component.Pursuer{
		Position:      mgl64.Vec3{constant.PursuerOriginX, 0, constant.PursuerOriginZ},
		Mode:          component.ModePatrol,
		PatrolTarget:  mgl64.Vec3{constant.PursuerFirstTargetX, 0, constant.PursuerFirstTargetZ},
		PatrolElapsed: constant.PatrolRetargetInterval,
		Threshold:     constant.ChaseBaseThreshold,
	}
}

// ChaseThreshold is the hunt radius for an aggression in [0,1]
func ChaseThreshold(aggression float64) float64 {
	return constant.ChaseBaseThreshold + aggression*constant.ChaseAggressionRange
}

// ChaseSpeed is the pursuit speed for an aggression in [0,1]
func ChaseSpeed(aggression float64) float64 {
	return constant.ChaseBaseSpeed + aggression*constant.ChaseAggressionSpeed
}

// Update advances one frame
func (s *PursuerSystem) Update(w *engine.World) {
	if !w.Playing() {
		return
	}

	p := &w.Pursuer
	dt := w.Delta()
	target := w.Avatar.Position

	aggression := w.Session.Aggression()
	p.Threshold = ChaseThreshold(aggression)
	speed := ChaseSpeed(aggression)

	dist := vmath.PlanarDistance(p.Position, target)

	// Catch is evaluated on the pre-move distance, once per approach
	if dist < constant.CatchDistance {
		if !p.CatchLatched {
			p.CatchLatched = true
			w.Events.Emit(event.EventPursuerCatch, event.CatchPayload{Distance: dist})
		}
	} else {
		p.CatchLatched = false
	}

	prevMode := p.Mode
	if dist < p.Threshold {
		p.Mode = component.ModeChase
	} else {
		p.Mode = component.ModePatrol
	}

	var dir mgl64.Vec3
	turn := constant.ChaseTurnFactor
	if p.Mode == component.ModeChase {
		p.Proximity = 1 - math.Min(dist/p.Threshold, 1)
		p.Position, dir = physics.Seek(p.Position, target, speed, dt)
	} else {
		p.Proximity = 0
		turn = constant.PatrolTurnFactor

		if prevMode == component.ModeChase {
			s.retarget(w)
		} else {
			p.PatrolElapsed += w.DeltaTime
			if p.PatrolElapsed >= constant.PatrolRetargetInterval {
				s.retarget(w)
			}
		}
		p.Position, dir = physics.Seek(p.Position, p.PatrolTarget, speed*constant.PatrolSpeedFactor, dt)
	}

	if dir.Len() > 0 {
		p.Facing = vmath.LerpAngle(p.Facing, vmath.HeadingOf(dir), turn)
	}
	p.Position = vmath.ClampPlanar(p.Position, constant.WorldBound)

	animSpeed, swing := constant.PatrolAnimSpeed, constant.PatrolLimbSwing
	if p.Mode == component.ModeChase {
		animSpeed, swing = constant.ChaseAnimSpeed, constant.ChaseLimbSwing
	}
	p.AnimPhase += dt * animSpeed
	sin := math.Sin(p.AnimPhase)
	p.LimbSwing = sin * swing
	p.Position[1] = math.Abs(sin) * constant.PursuerBobHeight
}

// retarget picks a fresh patrol point inside the world square
func (s *PursuerSystem) retarget(w *engine.World) {
	b := constant.PatrolTargetBound
	w.Pursuer.PatrolTarget = mgl64.Vec3{
		(w.Rand.Float64() - 0.5) * 2 * b,
		0,
		(w.Rand.Float64() - 0.5) * 2 * b,
	}
	w.Pursuer.PatrolElapsed = 0
}
