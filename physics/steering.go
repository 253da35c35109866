package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tubby-terrors/vmath"
)

// Seek moves pos directly toward target on the ground plane by speed*dt
// Returns the new position and the unit direction of travel (zero when already at target)
// No overshoot: a step longer than the remaining distance lands on target
func Seek(pos, target mgl64.Vec3, speed, dt float64) (mgl64.Vec3, mgl64.Vec3) {
	dir := vmath.PlanarDirection(pos, target)
	if dir.Len() == 0 {
		return pos, dir
	}

	step := speed * dt
	if remaining := vmath.PlanarDistance(pos, target); step >= remaining {
		return mgl64.Vec3{target[0], pos[1], target[2]}, dir
	}
	return pos.Add(dir.Mul(step)), dir
}
