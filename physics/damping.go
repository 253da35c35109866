package physics

import "github.com/go-gl/mathgl/mgl64"

// Accelerate adds dir*accel*dt to vel
func Accelerate(vel, dir mgl64.Vec3, accel, dt float64) mgl64.Vec3 {
	return vel.Add(dir.Mul(accel * dt))
}

// Damp applies linear friction: vel -= vel*friction*dt
// friction*dt >= 1 stops the body outright instead of reversing it
func Damp(vel mgl64.Vec3, friction, dt float64) mgl64.Vec3 {
	k := friction * dt
	if k >= 1 {
		return mgl64.Vec3{}
	}
	return vel.Sub(vel.Mul(k))
}
