package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Flat returns v projected onto the ground plane
func Flat(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}

// PlanarDistance is the distance between a and b ignoring height
func PlanarDistance(a, b mgl64.Vec3) float64 {
	return math.Hypot(b[0]-a[0], b[2]-a[2])
}

// PlanarDirection returns the unit X/Z direction from a to b, zero when coincident
func PlanarDirection(a, b mgl64.Vec3) mgl64.Vec3 {
	d := Flat(b.Sub(a))
	if d.Len() == 0 {
		return mgl64.Vec3{}
	}
	return d.Normalize()
}

// HeadingOf returns the yaw angle of a ground-plane direction, measured from +Z toward +X
func HeadingOf(dir mgl64.Vec3) float64 {
	return math.Atan2(dir[0], dir[2])
}

// ForwardXZ is the ground-plane forward vector of a camera with the given yaw
// Yaw 0 looks down -Z
func ForwardXZ(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
}

// RightXZ is the ground-plane right vector of a camera with the given yaw
func RightXZ(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
}

// ClampPlanar clamps X and Z of v into [-bound, bound], leaving Y untouched
func ClampPlanar(v mgl64.Vec3, bound float64) mgl64.Vec3 {
	return mgl64.Vec3{Clamp(v[0], -bound, bound), v[1], Clamp(v[2], -bound, bound)}
}
