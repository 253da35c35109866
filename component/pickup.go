package component

import "github.com/go-gl/mathgl/mgl64"

// Pickup is a collectible placed at session start
// Collected only moves false to true within a session
type Pickup struct {
	ID        string
	Position  mgl64.Vec3
	Collected bool

	// InRange is recomputed every playing frame and backs the can-collect affordance
	InRange bool
}
