package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSeekMovesBySpeed(t *testing.T) {
	pos, dir := Seek(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, 0}, 2, 0.5)

	if math.Abs(pos[0]-1) > 1e-9 || pos[2] != 0 {
		t.Errorf("Expected position (1, 0), got %v", pos)
	}
	if math.Abs(dir[0]-1) > 1e-9 {
		t.Errorf("Expected direction +X, got %v", dir)
	}
}

func TestSeekNoOvershoot(t *testing.T) {
	pos, _ := Seek(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 0.5}, 10, 1)
	if pos[2] != 0.5 {
		t.Errorf("Expected to land on target, got %v", pos)
	}
}

func TestSeekAtTarget(t *testing.T) {
	p := mgl64.Vec3{3, 0, 3}
	pos, dir := Seek(p, p, 5, 0.1)
	if pos != p {
		t.Errorf("Expected unchanged position, got %v", pos)
	}
	if dir.Len() != 0 {
		t.Errorf("Expected zero direction, got %v", dir)
	}
}

func TestDampReducesVelocity(t *testing.T) {
	v := Damp(mgl64.Vec3{1, 0, -2}, 10, 0.016)
	if math.Abs(v[0]-0.84) > 1e-9 || math.Abs(v[2]+1.68) > 1e-9 {
		t.Errorf("Expected velocity scaled by 0.84, got %v", v)
	}
}

func TestDampLargeStepStops(t *testing.T) {
	v := Damp(mgl64.Vec3{5, 0, 5}, 10, 0.2)
	if v.Len() != 0 {
		t.Errorf("Expected zero velocity when friction*dt >= 1, got %v", v)
	}
}
