package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/event"
	"github.com/lixenwraith/tubby-terrors/input"
)

const frame = 16 * time.Millisecond

// newPlayingSim returns a simulation with default systems, already started
func newPlayingSim(t *testing.T) *engine.Simulation {
	t.Helper()
	sim, err := engine.NewSimulation(42, nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	Install(sim)
	if !sim.Dispatch(input.Intent{Type: input.IntentStart}) {
		t.Fatal("Expected start from idle to succeed")
	}
	sim.Step(input.Frame{}, 0)
	if sim.Phase() != component.PhasePlaying {
		t.Fatalf("Expected playing after start, got %s", sim.Phase())
	}
	return sim
}

// newPlayingWorld returns a bare world marked as playing with dt set
func newPlayingWorld(dt time.Duration) *engine.World {
	w := engine.NewWorld(7, nil)
	w.Session.Phase = component.PhasePlaying
	w.DeltaTime = dt
	return w
}

// parkPursuer moves the pursuer far from the avatar so it cannot interfere
func parkPursuer(w *engine.World) {
	w.Pursuer.Position = mgl64.Vec3{45, 0, 45}
	w.Pursuer.PatrolTarget = mgl64.Vec3{45, 0, 45}
}

func countEvents(events []event.GameEvent, t event.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func phaseChangesTo(events []event.GameEvent, to component.Phase) int {
	n := 0
	for _, ev := range events {
		if p, ok := ev.Payload.(event.PhaseChangePayload); ok && p.To == to {
			n++
		}
	}
	return n
}
