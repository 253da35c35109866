package system

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/event"
	"github.com/lixenwraith/tubby-terrors/vmath"
)

// PickupSystem owns the collectible set
// Collection needs the avatar within CollectRadius and an interact press on the same frame;
// one press takes every uncollected pickup in range
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem {
	return &PickupSystem{}
}

func (s *PickupSystem) Name() string  { return "pickup" }
func (s *PickupSystem) Priority() int { return constant.PriorityPickup }

// ResetSession generates a fresh uncollected set
// Positions are uniform in the spawn square with no overlap resolution
func (s *PickupSystem) ResetSession(w *engine.World) {
	b := constant.PickupSpawnBound
	pickups := make([]component.Pickup, constant.MaxPickups)
	for i := range pickups {
		pickups[i] = component.Pickup{
			ID: constant.PickupIDPrefix + strconv.Itoa(i),
			Position: mgl64.Vec3{
				(w.Rand.Float64() - 0.5) * 2 * b,
				0,
				(w.Rand.Float64() - 0.5) * 2 * b,
			},
		}
	}
	w.Pickups = pickups
}

// Update advances one frame
func (s *PickupSystem) Update(w *engine.World) {
	if !w.Playing() {
		return
	}

	pos := w.Avatar.Position
	interact := w.Input.Interact

	for i := range w.Pickups {
		p := &w.Pickups[i]
		if p.Collected {
			p.InRange = false
			continue
		}

		p.InRange = vmath.PlanarDistance(pos, p.Position) < constant.CollectRadius
		if !p.InRange || !interact {
			continue
		}

		p.Collected = true
		p.InRange = false
		w.Session.Collected = w.CollectedCount()
		w.Events.Emit(event.EventPickupCollected, event.PickupCollectedPayload{
			ID:         p.ID,
			Count:      w.Session.Collected,
			Max:        w.Session.Max,
			Generation: w.Session.Generation,
		})
	}

	if w.Session.Collected == w.Session.Max && w.Session.Max > 0 {
		w.Events.Emit(event.EventAllCollected, nil)
	}
}
