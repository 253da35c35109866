package system

import "github.com/lixenwraith/tubby-terrors/engine"

// Install registers the default simulation systems
func Install(sim *engine.Simulation) {
	sim.AddSystem(NewLocomotionSystem())
	sim.AddSystem(NewPickupSystem())
	sim.AddSystem(NewPursuerSystem())
}
