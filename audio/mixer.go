package audio

import (
	"github.com/gopxl/beep"
)

// graph is the single output mix shared by every layer
// Persistent layers are added once; one-shots go to their own sub-mixers so Silence can drop them
type graph struct {
	root      *beep.Ctrl
	mixer     *beep.Mixer
	footsteps *beep.Mixer
	screams   *beep.Mixer
}

// buses are the gain controls the engine writes from the game goroutine
type buses struct {
	music     *SmoothParam
	footsteps *SmoothParam
	proximity *SmoothParam
	chase     *SmoothParam
}

func newBuses() *buses {
	return &buses{
		music:     NewSmoothParam(0),
		footsteps: NewSmoothParam(0),
		proximity: NewSmoothParam(0),
		chase:     NewSmoothParam(0),
	}
}

func newGraph(rate beep.SampleRate, master float64, b *buses) (*graph, error) {
	chase, err := newChaseLayer(rate, b.proximity, b.chase)
	if err != nil {
		return nil, err
	}

	r := float64(rate)
	g := &graph{
		mixer:     &beep.Mixer{},
		footsteps: &beep.Mixer{},
		screams:   &beep.Mixer{},
	}
	g.mixer.Add(
		&gained{streamer: newAmbientLayer(rate), gain: b.music, rate: r},
		chase,
		&gained{streamer: g.footsteps, gain: b.footsteps, rate: r},
		g.screams,
	)
	g.root = &beep.Ctrl{Streamer: &limiter{streamer: newVolume(g.mixer, master)}}
	return g, nil
}
