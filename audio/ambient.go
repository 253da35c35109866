package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tubby-terrors/constant"
)

type ambientVoice struct {
	freq float64
	wave WaveType
	gain float64
}

// ambientBank is the detuned drone cluster with its upper harmonics
var ambientBank = [...]ambientVoice{
	{40, WaveSine, 0.4},
	{42, WaveSine, 0.2},
	{60, WaveSaw, 0.05},
	{150, WaveSine, 0.02},
}

// ambientLayer streams the drone bank forever with a shared sub-audio LFO on every voice frequency
type ambientLayer struct {
	rate   float64
	lfo    phasor
	voices [len(ambientBank)]phasor
}

func newAmbientLayer(rate beep.SampleRate) *ambientLayer {
	return &ambientLayer{rate: float64(rate)}
}

func (a *ambientLayer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		mod := constant.AmbientLFODepth * math.Sin(2*math.Pi*a.lfo.next(constant.AmbientLFOFrequency, a.rate))
		sum := 0.0
		for j, v := range ambientBank {
			sum += waveSample(v.wave, a.voices[j].next(v.freq+mod, a.rate)) * v.gain
		}
		samples[i][0] = sum
		samples[i][1] = sum
	}
	return len(samples), true
}

func (a *ambientLayer) Err() error { return nil }
