package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// waveSample returns the unity-gain waveform value at a normalized phase in [0, 1)
func waveSample(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	}
	return 0
}

// phasor tracks oscillator phase under a frequency that may change every sample
type phasor struct {
	phase float64
}

// next returns the current phase and advances it by freq/rate
func (p *phasor) next(freq, rate float64) float64 {
	v := p.phase
	p.phase += freq / rate
	p.phase -= math.Floor(p.phase)
	return v
}

// oscillator generates a fixed-frequency wave for a bounded duration
type oscillator struct {
	freq     float64
	osc      phasor
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency wave streamer
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := waveSample(o.wave, o.osc.next(o.freq, float64(o.rate)))
		samples[i][0] = val
		samples[i][1] = val
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// expRamp interpolates exponentially from a to b as t goes from 0 to 1, holding b after
// Both ends must be positive
func expRamp(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a * math.Pow(b/a, t)
}

// linRamp interpolates linearly from a to b as t goes from 0 to 1, holding b after
func linRamp(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a + (b-a)*t
}

// envelope shapes a one-shot: linear attack to 1, exponential fall to floor by decay, then hold
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	decay    int
	floor    float64
}

// NewEnvelope wraps s in a percussive envelope
// floor is relative to the unity peak and must be positive
func NewEnvelope(s beep.Streamer, attack, decay time.Duration, floor float64, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		decay:    rate.N(decay),
		floor:    floor,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := e.gainAt(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) gainAt(pos int) float64 {
	if pos < e.attack {
		return float64(pos) / float64(e.attack)
	}
	span := e.decay - e.attack
	if span <= 0 {
		return e.floor
	}
	return expRamp(1, e.floor, float64(pos-e.attack)/float64(span))
}

func (e *envelope) Err() error { return e.streamer.Err() }
