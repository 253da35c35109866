package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/tubby-terrors/constant"
)

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// biquad is a second-order IIR section using the RBJ cookbook forms
type biquad struct {
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

// lowpass configures a resonant low-pass at freq Hz
func (f *biquad) lowpass(freq, q, rate float64) {
	w0 := 2 * math.Pi * clampFreq(freq, rate) / rate
	cos, alpha := math.Cos(w0), math.Sin(w0)/(2*q)
	a0 := 1 + alpha
	f.b0 = (1 - cos) / 2 / a0
	f.b1 = (1 - cos) / a0
	f.b2 = f.b0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}

// bandpass configures a constant 0 dB peak band-pass centered at freq Hz
func (f *biquad) bandpass(freq, q, rate float64) {
	w0 := 2 * math.Pi * clampFreq(freq, rate) / rate
	cos, alpha := math.Cos(w0), math.Sin(w0)/(2*q)
	a0 := 1 + alpha
	f.b0 = alpha / a0
	f.b1 = 0
	f.b2 = -alpha / a0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// clampFreq keeps a cutoff below Nyquist
func clampFreq(freq, rate float64) float64 {
	nyq := rate / 2 * 0.99
	if freq > nyq {
		return nyq
	}
	if freq < 1 {
		return 1
	}
	return freq
}

// bandpassed filters a mono source through a fixed band-pass, writing both channels
type bandpassed struct {
	streamer beep.Streamer
	filter   biquad
}

func newBandpass(s beep.Streamer, freq, q float64, rate beep.SampleRate) beep.Streamer {
	b := &bandpassed{streamer: s}
	b.filter.bandpass(freq, q, float64(rate))
	return b
}

func (b *bandpassed) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = b.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		v := b.filter.process(samples[i][0])
		samples[i][0] = v
		samples[i][1] = v
	}
	return n, ok
}

func (b *bandpassed) Err() error { return b.streamer.Err() }

// gained scales a bus by a smoothly ramped parameter
type gained struct {
	streamer beep.Streamer
	gain     *SmoothParam
	rate     float64
}

func (g *gained) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = g.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		v := g.gain.Next(g.rate)
		samples[i][0] *= v
		samples[i][1] *= v
	}
	return n, ok
}

func (g *gained) Err() error { return g.streamer.Err() }

// limiter soft-knees peaks above LimiterKnee and hard clips at unity
type limiter struct {
	streamer beep.Streamer
}

func (l *limiter) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = l.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		samples[i][0] = softLimit(samples[i][0])
		samples[i][1] = softLimit(samples[i][1])
	}
	return n, ok
}

func (l *limiter) Err() error { return l.streamer.Err() }

func softLimit(v float64) float64 {
	const knee = constant.LimiterKnee
	const headroom = 1 - knee
	if v > knee {
		v = knee + headroom*(1.0-1.0/(1.0+(v-knee)*5.0))
	} else if v < -knee {
		v = -knee - headroom*(1.0-1.0/(1.0+(-v-knee)*5.0))
	}

	if v > 1.0 {
		v = 1.0
	} else if v < -1.0 {
		v = -1.0
	}
	return v
}
