package audio

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/tubby-terrors/constant"
)

// newFootstep builds one panned, band-passed noise burst
// The burst is followed by silence so the filter can ring out before the streamer drains
func newFootstep(sprint bool, pan float64, rate beep.SampleRate) beep.Streamer {
	freq, peak, decay := constant.FootstepWalkFilter, constant.FootstepWalkPeak, constant.FootstepWalkDecay
	if sprint {
		freq, peak, decay = constant.FootstepSprintFilter, constant.FootstepSprintPeak, constant.FootstepSprintDecay
	}

	noise := beep.Seq(
		NewOscillator(0, constant.FootstepDuration, WaveNoise, rate),
		beep.Silence(rate.N(constant.FootstepTail)),
	)
	filtered := newBandpass(noise, freq, constant.FootstepFilterQ, rate)
	shaped := NewEnvelope(filtered, constant.FootstepAttack, decay, constant.FootstepFloor/peak, rate)

	return &effects.Pan{Streamer: newVolume(shaped, peak), Pan: pan}
}

// scream is the jumpscare cue: a falling saw, an FM screech and gated noise under one decaying master
type scream struct {
	rate   float64
	pos    int
	total  int
	master float64

	low     phasor
	carrier phasor
	mod     phasor
	noise   biquad
}

// newScream returns the cue at the given starting master gain, which must be positive
func newScream(master float64, rate beep.SampleRate) *scream {
	return &scream{
		rate:   float64(rate),
		total:  rate.N(constant.ScreamDuration),
		master: master,
	}
}

func (s *scream) Stream(samples [][2]float64) (n int, ok bool) {
	duration := constant.ScreamDuration.Seconds()
	lowSweep := constant.ScreamLowSweep.Seconds()
	carrierSweep := constant.ScreamCarrierSweep.Seconds()
	screechDecay := constant.ScreamScreechDecay.Seconds()
	noiseSweep := constant.ScreamNoiseSweep.Seconds()

	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / s.rate

		lowFreq := expRamp(constant.ScreamLowStart, constant.ScreamLowEnd, t/lowSweep)
		low := waveSample(WaveSaw, s.low.next(lowFreq, s.rate)) *
			expRamp(constant.ScreamLowGain, constant.ScreamFloor, t/lowSweep)

		mod := waveSample(WaveSquare, s.mod.next(constant.ScreamModFrequency, s.rate)) * constant.ScreamModDepth
		carrierFreq := expRamp(constant.ScreamCarrierStart, constant.ScreamCarrierEnd, t/carrierSweep) + mod
		screech := waveSample(WaveSaw, s.carrier.next(carrierFreq, s.rate)) *
			expRamp(constant.ScreamScreechGain, constant.ScreamFloor, t/screechDecay)

		if s.pos%64 == 0 {
			s.noise.bandpass(linRamp(constant.ScreamNoiseStart, constant.ScreamNoiseEnd, t/noiseSweep),
				constant.ScreamNoiseQ, s.rate)
		}
		noise := s.noise.process(rand.Float64()*2-1) * screamGate(t)

		v := (low + screech + noise) * expRamp(s.master, constant.ScreamFloor, t/duration)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *scream) Err() error { return nil }

// screamGate is the stuttering noise gain: open/closed every half step, then a fade to the floor
func screamGate(t float64) float64 {
	step := constant.ScreamGateStep.Seconds()
	last := float64(2*constant.ScreamGateCycles-1) * step
	if t < last {
		if math.Mod(t, 2*step) < step {
			return constant.ScreamGateOpen
		}
		return constant.ScreamGateClosed
	}
	span := constant.ScreamDuration.Seconds() - last
	return expRamp(constant.ScreamGateClosed, constant.ScreamFloor, (t-last)/span)
}
