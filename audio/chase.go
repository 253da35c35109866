package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/tubby-terrors/constant"
)

// chaseLayer is the pursuer drone plus the heartbeat, both behind the chase bus gain
// The heartbeat fires on a fixed clock and only while the bus is audible
type chaseLayer struct {
	rate      float64
	proximity *SmoothParam
	bus       *SmoothParam

	drone  phasor
	filter biquad

	carrier    beep.Streamer
	carrierBuf [][2]float64
	pulse      smoother

	interval  int
	sinceTick int
	beat      float64 // Seconds since the last heartbeat started; negative when idle
}

func newChaseLayer(rate beep.SampleRate, proximity, bus *SmoothParam) (*chaseLayer, error) {
	carrier, err := generators.SineTone(rate, constant.HeartbeatFrequency)
	if err != nil {
		return nil, err
	}
	return &chaseLayer{
		rate:      float64(rate),
		proximity: proximity,
		bus:       bus,
		carrier:   carrier,
		interval:  rate.N(constant.HeartbeatInterval),
		beat:      -1,
	}, nil
}

func (c *chaseLayer) Stream(samples [][2]float64) (n int, ok bool) {
	if cap(c.carrierBuf) < len(samples) {
		c.carrierBuf = make([][2]float64, len(samples))
	}
	buf := c.carrierBuf[:len(samples)]
	c.carrier.Stream(buf)

	// Cutoff tracks proximity at block rate
	c.filter.lowpass(droneCutoff(c.proximity.Value()), constant.ChaseDroneQ, c.rate)

	for i := range samples {
		p := c.proximity.Next(c.rate)
		drone := c.filter.process(waveSample(WaveSaw, c.drone.next(droneFrequency(p), c.rate)))

		c.sinceTick++
		if c.sinceTick >= c.interval {
			c.sinceTick = 0
			if c.bus.Value() > constant.HeartbeatGate {
				c.beat = 0
			}
		}
		heart := buf[i][0] * c.heartbeatGain()

		g := c.bus.Next(c.rate)
		v := (drone + heart) * g
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

// heartbeatGain steps the two-beat pulse schedule by one sample
func (c *chaseLayer) heartbeatGain() float64 {
	if c.beat >= 0 {
		switch {
		case c.beat < 0.1:
			c.pulse.set(constant.HeartbeatFirstBeat, constant.HeartbeatTau)
		case c.beat < 0.2:
			c.pulse.set(0, constant.HeartbeatTau)
		case c.beat < 0.3:
			c.pulse.set(constant.HeartbeatSecond, constant.HeartbeatTau)
		default:
			c.pulse.set(0, constant.HeartbeatTailTau)
			c.beat = -1
		}
		if c.beat >= 0 {
			c.beat += 1 / c.rate
		}
	}
	return c.pulse.next(c.rate)
}

func (c *chaseLayer) Err() error { return nil }

func droneFrequency(proximity float64) float64 {
	return constant.ChaseDroneBaseFreq + constant.ChaseDroneFreqRange*proximity
}

func droneCutoff(proximity float64) float64 {
	return constant.ChaseDroneCutoff + constant.ChaseDroneCutoffSpan*proximity
}
