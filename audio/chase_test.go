package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/tubby-terrors/constant"
)

const chaseRate = beep.SampleRate(8000)

func newTestChaseLayer(t *testing.T, proximity, bus float64) *chaseLayer {
	t.Helper()
	c, err := newChaseLayer(chaseRate, NewSmoothParam(proximity), NewSmoothParam(bus))
	if err != nil {
		t.Fatalf("newChaseLayer failed: %v", err)
	}
	return c
}

func streamSamples(c *chaseLayer, n int) {
	c.Stream(make([][2]float64, n))
}

func TestHeartbeatGatedByBus(t *testing.T) {
	c := newTestChaseLayer(t, 0.5, 0)

	// Two full heartbeat clocks with the bus closed
	streamSamples(c, 2*c.interval)
	if c.beat >= 0 {
		t.Errorf("Expected no heartbeat with bus at 0, got beat at %fs", c.beat)
	}
	if c.pulse.target != 0 || c.pulse.value != 0 {
		t.Errorf("Expected silent pulse envelope, got target %f value %f", c.pulse.target, c.pulse.value)
	}

	c.bus.SetTarget(0.5, 0)
	started := false
	for i := 0; i < 2*c.interval && !started; i++ {
		streamSamples(c, 1)
		started = c.beat >= 0
	}
	if !started {
		t.Fatal("Expected heartbeat to start within one clock once the bus is open")
	}
}

func TestHeartbeatTwoBeatEnvelope(t *testing.T) {
	c := newTestChaseLayer(t, 0.5, 0.5)

	for i := 0; i < 2*c.interval && c.beat < 0; i++ {
		streamSamples(c, 1)
	}
	if c.beat < 0 {
		t.Fatal("Expected heartbeat to start")
	}

	rate := float64(chaseRate)
	window := func(until float64) (target, peak float64) {
		for c.beat >= 0 && c.beat < until {
			streamSamples(c, 1)
			peak = math.Max(peak, c.pulse.value)
		}
		return c.pulse.target, peak
	}

	// Mid-beat targets follow the 0.1 s schedule
	if target, _ := window(0.05); target != constant.HeartbeatFirstBeat {
		t.Errorf("Expected first beat target %f, got %f", constant.HeartbeatFirstBeat, target)
	}
	_, firstPeak := window(0.1)
	if target, _ := window(0.15); target != 0 {
		t.Errorf("Expected gap between beats, got target %f", target)
	}
	window(0.2)
	if target, _ := window(0.25); target != constant.HeartbeatSecond {
		t.Errorf("Expected second beat target %f, got %f", constant.HeartbeatSecond, target)
	}
	_, secondPeak := window(0.3)

	if firstPeak <= secondPeak || secondPeak <= 0.2 {
		t.Errorf("Expected first beat louder than second, got peaks %f and %f", firstPeak, secondPeak)
	}

	streamSamples(c, int(0.05*rate))
	if c.beat >= 0 {
		t.Errorf("Expected pulse finished after 0.3s, got beat at %fs", c.beat)
	}
	if c.pulse.target != 0 {
		t.Errorf("Expected tail to fade to 0, got target %f", c.pulse.target)
	}
}

func TestDroneRisesWithProximity(t *testing.T) {
	if droneFrequency(1) <= droneFrequency(0) {
		t.Errorf("Expected drone frequency to rise, got %f -> %f", droneFrequency(0), droneFrequency(1))
	}
	if droneCutoff(1) <= droneCutoff(0) {
		t.Errorf("Expected cutoff to rise, got %f -> %f", droneCutoff(0), droneCutoff(1))
	}

	step := func(p float64) (phaseStep, b0 float64) {
		c := newTestChaseLayer(t, p, 0)
		streamSamples(c, 64)
		before := c.drone.phase
		streamSamples(c, 1)
		return c.drone.phase - before, c.filter.b0
	}
	lowStep, lowB0 := step(0)
	highStep, highB0 := step(1)

	rate := float64(chaseRate)
	if math.Abs(lowStep-constant.ChaseDroneBaseFreq/rate) > 1e-9 {
		t.Errorf("Expected %f Hz drone at rest, got %f Hz", constant.ChaseDroneBaseFreq, lowStep*rate)
	}
	if highStep <= lowStep {
		t.Errorf("Expected faster drone at full proximity, got %f <= %f", highStep*rate, lowStep*rate)
	}
	if highB0 <= lowB0 {
		t.Errorf("Expected wider low-pass at full proximity, got b0 %f <= %f", highB0, lowB0)
	}
}
