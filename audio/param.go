package audio

import (
	"math"

	"github.com/lixenwraith/tubby-terrors/status"
)

// smoother follows a target exponentially with time constant tau seconds
// Owned by the audio goroutine
type smoother struct {
	value  float64
	target float64
	tau    float64

	coef    float64
	coefTau float64
	rate    float64
}

// set changes the target and time constant; tau <= 0 jumps immediately
func (s *smoother) set(target, tau float64) {
	s.target = target
	s.tau = tau
	if tau <= 0 {
		s.value = target
	}
}

// next advances one sample at rate and returns the new value
func (s *smoother) next(rate float64) float64 {
	if s.tau <= 0 || s.value == s.target {
		s.value = s.target
		return s.value
	}
	if s.tau != s.coefTau || rate != s.rate {
		s.coef = 1 - math.Exp(-1/(s.tau*rate))
		s.coefTau = s.tau
		s.rate = rate
	}
	s.value += (s.target - s.value) * s.coef
	if math.Abs(s.target-s.value) < 1e-9 {
		s.value = s.target
	}
	return s.value
}

// SmoothParam is a gain or frequency written by the game goroutine and ramped on the audio goroutine
// Writers set a target and a time constant; the audio side approaches it without clicks
type SmoothParam struct {
	target status.AtomicFloat
	tau    status.AtomicFloat
	s      smoother
}

// NewSmoothParam creates a parameter resting at v
func NewSmoothParam(v float64) *SmoothParam {
	p := &SmoothParam{}
	p.target.Set(v)
	p.s.value = v
	p.s.target = v
	return p
}

// SetTarget schedules an approach to v with time constant tau seconds
func (p *SmoothParam) SetTarget(v, tau float64) {
	p.tau.Set(tau)
	p.target.Set(v)
}

// Target returns the last requested value
func (p *SmoothParam) Target() float64 {
	return p.target.Get()
}

// Value returns the current ramped value; audio goroutine only
func (p *SmoothParam) Value() float64 {
	return p.s.value
}

// Next advances one sample at rate; audio goroutine only
func (p *SmoothParam) Next(rate float64) float64 {
	if t := p.target.Get(); t != p.s.target {
		p.s.set(t, p.tau.Get())
	}
	return p.s.next(rate)
}
