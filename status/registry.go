package status

import "sync/atomic"

// Metric keys written by the frame loop and services
const (
	KeyFrames             = "engine.frames"
	KeyPhase              = "session.phase"
	KeySessions           = "session.started"
	KeyCatches            = "session.catches"
	KeyWins               = "session.wins"
	KeyPickups            = "session.pickups"
	KeyProximity          = "pursuer.proximity"
	KeyChasing            = "pursuer.chasing"
	KeyNarrativeRequests  = "narrative.requests"
	KeyNarrativeFallbacks = "narrative.fallbacks"
	KeyNarrativeStale     = "narrative.stale"
	KeyAudioSilent        = "audio.silent"
	KeyAudioActive        = "audio.active"
	KeyNetworkClients     = "network.clients"
)

// Registry is the central metrics facade
// Writers cache pointers during init; update loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Export returns a point-in-time copy of every metric keyed by name
func (r *Registry) Export() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
