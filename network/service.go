package network

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/status"
)

// Service wraps Transport as a hub-managed service (disabled without an address)
type Service struct {
	config    *Config
	registry  *status.Registry
	transport *Transport

	frames      atomic.Int64
	statClients *atomic.Int64
	disabled    atomic.Bool
}

// NewService creates a network service
func NewService(reg *status.Registry) *Service {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Service{
		config:      DefaultConfig(),
		registry:    reg,
		statClients: reg.Ints.Get(status.KeyNetworkClients),
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return []string{"status"}
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default; empty Address disables)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}
	if s.config.BroadcastDivisor < 1 {
		s.config.BroadcastDivisor = 1
	}

	if s.config.Address == "" {
		s.disabled.Store(true)
		return nil
	}

	s.transport = NewTransport(s.config, s.registry)
	s.transport.SetHandlers(s.onConnect, s.onDisconnect)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.disabled.Load() || s.transport == nil {
		return nil
	}
	return s.transport.Start()
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if s.transport != nil {
		return s.transport.Stop()
	}
	return nil
}

// Attach routes client input to the game and snapshots back to clients
// Must be called before the game runs
func (s *Service) Attach(g *engine.Game) {
	if s.transport == nil {
		return
	}
	s.transport.SetSink(Sink{Events: g.Inputs(), Intents: g.Intents()})
	g.Subscribe(s.Publish)
}

// Publish broadcasts every BroadcastDivisor-th snapshot
// Runs on the frame goroutine: encodes once and never blocks on a client
func (s *Service) Publish(snap *engine.Snapshot) {
	if s.transport == nil {
		return
	}
	n := s.frames.Add(1)
	if (n-1)%int64(s.config.BroadcastDivisor) != 0 || s.transport.PeerCount() == 0 {
		return
	}
	data, err := EncodeSnapshot(snap)
	if err != nil {
		log.Printf("snapshot encode: %v", err)
		return
	}
	s.transport.Broadcast(data)
}

// Transport returns the underlying transport, nil when disabled
func (s *Service) Transport() *Transport {
	return s.transport
}

// PeerCount returns connected client count
func (s *Service) PeerCount() int {
	if s.transport == nil {
		return 0
	}
	return s.transport.PeerCount()
}

// IsRunning returns true if the bridge is serving
func (s *Service) IsRunning() bool {
	return s.transport != nil && s.transport.IsRunning()
}

func (s *Service) onConnect(id PeerID) {
	s.statClients.Add(1)
	log.Printf("web client %s connected", id)
}

func (s *Service) onDisconnect(id PeerID) {
	s.statClients.Add(-1)
	log.Printf("web client %s disconnected", id)
}
