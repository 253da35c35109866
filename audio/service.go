package audio

import (
	"sync/atomic"

	"github.com/lixenwraith/tubby-terrors/status"
)

// Service wraps Engine as a Service
// Activation is deferred to the first player gesture, so Start opens nothing
type Service struct {
	engine   *Engine
	output   Output
	registry *status.Registry
	disabled atomic.Bool
}

// NewService creates an audio service playing through output (nil for silent)
func NewService(output Output, reg *status.Registry) *Service {
	return &Service{output: output, registry: reg}
}

// Name implements Service
func (s *Service) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return []string{"status"}
}

// Init implements Service
// args[0]: Config - audio settings (defaults when absent)
func (s *Service) Init(args ...any) error {
	cfg := DefaultConfig()
	if len(args) > 0 {
		if c, ok := args[0].(Config); ok {
			cfg = c
		}
	}
	if !cfg.Enabled || s.output == nil {
		s.disabled.Store(true)
	}
	s.engine = NewEngine(cfg, s.output)
	return nil
}

// Start implements Service
func (s *Service) Start() error {
	if s.registry != nil {
		s.registry.Bools.Get(status.KeyAudioSilent).Store(s.disabled.Load())
	}
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	if s.engine != nil {
		s.engine.Silence()
		s.engine.Close()
	}
	return nil
}

// IsDisabled returns true if audio can never activate
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}

// Engine returns the engine; nil before Init
func (s *Service) Engine() *Engine {
	return s.engine
}
