package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ScreenFactory creates an initialized screen
type ScreenFactory func() (tcell.Screen, error)

// Service manages the terminal screen lifecycle
// The screen is restored on Stop so logs and panics print to a sane terminal
type Service struct {
	factory  ScreenFactory
	screen   tcell.Screen
	finiOnce sync.Once
	mu       sync.Mutex
}

// NewService creates a terminal service; nil factory uses the host terminal
func NewService(factory ScreenFactory) *Service {
	if factory == nil {
		factory = NewScreen
	}
	return &Service{factory: factory}
}

// Name implements Service
func (s *Service) Name() string {
	return "terminal"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - false leaves the terminal untouched (web frontend)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if enabled, ok := args[0].(bool); ok && !enabled {
			return nil
		}
	}

	screen, err := s.factory()
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	s.mu.Lock()
	s.screen = screen
	s.mu.Unlock()
	return nil
}

// Start implements Service
func (s *Service) Start() error {
	return nil
}

// Stop implements Service - restores the terminal
func (s *Service) Stop() error {
	s.mu.Lock()
	screen := s.screen
	s.mu.Unlock()
	if screen == nil {
		return nil
	}
	s.finiOnce.Do(screen.Fini)
	return nil
}

// Screen returns the managed screen, nil when disabled
func (s *Service) Screen() tcell.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}
