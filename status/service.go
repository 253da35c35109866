package status

// Service owns the process-wide Registry as a Service
type Service struct {
	registry *Registry
}

// NewService creates the status service with a fresh registry
func NewService() *Service {
	return &Service{registry: NewRegistry()}
}

// Name implements Service
func (s *Service) Name() string {
	return "status"
}

// Dependencies implements Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements Service
func (s *Service) Init(args ...any) error {
	return nil
}

// Start implements Service
func (s *Service) Start() error {
	return nil
}

// Stop implements Service
func (s *Service) Stop() error {
	return nil
}

// Registry returns the shared metrics registry
func (s *Service) Registry() *Registry {
	return s.registry
}
