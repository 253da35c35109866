package service

// Service is a long-lived subsystem owned by the Hub: the audio device, the narrative client, the web bridge
//
// The Hub calls Init in dependency order, then Start on every service, and Stop in reverse order at shutdown
type Service interface {
	Name() string

	// Dependencies names services that must be initialized first
	Dependencies() []string

	// Init receives service-specific configuration, typically a single *Config
	Init(args ...any) error

	// Start launches background work; it runs only after every service initialized
	Start() error

	// Stop releases resources and may be called more than once
	Stop() error
}
