package narrative

import "time"

// Config holds narrative provider settings, loaded from TUBBY_NARRATIVE_* variables
// An empty APIKey runs offline on fallback text only
type Config struct {
	APIKey      string        `env:"API_KEY"`
	BaseURL     string        `env:"BASE_URL"`
	Model       string        `env:"MODEL" envDefault:"gpt-4o-mini"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"8s"`
	MaxInflight int64         `env:"MAX_INFLIGHT" envDefault:"2"`
}

// DefaultConfig returns offline settings
func DefaultConfig() Config {
	return Config{
		Model:       "gpt-4o-mini",
		Timeout:     8 * time.Second,
		MaxInflight: 2,
	}
}
