package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/tubby-terrors/audio"
	"github.com/lixenwraith/tubby-terrors/narrative"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "TUBBY_"

// Frontend selects the presentation collaborator
type Frontend string

const (
	FrontendTerminal Frontend = "terminal"
	FrontendWeb      Frontend = "web"
)

const (
	minFrameRate = 10
	maxFrameRate = 240
)

var ErrInvalidFrontend = errors.New("invalid frontend")

// Config is the process configuration
type Config struct {
	Frontend     Frontend `env:"FRONTEND" envDefault:"terminal"`
	Addr         string   `env:"ADDR" envDefault:":8080"`
	FrameRate    int      `env:"FRAME_RATE" envDefault:"60"`
	Debug        bool     `env:"DEBUG"`
	Seed         uint64   `env:"SEED"`
	OTELEndpoint string   `env:"OTEL_ENDPOINT"`

	Audio     audio.Config     `envPrefix:"AUDIO_"`
	Narrative narrative.Config `envPrefix:"NARRATIVE_"`
}

// Load parses TUBBY_* variables and normalizes the result
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown frontends and clamps numeric ranges in place
func (c *Config) Validate() error {
	switch c.Frontend {
	case FrontendTerminal, FrontendWeb:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFrontend, c.Frontend)
	}

	switch {
	case c.FrameRate < minFrameRate:
		c.FrameRate = minFrameRate
	case c.FrameRate > maxFrameRate:
		c.FrameRate = maxFrameRate
	}

	c.Audio.Normalize()

	if c.Narrative.MaxInflight < 1 {
		c.Narrative.MaxInflight = 1
	}
	if c.Narrative.Timeout <= 0 {
		c.Narrative.Timeout = narrative.DefaultConfig().Timeout
	}
	return nil
}

// FrameInterval is the ticker period for the configured frame rate
func (c *Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}
