package audio

import (
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/vmath"
)

// Config holds audio settings, loaded from TUBBY_AUDIO_* variables
type Config struct {
	Enabled       bool    `env:"ENABLED" envDefault:"true"`
	SampleRate    int     `env:"SAMPLE_RATE" envDefault:"44100"`
	MasterVolume  float64 `env:"MASTER_VOLUME" envDefault:"1.0"`
	MusicVolume   float64 `env:"MUSIC_VOLUME" envDefault:"0.4"`
	EffectsVolume float64 `env:"EFFECTS_VOLUME" envDefault:"0.6"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		SampleRate:    constant.AudioSampleRate,
		MasterVolume:  constant.DefaultMasterVolume,
		MusicVolume:   constant.DefaultMusicVolume,
		EffectsVolume: constant.DefaultEffectsVolume,
	}
}

// Normalize clamps volumes to [0,1] and replaces an invalid sample rate
func (c *Config) Normalize() {
	if c.SampleRate <= 0 {
		c.SampleRate = constant.AudioSampleRate
	}
	c.MasterVolume = vmath.Clamp(c.MasterVolume, 0, 1)
	c.MusicVolume = vmath.Clamp(c.MusicVolume, 0, 1)
	c.EffectsVolume = vmath.Clamp(c.EffectsVolume, 0, 1)
}
