package main

import (
	"errors"
	"flag"
	"testing"

	"github.com/lixenwraith/tubby-terrors/config"
)

func setFlag(t *testing.T, name, value string) {
	t.Helper()
	f := flag.Lookup(name)
	prev := f.Value.String()
	if err := flag.Set(name, value); err != nil {
		t.Fatalf("Set %s failed: %v", name, err)
	}
	t.Cleanup(func() { f.Value.Set(prev) })
}

func TestApplyFlagsOverridesEnvironment(t *testing.T) {
	setFlag(t, "frontend", "web")
	setFlag(t, "seed", "99")
	setFlag(t, "mute", "true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := applyFlags(&cfg); err != nil {
		t.Fatalf("applyFlags failed: %v", err)
	}
	if cfg.Frontend != config.FrontendWeb {
		t.Errorf("Expected web frontend, got %q", cfg.Frontend)
	}
	if cfg.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", cfg.Seed)
	}
	if cfg.Audio.Enabled {
		t.Error("Expected audio disabled by -mute")
	}
}

func TestApplyFlagsValidates(t *testing.T) {
	setFlag(t, "frontend", "holodeck")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := applyFlags(&cfg); !errors.Is(err, config.ErrInvalidFrontend) {
		t.Errorf("Expected ErrInvalidFrontend, got %v", err)
	}
}
