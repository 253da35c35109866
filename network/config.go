package network

import (
	"time"

	"github.com/lixenwraith/tubby-terrors/constant"
)

// Config holds web bridge configuration
type Config struct {
	// Address to bind; empty disables the bridge
	Address string

	// Connection limits
	MaxClients int
	ReadLimit  int64

	// Timing
	WriteTimeout time.Duration
	PongTimeout  time.Duration
	PingInterval time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int

	// BroadcastDivisor sends one snapshot every N frames
	BroadcastDivisor int
}

// DefaultConfig returns local-play defaults
func DefaultConfig() *Config {
	return &Config{
		Address:          ":8080",
		MaxClients:       4,
		ReadLimit:        4 * 1024,
		WriteTimeout:     5 * time.Second,
		PongTimeout:      30 * time.Second,
		PingInterval:     10 * time.Second,
		ReadBufferSize:   1024,
		WriteBufferSize:  16 * 1024,
		SendQueueSize:    8,
		BroadcastDivisor: constant.SnapshotBroadcastDivisor,
	}
}

// ListenConfig returns defaults bound to addr
func ListenConfig(addr string) *Config {
	cfg := DefaultConfig()
	cfg.Address = addr
	return cfg
}
