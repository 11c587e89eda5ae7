// Package config provides host settings shared by the game binaries.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Host holds settings read from the environment.
type Host struct {
	SSHHost     string `env:"CATCHER_SSH_HOST"     envDefault:"::"`
	SSHPort     string `env:"CATCHER_SSH_PORT"     envDefault:"2222"`
	HostKeyPath string `env:"CATCHER_SSH_HOST_KEY" envDefault:"/app/keys/host_key"`

	TuningPath string `env:"CATCHER_TUNING"` // Optional .toml/.yaml tuning file
	Seed       uint64 `env:"CATCHER_SEED"`   // 0 seeds from the clock
	Audio      bool   `env:"CATCHER_AUDIO"  envDefault:"true"`
	FPS        int    `env:"CATCHER_FPS"    envDefault:"60"`

	Log LogConfig `envPrefix:"CATCHER_LOG_"`
}

// LogConfig selects the zap encoder, level and destination.
type LogConfig struct {
	Level  string `env:"LEVEL"  envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"console"` // "json" or "console"
	File   string `env:"FILE"`                        // Empty means the host's default sink
}

// LoadHost parses Host from the environment.
func LoadHost() (Host, error) {
	var h Host
	if err := env.Parse(&h); err != nil {
		return Host{}, fmt.Errorf("parse env: %w", err)
	}
	if h.FPS <= 0 {
		return Host{}, fmt.Errorf("parse env: CATCHER_FPS must be positive, got %d", h.FPS)
	}
	return h, nil
}
