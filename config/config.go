package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/soundstage/parameter"
)

// Config carries runtime tuning, populated from SOUNDSTAGE_* environment
// variables with sensible defaults
type Config struct {
	// TickInterval is the dispatch loop cadence
	TickInterval time.Duration `env:"SOUNDSTAGE_TICK_INTERVAL"`

	// RepeatInterval is the default action repeat used by level builders
	RepeatInterval time.Duration `env:"SOUNDSTAGE_REPEAT_INTERVAL"`

	// MouseEnabled turns pointer reporting on in the input driver
	MouseEnabled bool `env:"SOUNDSTAGE_MOUSE" envDefault:"true"`

	// AudioEnabled turns the earcon player on
	AudioEnabled bool `env:"SOUNDSTAGE_AUDIO" envDefault:"true"`

	// MasterVolume scales all earcons, 0.0-1.0
	MasterVolume float64 `env:"SOUNDSTAGE_VOLUME" envDefault:"0.8"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		TickInterval:   parameter.DefaultTickInterval,
		RepeatInterval: parameter.DefaultRepeatInterval,
		MouseEnabled:   true,
		AudioEnabled:   true,
		MasterVolume:   0.8,
	}
}

// Load parses the environment over the defaults
func Load() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = parameter.DefaultTickInterval
	}
	if cfg.RepeatInterval <= 0 {
		cfg.RepeatInterval = parameter.DefaultRepeatInterval
	}
	if cfg.MasterVolume < 0 {
		cfg.MasterVolume = 0
	}
	if cfg.MasterVolume > 1 {
		cfg.MasterVolume = 1
	}
	return cfg, nil
}
