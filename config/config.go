// Package config defines game configuration and its layered loading.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile receives logs when Debug is set; the terminal belongs to the game.
	LogFile string `koanf:"log_file"`

	// Debug enables file logging.
	Debug bool `koanf:"debug"`

	// FPS is the fixed simulation and render rate.
	FPS int `koanf:"fps"`

	// BestOf selects the first match length: 3, 5 or 7.
	BestOf int `koanf:"best_of"`

	// Seed fixes the ball randomness; 0 seeds from the clock.
	Seed int64 `koanf:"seed"`

	// AudioEnabled turns sound cues on.
	AudioEnabled bool `koanf:"audio_enabled"`

	// MasterVolume scales all cues, 0.0 - 1.0.
	MasterVolume float64 `koanf:"master_volume"`

	// MetricsAddr serves Prometheus /metrics when non-empty, e.g. ":9464".
	MetricsAddr string `koanf:"metrics_addr"`

	// InputHoldMS is how long a direction stays held after its last key press.
	InputHoldMS int `koanf:"input_hold_ms"`

	// Color selects the palette: auto, color or mono.
	Color string `koanf:"color"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFile:      "logs/vi-pong.log",
		Debug:        false,
		FPS:          60,
		BestOf:       5,
		Seed:         0,
		AudioEnabled: true,
		MasterVolume: 0.5,
		MetricsAddr:  "",
		InputHoldMS:  120,
		Color:        "auto",
	}
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.FPS <= 0 || c.FPS > 1000:
		return fmt.Errorf("%w: fps must be in 1..1000, got %d", ErrInvalidConfig, c.FPS)
	case c.BestOf != 3 && c.BestOf != 5 && c.BestOf != 7:
		return fmt.Errorf("%w: best_of must be 3, 5 or 7, got %d", ErrInvalidConfig, c.BestOf)
	case c.MasterVolume < 0 || c.MasterVolume > 1:
		return fmt.Errorf("%w: master_volume must be in [0,1], got %g", ErrInvalidConfig, c.MasterVolume)
	case c.InputHoldMS <= 0:
		return fmt.Errorf("%w: input_hold_ms must be positive, got %d", ErrInvalidConfig, c.InputHoldMS)
	}

	switch c.Color {
	case "auto", "color", "mono":
	default:
		return fmt.Errorf("%w: color must be auto, color or mono, got %q", ErrInvalidConfig, c.Color)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// TickInterval is the frame period derived from FPS.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// HoldWindow is InputHoldMS as a duration.
func (c *Config) HoldWindow() time.Duration {
	return time.Duration(c.InputHoldMS) * time.Millisecond
}
