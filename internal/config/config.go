// Package config loads and saves the engine process's YAML configuration,
// following ledcube/internal/config/config.go's shape: a flat struct,
// Load/Save built on gopkg.in/yaml.v3, and a Default() for running with no
// config file at all.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/ledcube-engine/internal/color"
)

// SPI configures the Linux raw-SPI output driver.
type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2400000
	ResetUs int    `yaml:"reset_us"` // e.g. 300
}

// Filters configures the output filter chain's static parameters.
type Filters struct {
	MinBrightness   uint8     `yaml:"min_brightness"`
	Scale           uint8     `yaml:"scale"`
	ColorCorrection color.Rgb `yaml:"color_correction"`
}

// Timings configures how long each kind of animated transition takes, in
// milliseconds on the wire.
type Timings struct {
	FadeOutMs     int `yaml:"fade_out_ms"`
	FadeInMs      int `yaml:"fade_in_ms"`
	ColorChangeMs int `yaml:"color_change_ms"`
	BrightnessMs  int `yaml:"brightness_ms"`
}

// Config is the engine process's complete static configuration.
type Config struct {
	// Strip geometry and output.
	PixelCount int    `yaml:"pixel_count"`
	ColorOrder string `yaml:"color_order"` // 3-letter permutation, e.g. "GRB"
	Driver     string `yaml:"driver"`      // "spi" | "sim"
	SPI        SPI    `yaml:"spi,omitempty"`

	// Scheduling.
	FPS int `yaml:"fps"`

	// Initial light state.
	InitialEffect     string    `yaml:"initial_effect"`
	InitialBrightness uint8     `yaml:"initial_brightness"`
	InitialColor      color.Rgb `yaml:"initial_color"`

	Timings Timings `yaml:"timings"`
	Filters Filters `yaml:"filters"`

	// Ambient.
	LogLevel   string `yaml:"log_level"`
	ControlBind string `yaml:"control_bind"`
}

// Default returns a safe configuration usable with no config file present.
func Default() *Config {
	return &Config{
		PixelCount: 60,
		ColorOrder: "GRB",
		Driver:     "sim",
		SPI: SPI{
			Dev:     "/dev/spidev0.0",
			SpeedHz: 2400000,
			ResetUs: 300,
		},
		FPS:               90,
		InitialEffect:     "static",
		InitialBrightness: 128,
		InitialColor:      color.Rgb{R: 255, G: 255, B: 255},
		Timings: Timings{
			FadeOutMs:     400,
			FadeInMs:      400,
			ColorChangeMs: 250,
			BrightnessMs:  250,
		},
		Filters: Filters{
			MinBrightness:   0,
			Scale:           255,
			ColorCorrection: color.Rgb{R: 255, G: 255, B: 255},
		},
		LogLevel:    "info",
		ControlBind: "127.0.0.1:8090",
	}
}

// Load reads and decodes the YAML document at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save encodes c as YAML and writes it to path.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// FadeOutDuration returns the configured fade-out duration.
func (t Timings) FadeOutDuration() time.Duration { return time.Duration(t.FadeOutMs) * time.Millisecond }

// FadeInDuration returns the configured fade-in duration.
func (t Timings) FadeInDuration() time.Duration { return time.Duration(t.FadeInMs) * time.Millisecond }

// ColorChangeDuration returns the configured color-change duration.
func (t Timings) ColorChangeDuration() time.Duration {
	return time.Duration(t.ColorChangeMs) * time.Millisecond
}

// BrightnessDuration returns the configured brightness-change duration.
func (t Timings) BrightnessDuration() time.Duration {
	return time.Duration(t.BrightnessMs) * time.Millisecond
}
