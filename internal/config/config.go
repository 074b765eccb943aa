// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DriveConfig shapes the automatic speed trace fed to the engines.
type DriveConfig struct {
	MinSpeedKmh   float64 `yaml:"min_speed_kmh"`
	MaxSpeedKmh   float64 `yaml:"max_speed_kmh"`
	PeriodSeconds float64 `yaml:"period_s"`
	// Stall window as fractions of the period; equal values disable it.
	StallFrom float64 `yaml:"stall_from"`
	StallTo   float64 `yaml:"stall_to"`
}

// GreptimeConfig points the frame-stat sink at a GreptimeDB instance.
type GreptimeConfig struct {
	Endpoint string `yaml:"endpoint"`
	Database string `yaml:"database"`
}

// SinkConfig selects where frame-stat rows go.
type SinkConfig struct {
	// LogFile appends JSONL frame rows when set.
	LogFile  string         `yaml:"log_file"`
	Greptime GreptimeConfig `yaml:"greptime"`
}

// Config is the root configuration for the visualization run.
type Config struct {
	Vehicle string      `yaml:"vehicle"`
	TickMS  int         `yaml:"tick_ms"`
	Drive   DriveConfig `yaml:"drive"`
	Sinks   SinkConfig  `yaml:"sinks"`
}

// Default returns the compiled-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Vehicle: "gt",
		TickMS:  33,
		Drive: DriveConfig{
			MinSpeedKmh:   0,
			MaxSpeedKmh:   350,
			PeriodSeconds: 45,
			StallFrom:     0.7,
			StallTo:       0.8,
		},
	}
}

// TickInterval converts the configured frame interval, defaulting to ~30fps.
func (c *Config) TickInterval() time.Duration {
	if c.TickMS <= 0 {
		return 33 * time.Millisecond
	}
	return time.Duration(c.TickMS) * time.Millisecond
}

// Load loads YAML config and validates it against a CUE schema. An empty
// config path yields the defaults; an empty schema path skips validation.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %w", err)
	}
	return cfg, nil
}
