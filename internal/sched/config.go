package sched

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml.
type Config struct {
	ReferenceWeight float64 `yaml:"reference_weight"` // 1024 (by default), weight of a neutral task
	Granularity     float64 `yaml:"granularity"`      // 1 (by default), vruntime lead before preemption
	Tick            int64   `yaml:"tick"`             // 1 (by default), simulated units per tick
	TargetLatency   float64 `yaml:"target_latency"`   // 20 (by default), used for the ideal slice only
	MinGranularity  float64 `yaml:"min_granularity"`  // 1 (by default), floor of the ideal slice
	MaxTicks        int64   `yaml:"max_ticks"`        // 100000 (by default)
	PaceMS          int     `yaml:"pace_ms"`          // 0 (by default), wall-clock delay per tick
}

// DefaultConfig returns the values used when no config file is given.
func DefaultConfig() Config {
	return Config{
		ReferenceWeight: 1024,
		Granularity:     1,
		Tick:            1,
		TargetLatency:   20,
		MinGranularity:  1,
		MaxTicks:        100000,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.Sanitize(), nil
}

// Sanitize applies the sanity clamps to a config.
func (c Config) Sanitize() Config {
	def := DefaultConfig()
	if c.ReferenceWeight <= 0 {
		c.ReferenceWeight = def.ReferenceWeight
	}
	if c.Granularity < 0 {
		c.Granularity = 0
	}
	if c.Tick <= 0 {
		c.Tick = def.Tick
	}
	if c.TargetLatency <= 0 {
		c.TargetLatency = def.TargetLatency
	}
	if c.MinGranularity <= 0 {
		c.MinGranularity = def.MinGranularity
	}
	if c.MaxTicks <= 0 {
		c.MaxTicks = def.MaxTicks
	}
	if c.PaceMS < 0 {
		c.PaceMS = 0
	}
	return c
}
