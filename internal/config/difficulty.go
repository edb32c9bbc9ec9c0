package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyConfig is a biome's spawn curve.
type DifficultyConfig struct {
	InitialInterval float64 `yaml:"initial_interval"` // seconds between spawns at t=0
	DecayRate       float64 `yaml:"decay_rate"`       // seconds removed per second survived
	MinInterval     float64 `yaml:"min_interval"`     // floor
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // applied to hazard base speeds
	PatternDelay    float64 `yaml:"pattern_delay"`    // interval multiplier after a multi-hazard pattern
}

// Interval returns the spawn interval after elapsed seconds of survival.
func (d DifficultyConfig) Interval(elapsed float64) float64 {
	return math.Max(d.MinInterval, d.InitialInterval-d.DecayRate*elapsed)
}

// Validate reports values the spawner cannot use.
func (d DifficultyConfig) Validate() error {
	switch {
	case d.MinInterval <= 0:
		return fmt.Errorf("difficulty: min_interval must be positive, got %v", d.MinInterval)
	case d.InitialInterval < d.MinInterval:
		return fmt.Errorf("difficulty: initial_interval %v is below min_interval %v", d.InitialInterval, d.MinInterval)
	case d.DecayRate < 0:
		return fmt.Errorf("difficulty: decay_rate must not be negative, got %v", d.DecayRate)
	case d.SpeedMultiplier <= 0:
		return fmt.Errorf("difficulty: speed_multiplier must be positive, got %v", d.SpeedMultiplier)
	case d.PatternDelay < 1:
		return fmt.Errorf("difficulty: pattern_delay must be at least 1, got %v", d.PatternDelay)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // no decay; the interval stays at its initial value
)

// Presets lists the accepted preset names in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// WithPreset returns the curve scaled for preset.
func (d DifficultyConfig) WithPreset(preset DifficultyPreset) DifficultyConfig {
	switch preset {
	case DifficultyEasy:
		d.InitialInterval *= 1.3
		d.MinInterval *= 1.3
		d.SpeedMultiplier *= 0.85
	case DifficultyHard:
		d.InitialInterval *= 0.75
		d.MinInterval *= 0.75
		d.SpeedMultiplier *= 1.15
	case DifficultyFixed:
		d.DecayRate = 0
	}
	return d
}
