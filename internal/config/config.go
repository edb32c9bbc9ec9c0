// Package config provides YAML-based configuration loading and the
// difficulty curve for the dodge simulation.
package config

import (
	"errors"
	"fmt"
)

// Config contains every tunable of the simulation and its hosts.
type Config struct {
	World      WorldConfig              `yaml:"world"`
	Loop       LoopConfig               `yaml:"loop"`
	Avatar     AvatarConfig             `yaml:"avatar"`
	Collision  CollisionConfig          `yaml:"collision"`
	Replay     ReplayConfig             `yaml:"replay"`
	Hazards    HazardConfig             `yaml:"hazards"`
	Barrage    BarrageConfig            `yaml:"barrage"`
	Difficulty DifficultyPreset         `yaml:"difficulty"`
	Biomes     map[string]BiomeOverride `yaml:"biomes,omitempty"`
}

// WorldConfig defines the playfield size in world pixels.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoopConfig defines the fixed-step loop and the mode machine timings.
type LoopConfig struct {
	TargetFPS        int     `yaml:"target_fps"`
	BatterySaverFPS  int     `yaml:"battery_saver_fps"`
	MaxDelta         float64 `yaml:"max_delta"`           // seconds
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"` // catch-up bound per callback
	SlowMotion       float64 `yaml:"slow_motion"`         // time scale while dying
	DeathDuration    float64 `yaml:"death_duration"`      // seconds, unscaled
	ReplayGrace      float64 `yaml:"replay_grace"`        // pause before a replay loops
}

// AvatarConfig defines avatar physics.
type AvatarConfig struct {
	Radius       float64 `yaml:"radius"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"` // velocity easing rate per second
	TrailLength  int     `yaml:"trail_length"`
	PanicRange   float64 `yaml:"panic_range"`
	PanicEase    float64 `yaml:"panic_ease"`
}

// CollisionConfig defines hitbox tuning.
type CollisionConfig struct {
	HitboxBuffer   float64 `yaml:"hitbox_buffer"` // negative shrinks the lethal hitbox
	NearMissBuffer float64 `yaml:"near_miss_buffer"`
}

// ReplayConfig defines recorder and event queue capacities.
type ReplayConfig struct {
	Capacity         int `yaml:"capacity"`
	GhostCapacity    int `yaml:"ghost_capacity"`
	GhostSampleEvery int `yaml:"ghost_sample_every"`
	EventQueueSize   int `yaml:"event_queue_size"`
}

// PatternWeights are the relative odds of each spawn pattern.
type PatternWeights struct {
	Single   float64 `yaml:"single"`
	Line     float64 `yaml:"line"`
	Surround float64 `yaml:"surround"`
}

// HazardConfig defines spawning and per-family AI constants.
type HazardConfig struct {
	FadeTime        float64         `yaml:"fade_time"` // seconds for SpawnTimer 0→1
	OffscreenMargin float64         `yaml:"offscreen_margin"`
	Jitter          float64         `yaml:"jitter"` // lateral velocity spread for single spawns
	LineCount       int             `yaml:"line_count"`
	Patterns        PatternWeights  `yaml:"patterns"`
	BounceLimit     int             `yaml:"bounce_limit"`
	PocketRadius    float64         `yaml:"pocket_radius"`
	Frog            FrogConfig      `yaml:"frog"`
	Drone           DroneConfig     `yaml:"drone"`
	Laser           LaserConfig     `yaml:"laser"`
	Explosion       ExplosionConfig `yaml:"explosion"`
	Jet             JetConfig       `yaml:"jet"`
}

// FrogConfig tunes the jumper state machine.
type FrogConfig struct {
	Idle       float64 `yaml:"idle"`
	Charge     float64 `yaml:"charge"`
	Inaccuracy float64 `yaml:"inaccuracy"` // max aim error, radians
	JumpSpeed  float64 `yaml:"jump_speed"`
	Drag       float64 `yaml:"drag"`
	StopSpeed  float64 `yaml:"stop_speed"`
	LeaveSpeed float64 `yaml:"leave_speed"`
}

// DroneConfig tunes the tracker state machine.
type DroneConfig struct {
	TrackTime float64 `yaml:"track_time"`
	TurnRate  float64 `yaml:"turn_rate"` // radians per second
}

// LaserConfig tunes the beam state machine.
type LaserConfig struct {
	Warning        float64 `yaml:"warning"`
	FollowFraction float64 `yaml:"follow_fraction"`
	Active         float64 `yaml:"active"`
	Width          float64 `yaml:"width"`
}

// ExplosionConfig tunes the drone-collision explosion.
type ExplosionConfig struct {
	Lifetime  float64 `yaml:"lifetime"`
	Radius    float64 `yaml:"radius"`
	Knockback float64 `yaml:"knockback"`
}

// JetConfig tunes the volcano jet.
type JetConfig struct {
	Lifetime float64 `yaml:"lifetime"`
	Length   float64 `yaml:"length"`
	Width    float64 `yaml:"width"`
	Push     float64 `yaml:"push"`
}

// BarrageConfig defines the scripted wave.
type BarrageConfig struct {
	BaseInterval   float64 `yaml:"base_interval"`
	MinInterval    float64 `yaml:"min_interval"`
	IntervalShrink float64 `yaml:"interval_shrink"` // seconds removed per second survived
	Warning        float64 `yaml:"warning"`
	Duration       float64 `yaml:"duration"`
	StartRate      float64 `yaml:"start_rate"` // shots per second
	EndRate        float64 `yaml:"end_rate"`
	StartVariance  float64 `yaml:"start_variance"` // radians
	EndVariance    float64 `yaml:"end_variance"`
	StartSpeed     float64 `yaml:"start_speed"`
	EndSpeed       float64 `yaml:"end_speed"`
}

// BiomeOverride replaces parts of a built-in biome's tables.
type BiomeOverride struct {
	Difficulty *DifficultyConfig  `yaml:"difficulty,omitempty"`
	Weights    map[string]float64 `yaml:"weights,omitempty"`
}

// Validate reports configuration values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Loop.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("loop.target_fps must be positive, got %d", c.Loop.TargetFPS))
	}
	if c.Loop.BatterySaverFPS <= 0 {
		errs = append(errs, fmt.Errorf("loop.battery_saver_fps must be positive, got %d", c.Loop.BatterySaverFPS))
	}
	if c.Loop.MaxStepsPerFrame <= 0 {
		errs = append(errs, fmt.Errorf("loop.max_steps_per_frame must be positive, got %d", c.Loop.MaxStepsPerFrame))
	}
	if c.Loop.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("loop.max_delta must be positive, got %v", c.Loop.MaxDelta))
	}
	if c.Loop.SlowMotion <= 0 || c.Loop.SlowMotion > 1 {
		errs = append(errs, fmt.Errorf("loop.slow_motion must be in (0, 1], got %v", c.Loop.SlowMotion))
	}
	if c.Avatar.Radius <= 0 {
		errs = append(errs, fmt.Errorf("avatar.radius must be positive, got %v", c.Avatar.Radius))
	}
	if c.Hazards.FadeTime <= 0 {
		errs = append(errs, fmt.Errorf("hazards.fade_time must be positive, got %v", c.Hazards.FadeTime))
	}
	if c.Barrage.Warning >= c.Barrage.MinInterval {
		errs = append(errs, fmt.Errorf("barrage.warning (%v) must be shorter than barrage.min_interval (%v)",
			c.Barrage.Warning, c.Barrage.MinInterval))
	}
	if _, err := ParsePreset(string(c.Difficulty)); err != nil {
		errs = append(errs, err)
	}
	for id, o := range c.Biomes {
		if o.Difficulty != nil {
			if err := o.Difficulty.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("biomes.%s: %w", id, err))
			}
		}
	}
	return errors.Join(errs...)
}
