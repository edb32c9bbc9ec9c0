package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration. It mirrors the
// embedded defaults/dodge.yaml.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:  800,
			Height: 600,
		},
		Loop: LoopConfig{
			TargetFPS:        60,
			BatterySaverFPS:  30,
			MaxDelta:         0.1,
			MaxStepsPerFrame: 6,
			SlowMotion:       0.3,
			DeathDuration:    1.5,
			ReplayGrace:      1.0,
		},
		Avatar: AvatarConfig{
			Radius:       16,
			MaxSpeed:     340,
			Acceleration: 12,
			TrailLength:  12,
			PanicRange:   180,
			PanicEase:    4,
		},
		Collision: CollisionConfig{
			HitboxBuffer:   -6,
			NearMissBuffer: 35,
		},
		Replay: ReplayConfig{
			Capacity:         600,
			GhostCapacity:    4500,
			GhostSampleEvery: 4,
			EventQueueSize:   256,
		},
		Hazards: HazardConfig{
			FadeTime:        0.5,
			OffscreenMargin: 120,
			Jitter:          60,
			LineCount:       5,
			Patterns: PatternWeights{
				Single:   0.6,
				Line:     0.25,
				Surround: 0.15,
			},
			BounceLimit:  3,
			PocketRadius: 28,
			Frog: FrogConfig{
				Idle:       0.8,
				Charge:     0.4,
				Inaccuracy: 0.3,
				JumpSpeed:  420,
				Drag:       2.5,
				StopSpeed:  20,
				LeaveSpeed: 220,
			},
			Drone: DroneConfig{
				TrackTime: 4,
				TurnRate:  2.5,
			},
			Laser: LaserConfig{
				Warning:        1.2,
				FollowFraction: 0.8,
				Active:         0.35,
				Width:          6,
			},
			Explosion: ExplosionConfig{
				Lifetime:  0.5,
				Radius:    60,
				Knockback: 420,
			},
			Jet: JetConfig{
				Lifetime: 2.5,
				Length:   180,
				Width:    40,
				Push:     360,
			},
		},
		Barrage: BarrageConfig{
			BaseInterval:   20,
			MinInterval:    8,
			IntervalShrink: 0.05,
			Warning:        2,
			Duration:       5,
			StartRate:      3,
			EndRate:        9,
			StartVariance:  0.5,
			EndVariance:    0.1,
			StartSpeed:     260,
			EndSpeed:       420,
		},
		Difficulty: DifficultyNormal,
	}
}

// DefaultYAML returns the embedded default configuration file, for
// `dodge config` style dumps and for users seeding their own copy.
func DefaultYAML() []byte {
	return defaultYAML
}
