package biome

import (
	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
)

func init() {
	Register(Biome{
		ID:          "space",
		Name:        "Deep Space",
		Description: "Asteroids, comets and tumbling satellites",
		Background:  core.ColorBlue,
		Difficulty:  config.DifficultyConfig{InitialInterval: 1.2, DecayRate: 0.012, MinInterval: 0.35, SpeedMultiplier: 1.0, PatternDelay: 1.6},
		Types: []TypeSpec{
			{Kind: entity.KindAsteroid, Weight: 0.5, Shape: entity.ShapeCircle, MinSize: 18, MaxSize: 34, MinSpeed: 120, MaxSpeed: 200, Spin: 1.5, Color: core.ColorGray},
			{Kind: entity.KindComet, Weight: 0.3, Shape: entity.ShapeCircle, MinSize: 10, MaxSize: 14, MinSpeed: 260, MaxSpeed: 340, Color: core.ColorBrightCyan},
			{Kind: entity.KindSatellite, Weight: 0.2, Shape: entity.ShapeRect, MinSize: 50, MaxSize: 70, Aspect: 0.4, MinSpeed: 90, MaxSpeed: 140, Spin: 0.8, Color: core.ColorWhite},
		},
	})

	Register(Biome{
		ID:          "pond",
		Name:        "Lily Pond",
		Description: "Drifting logs and frogs that leap at you",
		Background:  core.ColorGreen,
		Difficulty:  config.DifficultyConfig{InitialInterval: 1.4, DecayRate: 0.01, MinInterval: 0.5, SpeedMultiplier: 0.9, PatternDelay: 1.5},
		Types: []TypeSpec{
			{Kind: entity.KindLog, Weight: 0.6, Shape: entity.ShapeRect, MinSize: 90, MaxSize: 140, Aspect: 0.3, MinSpeed: 70, MaxSpeed: 110, Color: core.ColorBrown},
			{Kind: entity.KindFrog, Weight: 0.4, Shape: entity.ShapeCircle, MinSize: 14, MaxSize: 18, Color: core.ColorBrightGreen},
		},
	})

	Register(Biome{
		ID:          "city",
		Name:        "Neon City",
		Description: "Traffic, homing drones and targeting lasers",
		Background:  core.ColorMagenta,
		Difficulty:  config.DifficultyConfig{InitialInterval: 1.1, DecayRate: 0.012, MinInterval: 0.35, SpeedMultiplier: 1.05, PatternDelay: 1.6},
		Types: []TypeSpec{
			{Kind: entity.KindCar, Weight: 0.4, Shape: entity.ShapeRect, MinSize: 50, MaxSize: 60, Aspect: 0.5, MinSpeed: 200, MaxSpeed: 260, Color: core.ColorRed},
			{Kind: entity.KindTruck, Weight: 0.25, Shape: entity.ShapeRect, MinSize: 90, MaxSize: 110, Aspect: 0.45, MinSpeed: 140, MaxSpeed: 180, Color: core.ColorYellow},
			{Kind: entity.KindDrone, Weight: 0.2, Shape: entity.ShapeCircle, MinSize: 14, MaxSize: 16, MinSpeed: 150, MaxSpeed: 190, Color: core.ColorBrightMagenta},
			{Kind: entity.KindLaser, Weight: 0.15, Shape: entity.ShapeRect, Color: core.ColorBrightRed},
		},
	})

	Register(Biome{
		ID:          "billiards",
		Name:        "Billiards Hall",
		Description: "Bouncing balls and six hungry pockets",
		Background:  core.ColorGreen,
		Difficulty:  config.DifficultyConfig{InitialInterval: 1.5, DecayRate: 0.01, MinInterval: 0.6, SpeedMultiplier: 1.0, PatternDelay: 1.4},
		Types: []TypeSpec{
			{Kind: entity.KindBall, Weight: 0.75, Shape: entity.ShapeCircle, MinSize: 14, MaxSize: 16, MinSpeed: 220, MaxSpeed: 300, Color: core.ColorBrightYellow},
			{Kind: entity.KindCueBall, Weight: 0.25, Shape: entity.ShapeCircle, MinSize: 16, MaxSize: 16, MinSpeed: 300, MaxSpeed: 360, Color: core.ColorWhite},
		},
		Pockets: true,
	})

	Register(Biome{
		ID:          "volcano",
		Name:        "Volcano",
		Description: "Fireballs, rolling boulders and steam jets",
		Background:  core.ColorRed,
		Difficulty:  config.DifficultyConfig{InitialInterval: 1.2, DecayRate: 0.013, MinInterval: 0.35, SpeedMultiplier: 1.1, PatternDelay: 1.6},
		Types: []TypeSpec{
			{Kind: entity.KindFireball, Weight: 0.45, Shape: entity.ShapeCircle, MinSize: 12, MaxSize: 18, MinSpeed: 240, MaxSpeed: 320, Color: core.ColorOrange},
			{Kind: entity.KindBoulder, Weight: 0.35, Shape: entity.ShapeCircle, MinSize: 28, MaxSize: 40, MinSpeed: 110, MaxSpeed: 150, Spin: 2, Color: core.ColorBrown},
			{Kind: entity.KindJet, Weight: 0.2, Shape: entity.ShapeRect, Color: core.ColorBrightYellow},
		},
	})

	Register(Biome{
		ID:          "ocean",
		Name:        "Open Ocean",
		Description: "Sharks and slow drifting jellyfish",
		Background:  core.ColorBlue,
		Difficulty:  config.DifficultyConfig{InitialInterval: 1.3, DecayRate: 0.011, MinInterval: 0.4, SpeedMultiplier: 1.0, PatternDelay: 1.5},
		Types: []TypeSpec{
			{Kind: entity.KindShark, Weight: 0.55, Shape: entity.ShapeRect, MinSize: 70, MaxSize: 90, Aspect: 0.35, MinSpeed: 180, MaxSpeed: 240, Color: core.ColorGray},
			{Kind: entity.KindJellyfish, Weight: 0.45, Shape: entity.ShapeCircle, MinSize: 16, MaxSize: 24, MinSpeed: 50, MaxSpeed: 80, Color: core.ColorBrightMagenta},
		},
	})

	Register(Biome{
		ID:          "fortress",
		Name:        "Fortress Walls",
		Description: "Arrows, spinning saws and telegraphed volleys",
		Background:  core.ColorGray,
		Difficulty:  config.DifficultyConfig{InitialInterval: 1.3, DecayRate: 0.012, MinInterval: 0.45, SpeedMultiplier: 1.05, PatternDelay: 1.6},
		Types: []TypeSpec{
			{Kind: entity.KindArrow, Weight: 0.6, Shape: entity.ShapeRect, MinSize: 36, MaxSize: 44, Aspect: 0.15, MinSpeed: 300, MaxSpeed: 380, Color: core.ColorWhite},
			{Kind: entity.KindSaw, Weight: 0.4, Shape: entity.ShapeCircle, MinSize: 20, MaxSize: 26, MinSpeed: 160, MaxSpeed: 220, Spin: 8, Color: core.ColorGray},
		},
		Barrage: &BarrageSpec{Kind: entity.KindArrow, Edges: [2]core.Edge{core.EdgeLeft, core.EdgeRight}},
	})
}
