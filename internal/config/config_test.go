package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults drifted from DefaultConfig()\nembedded: %+v\nhardcoded: %+v", cfg, DefaultConfig())
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig() is invalid: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loop.TargetFPS != 60 || cfg.Collision.NearMissBuffer != 35 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadUserConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".dodge", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("loop:\n  target_fps: 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loop.TargetFPS != 30 {
		t.Errorf("TargetFPS = %d, expected 30 from user config", cfg.Loop.TargetFPS)
	}
	if cfg.Loop.BatterySaverFPS != 30 || cfg.Avatar.Radius != 16 {
		t.Error("fields absent from the file should keep their defaults")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	body := `
difficulty: hard
biomes:
  pond:
    weights:
      log: 0.7
      frog: 0.3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Difficulty != DifficultyHard {
		t.Errorf("Difficulty = %q", cfg.Difficulty)
	}
	if w := cfg.Biomes["pond"].Weights["log"]; w != 0.7 {
		t.Errorf("pond log weight = %v", w)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("loop:\n  target_fps: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "target_fps") {
		t.Errorf("expected a target_fps validation error, got %v", err)
	}
}

func TestDifficultyInterval(t *testing.T) {
	d := DifficultyConfig{InitialInterval: 2, DecayRate: 0.1, MinInterval: 0.5, SpeedMultiplier: 1, PatternDelay: 1.5}

	tests := []struct {
		elapsed float64
		want    float64
	}{
		{0, 2},
		{5, 1.5},
		{15, 0.5},
		{100, 0.5},
	}
	for _, tt := range tests {
		if got := d.Interval(tt.elapsed); got != tt.want {
			t.Errorf("Interval(%v) = %v, expected %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestPresets(t *testing.T) {
	base := DifficultyConfig{InitialInterval: 2, DecayRate: 0.1, MinInterval: 0.4, SpeedMultiplier: 1, PatternDelay: 1.5}

	easy := base.WithPreset(DifficultyEasy)
	hard := base.WithPreset(DifficultyHard)
	if !(easy.InitialInterval > base.InitialInterval && hard.InitialInterval < base.InitialInterval) {
		t.Errorf("easy/hard should widen/narrow the interval: %v %v", easy.InitialInterval, hard.InitialInterval)
	}
	if base.WithPreset(DifficultyNormal) != base {
		t.Error("normal should leave the curve unchanged")
	}
	if fixed := base.WithPreset(DifficultyFixed); fixed.Interval(1000) != base.InitialInterval {
		t.Error("fixed should never decay")
	}

	for _, name := range []string{"", "Easy", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q): %v", name, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestValidateBiomeOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Biomes = map[string]BiomeOverride{
		"space": {Difficulty: &DifficultyConfig{InitialInterval: 1, MinInterval: 0, SpeedMultiplier: 1, PatternDelay: 1}},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "biomes.space") {
		t.Errorf("expected a biomes.space error, got %v", err)
	}
}

func TestValidateLoop(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero fps", func(c *Config) { c.Loop.TargetFPS = 0 }, "loop.target_fps"},
		{"zero catch-up", func(c *Config) { c.Loop.MaxStepsPerFrame = 0 }, "loop.max_steps_per_frame"},
		{"negative catch-up", func(c *Config) { c.Loop.MaxStepsPerFrame = -2 }, "loop.max_steps_per_frame"},
		{"zero max delta", func(c *Config) { c.Loop.MaxDelta = 0 }, "loop.max_delta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected a %s error, got %v", tt.want, err)
			}
		})
	}
}
