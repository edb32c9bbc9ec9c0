package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/engine"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/replay"
)

func testView() engine.View {
	bounds := core.Bounds{W: 800, H: 600}
	return engine.View{
		Mode:   engine.ModePlaying,
		Bounds: bounds,
		Biome:  "space",
		Avatar: entity.NewAvatar(bounds.Center(), 12),
		Hazards: []replay.HazardSnapshot{{
			ID:         1,
			Kind:       entity.KindAsteroid,
			Shape:      entity.ShapeCircle,
			Color:      core.ColorBrown,
			Pos:        core.V(100, 100),
			Radius:     20,
			SpawnTimer: 1,
		}},
	}
}

// find returns the first cell holding r, or -1, -1.
func find(s *core.Screen, r rune) (int, int) {
	for y := range s.Height() {
		for x := range s.Width() {
			if s.Get(x, y) == r {
				return x, y
			}
		}
	}
	return -1, -1
}

func TestSurfaceDrawsAvatarAndHazards(t *testing.T) {
	scr := core.NewScreen(42, 16)
	surf := NewScreenSurface(scr)
	surf.SetHelp("q quit")
	surf.Draw(testView())

	ax, ay := find(scr, '@')
	if ax < 0 {
		t.Fatal("avatar not drawn")
	}
	// The arena spans columns 1..40 and rows 2..13.
	if ax != 21 || ay != 8 {
		t.Errorf("avatar at (%d, %d), want (21, 8)", ax, ay)
	}

	hx, hy := find(scr, '*')
	if hx < 0 {
		t.Fatal("asteroid not drawn")
	}
	if hx > ax || hy > ay {
		t.Errorf("asteroid at (%d, %d) should be up-left of the avatar", hx, hy)
	}

	if !strings.Contains(scr.Row(0), "SPACE") {
		t.Errorf("HUD line = %q", scr.Row(0))
	}
	if !strings.Contains(scr.Row(scr.Height()-1), "q quit") {
		t.Errorf("help line = %q", scr.Row(scr.Height()-1))
	}
}

func TestSurfaceFadingHazard(t *testing.T) {
	scr := core.NewScreen(42, 16)
	v := testView()
	v.Hazards[0].SpawnTimer = 0.3
	NewScreenSurface(scr).Draw(v)

	if x, _ := find(scr, '*'); x >= 0 {
		t.Error("fading hazard should not use its glyph")
	}
}

func TestSurfaceReplayCard(t *testing.T) {
	scr := core.NewScreen(60, 20)
	surf := NewScreenSurface(scr)
	surf.SetNote("new personal best, ghost saved")

	v := testView()
	v.Mode = engine.ModeReplay
	v.Stats = engine.RunStats{Biome: "space", Elapsed: 12.5, NearMisses: 4, DeathCause: entity.KindAsteroid}
	surf.Draw(v)

	out := scr.String()
	for _, want := range []string{"REPLAY", "survived 12.50s", "near misses 4", "new personal best"} {
		if !strings.Contains(out, want) {
			t.Errorf("replay screen missing %q", want)
		}
	}
}

func TestSurfaceTooSmall(t *testing.T) {
	scr := core.NewScreen(9, 4)
	NewScreenSurface(scr).Draw(testView())
	if !strings.Contains(scr.Row(0), "too small") {
		t.Errorf("row 0 = %q", scr.Row(0))
	}
}
