package biome

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
)

func TestBuiltinBiomes(t *testing.T) {
	want := []string{"billiards", "city", "fortress", "ocean", "pond", "space", "volcano"}
	list := List()
	if len(list) != len(want) {
		t.Fatalf("List() has %d biomes, expected %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("List()[%d] = %q, expected %q", i, list[i].ID, id)
		}
	}

	for _, info := range list {
		b, err := Lookup(info.ID)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", info.ID, err)
		}
		if err := b.Difficulty.Validate(); err != nil {
			t.Errorf("%s: %v", b.ID, err)
		}
		if len(b.Types) == 0 {
			t.Errorf("%s has no hazard types", b.ID)
		}
		for _, ts := range b.Types {
			if ts.Weight <= 0 || !ts.Kind.Lethal() && !ts.Kind.Pushes() {
				t.Errorf("%s: bad type entry %+v", b.ID, ts)
			}
		}
		if (b.Barrage != nil) != (b.ID == "fortress") {
			t.Errorf("%s: only fortress should carry a barrage", b.ID)
		}
	}
}

func TestPondIsLogsAndFrogs(t *testing.T) {
	b, err := Lookup("pond")
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Types) != 2 || b.Types[0].Kind != entity.KindLog || b.Types[1].Kind != entity.KindFrog {
		t.Errorf("pond types = %+v", b.Types)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("moon")
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
	if Exists("moon") || !Exists("space") {
		t.Error("Exists() disagrees with the registry")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate id should panic")
		}
	}()
	Register(Biome{ID: "space"})
}

func TestPocketZones(t *testing.T) {
	b, _ := Lookup("billiards")
	zones := b.PocketZones(core.Bounds{W: 800, H: 600}, 28)
	if len(zones) != 6 {
		t.Fatalf("expected 6 pockets, got %d", len(zones))
	}
	if zones[4].Pos != core.V(400, 0) || zones[5].Pos != core.V(400, 600) {
		t.Errorf("mid pockets should sit on the long edges: %+v %+v", zones[4].Pos, zones[5].Pos)
	}

	space, _ := Lookup("space")
	if space.PocketZones(core.Bounds{W: 800, H: 600}, 28) != nil {
		t.Error("space has no pockets")
	}
}

func TestResolveOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Difficulty = config.DifficultyHard
	cfg.Biomes = map[string]config.BiomeOverride{
		"pond": {Weights: map[string]float64{"frog": 0.9}},
	}

	b, err := Resolve("pond", cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	frog, _ := b.Spec(entity.KindFrog)
	if frog.Weight != 0.9 {
		t.Errorf("frog weight = %v, expected 0.9", frog.Weight)
	}
	orig, _ := Lookup("pond")
	if b.Difficulty.InitialInterval >= orig.Difficulty.InitialInterval {
		t.Error("hard preset should shorten the interval")
	}
	if f, _ := orig.Spec(entity.KindFrog); f.Weight != 0.4 {
		t.Error("override leaked into the registered biome")
	}

	cfg.Biomes = map[string]config.BiomeOverride{"pond": {Weights: map[string]float64{"shark": 1}}}
	if _, err := Resolve("pond", cfg); err == nil {
		t.Error("a hazard foreign to the biome should be rejected")
	}
}
