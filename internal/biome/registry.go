// Package biome provides the registry of themed arenas. Each biome carries
// its hazard palette, spawn curve, static pockets and barrage table.
// Built-in biomes register themselves in init(), and the simulation looks
// them up by ID without hardcoded dependencies.
package biome

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-dodge/internal/collision"
	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
)

// ErrUnknown is returned when a biome ID is not registered.
var ErrUnknown = errors.New("unknown biome")

// TypeSpec describes how one hazard kind is drawn in a biome.
type TypeSpec struct {
	Kind     entity.Kind
	Weight   float64
	Shape    entity.Shape
	MinSize  float64 // radius for circles, width for rectangles
	MaxSize  float64
	Aspect   float64 // rectangle height / width
	MinSpeed float64 // px/s before the speed multiplier
	MaxSpeed float64
	Spin     float64 // max |spin| in rad/s
	Color    core.Color
}

// Moves reports whether hazards of this type drift at a drawn speed.
// Frogs, lasers and jets have no speed range and move by their own AI.
func (s TypeSpec) Moves() bool {
	return s.MaxSpeed > 0
}

// BarrageSpec enables the scripted wave on a biome.
type BarrageSpec struct {
	Kind  entity.Kind
	Edges [2]core.Edge // opposite edges the wave may come from
}

// Biome is a themed arena.
type Biome struct {
	ID          string
	Name        string
	Description string
	Background  core.Color
	Difficulty  config.DifficultyConfig
	Types       []TypeSpec
	Pockets     bool         // billiards-style pockets at corners and long-edge midpoints
	Barrage     *BarrageSpec // nil when the biome has no barrage
}

// Weights returns the type weights in table order.
func (b Biome) Weights() []float64 {
	w := make([]float64, len(b.Types))
	for i, t := range b.Types {
		w[i] = t.Weight
	}
	return w
}

// Spec returns the table entry for kind.
func (b Biome) Spec(kind entity.Kind) (TypeSpec, bool) {
	for _, t := range b.Types {
		if t.Kind == kind {
			return t, true
		}
	}
	return TypeSpec{}, false
}

// PocketZones lays out the six pockets for bounds: four corners and the
// midpoints of the two long edges. It returns nil when the biome has none.
func (b Biome) PocketZones(bounds core.Bounds, radius float64) []collision.Pocket {
	if !b.Pockets {
		return nil
	}
	zones := make([]collision.Pocket, 0, 6)
	for _, c := range bounds.Corners() {
		zones = append(zones, collision.Pocket{Pos: c, Radius: radius})
	}
	if bounds.W >= bounds.H {
		zones = append(zones,
			collision.Pocket{Pos: core.V(bounds.W/2, 0), Radius: radius},
			collision.Pocket{Pos: core.V(bounds.W/2, bounds.H), Radius: radius},
		)
	} else {
		zones = append(zones,
			collision.Pocket{Pos: core.V(0, bounds.H/2), Radius: radius},
			collision.Pocket{Pos: core.V(bounds.W, bounds.H/2), Radius: radius},
		)
	}
	return zones
}

// clone copies the slices so overrides never touch the registered table.
func (b Biome) clone() Biome {
	b.Types = append([]TypeSpec(nil), b.Types...)
	if b.Barrage != nil {
		spec := *b.Barrage
		b.Barrage = &spec
	}
	return b
}

// Info contains metadata about a registered biome.
type Info struct {
	ID          string
	Name        string
	Description string
	Barrage     bool
	Background  core.Color
}

var (
	biomes = make(map[string]Biome)
	mu     sync.RWMutex
)

// Register adds a biome to the registry.
// Typically called from an init() function.
// Panics if a biome with the same ID is already registered.
func Register(b Biome) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := biomes[b.ID]; exists {
		panic(fmt.Sprintf("biome: %q already registered", b.ID))
	}
	biomes[b.ID] = b.clone()
}

// List returns information about all registered biomes, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(biomes))
	for _, b := range biomes {
		result = append(result, Info{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
			Barrage:     b.Barrage != nil,
			Background:  b.Background,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns a copy of the registered biome.
func Lookup(id string) (Biome, error) {
	mu.RLock()
	defer mu.RUnlock()

	b, ok := biomes[id]
	if !ok {
		return Biome{}, fmt.Errorf("biome: %w %q", ErrUnknown, id)
	}
	return b.clone(), nil
}

// Exists checks if a biome with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := biomes[id]
	return ok
}

// Resolve looks up a biome and applies the configuration's overrides and
// difficulty preset.
func Resolve(id string, cfg config.Config) (Biome, error) {
	b, err := Lookup(id)
	if err != nil {
		return Biome{}, err
	}

	if o, ok := cfg.Biomes[id]; ok {
		if o.Difficulty != nil {
			b.Difficulty = *o.Difficulty
		}
		for name, w := range o.Weights {
			kind, ok := entity.ParseKind(name)
			if !ok {
				return Biome{}, fmt.Errorf("biome: %s: unknown hazard %q in weights", id, name)
			}
			found := false
			for i := range b.Types {
				if b.Types[i].Kind == kind {
					b.Types[i].Weight = w
					found = true
				}
			}
			if !found {
				return Biome{}, fmt.Errorf("biome: %s: hazard %q is not part of this biome", id, name)
			}
		}
	}

	b.Difficulty = b.Difficulty.WithPreset(cfg.Difficulty)
	return b, nil
}
