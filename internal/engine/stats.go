package engine

import (
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/replay"
)

// RunStats is the finalized record of one run.
type RunStats struct {
	Biome        string
	Seed         string
	Elapsed      float64 // survival time, seconds
	NearMisses   int
	TopSpeed     float64     // px/s
	DeathCause   entity.Kind // KindNone while alive
	Explosions   int         // drone pairs that blew up
	Pushes       int         // jet and explosion shoves received
	Dodges       int         // lethal hazards that left without a kill
	Pockets      int         // balls pocketed
	DodgesByKind map[entity.Kind]int
}

// Clone returns a copy that does not share the per-kind map.
func (s RunStats) Clone() RunStats {
	c := s
	c.DodgesByKind = make(map[entity.Kind]int, len(s.DodgesByKind))
	for k, v := range s.DodgesByKind {
		c.DodgesByKind[k] = v
	}
	return c
}

// RunResult is handed to the ResultHandler once per run.
type RunResult struct {
	Stats RunStats
	Ghost []replay.LightFrame // sampled track, oldest first
}

// ResultHandler receives finalized runs (storage, HUD, achievements).
type ResultHandler interface {
	RunFinished(r RunResult)
}

// ResultFunc adapts a function to ResultHandler.
type ResultFunc func(r RunResult)

// RunFinished calls f(r).
func (f ResultFunc) RunFinished(r RunResult) {
	f(r)
}
