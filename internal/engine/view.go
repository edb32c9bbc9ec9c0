package engine

import (
	"github.com/vovakirdan/tui-dodge/internal/collision"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/hazard"
	"github.com/vovakirdan/tui-dodge/internal/replay"
)

// Surface is the drawing collaborator. It receives a read-only View after
// every frame that advanced the simulation and must not retain its slices.
type Surface interface {
	Draw(v View)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(v View)

// Draw calls f(v).
func (f SurfaceFunc) Draw(v View) {
	f(v)
}

// View is what a Surface needs to draw one frame. In replay mode the
// avatar and hazards come from the recorded frame being played back.
type View struct {
	Mode     Mode
	Time     float64 // simulation clock, or replay position
	Bounds   core.Bounds
	Biome    string
	Avatar   entity.Avatar
	Hazards  []replay.HazardSnapshot
	Pockets  []collision.Pocket
	Barrage  hazard.Barrage
	Ghost    *replay.LightFrame // nil when no ghost is racing
	Opponent *replay.LightFrame
	Stats    RunStats
	Paused   bool
}

// View builds the current frame's view.
func (e *Engine) View() View {
	v := View{
		Mode:   e.mode,
		Time:   e.clock,
		Bounds: e.bounds,
		Biome:  e.stats.Biome,
		Avatar: e.avatar.Clone(),
		Stats:  e.Stats(),
		Paused: !e.scheduled,
	}
	if e.hazards != nil {
		v.Pockets = e.hazards.Pockets()
		v.Barrage = e.hazards.Barrage()
	}

	if e.mode == ModeReplay {
		v.Time = e.replayTime
		if e.replayFrame != nil {
			f := e.replayFrame
			v.Avatar.Pos = f.Pos()
			v.Avatar.Vel = f.Vel()
			v.Avatar.Trail = nil
			v.Avatar.State = entity.AvatarMoving
			if f.Mode == ModeDying {
				v.Avatar.State = entity.AvatarDead
			}
			v.Hazards = f.Hazards
		}
		return v
	}

	if e.hazards != nil {
		live := e.hazards.Hazards()
		v.Hazards = make([]replay.HazardSnapshot, 0, len(live))
		for i := range live {
			v.Hazards = append(v.Hazards, replay.SnapshotHazard(&live[i]))
		}
	}
	if f, ok := e.GhostFrame(); ok {
		v.Ghost = &f
	}
	if f, ok := e.OpponentFrame(); ok {
		v.Opponent = &f
	}
	return v
}
