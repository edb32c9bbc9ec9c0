package hazard

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/event"
)

// BarrageState is the phase of the scripted wave.
type BarrageState uint8

const (
	BarrageIdle BarrageState = iota
	BarrageWarning
	BarrageActive
)

func (s BarrageState) String() string {
	switch s {
	case BarrageWarning:
		return "warning"
	case BarrageActive:
		return "active"
	default:
		return "idle"
	}
}

// Barrage is the scripted wave state. Timer counts up while idle or
// warning; Remaining counts down while active.
type Barrage struct {
	State     BarrageState
	Edge      core.Edge
	Timer     float64
	Interval  float64 // time from idle start to the wave
	Remaining float64
	Progress  float64 // 0..1 through the active wave
	shot      float64 // time until the next shot
}

func (m *Manager) updateBarrage(ctx TickContext) {
	spec := m.biome.Barrage
	if spec == nil {
		return
	}
	bc := m.barCfg
	b := &m.barrage

	switch b.State {
	case BarrageIdle, BarrageWarning:
		b.Timer += ctx.Dt
		if b.State == BarrageIdle && b.Timer+timeEpsilon >= b.Interval-bc.Warning {
			b.State = BarrageWarning
			b.Edge = spec.Edges[m.rng.Intn(len(spec.Edges))]
			m.events.Push(event.Event{Type: event.BarrageWarning, Time: ctx.Now, Edge: b.Edge.String(), Kind: spec.Kind})
		}
		if b.State == BarrageWarning && b.Timer+timeEpsilon >= b.Interval {
			b.State = BarrageActive
			b.Remaining = bc.Duration
			b.Progress = 0
			b.shot = 0
			m.events.Push(event.Event{Type: event.BarrageStart, Time: ctx.Now, Edge: b.Edge.String(), Kind: spec.Kind})
		}

	case BarrageActive:
		b.Remaining -= ctx.Dt
		if bc.Duration > 0 {
			b.Progress = core.ClampF(1-b.Remaining/bc.Duration, 0, 1)
		}
		if b.Remaining <= timeEpsilon {
			b.State = BarrageIdle
			b.Timer = 0
			b.Remaining = 0
			b.Progress = 0
			b.Interval = math.Max(bc.MinInterval, bc.BaseInterval-bc.IntervalShrink*ctx.Elapsed)
			return
		}

		b.shot -= ctx.Dt
		for b.shot <= timeEpsilon {
			m.fireBarrageShot(spec.Kind, ctx)
			rate := lerp(bc.StartRate, bc.EndRate, b.Progress)
			if rate <= 0 {
				rate = 1
			}
			b.shot += 1 / rate
		}
	}
}

// fireBarrageShot launches one hazard from the barrage edge toward the
// avatar. Draws: edge position, then aim variance.
func (m *Manager) fireBarrageShot(kind entity.Kind, ctx TickContext) {
	bc := m.barCfg
	b := &m.barrage
	spec, ok := m.biome.Spec(kind)
	if !ok {
		return
	}

	t := m.rng.Range(edgeClearance, 1-edgeClearance)
	origin := m.bounds.EdgePoint(b.Edge, t, 0)
	variance := lerp(bc.StartVariance, bc.EndVariance, b.Progress)
	angle := ctx.Avatar.Sub(origin).Angle() + m.rng.Spread(variance)
	speed := lerp(bc.StartSpeed, bc.EndSpeed, b.Progress) * m.biome.Difficulty.SpeedMultiplier
	dir := core.FromAngle(angle, 1)

	size := (spec.MinSize + spec.MaxSize) / 2
	h := entity.Hazard{
		Kind:     spec.Kind,
		Shape:    spec.Shape,
		Color:    spec.Color,
		Vel:      dir.Scale(speed),
		Rotation: angle,
	}
	if spec.Shape == entity.ShapeRect {
		h.Width = size
		h.Height = size * spec.Aspect
	} else {
		h.Radius = size
	}
	h.Pos = origin.Sub(dir.Scale(h.Extent() + 1))
	m.add(h)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
