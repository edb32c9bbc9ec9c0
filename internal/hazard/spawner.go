package hazard

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/biome"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
)

// Pattern is a spawn formation.
type Pattern uint8

const (
	PatternSingle Pattern = iota
	PatternLine
	PatternSurround
)

func (p Pattern) String() string {
	switch p {
	case PatternLine:
		return "line"
	case PatternSurround:
		return "surround"
	default:
		return "single"
	}
}

// Edge clearance for single spawns, as a fraction of the edge length.
const edgeClearance = 0.1

// placement is where a hazard enters: a point on the playfield boundary
// and the unit direction pointing into the playfield.
type placement struct {
	origin core.Vec
	inward core.Vec
}

// updateSpawner accumulates time and fires one pattern per elapsed
// interval. Multi-hazard patterns stretch the following interval.
func (m *Manager) updateSpawner(ctx TickContext) {
	m.spawnAcc += ctx.Dt
	interval := m.biome.Difficulty.Interval(ctx.Elapsed) * m.delay
	if m.spawnAcc+timeEpsilon < interval {
		return
	}
	m.spawnAcc = 0

	switch m.SpawnPattern(ctx.Avatar) {
	case PatternSingle:
		m.delay = 1
	default:
		m.delay = math.Max(1, m.biome.Difficulty.PatternDelay)
	}
}

// SpawnPattern fires one pattern immediately and returns which one.
// RNG order: pattern, then edge for single/line, then per hazard
// type, edge position and jitter (single), speed, size, spin. A line
// draws its speed once, on its first moving hazard.
func (m *Manager) SpawnPattern(avatar core.Vec) Pattern {
	pc := m.cfg.Patterns
	pattern := Pattern(m.rng.Pick([]float64{pc.Single, pc.Line, pc.Surround}))

	switch pattern {
	case PatternSingle:
		edge := core.Edges[m.rng.Intn(len(core.Edges))]
		spec := m.drawType()
		t := m.rng.Range(edgeClearance, 1-edgeClearance)
		lateral := m.rng.Spread(m.cfg.Jitter)
		pl := placement{origin: m.bounds.EdgePoint(edge, t, 0), inward: edge.Inward()}
		speed := m.drawSpeed(spec)
		m.spawn(spec, pl, pl.inward.Scale(speed).Add(edge.Along().Scale(lateral)), avatar)

	case PatternLine:
		edge := core.Edges[m.rng.Intn(len(core.Edges))]
		n := m.cfg.LineCount
		if n < 1 {
			n = 1
		}
		var (
			vel    core.Vec
			moving bool
		)
		for i := 0; i < n; i++ {
			spec := m.drawType()
			t := float64(i+1) / float64(n+1)
			pl := placement{origin: m.bounds.EdgePoint(edge, t, 0), inward: edge.Inward()}
			// Frogs, lasers and jets ignore vel, so the line takes its
			// shared velocity from the first hazard that drifts.
			if !moving && spec.Moves() {
				vel = pl.inward.Scale(m.drawSpeed(spec))
				moving = true
			}
			m.spawn(spec, pl, vel, avatar)
		}

	case PatternSurround:
		center := m.bounds.Center()
		for _, c := range m.bounds.Corners() {
			spec := m.drawType()
			pl := placement{origin: c, inward: center.Sub(c).Norm()}
			speed := m.drawSpeed(spec)
			m.spawn(spec, pl, pl.inward.Scale(speed), avatar)
		}
	}
	return pattern
}

func (m *Manager) drawType() biome.TypeSpec {
	return m.biome.Types[m.rng.Pick(m.biome.Weights())]
}

func (m *Manager) drawSpeed(spec biome.TypeSpec) float64 {
	return m.rng.Range(spec.MinSpeed, spec.MaxSpeed) * m.biome.Difficulty.SpeedMultiplier
}

// spawn builds a hazard of spec at pl moving with vel and adds it.
// Size and spin are drawn here, after the caller's speed draw.
func (m *Manager) spawn(spec biome.TypeSpec, pl placement, vel core.Vec, avatar core.Vec) {
	size := m.rng.Range(spec.MinSize, spec.MaxSize)
	spin := 0.0
	if spec.Spin > 0 {
		spin = m.rng.Spread(spec.Spin)
	}

	h := entity.Hazard{
		Kind:  spec.Kind,
		Shape: spec.Shape,
		Color: spec.Color,
		Spin:  spin,
	}
	if spec.Shape == entity.ShapeRect {
		h.Width = size
		h.Height = size * spec.Aspect
	} else {
		h.Radius = size
	}

	switch spec.Kind {
	case entity.KindFrog:
		// Frogs sit inside the playfield near the edge and wait.
		h.Pos = m.clampInside(pl.origin.Add(pl.inward.Scale(size+30)), size)
		h.AI = &entity.Jumper{}
	case entity.KindLaser:
		lc := m.cfg.Laser
		h.Pos = pl.origin
		h.Width, h.Height = 0, 0
		h.AI = &entity.Beam{
			Anchor: pl.origin,
			Target: avatar,
			Length: math.Hypot(m.bounds.W, m.bounds.H),
			Width:  lc.Width,
		}
	case entity.KindJet:
		jc := m.cfg.Jet
		h.Width = jc.Length
		h.Height = jc.Width
		h.Rotation = pl.inward.Angle()
		h.Pos = pl.origin.Add(pl.inward.Scale(jc.Length / 2))
		h.AI = &entity.Timed{Lifetime: jc.Lifetime, Remaining: jc.Lifetime}
	default:
		h.Vel = vel
		h.Pos = pl.origin.Sub(pl.inward.Scale(h.Extent() + 1))
		if spec.Shape == entity.ShapeRect && vel != (core.Vec{}) {
			h.Rotation = vel.Angle()
		}
		switch spec.Kind {
		case entity.KindDrone:
			h.AI = &entity.Tracker{}
		case entity.KindBall, entity.KindCueBall, entity.KindSaw:
			h.AI = &entity.Bouncer{Limit: m.cfg.BounceLimit}
		}
	}

	m.add(h)
}

func (m *Manager) clampInside(p core.Vec, r float64) core.Vec {
	return core.V(core.ClampF(p.X, r, m.bounds.W-r), core.ClampF(p.Y, r, m.bounds.H-r))
}
