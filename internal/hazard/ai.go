package hazard

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/event"
)

// updateAI runs the hazard's behaviour for one tick. It may change the
// velocity, tombstone the hazard, emit events or draw from the RNG.
func (m *Manager) updateAI(h *entity.Hazard, ctx TickContext) {
	switch ai := h.AI.(type) {
	case *entity.Jumper:
		m.updateJumper(h, ai, ctx)
	case *entity.Tracker:
		m.updateTracker(h, ai, ctx)
	case *entity.Beam:
		m.updateBeam(h, ai, ctx)
	case *entity.Timed:
		ai.Remaining -= ctx.Dt
		if ai.Remaining <= timeEpsilon {
			ai.Remaining = 0
			m.remove(h, false)
		}
	}
}

func (m *Manager) updateJumper(h *entity.Hazard, j *entity.Jumper, ctx TickContext) {
	fc := m.cfg.Frog
	j.Timer += ctx.Dt

	switch j.State {
	case entity.JumperIdle:
		if j.Timer+timeEpsilon >= fc.Idle {
			// Aim at where the avatar is now, off by up to Inaccuracy.
			angle := ctx.Avatar.Sub(h.Pos).Angle() + m.rng.Spread(fc.Inaccuracy)
			j.Leap = core.FromAngle(angle, fc.JumpSpeed*m.biome.Difficulty.SpeedMultiplier)
			j.State = entity.JumperCharge
			j.Timer = 0
		}
	case entity.JumperCharge:
		if j.Timer+timeEpsilon >= fc.Charge {
			h.Vel = j.Leap
			h.Rotation = j.Leap.Angle()
			j.State = entity.JumperJump
			j.Timer = 0
		}
	case entity.JumperJump:
		h.Vel = h.Vel.Scale(math.Exp(-fc.Drag * ctx.Dt))
		if h.Vel.Len() < fc.StopSpeed {
			edge := m.nearestEdge(h.Pos)
			h.Vel = edge.Inward().Scale(-fc.LeaveSpeed)
			j.State = entity.JumperLeave
			j.Timer = 0
		}
	}
}

// nearestEdge returns the playfield edge closest to p.
func (m *Manager) nearestEdge(p core.Vec) core.Edge {
	dists := [4]float64{
		core.EdgeTop:    p.Y,
		core.EdgeRight:  m.bounds.W - p.X,
		core.EdgeBottom: m.bounds.H - p.Y,
		core.EdgeLeft:   p.X,
	}
	best := core.EdgeTop
	for _, e := range core.Edges {
		if dists[e] < dists[best] {
			best = e
		}
	}
	return best
}

func (m *Manager) updateTracker(h *entity.Hazard, t *entity.Tracker, ctx TickContext) {
	if t.State != entity.TrackerTrack {
		return
	}
	t.Timer += ctx.Dt

	speed := h.Vel.Len()
	if speed > 0 {
		heading := h.Vel.Angle()
		turn := core.NormalizeAngle(ctx.Avatar.Sub(h.Pos).Angle() - heading)
		limit := m.cfg.Drone.TurnRate * ctx.Dt
		turn = core.ClampF(turn, -limit, limit)
		h.Vel = core.FromAngle(heading+turn, speed)
		h.Rotation = heading + turn
	}

	if t.Timer+timeEpsilon >= m.cfg.Drone.TrackTime {
		t.State = entity.TrackerLeave
		m.events.Push(event.Event{Type: event.DroneLock, Time: ctx.Now, Pos: h.Pos, Kind: h.Kind, HazardID: h.ID})
	}
}

func (m *Manager) updateBeam(h *entity.Hazard, b *entity.Beam, ctx TickContext) {
	lc := m.cfg.Laser
	b.Timer += ctx.Dt

	switch b.State {
	case entity.BeamWarning:
		if !b.Frozen {
			if b.Timer <= lc.Warning*lc.FollowFraction {
				b.Target = ctx.Avatar
			} else {
				b.Frozen = true
			}
		}
		if b.Timer+timeEpsilon >= lc.Warning {
			b.State = entity.BeamActive
			b.Frozen = true
			b.Timer = 0
		}
	case entity.BeamActive:
		// A beam that burns out was survived, not dodged.
		if b.Timer+timeEpsilon >= lc.Active {
			m.remove(h, false)
		}
	}
}
