package engine

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/collision"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/event"
)

// moveAvatar eases the velocity toward the joystick target, integrates,
// clamps to the playfield and updates trail, top speed and panic.
func (e *Engine) moveAvatar(dt float64, move core.Vec) {
	a := &e.avatar
	ac := e.cfg.Avatar

	target := move.Scale(ac.MaxSpeed)
	ease := math.Min(1, ac.Acceleration*dt)
	a.Vel = a.Vel.Add(target.Sub(a.Vel).Scale(ease))
	a.Pos = a.Pos.Add(a.Vel.Scale(dt))
	e.clampAvatar()

	if a.Vel.LenSq() > 1 {
		a.State = entity.AvatarMoving
	} else {
		a.State = entity.AvatarIdle
	}
	a.PushTrail(ac.TrailLength)

	if s := a.Vel.Len(); s > e.stats.TopSpeed {
		e.stats.TopSpeed = s
	}

	level := 0.0
	if d := collision.NearestDistance(a, e.hazards.Hazards()); d < ac.PanicRange {
		level = 1 - math.Max(0, d)/ac.PanicRange
	}
	a.Panic += (level - a.Panic) * math.Min(1, ac.PanicEase*dt)
}

// clampAvatar keeps the whole avatar circle inside the playfield and
// kills velocity into the wall it touches.
func (e *Engine) clampAvatar() {
	a := &e.avatar
	r := a.Radius
	if x := core.ClampF(a.Pos.X, r, e.bounds.W-r); x != a.Pos.X {
		a.Pos.X = x
		a.Vel.X = 0
	}
	if y := core.ClampF(a.Pos.Y, r, e.bounds.H-r); y != a.Pos.Y {
		a.Pos.Y = y
		a.Vel.Y = 0
	}
}

// resolveContacts runs the per-tick collision checks for a live avatar:
// pockets, lethal hazards, pushers and near misses, in that order.
func (e *Engine) resolveContacts() {
	a := &e.avatar
	if p, ok := collision.CheckEnvironmentHazards(a, e.hazards.Pockets()); ok {
		e.die(entity.KindPocket, p.Pos, 0)
		return
	}

	live := e.hazards.Hazards()
	for i := range live {
		h := &live[i]
		if h.Kind.Lethal() && collision.CheckCollision(a, h, e.cfg.Collision.HitboxBuffer) {
			e.die(h.Kind, h.Pos, h.ID)
			return
		}
	}

	for i := range live {
		h := &live[i]
		if !h.Kind.Pushes() || h.PushedPlayer || !collision.CheckCollision(a, h, 0) {
			continue
		}
		h.PushedPlayer = true
		e.push(h)
	}

	for i := range live {
		h := &live[i]
		if collision.CheckNearMiss(a, h, e.cfg.Collision.NearMissBuffer) {
			h.CloseCall = true
			e.events.Push(event.Event{Type: event.NearMiss, Time: e.clock, Pos: h.Pos, Kind: h.Kind, HazardID: h.ID})
		}
	}
}

// push applies a one-shot shove. Jets push along their axis, explosions
// push away from their center.
func (e *Engine) push(h *entity.Hazard) {
	a := &e.avatar
	var impulse core.Vec
	switch h.Kind {
	case entity.KindJet:
		impulse = core.FromAngle(h.Rotation, e.cfg.Hazards.Jet.Push)
	case entity.KindExplosion:
		dir := a.Pos.Sub(h.Pos)
		if dir.LenSq() == 0 {
			dir = core.V(0, -1)
		}
		impulse = dir.Norm().Scale(e.cfg.Hazards.Explosion.Knockback)
	}
	a.Vel = a.Vel.Add(impulse)
	e.events.Push(event.Event{Type: event.Push, Time: e.clock, Pos: a.Pos, Kind: h.Kind, HazardID: h.ID})
}
