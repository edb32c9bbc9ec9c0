// Package collision provides pure shape-intersection tests between the
// avatar, hazards and static environment zones. It holds no state.
package collision

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
)

// CollisionFade is the spawn fade a hazard must reach before it can collide.
// Younger hazards are still fading in and never kill.
const CollisionFade = 0.5

// Pocket is a static lethal zone (billiards pockets).
type Pocket struct {
	Pos    core.Vec
	Radius float64
}

// CircleCircle reports whether two circles overlap once the buffer is added
// to the sum of their radii.
func CircleCircle(a core.Vec, ra float64, b core.Vec, rb float64, buffer float64) bool {
	return a.Dist(b) < ra+rb+buffer
}

// CircleRect reports whether a circle overlaps a rectangle centered at
// center with the given full width/height, rotated by rotation radians.
// The circle's offset is rotated into the rectangle's local frame and
// clamped to the half-extents.
func CircleRect(c core.Vec, r float64, center core.Vec, w, h, rotation, buffer float64) bool {
	return CircleRectDistance(c, center, w, h, rotation) < r+buffer
}

// CircleRectDistance returns the distance from point c to the closest point
// of the rotated rectangle (0 when c is inside).
func CircleRectDistance(c core.Vec, center core.Vec, w, h, rotation float64) float64 {
	local := c.Sub(center).Rotate(-rotation)
	clamped := core.V(
		core.ClampF(local.X, -w/2, w/2),
		core.ClampF(local.Y, -h/2, h/2),
	)
	return local.Dist(clamped)
}

// PointSegmentDistance returns the distance from p to the segment a-b.
func PointSegmentDistance(p, a, b core.Vec) float64 {
	ab := b.Sub(a)
	lenSq := ab.LenSq()
	if lenSq == 0 {
		return p.Dist(a)
	}
	t := core.ClampF(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}

// overlaps runs the shape test for a hazard without any eligibility rules.
func overlaps(a *entity.Avatar, h *entity.Hazard, buffer float64) bool {
	if beam, ok := h.Beam(); ok {
		if beam.State != entity.BeamActive {
			return false
		}
		start, end := beam.Segment()
		return PointSegmentDistance(a.Pos, start, end) < a.Radius+beam.Width+buffer
	}

	switch h.Shape {
	case entity.ShapeRect:
		return CircleRect(a.Pos, a.Radius, h.Pos, h.Width, h.Height, h.Rotation, buffer)
	default:
		return CircleCircle(a.Pos, a.Radius, h.Pos, h.Radius, buffer)
	}
}

// CheckCollision reports whether the avatar touches the hazard.
// Hazards still in their spawn fade never collide, and lasers only collide
// while active. A negative buffer shrinks the effective hitbox.
func CheckCollision(a *entity.Avatar, h *entity.Hazard, buffer float64) bool {
	if h.Dead || h.SpawnTimer < CollisionFade {
		return false
	}
	return overlaps(a, h, buffer)
}

// CheckNearMiss reports whether the hazard passes within buffer of the
// avatar. Only fully visible, lethal hazards count, and each hazard counts
// at most once: callers set CloseCall after a true result.
func CheckNearMiss(a *entity.Avatar, h *entity.Hazard, buffer float64) bool {
	if h.Dead || h.CloseCall || !h.FadedIn() || !h.Kind.Lethal() {
		return false
	}
	return overlaps(a, h, buffer)
}

// CheckEnvironmentHazards returns the first static zone the avatar has
// fallen into. The avatar falls when its center is over the zone.
func CheckEnvironmentHazards(a *entity.Avatar, zones []Pocket) (Pocket, bool) {
	for _, z := range zones {
		if a.Pos.Dist(z.Pos) < z.Radius {
			return z, true
		}
	}
	return Pocket{}, false
}

// NearestDistance returns the edge-to-edge distance from the avatar to the
// closest lethal hazard, or +Inf if there is none.
func NearestDistance(a *entity.Avatar, hazards []entity.Hazard) float64 {
	best := math.Inf(1)
	for i := range hazards {
		h := &hazards[i]
		if h.Dead || !h.Kind.Lethal() {
			continue
		}
		var d float64
		if beam, ok := h.Beam(); ok {
			start, end := beam.Segment()
			d = PointSegmentDistance(a.Pos, start, end) - beam.Width
		} else if h.Shape == entity.ShapeRect {
			d = CircleRectDistance(a.Pos, h.Pos, h.Width, h.Height, h.Rotation)
		} else {
			d = a.Pos.Dist(h.Pos) - h.Radius
		}
		d -= a.Radius
		if d < best {
			best = d
		}
	}
	return math.Max(best, 0)
}
