package entity

import "github.com/vovakirdan/tui-dodge/internal/core"

// AvatarState is the coarse state of the player avatar.
type AvatarState uint8

const (
	AvatarIdle AvatarState = iota
	AvatarMoving
	AvatarDead
)

func (s AvatarState) String() string {
	switch s {
	case AvatarIdle:
		return "idle"
	case AvatarMoving:
		return "moving"
	case AvatarDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Avatar is the player-controlled circle.
type Avatar struct {
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	State  AvatarState
	Trail  []core.Vec // oldest first
	Panic  float64    // 0..1, driven by the nearest hazard
}

// NewAvatar creates an idle avatar at pos.
func NewAvatar(pos core.Vec, radius float64) Avatar {
	return Avatar{Pos: pos, Radius: radius}
}

// PushTrail appends the current position to the trail, dropping the oldest
// point once limit is reached.
func (a *Avatar) PushTrail(limit int) {
	if limit <= 0 {
		a.Trail = a.Trail[:0]
		return
	}
	if len(a.Trail) >= limit {
		copy(a.Trail, a.Trail[len(a.Trail)-limit+1:])
		a.Trail = a.Trail[:limit-1]
	}
	a.Trail = append(a.Trail, a.Pos)
}

// Clone returns a copy that does not share the trail slice.
func (a Avatar) Clone() Avatar {
	c := a
	c.Trail = append([]core.Vec(nil), a.Trail...)
	return c
}
