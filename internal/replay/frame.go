// Package replay records simulation frames into bounded ring buffers for
// post-mortem replay and ghost racing, and serializes ghosts for storage.
package replay

import (
	"fmt"

	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
)

// Mode is the run mode at the time a frame was recorded.
type Mode uint8

const (
	ModePlaying Mode = iota
	ModeDying
	ModeReplay
)

var modeNames = [...]string{"playing", "dying", "replay"}

// String returns the mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	if int(m) >= len(modeNames) {
		return nil, fmt.Errorf("replay: invalid mode %d", m)
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, n := range modeNames {
		if n == string(text) {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("replay: unknown mode %q", text)
}

// LightFrame is the avatar pose at one instant. Ghosts are sequences of
// light frames.
type LightFrame struct {
	T    float64 `json:"t"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
	Mode Mode    `json:"m"`
}

// NewLightFrame builds a light frame from the avatar.
func NewLightFrame(t float64, a *entity.Avatar, mode Mode) LightFrame {
	return LightFrame{T: t, X: a.Pos.X, Y: a.Pos.Y, VX: a.Vel.X, VY: a.Vel.Y, Mode: mode}
}

// Pos returns the recorded avatar position.
func (f LightFrame) Pos() core.Vec {
	return core.V(f.X, f.Y)
}

// Vel returns the recorded avatar velocity.
func (f LightFrame) Vel() core.Vec {
	return core.V(f.VX, f.VY)
}

// BeamSnapshot is the drawable state of a laser.
type BeamSnapshot struct {
	From   core.Vec `json:"from"`
	To     core.Vec `json:"to"`
	Active bool     `json:"active"`
}

// HazardSnapshot is a deep copy of the drawable state of one hazard.
type HazardSnapshot struct {
	ID         uint64        `json:"id"`
	Kind       entity.Kind   `json:"kind"`
	Shape      entity.Shape  `json:"shape"`
	Color      core.Color    `json:"color"`
	Pos        core.Vec      `json:"pos"`
	Vel        core.Vec      `json:"vel"`
	Rotation   float64       `json:"rot"`
	Radius     float64       `json:"r,omitempty"`
	Width      float64       `json:"w,omitempty"`
	Height     float64       `json:"h,omitempty"`
	SpawnTimer float64       `json:"fade"`
	Beam       *BeamSnapshot `json:"beam,omitempty"`
}

// SnapshotHazard copies the drawable fields of h.
func SnapshotHazard(h *entity.Hazard) HazardSnapshot {
	s := HazardSnapshot{
		ID:         h.ID,
		Kind:       h.Kind,
		Shape:      h.Shape,
		Color:      h.Color,
		Pos:        h.Pos,
		Vel:        h.Vel,
		Rotation:   h.Rotation,
		Radius:     h.Radius,
		Width:      h.Width,
		Height:     h.Height,
		SpawnTimer: h.SpawnTimer,
	}
	if b, ok := h.Beam(); ok {
		from, to := b.Segment()
		s.Beam = &BeamSnapshot{From: from, To: to, Active: b.State == entity.BeamActive}
	}
	return s
}

// FullFrame is a light frame plus a snapshot of every live hazard.
type FullFrame struct {
	LightFrame
	Hazards []HazardSnapshot `json:"hazards"`
}

// NewFullFrame deep-copies the live hazards next to the light frame.
func NewFullFrame(light LightFrame, hazards []entity.Hazard) FullFrame {
	f := FullFrame{LightFrame: light, Hazards: make([]HazardSnapshot, 0, len(hazards))}
	for i := range hazards {
		if hazards[i].Dead {
			continue
		}
		f.Hazards = append(f.Hazards, SnapshotHazard(&hazards[i]))
	}
	return f
}
