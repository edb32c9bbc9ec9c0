package entity

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

// Hazard is a single obstacle in the playfield.
type Hazard struct {
	ID    uint64
	Kind  Kind
	Shape Shape
	Color core.Color

	Pos      core.Vec
	Vel      core.Vec
	Rotation float64 // radians
	Spin     float64 // radians per second

	Radius        float64 // circles
	Width, Height float64 // rectangles, in the local frame

	SpawnTimer float64 // fade-in 0..1
	Age        float64 // seconds alive
	Entered    bool    // has been fully inside the playfield at least once

	CloseCall    bool // near-miss already counted
	PushedPlayer bool // push already applied
	Dead         bool // tombstone, compacted at the end of the tick

	AI Behavior
}

// Clone returns a deep copy; the AI variant is copied too.
func (h *Hazard) Clone() Hazard {
	c := *h
	if h.AI != nil {
		c.AI = h.AI.Clone()
	}
	return c
}

// Extent returns the radius of a circle that encloses the hazard.
func (h *Hazard) Extent() float64 {
	if h.Shape == ShapeRect {
		return math.Hypot(h.Width, h.Height) / 2
	}
	return h.Radius
}

// FadedIn reports whether the spawn fade has completed.
func (h *Hazard) FadedIn() bool {
	return h.SpawnTimer >= 1
}

// Beam returns the laser behaviour, if any.
func (h *Hazard) Beam() (*Beam, bool) {
	b, ok := h.AI.(*Beam)
	return b, ok
}
