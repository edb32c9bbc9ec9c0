// Package event carries named side effects out of the simulation.
// Subsystems push into a bounded Queue; the engine drains it once per tick
// and forwards each event to a Sink (audio, haptics, HUD, stats).
package event

import (
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
)

// Type names an outbound event.
type Type string

const (
	Explosion      Type = "explosion"
	PocketFall     Type = "pocket_fall"
	BarrageWarning Type = "barrage_warning"
	BarrageStart   Type = "barrage_start"
	DroneLock      Type = "drone_lock"
	NearMiss       Type = "near_miss"
	Death          Type = "death"
	Push           Type = "push"
	ReplayDeath    Type = "replay_death"
)

// Event is a single notification. Fields not relevant to Type are zero.
type Event struct {
	Type     Type
	Time     float64 // simulation clock, seconds
	Pos      core.Vec
	Kind     entity.Kind
	HazardID uint64
	Edge     string // barrage edge
}

// Sink receives drained events.
type Sink interface {
	Emit(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) {
	f(e)
}

// Discard is a Sink that drops everything.
var Discard Sink = SinkFunc(func(Event) {})

// Multi fans events out to several sinks in order.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(e Event) {
		for _, s := range sinks {
			if s != nil {
				s.Emit(e)
			}
		}
	})
}
