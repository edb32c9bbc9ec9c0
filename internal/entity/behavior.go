package entity

import "github.com/vovakirdan/tui-dodge/internal/core"

// Behavior is the tagged AI variant carried by hazards that need one.
// Each variant holds only the fields its own state machine uses; callers
// dispatch with a type switch.
type Behavior interface {
	// Clone returns an independent copy of the behaviour state.
	Clone() Behavior

	behavior()
}

// JumperState is the state of a jumping hazard (frog).
type JumperState uint8

const (
	JumperIdle JumperState = iota
	JumperCharge
	JumperJump
	JumperLeave
)

func (s JumperState) String() string {
	switch s {
	case JumperIdle:
		return "idle"
	case JumperCharge:
		return "charge"
	case JumperJump:
		return "jump"
	case JumperLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// Jumper dwells, winds up a leap aimed at the avatar, leaps, then flees.
type Jumper struct {
	State JumperState
	Timer float64  // time spent in the current state
	Leap  core.Vec // velocity chosen during charge
}

func (j *Jumper) Clone() Behavior { c := *j; return &c }
func (*Jumper) behavior()         {}

// TrackerState is the state of a homing hazard (drone).
type TrackerState uint8

const (
	TrackerTrack TrackerState = iota
	TrackerLeave
)

func (s TrackerState) String() string {
	if s == TrackerLeave {
		return "leave"
	}
	return "track"
}

// Tracker steers toward the avatar for a fixed time, then keeps its heading.
type Tracker struct {
	State TrackerState
	Timer float64
}

func (t *Tracker) Clone() Behavior { c := *t; return &c }
func (*Tracker) behavior()         {}

// BeamState is the state of a laser hazard.
type BeamState uint8

const (
	BeamWarning BeamState = iota
	BeamActive
)

func (s BeamState) String() string {
	if s == BeamActive {
		return "active"
	}
	return "warning"
}

// Beam telegraphs a line from Anchor through Target, then fires along it.
type Beam struct {
	State  BeamState
	Timer  float64
	Anchor core.Vec
	Target core.Vec
	Length float64
	Width  float64 // half-width of the lethal line
	Frozen bool    // target stopped following the avatar
}

func (b *Beam) Clone() Behavior { c := *b; return &c }
func (*Beam) behavior()         {}

// Segment returns the beam's current endpoints.
func (b *Beam) Segment() (core.Vec, core.Vec) {
	dir := b.Target.Sub(b.Anchor).Norm()
	if dir == (core.Vec{}) {
		dir = core.V(1, 0)
	}
	return b.Anchor, b.Anchor.Add(dir.Scale(b.Length))
}

// Bouncer reflects off world bounds until it exceeds its bounce limit.
type Bouncer struct {
	Bounces int
	Limit   int
}

func (b *Bouncer) Clone() Behavior { c := *b; return &c }
func (*Bouncer) behavior()         {}

// Timed hazards are stationary or self-propelled and expire after a
// bounded lifetime (explosions, jets).
type Timed struct {
	Lifetime  float64
	Remaining float64
}

func (t *Timed) Clone() Behavior { c := *t; return &c }
func (*Timed) behavior()         {}

// Progress returns the elapsed fraction of the lifetime in [0, 1].
func (t *Timed) Progress() float64 {
	if t.Lifetime <= 0 {
		return 1
	}
	return core.ClampF(1-t.Remaining/t.Lifetime, 0, 1)
}
