package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

// timeEpsilon lets accumulated float time hit exact tick boundaries.
const timeEpsilon = 1e-9

// loopState is the wall-clock bookkeeping of the fixed-step loop.
type loopState struct {
	last   time.Time
	primed bool    // last holds a real timestamp
	acc    float64 // unsimulated seconds carried to the next callback
}

// Interval returns the fixed simulation step in seconds.
func (e *Engine) Interval() float64 {
	fps := e.cfg.Loop.TargetFPS
	if e.settings.BatterySaver {
		fps = e.cfg.Loop.BatterySaverFPS
	}
	return 1 / float64(fps)
}

// Frame advances the simulation to wall time now and draws if anything
// moved. Elapsed wall time is clamped to MaxDelta, consumed in whole
// fixed steps (at most MaxStepsPerFrame) and the remainder is carried.
// The first callback after Start or Resume only primes the clock.
// It returns the number of steps taken.
func (e *Engine) Frame(now time.Time, in core.InputFrame) int {
	if !e.scheduled || e.hazards == nil {
		return 0
	}
	if !e.loop.primed {
		e.loop.last = now
		e.loop.primed = true
		return 0
	}

	elapsed := now.Sub(e.loop.last).Seconds()
	e.loop.last = now
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > e.cfg.Loop.MaxDelta {
		elapsed = e.cfg.Loop.MaxDelta
	}
	e.loop.acc += elapsed

	dt := e.Interval()
	steps := 0
	for e.loop.acc+timeEpsilon >= dt && steps < e.cfg.Loop.MaxStepsPerFrame {
		e.Step(dt, in)
		e.loop.acc -= dt
		steps++
	}
	if e.loop.acc < 0 {
		e.loop.acc = 0
	}
	// Anything still owed after the catch-up bound is dropped.
	if e.loop.acc > dt {
		e.loop.acc = dt
	}

	if steps > 0 {
		e.surface.Draw(e.View())
	}
	return steps
}

// Run drives Frame from a ticker at the target cadence until ctx is done
// or the engine is unscheduled. input is polled once per callback.
func (e *Engine) Run(ctx context.Context, input func() core.InputFrame) error {
	period := time.Duration(e.Interval() * float64(time.Second))
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for e.scheduled {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			e.Frame(now, input())
		}
	}
	return nil
}
