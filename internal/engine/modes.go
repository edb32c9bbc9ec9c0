package engine

import (
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/event"
	"github.com/vovakirdan/tui-dodge/internal/hazard"
	"github.com/vovakirdan/tui-dodge/internal/replay"
)

// Step advances the simulation by one fixed step of dt seconds. The order
// inside a tick is avatar physics, hazards and AI, collisions, event
// drain, then recording.
func (e *Engine) Step(dt float64, in core.InputFrame) {
	if e.hazards == nil {
		return
	}
	if e.mode == ModeReplay {
		e.stepReplay(dt)
		return
	}

	wasDying := e.mode == ModeDying
	playing := !wasDying
	sdt := dt
	if wasDying {
		sdt = dt * e.cfg.Loop.SlowMotion
	}
	e.clock += dt
	if playing {
		e.stats.Elapsed += dt
		e.moveAvatar(sdt, in.Move)
	}

	e.hazards.Update(hazard.TickContext{
		Dt:      sdt,
		Now:     e.clock,
		Elapsed: e.stats.Elapsed,
		Avatar:  e.avatar.Pos,
		Spawn:   playing,
	})
	if playing {
		e.resolveContacts()
	}
	e.drainEvents()

	if !e.recorder.Finalized() {
		e.recorder.Record(replay.NewLightFrame(e.clock, &e.avatar, e.mode), e.hazards.Hazards())
	}

	if wasDying {
		e.deathTimer += dt
		if e.deathTimer+timeEpsilon >= e.cfg.Loop.DeathDuration {
			e.finalize()
		}
	}
}

// die moves a live run into the dying mode. The death timer starts on the
// following tick.
func (e *Engine) die(cause entity.Kind, at core.Vec, hazardID uint64) {
	if e.mode != ModePlaying {
		return
	}
	e.mode = ModeDying
	e.deathTimer = 0
	e.avatar.State = entity.AvatarDead
	e.avatar.Vel = core.Vec{}
	e.stats.DeathCause = cause
	e.events.Push(event.Event{Type: event.Death, Time: e.clock, Pos: at, Kind: cause, HazardID: hazardID})
	e.logger.Debug("avatar died", "cause", cause, "elapsed", e.stats.Elapsed)
}

// finalize closes the run exactly once: the recorder stops, stats are
// settled and handed to the result handler, and playback begins.
func (e *Engine) finalize() {
	if e.submitted {
		return
	}
	e.submitted = true
	e.recorder.Finalize()

	e.stats.DodgesByKind = e.hazards.Dodges()
	e.stats.Dodges = 0
	for _, n := range e.stats.DodgesByKind {
		e.stats.Dodges += n
	}

	e.mode = ModeReplay
	e.replayTime = 0
	e.replayFrame = nil
	e.replayDeath = false

	e.logger.Info("run finished",
		"biome", e.stats.Biome,
		"seed", e.stats.Seed,
		"time", e.stats.Elapsed,
		"cause", e.stats.DeathCause,
		"near_misses", e.stats.NearMisses,
	)
	if e.results != nil {
		e.results.RunFinished(RunResult{Stats: e.stats.Clone(), Ghost: e.recorder.Ghost()})
	}
}

// stepReplay plays the recorded buffer back by timestamp. Past the last
// frame it holds for ReplayGrace and then loops from the start.
func (e *Engine) stepReplay(dt float64) {
	start, end, ok := e.recorder.Span()
	if !ok {
		return
	}
	e.clock += dt
	e.replayTime += dt

	if over := start + e.replayTime - end; over > timeEpsilon {
		if over+timeEpsilon < e.cfg.Loop.ReplayGrace {
			return
		}
		e.replayTime = 0
		e.replayDeath = false
	}

	i, ok := e.recorder.Seek(start + e.replayTime)
	if !ok {
		i = e.recorder.Len() - 1
	}
	f := e.recorder.Frame(i)
	e.replayFrame = &f

	if f.Mode == ModeDying && !e.replayDeath && e.recorder.Frame(0).Mode == ModePlaying {
		e.replayDeath = true
		e.events.Push(event.Event{Type: event.ReplayDeath, Time: e.clock, Pos: f.Pos(), Kind: e.stats.DeathCause})
	}
	e.drainEvents()
}

// drainEvents folds counters into the run stats and forwards every queued
// event to the sink.
func (e *Engine) drainEvents() {
	for _, ev := range e.events.Drain() {
		switch ev.Type {
		case event.NearMiss:
			e.stats.NearMisses++
		case event.Push:
			e.stats.Pushes++
		case event.Explosion:
			e.stats.Explosions++
		case event.PocketFall:
			e.stats.Pockets++
		}
		e.sink.Emit(ev)
	}
}
