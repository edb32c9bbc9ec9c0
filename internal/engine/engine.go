// Package engine is the simulation orchestrator. It owns the fixed-step
// loop, avatar physics and the playing → dying → replay mode machine, and
// composes the hazard manager, collision checks and replay recorder.
// Hosts drive it by calling Frame once per scheduled callback.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dodge/internal/biome"
	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/event"
	"github.com/vovakirdan/tui-dodge/internal/hazard"
	"github.com/vovakirdan/tui-dodge/internal/replay"
	"github.com/vovakirdan/tui-dodge/internal/rng"
)

// Sentinel errors returned by New.
var (
	ErrNoSurface    = errors.New("no drawing surface")
	ErrUnknownBiome = biome.ErrUnknown
)

// Mode is the run mode.
type Mode = replay.Mode

const (
	ModePlaying = replay.ModePlaying
	ModeDying   = replay.ModeDying
	ModeReplay  = replay.ModeReplay
)

// Settings are the host-controlled flags. Biome and ChallengeSeed apply
// at the next Start; the others apply immediately.
type Settings struct {
	Biome         string
	BatterySaver  bool
	GhostEnabled  bool
	ChallengeSeed string // consumed by the next Start; empty picks a fresh seed
}

// Options configures a new Engine.
type Options struct {
	Config   config.Config
	Settings Settings
	Surface  Surface       // required
	Sink     event.Sink    // optional, receives drained events
	Results  ResultHandler // optional, receives the finalized run
	RNG      rng.Factory   // optional, defaults to rng.New
	Logger   *log.Logger   // optional, defaults to a discarding logger
	Closers  []io.Closer   // released by Destroy
}

// Engine runs one arena at a time. It is not safe for concurrent use; a
// single host goroutine calls every method.
type Engine struct {
	cfg      config.Config
	settings Settings
	surface  Surface
	sink     event.Sink
	results  ResultHandler
	newRNG   rng.Factory
	logger   *log.Logger
	closers  []io.Closer

	bounds   core.Bounds
	events   *event.Queue
	recorder *replay.Recorder
	rng      *rng.RNG
	hazards  *hazard.Manager

	avatar entity.Avatar
	mode   Mode
	stats  RunStats

	clock      float64 // unscaled simulation time since Start
	deathTimer float64
	submitted  bool // run finalized; latches dying → replay

	replayTime  float64
	replayFrame *replay.FullFrame
	replayDeath bool // death effect already fired this playback pass

	ghost    *replay.GhostTrack
	opponent *replay.GhostTrack

	loop      loopState
	scheduled bool
	destroyed bool
}

// New validates the options and builds an engine. The run does not begin
// until Start.
func New(opts Options) (*Engine, error) {
	if opts.Surface == nil {
		return nil, fmt.Errorf("engine: %w", ErrNoSurface)
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: invalid config: %w", err)
	}
	if opts.Settings.Biome == "" {
		opts.Settings.Biome = "space"
	}
	if !biome.Exists(opts.Settings.Biome) {
		return nil, fmt.Errorf("engine: %w %q", ErrUnknownBiome, opts.Settings.Biome)
	}

	e := &Engine{
		cfg:      cfg,
		settings: opts.Settings,
		surface:  opts.Surface,
		sink:     opts.Sink,
		results:  opts.Results,
		newRNG:   opts.RNG,
		logger:   opts.Logger,
		closers:  opts.Closers,
		bounds:   core.Bounds{W: cfg.World.Width, H: cfg.World.Height},
		events:   event.NewQueue(cfg.Replay.EventQueueSize),
		recorder: replay.NewRecorder(cfg.Replay.Capacity, cfg.Replay.GhostCapacity, cfg.Replay.GhostSampleEvery),
	}
	if e.sink == nil {
		e.sink = event.Discard
	}
	if e.newRNG == nil {
		e.newRNG = rng.New
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e, nil
}

// Settings returns the current settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// SetBiome selects the biome for the next Start.
func (e *Engine) SetBiome(id string) error {
	if !biome.Exists(id) {
		return fmt.Errorf("engine: %w %q", ErrUnknownBiome, id)
	}
	e.settings.Biome = id
	return nil
}

// SetBatterySaver switches to the lower simulation cadence.
func (e *Engine) SetBatterySaver(on bool) {
	e.settings.BatterySaver = on
}

// SetGhostEnabled toggles racing the personal-best ghost.
func (e *Engine) SetGhostEnabled(on bool) {
	e.settings.GhostEnabled = on
}

// SetChallengeSeed makes the next Start use seed.
func (e *Engine) SetChallengeSeed(seed string) {
	e.settings.ChallengeSeed = seed
}

// SetGhost installs the personal-best ghost from its serialized form.
// Malformed data disables the ghost for the run.
func (e *Engine) SetGhost(data []byte) {
	e.ghost = e.decodeGhost("ghost", data)
}

// SetOpponent installs an opponent's ghost from its serialized form.
func (e *Engine) SetOpponent(data []byte) {
	e.opponent = e.decodeGhost("opponent", data)
}

func (e *Engine) decodeGhost(which string, data []byte) *replay.GhostTrack {
	if len(data) == 0 {
		return nil
	}
	track := replay.NewGhostTrack(replay.DecodeGhost(data))
	if track == nil {
		e.logger.Debug("ignoring malformed ghost", "which", which, "bytes", len(data))
	}
	return track
}

// AddCloser registers a resource released by Destroy.
func (e *Engine) AddCloser(c io.Closer) {
	e.closers = append(e.closers, c)
}

// Start resets all run state (seed, hazards, replay buffers, stats) and
// schedules the loop.
func (e *Engine) Start() error {
	if e.destroyed {
		return fmt.Errorf("engine: start after destroy")
	}
	seed := e.settings.ChallengeSeed
	e.settings.ChallengeSeed = ""
	if seed == "" {
		seed = rng.RandomSeed()
	}

	b, err := biome.Resolve(e.settings.Biome, e.cfg)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	e.reset()
	e.rng = e.newRNG(seed)
	e.hazards = hazard.NewManager(b, e.cfg, e.rng, e.events)
	e.avatar = entity.NewAvatar(e.bounds.Center(), e.cfg.Avatar.Radius)
	e.stats = RunStats{Biome: b.ID, Seed: seed, DodgesByKind: map[entity.Kind]int{}}
	e.scheduled = true

	e.logger.Info("run started", "biome", b.ID, "seed", seed, "difficulty", e.cfg.Difficulty)
	return nil
}

// reset clears everything a run accumulates.
func (e *Engine) reset() {
	e.events.Reset()
	e.recorder.Reset()
	e.rng = nil
	e.hazards = nil
	e.avatar = entity.Avatar{}
	e.mode = ModePlaying
	e.stats = RunStats{}
	e.clock = 0
	e.deathTimer = 0
	e.submitted = false
	e.replayTime = 0
	e.replayFrame = nil
	e.replayDeath = false
	e.loop = loopState{}
	e.scheduled = false
}

// Pause stops scheduling without touching run state.
func (e *Engine) Pause() {
	e.scheduled = false
}

// Resume reschedules a paused run. Wall time spent paused is not simulated.
func (e *Engine) Resume() {
	if e.destroyed || e.hazards == nil {
		return
	}
	e.loop = loopState{}
	e.scheduled = true
}

// Stop unschedules the loop; a later Start begins a fresh run.
func (e *Engine) Stop() {
	e.scheduled = false
}

// Scheduled reports whether the host should keep calling Frame.
func (e *Engine) Scheduled() bool {
	return e.scheduled
}

// Destroy resets all state and then releases registered resources.
func (e *Engine) Destroy() error {
	if e.destroyed {
		return nil
	}
	e.reset()
	e.destroyed = true
	e.ghost = nil
	e.opponent = nil

	var errs []error
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("engine: destroy: %w", err)
	}
	return nil
}

// Mode returns the current run mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Avatar returns a copy of the avatar.
func (e *Engine) Avatar() entity.Avatar {
	return e.avatar.Clone()
}

// Hazards returns deep copies of the live hazards.
func (e *Engine) Hazards() []entity.Hazard {
	if e.hazards == nil {
		return nil
	}
	live := e.hazards.Hazards()
	out := make([]entity.Hazard, len(live))
	for i := range live {
		out[i] = live[i].Clone()
	}
	return out
}

// Barrage returns the barrage state.
func (e *Engine) Barrage() hazard.Barrage {
	if e.hazards == nil {
		return hazard.Barrage{}
	}
	return e.hazards.Barrage()
}

// Clock returns the unscaled simulation time since Start.
func (e *Engine) Clock() float64 {
	return e.clock
}

// GhostFrame returns the personal-best ghost pose at the current run time.
func (e *Engine) GhostFrame() (replay.LightFrame, bool) {
	if !e.settings.GhostEnabled || e.mode == ModeReplay {
		return replay.LightFrame{}, false
	}
	return e.ghost.At(e.clock)
}

// OpponentFrame returns the opponent ghost pose at the current run time.
func (e *Engine) OpponentFrame() (replay.LightFrame, bool) {
	if e.mode == ModeReplay {
		return replay.LightFrame{}, false
	}
	return e.opponent.At(e.clock)
}

// Stats returns a copy of the run statistics so far.
func (e *Engine) Stats() RunStats {
	s := e.stats.Clone()
	if e.hazards != nil && !e.submitted {
		s.DodgesByKind = e.hazards.Dodges()
		s.Dodges = 0
		for _, n := range s.DodgesByKind {
			s.Dodges += n
		}
	}
	return s
}

// Ghost returns the sampled ghost track recorded so far.
func (e *Engine) Ghost() []replay.LightFrame {
	return e.recorder.Ghost()
}

// Export serializes the replay buffer. It returns (nil, false) for an
// unsupported format or an empty buffer.
func (e *Engine) Export(format string) ([]byte, bool) {
	if e.recorder.Len() == 0 {
		return nil, false
	}
	return replay.Export(e.recorder.Frames(), format)
}
