package engine

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/event"
	"github.com/vovakirdan/tui-dodge/internal/replay"
)

const step = 1.0 / 60

// capture records everything the engine hands its collaborators.
type capture struct {
	draws   int
	events  []event.Event
	results []RunResult
}

func (c *capture) count(t event.Type) int {
	n := 0
	for _, e := range c.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// quietConfig stretches the spawn interval of biome so that only scripted
// hazards are in play.
func quietConfig(biomeID string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Biomes = map[string]config.BiomeOverride{
		biomeID: {Difficulty: &config.DifficultyConfig{
			InitialInterval: 1000,
			MinInterval:     1000,
			SpeedMultiplier: 1,
			PatternDelay:    1,
		}},
	}
	return cfg
}

func newTestEngine(t *testing.T, cfg config.Config, biomeID, seed string) (*Engine, *capture) {
	t.Helper()
	c := &capture{}
	e, err := New(Options{
		Config:   cfg,
		Settings: Settings{Biome: biomeID, ChallengeSeed: seed},
		Surface:  SurfaceFunc(func(View) { c.draws++ }),
		Sink:     event.SinkFunc(func(ev event.Event) { c.events = append(c.events, ev) }),
		Results:  ResultFunc(func(r RunResult) { c.results = append(c.results, r) }),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return e, c
}

func steps(e *Engine, n int, in core.InputFrame) {
	for i := 0; i < n; i++ {
		e.Step(step, in)
	}
}

// killer is a static asteroid sitting on the avatar's start position.
func killer(e *Engine) entity.Hazard {
	return entity.Hazard{
		Kind:       entity.KindAsteroid,
		Radius:     20,
		Pos:        e.bounds.Center(),
		SpawnTimer: 1,
	}
}

func TestNewRequiresSurface(t *testing.T) {
	_, err := New(Options{Config: config.DefaultConfig()})
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("expected ErrNoSurface, got %v", err)
	}
}

func TestUnknownBiome(t *testing.T) {
	_, err := New(Options{
		Config:   config.DefaultConfig(),
		Settings: Settings{Biome: "moon"},
		Surface:  SurfaceFunc(func(View) {}),
	})
	if !errors.Is(err, ErrUnknownBiome) {
		t.Fatalf("expected ErrUnknownBiome, got %v", err)
	}

	e, _ := newTestEngine(t, config.DefaultConfig(), "space", "x")
	if err := e.SetBiome("moon"); !errors.Is(err, ErrUnknownBiome) {
		t.Errorf("SetBiome: expected ErrUnknownBiome, got %v", err)
	}
	if e.Settings().Biome != "space" {
		t.Error("a rejected biome must not replace the current one")
	}
}

func TestSameSeedSameRun(t *testing.T) {
	a, ca := newTestEngine(t, config.DefaultConfig(), "city", "determinism")
	b, cb := newTestEngine(t, config.DefaultConfig(), "city", "determinism")

	for i := 0; i < 1200; i++ {
		in := core.MoveInput(math.Sin(float64(i)/40), math.Cos(float64(i)/55))
		a.Step(step, in)
		b.Step(step, in)
	}

	if !reflect.DeepEqual(a.Hazards(), b.Hazards()) {
		t.Error("hazard lists diverged")
	}
	if !reflect.DeepEqual(a.Avatar(), b.Avatar()) {
		t.Error("avatars diverged")
	}
	if !reflect.DeepEqual(a.Stats(), b.Stats()) {
		t.Errorf("stats diverged:\n%+v\n%+v", a.Stats(), b.Stats())
	}
	if !reflect.DeepEqual(ca.events, cb.events) {
		t.Error("event streams diverged")
	}
	if a.Mode() != b.Mode() {
		t.Errorf("modes diverged: %s vs %s", a.Mode(), b.Mode())
	}
}

func TestDeathThenReplay(t *testing.T) {
	e, c := newTestEngine(t, quietConfig("space"), "space", "death")
	steps(e, 10, core.NewInputFrame())
	e.hazards.Place(killer(e))

	e.Step(step, core.NewInputFrame())
	if e.Mode() != ModeDying {
		t.Fatalf("expected dying on the collision tick, got %s", e.Mode())
	}
	if e.Avatar().State != entity.AvatarDead {
		t.Error("avatar should be dead")
	}
	if c.count(event.Death) != 1 {
		t.Errorf("death events = %d", c.count(event.Death))
	}

	deathTicks := int(math.Round(e.cfg.Loop.DeathDuration / step))
	steps(e, deathTicks-1, core.NewInputFrame())
	if e.Mode() != ModeDying {
		t.Fatalf("left dying early: %s", e.Mode())
	}
	e.Step(step, core.NewInputFrame())
	if e.Mode() != ModeReplay {
		t.Fatalf("expected replay after the death duration, got %s", e.Mode())
	}

	steps(e, 600, core.NewInputFrame())
	if len(c.results) != 1 {
		t.Fatalf("RunFinished called %d times", len(c.results))
	}
	r := c.results[0]
	if r.Stats.DeathCause != entity.KindAsteroid {
		t.Errorf("death cause = %s", r.Stats.DeathCause)
	}
	if math.Abs(r.Stats.Elapsed-11*step) > 1e-9 {
		t.Errorf("elapsed = %v, expected 11 ticks", r.Stats.Elapsed)
	}
	if r.Stats.Seed != "death" || r.Stats.Biome != "space" {
		t.Errorf("run identity = %q/%q", r.Stats.Seed, r.Stats.Biome)
	}
	if len(r.Ghost) == 0 {
		t.Error("result should carry the ghost track")
	}
	if c.count(event.Death) != 1 {
		t.Error("replay must not emit further death events")
	}
}

func TestSlowMotionWhileDying(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig("space"), "space", "slow")
	e.hazards.Place(entity.Hazard{Kind: entity.KindComet, Radius: 8, Pos: core.V(100, 100), Vel: core.V(60, 0), SpawnTimer: 1})
	e.hazards.Place(killer(e))

	e.Step(step, core.NewInputFrame())
	before := e.Hazards()[0].Pos.X
	e.Step(step, core.NewInputFrame())
	moved := e.Hazards()[0].Pos.X - before

	if want := 60 * step * e.cfg.Loop.SlowMotion; math.Abs(moved-want) > 1e-9 {
		t.Errorf("hazard moved %v while dying, expected %v", moved, want)
	}
	if e.Clock() != 2*step {
		t.Errorf("clock should advance unscaled, got %v", e.Clock())
	}
}

func TestReplayDeathOncePerPass(t *testing.T) {
	e, c := newTestEngine(t, quietConfig("space"), "space", "ghost")
	steps(e, 10, core.NewInputFrame())
	e.hazards.Place(killer(e))
	for i := 0; i < 200 && e.Mode() != ModeReplay; i++ {
		e.Step(step, core.NewInputFrame())
	}
	if e.Mode() != ModeReplay {
		t.Fatal("never reached replay")
	}

	// 101 frames: the death shows 10 ticks into a pass, the pass ends after
	// 100 ticks and the grace hold lasts 60.
	steps(e, 165, core.NewInputFrame())
	if n := c.count(event.ReplayDeath); n != 1 {
		t.Fatalf("first pass emitted %d replay deaths", n)
	}
	steps(e, 135, core.NewInputFrame())
	if n := c.count(event.ReplayDeath); n != 2 {
		t.Errorf("two passes emitted %d replay deaths", n)
	}
}

func TestNearMissCountedOnce(t *testing.T) {
	e, c := newTestEngine(t, quietConfig("space"), "space", "close")
	center := e.bounds.Center()
	e.hazards.Place(entity.Hazard{Kind: entity.KindAsteroid, Radius: 10, Pos: center.Add(core.V(46, 0)), SpawnTimer: 1})

	steps(e, 30, core.NewInputFrame())
	if e.Mode() != ModePlaying {
		t.Fatalf("a graze must not kill, mode %s", e.Mode())
	}
	if got := e.Stats().NearMisses; got != 1 {
		t.Errorf("NearMisses = %d, expected 1", got)
	}
	if c.count(event.NearMiss) != 1 {
		t.Errorf("near_miss events = %d", c.count(event.NearMiss))
	}
	if e.Avatar().Panic <= 0 {
		t.Error("a nearby hazard should raise panic")
	}
}

func TestJetPushesOnce(t *testing.T) {
	e, c := newTestEngine(t, quietConfig("volcano"), "volcano", "jet")
	e.hazards.Place(entity.Hazard{
		Kind: entity.KindJet, Shape: entity.ShapeRect, Width: 180, Height: 40,
		Pos: e.bounds.Center(), SpawnTimer: 1,
		AI: &entity.Timed{Lifetime: 2.5, Remaining: 2.5},
	})

	e.Step(step, core.NewInputFrame())
	if vx := e.Avatar().Vel.X; math.Abs(vx-e.cfg.Hazards.Jet.Push) > 1e-9 {
		t.Errorf("avatar vx after push = %v", vx)
	}
	steps(e, 20, core.NewInputFrame())
	if e.Mode() != ModePlaying {
		t.Fatal("jets push, they do not kill")
	}
	if got := e.Stats().Pushes; got != 1 {
		t.Errorf("Pushes = %d", got)
	}
	if c.count(event.Push) != 1 {
		t.Errorf("push events = %d", c.count(event.Push))
	}
}

func TestPocketKillsAvatar(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig("billiards"), "billiards", "pocket")
	up := core.MoveInput(0, -1)
	for i := 0; i < 300 && e.Mode() == ModePlaying; i++ {
		e.Step(step, up)
	}
	if e.Mode() != ModeDying {
		t.Fatalf("avatar should fall into the top pocket, mode %s", e.Mode())
	}
	if e.Stats().DeathCause != entity.KindPocket {
		t.Errorf("death cause = %s", e.Stats().DeathCause)
	}
}

func TestAvatarStaysInBounds(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig("space"), "space", "walls")
	steps(e, 300, core.MoveInput(1, 1))
	a := e.Avatar()
	if a.Pos.X != e.bounds.W-a.Radius || a.Pos.Y != e.bounds.H-a.Radius {
		t.Errorf("avatar at %+v, expected the bottom-right corner", a.Pos)
	}
	if len(a.Trail) != e.cfg.Avatar.TrailLength {
		t.Errorf("trail length = %d", len(a.Trail))
	}
	if a.State != entity.AvatarIdle {
		t.Errorf("pinned avatar should be idle, got %s", a.State)
	}
	if e.Stats().TopSpeed <= 0 || e.Stats().TopSpeed > e.cfg.Avatar.MaxSpeed*math.Sqrt2 {
		t.Errorf("top speed = %v", e.Stats().TopSpeed)
	}
}

func TestFrameAccumulator(t *testing.T) {
	e, c := newTestEngine(t, quietConfig("space"), "space", "loop")
	t0 := time.Unix(1000, 0)
	in := core.NewInputFrame()

	tests := []struct {
		at   time.Duration
		want int
	}{
		{0, 0}, // primes the clock
		{50 * time.Millisecond, 3},
		{60 * time.Millisecond, 0},
		{70 * time.Millisecond, 1},
		{2 * time.Second, 6}, // clamped to MaxDelta
		{2*time.Second - time.Second, 0},
	}
	for _, tt := range tests {
		if got := e.Frame(t0.Add(tt.at), in); got != tt.want {
			t.Errorf("Frame(+%v) = %d steps, want %d", tt.at, got, tt.want)
		}
	}
	if c.draws != 3 {
		t.Errorf("drew %d times, expected one per advancing frame", c.draws)
	}

	e.SetBatterySaver(true)
	if e.Interval() != 1.0/30 {
		t.Errorf("battery saver interval = %v", e.Interval())
	}
}

func TestPauseResume(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig("space"), "space", "pause")
	t0 := time.Unix(0, 0)
	in := core.NewInputFrame()
	e.Frame(t0, in)
	e.Frame(t0.Add(50*time.Millisecond), in)
	clock := e.Clock()

	e.Pause()
	if e.Scheduled() || !e.View().Paused {
		t.Fatal("pause should unschedule")
	}
	if n := e.Frame(t0.Add(time.Second), in); n != 0 || e.Clock() != clock {
		t.Fatal("paused engine advanced")
	}

	e.Resume()
	if !e.Scheduled() {
		t.Fatal("resume should reschedule")
	}
	if n := e.Frame(t0.Add(10*time.Second), in); n != 0 {
		t.Errorf("first frame after resume should only prime, took %d steps", n)
	}
	if n := e.Frame(t0.Add(10*time.Second+20*time.Millisecond), in); n != 1 {
		t.Errorf("expected one step after resume, got %d", n)
	}

	e.Stop()
	if e.Scheduled() {
		t.Error("stop should unschedule")
	}
}

func TestStartResetsRun(t *testing.T) {
	e, c := newTestEngine(t, quietConfig("space"), "space", "first")
	e.hazards.Place(killer(e))
	for i := 0; i < 200 && e.Mode() != ModeReplay; i++ {
		e.Step(step, core.NewInputFrame())
	}

	e.SetChallengeSeed("second")
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if e.Mode() != ModePlaying || e.Clock() != 0 || len(e.Hazards()) != 0 {
		t.Error("start should clear the previous run")
	}
	if _, ok := e.Export(replay.FormatJSON); ok {
		t.Error("replay buffer should be empty after start")
	}
	if got := e.Stats(); got.Seed != "second" || got.Elapsed != 0 || got.DeathCause != entity.KindNone {
		t.Errorf("stats not reset: %+v", got)
	}
	if e.Avatar().Pos != e.bounds.Center() {
		t.Error("avatar should restart at the center")
	}
	if len(c.results) != 1 {
		t.Errorf("results = %d", len(c.results))
	}

	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if e.Stats().Seed == "second" {
		t.Error("a challenge seed is consumed by one start")
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestDestroyClosesResources(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig("space"), "space", "destroy")
	boom := errors.New("boom")
	closed := 0
	e.AddCloser(closerFunc(func() error { closed++; return nil }))
	e.AddCloser(closerFunc(func() error { closed++; return boom }))

	if err := e.Destroy(); !errors.Is(err, boom) {
		t.Errorf("Destroy error = %v", err)
	}
	if closed != 2 {
		t.Errorf("closed %d resources", closed)
	}
	if e.Scheduled() {
		t.Error("destroyed engine is still scheduled")
	}
	if err := e.Destroy(); err != nil {
		t.Errorf("second Destroy = %v", err)
	}
	if err := e.Start(); err == nil {
		t.Error("start after destroy should fail")
	}
}

func TestGhostRace(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig("space"), "space", "race")
	frames := []replay.LightFrame{
		{T: 0, X: 10, Y: 10},
		{T: 0.5, X: 20, Y: 20},
		{T: 1, X: 30, Y: 30},
	}
	data, err := replay.EncodeGhost(frames)
	if err != nil {
		t.Fatal(err)
	}
	e.SetGhost(data)
	e.SetOpponent(data)

	steps(e, 1, core.NewInputFrame())
	if _, ok := e.GhostFrame(); ok {
		t.Error("ghost should be hidden until enabled")
	}
	e.SetGhostEnabled(true)
	g, ok := e.GhostFrame()
	if !ok || g.X != 20 {
		t.Errorf("GhostFrame = %+v, %v", g, ok)
	}
	if o, ok := e.OpponentFrame(); !ok || o.X != 20 {
		t.Errorf("OpponentFrame = %+v, %v", o, ok)
	}
	if v := e.View(); v.Ghost == nil || v.Opponent == nil {
		t.Error("view should carry both ghosts")
	}

	e.SetGhost([]byte("{not json"))
	if _, ok := e.GhostFrame(); ok {
		t.Error("malformed ghost should disable racing")
	}
}

func TestExport(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig("space"), "space", "export")
	if _, ok := e.Export(replay.FormatJSON); ok {
		t.Error("nothing recorded yet")
	}
	steps(e, 5, core.NewInputFrame())
	for _, format := range []string{replay.FormatJSON, replay.FormatCSV} {
		if data, ok := e.Export(format); !ok || len(data) == 0 {
			t.Errorf("Export(%s) failed", format)
		}
	}
	if data, ok := e.Export("xml"); ok || data != nil {
		t.Error("unsupported format should return nil, false")
	}
}

func TestRunUntilCancelled(t *testing.T) {
	e, c := newTestEngine(t, quietConfig("space"), "space", "run")
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := e.Run(ctx, core.NewInputFrame)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if c.draws == 0 || e.Clock() <= 0 {
		t.Error("Run should have stepped and drawn the engine")
	}

	e.Stop()
	if err := e.Run(context.Background(), core.NewInputFrame); err != nil {
		t.Errorf("Run on a stopped engine should return nil, got %v", err)
	}
}
