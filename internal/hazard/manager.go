// Package hazard owns the hazard list of a run: spawn scheduling and
// patterns, per-family AI, the barrage wave, bouncing, pockets and
// removal. All side effects leave through the event queue.
package hazard

import (
	"math"

	"github.com/vovakirdan/tui-dodge/internal/biome"
	"github.com/vovakirdan/tui-dodge/internal/collision"
	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/event"
	"github.com/vovakirdan/tui-dodge/internal/rng"
)

// timeEpsilon absorbs float accumulation error in timer comparisons so
// fixed-step timers fire on the tick their duration elapses.
const timeEpsilon = 1e-9

// TickContext is everything the manager needs from the engine for one tick.
type TickContext struct {
	Dt      float64  // scaled step, seconds
	Now     float64  // simulation clock, for event timestamps
	Elapsed float64  // survival time, drives the difficulty curve
	Avatar  core.Vec // avatar position this tick
	Spawn   bool     // normal spawning and barrage enabled
}

// Manager owns the hazard list of a single run.
type Manager struct {
	cfg     config.HazardConfig
	barCfg  config.BarrageConfig
	biome   biome.Biome
	bounds  core.Bounds
	rng     *rng.RNG
	events  *event.Queue
	pockets []collision.Pocket

	hazards []entity.Hazard
	nextID  uint64

	spawnAcc float64
	delay    float64 // interval multiplier left by the last pattern
	spawned  int

	barrage Barrage
	dodges  map[entity.Kind]int

	onSpawn func(h *entity.Hazard)
}

// NewManager creates a manager for one run of biome b.
func NewManager(b biome.Biome, cfg config.Config, r *rng.RNG, q *event.Queue) *Manager {
	bounds := core.Bounds{W: cfg.World.Width, H: cfg.World.Height}
	m := &Manager{
		cfg:     cfg.Hazards,
		barCfg:  cfg.Barrage,
		biome:   b,
		bounds:  bounds,
		rng:     r,
		events:  q,
		pockets: b.PocketZones(bounds, cfg.Hazards.PocketRadius),
		hazards: make([]entity.Hazard, 0, 64),
		nextID:  1,
		delay:   1,
		dodges:  make(map[entity.Kind]int),
	}
	m.barrage.Interval = cfg.Barrage.BaseInterval
	return m
}

// SetSpawnHook registers fn to observe every hazard as it spawns.
func (m *Manager) SetSpawnHook(fn func(h *entity.Hazard)) {
	m.onSpawn = fn
}

// Hazards returns the live hazard list. The slice is owned by the manager
// and is only valid until the next Update.
func (m *Manager) Hazards() []entity.Hazard {
	return m.hazards
}

// Pockets returns the static pocket zones of the biome.
func (m *Manager) Pockets() []collision.Pocket {
	return m.pockets
}

// Barrage returns the barrage state.
func (m *Manager) Barrage() Barrage {
	return m.barrage
}

// Spawned returns how many hazards the spawner has created.
func (m *Manager) Spawned() int {
	return m.spawned
}

// Dodges returns a copy of the per-kind count of lethal hazards that left
// the playfield without killing the avatar.
func (m *Manager) Dodges() map[entity.Kind]int {
	out := make(map[entity.Kind]int, len(m.dodges))
	for k, v := range m.dodges {
		out[k] = v
	}
	return out
}

// Update advances every hazard by one tick. Order: barrage and normal
// spawning; per-hazard AI, motion and removal; drone pairs; pockets;
// compaction. Spawn draws therefore precede the AI draws of the same tick,
// and hazards spawned this tick first move on the next one.
func (m *Manager) Update(ctx TickContext) {
	existing := len(m.hazards)
	if ctx.Spawn {
		m.updateBarrage(ctx)
		if m.barrage.State != BarrageActive {
			m.updateSpawner(ctx)
		}
	}

	for i := 0; i < existing; i++ {
		h := &m.hazards[i]
		if h.Dead {
			continue
		}
		m.updateHazard(h, ctx)
	}

	m.resolveDronePairs(ctx)
	m.resolvePockets(ctx)
	m.compact()
}

func (m *Manager) updateHazard(h *entity.Hazard, ctx TickContext) {
	dt := ctx.Dt
	h.Age += dt
	if h.SpawnTimer < 1 {
		h.SpawnTimer = math.Min(1, h.SpawnTimer+dt/m.cfg.FadeTime)
	}

	m.updateAI(h, ctx)
	if h.Dead {
		return
	}

	h.Pos = h.Pos.Add(h.Vel.Scale(dt))
	h.Rotation = core.NormalizeAngle(h.Rotation + h.Spin*dt)

	ext := h.Extent()
	if !h.Entered && h.Pos.X-ext >= 0 && h.Pos.X+ext <= m.bounds.W &&
		h.Pos.Y-ext >= 0 && h.Pos.Y+ext <= m.bounds.H {
		h.Entered = true
	}

	if b, ok := h.AI.(*entity.Bouncer); ok && h.Entered {
		m.bounce(h, b)
		if h.Dead {
			return
		}
	}

	if !m.bounds.Contains(h.Pos, m.cfg.OffscreenMargin+ext) {
		m.remove(h, true)
	}
}

// bounce reflects the velocity axis that crossed a wall.
func (m *Manager) bounce(h *entity.Hazard, b *entity.Bouncer) {
	r := h.Extent()
	hit := false
	if h.Pos.X-r < 0 && h.Vel.X < 0 || h.Pos.X+r > m.bounds.W && h.Vel.X > 0 {
		h.Vel.X = -h.Vel.X
		h.Pos.X = core.ClampF(h.Pos.X, r, m.bounds.W-r)
		hit = true
	}
	if h.Pos.Y-r < 0 && h.Vel.Y < 0 || h.Pos.Y+r > m.bounds.H && h.Vel.Y > 0 {
		h.Vel.Y = -h.Vel.Y
		h.Pos.Y = core.ClampF(h.Pos.Y, r, m.bounds.H-r)
		hit = true
	}
	if hit {
		b.Bounces++
		if b.Bounces > b.Limit {
			m.remove(h, true)
		}
	}
}

// remove tombstones h. Lethal hazards that leave the playfield, off-screen
// or past their bounce limit, count as dodges.
func (m *Manager) remove(h *entity.Hazard, dodged bool) {
	h.Dead = true
	if dodged && h.Kind.Lethal() {
		m.dodges[h.Kind]++
	}
}

// resolveDronePairs destroys every pair of overlapping drones and leaves
// one explosion at each pair's midpoint.
func (m *Manager) resolveDronePairs(ctx TickContext) {
	var blasts []entity.Hazard
	for i := range m.hazards {
		a := &m.hazards[i]
		if a.Dead || a.Kind != entity.KindDrone {
			continue
		}
		for j := i + 1; j < len(m.hazards); j++ {
			b := &m.hazards[j]
			if b.Dead || b.Kind != entity.KindDrone {
				continue
			}
			if !collision.CircleCircle(a.Pos, a.Radius, b.Pos, b.Radius, 0) {
				continue
			}
			a.Dead = true
			b.Dead = true
			mid := a.Pos.Lerp(b.Pos, 0.5)
			blasts = append(blasts, m.newExplosion(mid))
			m.events.Push(event.Event{Type: event.Explosion, Time: ctx.Now, Pos: mid, Kind: entity.KindDrone, HazardID: a.ID})
			break
		}
	}
	m.hazards = append(m.hazards, blasts...)
}

func (m *Manager) newExplosion(pos core.Vec) entity.Hazard {
	ec := m.cfg.Explosion
	h := entity.Hazard{
		ID:         m.allocID(),
		Kind:       entity.KindExplosion,
		Shape:      entity.ShapeCircle,
		Color:      core.ColorOrange,
		Pos:        pos,
		Radius:     ec.Radius,
		SpawnTimer: 1,
		Entered:    true,
		AI:         &entity.Timed{Lifetime: ec.Lifetime, Remaining: ec.Lifetime},
	}
	return h
}

// resolvePockets removes balls whose centre falls inside a pocket once
// their spawn grace has passed.
func (m *Manager) resolvePockets(ctx TickContext) {
	if len(m.pockets) == 0 {
		return
	}
	for i := range m.hazards {
		h := &m.hazards[i]
		if h.Dead || !h.Kind.Pocketable() || h.SpawnTimer < collision.CollisionFade {
			continue
		}
		for _, p := range m.pockets {
			if h.Pos.Dist(p.Pos) < p.Radius {
				m.remove(h, false)
				m.events.Push(event.Event{Type: event.PocketFall, Time: ctx.Now, Pos: p.Pos, Kind: h.Kind, HazardID: h.ID})
				break
			}
		}
	}
}

// compact drops tombstoned hazards in place, preserving order.
func (m *Manager) compact() {
	valid := m.hazards[:0]
	for _, h := range m.hazards {
		if !h.Dead {
			valid = append(valid, h)
		}
	}
	for i := len(valid); i < len(m.hazards); i++ {
		m.hazards[i] = entity.Hazard{}
	}
	m.hazards = valid
}

func (m *Manager) allocID() uint64 {
	id := m.nextID
	m.nextID++
	return id
}

// Place inserts a scripted hazard outside the spawner and returns its ID.
// The hazard takes part in the next Update like any spawned one.
func (m *Manager) Place(h entity.Hazard) uint64 {
	h.ID = m.allocID()
	m.hazards = append(m.hazards, h)
	return h.ID
}

// add appends a freshly spawned hazard.
func (m *Manager) add(h entity.Hazard) {
	h.ID = m.allocID()
	m.hazards = append(m.hazards, h)
	m.spawned++
	if m.onSpawn != nil {
		m.onSpawn(&m.hazards[len(m.hazards)-1])
	}
}
