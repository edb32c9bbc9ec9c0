package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-dodge/internal/collision"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/engine"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/hazard"
	"github.com/vovakirdan/tui-dodge/internal/replay"
)

// glyphs maps hazard kinds to their terminal rune.
var glyphs = map[entity.Kind]rune{
	entity.KindAsteroid:  '*',
	entity.KindComet:     '~',
	entity.KindSatellite: '#',
	entity.KindLog:       '=',
	entity.KindFrog:      'f',
	entity.KindCar:       'c',
	entity.KindTruck:     'T',
	entity.KindDrone:     'd',
	entity.KindLaser:     '-',
	entity.KindExplosion: '%',
	entity.KindJet:       '^',
	entity.KindBall:      'o',
	entity.KindCueBall:   'O',
	entity.KindFireball:  '*',
	entity.KindBoulder:   '0',
	entity.KindShark:     'v',
	entity.KindJellyfish: 'j',
	entity.KindArrow:     '>',
	entity.KindSaw:       'x',
}

// ScreenSurface paints engine views into a core.Screen. The playfield is
// scaled from world pixels to the cells between the HUD line and the help
// line.
type ScreenSurface struct {
	screen *core.Screen
	help   string
	note   string
	arena  core.Rect // cells of the playfield in the last Draw
}

// NewScreenSurface creates a surface drawing into screen.
func NewScreenSurface(screen *core.Screen) *ScreenSurface {
	return &ScreenSurface{screen: screen}
}

// SetHelp sets the text of the bottom line.
func (s *ScreenSurface) SetHelp(help string) {
	s.help = help
}

// SetNote sets an extra line for the end-of-run card.
func (s *ScreenSurface) SetNote(note string) {
	s.note = note
}

// Screen returns the underlying buffer.
func (s *ScreenSurface) Screen() *core.Screen {
	return s.screen
}

// Arena returns the playfield cells of the last Draw, empty when the
// screen was too small to draw one.
func (s *ScreenSurface) Arena() core.Rect {
	return s.arena
}

// viewport maps world coordinates onto the arena cells.
type viewport struct {
	x0, y0 int     // top-left arena cell
	w, h   int     // arena size in cells
	sx, sy float64 // cells per world pixel
}

func (vp viewport) cell(p core.Vec) (int, int) {
	return vp.x0 + int(math.Floor(p.X*vp.sx)), vp.y0 + int(math.Floor(p.Y*vp.sy))
}

func (vp viewport) world(cx, cy int) core.Vec {
	return core.V((float64(cx-vp.x0)+0.5)/vp.sx, (float64(cy-vp.y0)+0.5)/vp.sy)
}

func (vp viewport) inside(cx, cy int) bool {
	return cx >= vp.x0 && cx < vp.x0+vp.w && cy >= vp.y0 && cy < vp.y0+vp.h
}

// Draw implements engine.Surface.
func (s *ScreenSurface) Draw(v engine.View) {
	scr := s.screen
	scr.Clear()
	s.arena = core.Rect{}
	if scr.Width() < 10 || scr.Height() < 6 {
		scr.DrawText(0, 0, "too small", core.ColorRed)
		return
	}

	vp := viewport{x0: 1, y0: 2, w: scr.Width() - 2, h: scr.Height() - 4}
	vp.sx = float64(vp.w) / v.Bounds.W
	vp.sy = float64(vp.h) / v.Bounds.H
	s.arena = core.NewRect(vp.x0, vp.y0, vp.w, vp.h)

	scr.DrawBox(core.NewRect(0, 1, scr.Width(), scr.Height()-2), core.ColorGray)
	s.drawPockets(vp, v.Pockets)
	s.drawHazards(vp, v.Hazards)
	s.drawAvatar(vp, v)
	s.drawHUD(v)
	if v.Mode == engine.ModeReplay {
		s.drawResult(v.Stats)
	}
	if s.help != "" {
		scr.DrawText(0, scr.Height()-1, s.help, core.ColorGray)
	}
}

func (s *ScreenSurface) drawPockets(vp viewport, pockets []collision.Pocket) {
	for _, p := range pockets {
		s.fill(vp, p.Pos, p.Radius, 'O', core.ColorGray, func(w core.Vec) bool {
			return w.Dist(p.Pos) <= p.Radius
		})
	}
}

func (s *ScreenSurface) drawHazards(vp viewport, hazards []replay.HazardSnapshot) {
	for i := range hazards {
		h := &hazards[i]
		if h.Beam != nil {
			s.drawBeam(vp, h.Beam)
			continue
		}

		r, ok := glyphs[h.Kind]
		if !ok {
			r = '?'
		}
		color := h.Color
		if h.SpawnTimer < 1 {
			r, color = '.', core.ColorGray
		}

		switch h.Shape {
		case entity.ShapeRect:
			extent := math.Hypot(h.Width, h.Height) / 2
			s.fill(vp, h.Pos, extent, r, color, func(w core.Vec) bool {
				return collision.CircleRectDistance(w, h.Pos, h.Width, h.Height, h.Rotation) <= 0
			})
		default:
			s.fill(vp, h.Pos, h.Radius, r, color, func(w core.Vec) bool {
				return w.Dist(h.Pos) <= h.Radius
			})
		}
	}
}

func (s *ScreenSurface) drawBeam(vp viewport, b *replay.BeamSnapshot) {
	r, color := '.', core.ColorRed
	if b.Active {
		r, color = '#', core.ColorBrightRed
	}
	x0, y0 := vp.cell(b.From)
	x1, y1 := vp.cell(b.To)
	s.screen.DrawLine(x0, y0, x1, y1, r, color)
	s.redrawBox(vp)
}

// redrawBox restores the arena border after a beam crossed it.
func (s *ScreenSurface) redrawBox(vp viewport) {
	s.screen.DrawBox(core.NewRect(vp.x0-1, vp.y0-1, vp.w+2, vp.h+2), core.ColorGray)
}

// fill paints every arena cell whose center satisfies in, scanning the
// cells within extent of center. The center cell is always painted so
// hazards smaller than a cell stay visible.
func (s *ScreenSurface) fill(vp viewport, center core.Vec, extent float64, r rune, c core.Color, in func(core.Vec) bool) {
	minX, minY := vp.cell(center.Sub(core.V(extent, extent)))
	maxX, maxY := vp.cell(center.Add(core.V(extent, extent)))
	for cy := minY; cy <= maxY; cy++ {
		for cx := minX; cx <= maxX; cx++ {
			if vp.inside(cx, cy) && in(vp.world(cx, cy)) {
				s.screen.SetColored(cx, cy, r, c)
			}
		}
	}
	if cx, cy := vp.cell(center); vp.inside(cx, cy) {
		s.screen.SetColored(cx, cy, r, c)
	}
}

func (s *ScreenSurface) drawAvatar(vp viewport, v engine.View) {
	plot := func(p core.Vec, r rune, c core.Color) {
		if cx, cy := vp.cell(p); vp.inside(cx, cy) {
			s.screen.SetColored(cx, cy, r, c)
		}
	}

	if v.Ghost != nil {
		plot(v.Ghost.Pos(), 'g', core.ColorGray)
	}
	if v.Opponent != nil {
		plot(v.Opponent.Pos(), '&', core.ColorMagenta)
	}
	for _, p := range v.Avatar.Trail {
		plot(p, '.', core.ColorCyan)
	}

	switch {
	case v.Avatar.State == entity.AvatarDead:
		plot(v.Avatar.Pos, 'X', core.ColorBrightRed)
	case v.Avatar.Panic > 0.6:
		plot(v.Avatar.Pos, '@', core.ColorBrightYellow)
	default:
		plot(v.Avatar.Pos, '@', core.ColorBrightCyan)
	}
}

func (s *ScreenSurface) drawHUD(v engine.View) {
	scr := s.screen
	left := fmt.Sprintf(" %s  %.1fs  near %d  dodged %d", strings.ToUpper(v.Biome), v.Stats.Elapsed, v.Stats.NearMisses, v.Stats.Dodges)
	scr.DrawText(0, 0, left, core.ColorBrightWhite)

	var banner string
	color := core.ColorBrightYellow
	switch {
	case v.Paused:
		banner = "PAUSED"
	case v.Mode == engine.ModeReplay:
		banner = fmt.Sprintf("REPLAY  %s  r:restart b:menu", v.Stats.DeathCause)
		color = core.ColorBrightMagenta
	case v.Mode == engine.ModeDying:
		banner = "HIT!"
		color = core.ColorBrightRed
	case v.Barrage.State == hazard.BarrageWarning:
		banner = fmt.Sprintf("!! BARRAGE %s !!", strings.ToUpper(v.Barrage.Edge.String()))
		color = core.ColorOrange
	case v.Barrage.State == hazard.BarrageActive:
		banner = fmt.Sprintf("BARRAGE %3.0f%%", v.Barrage.Progress*100)
		color = core.ColorOrange
	}
	if banner != "" {
		scr.DrawText(scr.Width()-len(banner)-1, 0, banner, color)
	}
}

// drawResult centers the end-of-run card over the replay.
func (s *ScreenSurface) drawResult(st engine.RunStats) {
	lines := []string{
		fmt.Sprintf("survived %.2fs", st.Elapsed),
		fmt.Sprintf("near misses %d   dodges %d", st.NearMisses, st.Dodges),
		fmt.Sprintf("pushes %d   top speed %.0f px/s", st.Pushes, st.TopSpeed),
	}
	if st.Explosions > 0 || st.Pockets > 0 {
		lines = append(lines, fmt.Sprintf("drone explosions %d   pocketed %d", st.Explosions, st.Pockets))
	}
	if s.note != "" {
		lines = append(lines, s.note)
	}
	top := s.screen.Height()/2 - len(lines)/2
	for i, l := range lines {
		s.screen.DrawTextCentered(top+i, l, core.ColorBrightWhite)
	}
}
