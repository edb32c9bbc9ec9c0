package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

// ansi maps core.Color to terminal foreground colors.
var ansi = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorBrown:         "130",
}

// palette is the backdrop of one biome: a dark floor under the arena and
// a slightly lighter bar behind the HUD.
type palette struct {
	floor lipgloss.Color
	bar   lipgloss.Color
}

// palettes maps a biome's background color to its 256-color backdrop.
var palettes = map[core.Color]palette{
	core.ColorBlue:    {floor: "17", bar: "18"},
	core.ColorGreen:   {floor: "22", bar: "28"},
	core.ColorMagenta: {floor: "53", bar: "54"},
	core.ColorRed:     {floor: "52", bar: "88"},
	core.ColorGray:    {floor: "235", bar: "238"},
	core.ColorBrown:   {floor: "58", bar: "94"},
}

// zone is the backdrop region a cell belongs to.
type zone uint8

const (
	zonePlain zone = iota
	zoneBar
	zoneFloor
)

type styleKey struct {
	fg   core.Color
	zone zone
}

// Renderer turns a Screen into styled terminal output, tinting the HUD
// line and the arena with the current biome's palette.
type Renderer struct {
	pal    palette
	arena  core.Rect
	styles map[styleKey]lipgloss.Style
}

// NewRenderer creates a renderer without a backdrop.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(map[styleKey]lipgloss.Style)}
}

// SetBackground switches to the palette of a biome background color.
// Unknown colors render without a backdrop.
func (r *Renderer) SetBackground(c core.Color) {
	r.pal = palettes[c]
	clear(r.styles)
}

// SetArena sets the cells that get the floor tint.
func (r *Renderer) SetArena(arena core.Rect) {
	r.arena = arena
}

func (r *Renderer) zoneAt(x, y int) zone {
	switch {
	case y == 0:
		return zoneBar
	case x >= r.arena.X && x < r.arena.X+r.arena.W && y >= r.arena.Y && y < r.arena.Y+r.arena.H:
		return zoneFloor
	}
	return zonePlain
}

func (r *Renderer) style(k styleKey) lipgloss.Style {
	if st, ok := r.styles[k]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if fg, ok := ansi[k.fg]; ok {
		st = st.Foreground(fg)
	}
	switch {
	case k.zone == zoneBar && r.pal.bar != "":
		st = st.Background(r.pal.bar)
	case k.zone == zoneFloor && r.pal.floor != "":
		st = st.Background(r.pal.floor)
	}
	r.styles[k] = st
	return st
}

// Render converts s to a styled string. Adjacent cells sharing a color and
// a zone are written as one run to keep escape sequences short.
func (r *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			key := styleKey{fg: s.GetCell(x, y).Color, zone: r.zoneAt(x, y)}
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != key.fg || r.zoneAt(x, y) != key.zone {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(r.style(key).Render(run.String()))
		}
	}
	return sb.String()
}
