// Package tui hosts the dodge engine in a terminal: the Bubble Tea tick
// loop, key mapping, rendering of engine views, the biome menu, the
// scoreboard and the Wish SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger an engine frame.
type TickMsg time.Time

// tickInterval is the host polling period: the host tick rate, slowed to
// the engine step when that is longer (battery saver). Polling faster than
// the engine steps would only redraw unchanged frames.
func tickInterval(hostRate int, step float64) time.Duration {
	interval := time.Second / 60
	if hostRate > 0 {
		interval = time.Second / time.Duration(hostRate)
	}
	if d := time.Duration(step * float64(time.Second)); d > interval {
		interval = d
	}
	return interval
}

// tickCmd schedules the next frame after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
