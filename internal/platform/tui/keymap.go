package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

// holdDuration is how long a single direction key press keeps steering.
// Terminals report presses and auto-repeat but never releases, so a held
// key is modelled as a press that decays unless repeated.
const holdDuration = 180 * time.Millisecond

// GameKeyMap defines the key bindings used during a run.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Stop       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Ghost      key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Pause, k.Restart, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Stop},
		{k.Pause, k.Restart, k.Ghost, k.Back, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("arrows/wasd", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/s", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("left/a", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("right/d", "move right"),
		),
		Stop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "stop"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Ghost: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "ghost"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to host actions and a
// decaying movement vector.
type KeyMapper struct {
	keys GameKeyMap
	held [4]time.Time // expiry per direction, indexed by core.Edge
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message pressed at now. Direction keys refresh
// the hold timer and report ActionNone. isQuit is true for quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, now time.Time) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Up):
		km.press(core.EdgeTop, now)
	case key.Matches(msg, km.keys.Down):
		km.press(core.EdgeBottom, now)
	case key.Matches(msg, km.keys.Left):
		km.press(core.EdgeLeft, now)
	case key.Matches(msg, km.keys.Right):
		km.press(core.EdgeRight, now)
	case key.Matches(msg, km.keys.Stop):
		km.Release()
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, km.keys.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// press steers toward dir and cancels the opposite direction.
func (km *KeyMapper) press(dir core.Edge, now time.Time) {
	km.held[dir] = now.Add(holdDuration)
	km.held[dir.Opposite()] = time.Time{}
}

// Release drops every held direction.
func (km *KeyMapper) Release() {
	km.held = [4]time.Time{}
}

// Move returns the joystick vector for the directions still held at now.
func (km *KeyMapper) Move(now time.Time) core.Vec {
	var x, y float64
	for _, e := range core.Edges {
		if now.Before(km.held[e]) {
			d := e.Inward()
			x -= d.X
			y -= d.Y
		}
	}
	f := core.MoveInput(x, y)
	return f.Move
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionDifficulty
	MenuActionGhost
	MenuActionBattery
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "d":
		return MenuActionDifficulty
	case "g":
		return MenuActionGhost
	case "v":
		return MenuActionBattery
	}

	return MenuActionNone
}
