package tui

import (
	"math"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodge/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperHoldDecays(t *testing.T) {
	km := NewKeyMapper()
	t0 := time.Unix(1000, 0)

	if action, quit := km.MapKey(tea.KeyMsg{Type: tea.KeyUp}, t0); action != core.ActionNone || quit {
		t.Fatalf("MapKey(up) = %v, %v", action, quit)
	}
	if got := km.Move(t0); got != core.V(0, -1) {
		t.Errorf("Move right after up = %v, want (0, -1)", got)
	}
	if got := km.Move(t0.Add(holdDuration / 2)); got != core.V(0, -1) {
		t.Errorf("Move within hold = %v, want (0, -1)", got)
	}
	if got := km.Move(t0.Add(holdDuration)); got != (core.Vec{}) {
		t.Errorf("Move after hold = %v, want zero", got)
	}
}

func TestKeyMapperDirections(t *testing.T) {
	now := time.Unix(1000, 0)
	diag := 1 / math.Sqrt2

	tests := []struct {
		name string
		keys []tea.KeyMsg
		want core.Vec
	}{
		{"right", []tea.KeyMsg{runeKey('d')}, core.V(1, 0)},
		{"left vim", []tea.KeyMsg{runeKey('h')}, core.V(-1, 0)},
		{"down arrow", []tea.KeyMsg{{Type: tea.KeyDown}}, core.V(0, 1)},
		{"diagonal", []tea.KeyMsg{runeKey('w'), runeKey('d')}, core.V(diag, -diag)},
		{"opposite cancels", []tea.KeyMsg{runeKey('w'), runeKey('s')}, core.V(0, 1)},
		{"space stops", []tea.KeyMsg{runeKey('w'), {Type: tea.KeySpace}}, core.Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km := NewKeyMapper()
			for _, k := range tt.keys {
				km.MapKey(k, now)
			}
			got := km.Move(now)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Move() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyMapperActions(t *testing.T) {
	km := NewKeyMapper()
	now := time.Now()

	tests := []struct {
		key    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runeKey('p'), core.ActionPause, false},
		{runeKey('r'), core.ActionRestart, false},
		{runeKey('b'), core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('z'), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.key, now)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key.String(), action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('d'), MenuActionDifficulty},
		{runeKey('g'), MenuActionGhost},
		{runeKey('v'), MenuActionBattery},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.key); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.key.String(), got, tt.want)
		}
	}
}
