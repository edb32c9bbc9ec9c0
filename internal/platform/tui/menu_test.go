package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodge/internal/biome"
	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
)

func press(m MenuModel, k tea.KeyMsg) MenuModel {
	next, _ := m.Update(k)
	return next.(MenuModel)
}

func TestMenuStartsOnConfiguredBiome(t *testing.T) {
	infos := biome.List()
	if len(infos) < 2 {
		t.Fatalf("expected several built-in biomes, got %d", len(infos))
	}
	want := infos[len(infos)-1].ID

	cfg := core.DefaultConfig()
	cfg.Biome = want
	m := NewMenuModel(nil, cfg, "")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Selected() == nil || m.Selected().BiomeID != want {
		t.Fatalf("Selected() = %+v, want %s", m.Selected(), want)
	}
	r := m.result()
	if r.Quit || r.Biome != want || r.Config.Biome != want {
		t.Errorf("result = %+v", r)
	}
	if r.Difficulty != config.DifficultyNormal {
		t.Errorf("default difficulty = %s, want normal", r.Difficulty)
	}
}

func TestMenuToggles(t *testing.T) {
	cfg := core.DefaultConfig()
	m := NewMenuModel(nil, cfg, config.DifficultyNormal)

	m = press(m, runeKey('d'))
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("after d: %s, want hard", m.Difficulty())
	}
	m = press(m, runeKey('d'))
	m = press(m, runeKey('d'))
	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("difficulty should wrap to easy, got %s", m.Difficulty())
	}

	m = press(m, runeKey('g'))
	m = press(m, runeKey('v'))
	if m.Config().GhostEnabled == cfg.GhostEnabled || !m.Config().BatterySaver {
		t.Errorf("toggles not applied: %+v", m.Config())
	}
}

func TestMenuNavigationAndScoreboard(t *testing.T) {
	infos := biome.List()
	m := NewMenuModel(nil, core.DefaultConfig(), "")
	m.cursor = 0

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor moved above the first item: %d", m.cursor)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})

	r := m.result()
	if !r.WantsScoreboard || r.Quit {
		t.Fatalf("result = %+v, want scoreboard", r)
	}
	if r.Biome != infos[1].ID {
		t.Errorf("scoreboard biome = %s, want %s", r.Biome, infos[1].ID)
	}
}

func TestMenuQuit(t *testing.T) {
	m := press(NewMenuModel(nil, core.DefaultConfig(), ""), runeKey('q'))
	if !m.IsQuitting() || !m.result().Quit {
		t.Error("q should quit the menu")
	}
	if m.View() != "" {
		t.Error("quitting menu should render nothing")
	}
}
