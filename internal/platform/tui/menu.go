package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dodge/internal/biome"
	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

// MenuItem represents a selectable biome in the menu.
type MenuItem struct {
	BiomeID     string
	Title       string
	Description string
	Barrage     bool
	Best        float64 // best survival time in seconds, 0 when unplayed
}

// MenuModel is the Bubble Tea model for the biome picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	difficulty     config.DifficultyPreset
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a biome
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. The cursor starts on the biome
// named in cfg.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, difficulty config.DifficultyPreset) MenuModel {
	infos := biome.List()
	items := make([]MenuItem, 0, len(infos))
	cursor := 0

	for i, info := range infos {
		item := MenuItem{
			BiomeID:     info.ID,
			Title:       info.Name,
			Description: info.Description,
			Barrage:     info.Barrage,
		}
		if store != nil {
			if best, err := store.BestTime(info.ID); err == nil {
				item.Best = best
			}
		}
		if info.ID == cfg.Biome {
			cursor = i
		}
		items = append(items, item)
	}

	if difficulty == "" {
		difficulty = config.DifficultyNormal
	}

	return MenuModel{
		items:      items,
		cursor:     cursor,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		store:      store,
		config:     cfg,
		difficulty: difficulty,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.config.Biome = selected.BiomeID
			return m, tea.Quit // Exit menu to start the run
		}

	case MenuActionScoreboard:
		if len(m.items) > 0 {
			m.config.Biome = m.items[m.cursor].BiomeID
		}
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard

	case MenuActionDifficulty:
		m.difficulty = nextPreset(m.difficulty)

	case MenuActionGhost:
		m.config.GhostEnabled = !m.config.GhostEnabled

	case MenuActionBattery:
		m.config.BatterySaver = !m.config.BatterySaver
	}

	return m, nil
}

// nextPreset cycles through config.Presets.
func nextPreset(p config.DifficultyPreset) config.DifficultyPreset {
	for i, preset := range config.Presets {
		if preset == p {
			return config.Presets[(i+1)%len(config.Presets)]
		}
	}
	return config.Presets[0]
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(centerText("  D O D G E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a biome and survive", m.width))
	b.WriteString("\n\n")

	// Biome list
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := "  --.--s"
		if item.Best > 0 {
			best = fmt.Sprintf("%7.2fs", item.Best)
		}
		barrage := ""
		if item.Barrage {
			barrage = " [barrage]"
		}

		line := fmt.Sprintf("%s%-12s %s%s", cursor, item.Title, best, barrage)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.items[m.cursor].Description, m.width))
		b.WriteString("\n")
	}

	// Settings
	b.WriteString("\n")
	settings := fmt.Sprintf("difficulty: %s  |  ghost: %s  |  battery saver: %s",
		m.difficulty, onOff(m.config.GhostEnabled), onOff(m.config.BatterySaver))
	b.WriteString(centerText(settings, m.width))
	b.WriteString("\n\n")

	// Footer with controls
	controls := "Up/Down: Navigate  |  Enter: Play  |  D/G/V: Settings  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// Difficulty returns the selected difficulty preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return m.difficulty
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Biome           string
	Config          core.RuntimeConfig
	Difficulty      config.DifficultyPreset
	WantsScoreboard bool
	Quit            bool
}

// result converts the final menu state into a MenuResult.
func (m MenuModel) result() MenuResult {
	r := MenuResult{
		Config:     m.Config(),
		Difficulty: m.Difficulty(),
		Biome:      m.config.Biome,
	}
	switch {
	case m.WantsScoreboard():
		r.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		r.Quit = true
	}
	return r
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, difficulty config.DifficultyPreset) (MenuResult, error) {
	model := NewMenuModel(store, cfg, difficulty)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Difficulty: difficulty}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Difficulty: difficulty, Quit: true}, nil
	}
	return m.result(), nil
}
