package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dodge/internal/biome"
	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/engine"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

// Options configures a game host.
type Options struct {
	Runtime  core.RuntimeConfig
	Config   config.Config
	Store    *storage.Store // optional; runs are not persisted without it
	Logger   *log.Logger    // optional
	Export   string         // replay format written when a run ends, empty disables
	Opponent []byte         // serialized ghost to race against
	DataDir  string         // screenshots and replay exports
}

// session is the mutable state shared by every copy of a GameModel.
type session struct {
	eng     *engine.Engine
	surface *ScreenSurface
	keys    *KeyMapper
	render  *Renderer
	ticking bool
	note    string // shown on the result card
}

// GameModel is the Bubble Tea model that hosts one engine.
type GameModel struct {
	opts       Options
	s          *session
	help       help.Model
	quitting   bool
	backToMenu bool
	embedded   bool // hosted inside a SessionModel; back returns to its menu
}

// NewGameModel creates the engine and its terminal surface.
func NewGameModel(opts Options) (GameModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = opts.Config.Loop.TargetFPS
	}

	s := &session{
		surface: NewScreenSurface(core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH)),
		keys:    NewKeyMapper(),
		render:  NewRenderer(),
	}
	m := GameModel{opts: opts, s: s, help: help.New()}

	eng, err := engine.New(engine.Options{
		Config: opts.Config,
		Settings: engine.Settings{
			Biome:         opts.Runtime.Biome,
			BatterySaver:  opts.Runtime.BatterySaver,
			GhostEnabled:  opts.Runtime.GhostEnabled,
			ChallengeSeed: opts.Runtime.Seed,
		},
		Surface: s.surface,
		Results: engine.ResultFunc(m.finish),
		Logger:  opts.Logger.WithPrefix("engine"),
	})
	if err != nil {
		return GameModel{}, fmt.Errorf("tui: %w", err)
	}
	eng.SetOpponent(opts.Opponent)
	s.eng = eng
	return m, nil
}

// Init starts the first run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	if err := m.start(); err != nil {
		m.opts.Logger.Error("could not start run", "error", err)
		return tea.Quit
	}
	m.s.ticking = true
	return m.tick()
}

// tick schedules the next frame at the current engine cadence.
func (m GameModel) tick() tea.Cmd {
	return tickCmd(tickInterval(m.opts.Runtime.TickRate, m.s.eng.Interval()))
}

// start loads the stored ghost for the biome and begins a fresh run.
func (m GameModel) start() error {
	if m.opts.Store != nil {
		data, err := m.opts.Store.LoadGhost(m.s.eng.Settings().Biome)
		if err != nil {
			m.opts.Logger.Warn("could not load ghost", "error", err)
		}
		m.s.eng.SetGhost(data)
	}
	m.s.note = ""
	if b, err := biome.Lookup(m.s.eng.Settings().Biome); err == nil {
		m.s.render.SetBackground(b.Background)
	}
	return m.s.eng.Start()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.s.surface.Screen().Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	eng := m.s.eng
	keys := m.s.keys.Keys()

	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Ghost):
		eng.SetGhostEnabled(!eng.Settings().GhostEnabled)
		return m, nil
	}

	action, isQuit := m.s.keys.MapKey(msg, time.Now())
	if isQuit {
		m.quitting = true
		m.destroy()
		return m, tea.Quit
	}

	switch action {
	case core.ActionPause:
		if eng.Mode() != engine.ModePlaying {
			return m, nil
		}
		if eng.Scheduled() {
			eng.Pause()
			m.s.surface.Draw(eng.View())
			return m, nil
		}
		eng.Resume()
		return m, m.resumeTicks()

	case core.ActionRestart:
		if eng.Mode() != engine.ModeReplay {
			return m, nil
		}
		m.s.keys.Release()
		if err := m.start(); err != nil {
			m.opts.Logger.Error("could not restart run", "error", err)
			return m, nil
		}
		return m, m.resumeTicks()

	case core.ActionBack:
		if eng.Mode() == engine.ModePlaying && eng.Scheduled() {
			return m, nil
		}
		m.backToMenu = true
		m.destroy()
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// resumeTicks restarts the tick loop unless one is still in flight.
func (m GameModel) resumeTicks() tea.Cmd {
	if m.s.ticking {
		return nil
	}
	m.s.ticking = true
	return m.tick()
}

// handleTick drives the engine with the wall time of the tick. The loop
// stops re-arming while the engine is unscheduled.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	eng := m.s.eng
	if !eng.Scheduled() {
		m.s.ticking = false
		return m, nil
	}

	m.s.surface.SetHelp(m.help.View(m.s.keys.Keys()))
	eng.Frame(now, core.InputFrame{Move: m.s.keys.Move(now)})
	return m, m.tick()
}

// finish persists and exports a finished run. It runs inside Frame.
func (m GameModel) finish(r engine.RunResult) {
	logger := m.opts.Logger
	logger.Info("run finished", "biome", r.Stats.Biome, "seed", r.Stats.Seed, "time", r.Stats.Elapsed)

	if m.opts.Store != nil {
		best, err := m.opts.Store.RecordRun(r)
		switch {
		case err != nil:
			logger.Warn("could not save run", "error", err)
		case best:
			m.s.note = "new personal best, ghost saved"
		}
	}

	if m.opts.Export != "" {
		path, err := m.export(r.Stats)
		if err != nil {
			logger.Warn("could not export replay", "error", err)
		} else {
			m.s.note = "replay saved to " + path
		}
	}
	m.s.surface.SetNote(m.s.note)
}

// export writes the replay buffer in the configured format.
func (m GameModel) export(stats engine.RunStats) (string, error) {
	data, ok := m.s.eng.Export(m.opts.Export)
	if !ok {
		return "", fmt.Errorf("tui: unsupported export format %q", m.opts.Export)
	}
	dir := filepath.Join(m.opts.DataDir, "replays")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}
	name := fmt.Sprintf("%s_%s_%s.%s", stats.Biome, stats.Seed, time.Now().Format("20060102_150405"), m.opts.Export)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write replay: %w", err)
	}
	return path, nil
}

// saveScreenshot saves the current screen to a file.
func (m GameModel) saveScreenshot() {
	dir := filepath.Join(m.opts.DataDir, "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.s.eng.Settings().Biome, timestamp)

	//nolint:errcheck // Best-effort save, the run continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.s.surface.Screen().String()), 0o600)
}

func (m GameModel) destroy() {
	if err := m.s.eng.Destroy(); err != nil {
		m.opts.Logger.Warn("engine teardown failed", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.s.render.SetArena(m.s.surface.Arena())
	return m.s.render.Render(m.s.surface.Screen())
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program hosting a single game.
func Run(opts Options) error {
	model, err := NewGameModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if gm, ok := final.(GameModel); ok {
		gm.destroy()
	}
	return err
}
