package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dodge/internal/biome"
	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/platform/tui"
	"github.com/vovakirdan/tui-dodge/internal/rng"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var (
	flagRace   string
	flagExport string
	flagLog    string
)

var playCmd = &cobra.Command{
	Use:   "play <biome>",
	Short: "Play a biome",
	Long: `Start a run in the specified biome.

Controls:
  Arrows/WASD/HJKL - Steer (hold or tap repeatedly)
  Space            - Stop
  P                - Pause
  R                - Restart (during the replay)
  G                - Toggle the personal-best ghost
  Esc/B            - Back to menu (while paused or in replay)
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower spawns and hazards
  normal - The biome's own curve
  hard   - Faster spawns and hazards
  fixed  - No progression, the spawn interval never shrinks

Examples:
  dodge play space
  dodge play city --difficulty hard
  dodge play pond --daily
  dodge play ocean --race ./friend.ghost.json
  dodge play fortress --export csv`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRace, "race", "", "Path to an exported ghost JSON to race against")
	playCmd.Flags().StringVar(&flagExport, "export", "", "Write the replay when a run ends: json or csv")
	playCmd.Flags().StringVar(&flagLog, "log", "", "Log file (default: ~/.dodge/dodge.log)")
}

func runPlay(cmd *cobra.Command, args []string) {
	biomeID := args[0]

	// Check if biome exists
	if !biome.Exists(biomeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown biome %q\n", biomeID)
		fmt.Fprintln(os.Stderr, "Run 'dodge biomes' to see available biomes.")
		os.Exit(1)
	}
	if flagExport != "" && flagExport != "json" && flagExport != "csv" {
		fmt.Fprintf(os.Stderr, "Error: unsupported export format %q (want json or csv)\n", flagExport)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var opponent []byte
	if flagRace != "" {
		opponent, err = os.ReadFile(flagRace)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading ghost: %v\n", err)
			os.Exit(1)
		}
	}

	runtime := runtimeConfig()
	runtime.Biome = biomeID

	logger, closeLog := newLogger()
	defer closeLog()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the run still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Runtime:  runtime,
		Config:   cfg,
		Store:    store,
		Logger:   logger,
		Export:   flagExport,
		Opponent: opponent,
		DataDir:  config.DataDir(),
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadConfig reads the YAML configuration and applies --difficulty.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDifficulty != "" {
		if err := config.ApplyPreset(&cfg, flagDifficulty); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// runtimeConfig builds the host settings from the global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = challengeSeed()
	cfg.BatterySaver = flagBatterySaver
	cfg.GhostEnabled = !flagNoGhost
	return cfg
}

// challengeSeed resolves --seed and --daily; empty means a fresh seed.
func challengeSeed() string {
	if flagDaily {
		return rng.DailySeed(time.Now())
	}
	return flagSeed
}

// newLogger opens the log file. The terminal belongs to the game, so the
// logger never writes to stdout or stderr.
func newLogger() (*log.Logger, func()) {
	path := flagLog
	if path == "" {
		path = filepath.Join(config.DataDir(), "dodge.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "dodge",
	})
	return logger, func() { f.Close() }
}
