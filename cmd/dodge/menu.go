package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/config"
	"github.com/vovakirdan/tui-dodge/internal/platform/tui"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start dodge with a biome picker menu",
	Long: `Start dodge in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a run.
Leaving a run (Esc/B in the replay) returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start run
  D            - Cycle difficulty
  G            - Toggle ghost
  V            - Toggle battery saver
  Tab          - Best runs
  Q            - Quit

Examples:
  dodge menu
  dodge menu --fps 30
  dodge menu --daily
  dodge menu --db ./dodge.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()
	difficulty := gameCfg.Difficulty

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg, difficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size changes and toggles
		cfg = menuResult.Config
		difficulty = menuResult.Difficulty

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, menuResult.Biome, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		runCfg := gameCfg
		runCfg.Difficulty = difficulty
		cfg.Biome = menuResult.Biome

		// Run the biome
		if err := tui.Run(tui.Options{
			Runtime: cfg,
			Config:  runCfg,
			Store:   store,
			Logger:  logger,
			DataDir: config.DataDir(),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// --seed applies to the first run only, --daily to every run
		cfg.Seed = ""
		if flagDaily {
			cfg.Seed = challengeSeed()
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
