// dodge is a survival arcade for the terminal: stay alive inside an arena
// while biome-themed hazards spawn faster and faster.
//
// Usage:
//
//	dodge biomes             - List available biomes
//	dodge play <biome>       - Play a biome
//	dodge menu               - Start menu to pick biomes interactively
//	dodge sim <biome>        - Print the spawn sequence of a seed headlessly
//	dodge serve              - Start SSH server for remote play
//	dodge scores <biome>     - Show best runs for a biome
//	dodge config             - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set host tick rate (default: 60)
//	--seed <value>        - Set challenge seed for reproducible runs
//	--daily               - Use today's shared challenge seed
//	--db <path>           - Set database path (default: ~/.dodge/dodge.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--battery-saver       - Halve the simulation cadence
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         string
	flagDaily        bool
	flagDBPath       string
	flagConfig       string
	flagDifficulty   string
	flagBatterySaver bool
	flagNoGhost      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodge",
	Short: "Dodge - survive the hazards in your terminal",
	Long: `Dodge is a terminal survival arcade. Steer your avatar around the arena
while asteroids, cars, drones, lasers and friends close in. Every biome
has its own hazards and some end with a barrage from one edge.

Available commands:
  biomes   - Show all available biomes
  play     - Play a specific biome directly
  menu     - Interactive biome picker menu
  sim      - Headless spawn sequence for a seed
  serve    - Start SSH server for remote play
  scores   - View best runs
  config   - Print the default configuration

Examples:
  dodge biomes
  dodge play space
  dodge play city --daily
  dodge menu
  dodge sim pond --seed friday --duration 30
  dodge serve --ssh :2222
  dodge scores space`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "Challenge seed (empty = fresh seed per run)")
	rootCmd.PersistentFlags().BoolVar(&flagDaily, "daily", false, "Use today's shared challenge seed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dodge/dodge.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagBatterySaver, "battery-saver", false, "Lower simulation cadence")
	rootCmd.PersistentFlags().BoolVar(&flagNoGhost, "no-ghost", false, "Hide the personal-best ghost")

	// Add subcommands
	rootCmd.AddCommand(biomesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
