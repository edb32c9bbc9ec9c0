package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/biome"
	"github.com/vovakirdan/tui-dodge/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <biome>",
	Short: "Show best runs for a biome",
	Long: `Display the longest runs for the specified biome, plus totals.

Examples:
  dodge scores space
  dodge scores city --limit 25
  dodge scores pond --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every run and the ghost of the biome")
}

func runScores(cmd *cobra.Command, args []string) {
	biomeID := args[0]

	// Check if biome exists
	b, err := biome.Lookup(biomeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown biome %q\n", biomeID)
		fmt.Fprintln(os.Stderr, "Run 'dodge biomes' to see available biomes.")
		os.Exit(1)
	}

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(biomeID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			return
		}
		fmt.Printf("Cleared all runs for %s.\n", b.Name)
		return
	}

	// Get top runs
	runs, err := store.TopRuns(biomeID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	// Display runs
	fmt.Printf("Best Runs - %s\n", b.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dodge play %s' to set the first time!\n", biomeID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %-10s  %s\n", "Rank", "Time", "Near", "Dodges", "Cause", "Date")
	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %-10s  %s\n", "----", "----", "----", "------", "-----", "----")

	// Print runs
	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-9s  %-5d  %-6d  %-10s  %s\n",
			i+1, fmt.Sprintf("%.2fs", r.Survival), r.NearMisses, r.Dodges, r.DeathCause, dateStr)
	}

	// Show totals
	fmt.Println()
	if stats, err := store.GetBiomeStats(biomeID); err == nil {
		fmt.Printf("Runs: %d  Best: %.2fs  Average: %.2fs  Total: %.0fs  Near misses: %d\n",
			stats.RunsCount, stats.BestTime, stats.AvgTime, stats.TotalTime, stats.NearMisses)
	}
}
