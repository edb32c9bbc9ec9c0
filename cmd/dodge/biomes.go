package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/biome"
)

var biomesCmd = &cobra.Command{
	Use:   "biomes",
	Short: "List all available biomes",
	Long:  `Shows every biome with its description and whether it ends in a barrage.`,
	Run:   runBiomes,
}

func runBiomes(cmd *cobra.Command, args []string) {
	biomes := biome.List()

	if len(biomes) == 0 {
		fmt.Println("No biomes available.")
		return
	}

	fmt.Println("Available biomes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, b := range biomes {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Barrage", "Description")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "-------", "-----------")

	for _, b := range biomes {
		barrage := "no"
		if b.Barrage {
			barrage = "yes"
		}
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, b.ID, barrage, b.Description)
	}

	fmt.Println()
	fmt.Println("Run 'dodge play <id>' to play a biome.")
}
