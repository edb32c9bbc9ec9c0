package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default configuration as YAML.

Save it to ~/.dodge/configs/dodge.yaml or ./configs/dodge.yaml and edit
the values you want to change; missing keys keep their defaults.

Examples:
  dodge config > ~/.dodge/configs/dodge.yaml`,
	Run: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	//nolint:errcheck // Writing to stdout
	os.Stdout.Write(config.DefaultYAML())
}
