package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dodge/internal/biome"
	"github.com/vovakirdan/tui-dodge/internal/core"
	"github.com/vovakirdan/tui-dodge/internal/entity"
	"github.com/vovakirdan/tui-dodge/internal/event"
	"github.com/vovakirdan/tui-dodge/internal/hazard"
	"github.com/vovakirdan/tui-dodge/internal/rng"
)

var (
	flagSimDuration float64
	flagSimQuiet    bool
)

var simCmd = &cobra.Command{
	Use:   "sim <biome>",
	Short: "Print the spawn sequence of a seed",
	Long: `Run the hazard spawner headlessly with the avatar parked at the center
and print every spawn and barrage event, followed by a summary.

Two players sharing a seed (for example with --daily) see the same
sequence, which makes this handy for checking challenge runs.

Examples:
  dodge sim space --seed abc
  dodge sim city --daily --duration 120 --quiet
  dodge sim fortress --difficulty hard`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimDuration, "duration", 60, "Simulated seconds")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Print only the summary")
}

func runSim(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	b, err := biome.Resolve(args[0], cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'dodge biomes' to see available biomes.")
		os.Exit(1)
	}

	seed := challengeSeed()
	if seed == "" {
		seed = rng.RandomSeed()
	}

	fps := cfg.Loop.TargetFPS
	if flagBatterySaver {
		fps = cfg.Loop.BatterySaverFPS
	}
	dt := 1 / float64(fps)
	steps := int(math.Round(flagSimDuration * float64(fps)))

	r := rng.New(seed)
	queue := event.NewQueue(cfg.Replay.EventQueueSize)
	mgr := hazard.NewManager(b, cfg, r, queue)
	center := core.Bounds{W: cfg.World.Width, H: cfg.World.Height}.Center()

	fmt.Printf("Biome %s  seed %q  difficulty %s  %d steps of %.4fs\n\n", b.ID, seed, cfg.Difficulty, steps, dt)

	var clock float64
	counts := make(map[entity.Kind]int)
	mgr.SetSpawnHook(func(h *entity.Hazard) {
		counts[h.Kind]++
		if flagSimQuiet {
			return
		}
		fmt.Printf("  %8.3fs  #%-5d %-10s pos=(%7.1f, %7.1f)  vel=(%7.1f, %7.1f)\n",
			clock, h.ID, h.Kind, h.Pos.X, h.Pos.Y, h.Vel.X, h.Vel.Y)
	})

	for i := 0; i < steps; i++ {
		clock += dt
		mgr.Update(hazard.TickContext{
			Dt:      dt,
			Now:     clock,
			Elapsed: clock,
			Avatar:  center,
			Spawn:   true,
		})
		for _, e := range queue.Drain() {
			if flagSimQuiet {
				continue
			}
			switch e.Type {
			case event.BarrageWarning, event.BarrageStart:
				fmt.Printf("  %8.3fs  %s from %s\n", e.Time, e.Type, e.Edge)
			case event.Explosion, event.PocketFall:
				fmt.Printf("  %8.3fs  %s #%d %s\n", e.Time, e.Type, e.HazardID, e.Kind)
			}
		}
	}

	// Summary in biome order
	fmt.Println()
	fmt.Printf("Spawned %d hazards, %d random draws\n", mgr.Spawned(), r.Draws())
	dodges := mgr.Dodges()
	for _, t := range b.Types {
		fmt.Printf("  %-10s spawned %-5d dodged %d\n", t.Kind, counts[t.Kind], dodges[t.Kind])
	}
}
