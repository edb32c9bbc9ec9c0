package core

// RuntimeConfig contains configuration passed to hosts at initialization.
// Hosts use this to size the terminal view and to seed the simulation.
type RuntimeConfig struct {
	ScreenW      int    // Screen width in characters
	ScreenH      int    // Screen height in characters
	TickRate     int    // Host ticks per second (default 60)
	Seed         string // Seed string; empty means pick one in the platform layer
	Biome        string // Selected biome ID
	BatterySaver bool   // Lower simulation cadence
	GhostEnabled bool   // Race the stored personal-best ghost
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickRate:     60,
		Biome:        "space",
		GhostEnabled: true,
	}
}
