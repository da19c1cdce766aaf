package core

// RuntimeConfig contains configuration passed to frontends when they start
// an engine.
type RuntimeConfig struct {
	ScreenW       int   // Terminal width in characters
	ScreenH       int   // Terminal height in characters
	TickRate      int   // Frontend refreshes per second (default 60)
	StepsPerFrame int   // Simulation ticks run per refresh
	Seed          int64 // RNG seed for the obstacle generator
	Autopilot     bool  // Substitute the heuristic controller for keyboard input
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:       80,
		ScreenH:       24,
		TickRate:      60,
		StepsPerFrame: 4,
		Seed:          0, // 0 means use current time in platform layer
		Autopilot:     true,
	}
}
