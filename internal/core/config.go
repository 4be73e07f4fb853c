package core

// RuntimeConfig contains configuration passed to the simulation at initialization.
type RuntimeConfig struct {
	ScreenW  int        // Screen width in characters
	ScreenH  int        // Screen height in characters
	TickRate int        // Simulation ticks per second (default 60)
	Seed     int64      // RNG seed for deterministic spread jitter
	Parallel bool       // Process actors concurrently within a tick phase
	Debug    DebugLevel // Initial diagnostic level
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickDuration returns the fixed tick length in seconds.
func (c RuntimeConfig) TickDuration() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}
