package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to the terminal size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
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

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	Level    int    // Current level
	Outcome  string // "win" or "lose" once the round has ended
	Ticks    int    // Ticks played in the current round
	GameOver bool   // Whether the round has ended and the terminal screen is up
	Exited   bool   // Whether the player asked to leave the session
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
