package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Moves    int  // Accepted swaps so far
	TimeLeft int  // Whole seconds remaining, -1 when untimed
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Busy     bool // An animation is playing and swaps are ignored
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// RunSummary describes a finished round for the run history.
type RunSummary struct {
	Score        int
	Moves        int
	LongestChain int
	Cleared      int
	Shuffles     int
	Seed         int64
	Ticks        int // Simulation ticks the round lasted
}
