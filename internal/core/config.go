package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to pace player moves.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickRate     int           // Frames per second of the presentation loop
	MoveInterval time.Duration // Minimum wall-clock time between applied moves
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickRate:     30,
		MoveInterval: 150 * time.Millisecond,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Steps  int  // Successful moves on the current level
	Solved bool // Current level is solved and accepts no further moves
	Paused bool // Game is paused or the window is too small
}

// LevelResult describes a level solved during a tick.
type LevelResult struct {
	PackID  string
	LevelID string
	Steps   int
}

// StepResult is returned by Game.Step() after each frame.
// Solved is non-nil exactly once per solved level.
type StepResult struct {
	State  GameState
	Solved *LevelResult
}
