package sokoban

import "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"

// StateType represents the current adapter state.
type StateType string

const (
	StatePlaying  StateType = "playing"
	StateSolved   StateType = "solved"
	StateComplete StateType = "complete"
	StatePaused   StateType = "paused"
	StateTooSmall StateType = "paused_small_window"
	StateNoLevel  StateType = "no_level"
)

// Snapshot captures the visible game state for determinism testing and for
// spectators.
type Snapshot struct {
	Pack       string        `json:"pack"`
	LevelID    string        `json:"level_id"`
	LevelIndex int           `json:"level_index"` // 1-indexed for display
	LevelCount int           `json:"level_count"`
	Title      string        `json:"title"`
	Steps      int           `json:"steps"`
	Player     core.Position `json:"player"`
	Board      string        `json:"board"`
	State      StateType     `json:"state"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Pack:       g.packID,
		LevelIndex: g.index + 1,
		LevelCount: len(g.levels),
		State:      g.stateType(),
	}
	if g.engine == nil {
		return s
	}

	s.LevelID = g.level.ID
	s.Title = g.level.DisplayName()
	s.Steps = g.engine.Steps()
	s.Player = g.engine.Grid().PlayerPosition()
	s.Board = RenderText(g.engine, DefaultGlyphs())
	return s
}

func (g *Game) stateType() StateType {
	switch {
	case g.engine == nil:
		return StateNoLevel
	case g.tooSmall:
		return StateTooSmall
	case g.engine.State() == core.Solved && g.index == len(g.levels)-1:
		return StateComplete
	case g.engine.State() == core.Solved:
		return StateSolved
	case g.paused:
		return StatePaused
	default:
		return StatePlaying
	}
}
