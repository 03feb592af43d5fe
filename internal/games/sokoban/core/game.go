package core

// MoveOutcome is the result of a single move request.
type MoveOutcome int

const (
	Rejected MoveOutcome = iota
	Accepted
)

// String returns a lowercase name for the outcome.
func (o MoveOutcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "rejected"
}

// State is the engine state for the current level.
type State int

const (
	Playing State = iota
	Solved
)

// String returns a lowercase name for the state.
func (s State) String() string {
	if s == Solved {
		return "solved"
	}
	return "playing"
}

// Meta carries display-only level information.
type Meta struct {
	Title  string
	Author string
}

// Game is the level engine. It owns a grid and a step counter and applies
// the movement rule to it. A Game is not safe for concurrent use.
type Game struct {
	grid  *Grid
	steps int
	state State
	meta  Meta
}

// NewGame creates an engine in the Playing state that takes ownership of grid.
func NewGame(grid *Grid, meta Meta) *Game {
	return &Game{grid: grid, meta: meta}
}

// Grid returns the live grid. Callers must treat it as read-only.
func (g *Game) Grid() *Grid {
	return g.grid
}

// View returns the grid as a read-only view.
func (g *Game) View() View {
	return g.grid
}

// Meta returns the level metadata.
func (g *Game) Meta() Meta {
	return g.meta
}

// Steps returns the number of accepted moves.
func (g *Game) Steps() int {
	return g.steps
}

// State returns Playing or Solved.
func (g *Game) State() State {
	return g.state
}

// IsSolved reports whether no plain Box cell is left on the grid.
// It scans the grid on every call.
func (g *Game) IsSolved() bool {
	return g.grid.Count(Box) == 0
}

// TryMove applies one player move in direction d.
// A rejected move leaves the grid, the player and the step counter untouched.
// Any direction with a zero vector is rejected, as is every move once the
// level is solved.
func (g *Game) TryMove(d Direction) MoveOutcome {
	if d.Vector() == (Position{}) || g.state == Solved {
		return Rejected
	}

	player := g.grid.PlayerPosition()
	target := player.Step(d)
	targetCell := g.grid.Get(target)

	switch {
	case targetCell.IsFree():
		// walk
	case targetCell.HasBox():
		beyond := target.Step(d)
		beyondCell := g.grid.Get(beyond)
		if !beyondCell.IsFree() {
			return Rejected
		}
		if targetCell == BoxOnSink {
			g.grid.Set(target, Sink)
		} else {
			g.grid.Set(target, Empty)
		}
		if beyondCell == Sink {
			g.grid.Set(beyond, BoxOnSink)
		} else {
			g.grid.Set(beyond, Box)
		}
	default:
		return Rejected
	}

	g.grid.SetPlayerPosition(target)
	g.steps++
	if g.IsSolved() {
		g.state = Solved
	}
	return Accepted
}
