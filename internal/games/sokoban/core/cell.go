// Package core implements the Sokoban level state machine: a dense cell grid,
// the player/box movement rule and the win check. It has no knowledge of
// level files, terminals or timing.
package core

// Cell is the state of one grid coordinate.
// The player is not a cell state; its position is tracked by the Grid.
type Cell uint8

const (
	Empty Cell = iota
	Wall
	Sink
	Box
	BoxOnSink
)

// String returns a lowercase name for the cell.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Sink:
		return "sink"
	case Box:
		return "box"
	case BoxOnSink:
		return "box_on_sink"
	default:
		return "unknown"
	}
}

// IsFree reports whether a player or box may enter the cell.
func (c Cell) IsFree() bool {
	return c == Empty || c == Sink
}

// HasBox reports whether the cell holds a pushable box.
func (c Cell) HasBox() bool {
	return c == Box || c == BoxOnSink
}

// IsSink reports whether the cell is a sink, with or without a box on it.
func (c Cell) IsSink() bool {
	return c == Sink || c == BoxOnSink
}
