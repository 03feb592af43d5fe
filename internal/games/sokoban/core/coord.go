package core

import "fmt"

// Position is a grid coordinate. X grows to the right, Y grows downward.
// It carries no bounds; bounds belong to the Grid.
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the vector sum of two positions.
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// Step returns the position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	return p.Add(d.Vector())
}

// Direction is a requested player move.
// The zero value is NoMove, an explicit no-op.
type Direction int

const (
	NoMove Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the four moving directions.
var Directions = []Direction{Up, Down, Left, Right}

// Vector returns the unit vector of the direction; NoMove is (0,0).
func (d Direction) Vector() Position {
	switch d {
	case Up:
		return P(0, -1)
	case Down:
		return P(0, 1)
	case Left:
		return P(-1, 0)
	case Right:
		return P(1, 0)
	default:
		return P(0, 0)
	}
}

// String returns a lowercase name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseMoves parses a move string in the usual lurd notation, one letter per
// move. Case is ignored and whitespace is skipped.
func ParseMoves(s string) ([]Direction, error) {
	moves := make([]Direction, 0, len(s))
	for i, r := range s {
		switch r {
		case 'u', 'U':
			moves = append(moves, Up)
		case 'd', 'D':
			moves = append(moves, Down)
		case 'l', 'L':
			moves = append(moves, Left)
		case 'r', 'R':
			moves = append(moves, Right)
		case ' ', '\t', '\n', '\r':
		default:
			return nil, fmt.Errorf("invalid move %q at offset %d", r, i)
		}
	}
	return moves, nil
}
