package core

// View is the read-only face of a board used by renderers.
type View interface {
	Width() int
	Height() int
	Get(p Position) Cell
	PlayerPosition() Position
}

// Grid is a fixed-size rectangular board of cells plus the player position.
// Cells are stored in row-major order: index = y*width + x.
type Grid struct {
	width  int
	height int
	cells  []Cell
	player Position
}

// NewGrid creates a grid of the given size with every cell Empty and the
// player at (0,0). Non-positive sizes produce an empty grid where every
// lookup is a wall.
func NewGrid(width, height int) *Grid {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds returns true if the position lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) index(p Position) int {
	return p.Y*g.width + p.X
}

// Get returns the cell at p. The board edge is an implicit wall:
// any out-of-bounds position reads as Wall.
func (g *Grid) Get(p Position) Cell {
	if !g.InBounds(p) {
		return Wall
	}
	return g.cells[g.index(p)]
}

// Set writes the cell at p. Out-of-bounds writes are ignored.
func (g *Grid) Set(p Position, c Cell) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = c
	}
}

// PlayerPosition returns the player's position.
func (g *Grid) PlayerPosition() Position {
	return g.player
}

// SetPlayerPosition moves the player without any validation.
func (g *Grid) SetPlayerPosition(p Position) {
	g.player = p
}

// Count returns how many cells are in state c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// BoxCount returns the number of cells holding a box.
func (g *Grid) BoxCount() int {
	return g.Count(Box) + g.Count(BoxOnSink)
}

// Sinks returns the sink coordinates (with or without a box) in row order.
func (g *Grid) Sinks() []Position {
	var sinks []Position
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x].IsSink() {
				sinks = append(sinks, P(x, y))
			}
		}
	}
	return sinks
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  cells,
		player: g.player,
	}
}

// Equal returns true if two grids have the same size, cells and player.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height || g.player != other.player {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}
