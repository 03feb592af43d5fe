package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// board builds a grid from rows drawn in level-file notation.
// Rows may have different lengths; missing cells stay Empty.
func board(t *testing.T, rows ...string) *core.Grid {
	t.Helper()

	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	g := core.NewGrid(width, len(rows))
	for y, row := range rows {
		for x, ch := range []rune(row) {
			p := core.P(x, y)
			switch ch {
			case '#':
				g.Set(p, core.Wall)
			case '.':
				g.Set(p, core.Sink)
			case '$':
				g.Set(p, core.Box)
			case '*':
				g.Set(p, core.BoxOnSink)
			case '@':
				g.SetPlayerPosition(p)
			case '+':
				g.Set(p, core.Sink)
				g.SetPlayerPosition(p)
			case ' ':
			default:
				t.Fatalf("unknown glyph %q at %v", ch, p)
			}
		}
	}
	return g
}

func newGame(t *testing.T, rows ...string) *core.Game {
	t.Helper()
	return core.NewGame(board(t, rows...), core.Meta{})
}
