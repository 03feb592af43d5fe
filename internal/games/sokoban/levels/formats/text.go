// Package formats provides the level file parsers.
package formats

import (
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// boardGlyphs are the characters allowed on a board line.
// '@'/'p' player, '+'/'P' player on sink, '$'/'b' box, '*'/'B' box on sink,
// '.' sink, '#' wall, and ' ', '-', '_' floor.
const boardGlyphs = "#@p+P$b*B.-_ "

// Level is a parsed level ready for use.
type Level struct {
	ID       string
	Title    string
	Author   string
	Width    int
	Height   int
	Cells    []core.Cell
	Player   core.Position
	Metadata map[string]string
}

// Cell returns the cell at (x, y) or Wall when outside the board.
func (l *Level) Cell(x, y int) core.Cell {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return core.Wall
	}
	return l.Cells[y*l.Width+x]
}

func isBoardLine(line string) bool {
	for _, r := range line {
		if !strings.ContainsRune(boardGlyphs, r) {
			return false
		}
	}
	return true
}

// ParseText parses the plain text format: a board drawn with glyphs,
// followed by optional "Key: value" metadata lines.
//
// The board is the leading run of board lines; empty lines are skipped and the
// first line containing anything else ends it. A line of spaces is a row of
// floor. The board width is the longest
// board line; shorter lines are padded with floor.
// Metadata lines starting with ';' are comments.
func ParseText(data []byte) (Level, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var rows []string
	var rowLines []int
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			continue
		}
		if !isBoardLine(line) {
			break
		}
		rows = append(rows, line)
		rowLines = append(rowLines, i+1)
	}

	if len(rows) == 0 {
		return Level{}, errorf(0, CodeEmptyBoard, "no board lines found")
	}

	lvl := Level{Metadata: make(map[string]string)}
	if err := parseMetadata(&lvl, lines[i:], i+1); err != nil {
		return Level{}, err
	}
	if err := buildBoard(&lvl, rows, rowLines); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

func parseMetadata(lvl *Level, lines []string, firstLine int) error {
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return errorf(firstLine+n, CodeBadMetadata, "expected \"Key: value\", got %q", line)
		}
		value = strings.TrimSpace(value)
		lvl.Metadata[key] = value

		switch strings.ToLower(key) {
		case "title":
			lvl.Title = value
		case "author":
			lvl.Author = value
		}
	}
	return nil
}

func buildBoard(lvl *Level, rows []string, rowLines []int) error {
	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}
	if width == 0 {
		return errorf(0, CodeEmptyBoard, "board has zero width")
	}

	lvl.Width = width
	lvl.Height = len(rows)
	lvl.Cells = make([]core.Cell, width*len(rows))

	players := 0
	boxes, sinks := 0, 0
	for y, row := range rows {
		for x, r := range []rune(row) {
			var cell core.Cell
			switch r {
			case '#':
				cell = core.Wall
			case '$', 'b':
				cell = core.Box
			case '*', 'B':
				cell = core.BoxOnSink
			case '.':
				cell = core.Sink
			case '+', 'P':
				cell = core.Sink
				fallthrough
			case '@', 'p':
				players++
				if players > 1 {
					return errorf(rowLines[y], CodeMultiplePlayers, "second player at column %d", x+1)
				}
				lvl.Player = core.P(x, y)
			}
			lvl.Cells[y*width+x] = cell

			if cell.HasBox() {
				boxes++
			}
			if cell.IsSink() {
				sinks++
			}
		}
	}

	if players == 0 {
		return errorf(0, CodeNoPlayer, "board has no player")
	}
	if boxes > sinks {
		return errorf(0, CodeTooFewSinks, "%d boxes but only %d sinks", boxes, sinks)
	}
	return nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".sok", ".yaml", ".yml"}
}
