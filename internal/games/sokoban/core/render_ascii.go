package core

import "strings"

// Glyph returns the standard level-file character for a cell,
// taking the player's presence into account.
func Glyph(c Cell, player bool) rune {
	if player {
		if c.IsSink() {
			return '+'
		}
		return '@'
	}
	switch c {
	case Wall:
		return '#'
	case Sink:
		return '.'
	case Box:
		return '$'
	case BoxOnSink:
		return '*'
	default:
		return ' '
	}
}

// RenderASCII draws a view in the standard level-file notation,
// one line per row with trailing spaces kept.
func RenderASCII(v View) string {
	var sb strings.Builder
	player := v.PlayerPosition()
	for y := 0; y < v.Height(); y++ {
		for x := 0; x < v.Width(); x++ {
			p := P(x, y)
			sb.WriteRune(Glyph(v.Get(p), p == player))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
