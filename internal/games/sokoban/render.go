package sokoban

import (
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// BoardRenderer is implemented once per presentation target.
type BoardRenderer interface {
	DrawBoard(v core.View)
	DrawSolved(v core.View)
}

// Draw renders the engine's board with r, using DrawSolved once the level
// is solved.
func Draw(r BoardRenderer, g *core.Game) {
	if g.State() == core.Solved {
		r.DrawSolved(g.View())
		return
	}
	r.DrawBoard(g.View())
}

// Glyphs maps cell states to terminal characters.
type Glyphs struct {
	Wall         rune
	Floor        rune
	Sink         rune
	Box          rune
	BoxOnSink    rune
	Player       rune
	PlayerOnSink rune
}

// DefaultGlyphs returns the standard level-file notation.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Wall:         '#',
		Floor:        ' ',
		Sink:         '.',
		Box:          '$',
		BoxOnSink:    '*',
		Player:       '@',
		PlayerOnSink: '+',
	}
}

// GlyphsFromConfig converts configured glyph strings, keeping the default for
// any entry that is not exactly one character.
func GlyphsFromConfig(c config.GlyphsConfig) Glyphs {
	gl := DefaultGlyphs()
	pick := func(s string, def rune) rune {
		if utf8.RuneCountInString(s) != 1 {
			return def
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r
	}
	gl.Wall = pick(c.Wall, gl.Wall)
	gl.Floor = pick(c.Floor, gl.Floor)
	gl.Sink = pick(c.Sink, gl.Sink)
	gl.Box = pick(c.Box, gl.Box)
	gl.BoxOnSink = pick(c.BoxOnSink, gl.BoxOnSink)
	gl.Player = pick(c.Player, gl.Player)
	gl.PlayerOnSink = pick(c.PlayerOnSink, gl.PlayerOnSink)
	return gl
}

// For returns the glyph for a cell with or without the player on it.
func (gl Glyphs) For(c core.Cell, player bool) rune {
	if player {
		if c.IsSink() {
			return gl.PlayerOnSink
		}
		return gl.Player
	}
	switch c {
	case core.Wall:
		return gl.Wall
	case core.Sink:
		return gl.Sink
	case core.Box:
		return gl.Box
	case core.BoxOnSink:
		return gl.BoxOnSink
	default:
		return gl.Floor
	}
}

func cellColor(c core.Cell, player, solved bool) platformcore.Color {
	if player {
		return platformcore.ColorBrightYellow
	}
	switch c {
	case core.Wall:
		return platformcore.ColorBlue
	case core.Sink:
		return platformcore.ColorRed
	case core.Box:
		return platformcore.ColorOrange
	case core.BoxOnSink:
		if solved {
			return platformcore.ColorBrightGreen
		}
		return platformcore.ColorGreen
	default:
		return platformcore.ColorDefault
	}
}

// ScreenRenderer draws boards into a screen buffer, centered in Area.
type ScreenRenderer struct {
	Screen *platformcore.Screen
	Area   platformcore.Rect
	Glyphs Glyphs
}

// DrawBoard draws the board in play colors.
func (r ScreenRenderer) DrawBoard(v core.View) {
	r.draw(v, false)
}

// DrawSolved draws the board highlighted with a banner under it.
func (r ScreenRenderer) DrawSolved(v core.View) {
	origin := r.draw(v, true)
	banner := "* SOLVED *"
	x := r.Area.X + (r.Area.W-len(banner))/2
	y := origin.Bottom()
	if y >= r.Area.Bottom() {
		y = r.Area.Bottom() - 1
	}
	r.Screen.DrawTextColored(x, y, banner, platformcore.ColorBrightGreen)
}

func (r ScreenRenderer) draw(v core.View, solved bool) platformcore.Rect {
	board := r.Area.Centered(v.Width(), v.Height())
	player := v.PlayerPosition()
	for y := 0; y < v.Height(); y++ {
		for x := 0; x < v.Width(); x++ {
			p := core.P(x, y)
			c := v.Get(p)
			isPlayer := p == player
			r.Screen.SetColored(board.X+x, board.Y+y, r.Glyphs.For(c, isPlayer), cellColor(c, isPlayer, solved))
		}
	}
	return board
}

// TextRenderer accumulates plain-text boards, one line per row.
type TextRenderer struct {
	Glyphs Glyphs
	sb     strings.Builder
}

// NewTextRenderer creates a text renderer with the default glyphs.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{Glyphs: DefaultGlyphs()}
}

// DrawBoard appends the board.
func (r *TextRenderer) DrawBoard(v core.View) {
	player := v.PlayerPosition()
	for y := 0; y < v.Height(); y++ {
		for x := 0; x < v.Width(); x++ {
			p := core.P(x, y)
			r.sb.WriteRune(r.Glyphs.For(v.Get(p), p == player))
		}
		r.sb.WriteByte('\n')
	}
}

// DrawSolved appends the board followed by a solved marker line.
func (r *TextRenderer) DrawSolved(v core.View) {
	r.DrawBoard(v)
	r.sb.WriteString("-- solved --\n")
}

// String returns everything drawn so far.
func (r *TextRenderer) String() string {
	return r.sb.String()
}

// Reset discards everything drawn so far.
func (r *TextRenderer) Reset() {
	r.sb.Reset()
}

// RenderText returns the plain-text rendering of an engine.
func RenderText(g *core.Game, glyphs Glyphs) string {
	r := &TextRenderer{Glyphs: glyphs}
	Draw(r, g)
	return r.String()
}
