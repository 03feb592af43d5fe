package sokoban

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

type recordingRenderer struct {
	calls []string
}

func (r *recordingRenderer) DrawBoard(core.View)  { r.calls = append(r.calls, "board") }
func (r *recordingRenderer) DrawSolved(core.View) { r.calls = append(r.calls, "solved") }

func TestDrawPicksSolvedVariant(t *testing.T) {
	lvl := mustLevel(t, "x", "@$.")
	g := lvl.NewGame()
	r := &recordingRenderer{}

	Draw(r, g)
	g.TryMove(core.Right)
	Draw(r, g)

	if strings.Join(r.calls, ",") != "board,solved" {
		t.Errorf("unexpected calls %v", r.calls)
	}
}

func TestTextRenderer(t *testing.T) {
	lvl := mustLevel(t, "x", "#####\n#@$.#\n#####\n")
	g := lvl.NewGame()

	if got := RenderText(g, DefaultGlyphs()); got != "#####\n#@$.#\n#####\n" {
		t.Errorf("unexpected text render %q", got)
	}

	g.TryMove(core.Right)
	want := "#####\n# @*#\n#####\n-- solved --\n"
	if got := RenderText(g, DefaultGlyphs()); got != want {
		t.Errorf("unexpected solved render %q", got)
	}
}

func TestTextRendererCustomGlyphs(t *testing.T) {
	lvl := mustLevel(t, "x", "#+$ .#")
	gl := DefaultGlyphs()
	gl.Wall = '█'
	gl.PlayerOnSink = 'P'
	gl.Floor = '·'

	if got := RenderText(lvl.NewGame(), gl); got != "█P$·.█\n" {
		t.Errorf("unexpected render %q", got)
	}
}

func TestScreenRendererCentersBoard(t *testing.T) {
	lvl := mustLevel(t, "x", "###\n#@#\n###\n")
	screen := platformcore.NewScreen(9, 5)
	r := ScreenRenderer{Screen: screen, Area: screen.Bounds(), Glyphs: DefaultGlyphs()}

	r.DrawBoard(lvl.NewGrid())

	if screen.Row(2) != "   #@#   " {
		t.Errorf("unexpected middle row %q", screen.Row(2))
	}
	if c := screen.GetCell(4, 2); c.Color != platformcore.ColorBrightYellow {
		t.Errorf("player should be highlighted, got %v", c.Color)
	}
	if c := screen.GetCell(3, 2); c.Color != platformcore.ColorBlue {
		t.Errorf("walls should be blue, got %v", c.Color)
	}
}

func TestScreenRendererSolvedBanner(t *testing.T) {
	lvl := mustLevel(t, "x", "@$.")
	g := lvl.NewGame()
	g.TryMove(core.Right)

	screen := platformcore.NewScreen(20, 5)
	Draw(ScreenRenderer{Screen: screen, Area: screen.Bounds(), Glyphs: DefaultGlyphs()}, g)

	if !strings.Contains(screen.String(), "SOLVED") {
		t.Errorf("expected banner:\n%s", screen.String())
	}
	if c := screen.GetCell(10, 2); c.Rune != '*' || c.Color != platformcore.ColorBrightGreen {
		t.Errorf("expected highlighted box on sink, got %q %v", c.Rune, c.Color)
	}
}

func TestGlyphsFromConfig(t *testing.T) {
	c := config.DefaultGlyphs()
	c.Wall = "█"
	c.Box = "bb"

	gl := GlyphsFromConfig(c)
	if gl.Wall != '█' {
		t.Errorf("expected configured wall, got %q", gl.Wall)
	}
	if gl.Box != '$' {
		t.Errorf("invalid glyph should keep the default, got %q", gl.Box)
	}
	if gl.Floor != ' ' || gl.PlayerOnSink != '+' {
		t.Errorf("unexpected glyphs %+v", gl)
	}
}
