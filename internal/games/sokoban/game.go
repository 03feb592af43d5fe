// Package sokoban adapts the Sokoban level engine to the terminal platform:
// level selection within a pack, move pacing, rendering and results.
package sokoban

import (
	"fmt"
	"time"

	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

const (
	hudHeight    = 2
	footerHeight = 1
)

// Game plays the levels of one pack.
type Game struct {
	packID string
	levels []levels.Level
	index  int

	level  levels.Level
	engine *core.Game
	pacer  Pacer
	glyphs Glyphs

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
	reported bool
	last     core.MoveOutcome
}

var _ registry.Game = (*Game)(nil)

// New creates a game over an already loaded level list.
func New(packID string, lvls []levels.Level) *Game {
	return &Game{
		packID: packID,
		levels: lvls,
		glyphs: DefaultGlyphs(),
		pacer:  NewPacer(platformcore.DefaultConfig().MoveInterval),
	}
}

// NewFromPack loads a registered pack and creates a game for it.
func NewFromPack(packID string) (*Game, error) {
	lvls, err := PackLevels(packID)
	if err != nil {
		return nil, err
	}
	return New(packID, lvls), nil
}

// ID returns the pack identifier.
func (g *Game) ID() string {
	return g.packID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sokoban: " + registry.Title(g.packID)
}

// SetGlyphs changes the characters used to draw the board.
func (g *Game) SetGlyphs(gl Glyphs) {
	g.glyphs = gl
}

// SelectLevel makes the level with the given ID current.
// Takes effect on the next Reset.
func (g *Game) SelectLevel(id string) error {
	for i, lvl := range g.levels {
		if lvl.ID == id {
			g.index = i
			return nil
		}
	}
	return fmt.Errorf("sokoban: pack %q has no level %q", g.packID, id)
}

// Levels returns the levels of the pack.
func (g *Game) Levels() []levels.Level {
	return g.levels
}

// Level returns the current level.
func (g *Game) Level() levels.Level {
	return g.level
}

// Engine returns the engine of the current level, or nil before Reset.
func (g *Game) Engine() *core.Game {
	return g.engine
}

// LastOutcome returns the outcome of the most recent applied move.
func (g *Game) LastOutcome() core.MoveOutcome {
	return g.last
}

// Reset applies the runtime config and reloads the current level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.pacer = NewPacer(cfg.MoveInterval)
	g.paused = false
	g.loadLevel(g.index)
}

// Resize updates the screen dimensions without touching the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.calculateLayout()
}

// loadLevel replaces the engine with a fresh one for level i.
func (g *Game) loadLevel(i int) {
	if len(g.levels) == 0 {
		g.engine = nil
		return
	}
	g.index = platformcore.Clamp(i, 0, len(g.levels)-1)
	g.level = g.levels[g.index]
	g.engine = g.level.NewGame()
	g.pacer.Reset()
	g.reported = false
	g.last = core.Rejected
	g.calculateLayout()
}

func (g *Game) calculateLayout() {
	if g.engine == nil {
		return
	}
	availW := g.screenW
	availH := g.screenH - hudHeight - footerHeight - 1
	g.tooSmall = g.level.Width > availW || g.level.Height > availH
}

func (g *Game) hasNext() bool {
	return g.index+1 < len(g.levels)
}

// Step advances the game by one frame.
func (g *Game) Step(in platformcore.InputFrame, now time.Time) platformcore.StepResult {
	if g.engine == nil {
		return platformcore.StepResult{State: g.State()}
	}

	switch {
	case in.Has(platformcore.ActionRestart):
		g.loadLevel(g.index)
		return platformcore.StepResult{State: g.State()}
	case in.Has(platformcore.ActionNextLevel) && g.hasNext():
		g.loadLevel(g.index + 1)
		return platformcore.StepResult{State: g.State()}
	case in.Has(platformcore.ActionPrevLevel) && g.index > 0:
		g.loadLevel(g.index - 1)
		return platformcore.StepResult{State: g.State()}
	}

	if g.engine.State() == core.Solved {
		if in.Has(platformcore.ActionConfirm) && g.hasNext() {
			g.loadLevel(g.index + 1)
		}
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
		g.pacer.Reset()
	}
	if g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	g.pacer.Request(DirectionFor(in.LastDirection))
	if d, ok := g.pacer.Due(now); ok {
		g.last = g.engine.TryMove(d)
	}

	result := platformcore.StepResult{State: g.State()}
	if g.engine.State() == core.Solved && !g.reported {
		g.reported = true
		result.Solved = &platformcore.LevelResult{
			PackID:  g.packID,
			LevelID: g.level.ID,
			Steps:   g.engine.Steps(),
		}
	}
	return result
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.engine == nil {
		return platformcore.GameState{Paused: true}
	}
	return platformcore.GameState{
		Steps:  g.engine.Steps(),
		Solved: g.engine.State() == core.Solved,
		Paused: g.paused || g.tooSmall,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.engine == nil {
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	area := platformcore.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerHeight)
	Draw(ScreenRenderer{Screen: dst, Area: area, Glyphs: g.glyphs}, g.engine)

	g.renderFooter(dst)

	switch g.stateType() {
	case StatePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case StateComplete:
		dst.DrawTextCentered(dst.Height()-footerHeight-1, fmt.Sprintf("Pack complete! Solved in %d steps", g.engine.Steps()))
	case StateSolved:
		dst.DrawTextCentered(dst.Height()-footerHeight-1, fmt.Sprintf("Solved in %d steps | Enter: next level", g.engine.Steps()))
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" %s | Level %d/%d: %s | Steps: %d",
		registry.Title(g.packID), g.index+1, len(g.levels), g.level.DisplayName(), g.engine.Steps())
	dst.DrawTextColored(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	controls := " ←↑↓→/WASD/HJKL: move | R: restart | [ ]: level | P: pause | Esc: levels | Q: quit"
	dst.DrawTextColored(0, dst.Height()-1, controls, platformcore.ColorGray)
}

func (g *Game) renderOverlay(dst *platformcore.Screen, title, subtitle string) {
	w := platformcore.Max(len([]rune(title)), len([]rune(subtitle))) + 6
	box := dst.Bounds().Centered(w, 5)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(w-len([]rune(title)))/2, box.Y+1, title, platformcore.ColorBrightYellow)
	dst.DrawText(box.X+(w-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
