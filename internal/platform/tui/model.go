package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

// swipeThreshold is the minimum mouse drag, in cells, that counts as a move.
const swipeThreshold = 2

// ResultStore persists solved levels.
type ResultStore interface {
	SaveResult(packID, levelID, player string, steps int) (int64, error)
}

// Options carries the collaborators of a game model. All fields are optional.
type Options struct {
	Store  ResultStore
	Player string
	Logger *log.Logger
	Feed   *Feed
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// resizer is implemented by games that can adapt to a new screen size
// without reloading the current level.
type resizer interface {
	Resize(w, h int)
}

// snapshotter is implemented by games that can be watched by spectators.
type snapshotter interface {
	Snapshot() sokoban.Snapshot
}

type dragStart struct {
	x, y int
}

// Model is the Bubble Tea model for playing one pack.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	drag       *dragStart
	lastSolved *core.LevelResult
	quitting   bool
	back       bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Player == "" {
		opts.Player = "anonymous"
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init loads the current level and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.publish()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records the key's action for the next frame.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.logger().Warn("cannot save screenshot", "err", err)
		} else {
			m.opts.logger().Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// handleMouse turns a left-button drag that starts on the screen into a
// direction.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.screen.Bounds().Contains(msg.X, msg.Y) {
			m.drag = &dragStart{x: msg.X, y: msg.Y}
		}
	case msg.Action == tea.MouseActionRelease && m.drag != nil:
		// Some terminals do not report the button on release.
		action := core.SwipeAction(msg.X-m.drag.x, msg.Y-m.drag.y, swipeThreshold)
		if action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		m.drag = nil
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick runs one game frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame, now)
	m.gameState = result.State

	if result.Solved != nil {
		m.lastSolved = result.Solved
		m.saveResult(*result.Solved)
	}

	m.publish()
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveResult records a solved level. Failures are logged and play continues.
func (m Model) saveResult(r core.LevelResult) {
	logger := m.opts.logger()
	logger.Info("level solved", "pack", r.PackID, "level", r.LevelID, "steps", r.Steps, "player", m.opts.Player)

	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveResult(r.PackID, r.LevelID, m.opts.Player, r.Steps); err != nil {
		logger.Warn("cannot save result", "pack", r.PackID, "level", r.LevelID, "err", err)
	}
}

func (m Model) publish() {
	if m.opts.Feed == nil {
		return
	}
	if s, ok := m.game.(snapshotter); ok {
		m.opts.Feed.Update(s.Snapshot())
	}
}

// saveScreenshot writes the current screen as plain text to
// ~/.sokoban/screenshots and returns the file path.
func (m Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".sokoban", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last frame.
func (m Model) State() core.GameState {
	return m.gameState
}

// LastSolved returns the most recent level solved in this model, if any.
func (m Model) LastSolved() *core.LevelResult {
	return m.lastSolved
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToChooser returns true if the user asked to go back to the level chooser.
func (m Model) BackToChooser() bool {
	return m.back
}

// Run plays game until the user quits or goes back.
// Returns true if the user wants the level chooser.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (back bool, err error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToChooser(), nil
}
