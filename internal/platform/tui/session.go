package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// GameFactory creates the game for a pack, starting at levelID when it is
// not empty.
type GameFactory func(packID, levelID string) (registry.Game, error)

// SokobanFactory returns a GameFactory for registered packs drawn with glyphs.
func SokobanFactory(glyphs sokoban.Glyphs) GameFactory {
	return func(packID, levelID string) (registry.Game, error) {
		g, err := sokoban.NewFromPack(packID)
		if err != nil {
			return nil, err
		}
		if levelID != "" {
			if err := g.SelectLevel(levelID); err != nil {
				return nil, err
			}
		}
		g.SetGlyphs(glyphs)
		return g, nil
	}
}

// ResultStoreOf converts a possibly nil store to a ResultStore that is nil
// when the store is.
func ResultStoreOf(store *storage.Store) ResultStore {
	if store == nil {
		return nil
	}
	return store
}

type sessionScreen int

const (
	screenChooser sessionScreen = iota
	screenGame
	screenRecords
)

// SessionConfig holds what a session needs besides the runtime config.
type SessionConfig struct {
	Store   *storage.Store
	NewGame GameFactory
	PackID  string // pack the chooser opens on
	Player  string
	Logger  *log.Logger
	Feed    *Feed
}

// SessionModel runs the full flow in one program:
// chooser -> game -> chooser, with the records board reachable from the chooser.
type SessionModel struct {
	cfg      SessionConfig
	config   core.RuntimeConfig
	screen   sessionScreen
	chooser  ChooserModel
	game     *Model
	records  RecordsModel
	quitting bool
}

// NewSessionModel creates a session model.
func NewSessionModel(cfg SessionConfig, rc core.RuntimeConfig) SessionModel {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.NewGame == nil {
		cfg.NewGame = SokobanFactory(sokoban.DefaultGlyphs())
	}
	return SessionModel{
		cfg:     cfg,
		config:  rc,
		chooser: NewChooserModel(cfg.Store, rc, cfg.PackID, cfg.Logger),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.chooser.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	default:
		return m.updateChooser(msg)
	}
}

func (m SessionModel) updateChooser(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// Stale frame from a game that was left.
		return m, nil
	}

	newChooser, cmd := m.chooser.Update(msg)
	if chooser, ok := newChooser.(ChooserModel); ok {
		m.chooser = chooser
	}

	switch {
	case m.chooser.IsQuitting():
		return m.quit()

	case m.chooser.WantsRecords():
		m.records = NewRecordsModel(m.cfg.Store, m.config.ScreenW, m.config.ScreenH, m.chooser.PackID())
		m.screen = screenRecords
		return m, m.records.Init()

	case m.chooser.Selected() != nil:
		sel := m.chooser.Selected()
		game, err := m.cfg.NewGame(sel.PackID, sel.LevelID)
		if err != nil {
			m.cfg.Logger.Warn("cannot start game", "pack", sel.PackID, "level", sel.LevelID, "err", err)
			m.chooser = NewChooserModel(m.cfg.Store, m.config, sel.PackID, m.cfg.Logger)
			return m, nil
		}

		gm := NewModel(game, m.config, Options{
			Store:  ResultStoreOf(m.cfg.Store),
			Player: m.cfg.Player,
			Logger: m.cfg.Logger,
			Feed:   m.cfg.Feed,
		})
		m.game = &gm
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		return m.quit()

	case m.game.BackToChooser():
		m.chooser = NewChooserModel(m.cfg.Store, m.config, m.game.game.ID(), m.cfg.Logger)
		m.game = nil
		m.screen = screenChooser
		return m, m.chooser.Init()
	}

	return m, cmd
}

func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	newRecords, cmd := m.records.Update(msg)
	if records, ok := newRecords.(RecordsModel); ok {
		m.records = records
	}

	switch {
	case m.records.IsQuitting():
		return m.quit()

	case m.records.IsGoingBack():
		m.chooser = NewChooserModel(m.cfg.Store, m.config, m.chooser.PackID(), m.cfg.Logger)
		m.screen = screenChooser
		return m, m.chooser.Init()
	}

	return m, cmd
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenRecords:
		return m.records.View()
	default:
		return m.chooser.View()
	}
}

// IsQuitting returns true if the session is over.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// RunSession runs a full session in the local terminal.
func RunSession(cfg SessionConfig, rc core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, rc),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
