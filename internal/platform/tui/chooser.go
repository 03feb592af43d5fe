package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

const chooserChrome = 8 // title, subtitle, footer and spacing lines

type chooserStage int

const (
	stagePacks chooserStage = iota
	stageLevels
)

// Selection is a level picked in the chooser.
type Selection struct {
	PackID  string
	LevelID string
}

// ChooserModel lets users pick a pack and then a level of it.
// Levels are listed with the best recorded step count.
type ChooserModel struct {
	packs       []registry.PackInfo
	packCursor  int
	levels      []levels.Level
	best        map[string]int
	levelCursor int
	stage       chooserStage
	loadErr     error
	width       int
	height      int
	store       *storage.Store
	keyMapper   *KeyMapper
	logger      *log.Logger
	selection   *Selection
	records     bool
	quitting    bool
}

// NewChooserModel creates a chooser. If packID names a registered pack, the
// chooser opens directly on its level list.
func NewChooserModel(store *storage.Store, cfg core.RuntimeConfig, packID string, logger *log.Logger) ChooserModel {
	if logger == nil {
		logger = log.Default()
	}
	m := ChooserModel{
		packs:     registry.List(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		keyMapper: NewKeyMapper(),
		logger:    logger,
	}

	for i, p := range m.packs {
		if p.ID == packID {
			m.packCursor = i
			m.openPack()
			break
		}
	}
	return m
}

// openPack loads the levels and records of the pack under the cursor.
func (m *ChooserModel) openPack() {
	if len(m.packs) == 0 {
		return
	}
	pack := m.packs[m.packCursor]

	lvls, err := sokoban.PackLevels(pack.ID)
	if err != nil {
		m.loadErr = err
		m.logger.Warn("cannot load pack", "pack", pack.ID, "err", err)
		return
	}

	m.loadErr = nil
	m.levels = lvls
	m.levelCursor = 0
	m.stage = stageLevels
	m.refreshBest()
}

func (m *ChooserModel) refreshBest() {
	m.best = nil
	if m.store == nil || m.stage != stageLevels {
		return
	}
	best, err := m.store.BestByLevel(m.packs[m.packCursor].ID)
	if err != nil {
		m.logger.Warn("cannot load records", "err", err)
		return
	}
	m.best = best
}

// Init initializes the chooser model.
func (m ChooserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the chooser.
func (m ChooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m ChooserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionRecords:
		m.records = true
		return m, tea.Quit
	}

	if m.stage == stageLevels {
		return m.handleLevelKey(action)
	}
	return m.handlePackKey(action)
}

func (m ChooserModel) handlePackKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.packCursor > 0 {
			m.packCursor--
		}
	case MenuActionDown:
		if m.packCursor < len(m.packs)-1 {
			m.packCursor++
		}
	case MenuActionSelect:
		m.openPack()
	}
	return m, nil
}

func (m ChooserModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.selection = &Selection{
			PackID:  m.packs[m.packCursor].ID,
			LevelID: m.levels[m.levelCursor].ID,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.stage = stagePacks
		m.levels = nil
		m.best = nil
	}
	return m, nil
}

// View renders the chooser.
func (m ChooserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S O K O B A N"), m.width))
	b.WriteString("\n\n")

	if m.stage == stageLevels {
		m.viewLevels(&b)
	} else {
		m.viewPacks(&b)
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Records  |  Q: Quit"
	if m.stage == stageLevels {
		controls = "Up/Down: Navigate  |  Enter: Play  |  Esc: Packs  |  Tab: Records  |  Q: Quit"
	}
	b.WriteString(centerText(mutedStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m ChooserModel) viewPacks(b *strings.Builder) {
	b.WriteString(centerText("Select a level pack", m.width))
	b.WriteString("\n\n")

	if len(m.packs) == 0 {
		b.WriteString(centerText("No level packs registered", m.width))
		b.WriteString("\n")
		return
	}

	for i, p := range m.packs {
		b.WriteString(centerText(listItem(p.Title, i == m.packCursor), m.width))
		b.WriteString("\n")
	}

	if m.loadErr != nil {
		b.WriteString("\n")
		b.WriteString(centerText(mutedStyle.Render("Error: "+m.loadErr.Error()), m.width))
		b.WriteString("\n")
	}
}

func (m ChooserModel) viewLevels(b *strings.Builder) {
	pack := m.packs[m.packCursor]
	b.WriteString(centerText(fmt.Sprintf("%s (%d levels)", pack.Title, len(m.levels)), m.width))
	b.WriteString("\n\n")

	first, last := visibleRange(m.levelCursor, len(m.levels), m.height-chooserChrome)
	for i := first; i < last; i++ {
		lvl := m.levels[i]
		best := "-"
		if steps, ok := m.best[lvl.ID]; ok {
			best = fmt.Sprintf("%d", steps)
		}

		line := fmt.Sprintf("%2d. %-24s %3dx%-3d best: %s",
			i+1, truncate(lvl.DisplayName(), 24), lvl.Width, lvl.Height, best)
		b.WriteString(centerText(listItem(line, i == m.levelCursor), m.width))
		b.WriteString("\n")
	}
}

// visibleRange returns the window of a list of n rows that keeps cursor
// visible when only rows lines fit.
func visibleRange(cursor, n, rows int) (first, last int) {
	if rows < 1 {
		rows = 1
	}
	if n <= rows {
		return 0, n
	}
	first = cursor - rows/2
	first = core.Clamp(first, 0, n-rows)
	return first, first + rows
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// Selected returns the selected level, or nil if none was selected.
func (m ChooserModel) Selected() *Selection {
	return m.selection
}

// IsQuitting returns true if user requested to quit.
func (m ChooserModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records board.
func (m ChooserModel) WantsRecords() bool {
	return m.records
}

// PackID returns the pack under the cursor.
func (m ChooserModel) PackID() string {
	if len(m.packs) == 0 {
		return ""
	}
	return m.packs[m.packCursor].ID
}

// centerText left-pads text so it sits centered in width cells.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
