package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// Records board layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the pack sidebar
	sidebarWidth       = 22  // Width of the pack sidebar
	maxResults         = 100 // Max results to load
)

// RecordsKeyMap defines the key bindings for the records board.
type RecordsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPack key.Binding
	PrevPack key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPack, k.PrevPack, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPack, k.PrevPack},
		{k.Back, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev pack"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel is the Bubble Tea model for the records board.
// It lists the best runs of a pack, fewest steps first.
type RecordsModel struct {
	packs       []registry.PackInfo
	packCursor  int
	store       *storage.Store
	results     []storage.Result
	stats       *storage.PackStats
	table       table.Model
	help        help.Model
	keys        RecordsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRecordsModel creates a records board opened on packID, or on the first
// pack if packID is not registered.
func NewRecordsModel(store *storage.Store, width, height int, packID string) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		packs:       registry.List(),
		store:       store,
		keys:        DefaultRecordsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, p := range m.packs {
		if p.ID == packID {
			m.packCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.packs) > 0 {
		m.loadResults(m.packs[m.packCursor].ID)
	}

	return m
}

// createTable creates a new table sized for the window.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Level", Width: 14},
		{Title: "Steps", Width: 6},
		{Title: "Player", Width: 14},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Give spare room to the level column.
	if spare := tableWidth - 61; spare > 0 {
		columns[1].Width += min(spare, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	t.SetStyles(tableStyles())
	return t
}

// loadResults loads the results and statistics of a pack.
func (m *RecordsModel) loadResults(packID string) {
	m.results = nil
	m.stats = nil
	if m.store != nil {
		if results, err := m.store.TopResults(packID, "", maxResults); err == nil {
			m.results = results
		}
		if stats, err := m.store.PackStats(packID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.LevelID,
			fmt.Sprintf("%d", r.Steps),
			r.Player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *RecordsModel) movePack(delta int) {
	if len(m.packs) == 0 {
		return
	}
	m.packCursor = (m.packCursor + delta + len(m.packs)) % len(m.packs)
	m.loadResults(m.packs[m.packCursor].ID)
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records board.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPack):
			m.movePack(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevPack):
			m.movePack(-1)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records board.
func (m RecordsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RECORDS"
	if len(m.packs) > 0 {
		title = fmt.Sprintf("RECORDS - %s", m.packs[m.packCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RecordsModel) statsLine() string {
	if m.stats == nil || m.stats.Attempts == 0 {
		return "No levels solved yet"
	}
	return fmt.Sprintf("Solved levels: %d  |  Runs: %d  |  Best total: %d steps  |  Last played: %s",
		m.stats.SolvedLevels, m.stats.Attempts, m.stats.BestTotal, m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderWideLayout puts the pack list in a sidebar left of the table.
func (m RecordsModel) renderWideLayout() string {
	lines := []string{"Packs", strings.Repeat("-", sidebarWidth-4)}
	for i, p := range m.packs {
		lines = append(lines, listItem(truncate(p.Title, sidebarWidth-6), i == m.packCursor))
	}
	sidebar := panelStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", m.renderTable())
}

// renderNarrowLayout shows only the current pack, switched with tab.
func (m RecordsModel) renderNarrowLayout() string {
	if len(m.packs) == 0 {
		return m.renderTable()
	}
	header := centerText(fmt.Sprintf("< %s >", m.packs[m.packCursor].Title), m.width)
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.renderTable())
}

func (m RecordsModel) renderTable() string {
	if len(m.results) == 0 {
		return panelStyle.Render(emptyStyle.Render("No records yet.\nSolve a level to set one!"))
	}
	return panelStyle.Render(m.table.View())
}

// IsGoingBack returns true if user wants to go back to the chooser.
func (m RecordsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool {
	return m.quitting
}

// PackID returns the pack currently shown.
func (m RecordsModel) PackID() string {
	if len(m.packs) == 0 {
		return ""
	}
	return m.packs[m.packCursor].ID
}

// RunRecords runs the records board.
// Returns true if user wants to go back to the chooser, false if quitting.
func RunRecords(store *storage.Store, width, height int, packID string) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRecordsModel(store, width, height, packID),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RecordsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
