package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(SessionConfig{Store: store, PackID: "tutorial", Player: "bob"}, testConfig)
	m.Init()

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatal("selecting a level should start the game")
	}

	// First Push is solved by three moves right.
	now := time.Unix(1000, 0)
	for i := range 3 {
		m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyRight})
		m = updateSession(t, m, TickMsg(now.Add(time.Duration(i)*time.Second)))
	}
	if !m.game.State().Solved {
		t.Fatal("First Push should be solved")
	}

	steps, ok, err := store.BestSteps("tutorial", "01-first-push")
	if err != nil || !ok || steps != 3 {
		t.Fatalf("BestSteps = %d, %v, %v; want 3", steps, ok, err)
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenChooser {
		t.Fatal("esc should return to the chooser")
	}
	if !containsAll(m.View(), "best: 3") {
		t.Errorf("chooser should show the new record:\n%s", m.View())
	}

	// A stale frame from the left game is ignored.
	m = updateSession(t, m, TickMsg(now))

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenRecords {
		t.Fatal("tab should open the records board")
	}
	if !containsAll(m.View(), "RECORDS", "01-first-push", "bob") {
		t.Errorf("records board should list the run:\n%s", m.View())
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenChooser {
		t.Fatal("esc should leave the records board")
	}

	m = updateSession(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should end the session")
	}
}

func TestSessionUnknownLevelStaysInChooser(t *testing.T) {
	factory := func(packID, _ string) (registry.Game, error) {
		return SokobanFactory(sokoban.DefaultGlyphs())(packID, "missing")
	}
	m := NewSessionModel(SessionConfig{PackID: "tutorial", NewGame: factory}, testConfig)

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenChooser {
		t.Error("a failing factory should keep the chooser open")
	}
}
