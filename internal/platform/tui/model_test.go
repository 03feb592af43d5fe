package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

type savedResult struct {
	pack, level, player string
	steps               int
}

type fakeStore struct {
	saved []savedResult
	err   error
}

func (s *fakeStore) SaveResult(packID, levelID, player string, steps int) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.saved = append(s.saved, savedResult{packID, levelID, player, steps})
	return int64(len(s.saved)), nil
}

type fakePublisher struct {
	published []sokoban.Snapshot
	ended     []string
}

func (p *fakePublisher) Publish(_ context.Context, _ string, v any) error {
	p.published = append(p.published, v.(sokoban.Snapshot))
	return nil
}

func (p *fakePublisher) EndSession(_ context.Context, sessionID string) error {
	p.ended = append(p.ended, sessionID)
	return nil
}

var testConfig = core.RuntimeConfig{
	ScreenW:      80,
	ScreenH:      24,
	TickRate:     30,
	MoveInterval: 100 * time.Millisecond,
}

// oneMoveGame is solved by a single push to the right.
func oneMoveGame(t *testing.T) *sokoban.Game {
	t.Helper()
	lvl, err := levels.Parse("push", []byte("#####\n#@$.#\n#####\nTitle: Push\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return sokoban.New("unit", []levels.Level{lvl})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelSolveSavesResult(t *testing.T) {
	store := &fakeStore{}
	m := NewModel(oneMoveGame(t), testConfig, Options{Store: store, Player: "alice"})
	m.Init()

	now := time.Unix(1000, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg(now))

	if !m.State().Solved {
		t.Fatal("level should be solved after one push")
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 saved result, got %d", len(store.saved))
	}
	want := savedResult{"unit", "push", "alice", 1}
	if store.saved[0] != want {
		t.Errorf("saved %+v, want %+v", store.saved[0], want)
	}
	if m.LastSolved() == nil || m.LastSolved().Steps != 1 {
		t.Errorf("unexpected last solved %+v", m.LastSolved())
	}

	// Further frames keep the level solved without saving again.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, TickMsg(now.Add(time.Second)))
	if len(store.saved) != 1 {
		t.Errorf("result saved again: %d", len(store.saved))
	}
	if m.State().Steps != 1 {
		t.Errorf("solved level accepted a move, steps=%d", m.State().Steps)
	}
}

func TestModelStoreErrorKeepsPlaying(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	m := NewModel(oneMoveGame(t), testConfig, Options{Store: store})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg(time.Unix(1000, 0)))

	if !m.State().Solved {
		t.Error("a failing store must not affect the game")
	}
}

func TestModelMouseSwipe(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		dx, dy int
		steps  int
	}{
		{"swipe right", 10, 10, 4, 1, 1},
		{"too short", 10, 10, 1, 1, 0},
		{"swipe left into wall", 10, 10, -3, 0, 0},
		{"starts off screen", 100, 10, 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(oneMoveGame(t), testConfig, Options{})
			m.Init()

			m = update(t, m, tea.MouseMsg{X: tt.x, Y: tt.y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
			m = update(t, m, tea.MouseMsg{X: tt.x + tt.dx, Y: tt.y + tt.dy, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
			m = update(t, m, TickMsg(time.Unix(1000, 0)))

			if m.State().Steps != tt.steps {
				t.Errorf("steps = %d, want %d", m.State().Steps, tt.steps)
			}
		})
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := NewModel(oneMoveGame(t), testConfig, Options{})
	m.Init()

	back := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToChooser() || back.IsQuitting() {
		t.Error("esc should go back to the chooser")
	}
	if back.View() != "" {
		t.Error("view should be empty once leaving")
	}

	quit := update(t, m, runeKey("q"))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestModelResizeKeepsProgress(t *testing.T) {
	lvl, err := levels.Parse("long", []byte("#######\n#@ $ .#\n#######\n"))
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(sokoban.New("unit", []levels.Level{lvl}), testConfig, Options{})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg(time.Unix(1000, 0)))
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, TickMsg(time.Unix(1001, 0)))

	if m.State().Steps != 1 {
		t.Errorf("resize should keep the level, steps=%d", m.State().Steps)
	}
}

func TestModelPublishesChangedSnapshots(t *testing.T) {
	pub := &fakePublisher{}
	m := NewModel(oneMoveGame(t), testConfig, Options{Feed: NewFeed(pub, "s1", nil)})
	m.Init()

	now := time.Unix(1000, 0)
	m = update(t, m, TickMsg(now))
	m = update(t, m, TickMsg(now.Add(50*time.Millisecond)))
	if len(pub.published) != 1 {
		t.Fatalf("idle frames should not republish, got %d snapshots", len(pub.published))
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	update(t, m, TickMsg(now.Add(200*time.Millisecond)))
	if len(pub.published) != 2 {
		t.Fatalf("expected a snapshot after the move, got %d", len(pub.published))
	}
	last := pub.published[1]
	if last.Steps != 1 || last.State != sokoban.StateComplete {
		t.Errorf("unexpected snapshot %+v", last)
	}
}

func TestModelViewRendersBoard(t *testing.T) {
	m := NewModel(oneMoveGame(t), testConfig, Options{})
	m.Init()

	view := m.View()
	if view == "" {
		t.Fatal("view should not be empty")
	}
	if !containsAll(view, "Push", "Steps: 0") {
		t.Errorf("view is missing the HUD:\n%s", view)
	}
}
