package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/diamond-dash/internal/games/dash"
	"github.com/vovakirdan/diamond-dash/internal/storage"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return s
}

func TestMenuListsModes(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.RunRecord{GameID: dash.GameID, Score: 12}); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	m := NewMenuModel(store, testRuntime())

	var ids []string
	for _, item := range m.items {
		ids = append(ids, item.GameID)
	}
	if len(ids) != 2 || ids[0] != dash.GameID || ids[1] != dash.EndlessGameID {
		t.Fatalf("menu items = %v, want [dash dash_endless]", ids)
	}
	if m.items[0].Best != 12 {
		t.Errorf("best = %d, want 12", m.items[0].Best)
	}
	if !strings.Contains(m.View(), "(best 12)") {
		t.Error("view should show the best score")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID != dash.EndlessGameID {
		t.Errorf("selected = %+v, want %s", m.Selected(), dash.EndlessGameID)
	}
}

func TestScoreboardShowsRuns(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []storage.RunRecord{
		{GameID: dash.GameID, Score: 7, Reward: "Keep Practicing!"},
		{GameID: dash.GameID, Score: 100, Won: true, Reward: "LEGENDARY! Amazing Skills!"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	m := NewScoreboardModel(store, 120, 30)
	if len(m.runs) != 2 || m.runs[0].Score != 100 {
		t.Fatalf("runs = %+v, want best first", m.runs)
	}

	view := m.View()
	for _, want := range []string{"HIGH SCORES - Diamond Dash", "runs 2", "wins 1", "best 100"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	// The endless ledger is separate
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.runs) != 0 {
		t.Errorf("endless runs = %d, want 0", len(m.runs))
	}
	if !strings.Contains(m.View(), "No runs recorded yet.") {
		t.Error("empty ledger should show the empty message")
	}
}

func TestSessionFlow(t *testing.T) {
	store := openTestStore(t)
	m := NewSessionModel(store, testRuntime())

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame {
		t.Fatalf("view = %v, want game", m.view)
	}

	m = updateSession(t, m, runeKey('w'))
	for range 1000 {
		m = updateSession(t, m, TickMsg{})
		if m.gameModel.Result() != nil {
			break
		}
	}
	if m.gameModel.Result() == nil {
		t.Fatal("run did not finish")
	}

	m = updateSession(t, m, runeKey('b'))
	if m.view != viewMenu {
		t.Fatalf("view = %v, want menu", m.view)
	}
	if m.Quitting() {
		t.Fatal("back must not end the session")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewScoreboard {
		t.Fatalf("view = %v, want scoreboard", m.view)
	}
	if len(m.scoreboard.runs) != 1 {
		t.Errorf("scoreboard runs = %d, want 1", len(m.scoreboard.runs))
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatalf("view = %v, want menu", m.view)
	}

	next, cmd := m.Update(runeKey('q'))
	m = next.(SessionModel)
	if !m.Quitting() || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
