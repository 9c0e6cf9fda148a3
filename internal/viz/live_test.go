package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"spiralsim/internal/config"
	"spiralsim/internal/engine"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	cfg.Dt = 0.1
	cfg.Duration = 2

	eng, err := engine.New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewModel(eng)
}

func quit(m Model) {
	m.cancel()
}

func updateTick(m Model) Model {
	next, _ := m.Update(TickMsg(time.Now()))
	return next.(Model)
}

func TestViewRendersHeader(t *testing.T) {
	m := newTestModel(t)
	defer quit(m)

	view := m.View()
	if !strings.Contains(view, "SPIRAL") {
		t.Error("expected header in view")
	}
	if !strings.Contains(view, "RUNNING") {
		t.Error("expected running status in view")
	}
}

func TestQuitKeyCancels(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message")
	}
	_ = next
}

func TestTickConsumesSamples(t *testing.T) {
	m := newTestModel(t)
	defer quit(m)

	for i := 0; i < 200 && m.count == 0; i++ {
		time.Sleep(time.Millisecond)
		m = updateTick(m)
	}
	if m.count == 0 {
		t.Fatal("expected at least one consumed sample")
	}
	if len(m.history) != m.count {
		t.Errorf("expected history to track count, got %d vs %d", len(m.history), m.count)
	}
}

func TestPauseStopsConsumption(t *testing.T) {
	m := newTestModel(t)
	defer quit(m)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	if !m.paused {
		t.Fatal("expected paused after space")
	}

	before := m.count
	for i := 0; i < 20; i++ {
		m = updateTick(m)
	}
	if m.count != before {
		t.Error("expected no samples consumed while paused")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status in view")
	}
}

func TestViewShowsAbort(t *testing.T) {
	m := Model{scenario: "step", done: true, err: errors.New("unstable at step 3")}

	view := m.View()
	if !strings.Contains(view, "ABORTED") {
		t.Error("expected abort status in view")
	}
	if !strings.Contains(view, "unstable at step 3") {
		t.Error("expected error detail in view")
	}
}
