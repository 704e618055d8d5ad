package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/particlesim/internal/physics"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(physics.New(20, physics.WorldWidth, physics.WorldHeight, physics.WithSeed(7)), "test", 30)
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTickSteps(t *testing.T) {
	m := newTestModel(t)
	if m.canvas.Count() == 0 {
		t.Fatal("expected initial frame to be drawn")
	}

	for i := 0; i < 3; i++ {
		m = send(t, m, TickMsg(time.Now()))
	}

	if m.sim.Steps() != 3 {
		t.Errorf("expected 3 steps, got %d", m.sim.Steps())
	}
	if m.diag.Step != 3 {
		t.Errorf("expected diagnostic for step 3, got %d", m.diag.Step)
	}
	if len(m.energyHistory) != 3 || len(m.history) != 3 {
		t.Errorf("expected 3 recorded frames, got %d energies and %d frames", len(m.energyHistory), len(m.history))
	}

	view := m.View()
	if !strings.Contains(view, "Particle 0 - Position:") {
		t.Error("expected diagnostic line in view")
	}
	if !strings.Contains(view, "RUNNING") {
		t.Error("expected running status in view")
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.running {
		t.Fatal("expected space to pause")
	}

	m = send(t, m, TickMsg(time.Now()))
	if m.sim.Steps() != 0 {
		t.Errorf("paused model stepped %d times", m.sim.Steps())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status in view")
	}
}

func TestModelReset(t *testing.T) {
	m := newTestModel(t)
	start := m.sim.Particles()

	m = send(t, m, key("k"))
	for i := 0; i < 5; i++ {
		m = send(t, m, TickMsg(time.Now()))
	}
	m = send(t, m, key("r"))

	if m.sim.Steps() != 0 {
		t.Errorf("expected step counter reset, got %d", m.sim.Steps())
	}
	if m.sim.Dt() != physics.DefaultDt {
		t.Errorf("expected dt restored to %v, got %v", physics.DefaultDt, m.sim.Dt())
	}
	got := m.sim.Particles()
	for i := range start {
		if got[i] != start[i] {
			t.Fatalf("particle %d not restored: got %+v, want %+v", i, got[i], start[i])
		}
	}
	if len(m.history) != 0 || m.diag.Step != 0 {
		t.Error("expected history and diagnostic cleared")
	}

	m = send(t, m, TickMsg(time.Now()))
	if m.diag.Step != 1 {
		t.Errorf("expected observer rewired after reset, got step %d", m.diag.Step)
	}
}

func TestModelAdjustParam(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if want := physics.DefaultDt * 1.05; math.Abs(m.sim.Dt()-want) > 1e-12 {
		t.Errorf("dt = %v, want %v", m.sim.Dt(), want)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, key("j"))
	if want := physics.DefaultSurfaceTension * 0.95; math.Abs(m.sim.SurfaceTension()-want) > 1e-12 {
		t.Errorf("surface tension = %v, want %v", m.sim.SurfaceTension(), want)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != 0 {
		t.Errorf("expected selection to wrap, got %d", m.selected)
	}
}

func TestModelScrub(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 4; i++ {
		m = send(t, m, TickMsg(time.Now()))
	}

	m = send(t, m, key("["))
	if m.playHead != 2 {
		t.Fatalf("expected play head at 2, got %d", m.playHead)
	}
	_, step := m.current()
	if step != 3 {
		t.Errorf("expected replayed step 3, got %d", step)
	}

	m = send(t, m, key("]"))
	m = send(t, m, key("]"))
	if m.playHead != -1 {
		t.Errorf("expected return to live view, got play head %d", m.playHead)
	}
	if m.sim.Steps() != 4 {
		t.Errorf("scrubbing must not step the simulation, got %d steps", m.sim.Steps())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
