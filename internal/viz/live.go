package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particlesim/internal/dynamo"
	"github.com/san-kum/particlesim/internal/physics"
)

const (
	canvasWidth     = 60
	canvasHeight    = 22
	historyCapacity = 600
	defaultFPS      = 60
)

// Frame stores a recorded state for replay.
type Frame struct {
	Particles dynamo.Snapshot
	Step      int
	Energy    float64
}

type TickMsg time.Time

type styles struct {
	canvas, stats, header, label, value, active, graph, help, running, paused lipgloss.Style
}

func themeStyles(t Theme) styles {
	return styles{
		canvas:  lipgloss.NewStyle().Padding(1, 2).Foreground(t.Particle),
		stats:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Border).Padding(1, 2).Width(48),
		header:  lipgloss.NewStyle().Foreground(t.Header).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(16),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		active:  lipgloss.NewStyle().Foreground(t.Active).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		running: lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
	}
}

// Model holds the simulation, its replay buffer and UI state.
type Model struct {
	sim           *physics.Simulation
	title         string
	fps           int
	initial       dynamo.Snapshot
	initialParams map[string]float64
	paramKeys     []string
	selected      int
	canvas        *Canvas
	running       bool
	diag          *dynamo.Diagnostic
	energyHistory []float64
	history       []Frame
	playHead      int
	showHelp      bool
}

// NewModel wraps sim for interactive display. The simulation's current
// state and parameters become the reset point.
func NewModel(sim *physics.Simulation, title string, fps int) Model {
	if fps <= 0 {
		fps = defaultFPS
	}
	params := sim.GetParams()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := Model{
		sim:           sim,
		title:         title,
		fps:           fps,
		initial:       sim.Particles(),
		initialParams: params,
		paramKeys:     keys,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		running:       true,
		diag:          &dynamo.Diagnostic{},
		energyHistory: make([]float64, 0, historyCapacity),
		history:       make([]Frame, 0, historyCapacity),
		playHead:      -1,
	}
	sim.AddObserver(m.observer())
	m.draw()
	return m
}

func (m Model) observer() dynamo.Observer {
	diag := m.diag
	return dynamo.ObserverFunc(func(d dynamo.Diagnostic) { *diag = d })
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
		m.draw()
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		m.draw()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.sim.Step()
	x := m.sim.Particles()
	e := physics.Energy(x)

	if len(m.energyHistory) >= historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
	m.energyHistory = append(m.energyHistory, e)

	if len(m.history) >= historyCapacity {
		m.history = m.history[1:]
	}
	m.history = append(m.history, Frame{Particles: x, Step: m.sim.Steps(), Energy: e})
}

// scrub moves the replay head by dir frames. Moving past the newest
// frame returns to live stepping.
func (m *Model) scrub(dir int) {
	if len(m.history) == 0 {
		return
	}
	if m.playHead == -1 {
		if dir > 0 {
			return
		}
		m.playHead = len(m.history) - 1
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	v := m.sim.GetParams()[key]
	if v == 0 {
		v = 1e-6
	}
	_ = m.sim.SetParam(key, v*factor)
}

func (m *Model) reset() {
	sim := physics.FromParticles(m.initial, physics.WithObserver(m.observer()))
	for k, v := range m.initialParams {
		_ = sim.SetParam(k, v)
	}
	m.sim = sim
	*m.diag = dynamo.Diagnostic{}
	m.energyHistory = m.energyHistory[:0]
	m.history = m.history[:0]
	m.playHead = -1
}

func (m Model) current() (dynamo.Snapshot, int) {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		f := m.history[m.playHead]
		return f.Particles, f.Step
	}
	return m.sim.Particles(), m.sim.Steps()
}

func (m Model) draw() {
	m.canvas.Clear()
	ps, _ := m.current()
	for _, p := range ps {
		m.canvas.Plot(p.X, p.Y, physics.WorldWidth, physics.WorldHeight)
	}
}

func (m Model) status(st styles) string {
	switch {
	case m.playHead != -1 && !m.running:
		return st.paused.Render(fmt.Sprintf("REPLAY PAUSED (%d/%d)", m.playHead+1, len(m.history)))
	case m.playHead != -1:
		return st.running.Render(fmt.Sprintf("REPLAYING (%d/%d)", m.playHead+1, len(m.history)))
	case !m.running:
		return st.paused.Render("PAUSED")
	}
	return st.running.Render("RUNNING")
}

func (m Model) View() string {
	st := themeStyles(CurrentTheme)
	ps, step := m.current()

	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status(st) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(5), asciigraph.Width(34), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Particles", fmt.Sprintf("%d", len(ps)))
	row("Step", fmt.Sprintf("%d", step))
	row("Energy", fmt.Sprintf("%.3f", physics.Energy(ps)))
	row("Kinetic", fmt.Sprintf("%.3f", physics.KineticEnergy(ps)))
	px, py := physics.Momentum(ps)
	row("Momentum", fmt.Sprintf("(%.2f, %.2f)", px, py))

	s.WriteString("\nPARAMETERS\n")
	params := m.sim.GetParams()
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-16s %.4g", k, params[k])
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}

	s.WriteString(st.help.Render("SP:Pause R:Reset Q:Quit\nTab:Param ↑↓:Tune T:Theme\n[ ]:Replay ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.diag.Step > 0 {
		mainView += "\n  " + st.value.Render(m.diag.String())
	}
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  [        - Step back in replay      ║
║  ]        - Step forward in replay   ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the interactive view and blocks until the user quits.
func Run(sim *physics.Simulation, title string, fps int) error {
	p := tea.NewProgram(NewModel(sim, title, fps), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
