package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hapticsim/internal/config"
	"github.com/san-kum/hapticsim/internal/dynamo"
)

const (
	width           = 72
	height          = 16
	historyCapacity = 300
	frameRate       = 60
	maxStepsFrame   = 64
)

type TickMsg time.Time

// Model is the live view of one simulation. The cursor stands in for the
// pointer: it moves with the arrow keys and pulls the object while dragging.
type Model struct {
	sim    *dynamo.Simulation
	cfg    *config.Config
	name   string
	canvas *Canvas

	surface []float64
	lo, hi  float64

	cursor        float64
	running       bool
	stepsPerFrame int

	forceHistory    []float64
	velocityHistory []float64
	controlHistory  []float64

	status   string
	showHelp bool
}

// NewModel builds the simulation described by cfg and samples its surface
// once for drawing.
func NewModel(cfg *config.Config) (Model, error) {
	sim, err := cfg.NewSimulation()
	if err != nil {
		return Model{}, err
	}
	m := Model{
		sim:           sim,
		cfg:           cfg,
		name:          cfg.Name,
		canvas:        NewCanvas(width, height),
		cursor:        sim.Position(),
		running:       true,
		stepsPerFrame: 2,

		forceHistory:    make([]float64, 0, historyCapacity),
		velocityHistory: make([]float64, 0, historyCapacity),
		controlHistory:  make([]float64, 0, historyCapacity),
	}
	m.sampleSurface()
	return m, nil
}

func (m *Model) sampleSurface() {
	b := m.sim.Params().Bounds
	pw, _ := m.canvas.Pixels()
	_, us, _ := m.sim.Profile().Sample(b.Min, b.Max, pw-1)
	lo, hi := us[0], us[0]
	for _, u := range us {
		lo, hi = min(lo, u), max(hi, u)
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	m.surface, m.lo, m.hi = us, lo-pad, hi+pad
}

func (m Model) Simulation() *dynamo.Simulation { return m.sim }
func (m Model) Cursor() float64                { return m.cursor }

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.handleKey(msg.String())
	case TickMsg:
		if m.running {
			m.advance(m.stepsPerFrame)
		}
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m *Model) handleKey(key string) {
	m.status = ""
	span := m.span()
	switch key {
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "left", "h":
		m.moveCursor(-span / 100)
	case "right", "l":
		m.moveCursor(span / 100)
	case "H":
		m.moveCursor(-span / 10)
	case "L":
		m.moveCursor(span / 10)
	case "d", "enter":
		if m.sim.Dragging() {
			m.sim.EndDrag()
		} else {
			m.sim.StartDrag()
			m.report(m.sim.SetCursor(m.cursor))
		}
	case "p":
		m.report(m.sim.SetTargetPosition(m.cursor))
	case "P":
		m.sim.EnablePositionControl(!m.sim.Params().Position.Enabled)
	case "s":
		sp := m.sim.Params().Speed
		m.report(m.sim.SetSpeedTarget(m.cursor, sp.MaxSpeed, sp.ZoneWidth))
	case "S":
		m.sim.EnableSpeedControl(!m.sim.Params().Speed.Enabled)
	case "c":
		m.sim.ClearTargetPosition()
		m.sim.ClearSpeedTarget()
	case "i":
		mode := dynamo.ModeImpedance
		if m.sim.Params().Mode == dynamo.ModeImpedance {
			mode = dynamo.ModeStandard
		}
		m.report(m.sim.SetMode(mode))
	case "f":
		m.sim.EnableFriction(!m.sim.Params().FrictionEnabled)
	case "t":
		NextTheme()
	case "+", "=":
		m.stepsPerFrame = min(m.stepsPerFrame*2, maxStepsFrame)
	case "-", "_":
		m.stepsPerFrame = max(m.stepsPerFrame/2, 1)
	case "?":
		m.showHelp = !m.showHelp
	}
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

func (m *Model) span() float64 {
	b := m.sim.Params().Bounds
	return b.Max - b.Min
}

// moveCursor keeps the cursor inside the bounds and forwards it to the
// simulation while dragging.
func (m *Model) moveCursor(dx float64) {
	m.cursor, _ = m.sim.Params().Bounds.Clamp(m.cursor + dx)
	if m.sim.Dragging() {
		m.report(m.sim.SetCursor(m.cursor))
	}
}

// advance steps the simulation n times and records one history sample.
func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		m.sim.Step()
	}
	if !m.sim.State().IsValid() {
		m.running = false
		m.status = dynamo.ErrInvalidState.Error()
		return
	}
	f := m.sim.Forces()
	m.forceHistory = push(m.forceHistory, f.Move)
	m.velocityHistory = push(m.velocityHistory, m.sim.Velocity())
	m.controlHistory = push(m.controlHistory, f.Control())
}

// push appends v, shifting out the oldest sample once the history is full.
func push(h []float64, v float64) []float64 {
	if len(h) < historyCapacity {
		return append(h, v)
	}
	copy(h, h[1:])
	h[len(h)-1] = v
	return h
}

// reset restores the start state and forgets the histories.
func (m *Model) reset() {
	m.sim.EndDrag()
	start := m.cfg.Simulation.Start
	m.report(m.sim.Reset(start.X))
	m.report(m.sim.SetState(start.X, start.Vx))
	m.cursor = m.sim.Position()
	m.forceHistory = m.forceHistory[:0]
	m.velocityHistory = m.velocityHistory[:0]
	m.controlHistory = m.controlHistory[:0]
}

// column maps a position to a sub-pixel column.
func (m *Model) column(x float64) int {
	b := m.sim.Params().Bounds
	pw, _ := m.canvas.Pixels()
	return int(float64(pw-1) * (x - b.Min) / (b.Max - b.Min))
}

func (m *Model) draw() {
	c := m.canvas
	c.Clear()
	c.Curve(m.surface, m.lo, m.hi)

	p := m.sim.Params()
	if p.Position.Target != nil {
		c.VLine(m.column(*p.Position.Target), 6)
	}
	if p.Speed.Target != nil {
		c.VLine(m.column(*p.Speed.Target), 4)
	}
	c.VLine(m.column(m.cursor), 2)

	x := m.sim.Position()
	col := m.column(x)
	row := c.Row(m.sim.Potential(x), m.lo, m.hi)
	for dx := -2; dx <= 2; dx++ {
		for dy := -4; dy <= -1; dy++ {
			c.Set(col+dx, row+dy)
		}
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	if m.canvas == nil {
		return ""
	}
	m.draw()
	canvasView := canvasStyle.Render(
		lipgloss.NewStyle().Foreground(CurrentTheme.Surface).Render(m.canvas.String()))

	st, f, p := m.sim.State(), m.sim.Forces(), m.sim.Params()
	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING"
	switch {
	case !m.running:
		status = "PAUSED"
	case st.Dragging:
		status = "DRAGGING"
	}
	s.WriteString(accentStyle().Render(status) + mutedStyle().Render(fmt.Sprintf("  x%d", m.stepsPerFrame)) + "\n\n")

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle().Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Position", fmt.Sprintf("%.2f", st.X))
	row("Velocity", fmt.Sprintf("%.2f", st.Vx))
	row("Cursor", fmt.Sprintf("%.2f", m.cursor))
	row("Haptic", fmt.Sprintf("%.2f", f.Haptic))
	row("Drag", fmt.Sprintf("%.2f", f.Drag))
	row("Control", fmt.Sprintf("%.2f", f.Control()))
	row("Friction", fmt.Sprintf("%.2f (%s)", f.Friction, f.Phase))
	s.WriteString(labelStyle.Render("Total") + ForceBar(f.Total, p.Drag.MaxForce, 20) + "\n\n")

	row("Mode", p.Mode.String())
	s.WriteString(labelStyle.Render("Position") + toggle(p.Position.Enabled) + targetLabel(p.Position.Target) + "\n")
	s.WriteString(labelStyle.Render("Speed") + toggle(p.Speed.Enabled) + targetLabel(p.Speed.Target) + "\n")
	s.WriteString(labelStyle.Render("Friction") + toggle(p.FrictionEnabled) + "\n")

	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("←→:Cursor D:Drag P/S:Target C:Clear\nI:Impedance F:Friction SP:Pause Q:Quit ?:Help"))
	statsView := statsStyle.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	views := []string{mainView, m.graphs()}
	if m.showHelp {
		views = append([]string{helpText}, views...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

func targetLabel(target *float64) string {
	if target == nil {
		return mutedStyle().Render("  no target")
	}
	return valueStyle().Render(fmt.Sprintf("  → %.1f", *target))
}

// graphs plots the rolling force, velocity and control force histories.
func (m Model) graphs() string {
	if len(m.forceHistory) < 2 {
		return ""
	}
	plot := func(data []float64, caption string) string {
		return asciigraph.Plot(data, asciigraph.Height(5), asciigraph.Width(28), asciigraph.Caption(caption))
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.Highlight).Padding(0, 2).Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			plot(m.forceHistory, "surface+drag force"), "  ",
			plot(m.velocityHistory, "velocity"), "  ",
			plot(m.controlHistory, "target force"),
		))
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  ←/→ h/l  - Move cursor (1%)         ║
║  H/L      - Move cursor (10%)        ║
║  D/Enter  - Grab / release object    ║
║  P        - Position target here     ║
║  Shift+P  - Toggle position control  ║
║  S        - Speed target here        ║
║  Shift+S  - Toggle speed control     ║
║  C        - Clear targets            ║
║  I        - Toggle impedance mode    ║
║  F        - Toggle friction          ║
║  +/-      - Simulation speed         ║
║  Space    - Pause/Resume             ║
║  R        - Reset                    ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunLive opens the live view for cfg.
func RunLive(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
