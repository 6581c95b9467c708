package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/hapticsim/internal/config"
	"github.com/san-kum/hapticsim/internal/dynamo"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func newModel(t *testing.T, preset string) Model {
	t.Helper()
	m, err := NewModel(config.GetPreset(preset))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestCanvas(t *testing.T) {
	c := NewCanvas(2, 1)
	if w, h := c.Pixels(); w != 4 || h != 4 {
		t.Fatalf("expected 4x4 pixels, got %dx%d", w, h)
	}
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(10, 10)
	if c.Grid[0][0] != 0x2801 || c.Grid[0][1] != 0x2880 {
		t.Errorf("unexpected cells %U %U", c.Grid[0][0], c.Grid[0][1])
	}
	c.Clear()
	if c.String() != "\u2800\u2800\n" {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestCanvas_Row(t *testing.T) {
	c := NewCanvas(4, 2)
	tests := []struct {
		v    float64
		want int
	}{
		{10, 0},
		{0, 7},
		{5, 3},
	}
	for _, tt := range tests {
		if got := c.Row(tt.v, 0, 10); got != tt.want {
			t.Errorf("Row(%v): expected %d, got %d", tt.v, tt.want, got)
		}
	}
	if got := c.Row(1, 5, 5); got != 4 {
		t.Errorf("degenerate range: expected middle row 4, got %d", got)
	}
}

func TestModel_Drag(t *testing.T) {
	m := newModel(t, "pit")
	start := m.Simulation().Position()

	m = press(t, m, "right", "right")
	if m.Cursor() <= start {
		t.Fatalf("expected cursor right of %v, got %v", start, m.Cursor())
	}
	m = press(t, m, "d")
	if !m.Simulation().Dragging() {
		t.Fatal("expected dragging")
	}
	if x, ok := m.Simulation().Cursor(); !ok || x != m.Cursor() {
		t.Errorf("expected simulation cursor %v, got %v %v", m.Cursor(), x, ok)
	}
	m = press(t, m, "d")
	if m.Simulation().Dragging() {
		t.Error("expected drag released")
	}
	if _, ok := m.Simulation().Cursor(); ok {
		t.Error("expected cursor cleared on release")
	}
}

func TestModel_CursorStaysInBounds(t *testing.T) {
	m := newModel(t, "default")
	for i := 0; i < 20; i++ {
		m = press(t, m, "H")
	}
	if m.Cursor() != config.DefaultXMin {
		t.Errorf("expected cursor at %v, got %v", config.DefaultXMin, m.Cursor())
	}
}

func TestModel_Toggles(t *testing.T) {
	m := newModel(t, "default")

	m = press(t, m, "p")
	if p := m.Simulation().Params().Position; p.Target == nil || *p.Target != m.Cursor() {
		t.Errorf("expected position target at the cursor, got %v", p.Target)
	}
	m = press(t, m, "P", "S", "f", "i")
	p := m.Simulation().Params()
	if !p.Position.Enabled || !p.Speed.Enabled || !p.FrictionEnabled {
		t.Errorf("expected position, speed and friction on, got %+v", p)
	}
	if p.Mode != dynamo.ModeImpedance {
		t.Errorf("expected impedance mode, got %v", p.Mode)
	}

	m = press(t, m, "c", "i")
	p = m.Simulation().Params()
	if p.Position.Target != nil || p.Speed.Target != nil {
		t.Error("expected targets cleared")
	}
	if p.Mode != dynamo.ModeStandard {
		t.Errorf("expected standard mode, got %v", p.Mode)
	}
}

func TestModel_TickAndReset(t *testing.T) {
	m := newModel(t, "waves")
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}
	if m.Simulation().Steps() != 2 {
		t.Errorf("expected 2 steps per frame, got %d", m.Simulation().Steps())
	}
	if len(m.forceHistory) != 1 {
		t.Errorf("expected one history sample, got %d", len(m.forceHistory))
	}

	m = press(t, m, " ")
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if m.Simulation().Steps() != 2 {
		t.Error("paused view must not step")
	}

	m = press(t, m, "r")
	if m.Simulation().Steps() != 0 || m.Simulation().Position() != 80 || m.Simulation().Velocity() != 60 {
		t.Errorf("expected reset to the start state, got %+v", m.Simulation().State())
	}
	if len(m.forceHistory) != 0 {
		t.Error("expected histories cleared")
	}
}

func TestPush(t *testing.T) {
	h := make([]float64, 0, historyCapacity)
	for i := 0; i < historyCapacity+10; i++ {
		h = push(h, float64(i))
	}
	if len(h) != historyCapacity || cap(h) != historyCapacity {
		t.Fatalf("expected len and cap %d, got %d/%d", historyCapacity, len(h), cap(h))
	}
	if h[0] != 10 || h[len(h)-1] != historyCapacity+9 {
		t.Errorf("expected window 10..%d, got %v..%v", historyCapacity+9, h[0], h[len(h)-1])
	}
}

func TestModel_View(t *testing.T) {
	m := newModel(t, "friction")
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	view := m.View()
	for _, want := range []string{"FRICTION", "Position", "target force"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	_, cmd := newModel(t, "default").Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestMenu(t *testing.T) {
	var m tea.Model = NewMenu()
	if !strings.Contains(m.View(), "impedance") {
		t.Error("expected presets listed")
	}

	m, _ = m.Update(key("j"))
	m, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Error("expected live view to start ticking")
	}
	menu := m.(Menu)
	if menu.state != stateSim || menu.live.name != config.ListPresets()[1] {
		t.Fatalf("expected live view of %s, got state %d name %s", config.ListPresets()[1], menu.state, menu.live.name)
	}

	m, _ = m.Update(key("esc"))
	if m.(Menu).state != stateMenu {
		t.Error("expected esc to return to the menu")
	}
}

func TestForceBar(t *testing.T) {
	if got := ForceBar(0, 10, 10); !strings.Contains(got, "│") || strings.Contains(got, "█") {
		t.Errorf("expected an empty bar, got %q", got)
	}
	if got := ForceBar(100, 10, 10); strings.Count(got, "█") != 5 {
		t.Errorf("expected a saturated half bar, got %q", got)
	}
}

func TestNextTheme(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)
	seen := map[string]bool{}
	for range Themes {
		seen[CurrentTheme.Name] = true
		NextTheme()
	}
	if len(seen) != len(Themes) {
		t.Errorf("expected to cycle through %d themes, saw %v", len(Themes), seen)
	}
}
