package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/hapticsim/internal/config"
)

var presetInfo = map[string]string{
	"default":   "hill in the middle",
	"pit":       "roll into a pit",
	"bumps":     "mixed obstacles",
	"friction":  "sticky patches",
	"speed":     "speed target",
	"position":  "position target",
	"impedance": "virtual spring",
	"waves":     "rolling surface",
}

const (
	stateMenu = iota
	stateSim
)

// Menu picks a preset and then hands over to its live view. Esc in the
// live view returns to the menu.
type Menu struct {
	state, cursor int
	presets       []string
	err           error
	live          Model
}

func NewMenu() *Menu {
	return &Menu{state: stateMenu, presets: config.ListPresets()}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		live, err := NewModel(config.GetPreset(m.presets[m.cursor]))
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live, m.state, m.err = live, stateSim, nil
		return m, live.Init()
	}
	return m, nil
}

func (m Menu) View() string {
	if m.state == stateSim {
		return m.live.View()
	}
	key, sub := accentStyle(), mutedStyle()
	var b strings.Builder
	b.WriteString("\n\n    " + headerStyle().Render("HAPTICSIM") + "\n    " + sub.Render("1-d haptic surface simulator") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", key.Render("▸"), valueStyle().Bold(true).Render(fmt.Sprintf("%-12s", name)), lipgloss.NewStyle().Foreground(CurrentTheme.Object).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", sub.Render(fmt.Sprintf("  %-12s", name)), sub.Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(CurrentTheme.Warning).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" select  ") + key.Render("esc") + sub.Render(" back  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewMenu(), tea.WithAltScreen()).Run()
	return err
}
