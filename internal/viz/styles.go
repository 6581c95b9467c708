package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Surface).Bold(true).MarginBottom(1)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
}

func accentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

// toggle renders an on/off flag.
func toggle(on bool) string {
	if on {
		return lipgloss.NewStyle().Foreground(CurrentTheme.Highlight).Bold(true).Render("on")
	}
	return mutedStyle().Render("off")
}

// ForceBar renders v as a bar centred on zero, saturating at ±limit.
func ForceBar(v, limit float64, width int) string {
	half := width / 2
	if limit <= 0 || half == 0 {
		return strings.Repeat("─", width)
	}
	n := int(float64(half) * min(1, abs(v)/limit))
	left, right := strings.Repeat("─", half), strings.Repeat("─", width-half)
	bar := lipgloss.NewStyle().Foreground(CurrentTheme.Warning)
	if v < 0 {
		left = strings.Repeat("─", half-n) + bar.Render(strings.Repeat("█", n))
	} else {
		right = bar.Render(strings.Repeat("█", n)) + strings.Repeat("─", width-half-n)
	}
	return left + "│" + right
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
