package tui

import (
	"github.com/charmbracelet/lipgloss"

	"kitchen-dashboard/internal/classify"
)

var (
	colorAccent    = lipgloss.Color("#F5A623")
	colorPrimary   = lipgloss.Color("#4A90E2")
	colorSecondary = lipgloss.Color("#7ED321")
	colorMuted     = lipgloss.Color("#9B9B9B")
	colorUrgent    = lipgloss.Color("#E5484D")
	colorText      = lipgloss.Color("#EDEDED")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	dimStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), false, false, true, false)

	queueStyle = lipgloss.NewStyle().Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	errorTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorUrgent)
	staleStyle      = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
	urgentBadge     = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorUrgent).Padding(0, 1)
	pulseStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)

func classColor(c classify.VisualClass) lipgloss.Color {
	switch c {
	case classify.ClassAccent:
		return colorAccent
	case classify.ClassPrimary:
		return colorPrimary
	case classify.ClassSecondary:
		return colorSecondary
	default:
		return colorMuted
	}
}

func tierColor(t classify.Tier) lipgloss.Color {
	switch t {
	case classify.TierHigh:
		return colorUrgent
	case classify.TierBusy:
		return colorAccent
	case classify.TierNormal:
		return colorSecondary
	default:
		return colorMuted
	}
}
