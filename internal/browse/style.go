package browse

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aidanlsb/cmdref/internal/ui"
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6C7086")).
			Padding(0, 1)

	listStyle = lipgloss.NewStyle().PaddingRight(2)

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#6C7086")).
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().Bold(true)
)

func selectedStyle() lipgloss.Style {
	return ui.AccentBold
}
