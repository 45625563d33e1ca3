package tui

import "github.com/charmbracelet/lipgloss"

// Pane and chrome styles. Card and message styles come from shell.Styles.
var (
	focusedBorderColor = lipgloss.Color("#04B575")
	blurredBorderColor = lipgloss.Color("#626262")

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	InputTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	SidebarTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Bold(true).
				Padding(0, 1)

	ChipsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func paneStyle(focused bool, width, height int) lipgloss.Style {
	border := blurredBorderColor
	if focused {
		border = focusedBorderColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width, 1)).
		Height(max(height, 1))
}
