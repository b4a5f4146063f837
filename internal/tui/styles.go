package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	activeModeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveModeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	selectedDayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	todayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Underline(true)

	holidayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	insetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("84")).
			Bold(true)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
