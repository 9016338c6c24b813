package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5FD068"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func rule() string {
	return labelStyle.Render(strings.Repeat("=", 30))
}
