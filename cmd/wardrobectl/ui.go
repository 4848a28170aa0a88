package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/redmonkez12/wardrobe-api/internal/gate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

func printError(msg string) {
	fmt.Println(errorStyle.Render("Error: " + msg))
}

func printSuccess(msg string) {
	fmt.Println(successStyle.Render(msg))
}

func printField(label string, value any) {
	fmt.Printf("  %s %v\n", subtleStyle.Render(fmt.Sprintf("%-12s", label+":")), value)
}

// renderDecision colors a decision the way an operator reads it
func renderDecision(d gate.Decision) string {
	switch d.Kind {
	case gate.KindAllow:
		return successStyle.Render(d.String())
	case gate.KindRedirect:
		return warnStyle.Render(d.String())
	default:
		return subtleStyle.Render(d.String())
	}
}
