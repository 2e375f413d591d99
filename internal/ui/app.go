package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238"))

	activeButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("35"))

	disabledButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("243")).
				Background(lipgloss.Color("236"))
)

// Run runs an overlay full screen until it quits and returns its final state
func Run[M tea.Model](m M) (M, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return m, fmt.Errorf("error running console: %w", err)
	}

	out, ok := final.(M)
	if !ok {
		return m, fmt.Errorf("unexpected console state %T", final)
	}
	return out, nil
}

// Messages
type errorMsg struct{ err error }

func (e errorMsg) Error() string {
	return e.err.Error()
}

// frame lays out the common overlay chrome around a body
func frame(title, status, body, errText, help string) string {
	parts := []string{
		titleStyle.Render(title),
		statusStyle.Render(status),
		body,
	}
	if errText != "" {
		parts = append(parts, errorStyle.Render(errText))
	}
	parts = append(parts, statusStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderButton(text string, active, disabled bool) string {
	switch {
	case disabled:
		return disabledButtonStyle.Render(text)
	case active:
		return activeButtonStyle.Render(text)
	default:
		return buttonStyle.Render(text)
	}
}
