package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// NewPromptInput creates the text input shared by all prompt states.
func NewPromptInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 48

	return ti
}

// promptTitle returns the heading for the current prompt state.
func (m Model) promptTitle() string {
	switch m.state {
	case StateStartInput:
		return "Enter start time (e.g. 2024-09-19 20:47:02.535)"
	case StateEndInput:
		return "Enter end time (e.g. 2024-09-20 20:47:02.535)"
	case StateIntervalInput:
		return "Enter a bar interval (e.g. 1h30m)"
	default:
		return ""
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.state == StateDone || m.aborted {
		return ""
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.promptTitle()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter: confirm • esc: quit"))
	b.WriteString("\n")

	return b.String()
}
