package main

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rxtech-lab/tickforge/internal/series"
	"github.com/rxtech-lab/tickforge/internal/timefmt"
)

// Prompt states.
const (
	StateStartInput = iota
	StateEndInput
	StateIntervalInput
	StateDone
)

// Model is the Bubble Tea model for the interactive prompt flow that
// collects the time window and bucket width. Invalid input keeps the user
// on the same prompt with an error line, matching the re-prompt contract.
type Model struct {
	state    int
	input    textinput.Model
	lastTick time.Time

	start           time.Time
	end             time.Time
	intervalSeconds int64

	errMsg  string
	aborted bool
}

// NewModel creates a prompt model. lastTick is the latest validated tick
// timestamp and bounds the accepted window end.
func NewModel(lastTick time.Time) Model {
	return Model{
		state:    StateStartInput,
		input:    NewPromptInput(),
		lastTick: lastTick,
	}
}

// Window returns the collected time window.
func (m Model) Window() series.Window {
	return series.Window{Start: m.start, End: m.end}
}

// IntervalSeconds returns the collected bucket width in seconds.
func (m Model) IntervalSeconds() int64 {
	return m.intervalSeconds
}

// Aborted reports whether the user quit before completing the prompts.
func (m Model) Aborted() bool {
	return m.aborted
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.input.Focus()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.aborted = true

			return m, tea.Quit
		case "enter":
			return m.handleSubmit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.state {
	case StateStartInput:
		start, err := timefmt.ParseTimestamp(value)
		if err != nil {
			m.errMsg = "Invalid start time format. Try again."

			return m, nil
		}

		m.start = start
		m.advance(StateEndInput)

	case StateEndInput:
		end, err := timefmt.ParseTimestamp(value)
		if err != nil {
			m.errMsg = "Invalid end time format. Try again."

			return m, nil
		}

		if !m.start.Before(end) {
			m.errMsg = "Start time must be before end time. Try again."

			return m, nil
		}

		if end.After(m.lastTick) {
			m.errMsg = "End time must be within available data range. Try again."

			return m, nil
		}

		m.end = end
		m.advance(StateIntervalInput)

	case StateIntervalInput:
		seconds, err := timefmt.ParseInterval(value)
		if err != nil {
			m.errMsg = "Invalid interval. Please try again."

			return m, nil
		}

		m.intervalSeconds = seconds
		m.state = StateDone

		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) advance(state int) {
	m.state = state
	m.errMsg = ""
	m.input.SetValue("")
}
