package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/suite"
)

type ModelTestSuite struct {
	suite.Suite
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelTestSuite))
}

func submit(m Model, value string) Model {
	m.input.SetValue(value)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	return updated.(Model)
}

func (suite *ModelTestSuite) lastTick() time.Time {
	return time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC)
}

func (suite *ModelTestSuite) TestHappyPath() {
	m := NewModel(suite.lastTick())

	m = submit(m, "2024-01-01 09:30:00.000")
	suite.Equal(StateEndInput, m.state)
	suite.Empty(m.errMsg)

	m = submit(m, "2024-01-01 10:30:00.000")
	suite.Equal(StateIntervalInput, m.state)

	m = submit(m, "5m")
	suite.Equal(StateDone, m.state)
	suite.Equal(int64(300), m.IntervalSeconds())
	suite.Equal("2024-01-01 09:30:00.000", m.Window().Start.Format("2006-01-02 15:04:05.000"))
	suite.False(m.Aborted())
}

func (suite *ModelTestSuite) TestInvalidStartRePrompts() {
	m := NewModel(suite.lastTick())

	m = submit(m, "2024-01-01")
	suite.Equal(StateStartInput, m.state)
	suite.NotEmpty(m.errMsg)

	// A correct value clears the error and advances.
	m = submit(m, "2024-01-01 09:30:00.000")
	suite.Equal(StateEndInput, m.state)
	suite.Empty(m.errMsg)
}

func (suite *ModelTestSuite) TestStartMustBeBeforeEnd() {
	m := NewModel(suite.lastTick())
	m = submit(m, "2024-01-01 10:00:00.000")

	// Equal end is rejected: the window must be strictly ordered.
	m = submit(m, "2024-01-01 10:00:00.000")
	suite.Equal(StateEndInput, m.state)
	suite.NotEmpty(m.errMsg)

	m = submit(m, "2024-01-01 09:00:00.000")
	suite.Equal(StateEndInput, m.state)
	suite.NotEmpty(m.errMsg)
}

func (suite *ModelTestSuite) TestEndBeyondLastTickRePrompts() {
	m := NewModel(suite.lastTick())
	m = submit(m, "2024-01-01 09:30:00.000")

	m = submit(m, "2024-01-01 16:00:00.001")
	suite.Equal(StateEndInput, m.state)
	suite.NotEmpty(m.errMsg)

	m = submit(m, "2024-01-01 16:00:00.000")
	suite.Equal(StateIntervalInput, m.state)
}

func (suite *ModelTestSuite) TestInvalidIntervalRePrompts() {
	m := NewModel(suite.lastTick())
	m = submit(m, "2024-01-01 09:30:00.000")
	m = submit(m, "2024-01-01 10:30:00.000")

	for _, bad := range []string{"", "0s", "abc", "5x"} {
		m = submit(m, bad)
		suite.Equal(StateIntervalInput, m.state)
		suite.NotEmpty(m.errMsg)
	}

	m = submit(m, "1h30m")
	suite.Equal(StateDone, m.state)
	suite.Equal(int64(5400), m.IntervalSeconds())
}

func (suite *ModelTestSuite) TestEscAborts() {
	m := NewModel(suite.lastTick())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	suite.True(updated.(Model).Aborted())
}
