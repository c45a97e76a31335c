package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/progresio/internal/constants"
)

const tabCount = 2

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(60, max(10, msg.Width-20))
		return m, nil

	case overviewMsg:
		m.applyOverview(msg)
		return m, nil

	case actionMsg:
		m.status = msg.status
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.refresh()
	}

	if m.state == constants.StateLogEntry {
		return m.updateLogForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.refresh()
		}

		switch m.state {
		case constants.StateDashboard:
			if key.Matches(msg, m.keys.Log) {
				return m.startLog()
			}
		case constants.StateGoals:
			if key.Matches(msg, m.keys.Complete) {
				return m, m.completeSelectedGoal()
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		m.params, cmd = m.params.Update(msg)
	case constants.StateGoals:
		m.goals, cmd = m.goals.Update(msg)
	}
	return m, cmd
}

func (m Model) startLog() (tea.Model, tea.Cmd) {
	p, ok := m.selectedParameter()
	if !ok {
		return m, nil
	}
	m.logForm = &LogFormModel{Parameter: p, Date: m.overview.Today}
	for _, st := range m.overview.Parameters {
		if st.Parameter.ID == p.ID && st.LoggedToday {
			m.logForm.Value = st.TodayValue
		}
	}
	m.form = NewLogForm(m.logForm)
	m.state = constants.StateLogEntry
	return m, m.form.Init()
}

func (m Model) updateLogForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		fm := *m.logForm
		m.closeForm()
		return m, m.submitLog(fm)
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.logForm = nil
	m.state = constants.StateDashboard
}

func (m Model) submitLog(fm LogFormModel) tea.Cmd {
	svc := m.tracker
	return func() tea.Msg {
		e, err := svc.LogEntry(fm.Parameter.Name, fm.Date, fm.Value)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: fmt.Sprintf("Logged %s = %s for %s", fm.Parameter.Name, e.Value, e.Day)}
	}
}

func (m Model) completeSelectedGoal() tea.Cmd {
	g, ok := m.selectedGoal()
	if !ok {
		return nil
	}
	svc := m.tracker
	return func() tea.Msg {
		if _, err := svc.CompleteGoals(g.ID); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "Completed goal: " + g.Title}
	}
}
