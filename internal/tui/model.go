package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/tracker"
)

// LogFormModel backs the huh form used to log a value.
type LogFormModel struct {
	Parameter models.Parameter
	Value     string
	Date      string
}

type Model struct {
	tracker  *tracker.Service
	state    constants.SessionState
	keys     KeyMap
	help     help.Model
	params   table.Model
	goals    table.Model
	progress progress.Model
	form     *huh.Form
	logForm  *LogFormModel

	overview tracker.Overview
	upcoming []models.Goal
	status   string
	err      error
	quitting bool
	width    int
	height   int
}

// overviewMsg carries a fresh load of everything the dashboard shows.
type overviewMsg struct {
	overview tracker.Overview
	upcoming []models.Goal
	err      error
}

// actionMsg reports the outcome of a write; a refresh follows it.
type actionMsg struct {
	status string
	err    error
}

func NewModel(svc *tracker.Service) Model {
	params := table.New(
		table.WithColumns([]table.Column{
			{Title: "Parameter", Width: 20},
			{Title: "Goal", Width: 12},
			{Title: "Today", Width: 12},
			{Title: "Streak", Width: 7},
			{Title: "Best", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	goals := table.New(
		table.WithColumns([]table.Column{
			{Title: "Due", Width: 11},
			{Title: "Goal", Width: 36},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return Model{
		tracker:  svc,
		state:    constants.StateDashboard,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		params:   params,
		goals:    goals,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	svc := m.tracker
	return func() tea.Msg {
		ov, err := svc.Overview(context.Background())
		if err != nil {
			return overviewMsg{err: err}
		}
		upcoming, err := svc.UpcomingGoals()
		return overviewMsg{overview: ov, upcoming: upcoming, err: err}
	}
}

func (m *Model) applyOverview(msg overviewMsg) {
	if msg.err != nil {
		m.err = msg.err
		return
	}
	m.err = nil
	m.overview = msg.overview
	m.upcoming = msg.upcoming

	rows := make([]table.Row, 0, len(m.overview.Parameters))
	for _, st := range m.overview.Parameters {
		today := "-"
		if st.TodaySuccess != nil {
			today = mark(*st.TodaySuccess) + " " + st.TodayValue
		}
		rows = append(rows, table.Row{
			st.Parameter.Name,
			st.Target,
			today,
			fmt.Sprintf("%d", st.Streak.CurrentStreak),
			fmt.Sprintf("%d", st.Streak.LongestStreak),
		})
	}
	m.params.SetRows(rows)

	goalRows := make([]table.Row, 0, len(m.upcoming))
	for _, g := range m.upcoming {
		goalRows = append(goalRows, table.Row{g.Deadline, g.Title})
	}
	m.goals.SetRows(goalRows)
}

// selectedParameter returns the parameter under the cursor.
func (m Model) selectedParameter() (models.Parameter, bool) {
	i := m.params.Cursor()
	if i < 0 || i >= len(m.overview.Parameters) {
		return models.Parameter{}, false
	}
	return m.overview.Parameters[i].Parameter, true
}

// selectedGoal returns the goal under the cursor.
func (m Model) selectedGoal() (models.Goal, bool) {
	i := m.goals.Cursor()
	if i < 0 || i >= len(m.upcoming) {
		return models.Goal{}, false
	}
	return m.upcoming[i], true
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDashboard:
		keys = append(keys, m.keys.Log)
	case constants.StateGoals:
		keys = append(keys, m.keys.Complete)
	case constants.StateLogEntry:
		keys = []key.Binding{m.keys.Back}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}
	actions := []key.Binding{m.keys.Log, m.keys.Complete, m.keys.Back}
	return [][]key.Binding{global, navigation, actions}
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
