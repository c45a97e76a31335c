package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/storage/sqlite"
	"github.com/julianstephens/progresio/internal/tracker"
)

func setupModel(t *testing.T) (Model, *tracker.Service) {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	require.NoError(t, store.SaveSettings(settings))

	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := tracker.New(store, tracker.WithClock(func() time.Time { return now }))
	return NewModel(svc), svc
}

// load runs Init and feeds the result back into the model.
func load(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.Init()()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_InitLoadsOverview(t *testing.T) {
	m, svc := setupModel(t)
	_, err := svc.AddParameter("Water", constants.ParameterNumber, constants.OperatorGreaterEqual, "8")
	require.NoError(t, err)
	_, err = svc.LogEntry("Water", "2026-01-15", "9")
	require.NoError(t, err)
	_, err = svc.AddGoal("Ship it", "2026-01-16", "")
	require.NoError(t, err)

	m = load(t, m)

	require.NoError(t, m.err)
	assert.Equal(t, "2026-01-15", m.overview.Today)
	require.Len(t, m.params.Rows(), 1)
	assert.Equal(t, "Water", m.params.Rows()[0][0])
	assert.Equal(t, "✓ 9", m.params.Rows()[0][2])
	require.Len(t, m.goals.Rows(), 1)
	assert.Equal(t, "Ship it", m.goals.Rows()[0][1])

	view := m.View()
	assert.Contains(t, view, "Today 2026-01-15")
	assert.Contains(t, view, "Water")
}

func TestModel_TabSwitching(t *testing.T) {
	m, _ := setupModel(t)
	m = load(t, m)

	tests := []struct {
		key  string
		want constants.SessionState
	}{
		{"tab", constants.StateGoals},
		{"tab", constants.StateDashboard},
		{"shift+tab", constants.StateGoals},
		{"shift+tab", constants.StateDashboard},
	}
	for _, tt := range tests {
		updated, _ := m.Update(keyMsg(tt.key))
		m = updated.(Model)
		assert.Equal(t, tt.want, m.state, "after %s", tt.key)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := setupModel(t)
	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(Model)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModel_LogFormOpenAndCancel(t *testing.T) {
	m, svc := setupModel(t)
	_, err := svc.AddParameter("Water", constants.ParameterNumber, constants.OperatorGreaterEqual, "8")
	require.NoError(t, err)
	m = load(t, m)

	updated, _ := m.Update(keyMsg("l"))
	m = updated.(Model)
	require.Equal(t, constants.StateLogEntry, m.state)
	require.NotNil(t, m.form)
	assert.Equal(t, "Water", m.logForm.Parameter.Name)
	assert.Equal(t, "2026-01-15", m.logForm.Date)

	updated, _ = m.Update(keyMsg("esc"))
	m = updated.(Model)
	assert.Equal(t, constants.StateDashboard, m.state)
	assert.Nil(t, m.form)
}

func TestModel_LogWithoutParametersIsNoop(t *testing.T) {
	m, _ := setupModel(t)
	m = load(t, m)

	updated, _ := m.Update(keyMsg("l"))
	m = updated.(Model)
	assert.Equal(t, constants.StateDashboard, m.state)
	assert.Contains(t, m.View(), "No parameters yet")
}

func TestModel_SubmitLog(t *testing.T) {
	m, svc := setupModel(t)
	p, err := svc.AddParameter("Water", constants.ParameterNumber, constants.OperatorGreaterEqual, "8")
	require.NoError(t, err)
	m = load(t, m)

	msg := m.submitLog(LogFormModel{Parameter: p, Value: "3", Date: "2026-01-14"})()
	updated, cmd := m.Update(msg)
	m = updated.(Model)

	require.NoError(t, m.err)
	assert.Equal(t, "Logged Water = 3 for 2026-01-14", m.status)
	require.NotNil(t, cmd, "a successful write triggers a refresh")

	_, rows, err := svc.History("Water", 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Success)
}

func TestModel_SubmitLogInvalidValue(t *testing.T) {
	m, svc := setupModel(t)
	p, err := svc.AddParameter("Water", constants.ParameterNumber, constants.OperatorGreaterEqual, "8")
	require.NoError(t, err)

	msg := m.submitLog(LogFormModel{Parameter: p, Value: "lots", Date: "2026-01-15"})()
	updated, cmd := m.Update(msg)
	m = updated.(Model)

	assert.ErrorIs(t, m.err, tracker.ErrInvalidValue)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Error:")
}

func TestModel_CompleteGoal(t *testing.T) {
	m, svc := setupModel(t)
	_, err := svc.AddGoal("Ship it", "2026-01-16", "")
	require.NoError(t, err)
	m = load(t, m)

	updated, _ := m.Update(keyMsg("tab"))
	m = updated.(Model)
	updated, cmd := m.Update(keyMsg("c"))
	m = updated.(Model)
	require.NotNil(t, cmd)

	updated, cmd = m.Update(cmd())
	m = updated.(Model)
	assert.Equal(t, "Completed goal: Ship it", m.status)
	require.NotNil(t, cmd)

	m = func() Model { u, _ := m.Update(cmd()); return u.(Model) }()
	assert.Empty(t, m.goals.Rows())
	assert.Equal(t, 1, m.overview.Goals.Finished)
}

func TestModel_WindowResize(t *testing.T) {
	m, _ := setupModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 200, Height: 50})
	m = updated.(Model)

	assert.Equal(t, 200, m.width)
	assert.Equal(t, 60, m.progress.Width)

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 25, Height: 50})
	m = updated.(Model)
	assert.Equal(t, 10, m.progress.Width)
}
