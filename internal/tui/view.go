package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/progresio/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateGoals:
		content = m.viewGoals()
	case constants.StateLogEntry:
		content = docStyle.Render(m.form.View())
	}

	parts := []string{m.viewTabs(), content}
	if m.err != nil {
		parts = append(parts, errorStyle.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Goals"} {
		active := m.state == constants.SessionState(i) ||
			(m.state == constants.StateLogEntry && i == int(constants.StateDashboard))
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDashboard() string {
	ov := m.overview
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Today %s", ov.Today)))
	b.WriteString("\n\n")
	if len(ov.Parameters) == 0 {
		b.WriteString(dimStyle.Render("No parameters yet. Add one with 'progresio parameter add'."))
	} else {
		b.WriteString(m.params.View())
	}

	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("Week %s to %s", ov.Week.Start, ov.Week.End)))
	b.WriteString("\n")
	if ov.WeeklyPercentage != nil {
		b.WriteString(m.progress.ViewAs(*ov.WeeklyPercentage / 100))
		b.WriteString(fmt.Sprintf(" %.1f%%", *ov.WeeklyPercentage))
	} else {
		b.WriteString(dimStyle.Render("Nothing to measure yet"))
	}
	b.WriteString(fmt.Sprintf("\nGoals due this week: %d/%d finished", ov.Goals.Finished, ov.Goals.Total))

	return docStyle.Render(b.String())
}

func (m Model) viewGoals() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Upcoming goals"))
	b.WriteString("\n\n")
	if len(m.upcoming) == 0 {
		b.WriteString(dimStyle.Render("No active goals. Add one with 'progresio goal add'."))
	} else {
		b.WriteString(m.goals.View())
	}
	return docStyle.Render(b.String())
}
