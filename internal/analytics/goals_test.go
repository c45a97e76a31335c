package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
)

func goal(id, deadline string, status constants.GoalStatus) models.Goal {
	return models.Goal{ID: id, Title: "goal " + id, Deadline: deadline, Status: status}
}

func TestWeeklyGoalCompletion(t *testing.T) {
	tests := []struct {
		name  string
		goals []models.Goal
		want  GoalCompletion
	}{
		{
			name: "no goals",
			want: GoalCompletion{},
		},
		{
			name: "no goals due this week",
			goals: []models.Goal{
				goal("g1", "2026-01-05", constants.GoalCompleted),
				goal("g2", "2026-01-19", constants.GoalActive),
			},
			want: GoalCompletion{},
		},
		{
			name: "mixed statuses on week edges",
			goals: []models.Goal{
				goal("g1", "2026-01-12", constants.GoalCompleted),
				goal("g2", "2026-01-18", constants.GoalActive),
				goal("g3", "2026-01-15", constants.GoalCompleted),
				goal("g4", "2026-01-20", constants.GoalCompleted),
			},
			want: GoalCompletion{Finished: 2, Total: 3},
		},
		{
			name: "malformed deadline skipped",
			goals: []models.Goal{
				goal("g1", "2026-01-1", constants.GoalCompleted),
				goal("g2", "2026-01-13", constants.GoalActive),
			},
			want: GoalCompletion{Finished: 0, Total: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeeklyGoalCompletion(tt.goals, testWeek))
		})
	}
}
