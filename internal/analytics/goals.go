package analytics

import (
	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/utils"
)

// GoalCompletion counts the goals due within a week and how many are done.
type GoalCompletion struct {
	Finished int `json:"finished"`
	Total    int `json:"total"`
}

// WeeklyGoalCompletion counts goals whose deadline falls within week.
func WeeklyGoalCompletion(goals []models.Goal, week Week) GoalCompletion {
	var gc GoalCompletion
	for _, g := range goals {
		if !utils.IsDayKey(g.Deadline) || !week.Contains(g.Deadline) {
			continue
		}
		gc.Total++
		if g.IsCompleted() {
			gc.Finished++
		}
	}
	return gc
}
