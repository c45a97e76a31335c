package models

import (
	"time"

	"github.com/julianstephens/progresio/internal/constants"
)

// Goal is a discrete, non-recurring task with a deadline
type Goal struct {
	ID          string               `json:"id" validate:"required"`
	Title       string               `json:"title" validate:"required,max=200"`
	Description string               `json:"description,omitempty"`
	Status      constants.GoalStatus `json:"status" validate:"required,oneof=Active Completed"`
	Deadline    string               `json:"deadline" validate:"required,daykey"` // YYYY-MM-DD format
	FinishedAt  *time.Time           `json:"finished_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// IsCompleted reports whether the goal has been finished
func (g Goal) IsCompleted() bool {
	return g.Status == constants.GoalCompleted
}
