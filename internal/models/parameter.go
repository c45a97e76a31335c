package models

import (
	"time"

	"github.com/julianstephens/progresio/internal/constants"
)

// Parameter is a recurring goal definition the user logs a value against once per day
type Parameter struct {
	ID           string                  `json:"id" validate:"required"`
	Name         string                  `json:"name" validate:"required,max=120"`
	Type         constants.ParameterType `json:"type" validate:"required,paramtype"`
	GoalOperator constants.GoalOperator  `json:"goal_operator" validate:"required,goaloperator"`
	GoalValue    string                  `json:"goal_value" validate:"required"`
	CreatedAt    time.Time               `json:"created_at"`
	DeletedAt    *time.Time              `json:"deleted_at,omitempty"`
}

// EffectiveOperator returns the operator actually applied during evaluation.
// Boolean parameters always compare for equality.
func (p Parameter) EffectiveOperator() constants.GoalOperator {
	if p.Type == constants.ParameterBoolean {
		return constants.OperatorEqual
	}
	return p.GoalOperator
}

// Describe returns the target as a short human-readable condition, e.g. ">= 8"
func (p Parameter) Describe() string {
	return string(p.EffectiveOperator()) + " " + p.GoalValue
}
