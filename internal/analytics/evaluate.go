package analytics

import (
	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
)

// Target is a parsed goal condition. Build one per parameter with NewTarget
// and reuse it for every entry of that parameter.
type Target struct {
	typ  constants.ParameterType
	op   constants.GoalOperator
	goal Value
}

// NewTarget parses the goal value once for repeated evaluation.
func NewTarget(typ constants.ParameterType, op constants.GoalOperator, goalValue string) Target {
	return Target{typ: typ, op: op, goal: ParseValue(typ, goalValue)}
}

// TargetFor builds the Target of a parameter.
func TargetFor(p models.Parameter) Target {
	return NewTarget(p.Type, p.GoalOperator, p.GoalValue)
}

// Met reports whether entryValue satisfies the target. Malformed values on
// either side, unknown types and unknown operators all count as not met.
func (t Target) Met(entryValue string) bool {
	if !t.goal.Valid() {
		return false
	}
	entry := ParseValue(t.typ, entryValue)
	if !entry.Valid() {
		return false
	}

	switch t.goal.Kind {
	case KindNumber:
		return compareNumbers(t.op, entry.Number, t.goal.Number)
	case KindBool:
		// The stored operator is irrelevant for booleans.
		return entry.Bool == t.goal.Bool
	case KindText:
		return entry.Text == t.goal.Text
	}
	return false
}

// Evaluate decides whether a single logged value satisfies a goal.
func Evaluate(typ constants.ParameterType, op constants.GoalOperator, goalValue, entryValue string) bool {
	return NewTarget(typ, op, goalValue).Met(entryValue)
}

// KnownOperator reports whether op is one of the supported comparison operators.
func KnownOperator(op constants.GoalOperator) bool {
	for _, known := range constants.GoalOperators {
		if op == known {
			return true
		}
	}
	return false
}

func compareNumbers(op constants.GoalOperator, entry, goal float64) bool {
	switch op {
	case constants.OperatorGreaterEqual:
		return entry >= goal
	case constants.OperatorLessEqual:
		return entry <= goal
	case constants.OperatorEqual:
		return entry == goal
	case constants.OperatorGreater:
		return entry > goal
	case constants.OperatorLess:
		return entry < goal
	default:
		return false
	}
}
