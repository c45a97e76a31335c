package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/progresio/internal/constants"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		typ   constants.ParameterType
		op    constants.GoalOperator
		goal  string
		entry string
		want  bool
	}{
		{"number gte equal", constants.ParameterNumber, constants.OperatorGreaterEqual, "8", "8", true},
		{"number gte below", constants.ParameterNumber, constants.OperatorGreaterEqual, "8", "7.5", false},
		{"number lte", constants.ParameterNumber, constants.OperatorLessEqual, "3", "2", true},
		{"number eq", constants.ParameterNumber, constants.OperatorEqual, "10", "10.0", true},
		{"number gt", constants.ParameterNumber, constants.OperatorGreater, "10", "10", false},
		{"number lt", constants.ParameterNumber, constants.OperatorLess, "10", "9.99", true},
		{"number trims whitespace", constants.ParameterNumber, constants.OperatorGreaterEqual, " 8 ", " 9\n", true},
		{"number negative", constants.ParameterNumber, constants.OperatorLess, "0", "-1", true},
		{"number malformed entry", constants.ParameterNumber, constants.OperatorGreaterEqual, "8", "eight", false},
		{"number malformed goal", constants.ParameterNumber, constants.OperatorGreaterEqual, "lots", "9", false},
		{"number empty entry", constants.ParameterNumber, constants.OperatorLessEqual, "8", "", false},
		{"number NaN rejected", constants.ParameterNumber, constants.OperatorEqual, "NaN", "NaN", false},
		{"number Inf rejected", constants.ParameterNumber, constants.OperatorGreater, "1", "+Inf", false},
		{"number unknown operator", constants.ParameterNumber, "!=", "8", "9", false},
		{"boolean yes matches true", constants.ParameterBoolean, constants.OperatorEqual, "Yes", "true", true},
		{"boolean case insensitive", constants.ParameterBoolean, constants.OperatorEqual, "no", "FALSE", true},
		{"boolean mismatch", constants.ParameterBoolean, constants.OperatorEqual, "Yes", "No", false},
		{"boolean unrecognized entry", constants.ParameterBoolean, constants.OperatorEqual, "Yes", "maybe", false},
		{"boolean unrecognized goal", constants.ParameterBoolean, constants.OperatorEqual, "sure", "yes", false},
		{"string exact", constants.ParameterString, constants.OperatorEqual, "good", "good", true},
		{"string case sensitive", constants.ParameterString, constants.OperatorEqual, "good", "Good", false},
		{"string not trimmed", constants.ParameterString, constants.OperatorEqual, "good", "good ", false},
		{"string empty equals empty", constants.ParameterString, constants.OperatorEqual, "", "", true},
		{"unknown type", "date", constants.OperatorEqual, "1", "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.typ, tt.op, tt.goal, tt.entry))
		})
	}
}

func TestEvaluate_BooleanIgnoresOperator(t *testing.T) {
	operators := append([]constants.GoalOperator{"", "~"}, constants.GoalOperators...)
	for _, entry := range []string{"Yes", "no", "true", "FALSE", "garbage"} {
		want := Evaluate(constants.ParameterBoolean, constants.OperatorEqual, "Yes", entry)
		for _, op := range operators {
			assert.Equal(t, want, Evaluate(constants.ParameterBoolean, op, "Yes", entry),
				"entry %q with operator %q", entry, op)
		}
	}
}

func TestEvaluate_Pure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.True(t, Evaluate(constants.ParameterNumber, constants.OperatorGreaterEqual, "8", "9"))
		assert.False(t, Evaluate(constants.ParameterNumber, constants.OperatorGreaterEqual, "8", "7"))
	}
}

func TestTarget_ReusedAcrossEntries(t *testing.T) {
	target := NewTarget(constants.ParameterNumber, constants.OperatorLessEqual, "2000")
	assert.True(t, target.Met("1800"))
	assert.True(t, target.Met("2000"))
	assert.False(t, target.Met("2400"))
	assert.False(t, target.Met(""))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, Value{Kind: KindNumber, Number: 8.5}, ParseValue(constants.ParameterNumber, "8.5"))
	assert.Equal(t, Value{Kind: KindBool, Bool: true}, ParseValue(constants.ParameterBoolean, " YES "))
	assert.Equal(t, Value{Kind: KindText, Text: " x "}, ParseValue(constants.ParameterString, " x "))
	assert.False(t, ParseValue(constants.ParameterNumber, "1e400").Valid())
	assert.False(t, ParseValue("unknown", "1").Valid())
	assert.Equal(t, "invalid", ParseValue(constants.ParameterBoolean, "y").Kind.String())
}

func TestKnownOperator(t *testing.T) {
	for _, op := range constants.GoalOperators {
		assert.True(t, KnownOperator(op), "operator %q", op)
	}
	assert.False(t, KnownOperator("=="))
	assert.False(t, KnownOperator(""))
}
