package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
)

// week of 2026-01-12 (Monday) to 2026-01-18 (Sunday)
var testWeek = Week{Start: "2026-01-12", End: "2026-01-18"}

func TestWeek_DaysElapsed(t *testing.T) {
	tests := []struct {
		today string
		want  int
	}{
		{"2026-01-11", 0},
		{"2026-01-12", 1},
		{"2026-01-14", 3},
		{"2026-01-18", 7},
		{"2026-01-25", 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, testWeek.DaysElapsed(tt.today), "today %s", tt.today)
	}
}

func TestWeeklyCompletionPercentage_TwoParametersThreeDays(t *testing.T) {
	series := []ParameterSeries{
		{
			Parameter: numberParam(constants.OperatorGreaterEqual, "8"),
			Entries: []models.DataEntry{
				entry("a1", "2026-01-12", "8"),
				entry("a2", "2026-01-13", "6"),
			},
		},
		{
			Parameter: boolParam("Yes"),
			Entries: []models.DataEntry{
				entry("b1", "2026-01-14", "yes"),
			},
		},
	}

	got, ok := WeeklyCompletionPercentage(series, testWeek, "2026-01-14")

	assert.True(t, ok)
	assert.InDelta(t, 100.0/3.0, got, 1e-9)
}

func TestWeeklyCompletionPercentage_Undefined(t *testing.T) {
	_, ok := WeeklyCompletionPercentage(nil, testWeek, "2026-01-14")
	assert.False(t, ok, "no parameters")

	series := []ParameterSeries{{Parameter: numberParam(constants.OperatorGreaterEqual, "8")}}
	_, ok = WeeklyCompletionPercentage(series, testWeek, "2026-01-10")
	assert.False(t, ok, "today before the week")
}

func TestWeeklyCompletionPercentage_Bounds(t *testing.T) {
	p := numberParam(constants.OperatorGreaterEqual, "1")
	series := []ParameterSeries{{
		Parameter: p,
		Entries: []models.DataEntry{
			entry("before", "2026-01-11", "5"),
			entry("d1", "2026-01-12", "5"),
			entry("d2", "2026-01-13", "5"),
			entry("future", "2026-01-16", "5"),
			entry("after", "2026-01-19", "5"),
		},
	}}

	got, ok := WeeklyCompletionPercentage(series, testWeek, "2026-01-13")

	assert.True(t, ok)
	assert.InDelta(t, 100.0, got, 1e-9)
}

func TestWeeklyCompletionPercentage_DuplicateDaysCountOnce(t *testing.T) {
	p := numberParam(constants.OperatorGreaterEqual, "1")
	series := []ParameterSeries{{
		Parameter: p,
		Entries: []models.DataEntry{
			entry("a", "2026-01-12", "5"),
			entry("b", "2026-01-12", "6"),
		},
	}}

	got, ok := WeeklyCompletionPercentage(series, testWeek, "2026-01-13")

	assert.True(t, ok)
	assert.InDelta(t, 50.0, got, 1e-9)
}

func TestWeeklyCompletionPercentage_WholeWeekInPast(t *testing.T) {
	p := boolParam("Yes")
	var entries []models.DataEntry
	for _, day := range []string{"2026-01-12", "2026-01-13", "2026-01-14", "2026-01-15", "2026-01-16", "2026-01-17", "2026-01-18"} {
		entries = append(entries, entry("e"+day, day, "yes"))
	}

	got, ok := WeeklyCompletionPercentage([]ParameterSeries{{Parameter: p, Entries: entries}}, testWeek, "2026-02-01")

	assert.True(t, ok)
	assert.InDelta(t, 100.0, got, 1e-9)
}
