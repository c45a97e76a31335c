package analytics

import (
	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/utils"
)

// Week is an inclusive range of calendar-day keys.
type Week struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether day lies within the week.
func (w Week) Contains(day string) bool {
	return day >= w.Start && day <= w.End
}

// ParameterSeries pairs a parameter with its entries.
type ParameterSeries struct {
	Parameter models.Parameter
	Entries   []models.DataEntry
}

// DaysElapsed counts the days of the week from Start through the earlier of
// today and End, inclusive. It is zero when today precedes the week.
func (w Week) DaysElapsed(today string) int {
	if today < w.Start {
		return 0
	}
	last := min(today, w.End)
	n, err := utils.DaysBetween(w.Start, last)
	if err != nil || n < 0 {
		return 0
	}
	return n + 1
}

// WeeklyCompletionPercentage returns the share of expected parameter-days in
// the elapsed part of the week that were successes, as a percentage. The
// second result is false when the percentage is undefined: no parameters, or
// no elapsed days.
func WeeklyCompletionPercentage(series []ParameterSeries, week Week, today string) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	expected := len(series) * week.DaysElapsed(today)
	if expected == 0 {
		return 0, false
	}

	upper := min(today, week.End)
	total := 0
	for _, s := range series {
		target := TargetFor(s.Parameter)
		for _, e := range onePerDay(s.Entries, week.Start, upper) {
			if target.Met(e.Value) {
				total++
			}
		}
	}
	return float64(total) / float64(expected) * 100, true
}
