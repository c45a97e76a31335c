package analytics

import "github.com/julianstephens/progresio/internal/models"

// StreakResult summarizes a parameter's full history.
type StreakResult struct {
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	TotalSuccesses int `json:"total_successes"`
	TotalFailures  int `json:"total_failures"`
	// LatestEntrySuccess is nil when there is no entry on or before today.
	LatestEntrySuccess *bool `json:"latest_entry_success"`
}

// ComputeStreak folds a parameter's entries into streak statistics as of today.
//
// Entries after today or with malformed day keys are ignored, and each day
// counts once. A streak only continues across consecutive calendar days, and
// the current streak is zero unless today itself was a success.
func ComputeStreak(p models.Parameter, entries []models.DataEntry, today string) StreakResult {
	var res StreakResult
	target := TargetFor(p)

	running := 0
	previousDay := ""
	lastDay := ""
	for _, e := range onePerDay(entries, "", today) {
		ok := target.Met(e.Value)
		if ok {
			if isNextDay(previousDay, e.Day) {
				running++
			} else {
				running = 1
			}
			res.TotalSuccesses++
			res.LongestStreak = max(res.LongestStreak, running)
		} else {
			running = 0
			res.TotalFailures++
		}
		res.LatestEntrySuccess = &ok
		previousDay = e.Day
		lastDay = e.Day
	}

	if lastDay == today {
		res.CurrentStreak = running
	}
	return res
}
