package analytics

import (
	"sort"

	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/utils"
)

// onePerDay returns a sorted copy of entries holding exactly one entry per
// day in [from, to]. An empty from means no lower bound. Entries with
// malformed day keys are dropped. When a day has several entries the one
// with the latest UpdatedAt wins, ties broken by the greatest ID.
func onePerDay(entries []models.DataEntry, from, to string) []models.DataEntry {
	kept := make([]models.DataEntry, 0, len(entries))
	for _, e := range entries {
		if !utils.IsDayKey(e.Day) || e.Day > to || (from != "" && e.Day < from) {
			continue
		}
		kept = append(kept, e)
	}

	sort.Slice(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		return a.ID < b.ID
	})

	// The winner of each day is the last element of its run.
	out := kept[:0]
	for i, e := range kept {
		if i+1 < len(kept) && kept[i+1].Day == e.Day {
			continue
		}
		out = append(out, e)
	}
	return out
}

// isNextDay reports whether day is exactly one calendar day after prev.
func isNextDay(prev, day string) bool {
	if prev == "" {
		return false
	}
	n, err := utils.DaysBetween(prev, day)
	return err == nil && n == 1
}
