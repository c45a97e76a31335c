package cli

import (
	"fmt"

	"github.com/julianstephens/progresio/internal/analytics"
)

// Mark renders an evaluation result.
func Mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

// FormatStreak renders a StreakResult on one line.
func FormatStreak(r analytics.StreakResult) string {
	latest := "-"
	if r.LatestEntrySuccess != nil {
		latest = Mark(*r.LatestEntrySuccess)
	}
	return fmt.Sprintf("current %d, longest %d, %d hit / %d missed, latest %s",
		r.CurrentStreak, r.LongestStreak, r.TotalSuccesses, r.TotalFailures, latest)
}

// FormatPercentage renders a weekly percentage; nil is undefined.
func FormatPercentage(pct *float64) string {
	if pct == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *pct)
}
