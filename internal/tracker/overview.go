package tracker

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/progresio/internal/analytics"
	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/storage"
)

// ParameterStatus is one parameter's standing as of today.
type ParameterStatus struct {
	Parameter   models.Parameter       `json:"parameter"`
	Target      string                 `json:"target"`
	Streak      analytics.StreakResult `json:"streak"`
	LoggedToday bool                   `json:"logged_today"`
	TodayValue  string                 `json:"today_value,omitempty"`
	// TodaySuccess is nil when nothing was logged today.
	TodaySuccess *bool `json:"today_success"`
}

// Overview is everything the dashboard, "stats" and "week" show.
type Overview struct {
	Today      string            `json:"today"`
	Week       analytics.Week    `json:"week"`
	Parameters []ParameterStatus `json:"parameters"`
	// WeeklyPercentage is nil when it is undefined (no parameters or no elapsed days).
	WeeklyPercentage *float64                 `json:"weekly_percentage"`
	Goals            analytics.GoalCompletion `json:"goals"`
}

// Overview loads every live parameter's history concurrently and computes
// streaks, the weekly completion percentage and the weekly goal counts.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	today, settings, err := s.Today()
	if err != nil {
		return Overview{}, err
	}
	week, err := weekOf(today, settings)
	if err != nil {
		return Overview{}, err
	}

	params, err := s.store.GetAllParameters(false)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get parameters: %w", err)
	}
	if err := s.checkIntegrity(week.Start, today); err != nil {
		return Overview{}, err
	}

	statuses := make([]ParameterStatus, len(params))
	series := make([]analytics.ParameterSeries, len(params))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.DefaultOverviewWorkers)
	for i, p := range params {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries, err := s.store.GetEntriesForParameter(p.ID, "", today)
			if err != nil {
				return fmt.Errorf("failed to load entries for %q: %w", p.Name, err)
			}
			warnUnknownOperator(p)

			status := ParameterStatus{
				Parameter: p,
				Target:    p.Describe(),
				Streak:    analytics.ComputeStreak(p, entries, today),
			}
			if e, ok := latestOn(entries, today); ok {
				met := analytics.TargetFor(p).Met(e.Value)
				status.LoggedToday = true
				status.TodayValue = e.Value
				status.TodaySuccess = &met
			}
			statuses[i] = status
			series[i] = analytics.ParameterSeries{Parameter: p, Entries: entries}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	goals, err := s.store.GetGoalsDueBetween(week.Start, week.End)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get goals: %w", err)
	}

	ov := Overview{
		Today:      today,
		Week:       week,
		Parameters: statuses,
		Goals:      analytics.WeeklyGoalCompletion(goals, week),
	}
	if pct, ok := analytics.WeeklyCompletionPercentage(series, week, today); ok {
		ov.WeeklyPercentage = &pct
	}
	return ov, nil
}

// checkIntegrity fails when an entry in [from, to] belongs to no parameter at all.
// Entries of soft-deleted parameters are fine.
func (s *Service) checkIntegrity(from, to string) error {
	all, err := s.store.GetAllParameters(true)
	if err != nil {
		return fmt.Errorf("failed to get parameters: %w", err)
	}
	known := make(map[string]bool, len(all))
	for _, p := range all {
		known[p.ID] = true
	}
	entries, err := s.store.GetEntriesInRange(from, to)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	for _, e := range entries {
		if !known[e.ParameterID] {
			return s.orphan(e, storage.ErrNotFound)
		}
	}
	return nil
}

// latestOn returns the entry that counts for day, using the same rule as
// the engine when the store holds duplicates.
func latestOn(entries []models.DataEntry, day string) (models.DataEntry, bool) {
	var best models.DataEntry
	found := false
	for _, e := range entries {
		if e.Day != day {
			continue
		}
		if !found || e.UpdatedAt.After(best.UpdatedAt) || (e.UpdatedAt.Equal(best.UpdatedAt) && e.ID > best.ID) {
			best = e
			found = true
		}
	}
	return best, found
}
