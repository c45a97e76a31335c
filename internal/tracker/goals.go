package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
)

// AddGoal stores a new Active goal due on deadline.
func (s *Service) AddGoal(title, deadline, description string) (models.Goal, error) {
	now := s.now().UTC()
	g := models.Goal{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      constants.GoalActive,
		Deadline:    strings.TrimSpace(deadline),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := models.Validate(g); err != nil {
		return models.Goal{}, err
	}
	if err := s.store.AddGoal(g); err != nil {
		return models.Goal{}, fmt.Errorf("failed to add goal: %w", err)
	}
	return g, nil
}

// CompleteGoals marks each goal Completed. Goals that are already completed
// keep their original FinishedAt. All ids are attempted; the errors are joined.
func (s *Service) CompleteGoals(ids ...string) ([]models.Goal, error) {
	var (
		done []models.Goal
		errs []error
	)
	for _, id := range ids {
		g, err := s.store.GetGoal(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("goal %s: %w", id, err))
			continue
		}
		if !g.IsCompleted() {
			now := s.now().UTC()
			g.Status = constants.GoalCompleted
			g.FinishedAt = &now
			g.UpdatedAt = now
			if err := s.store.UpdateGoal(g); err != nil {
				errs = append(errs, fmt.Errorf("goal %s: %w", id, err))
				continue
			}
		}
		done = append(done, g)
	}
	return done, errors.Join(errs...)
}

// ResetGoal returns a goal to Active and clears FinishedAt.
func (s *Service) ResetGoal(id string) (models.Goal, error) {
	g, err := s.store.GetGoal(id)
	if err != nil {
		return models.Goal{}, fmt.Errorf("goal %s: %w", id, err)
	}
	g.Status = constants.GoalActive
	g.FinishedAt = nil
	g.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateGoal(g); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// UpcomingGoals returns the next Active goals by deadline, limited by the upcoming_limit setting.
func (s *Service) UpcomingGoals() ([]models.Goal, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	limit := settings.UpcomingLimit
	if limit <= 0 {
		limit = constants.DefaultUpcomingLimit
	}
	return s.store.GetUpcomingGoals(limit)
}
