package postgres

import (
	"fmt"

	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/storage"
)

func (s *Store) AddGoal(g models.Goal) error {
	_, err := s.db.Exec(`
		INSERT INTO goals (`+storage.GoalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.Title, g.Description, string(g.Status), g.Deadline,
		storage.NullTime(g.FinishedAt), storage.FormatTime(g.CreatedAt), storage.FormatTime(g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("adding goal: %w", err)
	}
	return nil
}

func (s *Store) GetGoal(id string) (models.Goal, error) {
	row := s.db.QueryRow("SELECT "+storage.GoalColumns+" FROM goals WHERE id = $1", id)
	g, err := storage.ScanGoal(row)
	if err != nil {
		return models.Goal{}, storage.NotFound(err, "goal "+id)
	}
	return g, nil
}

func (s *Store) GetAllGoals() ([]models.Goal, error) {
	rows, err := s.db.Query("SELECT " + storage.GoalColumns + " FROM goals ORDER BY deadline, created_at")
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanGoal)
}

func (s *Store) GetUpcomingGoals(limit int) ([]models.Goal, error) {
	rows, err := s.db.Query(`
		SELECT `+storage.GoalColumns+`
		FROM goals WHERE status = $1
		ORDER BY deadline, created_at
		LIMIT $2`, string(constants.GoalActive), limit)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanGoal)
}

func (s *Store) GetGoalsDueBetween(startDay, endDay string) ([]models.Goal, error) {
	rows, err := s.db.Query(`
		SELECT `+storage.GoalColumns+`
		FROM goals WHERE deadline >= $1 AND deadline <= $2
		ORDER BY deadline`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanGoal)
}

func (s *Store) UpdateGoal(g models.Goal) error {
	result, err := s.db.Exec(`
		UPDATE goals
		SET title = $1, description = $2, status = $3, deadline = $4, finished_at = $5, updated_at = $6
		WHERE id = $7`,
		g.Title, g.Description, string(g.Status), g.Deadline,
		storage.NullTime(g.FinishedAt), storage.FormatTime(g.UpdatedAt), g.ID)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return expectOne(result, "goal "+g.ID)
}

func (s *Store) DeleteGoal(id string) error {
	result, err := s.db.Exec("DELETE FROM goals WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectOne(result, "goal "+id)
}
