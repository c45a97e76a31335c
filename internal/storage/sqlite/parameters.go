package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/storage"
)

func (s *Store) AddParameter(p models.Parameter) error {
	_, err := s.db.Exec(`
		INSERT INTO parameters (`+storage.ParameterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Type), string(p.GoalOperator), p.GoalValue,
		storage.FormatTime(p.CreatedAt), storage.NullTime(p.DeletedAt))
	if err != nil {
		return fmt.Errorf("adding parameter: %w", err)
	}
	return nil
}

func (s *Store) GetParameter(id string) (models.Parameter, error) {
	row := s.db.QueryRow(`
		SELECT `+storage.ParameterColumns+`
		FROM parameters WHERE id = ? AND deleted_at IS NULL`, id)

	p, err := storage.ScanParameter(row)
	if err != nil {
		return models.Parameter{}, storage.NotFound(err, "parameter "+id)
	}
	return p, nil
}

func (s *Store) GetParameterByName(name string) (models.Parameter, error) {
	row := s.db.QueryRow(`
		SELECT `+storage.ParameterColumns+`
		FROM parameters WHERE name = ? AND deleted_at IS NULL
		ORDER BY created_at LIMIT 1`, name)

	p, err := storage.ScanParameter(row)
	if err != nil {
		return models.Parameter{}, storage.NotFound(err, fmt.Sprintf("parameter %q", name))
	}
	return p, nil
}

func (s *Store) GetAllParameters(includeDeleted bool) ([]models.Parameter, error) {
	query := "SELECT " + storage.ParameterColumns + " FROM parameters"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanParameter)
}

func (s *Store) UpdateParameter(p models.Parameter) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var currentType string
	err = tx.QueryRow("SELECT type FROM parameters WHERE id = ?", p.ID).Scan(&currentType)
	if err != nil {
		return storage.NotFound(err, "parameter "+p.ID)
	}

	if currentType != string(p.Type) {
		var count int
		if err := tx.QueryRow("SELECT count(*) FROM data_entries WHERE parameter_id = ?", p.ID).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("parameter %s has %d entries: %w", p.ID, count, storage.ErrParameterTypeLocked)
		}
	}

	_, err = tx.Exec(`
		UPDATE parameters
		SET name = ?, type = ?, goal_operator = ?, goal_value = ?, deleted_at = ?
		WHERE id = ?`,
		p.Name, string(p.Type), string(p.GoalOperator), p.GoalValue, storage.NullTime(p.DeletedAt), p.ID)
	if err != nil {
		return fmt.Errorf("updating parameter: %w", err)
	}
	return tx.Commit()
}

func (s *Store) DeleteParameter(id string) error {
	result, err := s.db.Exec(`
		UPDATE parameters SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		storage.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return expectOne(result, "live parameter "+id)
}

func (s *Store) RestoreParameter(id string) error {
	result, err := s.db.Exec(`
		UPDATE parameters SET deleted_at = NULL WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return err
	}
	return expectOne(result, "deleted parameter "+id)
}
