package postgres

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/progresio/internal/models"
	"github.com/julianstephens/progresio/internal/storage"
)

func (s *Store) SaveEntry(e models.DataEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO data_entries (`+storage.EntryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (parameter_id, day) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at`,
		e.ID, e.ParameterID, e.Day, e.Value,
		storage.FormatTime(e.CreatedAt), storage.FormatTime(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(id string) (models.DataEntry, error) {
	row := s.db.QueryRow("SELECT "+storage.EntryColumns+" FROM data_entries WHERE id = $1", id)
	e, err := storage.ScanEntry(row)
	if err != nil {
		return models.DataEntry{}, storage.NotFound(err, "entry "+id)
	}
	return e, nil
}

func (s *Store) GetEntryForDay(parameterID, day string) (models.DataEntry, error) {
	row := s.db.QueryRow(`
		SELECT `+storage.EntryColumns+`
		FROM data_entries WHERE parameter_id = $1 AND day = $2`, parameterID, day)
	e, err := storage.ScanEntry(row)
	if err != nil {
		return models.DataEntry{}, storage.NotFound(err, fmt.Sprintf("entry for %s on %s", parameterID, day))
	}
	return e, nil
}

func (s *Store) GetEntriesForParameter(parameterID, startDay, endDay string) ([]models.DataEntry, error) {
	query := "SELECT " + storage.EntryColumns + " FROM data_entries WHERE parameter_id = $1"
	args := []any{parameterID}
	if startDay != "" {
		args = append(args, startDay)
		query += " AND day >= $" + strconv.Itoa(len(args))
	}
	if endDay != "" {
		args = append(args, endDay)
		query += " AND day <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY day"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanEntry)
}

func (s *Store) GetEntriesInRange(startDay, endDay string) ([]models.DataEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+storage.EntryColumns+`
		FROM data_entries WHERE day >= $1 AND day <= $2
		ORDER BY parameter_id, day`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	return storage.CollectRows(rows, storage.ScanEntry)
}

func (s *Store) CountEntries(parameterID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT count(*) FROM data_entries WHERE parameter_id = $1", parameterID).Scan(&count)
	return count, err
}

func (s *Store) UpdateEntry(e models.DataEntry) error {
	result, err := s.db.Exec(`
		UPDATE data_entries SET value = $1, updated_at = $2 WHERE id = $3`,
		e.Value, storage.FormatTime(e.UpdatedAt), e.ID)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}
	return expectOne(result, "entry "+e.ID)
}

func (s *Store) DeleteEntry(id string) error {
	result, err := s.db.Exec("DELETE FROM data_entries WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectOne(result, "entry "+id)
}
