package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
)

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Column lists shared by both SQL implementations, in scan order.
const (
	ParameterColumns = "id, name, type, goal_operator, goal_value, created_at, deleted_at"
	EntryColumns     = "id, parameter_id, day, value, created_at, updated_at"
	GoalColumns      = "id, title, description, status, deadline, finished_at, created_at, updated_at"
)

// FormatTime renders a timestamp the way it is stored (RFC3339 with fractional seconds, UTC).
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// NullTime renders an optional timestamp for storage.
func NullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTime(*t), Valid: true}
}

// NotFound maps sql.ErrNoRows to ErrNotFound and wraps anything else.
func NotFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func parseTime(value, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return t, nil
}

func parseNullTime(value sql.NullString, field string) (*time.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	t, err := parseTime(value.String, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ScanParameter reads a row selected with ParameterColumns.
func ScanParameter(row RowScanner) (models.Parameter, error) {
	var p models.Parameter
	var typ, op, createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&p.ID, &p.Name, &typ, &op, &p.GoalValue, &createdAt, &deletedAt); err != nil {
		return models.Parameter{}, err
	}
	p.Type = constants.ParameterType(typ)
	p.GoalOperator = constants.GoalOperator(op)

	var err error
	if p.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return models.Parameter{}, err
	}
	if p.DeletedAt, err = parseNullTime(deletedAt, "deleted_at"); err != nil {
		return models.Parameter{}, err
	}
	return p, nil
}

// ScanEntry reads a row selected with EntryColumns.
func ScanEntry(row RowScanner) (models.DataEntry, error) {
	var e models.DataEntry
	var createdAt, updatedAt string

	if err := row.Scan(&e.ID, &e.ParameterID, &e.Day, &e.Value, &createdAt, &updatedAt); err != nil {
		return models.DataEntry{}, err
	}

	var err error
	if e.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return models.DataEntry{}, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return models.DataEntry{}, err
	}
	return e, nil
}

// ScanGoal reads a row selected with GoalColumns.
func ScanGoal(row RowScanner) (models.Goal, error) {
	var g models.Goal
	var status, createdAt, updatedAt string
	var finishedAt sql.NullString

	if err := row.Scan(&g.ID, &g.Title, &g.Description, &status, &g.Deadline, &finishedAt, &createdAt, &updatedAt); err != nil {
		return models.Goal{}, err
	}
	g.Status = constants.GoalStatus(status)

	var err error
	if g.FinishedAt, err = parseNullTime(finishedAt, "finished_at"); err != nil {
		return models.Goal{}, err
	}
	if g.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return models.Goal{}, err
	}
	if g.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// CollectRows drains rows through scan, closing them.
func CollectRows[T any](rows *sql.Rows, scan func(RowScanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
