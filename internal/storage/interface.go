package storage

import (
	"github.com/julianstephens/progresio/internal/migration"
	"github.com/julianstephens/progresio/internal/models"
)

// Provider is the persistence boundary used by the CLI, the tracker and the TUI.
// Implementations translate sql.ErrNoRows into ErrNotFound.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Migrate(logFn func(string)) (int, error)
	SchemaStatus() (migration.Status, error)

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Parameters
	AddParameter(models.Parameter) error
	GetParameter(id string) (models.Parameter, error)
	// GetParameterByName returns the live (not deleted) parameter with the given name.
	GetParameterByName(name string) (models.Parameter, error)
	GetAllParameters(includeDeleted bool) ([]models.Parameter, error)
	// UpdateParameter fails with ErrParameterTypeLocked when the type
	// changes while entries exist for the parameter.
	UpdateParameter(models.Parameter) error
	DeleteParameter(id string) error
	RestoreParameter(id string) error

	// Data entries
	// SaveEntry inserts the entry or, when the parameter already has an entry
	// for that day, replaces its value and UpdatedAt.
	SaveEntry(models.DataEntry) error
	GetEntry(id string) (models.DataEntry, error)
	GetEntryForDay(parameterID, day string) (models.DataEntry, error)
	// GetEntriesForParameter returns entries ordered by day. Empty bounds are open.
	GetEntriesForParameter(parameterID, startDay, endDay string) ([]models.DataEntry, error)
	// GetEntriesInRange returns entries of every parameter within [startDay, endDay].
	GetEntriesInRange(startDay, endDay string) ([]models.DataEntry, error)
	CountEntries(parameterID string) (int, error)
	UpdateEntry(models.DataEntry) error
	DeleteEntry(id string) error

	// Goals
	AddGoal(models.Goal) error
	GetGoal(id string) (models.Goal, error)
	GetAllGoals() ([]models.Goal, error)
	// GetUpcomingGoals returns up to limit Active goals ordered by deadline.
	GetUpcomingGoals(limit int) ([]models.Goal, error)
	GetGoalsDueBetween(startDay, endDay string) ([]models.Goal, error)
	UpdateGoal(models.Goal) error
	DeleteGoal(id string) error

	// Utils
	GetConfigPath() string
}
