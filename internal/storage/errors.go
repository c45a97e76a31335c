package storage

import "errors"

var (
	// ErrNotFound is returned when a record does not exist (or is soft deleted).
	ErrNotFound = errors.New("not found")
	// ErrParameterTypeLocked is returned when changing the type of a parameter that already has entries.
	ErrParameterTypeLocked = errors.New("parameter type cannot change once entries exist")
	// ErrEmbeddedCredentials is returned for PostgreSQL connection strings that carry a password.
	ErrEmbeddedCredentials = errors.New("connection string must not contain a password")
	// ErrNotInitialized is returned by Load when the database has not been created yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'progresio init' first")
)
