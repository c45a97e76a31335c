package models

import "time"

// DataEntry is one logged value for a parameter on a calendar day
type DataEntry struct {
	ID          string    `json:"id" validate:"required"`
	ParameterID string    `json:"parameter_id" validate:"required"`
	Day         string    `json:"day" validate:"required,daykey"` // YYYY-MM-DD format
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
