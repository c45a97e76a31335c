package models

import (
	"fmt"

	"github.com/julianstephens/progresio/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingWeekStart:
			settings.WeekStart = value
		case constants.SettingUpcomingLimit:
			if _, err := fmt.Sscanf(value, "%d", &settings.UpcomingLimit); err != nil {
				return Settings{}, fmt.Errorf("parsing upcoming_limit: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:      settings.Timezone,
		constants.SettingWeekStart:     settings.WeekStart,
		constants.SettingUpcomingLimit: fmt.Sprintf("%d", settings.UpcomingLimit),
	}
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:      constants.DefaultTimezone,
		WeekStart:     constants.DefaultWeekStart,
		UpcomingLimit: constants.DefaultUpcomingLimit,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.WeekStart == "" {
		settings.WeekStart = constants.DefaultWeekStart
	}
	if settings.UpcomingLimit == 0 {
		settings.UpcomingLimit = constants.DefaultUpcomingLimit
	}
}
