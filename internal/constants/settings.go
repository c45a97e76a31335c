package constants

const (
	// General Settings
	SettingTimezone      = "timezone"
	SettingWeekStart     = "week_start"
	SettingUpcomingLimit = "upcoming_limit"

	// Default Settings Values
	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultWeekStart     = "monday"
	DefaultUpcomingLimit = 5
)
