package models

// Settings represents application-wide settings
type Settings struct {
	Timezone      string `json:"timezone" validate:"required,tzname"` // IANA timezone name (e.g. "Europe/Warsaw", or "Local" for system timezone)
	WeekStart     string `json:"week_start" validate:"required,weekday"` // first day of the reporting week, e.g. "monday"
	UpcomingLimit int    `json:"upcoming_limit" validate:"gte=1,lte=50"` // how many active goals "goal upcoming" shows
}
