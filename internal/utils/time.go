package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/progresio/internal/constants"
	"github.com/julianstephens/progresio/internal/models"
)

// TodayIn returns today's calendar-day key (YYYY-MM-DD) in the specified timezone.
// Every "today" in the application comes from here so that entries are stamped
// and evaluated against the same day boundary.
func TodayIn(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// TodayFromSettings returns today's calendar-day key using the timezone from settings.
func TodayFromSettings(settings models.Settings) (string, error) {
	return TodayIn(settings.Timezone)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseDay parses a calendar-day key. The result is midnight UTC and carries
// no timezone meaning; it is only used for calendar arithmetic.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return t, nil
}

// IsDayKey reports whether s is a well-formed YYYY-MM-DD key.
func IsDayKey(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}

// AddDays shifts a day key by n calendar days (n may be negative).
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DaysBetween returns the number of calendar days from `from` to `to`.
// The result is negative when `to` is before `from`.
func DaysBetween(from, to string) (int, error) {
	a, err := ParseDay(from)
	if err != nil {
		return 0, err
	}
	b, err := ParseDay(to)
	if err != nil {
		return 0, err
	}
	// Both values are UTC midnights, so the division is exact.
	return int(b.Sub(a).Hours() / 24), nil
}

// WeekBounds returns the first and last day keys (inclusive) of the week
// containing today, with weeks beginning on weekStart.
func WeekBounds(today string, weekStart time.Weekday) (string, string, error) {
	t, err := ParseDay(today)
	if err != nil {
		return "", "", err
	}
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	start := t.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 6)
	return start.Format(constants.DateFormat), end.Format(constants.DateFormat), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
