package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/fitlife/internal/constants"
)

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

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseDate parses a normalized date string (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// CombineDateAndTime combines a date string (YYYY-MM-DD) and time string (HH:MM)
// into a single time.Time in the specified timezone.
func CombineDateAndTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}

	timeOfDay, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		loc,
	), nil
}

// NormalizeDate accepts either a day/month/year date (17/10/2026, 5/1/2026) or an
// already normalized YYYY-MM-DD date and returns the normalized form.
func NormalizeDate(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	if t, err := ParseDate(input); err == nil {
		return t.Format(constants.DateFormat), nil
	}
	t, err := time.Parse(constants.DisplayDateInputFormat, input)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (expected DD/MM/YYYY)", input)
	}
	return t.Format(constants.DateFormat), nil
}

// NormalizeTime accepts H:MM or HH:MM and returns HH:MM.
func NormalizeTime(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}
	t, err := time.Parse("15:4", input)
	if err != nil {
		return "", fmt.Errorf("invalid time %q (expected HH:MM)", input)
	}
	return t.Format(constants.TimeFormat), nil
}

// FormatDisplayDate renders a normalized date in day/month/year order.
// Unparseable input is returned unchanged.
func FormatDisplayDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	t, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format(constants.DisplayDateFormat)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
