package domain

import (
	"fmt"
	"time"

	"github.com/sweetnarcisse/SN-BookingService/pkg/types"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// parisLocation is resolved once at startup. The business operates on
// Paris wall-clock; all stored instants are absolute and conversion
// happens here, never in the store.
var parisLocation = mustLoadParis()

func mustLoadParis() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		panic(fmt.Sprintf("domain: load Europe/Paris location: %v", err))
	}
	return loc
}

// ParisWallInstant is an absolute instant together with the Paris
// wall-clock components it was built from.
type ParisWallInstant struct {
	Instant    time.Time
	WallHour   int
	WallMinute int
}

// ParseParisWallDate converts a "YYYY-MM-DD" date and "HH:MM" time,
// read as Paris wall-clock, into an absolute instant.
func ParseParisWallDate(date string, timeOfDay types.TimeString) (ParisWallInstant, error) {
	day, err := time.ParseInLocation(DateFormat, date, parisLocation)
	if err != nil {
		return ParisWallInstant{}, fmt.Errorf("domain: parse date %q: %w", date, err)
	}

	hour, minute, err := timeOfDay.HourMinute()
	if err != nil {
		return ParisWallInstant{}, fmt.Errorf("domain: parse time %q: %w", timeOfDay, err)
	}

	instant := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, parisLocation)
	return ParisWallInstant{
		Instant:    instant.UTC(),
		WallHour:   hour,
		WallMinute: minute,
	}, nil
}

// ParisToday returns the current Paris calendar day as "YYYY-MM-DD"
func ParisToday(now time.Time) string {
	return now.In(parisLocation).Format(DateFormat)
}

// ParisNowParts returns the current Paris wall-clock hour and minute
func ParisNowParts(now time.Time) (hour, minute int) {
	local := now.In(parisLocation)
	return local.Hour(), local.Minute()
}

// ParisDayUTC returns the calendar-day value stored on bookings:
// midnight UTC of the given Paris date string.
func ParisDayUTC(date string) (time.Time, error) {
	day, err := time.Parse(DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("domain: parse date %q: %w", date, err)
	}
	return day, nil
}
