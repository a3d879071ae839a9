package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString is returned when a value is not a valid "HH:MM" time
var ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")

// TimeString represents a wall-clock time of day as "HH:MM".
// Stored and compared as a plain string, which keeps it trivially
// serializable for JSON, SQL and cache payloads.
type TimeString string

// NewTimeString builds a TimeString from the hour and minute of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes is out of day range", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// IsZero returns true if the value is unset
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the HH:MM format
func (t TimeString) Validate() error {
	if _, err := time.Parse("15:04", string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, t)
	}
	return nil
}

// Minutes returns the number of minutes since midnight
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, t)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// HourMinute returns the hour and minute components
func (t TimeString) HourMinute() (int, int, error) {
	total, err := t.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return total / 60, total % 60, nil
}

// AddMinutes returns the time shifted by delta minutes within the same day
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(total + delta)
}

// IsBefore returns true if t is strictly earlier than other.
// Lexicographic comparison is correct for zero-padded HH:MM values.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter returns true if t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

func (t TimeString) String() string {
	return string(t)
}
