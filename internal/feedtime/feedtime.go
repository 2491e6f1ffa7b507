// Package feedtime is the time-of-day value used by feeding schedules.
//
// A Time has minute resolution and no date or timezone. The only accepted
// text form is 24-hour "HH:MM" with exactly two digits on each side.
package feedtime

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned for any string that is not a valid "HH:MM".
var ErrInvalid = errors.New("invalid time, use HH:MM (24h)")

const (
	minutesPerDay = 24 * 60
	microsPerMin  = int64(60 * 1_000_000)
)

// Time is a minute of the day in [0, 1440).
type Time struct {
	minutes int
}

// New returns the Time for hour:minute.
func New(hour, minute int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("%w: %02d:%02d out of range", ErrInvalid, hour, minute)
	}
	return Time{minutes: hour*60 + minute}, nil
}

// Parse reads a strict "HH:MM" string. "8:30", "25:00" and "08:30:00" all fail.
func Parse(s string) (Time, error) {
	if len(s) != 5 || s[2] != ':' {
		return Time{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 {
		return Time{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return New(h, m)
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FromMicroseconds converts microseconds since midnight (PostgreSQL TIME)
// into a Time. Seconds and below are truncated.
func FromMicroseconds(us int64) (Time, error) {
	if us < 0 || us >= int64(minutesPerDay)*microsPerMin {
		return Time{}, fmt.Errorf("%w: %d microseconds out of range", ErrInvalid, us)
	}
	return Time{minutes: int(us / microsPerMin)}, nil
}

// Microseconds returns the Time as microseconds since midnight.
func (t Time) Microseconds() int64 {
	return int64(t.minutes) * microsPerMin
}

// Hour returns the hour component.
func (t Time) Hour() int { return t.minutes / 60 }

// Minute returns the minute component.
func (t Time) Minute() int { return t.minutes % 60 }

// Before reports whether t is earlier in the day than u.
func (t Time) Before(u Time) bool { return t.minutes < u.minutes }

// String formats t as "HH:MM".
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalText implements encoding.TextMarshaler, so a Time encodes as a JSON string.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
