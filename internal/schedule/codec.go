// Package schedule implements the timezone-correct date/time model and the
// derived views built on top of it. Everything here is pure: no I/O, no
// hidden state, errors only for malformed input or unknown timezones.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate     = errors.New("invalid calendar date")
	ErrInvalidTime     = errors.New("invalid time of day")
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// CalendarDate is a timezone-free date.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCalendarDate parses a "YYYY-MM-DD" string.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether d is an earlier day than other.
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// AddDays returns the date n days after d (n may be negative). Overflow is
// normalized the same way time.Date normalizes it.
func (d CalendarDate) AddDays(n int) CalendarDate {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Weekday of the date (Sunday = 0).
func (d CalendarDate) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// TimeOfDay is a timezone-free wall-clock time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a 24-hour "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Clock12 renders the 12-hour form, e.g. "3:04 PM".
func (t TimeOfDay) Clock12() string {
	suffix := "AM"
	h := t.Hour
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute, suffix)
}

// LoadZone resolves an IANA timezone id. Unknown ids are an error; callers
// must never substitute UTC, that would corrupt day bucketing.
func LoadZone(id string) (*time.Location, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrUnknownTimezone)
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, id)
	}
	return loc, nil
}

// EncodeDate interprets d as midnight in the given timezone and returns the
// corresponding UTC instant. A midnight skipped or repeated by a DST
// transition resolves to the instant time.Date normalizes it to.
func EncodeDate(d CalendarDate, zone string) (time.Time, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc).UTC(), nil
}

// DecodeDate returns the calendar date the instant falls on when viewed in
// the given timezone. Inverse of EncodeDate away from DST midnights.
func DecodeDate(instant time.Time, zone string) (CalendarDate, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return CalendarDate{}, err
	}
	local := instant.In(loc)
	return CalendarDate{Year: local.Year(), Month: local.Month(), Day: local.Day()}, nil
}
