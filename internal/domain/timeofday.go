package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a minute-granular wall-clock time within a day,
// stored as minutes since midnight. Slot windows never cross
// midnight so the representation stays a plain ordered integer.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// TimeOfDayFrom extracts the wall-clock time of t.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// ParseTimeOfDay reads the "HH:MM" form used on the wire and in storage.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("parse time of day %q: out of range", s)
	}
	return NewTimeOfDay(hour, minute), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// TruncateHour drops the minutes, anchoring t to the top of its hour.
func (t TimeOfDay) TruncateHour() TimeOfDay {
	return NewTimeOfDay(t.Hour(), 0)
}

// AddHours shifts t forward by whole hours.
func (t TimeOfDay) AddHours(h int) TimeOfDay {
	return t + TimeOfDay(h*60)
}

func (t TimeOfDay) After(other TimeOfDay) bool { return t > other }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// DateOnly normalizes t to a day-granular value: the calendar date of t
// at midnight UTC. All slot dates in the system are carried in this
// form so equality and ordering reduce to Equal and Before.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads the "2006-01-02" form used on the wire and in storage.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate renders a day-granular value back to "2006-01-02".
func FormatDate(d time.Time) string {
	return d.Format("2006-01-02")
}
