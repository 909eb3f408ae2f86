package worktime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout used for record dates (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Clock is a zone-naive wall-clock time expressed as minutes since midnight
type Clock int

// NewClock builds a Clock from hours and minutes
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" or "HH:MM:SS". Seconds are accepted and dropped.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: bad minute", s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid time %q: bad second", s)
		}
	}

	return NewClock(h, m), nil
}

// MustParseClock is ParseClock for literals known to be valid
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hour returns the hour component
func (c Clock) Hour() int {
	return int(c) / 60
}

// Minute returns the minute component
func (c Clock) Minute() int {
	return int(c) % 60
}

// Minutes returns the offset from midnight in minutes
func (c Clock) Minutes() int {
	return int(c)
}

// String formats the clock as zero-padded HH:MM
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// FloorToFive truncates the minute component down to a multiple of five.
// The hour is never changed.
func (c Clock) FloorToFive() Clock {
	return NewClock(c.Hour(), c.Minute()/5*5)
}

// Ptr returns a pointer to a copy of c
func (c Clock) Ptr() *Clock {
	return &c
}

// FloorToFiveMinutes converts a live timestamp to a punch time
func FloorToFiveMinutes(t time.Time) Clock {
	return NewClock(t.Hour(), t.Minute()).FloorToFive()
}

// FloorTimeString applies the same floor to a user-edited "HH:MM" string
func FloorTimeString(s string) (string, error) {
	c, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return c.FloorToFive().String(), nil
}

// TimeToMinutes converts "HH:MM" to minutes since midnight
func TimeToMinutes(s string) (int, error) {
	c, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return c.Minutes(), nil
}

// DateKey formats t's calendar date as YYYY-MM-DD in t's own location
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// TodayString returns now's local calendar date as YYYY-MM-DD
func TodayString(now time.Time) string {
	return DateKey(now.Local())
}

// ParseDate parses a YYYY-MM-DD record date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}
