package calendar

import (
	"fmt"
	"time"
)

// HolidayLookup resolves a date to a national holiday name.
// Implementations are built once at startup and injected.
type HolidayLookup interface {
	NameFor(date time.Time) (string, bool)
}

// LookupFunc adapts a plain function to HolidayLookup
type LookupFunc func(date time.Time) (string, bool)

// NameFor implements HolidayLookup
func (f LookupFunc) NameFor(date time.Time) (string, bool) {
	return f(date)
}

// Holiday is a named national holiday
type Holiday struct {
	Date time.Time
	Name string
}

var weekdayLabels = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// DaysInMonth returns every day of the 1-indexed month in ascending order.
// Days are midnight UTC so weekday arithmetic is free of DST effects.
func DaysInMonth(year int, month time.Month) []time.Time {
	if month < time.January || month > time.December {
		panic(fmt.Sprintf("calendar: month %d out of range", month))
	}

	// Day 0 of the next month is the last day of this one
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	days := make([]time.Time, 0, last)
	for d := 1; d <= last; d++ {
		days = append(days, time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
	}
	return days
}

// WeekdayLabel returns the single-character Japanese weekday label
func WeekdayLabel(date time.Time) string {
	return weekdayLabels[date.Weekday()]
}

// Resolver answers national-holiday questions through an injected lookup
type Resolver struct {
	lookup HolidayLookup
}

// NewResolver creates a Resolver. A nil lookup means no national holidays.
func NewResolver(lookup HolidayLookup) *Resolver {
	if lookup == nil {
		lookup = LookupFunc(func(time.Time) (string, bool) { return "", false })
	}
	return &Resolver{lookup: lookup}
}

// IsNationalHoliday reports whether date is a national holiday
func (r *Resolver) IsNationalHoliday(date time.Time) bool {
	_, ok := r.lookup.NameFor(date)
	return ok
}

// NationalHolidayName returns the holiday name, if any
func (r *Resolver) NationalHolidayName(date time.Time) (string, bool) {
	return r.lookup.NameFor(date)
}

// MonthHolidays lists the national holidays in a month
func (r *Resolver) MonthHolidays(year int, month time.Month) []Holiday {
	var out []Holiday
	for _, day := range DaysInMonth(year, month) {
		if name, ok := r.lookup.NameFor(day); ok {
			out = append(out, Holiday{Date: day, Name: name})
		}
	}
	return out
}
