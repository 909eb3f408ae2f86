package worktime

import (
	"fmt"
	"math"
)

// CalcWorkingHours returns net worked hours for a day.
// ok is false when either punch is missing. Durations at or below zero,
// including an end before the start, are clamped to exactly 0; shifts
// crossing midnight are not supported.
func CalcWorkingHours(start, end *Clock, restMinutes int) (hours float64, ok bool) {
	minutes, ok := CalcWorkingMinutes(start, end, restMinutes)
	return float64(minutes) / 60, ok
}

// CalcWorkingMinutes is CalcWorkingHours in whole minutes, for exact sums
func CalcWorkingMinutes(start, end *Clock, restMinutes int) (int, bool) {
	if start == nil || end == nil {
		return 0, false
	}
	diff := end.Minutes() - start.Minutes() - restMinutes
	if diff <= 0 {
		return 0, true
	}
	return diff, true
}

// FormatHoursToHHMM renders fractional hours as H:MM (hour not padded).
// A minute part that rounds to 60 carries into the hour.
func FormatHoursToHHMM(hours float64) string {
	h := math.Floor(hours)
	m := math.Round((hours - h) * 60)
	if m >= 60 {
		h++
		m -= 60
	}
	return fmt.Sprintf("%d:%02d", int(h), int(m))
}

// FormatRestMinutes renders a break length in minutes as H:MM
func FormatRestMinutes(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// DefaultWorkHours is the length of a standard day given a working window
// and break. Used to project unfilled workdays.
func DefaultWorkHours(start, end Clock, restMinutes int) float64 {
	return float64(end.Minutes()-start.Minutes()-restMinutes) / 60
}
