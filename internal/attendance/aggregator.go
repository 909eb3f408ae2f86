package attendance

import (
	"fmt"
	"time"

	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

// DayState classifies a calendar day for one client
type DayState int

const (
	StateOff DayState = iota
	StateComplete
	StatePartial // on or before today, not fully punched
	StateFuture
)

func (s DayState) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateComplete:
		return "complete"
	case StatePartial:
		return "partial"
	case StateFuture:
		return "future"
	default:
		return "unknown"
	}
}

// Aggregator derives monthly figures from persisted records.
// All methods are pure and safe to call repeatedly.
type Aggregator struct {
	policy *Policy
}

// NewAggregator creates an Aggregator
func NewAggregator(policy *Policy) *Aggregator {
	return &Aggregator{policy: policy}
}

// Policy returns the holiday policy in use
func (a *Aggregator) Policy() *Policy {
	return a.policy
}

// Classify returns the state of a single day
func (a *Aggregator) Classify(day time.Time, record *domain.TimeRecord, client *domain.Client, today time.Time) DayState {
	switch {
	case a.policy.EffectiveOff(day, client, record):
		return StateOff
	case record.IsComplete():
		return StateComplete
	case worktime.DateKey(day) > worktime.TodayString(today):
		return StateFuture
	default:
		return StatePartial
	}
}

// TotalWorkedHours sums complete records, skipping records explicitly marked off
func TotalWorkedHours(records []*domain.TimeRecord) float64 {
	var minutes int
	for _, r := range records {
		if r.ExplicitlyOff() {
			continue
		}
		if m, ok := r.WorkedMinutes(); ok {
			minutes += m
		}
	}
	return float64(minutes) / 60
}

// TotalWorkedHoursForClient sums complete records that are not effectively off.
// A stray punch on a default holiday without an override does not count.
func (a *Aggregator) TotalWorkedHoursForClient(records []*domain.TimeRecord, client *domain.Client) float64 {
	return float64(a.workedMinutes(records, client)) / 60
}

func (a *Aggregator) workedMinutes(records []*domain.TimeRecord, client *domain.Client) int {
	var minutes int
	for _, r := range records {
		day, err := r.Day()
		if err != nil {
			// saves validate the date, so this is a corrupt row
			panic(fmt.Sprintf("attendance: record %s/%q has a malformed date: %v", r.ClientID, r.Date, err))
		}
		if a.policy.EffectiveOff(day, client, r) {
			continue
		}
		if m, ok := r.WorkedMinutes(); ok {
			minutes += m
		}
	}
	return minutes
}

// EstimatedMonthlyHours projects the month total: hours worked so far plus the
// client's standard day for every remaining workday from today onward that is
// not already complete. Only defined for the month containing today.
func (a *Aggregator) EstimatedMonthlyHours(records []*domain.TimeRecord, client *domain.Client, year int, month time.Month, today time.Time) (float64, bool) {
	todayKey := worktime.TodayString(today)
	if todayKey[:7] != monthKey(year, month) {
		return 0, false
	}

	byDate := indexMonth(records, year, month)
	minutes := a.workedMinutes(valuesOf(byDate), client)

	standard := client.DefaultEndTime.Minutes() - client.DefaultStartTime.Minutes() - client.DefaultRestMinutes
	for _, day := range calendar.DaysInMonth(year, month) {
		key := worktime.DateKey(day)
		if key < todayKey {
			continue
		}
		r := byDate[key]
		if a.policy.EffectiveOff(day, client, r) || r.IsComplete() {
			continue
		}
		minutes += standard
	}
	return float64(minutes) / 60, true
}

// FindMissingDates lists past workdays lacking a start or end punch, ascending
func (a *Aggregator) FindMissingDates(records []*domain.TimeRecord, client *domain.Client, year int, month time.Month, today time.Time) []string {
	todayKey := worktime.TodayString(today)
	byDate := indexMonth(records, year, month)

	var missing []string
	for _, day := range calendar.DaysInMonth(year, month) {
		key := worktime.DateKey(day)
		if key >= todayKey {
			break
		}
		r := byDate[key]
		if a.policy.EffectiveOff(day, client, r) || r.IsComplete() {
			continue
		}
		missing = append(missing, key)
	}
	return missing
}

// indexMonth keys records by date, keeping only those inside the month
func indexMonth(records []*domain.TimeRecord, year int, month time.Month) map[string]*domain.TimeRecord {
	prefix := monthKey(year, month)
	out := make(map[string]*domain.TimeRecord, len(records))
	for _, r := range records {
		if len(r.Date) == len(worktime.DateLayout) && r.Date[:7] == prefix {
			out[r.Date] = r
		}
	}
	return out
}

func valuesOf(m map[string]*domain.TimeRecord) []*domain.TimeRecord {
	out := make([]*domain.TimeRecord, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	return out
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}
