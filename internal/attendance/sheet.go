package attendance

import (
	"time"

	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

// SheetDay is one line of the monthly grid
type SheetDay struct {
	Date        time.Time
	Key         string // YYYY-MM-DD
	Weekday     string
	HolidayName string
	Record      *domain.TimeRecord // nil when nothing was recorded
	Off         bool
	State       DayState
	Hours       float64
	HasHours    bool
	Missing     bool
	IsToday     bool
}

// MonthSheet is the per-day view of a client's month with totals
type MonthSheet struct {
	Client       *domain.Client
	Year         int
	Month        time.Month
	Days         []SheetDay
	TotalHours   float64
	Estimate     float64
	HasEstimate  bool
	MissingDates []string
}

// Sheet builds the grid view for a month
func (a *Aggregator) Sheet(records []*domain.TimeRecord, client *domain.Client, year int, month time.Month, today time.Time) *MonthSheet {
	byDate := indexMonth(records, year, month)
	todayKey := worktime.TodayString(today)

	sheet := &MonthSheet{
		Client: client,
		Year:   year,
		Month:  month,
	}

	var minutes int
	for _, day := range calendar.DaysInMonth(year, month) {
		key := worktime.DateKey(day)
		r := byDate[key]

		row := SheetDay{
			Date:    day,
			Key:     key,
			Weekday: calendar.WeekdayLabel(day),
			Record:  r,
			Off:     a.policy.EffectiveOff(day, client, r),
			State:   a.Classify(day, r, client, today),
			IsToday: key == todayKey,
		}
		if name, ok := a.policy.HolidayName(day); ok {
			row.HolidayName = name
		}
		if !row.Off {
			if m, ok := r.WorkedMinutes(); ok {
				row.Hours = float64(m) / 60
				row.HasHours = true
				minutes += m
			}
			row.Missing = key < todayKey && !r.IsComplete()
		}
		if row.Missing {
			sheet.MissingDates = append(sheet.MissingDates, key)
		}

		sheet.Days = append(sheet.Days, row)
	}

	sheet.TotalHours = float64(minutes) / 60
	sheet.Estimate, sheet.HasEstimate = a.EstimatedMonthlyHours(records, client, year, month, today)
	return sheet
}

// WithinContract reports whether the total falls inside the client's hour range
func (s *MonthSheet) WithinContract() bool {
	return s.TotalHours >= s.Client.MinHours && s.TotalHours <= s.Client.MaxHours
}
