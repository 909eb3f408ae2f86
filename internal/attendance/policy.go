package attendance

import (
	"time"

	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/domain"
)

// Policy decides whether a day is off for a client
type Policy struct {
	holidays *calendar.Resolver
}

// NewPolicy creates a Policy backed by a national holiday resolver
func NewPolicy(holidays *calendar.Resolver) *Policy {
	if holidays == nil {
		holidays = calendar.NewResolver(nil)
	}
	return &Policy{holidays: holidays}
}

// IsClientHoliday reports whether date is off by default for the client:
// a weekly holiday, or a national holiday when the client observes them.
func (p *Policy) IsClientHoliday(date time.Time, client *domain.Client) bool {
	if client.IsWeeklyHoliday(date.Weekday()) {
		return true
	}
	return client.IncludeNationalHolidays && p.holidays.IsNationalHoliday(date)
}

// EffectiveOff applies the record's explicit override when set
func (p *Policy) EffectiveOff(date time.Time, client *domain.Client, record *domain.TimeRecord) bool {
	if record != nil && record.IsOff != nil {
		return *record.IsOff
	}
	return p.IsClientHoliday(date, client)
}

// HolidayName returns the national holiday name for display
func (p *Policy) HolidayName(date time.Time) (string, bool) {
	return p.holidays.NationalHolidayName(date)
}

// Resolver exposes the underlying holiday resolver
func (p *Policy) Resolver() *calendar.Resolver {
	return p.holidays
}
