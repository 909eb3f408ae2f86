package domain

import (
	"errors"
	"time"

	"github.com/hayasakashogo/worklog/internal/worktime"
)

// PunchStatus is derived from a record, never stored
type PunchStatus string

const (
	PunchNotStarted PunchStatus = "not_started"
	PunchWorking    PunchStatus = "working"
	PunchFinished   PunchStatus = "finished"
)

// Label returns the status text shown next to the punch buttons
func (s PunchStatus) Label() string {
	switch s {
	case PunchWorking:
		return "稼働中"
	case PunchFinished:
		return "退勤済み"
	default:
		return "未出勤"
	}
}

// TimeRecord is one day's attendance for one client.
// At most one record exists per (ClientID, Date).
type TimeRecord struct {
	ID          int64
	ClientID    string
	Date        string // YYYY-MM-DD
	StartTime   *worktime.Clock
	EndTime     *worktime.Clock
	RestMinutes int
	Note        string
	IsOff       *bool // nil = follow the client holiday policy
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTimeRecord creates an empty record for a day, seeded with the client's break
func NewTimeRecord(client *Client, date string) *TimeRecord {
	now := time.Now()
	return &TimeRecord{
		ClientID:    client.ID,
		Date:        date,
		RestMinutes: client.DefaultRestMinutes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Status returns the punch status of a record. A nil record has not started.
func (r *TimeRecord) Status() PunchStatus {
	switch {
	case r == nil || r.StartTime == nil:
		return PunchNotStarted
	case r.EndTime == nil:
		return PunchWorking
	default:
		return PunchFinished
	}
}

// IsComplete returns true if both punches are present
func (r *TimeRecord) IsComplete() bool {
	return r != nil && r.StartTime != nil && r.EndTime != nil
}

// ExplicitlyOff returns true only when the off override is set to true
func (r *TimeRecord) ExplicitlyOff() bool {
	return r != nil && r.IsOff != nil && *r.IsOff
}

// WorkedHours returns the net hours of a complete record
func (r *TimeRecord) WorkedHours() (float64, bool) {
	if r == nil {
		return 0, false
	}
	return worktime.CalcWorkingHours(r.StartTime, r.EndTime, r.RestMinutes)
}

// WorkedMinutes returns the net minutes of a complete record
func (r *TimeRecord) WorkedMinutes() (int, bool) {
	if r == nil {
		return 0, false
	}
	return worktime.CalcWorkingMinutes(r.StartTime, r.EndTime, r.RestMinutes)
}

// Day parses the record date
func (r *TimeRecord) Day() (time.Time, error) {
	return worktime.ParseDate(r.Date)
}

// Validate returns an error if the record is invalid
func (r *TimeRecord) Validate() error {
	if r.ClientID == "" {
		return errors.New("client ID is required")
	}
	if _, err := worktime.ParseDate(r.Date); err != nil {
		return err
	}
	if r.RestMinutes < 0 {
		return errors.New("rest minutes cannot be negative")
	}
	return nil
}

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool {
	return &b
}
