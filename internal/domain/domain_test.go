package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayasakashogo/worklog/internal/worktime"
)

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("  ACME  ")

	assert.Equal(t, "ACME", c.Name)
	assert.Len(t, c.ID, 36)
	assert.Equal(t, 140.0, c.MinHours)
	assert.Equal(t, 180.0, c.MaxHours)
	assert.Equal(t, "09:00", c.DefaultStartTime.String())
	assert.Equal(t, "18:00", c.DefaultEndTime.String())
	assert.Equal(t, 60, c.DefaultRestMinutes)
	assert.ElementsMatch(t, []time.Weekday{time.Sunday, time.Saturday}, c.Holidays)
	assert.True(t, c.IncludeNationalHolidays)
	assert.Equal(t, "{YYYY}年{MM}月_稼働報告書", c.PDFFilenameTemplate)
	assert.Equal(t, 8.0, c.DefaultWorkHours())
	require.NoError(t, c.Validate())

	assert.NotEqual(t, c.ID, NewClient("other").ID)
}

func TestClient_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Client)
	}{
		{"empty name", func(c *Client) { c.Name = "  " }},
		{"negative min", func(c *Client) { c.MinHours = -1 }},
		{"min above max", func(c *Client) { c.MinHours = 200 }},
		{"negative rest", func(c *Client) { c.DefaultRestMinutes = -5 }},
		{"end before start", func(c *Client) { c.DefaultEndTime = worktime.NewClock(8, 0) }},
		{"bad weekday", func(c *Client) { c.Holidays = []time.Weekday{7} }},
		{"empty template", func(c *Client) { c.PDFFilenameTemplate = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient("ACME")
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestClient_IsWeeklyHoliday(t *testing.T) {
	c := NewClient("ACME")
	assert.True(t, c.IsWeeklyHoliday(time.Saturday))
	assert.True(t, c.IsWeeklyHoliday(time.Sunday))
	assert.False(t, c.IsWeeklyHoliday(time.Wednesday))
}

func TestTimeRecord_Status(t *testing.T) {
	c := NewClient("ACME")

	var missing *TimeRecord
	assert.Equal(t, PunchNotStarted, missing.Status())

	r := NewTimeRecord(c, "2026-01-05")
	assert.Equal(t, 60, r.RestMinutes)
	assert.Equal(t, PunchNotStarted, r.Status())
	assert.False(t, r.IsComplete())

	r.StartTime = worktime.NewClock(9, 0).Ptr()
	assert.Equal(t, PunchWorking, r.Status())
	assert.Equal(t, "稼働中", r.Status().Label())

	r.EndTime = worktime.NewClock(18, 0).Ptr()
	assert.Equal(t, PunchFinished, r.Status())
	assert.True(t, r.IsComplete())

	h, ok := r.WorkedHours()
	assert.True(t, ok)
	assert.Equal(t, 8.0, h)
}

func TestTimeRecord_ExplicitlyOff(t *testing.T) {
	r := NewTimeRecord(NewClient("ACME"), "2026-01-05")
	assert.False(t, r.ExplicitlyOff())

	r.IsOff = BoolPtr(false)
	assert.False(t, r.ExplicitlyOff())

	r.IsOff = BoolPtr(true)
	assert.True(t, r.ExplicitlyOff())
}

func TestTimeRecord_Validate(t *testing.T) {
	r := NewTimeRecord(NewClient("ACME"), "2026-01-05")
	require.NoError(t, r.Validate())

	r.Date = "2026-1-5"
	assert.Error(t, r.Validate())

	r.Date = "2026-01-05"
	r.RestMinutes = -1
	assert.Error(t, r.Validate())

	r.RestMinutes = 0
	r.ClientID = ""
	assert.Error(t, r.Validate())
}
