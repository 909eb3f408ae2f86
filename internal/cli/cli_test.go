package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/events"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

var testNow = time.Date(2026, time.January, 20, 10, 0, 0, 0, time.Local)

func TestParseDay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "2026-01-20"},
		{"today", "2026-01-20"},
		{"2026-01-05", "2026-01-05"},
		{"yesterday", "2026-01-19"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDay(tt.input, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseDay("qwerty uiop", testNow)
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	y, m, err := parseMonth(nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.January, m)

	y, m, err = parseMonth([]string{"2025-12"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.December, m)

	y, m, err = parseMonth([]string{"2025-11-15"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.November, m)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ACME", truncate("ACME", 10))
	assert.Equal(t, "株式会社…", truncate("株式会社テスト", 5))
}

func TestHolidayMonths(t *testing.T) {
	months, err := holidayMonths([]string{"2026"}, testNow)
	require.NoError(t, err)
	assert.Len(t, months, 12)

	months, err = holidayMonths([]string{"2026-05"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, []yearMonth{{2026, time.May}}, months)

	_, err = holidayMonths([]string{"20x6"}, testNow)
	assert.Error(t, err)
}

func TestRenderSheet(t *testing.T) {
	client := domain.NewClient("ACME")
	agg := attendance.NewAggregator(attendance.NewPolicy(calendar.NewResolver(calendar.NewJapanHolidays())))

	rec := domain.NewTimeRecord(client, "2026-01-19")
	rec.StartTime = worktime.MustParseClock("09:00").Ptr()
	rec.EndTime = worktime.MustParseClock("18:00").Ptr()
	rec.Note = "定例"

	sheet := agg.Sheet([]*domain.TimeRecord{rec}, client, 2026, time.January, testNow)

	var buf bytes.Buffer
	require.NoError(t, renderSheet(&buf, sheet, false))
	out := buf.String()

	assert.Contains(t, out, "ACME  2026年1月")
	assert.Contains(t, out, "成人の日")
	assert.Contains(t, out, "8:00")
	assert.Contains(t, out, "定例")
	assert.Contains(t, out, "合計: 8:00 (8.00h)")
	assert.Contains(t, out, "見込み:")
	assert.Contains(t, out, "未入力: 2026-01-02")
}

func TestDrainChanges(t *testing.T) {
	ch := make(chan events.Change, 4)
	ch <- events.Change{Kind: events.KindEdit}
	ch <- events.Change{Kind: events.KindNote}
	assert.Equal(t, 2, drainChanges(ch))
	assert.Equal(t, 0, drainChanges(ch))

	close(ch)
	assert.Equal(t, 0, drainChanges(ch))
}

func TestCommandsWithoutAppFail(t *testing.T) {
	SetApp(nil)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	rootCmd.SetArgs([]string{"records", "edit", "2026-01-05", "note", "help"})
	var err error
	assert.NotPanics(t, func() { err = rootCmd.Execute() })
	assert.ErrorIs(t, err, errNoApp)

	rootCmd.SetArgs([]string{"help", "punch"})
	assert.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "punch")
}
