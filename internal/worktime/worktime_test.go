package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloorToFiveMinutes(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
		want   string
	}{
		{"09:07 floors to 09:05", 9, 7, "09:05"},
		{"18:13 floors to 18:10", 18, 13, "18:10"},
		{"aligned time unchanged", 10, 30, "10:30"},
		{"00:04 floors to midnight", 0, 4, "00:00"},
		{"59 stays in the hour", 23, 59, "23:55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := time.Date(2026, 1, 1, tt.hour, tt.minute, 42, 0, time.Local)
			assert.Equal(t, tt.want, FloorToFiveMinutes(ts).String())
		})
	}
}

func TestFloorTimeString(t *testing.T) {
	got, err := FloorTimeString("09:07")
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)

	got, err = FloorTimeString("18:13:59")
	require.NoError(t, err)
	assert.Equal(t, "18:10", got)

	_, err = FloorTimeString("18h13")
	assert.Error(t, err)
}

func TestTimeToMinutes(t *testing.T) {
	tests := map[string]int{
		"09:00":    540,
		"18:30":    1110,
		"00:00":    0,
		"18:30:15": 1110,
	}
	for in, want := range tests {
		got, err := TimeToMinutes(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseClock_Malformed(t *testing.T) {
	for _, in := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:5", "1:2:3:4"} {
		_, err := ParseClock(in)
		assert.Error(t, err, "expected error for %q", in)
	}
}

func TestCalcWorkingHours(t *testing.T) {
	nine := MustParseClock("09:00")
	six := MustParseClock("18:00")
	half := MustParseClock("09:30")

	h, ok := CalcWorkingHours(&nine, &six, 60)
	assert.True(t, ok)
	assert.Equal(t, 8.0, h)

	_, ok = CalcWorkingHours(nil, &six, 60)
	assert.False(t, ok)

	_, ok = CalcWorkingHours(&nine, nil, 60)
	assert.False(t, ok)

	h, ok = CalcWorkingHours(&nine, &half, 60)
	assert.True(t, ok)
	assert.Equal(t, 0.0, h)

	// end before start is not wrapped past midnight
	h, ok = CalcWorkingHours(&six, &nine, 0)
	assert.True(t, ok)
	assert.Equal(t, 0.0, h)
}

func TestFormatHoursToHHMM(t *testing.T) {
	assert.Equal(t, "8:00", FormatHoursToHHMM(8))
	assert.Equal(t, "7:30", FormatHoursToHHMM(7.5))
	assert.Equal(t, "0:00", FormatHoursToHHMM(0))
	assert.Equal(t, "160:15", FormatHoursToHHMM(160.25))
	assert.Equal(t, "8:00", FormatHoursToHHMM(7.9999))
}

func TestFormatRestMinutes(t *testing.T) {
	assert.Equal(t, "1:00", FormatRestMinutes(60))
	assert.Equal(t, "0:45", FormatRestMinutes(45))
	assert.Equal(t, "1:30", FormatRestMinutes(90))
}

func TestDefaultWorkHours(t *testing.T) {
	assert.Equal(t, 8.0, DefaultWorkHours(MustParseClock("09:00"), MustParseClock("18:00"), 60))
	assert.Equal(t, 7.5, DefaultWorkHours(MustParseClock("10:00"), MustParseClock("18:15"), 45))
}

func TestTodayString(t *testing.T) {
	now := time.Date(2026, 3, 7, 10, 0, 0, 0, time.Local)
	assert.Equal(t, "2026-03-07", TodayString(now))
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, TodayString(time.Now()))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())

	_, err = ParseDate("2026-02-30")
	assert.Error(t, err)
}
