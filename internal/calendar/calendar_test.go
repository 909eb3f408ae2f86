package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysInMonth(t *testing.T) {
	assert.Len(t, DaysInMonth(2024, time.February), 29)
	assert.Len(t, DaysInMonth(2026, time.February), 28)
	assert.Len(t, DaysInMonth(2026, time.April), 30)

	days := DaysInMonth(2026, time.January)
	require.Len(t, days, 31)
	assert.Equal(t, 1, days[0].Day())
	assert.Equal(t, 31, days[30].Day())
	for i := 1; i < len(days); i++ {
		assert.True(t, days[i].After(days[i-1]))
	}

	assert.Panics(t, func() { DaysInMonth(2026, 13) })
	assert.Panics(t, func() { DaysInMonth(2026, 0) })
}

func TestWeekdayLabel(t *testing.T) {
	assert.Equal(t, "木", WeekdayLabel(day(2026, 1, 1)))
	assert.Equal(t, "土", WeekdayLabel(day(2026, 1, 3)))
	assert.Equal(t, "日", WeekdayLabel(day(2026, 1, 4)))
	assert.Equal(t, "月", WeekdayLabel(day(2026, 1, 5)))
}

func TestJapanHolidays(t *testing.T) {
	jp := NewJapanHolidays()

	tests := []struct {
		date time.Time
		want string
	}{
		{day(2026, 1, 1), "元日"},
		{day(2026, 1, 12), "成人の日"},
		{day(2026, 2, 23), "天皇誕生日"},
		{day(2026, 3, 20), "春分の日"},
		{day(2026, 5, 6), "振替休日"},
		{day(2026, 9, 21), "敬老の日"},
		{day(2026, 9, 22), "国民の休日"},
		{day(2026, 9, 23), "秋分の日"},
		{day(2026, 10, 12), "スポーツの日"},
		{day(2025, 11, 24), "振替休日"},
		{day(2024, 3, 20), "春分の日"},
		{day(2019, 4, 30), "国民の休日"},
		{day(2019, 5, 1), "天皇の即位の日"},
		{day(2019, 5, 6), "振替休日"},
		{day(2020, 7, 24), "スポーツの日"},
		{day(2020, 8, 10), "山の日"},
		{day(2018, 12, 24), "振替休日"},
		{day(2006, 5, 4), "国民の休日"},
		{day(1999, 1, 15), "成人の日"},
		{day(1999, 10, 10), "体育の日"},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			name, ok := jp.NameFor(tt.date)
			assert.True(t, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestJapanHolidays_NotHoliday(t *testing.T) {
	jp := NewJapanHolidays()
	for _, d := range []time.Time{
		day(2026, 1, 6),
		day(2026, 1, 15),
		day(2019, 12, 23),
		day(2020, 10, 12),
		day(1979, 1, 1),
		day(2100, 1, 1),
	} {
		_, ok := jp.NameFor(d)
		assert.False(t, ok, d.Format("2006-01-02"))
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver(NewJapanHolidays())

	assert.True(t, r.IsNationalHoliday(day(2026, 1, 1)))
	assert.False(t, r.IsNationalHoliday(day(2026, 1, 6)))

	name, ok := r.NationalHolidayName(day(2026, 1, 12))
	assert.True(t, ok)
	assert.Equal(t, "成人の日", name)

	may := r.MonthHolidays(2026, time.May)
	require.Len(t, may, 4)
	assert.Equal(t, 3, may[0].Date.Day())
	assert.Equal(t, "振替休日", may[3].Name)
}

func TestResolver_NilLookup(t *testing.T) {
	r := NewResolver(nil)
	assert.False(t, r.IsNationalHoliday(day(2026, 1, 1)))
	assert.Empty(t, r.MonthHolidays(2026, time.January))
}

func TestResolver_InjectedLookup(t *testing.T) {
	r := NewResolver(LookupFunc(func(d time.Time) (string, bool) {
		return "test", d.Day() == 15
	}))
	assert.True(t, r.IsNationalHoliday(day(2026, 4, 15)))
	assert.Len(t, r.MonthHolidays(2026, time.April), 1)
}

func writeOverrides(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestFileHolidays_Load(t *testing.T) {
	path := writeOverrides(t, `
holidays:
  - date: 2026-12-29
    name: 年末休暇
  - date: 2026-05-06
    off: false
  - date: not-a-date
    name: broken
  - date: 2026-08-14
`)

	fh := NewFileHolidays(path, zap.NewNop())
	require.NoError(t, fh.Load())
	assert.Equal(t, 2, fh.Len())

	name, holiday, found := fh.Override(day(2026, 12, 29))
	assert.True(t, found)
	assert.True(t, holiday)
	assert.Equal(t, "年末休暇", name)

	_, holiday, found = fh.Override(day(2026, 5, 6))
	assert.True(t, found)
	assert.False(t, holiday)

	_, _, found = fh.Override(day(2026, 8, 14))
	assert.False(t, found)
}

func TestFileHolidays_MissingFile(t *testing.T) {
	fh := NewFileHolidays(filepath.Join(t.TempDir(), "absent.yaml"), zap.NewNop())
	assert.NoError(t, fh.Load())
	assert.Zero(t, fh.Len())
}

func TestFileHolidays_InvalidYAML(t *testing.T) {
	fh := NewFileHolidays(writeOverrides(t, "holidays: [:"), zap.NewNop())
	assert.Error(t, fh.Load())
}

func TestCompositeLookup(t *testing.T) {
	path := writeOverrides(t, `
holidays:
  - date: 2026-12-29
    name: 年末休暇
  - date: 2026-05-06
    off: false
`)

	cl := NewCompositeLookup(NewFileHolidays(path, zap.NewNop()), NewJapanHolidays(), zap.NewNop())
	require.NoError(t, cl.LoadOverrides())

	name, ok := cl.NameFor(day(2026, 12, 29))
	assert.True(t, ok)
	assert.Equal(t, "年末休暇", name)

	_, ok = cl.NameFor(day(2026, 5, 6))
	assert.False(t, ok, "override cancels the substitute holiday")

	name, ok = cl.NameFor(day(2026, 1, 1))
	assert.True(t, ok)
	assert.Equal(t, "元日", name)
}

func TestCompositeLookup_NoOverrides(t *testing.T) {
	cl := NewCompositeLookup(nil, NewJapanHolidays(), zap.NewNop())
	require.NoError(t, cl.LoadOverrides())

	_, ok := cl.NameFor(day(2026, 1, 12))
	assert.True(t, ok)
}
