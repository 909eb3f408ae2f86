package report

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

func testPolicy() *attendance.Policy {
	return attendance.NewPolicy(calendar.NewResolver(calendar.NewJapanHolidays()))
}

func record(client *domain.Client, date, start, end string) *domain.TimeRecord {
	r := domain.NewTimeRecord(client, date)
	if start != "" {
		r.StartTime = worktime.MustParseClock(start).Ptr()
	}
	if end != "" {
		r.EndTime = worktime.MustParseClock(end).Ptr()
	}
	return r
}

func sampleDocument() *Document {
	c := domain.NewClient("ACME")
	records := []*domain.TimeRecord{
		record(c, "2026-01-05", "09:00", "18:00"),
		record(c, "2026-01-06", "09:30", "18:15"),
	}
	records[1].Note = "定例会議"
	return BuildDocument(c, "山田 太郎", records, 2026, time.January, "", testPolicy())
}

func TestBuildRows(t *testing.T) {
	c := domain.NewClient("ACME")
	off := record(c, "2026-01-07", "09:00", "18:00")
	off.IsOff = domain.BoolPtr(true)
	off.Note = "私用"
	noRest := record(c, "2026-01-08", "10:00", "15:00")
	noRest.RestMinutes = 0
	open := record(c, "2026-01-09", "09:00", "")

	records := []*domain.TimeRecord{record(c, "2026-01-05", "09:00", "18:00"), off, noRest, open}
	rows := BuildRows(c, records, 2026, time.January, testPolicy())
	require.Len(t, rows, 31)

	assert.Equal(t, "1/1", rows[0].Date)
	assert.Equal(t, "木", rows[0].Weekday)
	assert.True(t, rows[0].Off, "元日")

	assert.Equal(t, []string{"1/5", "月", "09:00", "18:00", "1:00", "8:00", ""}, rows[4].Cells())
	assert.False(t, rows[4].Off)

	assert.Equal(t, []string{"1/7", "水", "", "", "", "", "私用"}, rows[6].Cells())
	assert.True(t, rows[6].Off)

	assert.Equal(t, "", rows[7].Break, "no break shown when rest is zero")
	assert.Equal(t, "5:00", rows[7].Worked)

	assert.Equal(t, "09:00", rows[8].Start)
	assert.Equal(t, "1:00", rows[8].Break)
	assert.Equal(t, "", rows[8].Worked)

	assert.Equal(t, []string{"1/13", "火", "", "", "", "", ""}, rows[12].Cells())
}

func TestBuildSummary(t *testing.T) {
	c := domain.NewClient("ACME")
	off := record(c, "2026-01-07", "09:00", "18:00")
	off.IsOff = domain.BoolPtr(true)
	records := []*domain.TimeRecord{
		record(c, "2026-01-05", "09:00", "18:00"),
		record(c, "2026-01-06", "09:00", "17:15"),
		off,
		record(c, "2026-02-02", "09:00", "18:00"),
	}

	s := BuildSummary(c, records, 2026, time.January, testPolicy())
	assert.Equal(t, "2026年1月", s.Period)
	assert.Equal(t, "140h 〜 180h", s.Range)
	assert.Equal(t, 15.25, s.TotalHours)
	assert.Equal(t, "15:15 (15.25h)", s.Total)

	c.MinHours = 140.5
	assert.Equal(t, "140.5h 〜 180h", BuildSummary(c, nil, 2026, time.January, testPolicy()).Range)
	assert.Equal(t, "0:00 (0.00h)", BuildSummary(c, nil, 2026, time.January, testPolicy()).Total)
}

func TestBuildDocument(t *testing.T) {
	doc := sampleDocument()

	assert.Equal(t, "ACME 御中", doc.Addressee)
	assert.Equal(t, "稼働報告書", doc.Title)
	assert.Equal(t, "業務従事者: 山田 太郎", doc.WorkerLine())
	assert.Equal(t, "", doc.RemarksLine())
	assert.Equal(t, "2026年01月_稼働報告書", doc.Filename)
	assert.Len(t, doc.Rows, 31)

	doc.Remarks = "交通費別途"
	assert.Equal(t, "備考: 交通費別途", doc.RemarksLine())
}

func TestResolveFilename(t *testing.T) {
	assert.Equal(t, "2026年01月_ACME", ResolveFilename("{YYYY}年{MM}月_{CLIENT}", 2026, time.January, "ACME"))
	assert.Equal(t, "2026-12", ResolveFilename("{YYYY}-{MM}", 2026, time.December, "ACME"))
	assert.Equal(t, "2026_{YYYY}", ResolveFilename("{YYYY}_{YYYY}", 2026, time.March, "ACME"), "first occurrence only")
	assert.Equal(t, "static", ResolveFilename("static", 2026, time.March, "ACME"))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "2026年01月_A_B", SafeFilename("2026年01月_A/B"))
	assert.Equal(t, "a_b_c_d", SafeFilename(`a:b*c?d`))
	assert.Equal(t, "name", SafeFilename(" name. "))
	assert.Equal(t, "report", SafeFilename(".."))
	assert.Equal(t, "tab_x", SafeFilename("tab\tx"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = NewRenderer(Format("csv"), "")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestXLSXRenderer(t *testing.T) {
	doc := sampleDocument()
	doc.Remarks = "交通費別途"

	var buf bytes.Buffer
	require.NoError(t, NewXLSXRenderer().Render(&buf, doc))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(xlsxSheet, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "ACME 御中", get("A1"))
	assert.Equal(t, "稼働報告書", get("A3"))
	assert.Equal(t, "業務従事者: 山田 太郎", get("A4"))
	assert.Equal(t, "年月", get("A6"))
	assert.Equal(t, "2026年1月", get("A7"))
	assert.Equal(t, "15:45 (15.75h)", get("C7"))
	assert.Equal(t, "備考: 交通費別途", get("A8"))
	assert.Equal(t, "【稼働詳細】", get("A10"))
	assert.Equal(t, "日付", get("A11"))
	assert.Equal(t, "1/1", get("A12"))
	assert.Equal(t, "1/6", get("A17"))
	assert.Equal(t, "定例会議", get("G17"))
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableRenderer{}).Render(&buf, sampleDocument()))

	out := buf.String()
	assert.Contains(t, out, "ACME 御中")
	assert.Contains(t, out, "稼働時間合計")
	assert.Contains(t, out, "15:45 (15.75h)")
	assert.Contains(t, out, "定例会議")
	assert.Equal(t, 1, strings.Count(out, "【稼働詳細】"))
}

func TestPDFRenderer_FontRequired(t *testing.T) {
	var buf bytes.Buffer
	err := NewPDFRenderer("").Render(&buf, sampleDocument())
	assert.ErrorIs(t, err, ErrFontRequired)

	err = NewPDFRenderer("/nonexistent/font.ttf").Render(&buf, sampleDocument())
	assert.ErrorIs(t, err, ErrFontRequired)
	assert.Zero(t, buf.Len())
}

func TestPDFRenderer(t *testing.T) {
	fontPath := os.Getenv("WORKLOG_TEST_FONT")
	if fontPath == "" {
		t.Skip("WORKLOG_TEST_FONT not set")
	}

	var buf bytes.Buffer
	require.NoError(t, NewPDFRenderer(fontPath).Render(&buf, sampleDocument()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
