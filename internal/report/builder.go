package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

const Title = "稼働報告書"

var (
	SummaryHeaders = []string{"年月", "標準工数", "稼働時間合計"}
	DetailHeaders  = []string{"日付", "曜日", "開始", "終了", "休憩", "稼働時間", "業務内容・備考"}
)

// Row is one day of the detail table. Off rows have blank time columns.
type Row struct {
	Key     string // YYYY-MM-DD
	Date    string // M/D
	Weekday string
	Start   string
	End     string
	Break   string
	Worked  string
	Note    string
	Off     bool
}

// Cells returns the row in DetailHeaders order
func (r Row) Cells() []string {
	return []string{r.Date, r.Weekday, r.Start, r.End, r.Break, r.Worked, r.Note}
}

type Summary struct {
	Period     string // YYYY年M月
	Range      string // {min}h 〜 {max}h
	TotalHours float64
	Total      string // H:MM (x.xxh)
}

// Cells returns the summary in SummaryHeaders order
func (s Summary) Cells() []string {
	return []string{s.Period, s.Range, s.Total}
}

// Document is everything a renderer needs for one monthly report
type Document struct {
	Addressee string
	Title     string
	Worker    string
	Summary   Summary
	Remarks   string
	Rows      []Row
	Filename  string // resolved from the client template, not yet made filesystem safe
}

// BuildRows produces one row per day of the month
func BuildRows(client *domain.Client, records []*domain.TimeRecord, year int, month time.Month, policy *attendance.Policy) []Row {
	byDate := make(map[string]*domain.TimeRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	days := calendar.DaysInMonth(year, month)
	rows := make([]Row, 0, len(days))
	for _, day := range days {
		key := worktime.DateKey(day)
		rec := byDate[key]

		row := Row{
			Key:     key,
			Date:    fmt.Sprintf("%d/%d", int(month), day.Day()),
			Weekday: calendar.WeekdayLabel(day),
			Off:     policy.EffectiveOff(day, client, rec),
		}
		if rec != nil {
			row.Note = rec.Note
		}
		if !row.Off && rec != nil {
			if rec.StartTime != nil {
				row.Start = rec.StartTime.String()
				if rec.RestMinutes > 0 {
					row.Break = worktime.FormatRestMinutes(rec.RestMinutes)
				}
			}
			if rec.EndTime != nil {
				row.End = rec.EndTime.String()
			}
			if h, ok := rec.WorkedHours(); ok {
				row.Worked = worktime.FormatHoursToHHMM(h)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// BuildSummary produces the header block of the report
func BuildSummary(client *domain.Client, records []*domain.TimeRecord, year int, month time.Month, policy *attendance.Policy) Summary {
	inMonth := make([]*domain.TimeRecord, 0, len(records))
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	for _, r := range records {
		if strings.HasPrefix(r.Date, prefix) {
			inMonth = append(inMonth, r)
		}
	}
	total := attendance.NewAggregator(policy).TotalWorkedHoursForClient(inMonth, client)

	return Summary{
		Period:     fmt.Sprintf("%d年%d月", year, int(month)),
		Range:      fmt.Sprintf("%sh 〜 %sh", formatNumber(client.MinHours), formatNumber(client.MaxHours)),
		TotalHours: total,
		Total:      fmt.Sprintf("%s (%.2fh)", worktime.FormatHoursToHHMM(total), total),
	}
}

// BuildDocument assembles the full report
func BuildDocument(client *domain.Client, worker string, records []*domain.TimeRecord, year int, month time.Month, remarks string, policy *attendance.Policy) *Document {
	return &Document{
		Addressee: client.Name + " 御中",
		Title:     Title,
		Worker:    worker,
		Summary:   BuildSummary(client, records, year, month, policy),
		Remarks:   strings.TrimSpace(remarks),
		Rows:      BuildRows(client, records, year, month, policy),
		Filename:  ResolveFilename(client.PDFFilenameTemplate, year, month, client.Name),
	}
}

// WorkerLine is the worker caption printed under the title
func (d *Document) WorkerLine() string {
	return "業務従事者: " + d.Worker
}

// RemarksLine is the remarks caption, empty when there are none
func (d *Document) RemarksLine() string {
	if d.Remarks == "" {
		return ""
	}
	return "備考: " + d.Remarks
}

// ResolveFilename substitutes the first occurrence of each template token
func ResolveFilename(template string, year int, month time.Month, clientName string) string {
	name := strings.Replace(template, "{YYYY}", strconv.Itoa(year), 1)
	name = strings.Replace(name, "{MM}", fmt.Sprintf("%02d", int(month)), 1)
	return strings.Replace(name, "{CLIENT}", clientName, 1)
}

var unsafeFilenameChars = strings.NewReplacer(
	"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
	"\"", "_", "<", "_", ">", "_", "|", "_",
)

// SafeFilename makes a resolved name usable as a file name on common filesystems
func SafeFilename(name string) string {
	name = unsafeFilenameChars.Replace(name)
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, " .")
	if name == "" {
		return "report"
	}
	return name
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
