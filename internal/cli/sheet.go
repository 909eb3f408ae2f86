package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

var (
	sheetHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EA7828")).Padding(0, 1)
	sheetCellStyle    = lipgloss.NewStyle().Padding(0, 1)
	sheetOffStyle     = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#969696"))
	sheetMissingStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#E05252"))
	sheetTodayStyle   = lipgloss.NewStyle().Padding(0, 1).Bold(true)
)

var sheetHeaders = []string{"日付", "曜日", "開始", "終了", "休憩", "稼働", "状態", "備考"}

// sheetRows flattens the month into table cells
func sheetRows(sheet *attendance.MonthSheet) [][]string {
	rows := make([][]string, len(sheet.Days))
	for i, d := range sheet.Days {
		start, end, rest, worked, note := "", "", "", "", ""
		if d.Record != nil {
			start = clockOrDash(d.Record.StartTime)
			end = clockOrDash(d.Record.EndTime)
			rest = worktime.FormatRestMinutes(d.Record.RestMinutes)
			note = d.Record.Note
		}
		if d.HasHours {
			worked = worktime.FormatHoursToHHMM(d.Hours)
		}
		if d.HolidayName != "" {
			note = strings.TrimSpace(d.HolidayName + " " + note)
		}

		rows[i] = []string{
			fmt.Sprintf("%d/%d", d.Date.Month(), d.Date.Day()),
			d.Weekday,
			start,
			end,
			rest,
			worked,
			stateLabel(d),
			truncate(note, 24),
		}
	}
	return rows
}

func stateLabel(d attendance.SheetDay) string {
	switch {
	case d.Off:
		return "休"
	case d.Missing:
		return "未入力"
	case d.State == attendance.StateComplete:
		return "済"
	case d.IsToday:
		return d.Record.Status().Label()
	default:
		return ""
	}
}

// renderSheet writes the grid followed by the total, estimate and missing days
func renderSheet(w io.Writer, sheet *attendance.MonthSheet, styled bool) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(sheetHeaders...).
		Rows(sheetRows(sheet)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if !styled {
				return sheetCellStyle
			}
			if row == table.HeaderRow {
				return sheetHeaderStyle
			}
			if row < 0 || row >= len(sheet.Days) {
				return sheetCellStyle
			}
			d := sheet.Days[row]
			switch {
			case d.Off:
				return sheetOffStyle
			case d.Missing:
				return sheetMissingStyle
			case d.IsToday:
				return sheetTodayStyle
			default:
				return sheetCellStyle
			}
		})

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %d年%d月\n", sheet.Client.Name, sheet.Year, int(sheet.Month))
	fmt.Fprintln(&b, t.Render())
	fmt.Fprintf(&b, "合計: %s (%.2fh)  契約: %gh 〜 %gh\n",
		worktime.FormatHoursToHHMM(sheet.TotalHours), sheet.TotalHours,
		sheet.Client.MinHours, sheet.Client.MaxHours)
	if sheet.HasEstimate {
		fmt.Fprintf(&b, "見込み: %s (%.2fh)\n", worktime.FormatHoursToHHMM(sheet.Estimate), sheet.Estimate)
	}
	if len(sheet.MissingDates) > 0 {
		fmt.Fprintf(&b, "未入力: %s\n", strings.Join(sheet.MissingDates, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
