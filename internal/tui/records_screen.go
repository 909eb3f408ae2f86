package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hayasakashogo/worklog/internal/app"
	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/service"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

// editable grid columns, in display order
var recordColumns = []string{service.FieldStart, service.FieldEnd, service.FieldRest, service.FieldNote}

var recordColumnLabels = map[string]string{
	service.FieldStart: "開始",
	service.FieldEnd:   "終了",
	service.FieldRest:  "休憩(分)",
	service.FieldNote:  "備考",
}

type recordsDataMsg struct {
	sheet *attendance.MonthSheet
	err   error
}

type recordSavedMsg struct {
	date string
	err  error
}

// RecordsModel is the editable monthly grid
type RecordsModel struct {
	app     *app.App
	session *session

	year  int
	month time.Month
	sheet *attendance.MonthSheet

	row int
	col int

	editing bool
	input   textinput.Model

	loading   bool
	err       error
	statusMsg string
}

// NewRecordsModel creates the grid screen for the current month, cursor on today
func NewRecordsModel(a *app.App, s *session) tea.Model {
	now := time.Now()
	return &RecordsModel{
		app:     a,
		session: s,
		year:    now.Year(),
		month:   now.Month(),
		row:     now.Day() - 1,
		loading: true,
	}
}

// IsCapturingInput returns true while a cell is being edited
func (m *RecordsModel) IsCapturingInput() bool {
	return m.editing
}

func (m *RecordsModel) Init() tea.Cmd {
	return m.loadMonth()
}

func (m *RecordsModel) loadMonth() tea.Cmd {
	clientID, year, month := m.session.clientID, m.year, m.month
	return func() tea.Msg {
		if clientID == "" {
			return recordsDataMsg{}
		}
		sheet, err := m.app.RecordService.Month(context.Background(), clientID, year, month)
		return recordsDataMsg{sheet: sheet, err: err}
	}
}

func (m *RecordsModel) selectedDay() *attendance.SheetDay {
	if m.sheet == nil || m.row < 0 || m.row >= len(m.sheet.Days) {
		return nil
	}
	return &m.sheet.Days[m.row]
}

// cellValue is the editable text of a cell
func cellValue(d *attendance.SheetDay, field string) string {
	r := d.Record
	if r == nil {
		return ""
	}
	switch field {
	case service.FieldStart:
		if r.StartTime != nil {
			return r.StartTime.String()
		}
	case service.FieldEnd:
		if r.EndTime != nil {
			return r.EndTime.String()
		}
	case service.FieldRest:
		return strconv.Itoa(r.RestMinutes)
	case service.FieldNote:
		return r.Note
	}
	return ""
}

func (m *RecordsModel) startEdit() tea.Cmd {
	d := m.selectedDay()
	if d == nil {
		return nil
	}
	field := recordColumns[m.col]
	width := 8
	if field == service.FieldNote {
		width = 40
	}
	m.input = newInput(recordColumnLabels[field], 200, width, cellValue(d, field))
	m.editing = true
	return m.input.Focus()
}

func (m *RecordsModel) saveCell() tea.Cmd {
	d := m.selectedDay()
	clientID, field, value := m.session.clientID, recordColumns[m.col], m.input.Value()
	return func() tea.Msg {
		_, err := m.app.RecordService.Edit(context.Background(), clientID, d.Key, field, value)
		return recordSavedMsg{date: d.Key, err: err}
	}
}

func (m *RecordsModel) toggleOff() tea.Cmd {
	d := m.selectedDay()
	if d == nil {
		return nil
	}
	clientID, date, off := m.session.clientID, d.Key, !d.Off
	return func() tea.Msg {
		_, err := m.app.RecordService.SetOff(context.Background(), clientID, date, off)
		return recordSavedMsg{date: date, err: err}
	}
}

func (m *RecordsModel) shiftMonth(delta int) tea.Cmd {
	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	m.year, m.month = first.Year(), first.Month()
	m.row = 0
	m.loading = true
	return m.loadMonth()
}

func (m *RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.updateEdit(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.loadMonth()

	case recordsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.sheet = msg.sheet
			if m.sheet != nil && m.row >= len(m.sheet.Days) {
				m.row = len(m.sheet.Days) - 1
			}
		}
		return m, nil

	case recordSavedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.statusMsg = "Saved " + msg.date
		}
		return m, m.loadMonth()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.err = nil
		m.statusMsg = ""

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.sheet != nil && m.row < len(m.sheet.Days)-1 {
				m.row++
			}
		case key.Matches(msg, DefaultKeyMap.Left):
			if m.col > 0 {
				m.col--
			}
		case key.Matches(msg, DefaultKeyMap.Right):
			if m.col < len(recordColumns)-1 {
				m.col++
			}
		case msg.String() == "[":
			return m, m.shiftMonth(-1)
		case msg.String() == "]":
			return m, m.shiftMonth(1)
		case key.Matches(msg, DefaultKeyMap.Select), key.Matches(msg, DefaultKeyMap.Edit):
			return m, m.startEdit()
		case key.Matches(msg, DefaultKeyMap.Off):
			return m, m.toggleOff()
		}
	}

	return m, nil
}

func (m *RecordsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.editing = false
		m.statusMsg = "Saved " + msg.date
		return m, m.loadMonth()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.editing = false
			m.err = nil
			return m, nil
		case "enter":
			return m, m.saveCell()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *RecordsModel) View() string {
	if m.session.clientID == "" {
		return subtitleStyle.Render("  No client selected. Press C to add or choose one.")
	}
	if m.loading {
		return "Loading records..."
	}
	if m.sheet == nil {
		return errorTextStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	sh := m.sheet
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %d年%d月", sh.Client.Name, sh.Year, int(sh.Month))) + "\n\n")

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("  %-6s %-3s %-6s %-6s %-8s %-6s %s", "日付", "曜", "開始", "終了", "休憩", "稼働", "備考")) + "\n")
	for i := range sh.Days {
		b.WriteString(m.renderRow(i) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  合計 %s (%.2fh)  契約 %gh 〜 %gh", formatHours(sh.TotalHours), sh.TotalHours, sh.Client.MinHours, sh.Client.MaxHours))
	if sh.HasEstimate {
		b.WriteString(fmt.Sprintf("  見込み %s", formatHours(sh.Estimate)))
	}
	b.WriteString("\n")
	if len(sh.MissingDates) > 0 {
		b.WriteString(missingRowStyle.Render(fmt.Sprintf("  未入力 %d日", len(sh.MissingDates))) + "\n")
	}

	if m.editing {
		d := m.selectedDay()
		b.WriteString(fmt.Sprintf("\n  %s %s: %s\n", d.Key, recordColumnLabels[recordColumns[m.col]], m.input.View()))
		b.WriteString(helpStyle.Render("  enter: save  esc: cancel  (times are floored to 5 minutes, empty clears)"))
	} else {
		b.WriteString("\n" + helpStyle.Render("  j/k: day  h/l: column  enter/e: edit  f: toggle day off  [ ]: month"))
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + successTextStyle.Render("  "+m.statusMsg))
	}
	if m.err != nil {
		b.WriteString("\n" + errorTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}
	return b.String()
}

func (m *RecordsModel) renderRow(i int) string {
	d := m.sheet.Days[i]
	selected := i == m.row

	cells := make([]string, len(recordColumns))
	for c, field := range recordColumns {
		v := cellValue(&d, field)
		switch field {
		case service.FieldStart, service.FieldEnd:
			if v == "" {
				v = "--:--"
			}
		case service.FieldRest:
			if d.Record != nil {
				v = worktime.FormatRestMinutes(d.Record.RestMinutes)
			}
		case service.FieldNote:
			if d.HolidayName != "" {
				v = strings.TrimSpace(d.HolidayName + " " + v)
			}
			v = truncateStr(v, 24)
		}
		if selected && c == m.col && !m.editing {
			v = selectedStyle.Render(v)
		}
		cells[c] = v
	}

	worked := ""
	if d.HasHours {
		worked = formatHours(d.Hours)
	}

	marker := "  "
	if selected {
		marker = "> "
	}
	line := fmt.Sprintf("%s%-6s %-3s %-6s %-6s %-8s %-6s %s",
		marker, fmt.Sprintf("%d/%d", d.Date.Month(), d.Date.Day()), d.Weekday,
		cells[0], cells[1], cells[2], worked, cells[3])

	var style lipgloss.Style
	switch {
	case d.Off:
		style = offRowStyle
	case d.Missing:
		style = missingRowStyle
	case d.IsToday:
		style = todayRowStyle
	default:
		return line
	}
	return style.Render(line)
}
