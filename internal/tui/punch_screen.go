package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hayasakashogo/worklog/internal/app"
	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

// clockTickMsg keeps the displayed time current
type clockTickMsg struct{}

func tickClock() tea.Cmd {
	return tea.Tick(30*time.Second, func(time.Time) tea.Msg {
		return clockTickMsg{}
	})
}

type punchDataMsg struct {
	client *domain.Client
	record *domain.TimeRecord
	status domain.PunchStatus
	sheet  *attendance.MonthSheet
	err    error
}

type punchDoneMsg struct {
	status string
	err    error
}

// PunchModel is the home screen: today's punch state for the selected client
type PunchModel struct {
	app     *app.App
	session *session
	now     func() time.Time

	client *domain.Client
	record *domain.TimeRecord
	status domain.PunchStatus
	sheet  *attendance.MonthSheet

	editingNote bool
	note        textinput.Model

	loading   bool
	err       error
	statusMsg string
}

// NewPunchModel creates the punch screen
func NewPunchModel(a *app.App, s *session) tea.Model {
	return &PunchModel{
		app:     a,
		session: s,
		now:     time.Now,
		loading: true,
	}
}

// IsCapturingInput returns true while the memo is being edited
func (m *PunchModel) IsCapturingInput() bool {
	return m.editingNote
}

func (m *PunchModel) Init() tea.Cmd {
	return tea.Batch(m.loadData(), tickClock())
}

func (m *PunchModel) loadData() tea.Cmd {
	clientID := m.session.clientID
	return func() tea.Msg {
		if clientID == "" {
			return punchDataMsg{}
		}
		ctx := context.Background()

		client, err := m.app.ClientService.Resolve(ctx, clientID)
		if err != nil {
			return punchDataMsg{err: err}
		}
		record, status, err := m.app.PunchService.Today(ctx, clientID)
		if err != nil {
			return punchDataMsg{err: err}
		}
		now := m.now().Local()
		sheet, err := m.app.RecordService.Month(ctx, clientID, now.Year(), now.Month())
		if err != nil {
			return punchDataMsg{err: err}
		}
		return punchDataMsg{client: client, record: record, status: status, sheet: sheet}
	}
}

func (m *PunchModel) run(action func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := action(context.Background())
		return punchDoneMsg{status: status, err: err}
	}
}

func (m *PunchModel) punchIn() tea.Cmd {
	clientID := m.session.clientID
	return m.run(func(ctx context.Context) (string, error) {
		r, err := m.app.PunchService.PunchIn(ctx, clientID, nil)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Punched in at %s", r.StartTime), nil
	})
}

func (m *PunchModel) punchOut() tea.Cmd {
	clientID := m.session.clientID
	return m.run(func(ctx context.Context) (string, error) {
		r, err := m.app.PunchService.PunchOut(ctx, clientID, nil)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Punched out at %s", r.EndTime), nil
	})
}

func (m *PunchModel) toggleOff() tea.Cmd {
	clientID := m.session.clientID
	off := !m.todayOff()
	today := worktime.TodayString(m.now())
	return m.run(func(ctx context.Context) (string, error) {
		if _, err := m.app.PunchService.SetOff(ctx, clientID, today, off); err != nil {
			return "", err
		}
		if off {
			return "Today marked as a day off", nil
		}
		return "Today marked as a workday", nil
	})
}

func (m *PunchModel) saveNote() tea.Cmd {
	clientID := m.session.clientID
	note := m.note.Value()
	today := worktime.TodayString(m.now())
	return m.run(func(ctx context.Context) (string, error) {
		if _, err := m.app.PunchService.SaveNote(ctx, clientID, today, note); err != nil {
			return "", err
		}
		return "Memo saved", nil
	})
}

func (m *PunchModel) todayOff() bool {
	if m.client == nil {
		return false
	}
	day, _ := worktime.ParseDate(worktime.TodayString(m.now()))
	return m.app.Aggregator.Policy().EffectiveOff(day, m.client, m.record)
}

func (m *PunchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.loadData()

	case clockTickMsg:
		return m, tickClock()

	case punchDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.client = msg.client
			m.record = msg.record
			m.status = msg.status
			m.sheet = msg.sheet
		}
		return m, nil

	case punchDoneMsg:
		m.err = msg.err
		m.statusMsg = msg.status
		m.editingNote = false
		return m, m.loadData()

	case tea.KeyMsg:
		if m.editingNote {
			switch msg.String() {
			case "esc":
				m.editingNote = false
				return m, nil
			case "enter":
				return m, m.saveNote()
			}
			var cmd tea.Cmd
			m.note, cmd = m.note.Update(msg)
			return m, cmd
		}

		if m.client == nil {
			return m, nil
		}
		m.err = nil
		m.statusMsg = ""

		switch {
		case msg.String() == "i":
			return m, m.punchIn()
		case msg.String() == "o":
			return m, m.punchOut()
		case key.Matches(msg, DefaultKeyMap.Select):
			switch m.status {
			case domain.PunchNotStarted:
				return m, m.punchIn()
			case domain.PunchWorking:
				return m, m.punchOut()
			}
		case key.Matches(msg, DefaultKeyMap.Off):
			return m, m.toggleOff()
		case key.Matches(msg, DefaultKeyMap.Note):
			value := ""
			if m.record != nil {
				value = m.record.Note
			}
			m.note = newInput("今日のメモ", 200, 50, value)
			m.editingNote = true
			return m, m.note.Focus()
		}
	}

	return m, nil
}

func (m *PunchModel) View() string {
	if m.session.clientID == "" {
		return subtitleStyle.Render("  No client selected. Press C to add or choose one.")
	}
	if m.loading {
		return "Loading..."
	}
	if m.err != nil && m.client == nil {
		return errorTextStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	now := m.now().Local()
	day, _ := worktime.ParseDate(worktime.TodayString(now))

	var s string
	s += titleStyle.Render(m.client.Name) + "\n"
	dateLine := fmt.Sprintf("%d年%d月%d日 (%s)", now.Year(), int(now.Month()), now.Day(), calendar.WeekdayLabel(day))
	if name, ok := m.app.Holidays.NationalHolidayName(day); ok {
		dateLine += "  " + name
	}
	s += subtitleStyle.Render(dateLine) + "  " + clockStyle.Render(now.Format("15:04")) + "\n\n"

	s += "  Status: " + m.statusBadge() + "\n\n"
	if m.record != nil {
		s += fmt.Sprintf("  出勤 %s   退勤 %s   休憩 %s",
			clockOrBlank(m.record.StartTime),
			clockOrBlank(m.record.EndTime),
			worktime.FormatRestMinutes(m.record.RestMinutes))
		if hours, ok := m.record.WorkedHours(); ok {
			s += fmt.Sprintf("   稼働 %s", formatHours(hours))
		}
		s += "\n"
		if m.record.Note != "" {
			s += subtitleStyle.Render("  メモ: "+m.record.Note) + "\n"
		}
	}

	if m.editingNote {
		s += "\n  " + m.note.View() + "\n"
		s += helpStyle.Render("  enter: save  esc: cancel")
		return s
	}

	if m.sheet != nil {
		s += "\n" + m.renderMonth() + "\n"
	}

	if m.statusMsg != "" {
		s += "\n" + successTextStyle.Render("  "+m.statusMsg) + "\n"
	}
	if m.err != nil {
		s += "\n" + errorTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  enter: punch in/out  i: in  o: out  f: toggle day off  m: memo")
	return s
}

func (m *PunchModel) statusBadge() string {
	if m.todayOff() {
		return idleStyle.Render("休日")
	}
	switch m.status {
	case domain.PunchWorking:
		return workingStyle.Render(m.status.Label())
	case domain.PunchFinished:
		return finishedStyle.Render(m.status.Label())
	default:
		return idleStyle.Render(m.status.Label())
	}
}

func (m *PunchModel) renderMonth() string {
	sh := m.sheet
	s := fmt.Sprintf("  今月: %s / %gh 〜 %gh", formatHours(sh.TotalHours), sh.Client.MinHours, sh.Client.MaxHours)
	if sh.HasEstimate {
		estimate := formatHours(sh.Estimate)
		if sh.Estimate < sh.Client.MinHours || sh.Estimate > sh.Client.MaxHours {
			estimate = warningTextStyle.Render(estimate)
		}
		s += "   見込み: " + estimate
	}
	if n := len(sh.MissingDates); n > 0 {
		s += "\n" + missingRowStyle.Render(fmt.Sprintf("  未入力 %d日: %s", n, truncateStr(joinDates(sh.MissingDates), 60)))
	}
	return s
}

func joinDates(dates []string) string {
	out := ""
	for i, d := range dates {
		if i > 0 {
			out += ", "
		}
		out += d[5:]
	}
	return out
}
