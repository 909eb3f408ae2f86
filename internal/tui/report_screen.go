package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hayasakashogo/worklog/internal/app"
	"github.com/hayasakashogo/worklog/internal/report"
	"github.com/hayasakashogo/worklog/internal/service"
)

type reportPreviewMsg struct {
	doc     *report.Document
	missing []string
	err     error
}

type reportExportedMsg struct {
	path string
	err  error
}

// ReportModel previews and exports the monthly report
type ReportModel struct {
	app     *app.App
	session *session

	year    int
	month   time.Month
	remarks string

	doc     *report.Document
	missing []string

	editingRemarks bool
	input          textinput.Model

	loading   bool
	exporting bool
	err       error
	statusMsg string
}

// NewReportModel creates the report screen for the current month
func NewReportModel(a *app.App, s *session) tea.Model {
	now := time.Now()
	return &ReportModel{
		app:     a,
		session: s,
		year:    now.Year(),
		month:   now.Month(),
		loading: true,
	}
}

// IsCapturingInput returns true while remarks are being typed
func (m *ReportModel) IsCapturingInput() bool {
	return m.editingRemarks
}

func (m *ReportModel) Init() tea.Cmd {
	return m.loadPreview()
}

func (m *ReportModel) request() service.ReportRequest {
	return service.ReportRequest{
		ClientID: m.session.clientID,
		Year:     m.year,
		Month:    m.month,
		Remarks:  m.remarks,
	}
}

func (m *ReportModel) loadPreview() tea.Cmd {
	req := m.request()
	return func() tea.Msg {
		if req.ClientID == "" {
			return reportPreviewMsg{}
		}
		doc, err := m.app.ReportService.Prepare(context.Background(), req)
		var missingErr *service.MissingDatesError
		if errors.As(err, &missingErr) {
			return reportPreviewMsg{missing: missingErr.Dates}
		}
		return reportPreviewMsg{doc: doc, err: err}
	}
}

func (m *ReportModel) export(format report.Format) tea.Cmd {
	req := m.request()
	dir := m.app.Config.Report.OutputDir
	m.exporting = true
	return func() tea.Msg {
		path, err := m.app.ReportService.Export(context.Background(), req, format, dir)
		return reportExportedMsg{path: path, err: err}
	}
}

func (m *ReportModel) shiftMonth(delta int) tea.Cmd {
	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	m.year, m.month = first.Year(), first.Month()
	m.loading = true
	m.statusMsg = ""
	return m.loadPreview()
}

func (m *ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.editingRemarks {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "esc":
				m.editingRemarks = false
				return m, nil
			case "enter":
				m.editingRemarks = false
				m.remarks = strings.TrimSpace(m.input.Value())
				return m, m.loadPreview()
			}
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.loadPreview()

	case reportPreviewMsg:
		m.loading = false
		m.doc = msg.doc
		m.missing = msg.missing
		m.err = msg.err
		return m, nil

	case reportExportedMsg:
		m.exporting = false
		m.err = msg.err
		if msg.err == nil {
			m.statusMsg = "✓ Exported " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading || m.exporting {
			return m, nil
		}
		m.err = nil

		switch {
		case msg.String() == "[", key.Matches(msg, DefaultKeyMap.Left):
			return m, m.shiftMonth(-1)
		case msg.String() == "]", key.Matches(msg, DefaultKeyMap.Right):
			return m, m.shiftMonth(1)
		case key.Matches(msg, DefaultKeyMap.Note):
			m.input = newInput("備考", 500, 50, m.remarks)
			m.editingRemarks = true
			return m, m.input.Focus()
		case msg.String() == "p":
			if m.doc != nil {
				return m, m.export(report.FormatPDF)
			}
		case msg.String() == "x":
			if m.doc != nil {
				return m, m.export(report.FormatXLSX)
			}
		}
	}

	return m, nil
}

func (m *ReportModel) View() string {
	if m.session.clientID == "" {
		return subtitleStyle.Render("  No client selected. Press C to add or choose one.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Report  %d年%d月", m.year, int(m.month))) + "\n\n")

	switch {
	case m.loading:
		b.WriteString("Loading report...\n")
	case len(m.missing) > 0:
		b.WriteString(warningTextStyle.Render("  Report is blocked until these workdays are complete:") + "\n")
		for _, d := range m.missing {
			b.WriteString(missingRowStyle.Render("    "+d) + "\n")
		}
		b.WriteString(helpStyle.Render("  Fill them in on the Records screen (R) or mark them off.") + "\n")
	case m.doc != nil:
		b.WriteString(m.renderPreview())
	}

	b.WriteString("\n")
	if m.editingRemarks {
		b.WriteString("  備考: " + m.input.View() + "\n")
		b.WriteString(helpStyle.Render("  enter: apply  esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("  p: export PDF  x: export Excel  m: remarks  [ ]: month"))
	}
	if m.exporting {
		b.WriteString("\n  Exporting...")
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + successTextStyle.Render("  "+m.statusMsg))
	}
	if m.err != nil {
		b.WriteString("\n" + errorTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}
	return b.String()
}

func (m *ReportModel) renderPreview() string {
	d := m.doc
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s\n", d.Addressee))
	b.WriteString(fmt.Sprintf("  %s\n", d.WorkerLine()))
	b.WriteString("\n")
	for i, h := range report.SummaryHeaders {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", h, d.Summary.Cells()[i]))
	}

	var off, worked int
	for _, r := range d.Rows {
		switch {
		case r.Off:
			off++
		case r.Worked != "":
			worked++
		}
	}
	b.WriteString(fmt.Sprintf("\n  稼働日 %d日  休日 %d日\n", worked, off))
	if line := d.RemarksLine(); line != "" {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString(subtitleStyle.Render("  File: "+report.SafeFilename(d.Filename)) + "\n")
	return b.String()
}
