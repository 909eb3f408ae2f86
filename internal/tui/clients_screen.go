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
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
	clientModeConfirmDelete
)

// form field indices
const (
	fieldName = iota
	fieldMinHours
	fieldMaxHours
	fieldStart
	fieldEnd
	fieldRest
	fieldDaysOff
	fieldNational
	fieldTemplate
	fieldCount
)

var clientFieldLabels = [fieldCount]string{
	"Name:",
	"Min hours / month:",
	"Max hours / month:",
	"Default start (HH:MM):",
	"Default end (HH:MM):",
	"Default break (minutes):",
	"Weekly days off (e.g. 土,日):",
	"Off on national holidays (y/n):",
	"Report filename ({YYYY} {MM} {CLIENT}):",
}

// ClientsModel displays a navigable list of clients with create/edit forms
type ClientsModel struct {
	app          *app.App
	session      *session
	clients      []*domain.Client
	cursor       int
	monthlyHours map[string]float64
	loading      bool
	err          error
	statusMsg    string

	// Form state
	mode          clientMode
	fields        []textinput.Model
	fieldFocus    int
	editing       *domain.Client // nil for new client
	autoNewClient bool           // open new client form after data loads
}

type clientsDataMsg struct {
	clients      []*domain.Client
	monthlyHours map[string]float64
	err          error
}

type clientSavedMsg struct {
	client *domain.Client
	err    error
}

type clientDeletedMsg struct {
	id   string
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App, s *session) tea.Model {
	return &ClientsModel{
		app:          a,
		session:      s,
		monthlyHours: make(map[string]float64),
		loading:      true,
	}
}

// IsCapturingInput returns true when the form or delete prompt is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode != clientModeList
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		clients, err := m.app.ClientService.List(ctx)
		if err != nil {
			return clientsDataMsg{err: err}
		}

		now := time.Now()
		hours := make(map[string]float64)
		for _, client := range clients {
			sheet, err := m.app.RecordService.Month(ctx, client.ID, now.Year(), now.Month())
			if err != nil {
				continue
			}
			hours[client.ID] = sheet.TotalHours
		}

		return clientsDataMsg{
			clients:      clients,
			monthlyHours: hours,
		}
	}
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	c := editing
	if c == nil {
		c = domain.NewClient("")
	}

	national := "y"
	if !c.IncludeNationalHolidays {
		national = "n"
	}

	m.fields = make([]textinput.Model, fieldCount)
	m.fields[fieldName] = newInput("Client name", 100, 40, c.Name)
	m.fields[fieldMinHours] = newInput("140", 6, 8, formatContractHours(c.MinHours))
	m.fields[fieldMaxHours] = newInput("180", 6, 8, formatContractHours(c.MaxHours))
	m.fields[fieldStart] = newInput("09:00", 5, 8, c.DefaultStartTime.String())
	m.fields[fieldEnd] = newInput("18:00", 5, 8, c.DefaultEndTime.String())
	m.fields[fieldRest] = newInput("60", 4, 8, strconv.Itoa(c.DefaultRestMinutes))
	m.fields[fieldDaysOff] = newInput("土,日", 30, 20, strings.TrimPrefix(domain.FormatWeekdays(c.Holidays), "-"))
	m.fields[fieldNational] = newInput("y", 1, 4, national)
	m.fields[fieldTemplate] = newInput(domain.DefaultPDFFilenameTemplate, 100, 40, c.PDFFilenameTemplate)

	m.editing = editing
	m.fieldFocus = fieldName
	m.fields[fieldName].Focus()
}

func formatContractHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// clientFromForm applies the form values to a copy of base
func (m *ClientsModel) clientFromForm(base *domain.Client) (*domain.Client, error) {
	c := *base
	val := func(i int) string { return strings.TrimSpace(m.fields[i].Value()) }

	c.Name = val(fieldName)

	var err error
	if c.MinHours, err = strconv.ParseFloat(val(fieldMinHours), 64); err != nil {
		return nil, fmt.Errorf("invalid min hours: %q", val(fieldMinHours))
	}
	if c.MaxHours, err = strconv.ParseFloat(val(fieldMaxHours), 64); err != nil {
		return nil, fmt.Errorf("invalid max hours: %q", val(fieldMaxHours))
	}
	if c.DefaultStartTime, err = worktime.ParseClock(val(fieldStart)); err != nil {
		return nil, err
	}
	if c.DefaultEndTime, err = worktime.ParseClock(val(fieldEnd)); err != nil {
		return nil, err
	}
	if c.DefaultRestMinutes, err = strconv.Atoi(val(fieldRest)); err != nil {
		return nil, fmt.Errorf("invalid break minutes: %q", val(fieldRest))
	}
	if c.Holidays, err = domain.ParseWeekdays(val(fieldDaysOff)); err != nil {
		return nil, err
	}

	switch strings.ToLower(val(fieldNational)) {
	case "y", "yes", "":
		c.IncludeNationalHolidays = true
	case "n", "no":
		c.IncludeNationalHolidays = false
	default:
		return nil, fmt.Errorf("national holidays must be y or n")
	}

	c.PDFFilenameTemplate = val(fieldTemplate)
	if c.PDFFilenameTemplate == "" {
		c.PDFFilenameTemplate = domain.DefaultPDFFilenameTemplate
	}
	return &c, nil
}

func (m *ClientsModel) saveClient() tea.Cmd {
	base := m.editing
	if base == nil {
		base = domain.NewClient("")
	}
	client, err := m.clientFromForm(base)
	if err != nil {
		return func() tea.Msg { return clientSavedMsg{err: err} }
	}

	isNew := m.editing == nil
	return func() tea.Msg {
		ctx := context.Background()
		if isNew {
			err = m.app.ClientService.Create(ctx, client)
		} else {
			err = m.app.ClientService.Update(ctx, client)
		}
		return clientSavedMsg{client: client, err: err}
	}
}

func (m *ClientsModel) deleteClient() tea.Cmd {
	client := m.clients[m.cursor]
	return func() tea.Msg {
		err := m.app.ClientService.Delete(context.Background(), client.ID)
		return clientDeletedMsg{id: client.ID, name: client.Name, err: err}
	}
}

func (m *ClientsModel) openForm(editing *domain.Client) tea.Cmd {
	if editing == nil {
		m.mode = clientModeNew
	} else {
		m.mode = clientModeEdit
	}
	m.err = nil
	m.initForm(editing)
	return m.fields[fieldName].Focus()
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenNewClientFormMsg at the top so it works regardless of mode
	if _, ok := msg.(OpenNewClientFormMsg); ok {
		if m.loading {
			// Data hasn't loaded yet; set flag to auto-open form when it does
			m.autoNewClient = true
			return m, nil
		}
		return m, m.openForm(nil)
	}

	switch m.mode {
	case clientModeNew, clientModeEdit:
		return m.updateForm(msg)
	case clientModeConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, m.loadClients()

	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.monthlyHours = msg.monthlyHours
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
			}
		}
		// Auto-open new client form on first run
		if m.autoNewClient {
			m.autoNewClient = false
			return m, m.openForm(nil)
		}
		return m, nil

	case clientDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if m.session.clientID == msg.id {
			m.session.clientID = ""
		}
		m.statusMsg = fmt.Sprintf("Deleted: %s", msg.name)
		return m, m.loadClients()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			return m, m.openForm(nil)
		case key.Matches(msg, DefaultKeyMap.Edit):
			if m.hasSelection() {
				return m, m.openForm(m.clients[m.cursor])
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter makes the selected client the active one
			if m.hasSelection() {
				c := m.clients[m.cursor]
				m.session.clientID = c.ID
				return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenPunch} }
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if m.hasSelection() {
				m.mode = clientModeConfirmDelete
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) hasSelection() bool {
	return len(m.clients) > 0 && m.cursor < len(m.clients)
}

func (m *ClientsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		m.mode = clientModeList
		if k.String() == "y" {
			return m, m.deleteClient()
		}
	}
	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.client.Name)
		if m.session.clientID == "" {
			m.session.clientID = msg.client.ID
		}
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = clientModeList
			m.err = nil
			return m, nil

		case "tab", "down", "enter":
			if msg.String() == "enter" && m.fieldFocus == fieldCount-1 {
				return m, m.saveClient()
			}
			var cmd tea.Cmd
			m.fieldFocus, cmd = moveFocus(m.fields, m.fieldFocus, 1)
			return m, cmd

		case "shift+tab", "up":
			var cmd tea.Cmd
			m.fieldFocus, cmd = moveFocus(m.fields, m.fieldFocus, -1)
			return m, cmd

		case "ctrl+s":
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		if len(m.clients) == 0 {
			s += titleStyle.Render("Welcome to worklog!") + "\n"
			s += subtitleStyle.Render("  Register your first client to start punching in.") + "\n\n"
		} else {
			s += titleStyle.Render("New Client") + "\n\n"
		}
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	for i, label := range clientFieldLabels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s %s\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}
	s += "\n"

	if m.err != nil {
		s += errorTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	var s string
	s += titleStyle.Render("Clients") + "\n\n"

	if m.statusMsg != "" {
		s += successTextStyle.Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += errorTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	if m.mode == clientModeConfirmDelete {
		c := m.clients[m.cursor]
		s += "\n" + warningTextStyle.Render(fmt.Sprintf("  Delete %s and all of its records? (y/N)", c.Name))
		return s
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: make active  n: new  e: edit  d: delete")

	return s
}

func (m *ClientsModel) renderClient(index int, client *domain.Client) string {
	selected := index == m.cursor
	active := client.ID == m.session.clientID

	indicator := "  "
	if selected {
		indicator = "> "
	}
	name := client.Name
	if active {
		name += " ●"
	}

	hours := m.monthlyHours[client.ID]
	line1 := fmt.Sprintf("%s%s", indicator, name)
	line2 := fmt.Sprintf("    Contract: %gh 〜 %gh  |  This month: %s  |  %s-%s break %dm",
		client.MinHours, client.MaxHours, formatHours(hours),
		client.DefaultStartTime, client.DefaultEndTime, client.DefaultRestMinutes)
	national := "national holidays off"
	if !client.IncludeNationalHolidays {
		national = "works national holidays"
	}
	line3 := fmt.Sprintf("    Days off: %s, %s", domain.FormatWeekdays(client.Holidays), national)

	nameStyle := lipgloss.NewStyle()
	if active {
		nameStyle = nameStyle.Foreground(successColor)
	}
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2) + "\n" + subtitleStyle.Render(line3)
}
