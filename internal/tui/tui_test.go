package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayasakashogo/worklog/internal/app"
	"github.com/hayasakashogo/worklog/internal/config"
	"github.com/hayasakashogo/worklog/internal/crypto"
	"github.com/hayasakashogo/worklog/internal/domain"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	t.Setenv(crypto.EnvKey, "test-key")

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "worklog.db")
	cfg.Log.File = ""
	cfg.Report.OutputDir = filepath.Join(dir, "reports")
	cfg.Holidays.OverridesFile = filepath.Join(dir, "holidays.yaml")

	a, err := app.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes a command and feeds its message back into the model
func run(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, next := m.Update(cmd())
	if next != nil {
		if msg := next(); msg != nil {
			m, _ = m.Update(msg)
		}
	}
	return m
}

func TestScreenString(t *testing.T) {
	assert.Equal(t, "Punch", ScreenPunch.String())
	assert.Equal(t, "Report", ScreenReport.String())
	assert.Equal(t, "Unknown", Screen(99).String())
}

func TestTruncateStr(t *testing.T) {
	assert.Equal(t, "ACME", truncateStr("ACME", 10))
	assert.Equal(t, "株式会…", truncateStr("株式会社テスト", 4))
}

func TestFirstRunOpensClientForm(t *testing.T) {
	a := newTestApp(t)
	m := New(a, nil)

	msg := m.checkFirstRun()()
	require.Equal(t, firstRunCheckMsg{}, msg)

	updated, _ := m.Update(msg)
	root := updated.(Model)
	assert.Equal(t, ScreenClients, root.currentScreen)

	clients := root.screens[ScreenClients].(*ClientsModel)
	clients.Update(OpenNewClientFormMsg{})
	assert.True(t, clients.autoNewClient, "form waits for the client list")

	clients.Update(clients.loadClients()())
	assert.True(t, clients.IsCapturingInput())
	assert.Equal(t, clientModeNew, clients.mode)
}

func TestClientsForm(t *testing.T) {
	a := newTestApp(t)
	s := &session{}
	m := NewClientsModel(a, s).(*ClientsModel)

	m.initForm(nil)
	assert.Equal(t, "日,土", m.fields[fieldDaysOff].Value())
	assert.Equal(t, "y", m.fields[fieldNational].Value())

	m.fields[fieldName].SetValue("ACME")
	m.fields[fieldMinHours].SetValue("120")
	m.fields[fieldMaxHours].SetValue("160.5")
	m.fields[fieldStart].SetValue("10:00")
	m.fields[fieldEnd].SetValue("19:00")
	m.fields[fieldRest].SetValue("45")
	m.fields[fieldDaysOff].SetValue("sat,sun,wed")
	m.fields[fieldNational].SetValue("n")
	m.fields[fieldTemplate].SetValue("")

	client, err := m.clientFromForm(domain.NewClient(""))
	require.NoError(t, err)
	assert.Equal(t, "ACME", client.Name)
	assert.Equal(t, 160.5, client.MaxHours)
	assert.Equal(t, "10:00", client.DefaultStartTime.String())
	assert.Equal(t, 45, client.DefaultRestMinutes)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday, time.Wednesday}, client.Holidays)
	assert.False(t, client.IncludeNationalHolidays)
	assert.Equal(t, domain.DefaultPDFFilenameTemplate, client.PDFFilenameTemplate)

	m.mode = clientModeNew
	run(t, m, m.saveClient())
	assert.Equal(t, clientModeList, m.mode)
	assert.Equal(t, client.Name, m.clients[0].Name)
	assert.Equal(t, m.clients[0].ID, s.clientID, "first saved client becomes active")

	m.fields[fieldRest].SetValue("lunch")
	_, err = m.clientFromForm(domain.NewClient(""))
	assert.Error(t, err)
}

func TestClientsDelete(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	client := domain.NewClient("ACME")
	require.NoError(t, a.ClientService.Create(ctx, client))

	s := &session{clientID: client.ID}
	m := NewClientsModel(a, s).(*ClientsModel)
	m.Update(m.Init()())
	require.Len(t, m.clients, 1)

	m.Update(keyPress("d"))
	assert.Equal(t, clientModeConfirmDelete, m.mode)
	_, cmd := m.Update(keyPress("y"))
	run(t, m, cmd)

	assert.Empty(t, m.clients)
	assert.Empty(t, s.clientID)
}

func TestRecordsToggleOff(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	client := domain.NewClient("ACME")
	require.NoError(t, a.ClientService.Create(ctx, client))

	m := NewRecordsModel(a, &session{clientID: client.ID}).(*RecordsModel)
	m.Update(m.Init()())
	require.NotNil(t, m.sheet)

	day := m.selectedDay()
	require.NotNil(t, day)
	assert.True(t, day.IsToday)
	wasOff := day.Off

	_, cmd := m.Update(keyPress("f"))
	run(t, m, cmd)
	assert.Equal(t, !wasOff, m.selectedDay().Off)
	assert.Contains(t, m.View(), "ACME")
}

func TestRecordsEditRest(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	client := domain.NewClient("ACME")
	require.NoError(t, a.ClientService.Create(ctx, client))

	m := NewRecordsModel(a, &session{clientID: client.ID}).(*RecordsModel)
	m.Update(m.Init()())

	m.col = 2
	m.Update(keyPress("e"))
	require.True(t, m.IsCapturingInput())

	m.input.SetValue("30")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)

	assert.False(t, m.IsCapturingInput())
	require.NotNil(t, m.selectedDay().Record)
	assert.Equal(t, 30, m.selectedDay().Record.RestMinutes)
}

func TestReportBlockedWithoutClient(t *testing.T) {
	a := newTestApp(t)
	m := NewReportModel(a, &session{}).(*ReportModel)
	m.Update(m.Init()())
	assert.Contains(t, m.View(), "No client selected")
}
