package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"
	"go.uber.org/zap"

	"github.com/hayasakashogo/worklog/internal/app"
	"github.com/hayasakashogo/worklog/internal/events"
)

// minimum spacing between refreshes triggered by change notifications
const refreshInterval = 500 * time.Millisecond

// Screen represents the current active screen
type Screen int

const (
	ScreenPunch Screen = iota
	ScreenRecords
	ScreenClients
	ScreenReport
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenPunch:
		return "Punch"
	case ScreenRecords:
		return "Records"
	case ScreenClients:
		return "Clients"
	case ScreenReport:
		return "Report"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// session is the state shared by every screen
type session struct {
	clientID string
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	session       *session
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	screens map[Screen]tea.Model

	// Change notifications
	changes        <-chan events.Change
	limiter        *rate.Limiter
	refreshPending bool

	checkedFirstRun bool

	err error
}

// New creates a new root model. changes may be nil.
func New(a *app.App, changes <-chan events.Change) Model {
	s := &session{}
	return Model{
		app:           a,
		session:       s,
		currentScreen: ScreenPunch,
		screens:       map[Screen]tea.Model{ScreenPunch: NewPunchModel(a, s)},
		changes:       changes,
		limiter:       rate.NewLimiter(rate.Every(refreshInterval), 1),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkFirstRun(), waitForChange(m.changes))
}

// checkFirstRun picks the starting client: the configured default, else the first one
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		clients, err := m.app.ClientService.List(ctx)
		if err != nil || len(clients) == 0 {
			return firstRunCheckMsg{hasClients: err != nil}
		}

		if ref := m.app.Config.Defaults.Client; ref != "" {
			if c, err := m.app.ClientService.Resolve(ctx, ref); err == nil {
				return firstRunCheckMsg{clientID: c.ID, hasClients: true}
			}
		}
		return firstRunCheckMsg{clientID: clients[0].ID, hasClients: true}
	}
}

func waitForChange(changes <-chan events.Change) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-changes
		if !ok {
			return nil
		}
		return changeMsg{change: c}
	}
}

func newScreen(a *app.App, s *session, screen Screen) tea.Model {
	switch screen {
	case ScreenPunch:
		return NewPunchModel(a, s)
	case ScreenRecords:
		return NewRecordsModel(a, s)
	case ScreenClients:
		return NewClientsModel(a, s)
	case ScreenReport:
		return NewReportModel(a, s)
	case ScreenSettings:
		return NewSettingsModel(a)
	}
	return nil
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	if _, ok := m.screens[screen]; !ok {
		model := newScreen(m.app, m.session, screen)
		m.screens[screen] = model
		return model.Init()
	}
	return func() tea.Msg { return RefreshDataMsg{} }
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screens[m.currentScreen].(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

func (m *Model) switchTo(screen Screen) tea.Cmd {
	m.currentScreen = screen
	return m.initScreen(screen)
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.err = nil

		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit
			case key.Matches(msg, DefaultKeyMap.Punch):
				return m, m.switchTo(ScreenPunch)
			case key.Matches(msg, DefaultKeyMap.Records):
				return m, m.switchTo(ScreenRecords)
			case key.Matches(msg, DefaultKeyMap.Clients):
				return m, m.switchTo(ScreenClients)
			case key.Matches(msg, DefaultKeyMap.Report):
				return m, m.switchTo(ScreenReport)
			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchTo(ScreenSettings)
			}
		}

	case firstRunCheckMsg:
		firstVisit := !m.checkedFirstRun
		m.checkedFirstRun = true
		m.session.clientID = msg.clientID
		if firstVisit && !msg.hasClients {
			initCmd := m.switchTo(ScreenClients)
			openFormCmd := func() tea.Msg { return OpenNewClientFormMsg{} }
			return m, tea.Batch(initCmd, openFormCmd)
		}
		return m, m.routeToCurrent(RefreshDataMsg{})

	case changeMsg:
		cmds := []tea.Cmd{waitForChange(m.changes)}
		switch {
		case m.limiter.Allow():
			cmds = append(cmds, m.routeToCurrent(RefreshDataMsg{}))
		case !m.refreshPending:
			m.refreshPending = true
			cmds = append(cmds, tea.Tick(refreshInterval, func(time.Time) tea.Msg {
				return deferredRefreshMsg{}
			}))
		}
		m.app.Logger.Debug("record change received",
			zap.String("client_id", msg.change.ClientID),
			zap.String("kind", string(msg.change.Kind)),
		)
		return m, tea.Batch(cmds...)

	case deferredRefreshMsg:
		m.refreshPending = false
		return m, m.routeToCurrent(RefreshDataMsg{})

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m, m.routeToCurrent(msg)
}

// routeToCurrent delivers a message to the visible screen
func (m *Model) routeToCurrent(msg tea.Msg) tea.Cmd {
	screen, ok := m.screens[m.currentScreen]
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	m.screens[m.currentScreen], cmd = screen.Update(msg)
	return cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("worklog - %s", m.currentScreen.String()))
	footer := footerStyle.Render("[P]unch  [R]ecords  [C]lients  [E]xport  [,] Settings  [q]uit")

	content := "Loading..."
	if screen, ok := m.screens[m.currentScreen]; ok {
		content = screen.View()
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = errorTextStyle.Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI, refreshing the visible screen whenever records change
func Run(a *app.App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, unsubscribe, err := a.Broker.Subscribe(ctx, "")
	if err != nil {
		a.Logger.Warn("change notifications unavailable", zap.Error(err))
		changes = nil
	} else {
		defer unsubscribe()
	}

	p := tea.NewProgram(New(a, changes), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
