package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hayasakashogo/worklog/internal/app"
	"github.com/hayasakashogo/worklog/internal/config"
	"github.com/hayasakashogo/worklog/internal/report"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldFullName = iota
	settingsFieldFontPath
	settingsFieldOutputDir
	settingsFieldFormat
	settingsFieldClient
	settingsFieldCount
)

var settingsLabels = [settingsFieldCount]string{
	"Your Name:",
	"PDF Font (TTF):",
	"Report Directory:",
	"Default Format:",
	"Default Client:",
}

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	cfg := m.app.Config

	m.fields = make([]textinput.Model, settingsFieldCount)
	m.fields[settingsFieldFullName] = newInput("山田 太郎", 100, 40, cfg.User.FullName)
	m.fields[settingsFieldFontPath] = newInput("/path/to/NotoSansJP-Regular.ttf", 256, 60, cfg.Report.FontPath)
	m.fields[settingsFieldOutputDir] = newInput("/path/to/reports", 256, 60, cfg.Report.OutputDir)
	m.fields[settingsFieldFormat] = newInput("pdf", 4, 8, cfg.Report.DefaultFormat)
	m.fields[settingsFieldClient] = newInput("client name or ID", 100, 40, cfg.Defaults.Client)

	m.fieldFocus = settingsFieldFullName
	m.fields[settingsFieldFullName].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	val := func(i int) string { return strings.TrimSpace(m.fields[i].Value()) }
	fullName, fontPath, outputDir := val(settingsFieldFullName), val(settingsFieldFontPath), val(settingsFieldOutputDir)
	formatStr, client := val(settingsFieldFormat), val(settingsFieldClient)

	return func() tea.Msg {
		if outputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("report directory is required")}
		}
		format, err := report.ParseFormat(formatStr)
		if err != nil {
			return settingsSavedMsg{err: err}
		}
		if client != "" {
			if _, err := m.app.ClientService.Resolve(context.Background(), client); err != nil {
				return settingsSavedMsg{err: err}
			}
		}

		cfg := m.app.Config
		cfg.User.FullName = fullName
		cfg.Report.FontPath = fontPath
		cfg.Report.OutputDir = outputDir
		cfg.Report.DefaultFormat = string(format)
		cfg.Defaults.Client = client

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}
		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		if msg.String() == "enter" {
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved. Name and font take effect on next launch."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down", "enter":
			if msg.String() == "enter" && m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			var cmd tea.Cmd
			m.fieldFocus, cmd = moveFocus(m.fields, m.fieldFocus, 1)
			return m, cmd

		case "shift+tab", "up":
			var cmd tea.Cmd
			m.fieldFocus, cmd = moveFocus(m.fields, m.fieldFocus, -1)
			return m, cmd

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += successTextStyle.Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config
	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	values := [settingsFieldCount]string{
		cfg.User.FullName,
		cfg.Report.FontPath,
		cfg.Report.OutputDir,
		cfg.Report.DefaultFormat,
		cfg.Defaults.Client,
	}
	s += subtitleStyle.Render("  Report Settings") + "\n\n"
	for i, label := range settingsLabels {
		s += fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(orUnset(values[i])))
	}

	s += "\n" + subtitleStyle.Render("  Storage") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Database:"), valueStyle.Render(cfg.Database.Path))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Holiday Overrides:"), valueStyle.Render(orUnset(cfg.Holidays.OverridesFile)))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Sync:"), valueStyle.Render(orUnset(cfg.Sync.RedisAddr)))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Config File:"), valueStyle.Render(config.DefaultConfigPath()))

	s += "\n" + helpStyle.Render("  enter: edit settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	for i, label := range settingsLabels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += errorTextStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
