package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hayasakashogo/worklog/internal/worktime"
)

// formatHours formats hours as H:MM
func formatHours(hours float64) string {
	return worktime.FormatHoursToHHMM(hours)
}

// truncateStr truncates a string to maxLen runes with an ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}

func clockOrBlank(c *worktime.Clock) string {
	if c == nil {
		return "--:--"
	}
	return c.String()
}

func newInput(placeholder string, limit, width int, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = width
	in.SetValue(value)
	return in
}

// moveFocus blurs the focused field and focuses the one delta steps away, wrapping
func moveFocus(fields []textinput.Model, focus, delta int) (int, tea.Cmd) {
	fields[focus].Blur()
	focus = (focus + delta + len(fields)) % len(fields)
	return focus, fields[focus].Focus()
}
