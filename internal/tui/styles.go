package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("208") // Orange, matches the report header
	accentColor  = lipgloss.Color("39")  // Blue
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Amber
	errorColor   = lipgloss.Color("196") // Red

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // Bright cyan
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))

	// Layout
	borderColor    = lipgloss.Color("63") // Soft purple
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true) // Bright yellow

	// Punch status
	workingStyle  = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	finishedStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	idleStyle     = lipgloss.NewStyle().Bold(true).Foreground(mutedColor)
	clockStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)

	// Grid rows
	offRowStyle     = lipgloss.NewStyle().Foreground(mutedColor)
	missingRowStyle = lipgloss.NewStyle().Foreground(errorColor)
	todayRowStyle   = lipgloss.NewStyle().Bold(true)

	errorTextStyle   = lipgloss.NewStyle().Foreground(errorColor)
	successTextStyle = lipgloss.NewStyle().Foreground(successColor)
	warningTextStyle = lipgloss.NewStyle().Foreground(warningColor)
)
