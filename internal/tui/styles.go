package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hpratama/taskbin/internal/task"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	accentColor  = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
	textColor    = lipgloss.Color("#F9FAFB") // Light text
	borderColor  = lipgloss.Color("#6B7280") // Gray

	// Status colors
	statusCompleted  = lipgloss.Color("#A78BFA") // Purple
	statusInProgress = lipgloss.Color("#10B981") // Green
	statusPending    = lipgloss.Color("#F59E0B") // Amber
	statusNotStarted = lipgloss.Color("#9CA3AF") // Gray

	// Base styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 2)

	readOnlyBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(warningColor).
			Padding(0, 1)

	writableBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor).
			Background(accentColor).
			Padding(0, 1)

	primaryStyle = lipgloss.NewStyle().Foreground(primaryColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	textStyle    = lipgloss.NewStyle().Foreground(textColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	infoStyle    = lipgloss.NewStyle().Foreground(accentColor)

	selectedRow = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	statusBadge = lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(1)

	overlayBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)
)

// statusColor maps a task status to its display color.
func statusColor(status string) lipgloss.Color {
	switch status {
	case task.StatusCompleted:
		return statusCompleted
	case task.StatusInProgress:
		return statusInProgress
	case task.StatusPending:
		return statusPending
	case task.StatusNotStarted:
		return statusNotStarted
	default:
		return mutedColor
	}
}
