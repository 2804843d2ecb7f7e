package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mhiguchi/boardsync/internal/domain"
)

// Colors defines the color palette for the board.
var Colors = struct {
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Selected   lipgloss.Color
	Todo       lipgloss.Color
	Pending    lipgloss.Color
	InProgress lipgloss.Color
	Done       lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Selected:   lipgloss.Color("#FFEAA7"), // Yellow (selected)
	Todo:       lipgloss.Color("#74B9FF"), // Light blue
	Pending:    lipgloss.Color("#A29BFE"), // Lavender
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Done:       lipgloss.Color("#00B894"), // Green
}

// Styles contains the lipgloss styles for the board.
type Styles struct {
	Header       lipgloss.Style
	GroupHeader  lipgloss.Style
	TaskNormal   lipgloss.Style
	TaskSelected lipgloss.Style
	Subtask      lipgloss.Style
	Progress     lipgloss.Style
	Notification lipgloss.Style
	ErrorBar     lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles returns the default board styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			Padding(0, 1),
		GroupHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Muted).
			MarginTop(1),
		TaskNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DFE6E9")),
		TaskSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Selected),
		Subtask: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			PaddingLeft(4),
		Progress: lipgloss.NewStyle().
			Foreground(Colors.Success),
		Notification: lipgloss.NewStyle().
			Foreground(Colors.Warning),
		ErrorBar: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(Colors.Muted),
	}
}

// statusColor maps a task status to its badge color.
func statusColor(status domain.Status) lipgloss.Color {
	switch status {
	case domain.StatusTodo:
		return Colors.Todo
	case domain.StatusPending:
		return Colors.Pending
	case domain.StatusInProgress:
		return Colors.InProgress
	case domain.StatusDone:
		return Colors.Done
	default:
		return Colors.Muted
	}
}
