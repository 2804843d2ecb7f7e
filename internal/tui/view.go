package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/view"
)

// View renders the board.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(m.styles.TaskNormal.Render("No tasks"))
		b.WriteString("\n")
	} else {
		m.renderRows(&b)
	}

	if n := m.latestNotification(); n != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notification.Render(n))
		b.WriteString("\n")
	}
	if m.lastErr != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorBar.Render("Error: " + m.lastErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderHeader() string {
	title := m.projectID
	if p := m.container.Store.Project(m.projectID); p != nil {
		title = p.Name
	}
	if m.readOnly {
		title += " (read-only)"
	}
	return m.styles.Header.Render(title)
}

func (m Model) renderRows(b *strings.Builder) {
	var lastStatus domain.Status
	for i, r := range m.rows {
		if !r.subtask && r.task.Status != lastStatus {
			b.WriteString(m.styles.GroupHeader.Render(r.task.Status.Display()))
			b.WriteString("\n")
			lastStatus = r.task.Status
		}
		b.WriteString(m.renderRow(i, r))
		b.WriteString("\n")
	}
}

func (m Model) renderRow(i int, r row) string {
	badge := lipgloss.NewStyle().
		Foreground(statusColor(r.task.Status)).
		Render("●")

	line := fmt.Sprintf("%s %s %s", badge, r.task.ID, r.task.Title)
	if !r.subtask {
		if subs := view.SubtasksOf(m.container.Store, r.task.ID); len(subs) > 0 {
			progress := m.styles.Progress.Render(fmt.Sprintf("%d%%", view.Progress(m.container.Store, r.task.ID)))
			line += " " + progress
		}
	}

	style := m.styles.TaskNormal
	if r.subtask {
		style = m.styles.Subtask
	}
	if i == m.cursor {
		style = m.styles.TaskSelected
		line = "> " + line
	} else {
		line = "  " + line
	}
	return style.Render(line)
}

// latestNotification returns the newest unread notification, if any.
func (m Model) latestNotification() string {
	for _, n := range m.container.Store.Notifications() {
		if !n.Read {
			return fmt.Sprintf("[%s] %s", n.Kind, n.Message)
		}
	}
	return ""
}
