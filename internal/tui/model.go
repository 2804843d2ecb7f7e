// Package tui implements the interactive task board.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mhiguchi/boardsync/internal/app"
	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/view"
)

// storeChangedMsg is sent when the entity store notifies a change.
type storeChangedMsg struct{}

// mutationDoneMsg is sent when a board-triggered mutation settles.
type mutationDoneMsg struct {
	err error
}

// row is one selectable line on the board.
// Fields are ordered to minimize memory padding.
type row struct {
	task    *domain.Task
	subtask bool
}

// Model is the bubbletea model for the board.
// Fields are ordered to minimize memory padding.
type Model struct {
	container *app.Container
	changes   chan struct{}
	rows      []row
	projectID string
	userID    string
	lastErr   string
	keys      KeyMap
	styles    Styles
	help      help.Model
	cursor    int
	width     int
	height    int
	readOnly  bool
}

// New creates a new board model for the given project.
func New(c *app.Container, projectID, userID string) Model {
	changes := make(chan struct{}, 1)
	c.Store.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	role, ok := view.RoleOf(c.Store, projectID, userID)
	m := Model{
		container: c,
		changes:   changes,
		projectID: projectID,
		userID:    userID,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		readOnly:  !view.CanEdit(role, ok),
	}
	m.reload()
	return m
}

// reload rebuilds the visible rows from the store.
func (m *Model) reload() {
	s := m.container.Store
	m.rows = m.rows[:0]
	for _, t := range s.TasksByProject(m.projectID) {
		if !t.IsRoot() {
			continue
		}
		m.rows = append(m.rows, row{task: t})
		for _, sub := range view.SubtasksOf(s, t.ID) {
			m.rows = append(m.rows, row{task: sub, subtask: true})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

// selected returns the task under the cursor, or nil.
func (m *Model) selected() *domain.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].task
}

// waitForChange blocks until the store changes.
func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return storeChangedMsg{}
	}
}

// Init starts listening for store changes.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}
