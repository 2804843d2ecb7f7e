package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mhiguchi/boardsync/internal/domain"
	"github.com/mhiguchi/boardsync/internal/usecase"
)

// Update handles messages and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case storeChangedMsg:
		m.reload()
		return m, m.waitForChange()

	case mutationDoneMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
		} else {
			m.lastErr = ""
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.Done):
		if m.readOnly {
			return m, nil
		}
		if task := m.selected(); task != nil {
			return m, m.markDoneCmd(task.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.readOnly {
			return m, nil
		}
		if task := m.selected(); task != nil {
			return m, m.deleteCmd(task.ID)
		}
		return m, nil
	}
	return m, nil
}

// reloadCmd re-fetches the project from the server.
func (m Model) reloadCmd() tea.Cmd {
	uc := m.container.OpenProjectUseCase()
	projectID := m.projectID
	return func() tea.Msg {
		_, err := uc.Execute(context.Background(), usecase.OpenProjectInput{ProjectID: projectID})
		return mutationDoneMsg{err: err}
	}
}

// markDoneCmd marks the selected task as done.
func (m Model) markDoneCmd(taskID string) tea.Cmd {
	uc := m.container.UpdateTaskUseCase()
	return func() tea.Msg {
		status := domain.StatusDone
		_, err := uc.Execute(context.Background(), usecase.UpdateTaskInput{
			TaskID: taskID,
			Patch:  domain.TaskPatch{Status: &status},
		})
		return mutationDoneMsg{err: err}
	}
}

// deleteCmd deletes the selected task and its subtasks.
func (m Model) deleteCmd(taskID string) tea.Cmd {
	uc := m.container.DeleteTaskUseCase()
	return func() tea.Msg {
		_, err := uc.Execute(context.Background(), usecase.DeleteTaskInput{TaskID: taskID})
		return mutationDoneMsg{err: err}
	}
}
