package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akern/plantrack/internal/board"
	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/plan"
)

// sessionResultMsg carries the outcome of a login or resume attempt. A nil
// user with a nil error means nothing was remembered.
type sessionResultMsg struct {
	user *model.User
	err  error
}

// tasksLoadedMsg signals that the board cache was refreshed from the store.
type tasksLoadedMsg struct {
	err error
}

// taskMutatedMsg carries the outcome of any task or checklist mutation.
type taskMutatedMsg struct {
	taskID  string
	created bool
	err     error
}

// taskDeletedMsg carries the outcome of a task deletion.
type taskDeletedMsg struct {
	err error
}

func (m Model) resumeSession() tea.Cmd {
	return func() tea.Msg {
		user, err := m.session.Resume(context.Background())
		return sessionResultMsg{user: user, err: err}
	}
}

func (m Model) login(name string) tea.Cmd {
	return func() tea.Msg {
		user, err := m.session.Login(context.Background(), name)
		return sessionResultMsg{user: user, err: err}
	}
}

func (m Model) loadTasks(userID string) tea.Cmd {
	return func() tea.Msg {
		err := m.board.LoadTasks(context.Background(), userID)
		return tasksLoadedMsg{err: err}
	}
}

func (m Model) createTask(title, description string, position *plan.Point) tea.Cmd {
	return func() tea.Msg {
		task, err := m.board.CreateTask(context.Background(), board.TaskDraft{
			UserID:      m.board.UserID(),
			Title:       title,
			Description: description,
			Position:    position,
		})
		return taskMutatedMsg{taskID: task.ID, created: true, err: err}
	}
}

func (m Model) updateTask(id string, upd board.TaskUpdate) tea.Cmd {
	return func() tea.Msg {
		task, err := m.board.UpdateTask(context.Background(), id, upd)
		return taskMutatedMsg{taskID: task.ID, err: err}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.board.DeleteTask(context.Background(), id)
		return taskDeletedMsg{err: err}
	}
}

func (m Model) addChecklistItem(taskID, label string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.board.AddChecklistItem(context.Background(), taskID, label)
		return taskMutatedMsg{taskID: task.ID, err: err}
	}
}

func (m Model) updateChecklistItem(taskID, itemID string, upd board.ChecklistItemUpdate) tea.Cmd {
	return func() tea.Msg {
		task, err := m.board.UpdateChecklistItem(context.Background(), taskID, itemID, upd)
		return taskMutatedMsg{taskID: task.ID, err: err}
	}
}

func (m Model) removeChecklistItem(taskID, itemID string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.board.RemoveChecklistItem(context.Background(), taskID, itemID)
		return taskMutatedMsg{taskID: task.ID, err: err}
	}
}
