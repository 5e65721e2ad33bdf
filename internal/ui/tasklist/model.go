// Package tasklist shows the active user's tasks beside the plan view.
package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/akern/plantrack/internal/board"
	"github.com/akern/plantrack/internal/keys"
	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/theme"
)

// SelectedTaskMsg is sent when the user opens a task from the list.
type SelectedTaskMsg struct {
	TaskID string
}

// CloseMsg signals the parent to return to the plan view.
type CloseMsg struct{}

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string {
	if i.Task.Placed() {
		return "● " + i.Task.Title
	}
	return "  " + i.Task.Title
}

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	total := len(i.Task.ChecklistItems)
	if total == 0 {
		return "no checklist"
	}
	return fmt.Sprintf("%d/%d done", i.Task.DoneCount(), total)
}

// Model is the task list view component.
type Model struct {
	list   list.Model
	board  *board.Board
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a task list model reading from b.
func New(b *board.Board, k *keys.KeyMap, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.ColorBlue).
		BorderForeground(theme.ColorBlue)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.ColorGray).
		BorderForeground(theme.ColorBlue)

	l := list.New([]list.Item{}, delegate, width, height)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		board:  b,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}

// Refresh rebuilds the list items from the board cache.
func (m *Model) Refresh() {
	tasks := m.board.Tasks()
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = TaskItem{Task: t}
	}
	m.list.SetItems(items)
}

// SelectedTask returns the highlighted task, if any.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Update handles messages for the task list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Select):
			if task, ok := m.SelectedTask(); ok {
				return m, func() tea.Msg { return SelectedTaskMsg{TaskID: task.ID} }
			}
		case key.Matches(keyMsg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list.
func (m Model) View() string {
	return m.list.View()
}
