// Package detail renders a single task with its checklist editor.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akern/plantrack/internal/keys"
	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/theme"
)

// BackMsg signals the parent to close the detail view.
type BackMsg struct{}

// EditRequestMsg asks the parent to open the edit form for the task.
type EditRequestMsg struct {
	TaskID string
}

// DeleteRequestMsg asks the parent to delete the task.
type DeleteRequestMsg struct {
	TaskID string
}

// ToggleItemMsg asks the parent to flip a checklist item's done flag.
type ToggleItemMsg struct {
	TaskID string
	ItemID string
	Done   bool
}

// CycleStatusMsg asks the parent to advance a checklist item's workflow
// status.
type CycleStatusMsg struct {
	TaskID string
	ItemID string
	Status model.ChecklistStatus
}

// AddItemMsg asks the parent to append a checklist item.
type AddItemMsg struct {
	TaskID string
	Label  string
}

// RemoveItemMsg asks the parent to remove a checklist item.
type RemoveItemMsg struct {
	TaskID string
	ItemID string
}

// Model is the task detail view component.
type Model struct {
	task     model.Task
	keys     *keys.KeyMap
	cursor   int
	adding   bool
	addInput textinput.Model
	width    int
	height   int
}

// New creates a detail model.
func New(k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "new checklist item..."
	ti.Prompt = "+ "
	ti.CharLimit = 120

	return Model{
		keys:     k,
		addInput: ti,
		width:    width,
		height:   height,
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.addInput.Width = width - 8
}

// SetTask replaces the displayed task, keeping the cursor in range.
func (m *Model) SetTask(task model.Task) {
	m.task = task
	if m.cursor >= len(task.ChecklistItems) {
		m.cursor = len(task.ChecklistItems) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Task returns the displayed task.
func (m Model) Task() model.Task {
	return m.task
}

// selectedItem returns the checklist item under the cursor.
func (m Model) selectedItem() (model.ChecklistItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.task.ChecklistItems) {
		return model.ChecklistItem{}, false
	}
	return m.task.ChecklistItems[m.cursor], true
}

// nextStatus returns the workflow status after s, wrapping around.
func nextStatus(s model.ChecklistStatus) model.ChecklistStatus {
	for i, known := range model.ChecklistStatuses {
		if known == s {
			return model.ChecklistStatuses[(i+1)%len(model.ChecklistStatuses)]
		}
	}
	return model.StatusNotStarted
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.adding {
		switch keyMsg.String() {
		case "enter":
			label := strings.TrimSpace(m.addInput.Value())
			m.adding = false
			m.addInput.Blur()
			m.addInput.SetValue("")
			if label == "" {
				return m, nil
			}
			taskID := m.task.ID
			return m, func() tea.Msg { return AddItemMsg{TaskID: taskID, Label: label} }
		case "esc":
			m.adding = false
			m.addInput.Blur()
			m.addInput.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.addInput, cmd = m.addInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.task.ChecklistItems)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.AddItem):
		m.adding = true
		return m, m.addInput.Focus()

	case key.Matches(keyMsg, m.keys.ToggleDone):
		if item, ok := m.selectedItem(); ok {
			taskID := m.task.ID
			return m, func() tea.Msg {
				return ToggleItemMsg{TaskID: taskID, ItemID: item.ID, Done: !item.Done}
			}
		}

	case key.Matches(keyMsg, m.keys.CycleStatus):
		if item, ok := m.selectedItem(); ok {
			taskID := m.task.ID
			next := nextStatus(item.Status)
			return m, func() tea.Msg {
				return CycleStatusMsg{TaskID: taskID, ItemID: item.ID, Status: next}
			}
		}

	case key.Matches(keyMsg, m.keys.RemoveItem):
		if item, ok := m.selectedItem(); ok {
			taskID := m.task.ID
			return m, func() tea.Msg {
				return RemoveItemMsg{TaskID: taskID, ItemID: item.ID}
			}
		}

	case key.Matches(keyMsg, m.keys.EditTask):
		taskID := m.task.ID
		return m, func() tea.Msg { return EditRequestMsg{TaskID: taskID} }

	case key.Matches(keyMsg, m.keys.DeleteTask):
		taskID := m.task.ID
		return m, func() tea.Msg { return DeleteRequestMsg{TaskID: taskID} }
	}

	return m, nil
}

// View renders the task detail and checklist.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(m.task.Title))
	b.WriteString("\n")

	if m.task.Placed() {
		b.WriteString(theme.DimStyle.Render(
			fmt.Sprintf("pinned at (%.0f, %.0f)", *m.task.FloorPlanX, *m.task.FloorPlanY)))
	} else {
		b.WriteString(theme.DimStyle.Render("not placed on plan"))
	}
	b.WriteString("\n")
	b.WriteString(theme.DimStyle.Render(
		"updated " + m.task.UpdatedAt.Local().Format("2006-01-02 15:04")))
	b.WriteString("\n\n")

	if m.task.Description != "" {
		b.WriteString(m.task.Description)
		b.WriteString("\n\n")
	}

	b.WriteString(theme.TitleStyle.Render(
		fmt.Sprintf("Checklist (%d/%d)", m.task.DoneCount(), len(m.task.ChecklistItems))))
	b.WriteString("\n")

	if len(m.task.ChecklistItems) == 0 {
		b.WriteString(theme.DimStyle.Render("no items · a: add one"))
		b.WriteString("\n")
	}

	for i, item := range m.task.ChecklistItems {
		cursor := "  "
		if i == m.cursor && !m.adding {
			cursor = "> "
		}

		check := "☐"
		if item.Done {
			check = "☑"
		}

		status := lipgloss.NewStyle().
			Foreground(theme.StatusColor(string(item.Status))).
			Render("[" + string(item.Status) + "]")

		line := fmt.Sprintf("%s%s %s %s", cursor, check, item.Label, status)
		if item.Done {
			line = theme.DoneStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.adding {
		b.WriteString("\n")
		b.WriteString(m.addInput.View())
		b.WriteString("\n")
	}

	return theme.PanelStyle.Width(m.width - 2).Render(b.String())
}
