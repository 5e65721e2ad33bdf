// Package taskform renders the create/edit form for a task.
package taskform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/theme"
)

var errTitleRequired = errors.New("title cannot be empty")

// CreatedMsg is dispatched when the form submits a new task.
type CreatedMsg struct {
	Title       string
	Description string
}

// UpdatedMsg is dispatched when the form submits changes to a task.
type UpdatedMsg struct {
	TaskID        string
	Title         string
	Description   string
	ClearPosition bool
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	clearPin    bool
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form      *huh.Form
	fb        *formBindings
	editMode  bool
	editID    string
	placed    bool
	submitted bool
	width     int
	height    int
}

// New creates a task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.placed = false
	m.fb.title = ""
	m.fb.description = ""
	m.fb.clearPin = false
	m.submitted = false
	m.form = m.buildForm("New Task")
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editID = task.ID
	m.placed = task.Placed()
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.clearPin = false
	m.submitted = false
	m.form = m.buildForm("Edit Task")
	return m.form.Init()
}

func (m *Model) buildForm(title string) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errTitleRequired
				}
				return nil
			}).
			Value(&m.fb.title),
		huh.NewText().
			Title("Description").
			Lines(3).
			Value(&m.fb.description),
	}
	if m.editMode && m.placed {
		fields = append(fields, huh.NewConfirm().
			Title("Remove pin from plan?").
			Affirmative("Remove").
			Negative("Keep").
			Value(&m.fb.clearPin))
	}

	return huh.NewForm(huh.NewGroup(fields...).Title(title)).
		WithWidth(min(m.width-4, 70)).
		WithShowHelp(true)
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	// Emit the submission exactly once; stray messages arriving before
	// the parent switches views must not fire it again.
	if m.form.State == huh.StateCompleted && !m.submitted {
		m.submitted = true
		title := strings.TrimSpace(m.fb.title)
		description := m.fb.description
		if m.editMode {
			editID := m.editID
			clearPin := m.fb.clearPin
			return m, func() tea.Msg {
				return UpdatedMsg{
					TaskID:        editID,
					Title:         title,
					Description:   description,
					ClearPosition: clearPin,
				}
			}
		}
		return m, func() tea.Msg {
			return CreatedMsg{Title: title, Description: description}
		}
	}

	return m, cmd
}

// View renders the form centered in the content area.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		theme.PanelStyle.Render(m.form.View()),
	)
}
