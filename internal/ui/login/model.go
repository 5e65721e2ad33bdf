// Package login renders the name prompt shown while no user is active.
package login

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/akern/plantrack/internal/theme"
)

var errNameRequired = errors.New("name cannot be empty")

// SubmitMsg is dispatched when the user confirms a name.
type SubmitMsg struct {
	Name string
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name string
}

// Model is the Bubble Tea model for the login screen.
type Model struct {
	form      *huh.Form
	fb        *formBindings
	submitted bool
	width     int
	height    int
}

// New creates a login model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes a fresh login form.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.submitted = false
	m.form = m.buildForm()
	return m.form.Init()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Who is working on the plan?").
				Description("An existing name resumes that user; a new name creates one.").
				Placeholder("your name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errNameRequired
					}
					return nil
				}).
				Value(&m.fb.name),
		),
	).WithWidth(min(m.width-4, 60)).WithShowHelp(true)
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	// Emit the submission exactly once; stray messages arriving while
	// the login command is in flight must not fire it again.
	if m.form.State == huh.StateCompleted && !m.submitted {
		m.submitted = true
		name := strings.TrimSpace(m.fb.name)
		return m, func() tea.Msg { return SubmitMsg{Name: name} }
	}

	return m, cmd
}

// View renders the login screen centered in the content area.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := theme.TitleStyle.Render("plantrack")
	body := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		theme.PanelStyle.Render(body),
	)
}
