// Package app hosts the root Bubble Tea model: view routing, the frame
// layout, and the glue between UI events and the board's mutations.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/akern/plantrack/internal/board"
	"github.com/akern/plantrack/internal/keys"
	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/plan"
	"github.com/akern/plantrack/internal/session"
	"github.com/akern/plantrack/internal/ui"
	"github.com/akern/plantrack/internal/ui/detail"
	"github.com/akern/plantrack/internal/ui/login"
	"github.com/akern/plantrack/internal/ui/planview"
	"github.com/akern/plantrack/internal/ui/tasklist"
	"github.com/akern/plantrack/internal/ui/taskform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewPlan
	ViewTaskList
	ViewDetail
	ViewTaskCreate
	ViewTaskEdit
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the session and board.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	session      *session.Session
	board        *board.Board
	keys         *keys.KeyMap

	loginView  login.Model
	planView   planview.Model
	listView   tasklist.Model
	detailView detail.Model
	formView   taskform.Model

	errNotice string
	ready     bool
}

// New creates the root application model.
func New(sess *session.Session, b *board.Board, natural plan.Size, cfg *model.AppConfig) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView: ViewLogin,
		session:     sess,
		board:       b,
		keys:        k,
		loginView:   login.New(80, 24),
		planView: planview.New(b, k, natural,
			cfg.Plan.MarkerSize, cfg.Plan.MinZoom, cfg.Plan.MaxZoom, 80, 24),
		listView:   tasklist.New(b, k, 80, 24),
		detailView: detail.New(k, 80, 24),
		formView:   taskform.New(80, 24),
	}
}

// Init attempts auto-login from the remembered username.
func (m Model) Init() tea.Cmd {
	return m.resumeSession()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(contentWidth, contentHeight)
		m.planView.SetSize(contentWidth, contentHeight-1)
		m.listView.SetSize(contentWidth, contentHeight)
		m.detailView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sessionResultMsg:
		if msg.err != nil {
			// A failed auto-login falls through to the login screen;
			// an explicit login failure shows the notice there too.
			m.errNotice = msg.err.Error()
			m.currentView = ViewLogin
			return m, m.loginView.Start()
		}
		if msg.user == nil {
			// Nothing remembered; show the login screen.
			m.currentView = ViewLogin
			return m, m.loginView.Start()
		}
		m.currentView = ViewPlan
		return m, m.loadTasks(msg.user.ID)

	case login.SubmitMsg:
		return m, m.login(msg.Name)

	case tasksLoadedMsg:
		if msg.err != nil {
			m.errNotice = "Failed to load tasks"
			return m, nil
		}
		m.listView.Refresh()
		return m, nil

	case planview.MarkerSelectedMsg:
		return m.openDetail(msg.TaskID)

	case tasklist.SelectedTaskMsg:
		return m.openDetail(msg.TaskID)

	case tasklist.CloseMsg:
		m.currentView = ViewPlan
		return m, nil

	case taskform.CreatedMsg:
		m.currentView = ViewPlan
		return m, m.createTask(msg.Title, msg.Description, m.planView.TempPin())

	case taskform.UpdatedMsg:
		m.currentView = ViewDetail
		upd := board.TaskUpdate{
			Title:         &msg.Title,
			Description:   &msg.Description,
			ClearPosition: msg.ClearPosition,
		}
		return m, m.updateTask(msg.TaskID, upd)

	case taskform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case detail.BackMsg:
		m.board.ClearSelection()
		m.currentView = ViewPlan
		return m, nil

	case detail.EditRequestMsg:
		if task, ok := m.board.GetTaskByID(msg.TaskID); ok {
			m.previousView = m.currentView
			m.currentView = ViewTaskEdit
			return m, m.formView.StartEdit(task)
		}
		return m, nil

	case detail.DeleteRequestMsg:
		return m, m.deleteTask(msg.TaskID)

	case detail.ToggleItemMsg:
		done := msg.Done
		return m, m.updateChecklistItem(msg.TaskID, msg.ItemID,
			board.ChecklistItemUpdate{Done: &done})

	case detail.CycleStatusMsg:
		status := msg.Status
		return m, m.updateChecklistItem(msg.TaskID, msg.ItemID,
			board.ChecklistItemUpdate{Status: &status})

	case detail.AddItemMsg:
		return m, m.addChecklistItem(msg.TaskID, msg.Label)

	case detail.RemoveItemMsg:
		return m, m.removeChecklistItem(msg.TaskID, msg.ItemID)

	case taskMutatedMsg:
		if msg.err != nil {
			m.errNotice = msg.err.Error()
			return m, nil
		}
		if msg.created {
			m.planView.ClearTempPin()
		}
		m.listView.Refresh()
		if task, ok := m.board.GetTaskByID(msg.taskID); ok {
			m.detailView.SetTask(task)
		}
		return m, nil

	case taskDeletedMsg:
		if msg.err != nil {
			m.errNotice = msg.err.Error()
			return m, nil
		}
		m.listView.Refresh()
		if m.currentView == ViewDetail {
			m.currentView = ViewPlan
		}
		return m, nil

	case tea.KeyMsg:
		// Any keypress clears a pending error notice.
		m.errNotice = ""

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.currentView == ViewPlan {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			if m.currentView == ViewPlan || m.currentView == ViewTaskList {
				m.previousView = m.currentView
				m.currentView = ViewHelp
				return m, nil
			}

		case key.Matches(msg, m.keys.TaskList):
			if m.currentView == ViewPlan {
				m.listView.Refresh()
				m.currentView = ViewTaskList
				return m, nil
			}

		case key.Matches(msg, m.keys.NewTask):
			// Creating a task requires a pending pin, like placing the
			// cross before the add button appears in a map UI.
			if m.currentView == ViewPlan && m.planView.TempPin() != nil {
				m.previousView = m.currentView
				m.currentView = ViewTaskCreate
				return m, m.formView.StartCreate()
			}

		case key.Matches(msg, m.keys.Logout):
			if m.currentView == ViewPlan {
				m.session.Logout()
				m.board.ClearSelection()
				m.planView.ClearTempPin()
				m.currentView = ViewLogin
				return m, m.loginView.Start()
			}
		}
	}

	// Delegate to active sub-view.
	return m.updateActiveView(msg)
}

// openDetail selects the task and switches to the detail view.
func (m Model) openDetail(taskID string) (tea.Model, tea.Cmd) {
	task, ok := m.board.GetTaskByID(taskID)
	if !ok {
		m.errNotice = "Task not found"
		return m, nil
	}
	m.board.Select(taskID)
	m.detailView.SetTask(task)
	m.previousView = m.currentView
	m.currentView = ViewDetail
	return m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewPlan:
		m.planView, cmd = m.planView.Update(msg)
	case ViewTaskList:
		m.listView, cmd = m.listView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.formView, cmd = m.formView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Construction Plan", m.sessionInfo())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.errNotice)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewPlan:
		return m.planView.View()
	case ViewTaskList:
		return m.listView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewTaskCreate, ViewTaskEdit:
		return m.formView.View()
	case ViewHelp:
		return m.renderHelp()
	default:
		return ""
	}
}

// sessionInfo returns the header's right-hand readout.
func (m Model) sessionInfo() string {
	user := m.session.User()
	if user == nil {
		return "not logged in"
	}
	if m.currentView == ViewPlan {
		return fmt.Sprintf("%s · zoom %gx", user.Name, m.planView.Zoom())
	}
	return user.Name
}

// keyHints returns the status bar hints for the current view.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewLogin:
		return "enter: log in"
	case ViewPlan:
		if m.planView.TempPin() != nil {
			return "n: create task here · esc: cancel pin · arrows: move · +/-: zoom"
		}
		return "arrows: move · space: place pin · enter: open marker · +/-: zoom · t: tasks · ?: help · q: quit"
	case ViewTaskList:
		return "enter: open · esc: back"
	case ViewDetail:
		return "a: add item · x: done · s: status · ⌫: remove · e: edit · d: delete · esc: back"
	case ViewTaskCreate, ViewTaskEdit:
		return "enter: next field · esc: cancel"
	case ViewHelp:
		return "?: close help"
	default:
		return ""
	}
}

// renderHelp renders the static help screen.
func (m Model) renderHelp() string {
	return `
  plantrack: tasks on a floor plan

  Plan view
    arrows/hjkl   move the cursor (pans at the edges)
    +/-           zoom in / out (markers keep their size)
    space         place a pin at the cursor
    n             create a task at the pending pin
    enter         open the marker under the cursor
    t             task list
    L             log out
    q             quit

  Task detail
    j/k           move through the checklist
    a             add a checklist item
    x             toggle done
    s             cycle workflow status
    backspace     remove item
    e             edit title/description
    d             delete the task
`
}
