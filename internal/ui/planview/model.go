// Package planview renders the floor plan as a character grid with task
// markers, a placement cursor, and zoom/pan. All geometry goes through
// the plan mapper: task positions are stored in the image's natural
// pixel space and projected into a display box fitted to the grid.
package planview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akern/plantrack/internal/board"
	"github.com/akern/plantrack/internal/keys"
	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/plan"
	"github.com/akern/plantrack/internal/theme"
)

// Terminal cells are taller than wide; projecting through a virtual
// pixel pitch keeps the plan's aspect ratio roughly correct on screen.
const (
	cellPxW = 8.0
	cellPxH = 16.0
)

// MarkerSelectedMsg is dispatched when the cursor activates a task marker.
type MarkerSelectedMsg struct {
	TaskID string
}

// Model is the plan view component.
type Model struct {
	board      *board.Board
	keys       *keys.KeyMap
	natural    plan.Size
	markerSize float64
	minZoom    float64
	maxZoom    float64

	zoom    float64
	offsetX float64 // display px at the grid's top-left
	offsetY float64
	cursorX int // grid cell
	cursorY int

	tempPin *plan.Point // pending pin, natural coordinates

	width  int
	height int
}

// New creates a plan view for an image whose intrinsic dimensions are
// natural. An invalid size renders as a placeholder.
func New(b *board.Board, k *keys.KeyMap, natural plan.Size, markerSize, minZoom, maxZoom float64, width, height int) Model {
	return Model{
		board:      b,
		keys:       k,
		natural:    natural,
		markerSize: markerSize,
		minZoom:    minZoom,
		maxZoom:    maxZoom,
		zoom:       1,
		width:      width,
		height:     height,
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampViewport()
}

// Zoom returns the current zoom level for the header readout.
func (m *Model) Zoom() float64 {
	return m.zoom
}

// TempPin returns the pending pin position, if one is placed. The parent
// reads it to gate task creation and to seed the new task's placement.
func (m *Model) TempPin() *plan.Point {
	return m.tempPin
}

// ClearTempPin discards the pending pin, e.g. after the task is created.
func (m *Model) ClearTempPin() {
	m.tempPin = nil
}

// displayBase is the display box the natural image is fitted into at
// zoom 1, in virtual pixels. Zoom magnifies a window into this box, the
// way the original pan/zoom surface scaled its transform.
func (m Model) displayBase() plan.Size {
	if !m.natural.Valid() || m.width <= 0 || m.height <= 0 {
		return plan.Size{}
	}
	boxW := float64(m.width) * cellPxW
	boxH := float64(m.height) * cellPxH
	scale := math.Min(boxW/m.natural.Width, boxH/m.natural.Height)
	return plan.Size{
		Width:  m.natural.Width * scale,
		Height: m.natural.Height * scale,
	}
}

// pxPerCell returns the display pixels one grid cell spans at the
// current zoom.
func (m Model) pxPerCell() (float64, float64) {
	return cellPxW / m.zoom, cellPxH / m.zoom
}

// cursorClick returns the cursor's position as a click in display space.
func (m Model) cursorClick() plan.Point {
	pw, ph := m.pxPerCell()
	return plan.Point{
		X: m.offsetX + (float64(m.cursorX)+0.5)*pw,
		Y: m.offsetY + (float64(m.cursorY)+0.5)*ph,
	}
}

// markerCell projects a stored natural-space position to a grid cell.
// The marker footprint is counter-scaled by 1/zoom so pins keep constant
// on-screen size under magnification.
func (m Model) markerCell(stored plan.Point) (int, int, bool) {
	display := m.displayBase()
	footprint := m.markerSize * plan.InverseScale(m.zoom)

	pos, err := plan.MarkerPosition(stored, m.natural, display, footprint)
	if err != nil {
		return 0, 0, false
	}

	// MarkerPosition yields the top-left corner; recover the center.
	adjust := math.Ceil(footprint / 2)
	centerX := pos.X + adjust
	centerY := pos.Y + adjust

	pw, ph := m.pxPerCell()
	col := int(math.Floor((centerX - m.offsetX) / pw))
	row := int(math.Floor((centerY - m.offsetY) / ph))
	if col < 0 || col >= m.width || row < 0 || row >= m.height {
		return 0, 0, false
	}
	return col, row, true
}

// clampViewport keeps the visible window inside the display box and the
// cursor inside the grid.
func (m *Model) clampViewport() {
	display := m.displayBase()
	if !display.Valid() {
		return
	}
	pw, ph := m.pxPerCell()

	maxOffX := display.Width - float64(m.width)*pw
	maxOffY := display.Height - float64(m.height)*ph
	m.offsetX = math.Max(0, math.Min(m.offsetX, math.Max(0, maxOffX)))
	m.offsetY = math.Max(0, math.Min(m.offsetY, math.Max(0, maxOffY)))

	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.cursorY >= m.height {
		m.cursorY = m.height - 1
	}
}

// moveCursor shifts the cursor by (dx, dy) cells, panning the viewport
// when the cursor pushes past an edge.
func (m *Model) moveCursor(dx, dy int) {
	pw, ph := m.pxPerCell()

	m.cursorX += dx
	if m.cursorX < 0 {
		m.offsetX += float64(m.cursorX) * pw
		m.cursorX = 0
	}
	if m.cursorX >= m.width {
		m.offsetX += float64(m.cursorX-m.width+1) * pw
		m.cursorX = m.width - 1
	}

	m.cursorY += dy
	if m.cursorY < 0 {
		m.offsetY += float64(m.cursorY) * ph
		m.cursorY = 0
	}
	if m.cursorY >= m.height {
		m.offsetY += float64(m.cursorY-m.height+1) * ph
		m.cursorY = m.height - 1
	}

	m.clampViewport()
}

// setZoom changes the zoom level, keeping the cursor's display position
// stable so zooming feels anchored.
func (m *Model) setZoom(zoom float64) {
	zoom = math.Max(m.minZoom, math.Min(m.maxZoom, zoom))
	if zoom == m.zoom {
		return
	}

	anchor := m.cursorClick()
	m.zoom = zoom

	pw, ph := m.pxPerCell()
	m.offsetX = anchor.X - (float64(m.cursorX)+0.5)*pw
	m.offsetY = anchor.Y - (float64(m.cursorY)+0.5)*ph
	m.clampViewport()
}

// Update handles key input for the plan view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveCursor(1, 0)

	case key.Matches(keyMsg, m.keys.ZoomIn):
		m.setZoom(m.zoom * 2)
	case key.Matches(keyMsg, m.keys.ZoomOut):
		m.setZoom(m.zoom / 2)

	case key.Matches(keyMsg, m.keys.PlacePin):
		pos, err := plan.PointerToPlan(
			m.cursorClick(), plan.Point{}, m.displayBase(), m.natural)
		if err != nil {
			// Dimensions not ready; ignore the click.
			return m, nil
		}
		m.tempPin = &pos
		m.board.ClearSelection()

	case key.Matches(keyMsg, m.keys.Select):
		if id, ok := m.taskAtCursor(); ok {
			m.tempPin = nil
			return m, func() tea.Msg { return MarkerSelectedMsg{TaskID: id} }
		}

	case key.Matches(keyMsg, m.keys.CancelPin):
		m.tempPin = nil
	}

	return m, nil
}

// taskAtCursor returns the id of the task whose marker occupies the
// cursor's cell, if any.
func (m Model) taskAtCursor() (string, bool) {
	for _, t := range m.board.Tasks() {
		if !t.Placed() {
			continue
		}
		col, row, visible := m.markerCell(plan.Point{X: *t.FloorPlanX, Y: *t.FloorPlanY})
		if visible && col == m.cursorX && row == m.cursorY {
			return t.ID, true
		}
	}
	return "", false
}

// cellContent is a renderable overlay on the plan grid.
type cellContent struct {
	glyph string
	style lipgloss.Style
}

// View renders the plan grid with markers, the pending pin, and the cursor.
func (m Model) View() string {
	if !m.natural.Valid() {
		return theme.DimStyle.Render("plan image not loaded")
	}
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	display := m.displayBase()
	pw, ph := m.pxPerCell()
	selectedID := m.board.SelectedID()

	// Overlay markers on the grid, selected marker last so it wins
	// contested cells.
	overlay := make(map[[2]int]cellContent)
	var selected *model.Task
	for _, t := range m.board.Tasks() {
		if !t.Placed() {
			continue
		}
		if t.ID == selectedID {
			tt := t
			selected = &tt
			continue
		}
		if col, row, ok := m.markerCell(plan.Point{X: *t.FloorPlanX, Y: *t.FloorPlanY}); ok {
			overlay[[2]int{col, row}] = cellContent{glyph: "●", style: theme.MarkerStyle}
		}
	}
	if selected != nil {
		if col, row, ok := m.markerCell(plan.Point{X: *selected.FloorPlanX, Y: *selected.FloorPlanY}); ok {
			overlay[[2]int{col, row}] = cellContent{glyph: "◉", style: theme.SelectedMarkerStyle}
		}
	}
	if m.tempPin != nil {
		if col, row, ok := m.markerCell(*m.tempPin); ok {
			overlay[[2]int{col, row}] = cellContent{glyph: "+", style: theme.TempPinStyle}
		}
	}

	var b strings.Builder
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			if row == m.cursorY && col == m.cursorX {
				if c, ok := overlay[[2]int{col, row}]; ok {
					b.WriteString(theme.CursorStyle.Render(c.glyph))
				} else {
					b.WriteString(theme.CursorStyle.Render("┼"))
				}
				continue
			}
			if c, ok := overlay[[2]int{col, row}]; ok {
				b.WriteString(c.style.Render(c.glyph))
				continue
			}
			b.WriteString(m.backgroundGlyph(col, row, display, pw, ph))
		}
		if row < m.height-1 {
			b.WriteString("\n")
		}
	}

	grid := b.String()

	// The selected marker's title tag, like the original's pin label.
	if selected != nil {
		label := theme.MarkerLabelStyle.Render(selected.Title)
		grid += "\n" + label
		return grid
	}
	if m.tempPin != nil {
		hint := theme.DimStyle.Render(
			fmt.Sprintf("pin at (%.0f, %.0f) · n: create task · esc: cancel",
				m.tempPin.X, m.tempPin.Y))
		grid += "\n" + hint
	}
	return grid
}

// backgroundGlyph draws the plan texture: a faint grid inside the image's
// footprint, blank outside it.
func (m Model) backgroundGlyph(col, row int, display plan.Size, pw, ph float64) string {
	px := m.offsetX + (float64(col)+0.5)*pw
	py := m.offsetY + (float64(row)+0.5)*ph
	if px > display.Width || py > display.Height {
		return " "
	}
	if col%10 == 0 && row%5 == 0 {
		return theme.PlanGridStyle.Render("+")
	}
	if row%5 == 0 {
		return theme.PlanGridStyle.Render("·")
	}
	if col%10 == 0 {
		return theme.PlanGridStyle.Render("·")
	}
	return " "
}
