package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorBarStyle replaces the status bar while an error notice is showing.
var ErrorBarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// PanelStyle wraps bordered content areas such as the plan and detail views.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// TitleStyle is for secondary titles inside panels.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// MarkerStyle renders a task pin on the plan grid.
var MarkerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// SelectedMarkerStyle renders the selected task's pin.
var SelectedMarkerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorOrange)

// TempPinStyle renders the pending pin placed by the cursor.
var TempPinStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// CursorStyle renders the plan view's placement cursor.
var CursorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow)

// PlanGridStyle renders the plan background texture.
var PlanGridStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

// MarkerLabelStyle renders the title tag beside a selected marker.
var MarkerLabelStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorGray).
	Padding(0, 1)

// DimStyle is for de-emphasized text.
var DimStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// DoneStyle marks completed checklist items.
var DoneStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// BlockedStyle marks blocked checklist items.
var BlockedStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// StatusColor returns the accent color for a checklist workflow status
// label.
func StatusColor(status string) lipgloss.AdaptiveColor {
	switch status {
	case "Done":
		return ColorGreen
	case "In progress":
		return ColorBlue
	case "Blocked":
		return ColorRed
	case "Final Check awaiting":
		return ColorOrange
	default:
		return ColorGray
	}
}
