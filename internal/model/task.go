package model

import "time"

// ChecklistStatus is the workflow status of a checklist item.
type ChecklistStatus string

// The five workflow statuses a checklist item can be in.
const (
	StatusNotStarted ChecklistStatus = "Not started"
	StatusInProgress ChecklistStatus = "In progress"
	StatusBlocked    ChecklistStatus = "Blocked"
	StatusFinalCheck ChecklistStatus = "Final Check awaiting"
	StatusDone       ChecklistStatus = "Done"
)

// ChecklistStatuses lists all statuses in workflow order, used by forms
// and for cycling a status from the detail view.
var ChecklistStatuses = []ChecklistStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusBlocked,
	StatusFinalCheck,
	StatusDone,
}

// ValidChecklistStatus reports whether s is one of the known statuses.
func ValidChecklistStatus(s ChecklistStatus) bool {
	for _, known := range ChecklistStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ChecklistItem is a sub-entry within a task. Its lifecycle is bound to
// the parent task; it is only ever persisted as part of the task document.
//
// Done and Status are independent: toggling the completion flag does not
// move the workflow status, and vice versa.
type ChecklistItem struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Done   bool            `json:"done"`
	Status ChecklistStatus `json:"status"`
}

// Task is a user-owned work item, optionally pinned to a position on the
// floor plan.
type Task struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`
	Title  string `json:"title" db:"title"`

	// Description is optional free text.
	Description string `json:"description,omitempty" db:"description"`

	// FloorPlanX and FloorPlanY are the pin position in the plan image's
	// natural pixel space. Either both are set or both are nil: a task is
	// unplaced or fully placed, never half of each.
	FloorPlanX *float64 `json:"floor_plan_x,omitempty" db:"floor_plan_x"`
	FloorPlanY *float64 `json:"floor_plan_y,omitempty" db:"floor_plan_y"`

	// ChecklistItems is ordered; insertion order is display order.
	ChecklistItems []ChecklistItem `json:"checklist_items"`

	// Revision counts persisted writes of this document and backs the
	// compare-and-swap in the store's ReplaceTask.
	Revision int64 `json:"revision" db:"revision"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Placed reports whether the task has a position on the plan.
func (t Task) Placed() bool {
	return t.FloorPlanX != nil && t.FloorPlanY != nil
}

// DoneCount returns how many checklist items have their done flag set.
func (t Task) DoneCount() int {
	n := 0
	for _, item := range t.ChecklistItems {
		if item.Done {
			n++
		}
	}
	return n
}
