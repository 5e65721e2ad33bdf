package model

import "testing"

func TestTaskPlaced(t *testing.T) {
	x, y := 10.0, 20.0

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"both set", Task{FloorPlanX: &x, FloorPlanY: &y}, true},
		{"neither set", Task{}, false},
		{"only x", Task{FloorPlanX: &x}, false},
		{"only y", Task{FloorPlanY: &y}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Placed(); got != tt.want {
				t.Errorf("Placed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskDoneCount(t *testing.T) {
	task := Task{ChecklistItems: []ChecklistItem{
		{Label: "a", Done: true},
		{Label: "b", Done: false},
		{Label: "c", Done: true, Status: StatusBlocked},
	}}

	if got := task.DoneCount(); got != 2 {
		t.Errorf("DoneCount() = %d, want 2", got)
	}
	if got := (Task{}).DoneCount(); got != 0 {
		t.Errorf("DoneCount() on empty checklist = %d, want 0", got)
	}
}

func TestValidChecklistStatus(t *testing.T) {
	for _, s := range ChecklistStatuses {
		if !ValidChecklistStatus(s) {
			t.Errorf("ValidChecklistStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []ChecklistStatus{"", "done", "DONE", "Paused"} {
		if ValidChecklistStatus(s) {
			t.Errorf("ValidChecklistStatus(%q) = true, want false", s)
		}
	}
}
