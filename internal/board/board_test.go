package board_test

import (
	"context"
	"errors"
	"testing"

	"github.com/akern/plantrack/internal/board"
	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/plan"
	"github.com/akern/plantrack/internal/store"
	"github.com/akern/plantrack/tests/testutil"
)

func newTestBoard(t *testing.T) (*board.Board, model.User) {
	t.Helper()
	s := testutil.NewTestStore(t)

	user, err := s.CreateUser(context.Background(), model.User{Name: "alice"})
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}

	b := board.New(s)
	if err := b.LoadTasks(context.Background(), user.ID); err != nil {
		t.Fatalf("LoadTasks() error = %v", err)
	}
	return b, user
}

func createBoardTask(t *testing.T, b *board.Board, user model.User, title string) model.Task {
	t.Helper()
	task, err := b.CreateTask(context.Background(), board.TaskDraft{
		UserID: user.ID,
		Title:  title,
	})
	if err != nil {
		t.Fatalf("CreateTask(%q) error = %v", title, err)
	}
	return task
}

func TestBoardCreateTask(t *testing.T) {
	b, user := newTestBoard(t)
	ctx := context.Background()

	first, err := b.CreateTask(ctx, board.TaskDraft{
		UserID:   user.ID,
		Title:    "  Check drainage  ",
		Position: &plan.Point{X: 120.5, Y: 340},
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	second := createBoardTask(t, b, user, "Paint hallway")

	if first.ID == second.ID {
		t.Error("task ids must be unique")
	}
	if first.Title != "Check drainage" {
		t.Errorf("Title = %q, want trimmed %q", first.Title, "Check drainage")
	}
	if !first.Placed() || *first.FloorPlanX != 120.5 || *first.FloorPlanY != 340 {
		t.Errorf("placement = (%v, %v), want (120.5, 340)", first.FloorPlanX, first.FloorPlanY)
	}
	if second.Placed() {
		t.Error("task created without a position should not be placed")
	}
	if first.ChecklistItems == nil || len(first.ChecklistItems) != 0 {
		t.Errorf("ChecklistItems = %v, want empty non-nil", first.ChecklistItems)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt must match on creation")
	}

	if got := b.Tasks(); len(got) != 2 {
		t.Errorf("len(Tasks()) = %d, want 2", len(got))
	}
}

func TestBoardUpdateTask(t *testing.T) {
	b, user := newTestBoard(t)
	ctx := context.Background()
	task := createBoardTask(t, b, user, "before")

	title := "after"
	desc := "second floor, east wing"
	updated, err := b.UpdateTask(ctx, task.ID, board.TaskUpdate{
		Title:       &title,
		Description: &desc,
		Position:    &plan.Point{X: 10, Y: 20},
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Title != "after" || updated.Description != desc {
		t.Errorf("updated = %q/%q, want %q/%q", updated.Title, updated.Description, "after", desc)
	}
	if !updated.Placed() {
		t.Error("expected updated task to be placed")
	}

	// Cached copy mirrors the stored record exactly, timestamp included.
	cached, ok := b.GetTaskByID(task.ID)
	if !ok {
		t.Fatal("task missing from cache")
	}
	if !cached.UpdatedAt.Equal(updated.UpdatedAt) {
		t.Errorf("cached UpdatedAt %v != stored %v", cached.UpdatedAt, updated.UpdatedAt)
	}
	if cached.Revision != updated.Revision {
		t.Errorf("cached Revision = %d, want %d", cached.Revision, updated.Revision)
	}
}

func TestBoardUpdateTask_ClearPosition(t *testing.T) {
	b, user := newTestBoard(t)
	ctx := context.Background()

	task, err := b.CreateTask(ctx, board.TaskDraft{
		UserID:   user.ID,
		Title:    "pinned",
		Position: &plan.Point{X: 5, Y: 5},
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	updated, err := b.UpdateTask(ctx, task.ID, board.TaskUpdate{ClearPosition: true})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	if updated.Placed() {
		t.Error("expected pin to be removed")
	}
}

func TestBoardUpdateTask_NotFound(t *testing.T) {
	b, user := newTestBoard(t)
	createBoardTask(t, b, user, "survivor")

	before := b.Tasks()
	title := "ghost"
	_, err := b.UpdateTask(context.Background(), "no-such-task", board.TaskUpdate{Title: &title})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateTask() error = %v, want ErrNotFound", err)
	}

	after := b.Tasks()
	if len(after) != len(before) || after[0].Title != "survivor" {
		t.Error("failed update must leave the cache unchanged")
	}
}

func TestBoardDeleteTask_Selection(t *testing.T) {
	b, user := newTestBoard(t)
	ctx := context.Background()
	first := createBoardTask(t, b, user, "first")
	second := createBoardTask(t, b, user, "second")

	b.Select(first.ID)
	if err := b.DeleteTask(ctx, second.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if b.SelectedID() != first.ID {
		t.Error("deleting an unselected task must keep the selection")
	}

	if err := b.DeleteTask(ctx, first.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if b.SelectedID() != "" {
		t.Error("deleting the selected task must clear the selection")
	}
	if got := b.Tasks(); len(got) != 0 {
		t.Errorf("len(Tasks()) = %d, want 0", len(got))
	}
}

func TestBoardAddChecklistItem(t *testing.T) {
	b, user := newTestBoard(t)
	ctx := context.Background()
	task := createBoardTask(t, b, user, "snag list")

	updated, err := b.AddChecklistItem(ctx, task.ID, "  fix skirting  ")
	if err != nil {
		t.Fatalf("AddChecklistItem() error = %v", err)
	}
	updated, err = b.AddChecklistItem(ctx, task.ID, "touch up paint")
	if err != nil {
		t.Fatalf("AddChecklistItem() error = %v", err)
	}

	if len(updated.ChecklistItems) != 2 {
		t.Fatalf("len(ChecklistItems) = %d, want 2", len(updated.ChecklistItems))
	}

	first := updated.ChecklistItems[0]
	if first.Label != "fix skirting" {
		t.Errorf("Label = %q, want trimmed %q", first.Label, "fix skirting")
	}
	if first.ID == "" || first.ID == updated.ChecklistItems[1].ID {
		t.Error("checklist item ids must be unique and non-empty")
	}
	if first.Done {
		t.Error("new item must not be done")
	}
	if first.Status != model.StatusNotStarted {
		t.Errorf("Status = %q, want %q", first.Status, model.StatusNotStarted)
	}
	if updated.ChecklistItems[1].Label != "touch up paint" {
		t.Error("new items must append after existing ones")
	}

	if _, err := b.AddChecklistItem(ctx, task.ID, "   "); !errors.Is(err, board.ErrEmptyLabel) {
		t.Errorf("blank label error = %v, want ErrEmptyLabel", err)
	}
}

func TestBoardUpdateChecklistItem(t *testing.T) {
	b, user := newTestBoard(t)
	ctx := context.Background()
	task := createBoardTask(t, b, user, "snag list")

	withItem, err := b.AddChecklistItem(ctx, task.ID, "level the floor")
	if err != nil {
		t.Fatalf("AddChecklistItem() error = %v", err)
	}
	itemID := withItem.ChecklistItems[0].ID

	done := true
	updated, err := b.UpdateChecklistItem(ctx, task.ID, itemID, board.ChecklistItemUpdate{Done: &done})
	if err != nil {
		t.Fatalf("UpdateChecklistItem() error = %v", err)
	}

	item := updated.ChecklistItems[0]
	if !item.Done {
		t.Error("expected item to be done")
	}
	// Untouched fields survive the merge.
	if item.Label != "level the floor" {
		t.Errorf("Label = %q, want unchanged", item.Label)
	}
	if item.Status != model.StatusNotStarted {
		t.Errorf("Status = %q, want unchanged", item.Status)
	}

	status := model.StatusBlocked
	updated, err = b.UpdateChecklistItem(ctx, task.ID, itemID, board.ChecklistItemUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateChecklistItem() error = %v", err)
	}
	if updated.ChecklistItems[0].Status != model.StatusBlocked {
		t.Errorf("Status = %q, want %q", updated.ChecklistItems[0].Status, model.StatusBlocked)
	}
	// Done and workflow status stay independent.
	if !updated.ChecklistItems[0].Done {
		t.Error("changing status must not reset done")
	}
}

func TestBoardUpdateChecklistItem_Errors(t *testing.T) {
	b, user := newTestBoard(t)
	ctx := context.Background()
	task := createBoardTask(t, b, user, "snag list")

	done := true
	_, err := b.UpdateChecklistItem(ctx, task.ID, "no-such-item", board.ChecklistItemUpdate{Done: &done})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown item error = %v, want ErrNotFound", err)
	}

	bogus := model.ChecklistStatus("Procrastinating")
	_, err = b.UpdateChecklistItem(ctx, task.ID, "whatever", board.ChecklistItemUpdate{Status: &bogus})
	if err == nil {
		t.Error("expected an error for an unknown status value")
	}
}

func TestBoardRemoveChecklistItem(t *testing.T) {
	b, user := newTestBoard(t)
	ctx := context.Background()
	task := createBoardTask(t, b, user, "snag list")

	withItems, err := b.AddChecklistItem(ctx, task.ID, "keep me")
	if err != nil {
		t.Fatalf("AddChecklistItem() error = %v", err)
	}
	withItems, err = b.AddChecklistItem(ctx, task.ID, "remove me")
	if err != nil {
		t.Fatalf("AddChecklistItem() error = %v", err)
	}

	removeID := withItems.ChecklistItems[1].ID
	updated, err := b.RemoveChecklistItem(ctx, task.ID, removeID)
	if err != nil {
		t.Fatalf("RemoveChecklistItem() error = %v", err)
	}
	if len(updated.ChecklistItems) != 1 || updated.ChecklistItems[0].Label != "keep me" {
		t.Errorf("ChecklistItems = %+v, want only %q", updated.ChecklistItems, "keep me")
	}

	// Removing an unknown item is not an error and keeps the checklist intact.
	updated, err = b.RemoveChecklistItem(ctx, task.ID, "already-gone")
	if err != nil {
		t.Fatalf("RemoveChecklistItem(unknown) error = %v", err)
	}
	if len(updated.ChecklistItems) != 1 {
		t.Errorf("len(ChecklistItems) = %d, want 1", len(updated.ChecklistItems))
	}
}

func TestBoardLoadTasks_KeepsCacheOnMissingUser(t *testing.T) {
	b, user := newTestBoard(t)
	createBoardTask(t, b, user, "already loaded")

	// Loading an unknown user succeeds with an empty result set; the cache
	// simply reflects that user's (empty) board.
	if err := b.LoadTasks(context.Background(), "nobody"); err != nil {
		t.Fatalf("LoadTasks() error = %v", err)
	}
	if got := b.Tasks(); len(got) != 0 {
		t.Errorf("len(Tasks()) = %d, want 0", len(got))
	}
	if b.UserID() != "nobody" {
		t.Errorf("UserID() = %q, want %q", b.UserID(), "nobody")
	}
}
