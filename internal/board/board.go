// Package board owns the in-memory working set of the active user's
// tasks. It fronts the persistence layer with a read cache and selection
// state, and funnels every mutation through a single lock and the store's
// revision check so back-to-back checklist edits cannot silently clobber
// each other.
//
// A Board is constructed explicitly and passed by reference; its lifetime
// is the application session.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/plan"
	"github.com/akern/plantrack/internal/store"
)

// ErrEmptyLabel rejects a checklist item with a blank label at the input
// boundary, before any write is attempted.
var ErrEmptyLabel = errors.New("checklist item label must not be empty")

// TaskDraft carries the caller-supplied fields for a new task. ID and
// timestamps are generated at creation.
type TaskDraft struct {
	UserID      string
	Title       string
	Description string

	// Position places the task on the plan in natural image coordinates.
	// Nil creates an unplaced task.
	Position *plan.Point

	// ChecklistItems seeds the checklist; nil means empty.
	ChecklistItems []model.ChecklistItem
}

// TaskUpdate is a partial update: nil fields leave the persisted value
// unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string

	// Position moves the task's pin. ClearPosition removes it; it is
	// ignored when Position is set. Both coordinates always change
	// together.
	Position      *plan.Point
	ClearPosition bool

	// ChecklistItems replaces the whole checklist when non-nil.
	ChecklistItems []model.ChecklistItem
}

// ChecklistItemUpdate is a partial update of a single checklist item.
type ChecklistItemUpdate struct {
	Label  *string
	Done   *bool
	Status *model.ChecklistStatus
}

// Board caches the active user's tasks and serializes mutations.
type Board struct {
	mu         sync.Mutex
	store      store.Store
	userID     string
	tasks      []model.Task
	selectedID string
}

// New creates an empty board backed by s.
func New(s store.Store) *Board {
	return &Board{store: s}
}

// LoadTasks fetches all tasks owned by userID and replaces the cache with
// the result. On failure the cache keeps its prior contents and the error
// is returned for the UI to surface.
func (b *Board) LoadTasks(ctx context.Context, userID string) error {
	tasks, err := b.store.GetTasksByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.userID = userID
	b.tasks = tasks
	return nil
}

// UserID returns the user whose tasks were last loaded.
func (b *Board) UserID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.userID
}

// Tasks returns a snapshot of the cached tasks in load/creation order.
func (b *Board) Tasks() []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// GetTaskByID looks up a task in the cache. It never touches persistence.
func (b *Board) GetTaskByID(id string) (model.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.findLocked(id)
}

func (b *Board) findLocked(id string) (model.Task, bool) {
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Select marks the task with id as the current selection.
func (b *Board) Select(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selectedID = id
}

// ClearSelection removes the current selection.
func (b *Board) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selectedID = ""
}

// Selected returns the currently selected task, if any.
func (b *Board) Selected() (model.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selectedID == "" {
		return model.Task{}, false
	}
	return b.findLocked(b.selectedID)
}

// SelectedID returns the selected task's id, or "" when nothing is
// selected.
func (b *Board) SelectedID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selectedID
}

// CreateTask persists a new task from draft and appends it to the cache.
// The stored record is returned: a fresh unique id, CreatedAt equal to
// UpdatedAt, and an empty checklist unless the draft seeded one.
func (b *Board) CreateTask(ctx context.Context, draft TaskDraft) (model.Task, error) {
	task := model.Task{
		ID:             uuid.New().String(),
		UserID:         draft.UserID,
		Title:          strings.TrimSpace(draft.Title),
		Description:    draft.Description,
		ChecklistItems: draft.ChecklistItems,
	}
	if draft.Position != nil {
		x, y := draft.Position.X, draft.Position.Y
		task.FloorPlanX = &x
		task.FloorPlanY = &y
	}

	created, err := b.store.CreateTask(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append(b.tasks, created)
	return created, nil
}

// UpdateTask merges upd over the persisted document and writes it back.
// The cache entry is replaced with the exact stored record, so cached and
// persisted UpdatedAt never diverge. Returns store.ErrNotFound (wrapped)
// when no task with this id exists.
func (b *Board) UpdateTask(ctx context.Context, id string, upd TaskUpdate) (model.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	task, err := b.store.GetTaskByID(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	applyUpdate(task, upd)
	return b.replaceLocked(ctx, *task)
}

// applyUpdate merges the set fields of upd into task.
func applyUpdate(task *model.Task, upd TaskUpdate) {
	if upd.Title != nil {
		task.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Position != nil {
		x, y := upd.Position.X, upd.Position.Y
		task.FloorPlanX = &x
		task.FloorPlanY = &y
	} else if upd.ClearPosition {
		task.FloorPlanX = nil
		task.FloorPlanY = nil
	}
	if upd.ChecklistItems != nil {
		task.ChecklistItems = upd.ChecklistItems
	}
}

// replaceLocked writes the full document through the store's revision
// check and mirrors the stored result into the cache. The board lock
// must be held.
func (b *Board) replaceLocked(ctx context.Context, task model.Task) (model.Task, error) {
	stored, err := b.store.ReplaceTask(ctx, task)
	if err != nil {
		return model.Task{}, err
	}

	for i := range b.tasks {
		if b.tasks[i].ID == stored.ID {
			b.tasks[i] = stored
			break
		}
	}
	return stored, nil
}

// DeleteTask removes the task from persistence and the cache. Deleting
// the currently selected task clears the selection; deleting any other
// task leaves it untouched.
func (b *Board) DeleteTask(ctx context.Context, id string) error {
	if err := b.store.DeleteTask(ctx, id); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			break
		}
	}
	if b.selectedID == id {
		b.selectedID = ""
	}
	return nil
}

// AddChecklistItem appends a new item to the task's checklist: fresh id,
// trimmed label, not done, status "Not started". Existing items keep
// their order; the new item goes last.
func (b *Board) AddChecklistItem(ctx context.Context, taskID, label string) (model.Task, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.Task{}, ErrEmptyLabel
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	task, err := b.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return model.Task{}, err
	}

	task.ChecklistItems = append(append([]model.ChecklistItem{}, task.ChecklistItems...),
		model.ChecklistItem{
			ID:     uuid.New().String(),
			Label:  label,
			Done:   false,
			Status: model.StatusNotStarted,
		})
	return b.replaceLocked(ctx, *task)
}

// UpdateChecklistItem merges upd over the matching item, preserving its
// position, and writes the task back. An unknown itemID is an error, not
// a silent success.
func (b *Board) UpdateChecklistItem(ctx context.Context, taskID, itemID string, upd ChecklistItemUpdate) (model.Task, error) {
	if upd.Status != nil && !model.ValidChecklistStatus(*upd.Status) {
		return model.Task{}, fmt.Errorf("unknown checklist status %q", *upd.Status)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	task, err := b.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return model.Task{}, err
	}

	items := append([]model.ChecklistItem{}, task.ChecklistItems...)
	found := false
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		found = true
		if upd.Label != nil {
			items[i].Label = strings.TrimSpace(*upd.Label)
		}
		if upd.Done != nil {
			items[i].Done = *upd.Done
		}
		if upd.Status != nil {
			items[i].Status = *upd.Status
		}
		break
	}
	if !found {
		return model.Task{}, fmt.Errorf("checklist item %s: %w", itemID, store.ErrNotFound)
	}

	task.ChecklistItems = items
	return b.replaceLocked(ctx, *task)
}

// RemoveChecklistItem removes the matching item and writes the task back.
// An unknown itemID leaves the checklist unchanged and is not an error;
// the task document is still rewritten, refreshing UpdatedAt.
func (b *Board) RemoveChecklistItem(ctx context.Context, taskID, itemID string) (model.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	task, err := b.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return model.Task{}, err
	}

	items := make([]model.ChecklistItem, 0, len(task.ChecklistItems))
	for _, item := range task.ChecklistItems {
		if item.ID != itemID {
			items = append(items, item)
		}
	}

	task.ChecklistItems = items
	return b.replaceLocked(ctx, *task)
}
