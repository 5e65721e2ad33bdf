package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/akern/plantrack/internal/model"
)

// validateTask rejects documents that must never reach the database:
// blank titles, over-long ids, and half-set floor plan coordinates.
func validateTask(task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(task.ID) > MaxFieldLength {
		return ErrIDTooLong
	}
	if (task.FloorPlanX == nil) != (task.FloorPlanY == nil) {
		return ErrPartialPlacement
	}
	return nil
}

// CreateTask inserts a new task document. Generates a UUID if ID is empty,
// stamps CreatedAt and UpdatedAt with the same instant, defaults the
// checklist to an empty sequence, and sets revision 1. Returns the stored
// record.
func (s *SQLiteStore) CreateTask(
	ctx context.Context,
	task model.Task,
) (model.Task, error) {
	if err := validateTask(task); err != nil {
		return model.Task{}, err
	}
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	task.Revision = 1
	if task.ChecklistItems == nil {
		task.ChecklistItems = []model.ChecklistItem{}
	}

	checklist, err := json.Marshal(task.ChecklistItems)
	if err != nil {
		return model.Task{}, fmt.Errorf("marshaling checklist for task %s: %w", task.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (
			id, user_id, title, description,
			floor_plan_x, floor_plan_y,
			checklist_items, revision,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, task.Description,
		task.FloorPlanX, task.FloorPlanY,
		string(checklist), task.Revision,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task %s: %w", task.ID, err)
	}
	return task, nil
}

// GetTaskByID retrieves a single task document by ID.
func (s *SQLiteStore) GetTaskByID(
	ctx context.Context,
	id string,
) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT * FROM tasks WHERE id = ?", id)

	task, err := scanTaskRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return &task, nil
}

// GetTasksByUser retrieves all task documents owned by userID,
// oldest first.
func (s *SQLiteStore) GetTasksByUser(
	ctx context.Context,
	userID string,
) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM tasks WHERE user_id = ? ORDER BY created_at", userID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for user %s: %w", userID, err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// ReplaceTask writes a full task document over the persisted one, guarded
// by the revision the caller read: the write only lands if the stored
// revision still equals task.Revision. On success the stored revision is
// task.Revision+1 and UpdatedAt is freshly stamped; the stored record is
// returned so callers can keep their cache byte-identical to persistence.
//
// Returns ErrNotFound if no task with this ID exists, ErrConflict if the
// document changed since the caller's read.
func (s *SQLiteStore) ReplaceTask(
	ctx context.Context,
	task model.Task,
) (model.Task, error) {
	if err := validateTask(task); err != nil {
		return model.Task{}, err
	}
	if task.ChecklistItems == nil {
		task.ChecklistItems = []model.ChecklistItem{}
	}
	task.UpdatedAt = time.Now().UTC()

	checklist, err := json.Marshal(task.ChecklistItems)
	if err != nil {
		return model.Task{}, fmt.Errorf("marshaling checklist for task %s: %w", task.ID, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?,
			floor_plan_x = ?, floor_plan_y = ?,
			checklist_items = ?, revision = revision + 1,
			updated_at = ?
		WHERE id = ? AND revision = ?`,
		task.Title, task.Description,
		task.FloorPlanX, task.FloorPlanY,
		string(checklist), task.UpdatedAt,
		task.ID, task.Revision,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("replacing task %s: %w", task.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Distinguish a missing document from a lost revision race.
		var count int
		if err := s.db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM tasks WHERE id = ?", task.ID); err != nil {
			return model.Task{}, fmt.Errorf("checking task %s: %w", task.ID, err)
		}
		if count == 0 {
			return model.Task{}, fmt.Errorf("task %s: %w", task.ID, ErrNotFound)
		}
		return model.Task{}, fmt.Errorf("task %s: %w", task.ID, ErrConflict)
	}

	task.Revision++
	return task, nil
}

// DeleteTask removes a task document by ID.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanTask scans a task row from a sqlx.Rows result set.
func scanTask(rows *sqlx.Rows) (model.Task, error) {
	task, err := scanTaskFields(rows)
	if err != nil {
		return model.Task{}, fmt.Errorf("scanning task row: %w", err)
	}
	return task, nil
}

// scanTaskRow scans a single task row from a sqlx.Row.
func scanTaskRow(row *sqlx.Row) (model.Task, error) {
	return scanTaskFields(row)
}

// scanTaskFields scans the task columns shared by Row and Rows.
func scanTaskFields(row interface{ Scan(dest ...interface{}) error }) (model.Task, error) {
	var (
		task      model.Task
		checklist string
	)

	err := row.Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.FloorPlanX, &task.FloorPlanY,
		&checklist, &task.Revision,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	task.ChecklistItems = []model.ChecklistItem{}
	if checklist != "" {
		if err := json.Unmarshal([]byte(checklist), &task.ChecklistItems); err != nil {
			return model.Task{}, fmt.Errorf("unmarshaling checklist for task %s: %w", task.ID, err)
		}
	}

	return task, nil
}
