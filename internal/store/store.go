package store

import (
	"context"
	"errors"

	"github.com/akern/plantrack/internal/model"
)

// Sentinel errors returned by Store implementations. Callers test for
// them with errors.Is; implementations wrap them with identifying detail.
var (
	// ErrNotFound means the referenced user or task does not exist
	// in persistence.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a task write lost a revision race: the document
	// changed between the caller's read and its write.
	ErrConflict = errors.New("revision conflict")

	// ErrEmptyTitle rejects a task with a blank title before any write
	// is attempted.
	ErrEmptyTitle = errors.New("task title must not be empty")

	// ErrEmptyName rejects a user with a blank name.
	ErrEmptyName = errors.New("user name must not be empty")

	// ErrPartialPlacement rejects a task with only one of the two floor
	// plan coordinates set. A task is unplaced or fully placed.
	ErrPartialPlacement = errors.New("floor plan coordinates must be set together")

	// ErrNameTooLong rejects a user name over MaxFieldLength characters.
	ErrNameTooLong = errors.New("user name exceeds the 50 character limit")

	// ErrIDTooLong rejects a caller-supplied id over MaxFieldLength
	// characters.
	ErrIDTooLong = errors.New("id exceeds the 50 character limit")
)

// MaxFieldLength caps user names and record ids, matching the schema's
// CHECK constraints.
const MaxFieldLength = 50

// Store defines the persistence interface for users and task documents.
//
// Tasks are stored as whole documents: the checklist travels inside the
// task record and every write replaces the full document. ReplaceTask is
// guarded by the document's revision so concurrent read-modify-write
// cycles fail with ErrConflict instead of silently losing an update.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByName(ctx context.Context, name string) (*model.User, error)

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasksByUser(ctx context.Context, userID string) ([]model.Task, error)
	ReplaceTask(ctx context.Context, task model.Task) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
