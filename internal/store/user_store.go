package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/akern/plantrack/internal/model"
)

// CreateUser inserts a new user. Generates a UUID if ID is empty and
// stamps CreatedAt. Returns the stored record.
func (s *SQLiteStore) CreateUser(
	ctx context.Context,
	user model.User,
) (model.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" {
		return model.User{}, ErrEmptyName
	}
	if utf8.RuneCountInString(user.Name) > MaxFieldLength {
		return model.User{}, ErrNameTooLong
	}
	if utf8.RuneCountInString(user.ID) > MaxFieldLength {
		return model.User{}, ErrIDTooLong
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)",
		user.ID, user.Name, user.CreatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("creating user %q: %w", user.Name, err)
	}
	return user, nil
}

// GetUserByID retrieves a single user by ID.
func (s *SQLiteStore) GetUserByID(
	ctx context.Context,
	id string,
) (*model.User, error) {
	var user model.User
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, name, created_at FROM users WHERE id = ?", id,
	).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return &user, nil
}

// GetUserByName retrieves a user by exact name match. When several users
// share a name (no uniqueness is enforced) the earliest created wins.
func (s *SQLiteStore) GetUserByName(
	ctx context.Context,
	name string,
) (*model.User, error) {
	var user model.User
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, name, created_at FROM users WHERE name = ? ORDER BY created_at LIMIT 1",
		name,
	).Scan(&user.ID, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user named %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user named %q: %w", name, err)
	}
	return &user, nil
}
