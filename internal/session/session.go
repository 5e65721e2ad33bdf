// Package session tracks who is logged in. Identity is name-based: an
// existing name resumes that user's record, a new name creates one. The
// last successful username is remembered across runs for auto-login.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/store"
)

// ErrEmptyName rejects a login attempt with a blank name before the
// store is consulted.
var ErrEmptyName = errors.New("name cannot be empty")

// rememberStore abstracts the remembered-username backend so tests can
// swap the system keyring for an in-memory value.
type rememberStore interface {
	Get() (string, error)
	Set(name string) error
	Clear() error
}

// keyringRemember is the production rememberStore.
type keyringRemember struct{}

func (keyringRemember) Get() (string, error) { return rememberedName() }
func (keyringRemember) Set(name string) error {
	return rememberName(name)
}
func (keyringRemember) Clear() error { return forgetName() }

// Session is the authentication state for one run of the application.
type Session struct {
	store    store.Store
	remember rememberStore

	user *model.User
}

// New creates a logged-out session backed by s and the system keyring.
func New(s store.Store) *Session {
	return &Session{store: s, remember: keyringRemember{}}
}

// LoggedIn reports whether a user is active.
func (s *Session) LoggedIn() bool {
	return s.user != nil
}

// User returns the active user, or nil when logged out.
func (s *Session) User() *model.User {
	return s.user
}

// Login resolves name to a user record, creating one when no user with
// that exact name exists, and remembers the name for the next startup.
func (s *Session) Login(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	user, err := s.store.GetUserByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		created, createErr := s.store.CreateUser(ctx, model.User{Name: name})
		if createErr != nil {
			return nil, fmt.Errorf("logging in as %q: %w", name, createErr)
		}
		user = &created
	} else if err != nil {
		return nil, fmt.Errorf("logging in as %q: %w", name, err)
	}

	// A broken keyring should not block login; the next run just
	// starts logged out.
	_ = s.remember.Set(user.Name)

	s.user = user
	return user, nil
}

// Resume attempts auto-login from the remembered username. It returns
// (nil, nil) when nothing is remembered; a failed attempt clears the
// remembered name so the next startup goes straight to the login screen.
func (s *Session) Resume(ctx context.Context) (*model.User, error) {
	name, err := s.remember.Get()
	if err != nil || name == "" {
		return nil, nil
	}

	user, err := s.Login(ctx, name)
	if err != nil {
		_ = s.remember.Clear()
		return nil, fmt.Errorf("resuming session for %q: %w", name, err)
	}
	return user, nil
}

// Logout clears the active user and the remembered username.
func (s *Session) Logout() {
	_ = s.remember.Clear()
	s.user = nil
}
