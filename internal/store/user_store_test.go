package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/store"
	"github.com/akern/plantrack/tests/testutil"
)

func TestCreateUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, model.User{Name: "alice"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}

	got, err := s.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.Name != "alice" {
		t.Errorf("Name = %q, want %q", got.Name, "alice")
	}
}

func TestCreateUser_TrimsName(t *testing.T) {
	s := testutil.NewTestStore(t)

	user, err := s.CreateUser(context.Background(), model.User{Name: "  bob  "})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if user.Name != "bob" {
		t.Errorf("Name = %q, want %q", user.Name, "bob")
	}
}

func TestCreateUser_NameLengthLimit(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	// Exactly at the cap is fine.
	atLimit := strings.Repeat("a", store.MaxFieldLength)
	if _, err := s.CreateUser(ctx, model.User{Name: atLimit}); err != nil {
		t.Fatalf("CreateUser(50 chars) error = %v", err)
	}

	over := strings.Repeat("b", store.MaxFieldLength+10)
	if _, err := s.CreateUser(ctx, model.User{Name: over}); !errors.Is(err, store.ErrNameTooLong) {
		t.Errorf("CreateUser(60 chars) error = %v, want ErrNameTooLong", err)
	}
}

func TestCreateUser_IDLengthLimit(t *testing.T) {
	s := testutil.NewTestStore(t)

	longID := strings.Repeat("x", store.MaxFieldLength+1)
	_, err := s.CreateUser(context.Background(), model.User{ID: longID, Name: "alice"})
	if !errors.Is(err, store.ErrIDTooLong) {
		t.Errorf("CreateUser(51-char id) error = %v, want ErrIDTooLong", err)
	}
}

func TestCreateUser_EmptyName(t *testing.T) {
	s := testutil.NewTestStore(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := s.CreateUser(context.Background(), model.User{Name: name}); !errors.Is(err, store.ErrEmptyName) {
			t.Errorf("CreateUser(%q) error = %v, want ErrEmptyName", name, err)
		}
	}
}

func TestGetUserByName(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, model.User{Name: "carol"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	got, err := s.GetUserByName(ctx, "carol")
	if err != nil {
		t.Fatalf("GetUserByName() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}

	// Lookup is exact, not case-folded.
	if _, err := s.GetUserByName(ctx, "Carol"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetUserByName(Carol) error = %v, want ErrNotFound", err)
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	if _, err := s.GetUserByID(context.Background(), "no-such-id"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetUserByID() error = %v, want ErrNotFound", err)
	}
}
