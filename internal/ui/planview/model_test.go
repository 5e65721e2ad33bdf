package planview_test

import (
	"context"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akern/plantrack/internal/board"
	"github.com/akern/plantrack/internal/keys"
	"github.com/akern/plantrack/internal/model"
	"github.com/akern/plantrack/internal/plan"
	"github.com/akern/plantrack/internal/ui/planview"
	"github.com/akern/plantrack/tests/testutil"
)

func newTestPlanView(t *testing.T) planview.Model {
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

	natural := plan.Size{Width: 1000, Height: 500}
	return planview.New(b, keys.DefaultKeyMap(), natural, 26, 0.5, 30, 80, 24)
}

func keySpace() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
}

func TestPlacePinSetsTempPin(t *testing.T) {
	m := newTestPlanView(t)

	if m.TempPin() != nil {
		t.Fatal("fresh view must have no pending pin")
	}

	m, _ = m.Update(keySpace())
	pin := m.TempPin()
	if pin == nil {
		t.Fatal("expected a pending pin after placing one")
	}

	// 80x24 cells at 8x16 virtual px fit the 2:1 image into a 640x320
	// display box. The cursor starts at cell (0,0), whose center is
	// (4, 8), which is (6.25, 12.5) in natural space.
	if math.Abs(pin.X-6.25) > 1e-9 || math.Abs(pin.Y-12.5) > 1e-9 {
		t.Errorf("pin = (%v, %v), want (6.25, 12.5)", pin.X, pin.Y)
	}
}

func TestCancelPinClearsTempPin(t *testing.T) {
	m := newTestPlanView(t)

	m, _ = m.Update(keySpace())
	if m.TempPin() == nil {
		t.Fatal("expected a pending pin")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.TempPin() != nil {
		t.Error("esc must discard the pending pin")
	}
}

func TestPlacePinInvalidDimensions(t *testing.T) {
	s := testutil.NewTestStore(t)
	b := board.New(s)

	m := planview.New(b, keys.DefaultKeyMap(), plan.Size{}, 26, 0.5, 30, 80, 24)
	m, _ = m.Update(keySpace())
	if m.TempPin() != nil {
		t.Error("placing a pin without image dimensions must be ignored")
	}
}
