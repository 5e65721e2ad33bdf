package plan

import (
	"math"
	"testing"
)

func TestPointerToPlan_Corners(t *testing.T) {
	natural := Size{Width: 4000, Height: 3000}
	box := Size{Width: 800, Height: 600}
	origin := Point{X: 100, Y: 50}

	tests := []struct {
		name  string
		click Point
		want  Point
	}{
		{"top left", Point{X: 100, Y: 50}, Point{X: 0, Y: 0}},
		{"bottom right", Point{X: 900, Y: 650}, Point{X: 4000, Y: 3000}},
		{"center", Point{X: 500, Y: 350}, Point{X: 2000, Y: 1500}},
		{"outside left is clamped", Point{X: 0, Y: 50}, Point{X: 0, Y: 0}},
		{"outside bottom is clamped", Point{X: 900, Y: 1000}, Point{X: 4000, Y: 3000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PointerToPlan(tt.click, origin, box, natural)
			if err != nil {
				t.Fatalf("PointerToPlan() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("PointerToPlan() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPointerToPlan_DimensionsNotReady(t *testing.T) {
	tests := []struct {
		name    string
		box     Size
		natural Size
	}{
		{"zero box", Size{}, Size{Width: 100, Height: 100}},
		{"zero natural", Size{Width: 100, Height: 100}, Size{}},
		{"negative width", Size{Width: -1, Height: 100}, Size{Width: 100, Height: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PointerToPlan(Point{}, Point{}, tt.box, tt.natural)
			if err != ErrDimensionsNotReady {
				t.Errorf("PointerToPlan() error = %v, want ErrDimensionsNotReady", err)
			}
		})
	}
}

func TestMarkerPosition_CenterOffset(t *testing.T) {
	natural := Size{Width: 2000, Height: 1000}
	display := Size{Width: 1000, Height: 500}
	stored := Point{X: 1000, Y: 500}

	got, err := MarkerPosition(stored, natural, display, 26)
	if err != nil {
		t.Fatalf("MarkerPosition() error = %v", err)
	}

	// Center of the display box minus ceil(26/2).
	want := Point{X: 500 - 13, Y: 250 - 13}
	if got != want {
		t.Errorf("MarkerPosition() = %+v, want %+v", got, want)
	}
}

func TestMarkerPosition_OddSizeUsesCeil(t *testing.T) {
	natural := Size{Width: 100, Height: 100}
	display := Size{Width: 100, Height: 100}

	got, err := MarkerPosition(Point{X: 50, Y: 50}, natural, display, 25)
	if err != nil {
		t.Fatalf("MarkerPosition() error = %v", err)
	}

	want := Point{X: 50 - 13, Y: 50 - 13}
	if got != want {
		t.Errorf("MarkerPosition() = %+v, want %+v", got, want)
	}
}

func TestMarkerPosition_DimensionsNotReady(t *testing.T) {
	_, err := MarkerPosition(Point{}, Size{Width: 10, Height: 10}, Size{}, 26)
	if err != ErrDimensionsNotReady {
		t.Errorf("MarkerPosition() error = %v, want ErrDimensionsNotReady", err)
	}
	_, err = MarkerPosition(Point{}, Size{}, Size{Width: 10, Height: 10}, 26)
	if err != ErrDimensionsNotReady {
		t.Errorf("MarkerPosition() error = %v, want ErrDimensionsNotReady", err)
	}
}

// A click converted to natural space and rendered back at the same display
// size must land the marker center on the click, within float tolerance.
func TestPointerToPlanRoundTrip(t *testing.T) {
	natural := Size{Width: 3543, Height: 2480}
	box := Size{Width: 1280, Height: 896}
	click := Point{X: 412.5, Y: 633.25}

	stored, err := PointerToPlan(click, Point{}, box, natural)
	if err != nil {
		t.Fatalf("PointerToPlan() error = %v", err)
	}

	const markerSize = 26
	pos, err := MarkerPosition(stored, natural, box, markerSize)
	if err != nil {
		t.Fatalf("MarkerPosition() error = %v", err)
	}

	adjust := math.Ceil(markerSize / 2)
	centerX := pos.X + adjust
	centerY := pos.Y + adjust

	if math.Abs(centerX-click.X) > 1e-9 || math.Abs(centerY-click.Y) > 1e-9 {
		t.Errorf("round trip center = (%v, %v), want (%v, %v)", centerX, centerY, click.X, click.Y)
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(Point{X: 500, Y: 250}, Size{Width: 1000, Height: 1000})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.X != 0.5 || got.Y != 0.25 {
		t.Errorf("Normalize() = %+v, want {0.5 0.25}", got)
	}

	if _, err := Normalize(Point{}, Size{}); err != ErrDimensionsNotReady {
		t.Errorf("Normalize() error = %v, want ErrDimensionsNotReady", err)
	}
}

func TestInverseScale(t *testing.T) {
	tests := []struct {
		zoom float64
		want float64
	}{
		{1, 1},
		{2, 0.5},
		{4, 0.25},
		{0.5, 2},
		{0, 1},
		{-3, 1},
	}

	for _, tt := range tests {
		if got := InverseScale(tt.zoom); got != tt.want {
			t.Errorf("InverseScale(%v) = %v, want %v", tt.zoom, got, tt.want)
		}
	}
}
