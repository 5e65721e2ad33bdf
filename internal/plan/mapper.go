// Package plan converts between the floor-plan image's coordinate spaces:
// natural space (the image's intrinsic pixels), display space (the pixels
// the image currently occupies on screen), and pointer positions relative
// to the viewport. Every function is pure; callers own all geometry state.
package plan

import (
	"errors"
	"math"
)

// ErrDimensionsNotReady is returned when a conversion needs an image
// dimension that is zero or negative, typically because the plan image
// has not finished loading. Callers should suppress marker rendering
// until dimensions are known rather than treat this as fatal.
var ErrDimensionsNotReady = errors.New("plan: image dimensions not ready")

// Point is a position in any of the plan coordinate spaces.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are strictly positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// PointerToPlan converts a pointer click at click (viewport coordinates)
// into absolute natural-space coordinates on the plan image. boxOrigin and
// boxSize describe the image's rendered box in the same viewport space.
//
// The fractional position inside the box is clamped to [0,1], so a click
// at the box's top-left corner maps to (0,0) and one at the bottom-right
// maps to (natural.Width, natural.Height) exactly.
func PointerToPlan(click, boxOrigin Point, boxSize, natural Size) (Point, error) {
	if !boxSize.Valid() || !natural.Valid() {
		return Point{}, ErrDimensionsNotReady
	}

	xFrac := clamp01((click.X - boxOrigin.X) / boxSize.Width)
	yFrac := clamp01((click.Y - boxOrigin.Y) / boxSize.Height)

	return Point{
		X: xFrac * natural.Width,
		Y: yFrac * natural.Height,
	}, nil
}

// Normalize converts an absolute natural-space position into a fractional
// position in [0,1] on each axis.
func Normalize(stored Point, natural Size) (Point, error) {
	if !natural.Valid() {
		return Point{}, ErrDimensionsNotReady
	}
	return Point{
		X: stored.X / natural.Width,
		Y: stored.Y / natural.Height,
	}, nil
}

// MarkerPosition computes the top-left rendering position for a marker of
// markerSize pixels whose visual center must sit on stored (a natural-space
// position), given the image's current display size. The half-footprint
// offset uses ceil so odd marker sizes stay visually centered.
func MarkerPosition(stored Point, natural, display Size, markerSize float64) (Point, error) {
	if !display.Valid() {
		return Point{}, ErrDimensionsNotReady
	}

	norm, err := Normalize(stored, natural)
	if err != nil {
		return Point{}, err
	}

	adjust := math.Ceil(markerSize / 2)
	return Point{
		X: display.Width*norm.X - adjust,
		Y: display.Height*norm.Y - adjust,
	}, nil
}

// InverseScale returns the counter-scale factor that keeps a marker at
// constant on-screen size under magnification: 1/zoom. A non-positive
// zoom level yields 1 (no counter-scaling).
func InverseScale(zoom float64) float64 {
	if zoom <= 0 {
		return 1
	}
	return 1 / zoom
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
