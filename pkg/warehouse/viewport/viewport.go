// Package viewport maps between world coordinates (the fixed layout space) and
// screen coordinates (the visible canvas): screen = world*scale + offset.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"stockmap/pkg/engine/geom"
)

// Zoom constraints
const (
	MinScale = 0.2
	MaxScale = 8.0

	// ZoomStep is the factor applied by one zoom-in step (its reciprocal zooms out)
	ZoomStep = 1.1

	// LocateZoomLevel is the scale used when the camera jumps to a located item
	LocateZoomLevel = 2.5
)

// ErrInvalidDimensions is returned when a canvas or layout size is not positive
var ErrInvalidDimensions = errors.New("viewport: dimensions must be positive")

// Direction selects zoom in or zoom out
type Direction int

const (
	ZoomOut Direction = -1
	ZoomIn  Direction = 1
)

// State is the affine world→screen mapping
type State struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// Offset returns the translation part of the mapping
func (s State) Offset() geom.Point {
	return geom.Point{X: s.OffsetX, Y: s.OffsetY}
}

// WithOffset returns a copy of s translated to o
func (s State) WithOffset(o geom.Point) State {
	s.OffsetX, s.OffsetY = o.X, o.Y
	return s
}

// ClampScale bounds a scale to [MinScale, MaxScale]
func ClampScale(scale float64) float64 {
	if math.IsNaN(scale) {
		return MinScale
	}
	return math.Max(MinScale, math.Min(MaxScale, scale))
}

// FitToWidth computes a uniform, width-driven scale and centers the layout
// vertically when it is shorter than the canvas.
func FitToWidth(canvasWidth, canvasHeight, layoutWidth, layoutHeight float64) (State, error) {
	if canvasWidth <= 0 || canvasHeight <= 0 || layoutWidth <= 0 || layoutHeight <= 0 {
		return State{}, fmt.Errorf("%w: canvas %gx%g, layout %gx%g",
			ErrInvalidDimensions, canvasWidth, canvasHeight, layoutWidth, layoutHeight)
	}

	scale := ClampScale(canvasWidth / layoutWidth)
	s := State{Scale: scale}

	if scaledH := layoutHeight * scale; scaledH < canvasHeight {
		s.OffsetY = (canvasHeight - scaledH) / 2
	}
	if scaledW := layoutWidth * scale; scaledW < canvasWidth {
		// Only reachable when the fit scale was clamped down to MaxScale
		s.OffsetX = (canvasWidth - scaledW) / 2
	}
	return s, nil
}

// WorldToScreen maps a world point to canvas pixels
func WorldToScreen(p geom.Point, s State) geom.Point {
	return geom.Point{
		X: p.X*s.Scale + s.OffsetX,
		Y: p.Y*s.Scale + s.OffsetY,
	}
}

// ScreenToWorld maps canvas pixels back to a world point
func ScreenToWorld(p geom.Point, s State) geom.Point {
	return geom.Point{
		X: (p.X - s.OffsetX) / s.Scale,
		Y: (p.Y - s.OffsetY) / s.Scale,
	}
}

// WorldRectToScreen maps a world rectangle to canvas pixels
func WorldRectToScreen(r geom.Rect, s State) geom.Rect {
	tl := WorldToScreen(r.Min(), s)
	return geom.Rect{X: tl.X, Y: tl.Y, Width: r.Width * s.Scale, Height: r.Height * s.Scale}
}

// ZoomAt applies one zoom step around the pointer, keeping the world point under
// the pointer fixed on screen.
func ZoomAt(pointer geom.Point, dir Direction, s State) State {
	factor := ZoomStep
	if dir < 0 {
		factor = 1 / ZoomStep
	}
	return zoomTo(pointer, ClampScale(s.Scale*factor), s)
}

// zoomTo rescales to newScale and recomputes the offset so that the world point
// under pointer stays under pointer.
func zoomTo(pointer geom.Point, newScale float64, s State) State {
	world := ScreenToWorld(pointer, s)
	return State{
		Scale:   newScale,
		OffsetX: pointer.X - world.X*newScale,
		OffsetY: pointer.Y - world.Y*newScale,
	}
}

// CenterOn places a world point at the exact center of the viewport at the given zoom
func CenterOn(world geom.Point, zoom float64, viewportSize geom.Size, s State) State {
	s.Scale = ClampScale(zoom)
	s.OffsetX = viewportSize.W/2 - world.X*s.Scale
	s.OffsetY = viewportSize.H/2 - world.Y*s.Scale
	return s
}

// ClampPan bounds a proposed offset so the scaled layout cannot be dragged out of view.
// On an axis where the scaled layout is larger than the viewport the offset stays in
// [viewport - layout*scale, 0]. Where it is smaller the offset stays in
// [0, viewport - layout*scale], so no space ever opens up left of or above the origin.
func ClampPan(proposed geom.Point, s State, layoutSize, viewportSize geom.Size) geom.Point {
	return geom.Point{
		X: clampAxis(proposed.X, viewportSize.W-layoutSize.W*s.Scale),
		Y: clampAxis(proposed.Y, viewportSize.H-layoutSize.H*s.Scale),
	}
}

// clampAxis clamps v to the interval between 0 and slack, whichever order they come in
func clampAxis(v, slack float64) float64 {
	lo, hi := slack, 0.0
	if slack > 0 {
		lo, hi = 0, slack
	}
	return math.Max(lo, math.Min(hi, v))
}
