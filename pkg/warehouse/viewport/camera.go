package viewport

import (
	"fmt"

	"stockmap/pkg/engine/geom"
)

// Camera owns the ViewportState of one map view together with the two sizes the
// transform depends on: the visible canvas and the world layout.
type Camera struct {
	state    State
	viewport geom.Size
	layout   geom.Size
}

// NewCamera creates a camera for a layout of the given world size.
// The camera is unusable until Fit has been called with the canvas size.
func NewCamera(layoutSize geom.Size) *Camera {
	return &Camera{
		layout: layoutSize,
		state:  State{Scale: 1},
	}
}

// Fit recomputes the fit-to-width state for a (new) canvas size.
// Called on mount and on every resize.
func (c *Camera) Fit(canvas geom.Size) error {
	s, err := FitToWidth(canvas.W, canvas.H, c.layout.W, c.layout.H)
	if err != nil {
		return fmt.Errorf("fit camera: %w", err)
	}
	c.viewport = canvas
	c.state = s
	return nil
}

// Reset returns to the fit-to-width state for the current canvas
func (c *Camera) Reset() error {
	return c.Fit(c.viewport)
}

// State returns the current mapping
func (c *Camera) State() State {
	return c.state
}

// Set replaces the current mapping. Scale is clamped; offsets are taken as-is.
func (c *Camera) Set(s State) {
	s.Scale = ClampScale(s.Scale)
	c.state = s
}

// Viewport returns the canvas size the camera was last fitted to
func (c *Camera) Viewport() geom.Size {
	return c.viewport
}

// LayoutSize returns the world size of the layout
func (c *Camera) LayoutSize() geom.Size {
	return c.layout
}

// ZoomAt applies one pointer-centered zoom step. Over the layout the world point
// under the pointer stays put; off the layout, or when the step would push the
// layout out of the canvas, the offset is pulled back into the pan bounds.
func (c *Camera) ZoomAt(pointer geom.Point, dir Direction) State {
	world := ScreenToWorld(pointer, c.state)
	next := ZoomAt(pointer, dir, c.state)
	if !c.layoutWorld().Contains(world) || !c.showsLayout(next) {
		next = next.WithOffset(ClampPan(next.Offset(), next, c.layout, c.viewport))
	}
	c.state = next
	return c.state
}

func (c *Camera) showsLayout(s State) bool {
	onScreen := WorldRectToScreen(c.layoutWorld(), s)
	_, ok := onScreen.Intersect(geom.Rect{Width: c.viewport.W, Height: c.viewport.H})
	return ok
}

func (c *Camera) layoutWorld() geom.Rect {
	return geom.Rect{Width: c.layout.W, Height: c.layout.H}
}

// PanBy moves the view by a screen-space delta; the result is always clamped
func (c *Camera) PanBy(delta geom.Point) State {
	proposed := c.state.Offset().Add(delta)
	c.state = c.state.WithOffset(ClampPan(proposed, c.state, c.layout, c.viewport))
	return c.state
}

// CenterOn places a world point at the viewport center at the given zoom
func (c *Camera) CenterOn(world geom.Point, zoom float64) State {
	c.state = CenterOn(world, zoom, c.viewport, c.state)
	return c.state
}

// Target computes the state CenterOn would produce without applying it
func (c *Camera) Target(world geom.Point, zoom float64) State {
	return CenterOn(world, zoom, c.viewport, c.state)
}

// VisibleWorld returns the world rectangle currently shown on the canvas
func (c *Camera) VisibleWorld() geom.Rect {
	tl := ScreenToWorld(geom.Point{}, c.state)
	return geom.Rect{X: tl.X, Y: tl.Y, Width: c.viewport.W / c.state.Scale, Height: c.viewport.H / c.state.Scale}
}
