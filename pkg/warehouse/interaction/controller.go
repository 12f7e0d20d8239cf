// Package interaction turns normalized pointer events and hit-test results into
// hover, selection and drag-to-pan state transitions.
package interaction

import (
	"stockmap/pkg/engine/geom"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/viewport"
)

// State is the transient interaction state of one map view
type State struct {
	HoveredShelfID string        `json:"hoveredShelfId,omitempty"`
	SelectedShelf  *layout.Shelf `json:"-"`
	Dragging       bool          `json:"dragging"`
}

// SelectedShelfID returns the id of the selected shelf, or "" when none is selected
func (s State) SelectedShelfID() string {
	if s.SelectedShelf == nil {
		return ""
	}
	return s.SelectedShelf.ID
}

// SelectFunc receives the full shelf record when a shelf is clicked
type SelectFunc func(shelf layout.Shelf)

// Controller is the only writer of State. It is created per mounted view and is
// inert after Destroy.
type Controller struct {
	layout    *layout.Layout
	camera    *viewport.Camera
	state     State
	listeners []SelectFunc
	destroyed bool
}

// New creates a controller for a layout whose view is owned by camera
func New(l *layout.Layout, camera *viewport.Camera) *Controller {
	return &Controller{layout: l, camera: camera}
}

// State returns a copy of the current state
func (c *Controller) State() State {
	s := c.state
	if s.SelectedShelf != nil {
		shelf := *s.SelectedShelf
		s.SelectedShelf = &shelf
	}
	return s
}

// OnShelfSelected registers a listener for shelf-selected events
func (c *Controller) OnShelfSelected(fn SelectFunc) {
	c.listeners = append(c.listeners, fn)
}

// PointerEnter marks a shelf as hovered
func (c *Controller) PointerEnter(shelfID string) {
	if c.destroyed {
		return
	}
	c.state.HoveredShelfID = shelfID
}

// PointerLeave clears the hover, but only if it still belongs to shelfID.
// A late leave for a shelf that is no longer hovered is ignored.
func (c *Controller) PointerLeave(shelfID string) {
	if c.destroyed {
		return
	}
	if c.state.HoveredShelfID == shelfID {
		c.state.HoveredShelfID = ""
	}
}

// Hover feeds a hit-test result ("" for empty space) and emits the matching
// leave/enter pair when the hovered shelf changes.
func (c *Controller) Hover(shelfID string) {
	prev := c.state.HoveredShelfID
	if prev == shelfID {
		return
	}
	if prev != "" {
		c.PointerLeave(prev)
	}
	if shelfID != "" {
		c.PointerEnter(shelfID)
	}
}

// Click selects a shelf and notifies listeners. An id missing from the layout
// clears the selection and notifies nobody.
func (c *Controller) Click(shelfID string) (layout.Shelf, bool) {
	if c.destroyed {
		return layout.Shelf{}, false
	}
	shelf, ok := c.layout.GetShelf(shelfID)
	if !ok {
		c.state.SelectedShelf = nil
		return layout.Shelf{}, false
	}
	c.state.SelectedShelf = &shelf
	for _, fn := range c.listeners {
		fn(shelf)
	}
	return shelf, true
}

// DismissSelection closes the shelf detail
func (c *Controller) DismissSelection() {
	if c.destroyed {
		return
	}
	c.state.SelectedShelf = nil
}

// DragStart enters the dragging state
func (c *Controller) DragStart() {
	if c.destroyed {
		return
	}
	c.state.Dragging = true
}

// DragMove pans the view by a pointer delta. The offset is clamped on every move,
// so the view never overshoots its bounds mid-drag.
func (c *Controller) DragMove(delta geom.Point) viewport.State {
	if c.destroyed || !c.state.Dragging {
		return c.camera.State()
	}
	return c.camera.PanBy(delta)
}

// DragEnd leaves the dragging state; the offset is already committed
func (c *Controller) DragEnd() {
	if c.destroyed {
		return
	}
	c.state.Dragging = false
}

// Destroy resets the state on unmount and disables every further transition
func (c *Controller) Destroy() {
	c.state = State{}
	c.listeners = nil
	c.destroyed = true
}
