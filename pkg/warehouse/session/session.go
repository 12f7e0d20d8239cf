// Package session is one mounted map view: it owns the camera, the interaction
// controller, the active marker and its animator, and routes front-end events
// and locate requests to them. Every front end (window, terminal, REST) drives
// the map through a Session.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/inventory"
	"stockmap/pkg/warehouse/animator"
	"stockmap/pkg/warehouse/interaction"
	"stockmap/pkg/warehouse/layout"
	"stockmap/pkg/warehouse/locator"
	"stockmap/pkg/warehouse/marker"
	"stockmap/pkg/warehouse/scene"
	"stockmap/pkg/warehouse/viewport"
)

// DragDeadZone is how far (in screen pixels) the pointer must travel while
// pressed before a press becomes a drag instead of a click
const DragDeadZone = 4.0

// Options configures a Session
type Options struct {
	// Scheduler runs the marker pulse. Defaults to a TickerScheduler.
	Scheduler animator.Scheduler
	Pulse     animator.Params

	// SmoothCamera animates locate moves; the host must call Advance every frame
	SmoothCamera       bool
	TransitionDuration time.Duration
}

// Session serializes every mutation of one map view behind a single mutex.
// Inventory lookups run outside the lock, so the view stays interactive while a
// locate is pending and the last locate to resolve wins.
type Session struct {
	mu sync.Mutex

	layout  *layout.Layout
	camera  *viewport.Camera
	ctrl    *interaction.Controller
	locator *locator.Locator
	anim    *animator.Animator
	marker  *marker.Marker

	smooth     bool
	transDur   time.Duration
	transition *viewport.Transition

	pressed   bool
	dragging  bool
	pressAt   geom.Point
	lastPoint geom.Point

	// shelf-selected events raised under the lock, delivered after unlock
	pending   []layout.Shelf
	listeners []interaction.SelectFunc

	closed bool
}

// New creates a session over a layout and an inventory lookup
func New(l *layout.Layout, lookup inventory.Lookup, opts Options) *Session {
	sched := opts.Scheduler
	if sched == nil {
		sched = animator.NewTickerScheduler(0)
	}
	params := opts.Pulse
	if params == (animator.Params{}) {
		params = animator.DefaultParams
	}

	cam := viewport.NewCamera(l.Size())
	s := &Session{
		layout:   l,
		camera:   cam,
		ctrl:     interaction.New(l, cam),
		locator:  locator.New(l, lookup),
		anim:     animator.New(sched, params),
		smooth:   opts.SmoothCamera,
		transDur: opts.TransitionDuration,
	}
	s.ctrl.OnShelfSelected(func(shelf layout.Shelf) {
		s.pending = append(s.pending, shelf)
	})
	return s
}

// Layout returns the layout this session shows
func (s *Session) Layout() *layout.Layout {
	return s.layout
}

// OnShelfSelected registers a listener for shelf clicks. Listeners run after the
// session lock is released and may call back into the session.
func (s *Session) OnShelfSelected(fn interaction.SelectFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// unlock releases the lock and delivers queued shelf-selected events
func (s *Session) unlock() {
	events := s.pending
	s.pending = nil
	listeners := append([]interaction.SelectFunc(nil), s.listeners...)
	s.mu.Unlock()

	for _, shelf := range events {
		for _, fn := range listeners {
			fn(shelf)
		}
	}
}

// Resize refits the view to a new canvas size
func (s *Session) Resize(canvas geom.Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	return s.camera.Fit(canvas)
}

// ResetView returns to the fit-to-width view
func (s *Session) ResetView() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	return s.camera.Reset()
}

// View returns the current viewport state
func (s *Session) View() viewport.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera.State()
}

// Viewport returns the canvas size the view is fitted to
func (s *Session) Viewport() geom.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera.Viewport()
}

// Locate resolves an item code and, on success, moves the camera to it and
// places the marker there. Expected failures clear the marker and return a
// *locator.Error; an empty code returns locator.ErrInvalidInput and changes nothing.
func (s *Session) Locate(ctx context.Context, code string) (locator.Result, error) {
	res, err := s.locator.Resolve(ctx, code)

	s.mu.Lock()
	defer s.unlock()
	if s.closed {
		return res, err
	}
	locator.Apply(lockedTarget{s}, res, err)
	if err == nil {
		log.Printf("[LOCATE] %s -> %s at (%.1f, %.1f)", res.Code, res.Shelf.ID, res.World.X, res.World.Y)
	}
	return res, err
}

// lockedTarget applies locate side effects while the session lock is held
type lockedTarget struct {
	s *Session
}

func (t lockedTarget) CenterOn(world geom.Point, zoom float64) { t.s.centerOnLocked(world, zoom) }
func (t lockedTarget) SetMarker(m *marker.Marker)              { t.s.setMarkerLocked(m) }
func (t lockedTarget) ClearMarker()                            { t.s.setMarkerLocked(nil) }

// CenterOn moves the camera so that a world point sits at the viewport center
func (s *Session) CenterOn(world geom.Point, zoom float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centerOnLocked(world, zoom)
}

func (s *Session) centerOnLocked(world geom.Point, zoom float64) {
	if !s.smooth {
		s.transition = nil
		s.camera.CenterOn(world, zoom)
		return
	}
	// A running move is retargeted from wherever Advance has got to
	s.transition = viewport.NewTransition(s.camera.State(), s.camera.Target(world, zoom), s.transDur)
}

// SetMarker replaces the active marker; nil clears it
func (s *Session) SetMarker(m *marker.Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setMarkerLocked(m)
}

// ClearMarker removes the active marker
func (s *Session) ClearMarker() {
	s.SetMarker(nil)
}

// DismissMarker is ClearMarker under the name front ends use
func (s *Session) DismissMarker() {
	s.ClearMarker()
}

func (s *Session) setMarkerLocked(m *marker.Marker) {
	if s.closed {
		return
	}
	s.marker = m
	s.anim.Bind(m)
}

// Marker returns a copy of the active marker, or nil
func (s *Session) Marker() *marker.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.marker == nil {
		return nil
	}
	m := *s.marker
	return &m
}

// Advance moves a smooth camera transition forward; hosts with a frame loop
// call it once per frame
func (s *Session) Advance(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transition == nil {
		return
	}
	s.camera.Set(s.transition.Advance(dt))
	if s.transition.Done() {
		s.transition = nil
	}
}

// Animating reports whether a camera transition is in progress
func (s *Session) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transition != nil
}

// PointerMove handles pointer motion: hover when released, drag-to-pan once a
// press has moved past the dead zone
func (s *Session) PointerMove(pt geom.Point) {
	s.mu.Lock()
	defer s.unlock()

	if !s.pressed {
		id, _ := scene.HitTest(s.layout, s.camera.State(), pt)
		s.ctrl.Hover(id)
		return
	}
	if !s.dragging {
		if pt.Dist(s.pressAt) < DragDeadZone {
			return
		}
		s.dragging = true
		s.transition = nil
		s.ctrl.DragStart()
	}
	s.ctrl.DragMove(pt.Sub(s.lastPoint))
	s.lastPoint = pt
}

// PointerDown starts a press
func (s *Session) PointerDown(pt geom.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed = true
	s.dragging = false
	s.pressAt = pt
	s.lastPoint = pt
}

// PointerUp ends a press. A press that never left the dead zone is a click: on a
// shelf it selects the shelf and marks its center, on empty space it dismisses
// the selection.
func (s *Session) PointerUp(pt geom.Point) {
	s.mu.Lock()
	defer s.unlock()

	if !s.pressed {
		return
	}
	wasDragging := s.dragging
	s.pressed, s.dragging = false, false
	if wasDragging {
		s.ctrl.DragEnd()
		return
	}
	s.clickLocked(pt)
}

// PointerCancel ends a press without a click, for releases outside the map.
// A drag in progress keeps the offset it has reached.
func (s *Session) PointerCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dragging {
		s.ctrl.DragEnd()
	}
	s.pressed, s.dragging = false, false
}

func (s *Session) clickLocked(pt geom.Point) {
	id, ok := scene.HitTest(s.layout, s.camera.State(), pt)
	if !ok {
		s.ctrl.DismissSelection()
		return
	}
	s.selectLocked(id)
}

func (s *Session) selectLocked(id string) (layout.Shelf, bool) {
	shelf, ok := s.ctrl.Click(id)
	if ok {
		s.setMarkerLocked(marker.New(shelf.Center(), shelf.ID))
	}
	return shelf, ok
}

// PointerLeave clears hover when the pointer leaves the canvas
func (s *Session) PointerLeave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Hover("")
}

// Wheel zooms one step around the pointer
func (s *Session) Wheel(pt geom.Point, dir viewport.Direction) viewport.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	return s.camera.ZoomAt(pt, dir)
}

// ZoomCenter zooms one step around the viewport center
func (s *Session) ZoomCenter(dir viewport.Direction) viewport.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	return s.camera.ZoomAt(s.camera.Viewport().Half(), dir)
}

// PanBy moves the view by a screen-space delta, clamped to the pan bounds
func (s *Session) PanBy(delta geom.Point) viewport.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	return s.camera.PanBy(delta)
}

// SelectShelf selects a shelf by id as if it had been clicked
func (s *Session) SelectShelf(id string) (layout.Shelf, bool) {
	s.mu.Lock()
	defer s.unlock()
	return s.selectLocked(id)
}

// SectorAt returns the sector under a screen point
func (s *Session) SectorAt(pt geom.Point) (layout.Sector, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return scene.SectorAt(s.layout, s.camera.State(), pt)
}

// VisibleWorld returns the world rectangle currently on the canvas
func (s *Session) VisibleWorld() geom.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera.VisibleWorld()
}

// Hover marks a shelf as hovered by id; "" clears hover
func (s *Session) Hover(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Hover(id)
}

// DismissSelection closes the shelf detail
func (s *Session) DismissSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.DismissSelection()
}

// Interaction returns the current hover/selection/drag state
func (s *Session) Interaction() interaction.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.State()
}

// Frame snapshots everything a renderer needs for one frame
func (s *Session) Frame() scene.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := scene.Frame{
		Layout:      s.layout,
		View:        s.camera.State(),
		Interaction: s.ctrl.State(),
		Pulse:       s.anim.Pulse(),
	}
	if s.marker != nil {
		m := *s.marker
		f.Marker = &m
	}
	return f
}

// AnimatorRunning reports whether the marker pulse loop is active
func (s *Session) AnimatorRunning() bool {
	return s.anim.Running()
}

// Close stops the marker animation and disables the controller
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.marker = nil
	s.transition = nil
	s.anim.Close()
	s.ctrl.Destroy()
}
