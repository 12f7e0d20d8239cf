package animator

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"stockmap/pkg/warehouse/marker"
)

// Animator binds one pulse loop to the lifetime of the active marker: the loop
// starts when a marker appears and is stopped when it is cleared or replaced.
type Animator struct {
	mu     sync.Mutex
	sched  Scheduler
	params Params
	active uuid.UUID
	loops  int

	// Written from the scheduler's frame callback, read by renderers
	pulse  atomic.Pointer[Pulse]
	frames atomic.Int64
}

// New creates an animator running its loop on the given scheduler
func New(sched Scheduler, params Params) *Animator {
	a := &Animator{sched: sched, params: params}
	rest := params.Rest()
	a.pulse.Store(&rest)
	return a
}

// Bind attaches the animator to the current marker. A nil marker stops the loop;
// binding the marker that is already animating is a no-op.
func (a *Animator) Bind(m *marker.Marker) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if m == nil {
		a.stopLocked()
		return
	}
	if a.active == m.ID && a.sched.Running() {
		return
	}

	a.stopLocked()
	a.active = m.ID
	rest := a.params.Rest()
	a.pulse.Store(&rest)
	a.loops++
	a.sched.Start(a.frame)
}

// Close stops the loop; call on teardown
func (a *Animator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Animator) stopLocked() {
	a.sched.Stop()
	a.active = uuid.Nil
}

// frame is the per-frame callback. It only touches atomics so that schedulers may
// call it while holding their own locks.
func (a *Animator) frame(elapsed time.Duration) {
	p := Tick(elapsed, a.params)
	a.pulse.Store(&p)
	a.frames.Add(1)
}

// Pulse returns the most recent pulse
func (a *Animator) Pulse() Pulse {
	return *a.pulse.Load()
}

// Running reports whether a loop is active
func (a *Animator) Running() bool {
	return a.sched.Running()
}

// Frames returns the number of frame callbacks fired since creation
func (a *Animator) Frames() int64 {
	return a.frames.Load()
}

// Loops returns how many loops have been started since creation
func (a *Animator) Loops() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loops
}
