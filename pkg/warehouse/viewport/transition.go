package viewport

import (
	"math"
	"time"
)

// DefaultTransitionDuration is how long a smooth camera move takes
const DefaultTransitionDuration = 350 * time.Millisecond

// Transition interpolates the camera between two states, easing out so that the
// move starts fast and settles onto the target.
type Transition struct {
	From     State
	To       State
	Duration time.Duration
	elapsed  time.Duration
}

// NewTransition creates a transition from one state to another
func NewTransition(from, to State, d time.Duration) *Transition {
	if d <= 0 {
		d = DefaultTransitionDuration
	}
	return &Transition{From: from, To: to, Duration: d}
}

// Advance moves the transition forward by dt and returns the interpolated state
func (t *Transition) Advance(dt time.Duration) State {
	t.elapsed += dt
	return t.At(t.elapsed)
}

// Done reports whether the transition has reached its target
func (t *Transition) Done() bool {
	return t.elapsed >= t.Duration
}

// At returns the interpolated state at a given elapsed time
func (t *Transition) At(elapsed time.Duration) State {
	if elapsed >= t.Duration {
		return t.To
	}
	if elapsed <= 0 {
		return t.From
	}
	p := easeOutCubic(float64(elapsed) / float64(t.Duration))

	// Interpolate scale geometrically so zoom speed feels uniform
	scale := t.From.Scale * math.Pow(t.To.Scale/t.From.Scale, p)
	return State{
		Scale:   scale,
		OffsetX: lerp(t.From.OffsetX, t.To.OffsetX, p),
		OffsetY: lerp(t.From.OffsetY, t.To.OffsetY, p),
	}
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}
