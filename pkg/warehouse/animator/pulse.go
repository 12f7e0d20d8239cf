// Package animator drives the continuous pulse of the active map marker.
//
// The animation math is the pure Tick function; the frame loop that calls it is a
// Scheduler so the same Animator runs under Ebiten's frame loop, under a ticker
// goroutine (terminal and REST front ends) or under a test clock.
package animator

import (
	"math"
	"time"
)

// Params shapes the pulse. Period is the time constant of the sine: the phase is
// elapsed/Period radians.
type Params struct {
	Amplitude   float64
	Period      time.Duration
	BaseOpacity float64
}

// DefaultParams gives a ring that breathes about once a second
var DefaultParams = Params{
	Amplitude:   0.3,
	Period:      160 * time.Millisecond,
	BaseOpacity: 0.65,
}

// Pulse is the per-frame transform applied to the marker's pulse ring only;
// the solid center dot never changes.
type Pulse struct {
	Scale   float64 `json:"scale"`
	Opacity float64 `json:"opacity"`
}

// Rest returns the pulse at elapsed time zero
func (p Params) Rest() Pulse {
	return Pulse{Scale: 1, Opacity: clamp01(p.BaseOpacity)}
}

// Tick computes the pulse for a given elapsed time:
// scale = 1 + A*sin(t/period), opacity = base - A*sin(t/period)
func Tick(elapsed time.Duration, p Params) Pulse {
	if p.Period <= 0 {
		return p.Rest()
	}
	s := math.Sin(float64(elapsed) / float64(p.Period))
	return Pulse{
		Scale:   1 + p.Amplitude*s,
		Opacity: clamp01(p.BaseOpacity - p.Amplitude*s),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
