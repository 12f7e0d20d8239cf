package animator

import (
	"math"
	"testing"
	"time"

	"stockmap/pkg/engine/geom"
	"stockmap/pkg/warehouse/marker"
)

func TestTick(t *testing.T) {
	p := Params{Amplitude: 0.25, Period: 100 * time.Millisecond, BaseOpacity: 0.6}

	rest := Tick(0, p)
	if rest.Scale != 1 || math.Abs(rest.Opacity-0.6) > 1e-12 {
		t.Errorf("Tick(0) = %+v, want {1 0.6}", rest)
	}

	// t/period = pi/2 → sin = 1
	peak := Tick(time.Duration(math.Pi/2*float64(100*time.Millisecond)), p)
	if math.Abs(peak.Scale-1.25) > 1e-6 || math.Abs(peak.Opacity-0.35) > 1e-6 {
		t.Errorf("Tick(peak) = %+v, want {1.25 0.35}", peak)
	}

	for ms := 0; ms < 5000; ms += 7 {
		got := Tick(time.Duration(ms)*time.Millisecond, p)
		if got.Scale < 0.75-1e-9 || got.Scale > 1.25+1e-9 {
			t.Fatalf("Tick(%dms).Scale = %v, out of [0.75, 1.25]", ms, got.Scale)
		}
		if got.Opacity < 0 || got.Opacity > 1 {
			t.Fatalf("Tick(%dms).Opacity = %v, out of [0, 1]", ms, got.Opacity)
		}
	}
}

func TestTick_ZeroPeriodRests(t *testing.T) {
	p := Params{Amplitude: 0.5, BaseOpacity: 0.5}
	if got := Tick(time.Second, p); got != p.Rest() {
		t.Errorf("Tick with zero period = %+v, want rest %+v", got, p.Rest())
	}
}

func TestAnimator_LifecycleFollowsMarker(t *testing.T) {
	sched := NewFrameScheduler()
	a := New(sched, DefaultParams)
	frame := 16 * time.Millisecond

	sched.Advance(frame)
	if a.Frames() != 0 {
		t.Fatalf("frames before any marker = %d, want 0", a.Frames())
	}

	m := marker.New(geom.Pt(1, 1), "m")
	a.Bind(m)
	a.Bind(m) // same marker again must not start a second loop
	if !a.Running() || a.Loops() != 1 {
		t.Fatalf("after Bind: running=%v loops=%d, want true 1", a.Running(), a.Loops())
	}

	for i := 0; i < 10; i++ {
		sched.Advance(frame)
	}
	if a.Frames() != 10 {
		t.Fatalf("frames after 10 ticks = %d, want 10", a.Frames())
	}
	if a.Pulse() == DefaultParams.Rest() {
		t.Error("Pulse() still at rest after 10 frames")
	}

	a.Bind(nil)
	stoppedAt := a.Frames()
	for i := 0; i < 10; i++ {
		sched.Advance(frame)
	}
	if a.Running() {
		t.Error("Running() = true after marker cleared")
	}
	if a.Frames() != stoppedAt {
		t.Errorf("frames after clear = %d, want %d (no residual callbacks)", a.Frames(), stoppedAt)
	}
}

func TestAnimator_ReplacementRestartsSingleLoop(t *testing.T) {
	sched := NewFrameScheduler()
	a := New(sched, DefaultParams)

	a.Bind(marker.New(geom.Pt(0, 0), "first"))
	sched.Advance(time.Second)
	a.Bind(marker.New(geom.Pt(5, 5), "second"))
	if a.Loops() != 2 {
		t.Errorf("Loops() = %d, want 2", a.Loops())
	}
	if a.Pulse() != DefaultParams.Rest() {
		t.Errorf("Pulse() after replacement = %+v, want rest", a.Pulse())
	}
	sched.Advance(10 * time.Millisecond)
	if a.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2 (one per Advance)", a.Frames())
	}

	a.Close()
	if a.Running() {
		t.Error("Running() = true after Close")
	}
}

func TestTickerScheduler_NoCallbacksAfterStop(t *testing.T) {
	sched := NewTickerScheduler(time.Millisecond)
	a := New(sched, DefaultParams)
	a.Bind(marker.New(geom.Pt(0, 0), "m"))

	deadline := time.Now().Add(2 * time.Second)
	for a.Frames() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("ticker scheduler produced no frames")
		}
		time.Sleep(time.Millisecond)
	}

	a.Bind(nil)
	stoppedAt := a.Frames()
	time.Sleep(20 * time.Millisecond)
	if got := a.Frames(); got != stoppedAt {
		t.Errorf("frames after Stop = %d, want %d", got, stoppedAt)
	}
	if sched.Running() {
		t.Error("Running() = true after Stop")
	}
}
