package animator

import (
	"sync"
	"time"
)

// FrameFunc receives the time elapsed since the loop was started
type FrameFunc func(elapsed time.Duration)

// Scheduler runs a FrameFunc once per frame between Start and Stop.
// Implementations guarantee that once Stop returns, the FrameFunc is never called again.
type Scheduler interface {
	Start(fn FrameFunc)
	Stop()
	Running() bool
}

// FrameScheduler is driven by a host frame loop (Ebiten's Update, or a test)
// calling Advance once per frame.
type FrameScheduler struct {
	mu      sync.Mutex
	fn      FrameFunc
	elapsed time.Duration
}

// NewFrameScheduler creates an idle frame scheduler
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Start begins a new loop, replacing any running one
func (s *FrameScheduler) Start(fn FrameFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = fn
	s.elapsed = 0
}

// Stop ends the loop
func (s *FrameScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = nil
}

// Running reports whether a loop is active
func (s *FrameScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn != nil
}

// Advance moves the loop forward by dt and fires the frame callback if running.
// The callback runs with the scheduler locked so that it cannot race a Stop.
func (s *FrameScheduler) Advance(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fn == nil {
		return
	}
	s.elapsed += dt
	s.fn(s.elapsed)
}

// TickerScheduler runs the loop on its own goroutine at a fixed interval
type TickerScheduler struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewTickerScheduler creates a scheduler firing every interval (~60fps when interval is 0)
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &TickerScheduler{interval: interval}
}

// Start launches the loop goroutine. A running loop is stopped first.
func (s *TickerScheduler) Start(fn FrameFunc) {
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				fn(now.Sub(start))
			}
		}
	}()
}

// Stop ends the loop and waits for the goroutine to exit
func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Running reports whether the loop goroutine is active
func (s *TickerScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}
