package availability

import (
	"sync"
	"time"
)

// DefaultDebounce coalesces rapid successive date edits into one recompute.
const DefaultDebounce = 100 * time.Millisecond

// Scheduler debounces availability recomputation. At most one recomputation
// is pending at a time; scheduling again supersedes the earlier one, so the
// last scheduled computation always wins.
type Scheduler struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewScheduler(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Scheduler{delay: delay}
}

// Schedule arranges for fn to run after the debounce window, cancelling any
// recomputation scheduled earlier.
func (s *Scheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
}

// Stop cancels the pending recomputation, if any.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a recomputation is scheduled but not yet run.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}
