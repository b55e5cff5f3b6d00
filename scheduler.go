package scratch

import (
	"slices"
	"sync"
	"time"
)

// Timer is a pending scheduled action.
type Timer interface {
	// Stop prevents the action from running. It reports whether the call
	// stopped the action, false if it already ran or was stopped.
	Stop() bool
}

// Scheduler runs actions after a delay. Cards use it for the reward
// repaint after Set and for the fade before a clear.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler returns a Scheduler backed by time.AfterFunc.
func SystemScheduler() Scheduler {
	return systemScheduler{}
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a Scheduler driven by an explicit virtual clock.
// Actions run only from Advance, on the caller's goroutine, in deadline
// order. It is meant for tests and for replaying recorded sessions.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	s   *ManualScheduler
	at  time.Duration
	seq uint64
	fn  func()
}

// NewManualScheduler returns a ManualScheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc schedules f to run once the clock has advanced by d.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTimer{s: s, at: s.now + max(d, 0), seq: s.seq, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of scheduled actions that have not run.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Advance moves the clock forward by d, running every action that falls
// due. Actions scheduled by a running action are honored if they fall due
// within the same advance.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	end := s.now + max(d, 0)
	s.mu.Unlock()

	for {
		s.mu.Lock()
		t := s.nextDue(end)
		if t == nil {
			s.now = end
			s.mu.Unlock()
			return
		}
		s.now = t.at
		s.remove(t)
		s.mu.Unlock()

		t.fn()
	}
}

// nextDue returns the earliest timer due by end. s.mu must be held.
func (s *ManualScheduler) nextDue(end time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range s.timers {
		if t.at > end {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

// remove drops t from the pending list. s.mu must be held.
func (s *ManualScheduler) remove(t *manualTimer) bool {
	i := slices.Index(s.timers, t)
	if i < 0 {
		return false
	}
	s.timers = slices.Delete(s.timers, i, i+1)
	return true
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.s.remove(t)
}
