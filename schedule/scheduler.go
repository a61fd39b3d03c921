// Package schedule runs delayed callbacks against a virtual clock that only
// moves when Advance is called. It is not safe for concurrent use; drive it
// from the same goroutine as the simulation tick.
package schedule

import (
	"sort"
	"time"
)

// Token identifies a pending callback. The zero Token is never issued.
type Token uint64

type timer struct {
	token Token
	due   time.Duration
	fn    func()
}

// Scheduler holds pending callbacks ordered by due time.
type Scheduler struct {
	now    time.Duration
	last   Token
	timers []timer // sorted by due, then by token
}

// New returns a scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of callbacks not yet run or cancelled.
func (s *Scheduler) Pending() int { return len(s.timers) }

// After schedules fn to run once d has elapsed. A negative d is treated as
// zero, which runs fn on the next Advance.
func (s *Scheduler) After(d time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}
	s.last++
	t := timer{token: s.last, due: s.now + d, fn: fn}

	i := sort.Search(len(s.timers), func(i int) bool {
		return s.timers[i].due > t.due
	})
	s.timers = append(s.timers, timer{})
	copy(s.timers[i+1:], s.timers[i:])
	s.timers[i] = t
	return t.token
}

// Cancel removes a pending callback. It reports whether one was removed;
// cancelling an unknown, fired or already cancelled token is a no-op.
func (s *Scheduler) Cancel(tok Token) bool {
	if tok == 0 {
		return false
	}
	for i := range s.timers {
		if s.timers[i].token == tok {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d and runs every callback that falls
// due, in due order. While a callback runs, Now reports its due time.
// Callbacks scheduled from inside a callback run in the same Advance if
// they fall due before the end of the window. It returns how many ran.
func (s *Scheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	end := s.now + d
	ran := 0
	for len(s.timers) > 0 && s.timers[0].due <= end {
		t := s.timers[0]
		s.timers = s.timers[1:]
		s.now = t.due
		t.fn()
		ran++
	}
	s.now = end
	return ran
}

// Reset cancels everything and rewinds the clock to zero. Tokens keep
// counting up so a stale token can never match a new timer.
func (s *Scheduler) Reset() {
	s.timers = nil
	s.now = 0
}
