package schedule

import (
	"testing"
	"time"
)

func TestAdvanceRunsInDueOrder(t *testing.T) {
	s := New()
	var order []string
	s.After(30*time.Millisecond, func() { order = append(order, "c") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(20*time.Millisecond, func() { order = append(order, "b") })
	s.After(20*time.Millisecond, func() { order = append(order, "b2") })

	if n := s.Advance(25 * time.Millisecond); n != 3 {
		t.Fatalf("ran %d callbacks, want 3", n)
	}
	want := []string{"a", "b", "b2"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want prefix %v", order, want)
		}
	}
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want 1", s.Pending())
	}
	s.Advance(5 * time.Millisecond)
	if len(order) != 4 || order[3] != "c" {
		t.Errorf("order = %v, want c last", order)
	}
}

func TestNowDuringCallback(t *testing.T) {
	s := New()
	var at time.Duration
	s.After(40*time.Millisecond, func() { at = s.Now() })
	s.Advance(100 * time.Millisecond)

	if at != 40*time.Millisecond {
		t.Errorf("Now in callback = %v, want 40ms", at)
	}
	if s.Now() != 100*time.Millisecond {
		t.Errorf("Now after advance = %v, want 100ms", s.Now())
	}
}

func TestChainedCallbacksWithinWindow(t *testing.T) {
	s := New()
	count := 0
	var step func()
	step = func() {
		count++
		if count < 5 {
			s.After(10*time.Millisecond, step)
		}
	}
	s.After(10*time.Millisecond, step)

	s.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Errorf("count after 35ms = %d, want 3", count)
	}
	s.Advance(time.Second)
	if count != 5 {
		t.Errorf("count after 1s = %d, want 5", count)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestCancel(t *testing.T) {
	s := New()
	fired := false
	tok := s.After(10*time.Millisecond, func() { fired = true })

	if !s.Cancel(tok) {
		t.Fatal("Cancel of pending token returned false")
	}
	if s.Cancel(tok) {
		t.Error("second Cancel should be a no-op")
	}
	if s.Cancel(0) {
		t.Error("zero token should never cancel anything")
	}
	s.Advance(time.Second)
	if fired {
		t.Error("cancelled callback ran")
	}
}

func TestCancelFromInsideCallback(t *testing.T) {
	s := New()
	fired := false
	var later Token
	s.After(10*time.Millisecond, func() { s.Cancel(later) })
	later = s.After(20*time.Millisecond, func() { fired = true })

	s.Advance(time.Second)
	if fired {
		t.Error("callback cancelled by an earlier callback still ran")
	}
}

func TestResetKeepsTokensUnique(t *testing.T) {
	s := New()
	old := s.After(time.Second, func() {})
	s.Reset()
	if s.Pending() != 0 || s.Now() != 0 {
		t.Fatalf("reset left pending=%d now=%v", s.Pending(), s.Now())
	}
	fresh := s.After(time.Second, func() {})
	if fresh == old {
		t.Error("token reused after Reset")
	}
	if s.Cancel(old) {
		t.Error("stale token cancelled a new timer")
	}
}
