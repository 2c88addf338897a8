package core

import (
	"testing"
	"time"
)

func TestSchedulerRunsInOrder(t *testing.T) {
	s := NewScheduler()
	var order []int

	s.After(200*time.Millisecond, func(Token) { order = append(order, 2) })
	s.After(100*time.Millisecond, func(Token) { order = append(order, 1) })
	s.After(200*time.Millisecond, func(Token) { order = append(order, 3) })

	s.Advance(50 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("no task should be due yet, ran %v", order)
	}

	s.Advance(200 * time.Millisecond)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("tasks ran as %v, expected [1 2 3]", order)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	id := s.After(10*time.Millisecond, func(Token) { ran = true })

	if !s.Cancel(id) {
		t.Fatal("Cancel() should report a pending task")
	}
	if s.Cancel(id) {
		t.Error("second Cancel() should report nothing to cancel")
	}
	s.Advance(time.Second)
	if ran {
		t.Error("cancelled task ran")
	}
}

func TestSchedulerCancelAllInvalidatesTokens(t *testing.T) {
	s := NewScheduler()
	var stale Token
	sideEffects := 0

	s.After(10*time.Millisecond, func(tok Token) {
		stale = tok
		// Cancelling from inside a task invalidates the running task's token.
		s.CancelAll()
		if tok.Cancelled() {
			return
		}
		sideEffects++
	})
	s.After(10*time.Millisecond, func(Token) { sideEffects++ })

	s.Advance(20 * time.Millisecond)
	if sideEffects != 0 {
		t.Errorf("side effects after CancelAll = %d, expected 0", sideEffects)
	}
	if !stale.Cancelled() {
		t.Error("token issued before CancelAll should be cancelled")
	}
}

func TestSchedulerChainedTasks(t *testing.T) {
	s := NewScheduler()
	var times []time.Duration

	s.After(100*time.Millisecond, func(Token) {
		times = append(times, s.Now())
		s.After(0, func(Token) { times = append(times, s.Now()) })
	})

	s.Advance(100 * time.Millisecond)
	if len(times) != 2 {
		t.Fatalf("expected chained zero-delay task to run in the same Advance, got %v", times)
	}

	s.Reset()
	if s.Now() != 0 || s.Pending() != 0 {
		t.Errorf("Reset() should rewind the clock, got now=%v pending=%d", s.Now(), s.Pending())
	}
}

func TestTickDuration(t *testing.T) {
	if got := TickDuration(60); got != time.Second/60 {
		t.Errorf("TickDuration(60) = %v", got)
	}
	if got := TickDuration(0); got != time.Second/60 {
		t.Errorf("TickDuration(0) should default to 60 FPS, got %v", got)
	}
}
