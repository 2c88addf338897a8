package core

import "time"

// TaskID identifies a scheduled task.
type TaskID uint64

// Token is handed to every task when it runs. A task must check
// Cancelled before applying side effects: CancelAll invalidates every
// token issued before it, even for a task that is already executing.
type Token struct {
	s   *Scheduler
	gen uint64
}

// Cancelled reports whether the scheduler was reset after the token was issued.
func (t Token) Cancelled() bool {
	return t.s == nil || t.s.gen != t.gen
}

// Task is a delayed action.
type Task func(tok Token)

type scheduled struct {
	id  TaskID
	due time.Duration
	gen uint64
	fn  Task
}

// Scheduler runs delayed actions against a simulation clock advanced by the
// game loop. It replaces wall-clock timers so that ending or restarting a
// match drops every pending action.
type Scheduler struct {
	now    time.Duration
	nextID TaskID
	gen    uint64
	tasks  []scheduled
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulation time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once the clock has advanced by delay.
func (s *Scheduler) After(delay time.Duration, fn Task) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.tasks = append(s.tasks, scheduled{id: s.nextID, due: s.now + delay, gen: s.gen, fn: fn})
	return s.nextID
}

// Cancel removes a pending task. Returns false if it already ran or was never scheduled.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task and invalidates outstanding tokens.
func (s *Scheduler) CancelAll() {
	s.gen++
	s.tasks = s.tasks[:0]
}

// Reset cancels everything and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.CancelAll()
	s.now = 0
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock forward by dt and runs every task that became due,
// ordered by due time then scheduling order. Tasks scheduled while running
// are eligible in the same call if they are already due.
func (s *Scheduler) Advance(dt time.Duration) {
	s.now += dt
	for {
		idx := -1
		for i, t := range s.tasks {
			if t.due > s.now {
				continue
			}
			if idx < 0 || t.due < s.tasks[idx].due || (t.due == s.tasks[idx].due && t.id < s.tasks[idx].id) {
				idx = i
			}
		}
		if idx < 0 {
			return
		}
		t := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		if t.gen != s.gen {
			continue
		}
		t.fn(Token{s: s, gen: t.gen})
	}
}

// TickDuration returns the simulated time covered by one tick.
func TickDuration(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}
