package engine

import (
	"sync"
	"time"
)

// Task is a pending delayed callback
type Task interface {
	// Cancel prevents the callback from running, returns false if it already ran or was cancelled
	Cancel() bool
}

// Scheduler runs callbacks after a delay, independent of the frame loop
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// TimerScheduler schedules on runtime timers, callbacks run on their own goroutine
type TimerScheduler struct{}

// NewTimerScheduler creates a runtime timer scheduler
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) Task {
	return timerTask{t: time.AfterFunc(d, fn)}
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}

// ManualScheduler runs callbacks only when Advance moves its virtual time past their deadline
// Callbacks run synchronously on the goroutine calling Advance
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	s    *ManualScheduler
	due  time.Duration
	seq  uint64
	fn   func()
	done bool
}

// NewManualScheduler creates a scheduler at virtual time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.seq++
	task := &manualTask{s: s, due: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

func (t *manualTask) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}

// remove drops t from the pending list, caller holds mu
func (s *ManualScheduler) remove(t *manualTask) {
	for i, task := range s.tasks {
		if task == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// Advance moves virtual time forward by d, running due callbacks in deadline order
// Returns the number of callbacks run
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	ran := 0
	for {
		s.mu.Lock()
		var next *manualTask
		for _, task := range s.tasks {
			if task.due > target {
				continue
			}
			if next == nil || task.due < next.due || (task.due == next.due && task.seq < next.seq) {
				next = task
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return ran
		}
		next.done = true
		s.remove(next)
		s.now = next.due
		s.mu.Unlock()

		next.fn()
		ran++
	}
}

// Pending returns the number of scheduled callbacks not yet run or cancelled
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Now returns the scheduler's virtual time
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}
