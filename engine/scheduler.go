package engine

import (
	"container/heap"
	"time"
)

// Task is a scheduled callback, one-shot or periodic
type Task struct {
	due    time.Time
	period time.Duration
	fn     func()
	seq    uint64

	// index in the queue, -1 when not queued
	index     int
	cancelled bool
	scope     *Scope
}

// Cancel removes the task from its scheduler; safe to call repeatedly and from within fn
func (t *Task) Cancel() {
	if t == nil || t.cancelled {
		return
	}
	t.cancelled = true
	if t.scope != nil {
		t.scope.forget(t)
		if t.index >= 0 {
			heap.Remove(&t.scope.sched.queue, t.index)
		}
	}
}

// Active reports whether the task will run again
func (t *Task) Active() bool {
	return t != nil && !t.cancelled && (t.index >= 0 || t.period > 0)
}

// Scheduler is a cooperative virtual-time timer queue
// Tasks run on the goroutine that calls Advance, in due order with FIFO ties
// Not safe for concurrent use; Loop serializes access
type Scheduler struct {
	now   time.Time
	queue taskQueue
	seq   uint64
	root  *Scope
}

// NewScheduler creates a scheduler whose clock starts at start
func NewScheduler(start time.Time) *Scheduler {
	s := &Scheduler{now: start}
	s.root = &Scope{sched: s, tasks: make(map[*Task]struct{})}
	return s
}

// Now returns the scheduler's current virtual time
func (s *Scheduler) Now() time.Time {
	return s.now
}

// Pending returns the number of queued tasks
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// After runs fn once, d after the current time, outside any session scope
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	return s.root.After(d, fn)
}

// Every runs fn each period, outside any session scope
func (s *Scheduler) Every(period time.Duration, fn func()) *Task {
	return s.root.Every(period, fn)
}

// NewScope creates a task group released together
func (s *Scheduler) NewScope() *Scope {
	return &Scope{sched: s, tasks: make(map[*Task]struct{})}
}

// Advance runs every task due at or before now and moves the clock to now
// Periodic tasks catch up one run per elapsed period; returns the number of runs
func (s *Scheduler) Advance(now time.Time) int {
	runs := 0
	for len(s.queue) > 0 {
		t := s.queue[0]
		if t.due.After(now) {
			break
		}
		heap.Pop(&s.queue)
		if t.due.After(s.now) {
			s.now = t.due
		}

		t.fn()
		runs++

		if t.cancelled {
			continue
		}
		if t.period > 0 {
			t.due = t.due.Add(t.period)
			s.push(t)
		} else {
			t.cancelled = true
			t.scope.forget(t)
		}
	}
	if now.After(s.now) {
		s.now = now
	}
	return runs
}

// Step advances the clock by d
func (s *Scheduler) Step(d time.Duration) int {
	return s.Advance(s.now.Add(d))
}

func (s *Scheduler) schedule(sc *Scope, delay, period time.Duration, fn func()) *Task {
	if delay < 0 {
		delay = 0
	}
	t := &Task{
		due:    s.now.Add(delay),
		period: period,
		fn:     fn,
		index:  -1,
		scope:  sc,
	}
	s.push(t)
	return t
}

func (s *Scheduler) push(t *Task) {
	s.seq++
	t.seq = s.seq
	heap.Push(&s.queue, t)
}

// Scope groups session tasks so a transition can cancel all of them at once
type Scope struct {
	sched    *Scheduler
	tasks    map[*Task]struct{}
	released bool
}

// After schedules a one-shot task in the scope; inert once released
func (sc *Scope) After(d time.Duration, fn func()) *Task {
	return sc.add(d, 0, fn)
}

// Every schedules a periodic task in the scope, first run one period from now
func (sc *Scope) Every(period time.Duration, fn func()) *Task {
	if period <= 0 {
		panic("engine: non-positive task period")
	}
	return sc.add(period, period, fn)
}

// Release cancels every task in the scope and rejects new ones
func (sc *Scope) Release() {
	if sc.released {
		return
	}
	sc.released = true
	for t := range sc.tasks {
		t.Cancel()
	}
}

// Released reports whether the scope has been released
func (sc *Scope) Released() bool {
	return sc.released
}

// Len returns the number of live tasks in the scope
func (sc *Scope) Len() int {
	return len(sc.tasks)
}

func (sc *Scope) add(delay, period time.Duration, fn func()) *Task {
	if sc.released {
		return &Task{index: -1, cancelled: true}
	}
	t := sc.sched.schedule(sc, delay, period, fn)
	sc.tasks[t] = struct{}{}
	return t
}

func (sc *Scope) forget(t *Task) {
	if sc != nil {
		delete(sc.tasks, t)
	}
}

// taskQueue is a min-heap on (due, seq)
type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
