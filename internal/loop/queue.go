package loop

import (
	"context"
	"sync/atomic"
	"time"
)

// Task is a due callback waiting to be run on the UI goroutine.
type Task struct {
	fn        func()
	cancelled atomic.Bool
	timer     *time.Timer
}

// Run executes the callback unless it was cancelled after it became due.
func (t *Task) Run() {
	if t == nil || t.cancelled.Load() {
		return
	}
	t.fn()
}

// Cancel stops the timer and marks the task so a late delivery is ignored.
func (t *Task) Cancel() {
	t.cancelled.Store(true)
	if t.timer != nil {
		t.timer.Stop()
	}
}

// Queue is the production Scheduler. Timers fire on runtime goroutines and
// only enqueue; the UI loop receives tasks from Tasks and calls Run.
type Queue struct {
	ctx    context.Context
	cancel context.CancelFunc
	tasks  chan *Task
}

// NewQueue creates a queue with the given channel buffer.
func NewQueue(buffer int) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{ctx: ctx, cancel: cancel, tasks: make(chan *Task, buffer)}
}

// AfterFunc schedules fn to be delivered after d.
func (q *Queue) AfterFunc(d time.Duration, fn func()) Handle {
	t := &Task{fn: fn}
	t.timer = time.AfterFunc(d, func() { q.deliver(t) })
	return t
}

// Post delivers fn on the next loop turn.
func (q *Queue) Post(fn func()) Handle {
	t := &Task{fn: fn}
	go q.deliver(t)
	return t
}

func (q *Queue) deliver(t *Task) {
	if t.cancelled.Load() {
		return
	}
	select {
	case <-q.ctx.Done():
	case q.tasks <- t:
	}
}

// Now returns the wall clock.
func (q *Queue) Now() time.Time { return time.Now() }

// Tasks returns the channel of due tasks.
func (q *Queue) Tasks() <-chan *Task { return q.tasks }

// Done is closed once the queue is stopped.
func (q *Queue) Done() <-chan struct{} { return q.ctx.Done() }

// Stop abandons pending deliveries. The tasks channel is left open so a
// blocked reader can select on Done instead.
func (q *Queue) Stop() { q.cancel() }
