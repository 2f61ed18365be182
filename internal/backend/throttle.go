package backend

import (
	"sync"
	"time"

	"github.com/atomicstack/menubar/internal/loop"
)

// Throttle runs at most one request per interval on a loop.Scheduler. A
// request arriving while the window is closed runs right away; later ones
// are coalesced into a single trailing run of the most recent request.
type Throttle struct {
	sched    loop.Scheduler
	interval time.Duration

	last    time.Time
	ran     bool
	pending func()
	handle  loop.Handle
}

// NewThrottle builds a throttle over s.
func NewThrottle(s loop.Scheduler, interval time.Duration) *Throttle {
	return &Throttle{sched: s, interval: interval}
}

// Do requests fn. It replaces any request still waiting for the window.
func (t *Throttle) Do(fn func()) {
	t.pending = fn
	if t.handle != nil {
		return
	}
	wait := time.Duration(0)
	if t.ran {
		wait = t.interval - t.sched.Now().Sub(t.last)
	}
	if wait <= 0 {
		t.run()
		return
	}
	t.handle = t.sched.AfterFunc(wait, t.run)
}

// Pending reports whether a trailing run is scheduled.
func (t *Throttle) Pending() bool { return t.handle != nil }

// Stop drops the waiting request.
func (t *Throttle) Stop() {
	loop.Stop(t.handle)
	t.handle = nil
	t.pending = nil
}

func (t *Throttle) run() {
	fn := t.pending
	t.pending = nil
	t.handle = nil
	t.last = t.sched.Now()
	t.ran = true
	if fn != nil {
		fn()
	}
}

// pace spaces out blocking operations on a goroutine by a minimum interval.
type pace struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newPace(interval time.Duration) *pace {
	if interval <= 0 {
		return &pace{}
	}
	return &pace{interval: interval}
}

func (p *pace) wait() {
	if p == nil || p.interval <= 0 {
		return
	}
	for {
		p.mu.Lock()
		wait := time.Until(p.next)
		if wait <= 0 {
			p.next = time.Now().Add(p.interval)
			p.mu.Unlock()
			return
		}
		p.mu.Unlock()
		if wait > p.interval {
			wait = p.interval
		}
		time.Sleep(wait)
	}
}
