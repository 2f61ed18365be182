package loop

import (
	"sort"
	"time"
)

// Manual is a virtual-clock Scheduler for deterministic tests. Callbacks run
// inline from Advance, in due order; ties run in scheduling order.
type Manual struct {
	now     time.Time
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	due       time.Time
	seq       int
	fn        func()
	cancelled bool
}

func (t *manualTimer) Cancel() { t.cancelled = true }

// NewManual returns a clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// AfterFunc schedules fn to run once the clock passes now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	m.seq++
	t := &manualTimer{due: m.now.Add(d), seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time { return m.now }

// Advance moves the clock forward by d, running every callback that falls due
// on the way, including ones scheduled by earlier callbacks.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		if t.due.After(m.now) {
			m.now = t.due
		}
		t.fn()
	}
	m.now = target
}

// Pending counts callbacks that are scheduled and not cancelled.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}

func (m *Manual) next(target time.Time) *manualTimer {
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.pending = live
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due.Equal(m.pending[j].due) {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].due.Before(m.pending[j].due)
	})
	t := m.pending[0]
	if t.due.After(target) {
		return nil
	}
	m.pending = m.pending[1:]
	return t
}
