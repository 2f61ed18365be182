// Package hover defers submenu opening until the pointer settles on an entry.
package hover

import (
	"time"

	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/loop"
)

// Child is the capability an entry needs to take part in hover intent.
type Child interface {
	comparable
	SetSelected(bool)
	SetOpen(bool)
	HasSubmenu() bool
	IsOpen() bool
	IsSelected() bool
	IsEnabled() bool
	Alive() bool
}

// Parent owns the children an Intent arbitrates between.
type Parent[C Child] interface {
	Children() []C
	OnDestroy(func())
	Alive() bool
}

// Intent tracks at most one pending open per owner.
type Intent[C Child] struct {
	owner   Parent[C]
	sched   loop.Scheduler
	delay   time.Duration
	pending C
	handle  loop.Handle
	armed   bool
}

// New creates the intent for owner. Destroying the owner cancels any pending
// open.
func New[C Child](owner Parent[C], sched loop.Scheduler, delay time.Duration) *Intent[C] {
	in := &Intent[C]{owner: owner, sched: sched, delay: delay}
	owner.OnDestroy(in.Cancel)
	return in
}

// SetDelay changes the settle delay for future schedules.
func (in *Intent[C]) SetDelay(d time.Duration) {
	in.delay = d
}

// Enter highlights c right away and schedules the open/close side effect.
// A different pending entry is cancelled first. Siblings lose their highlight
// even when c itself cannot take it.
func (in *Intent[C]) Enter(c C) {
	in.Cancel()
	for _, sib := range in.owner.Children() {
		if sib != c && sib.IsSelected() {
			sib.SetSelected(false)
		}
	}
	if !c.Alive() || !c.IsEnabled() {
		return
	}
	c.SetSelected(true)
	in.schedule(c)
}

// Move reschedules the pending open when the pointer keeps moving inside the
// same entry. Movement over an entry that is not yet highlighted behaves like
// Enter.
func (in *Intent[C]) Move(c C) {
	if in.armed && in.pending == c {
		in.handle.Cancel()
		in.schedule(c)
		return
	}
	if !c.IsSelected() {
		in.Enter(c)
	}
}

// Cancel drops the pending open, if any.
func (in *Intent[C]) Cancel() {
	if !in.armed {
		return
	}
	in.handle.Cancel()
	events.Hover.Cancel(label(in.pending))
	in.disarm()
}

// ClearFocus cancels the pending open and removes the highlight from every
// child whose submenu is not open.
func (in *Intent[C]) ClearFocus() {
	in.Cancel()
	for _, c := range in.owner.Children() {
		if !c.IsOpen() && c.IsSelected() {
			c.SetSelected(false)
		}
	}
}

// Pending returns the entry waiting to open.
func (in *Intent[C]) Pending() (C, bool) {
	return in.pending, in.armed
}

func (in *Intent[C]) schedule(c C) {
	in.pending = c
	in.armed = true
	events.Hover.Schedule(label(c), in.delay.Milliseconds())
	in.handle = in.sched.AfterFunc(in.delay, func() { in.fire(c) })
}

func (in *Intent[C]) fire(c C) {
	if !in.armed || in.pending != c {
		return
	}
	in.disarm()
	if !c.Alive() || !in.owner.Alive() || !c.IsSelected() {
		return
	}
	for _, sib := range in.owner.Children() {
		if sib != c && sib.IsOpen() {
			sib.SetOpen(false)
		}
	}
	if c.HasSubmenu() && !c.IsOpen() {
		c.SetOpen(true)
	}
	events.Hover.Fire(label(c))
}

func (in *Intent[C]) disarm() {
	var zero C
	in.pending = zero
	in.handle = nil
	in.armed = false
}

func label(c any) string {
	if n, ok := c.(interface{ Name() string }); ok {
		return n.Name()
	}
	return ""
}
