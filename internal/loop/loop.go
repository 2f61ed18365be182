// Package loop provides the deferred-callback primitives used by the menu
// layer. All callbacks run on a single goroutine: the real Queue hands due
// tasks to the UI loop over a channel, and Manual runs them inline when the
// virtual clock is advanced.
package loop

import "time"

// Handle cancels a scheduled callback. Cancel is idempotent and safe to call
// after the callback has run.
type Handle interface {
	Cancel()
}

// Scheduler defers callbacks onto the single-threaded event queue.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Handle
	Now() time.Time
}

// FrameInterval approximates one display frame; AfterPaint waits two of them.
const FrameInterval = 16 * time.Millisecond

// AfterPaint runs fn after two consecutive frame intervals, giving the closing
// paint of a menu time to land before a possibly slow command runs. Cancelling
// the returned handle stops whichever step is pending.
func AfterPaint(s Scheduler, fn func()) Handle {
	p := &paint{}
	p.step = s.AfterFunc(FrameInterval, func() {
		if p.cancelled {
			return
		}
		p.step = s.AfterFunc(FrameInterval, func() {
			if !p.cancelled {
				fn()
			}
		})
	})
	return p
}

type paint struct {
	step      Handle
	cancelled bool
}

func (p *paint) Cancel() {
	p.cancelled = true
	if p.step != nil {
		p.step.Cancel()
	}
}

// Stop cancels h when it is non-nil.
func Stop(h Handle) {
	if h != nil {
		h.Cancel()
	}
}
