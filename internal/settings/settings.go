// Package settings holds the menu options injected into every component of a
// menu instance, along with a synchronous change notification.
package settings

import "time"

// DefaultHoverDelay is the settle delay before a hovered submenu opens.
const DefaultHoverDelay = 200 * time.Millisecond

// Options are the host-supplied flags the menu layer reads but never computes.
type Options struct {
	// OpenAdjacent switches to a hovered sibling label while a menu is open.
	OpenAdjacent bool
	// Mnemonics underlines trigger characters once the bar is attentive.
	Mnemonics bool
	// AutoHide hides the bar whenever no menu is open.
	AutoHide bool
	// AltGivesFocus focuses the first label when the activation key is
	// released without a mnemonic being used.
	AltGivesFocus bool
	// CloseOnBlur destroys context menus when the window loses focus.
	CloseOnBlur  bool
	ControlTheme string
	HoverDelay   time.Duration
}

// Defaults mirrors the stock host configuration.
func Defaults() Options {
	return Options{
		OpenAdjacent: true,
		Mnemonics:    true,
		CloseOnBlur:  true,
		HoverDelay:   DefaultHoverDelay,
	}
}

// Settings owns the Options of one menu instance.
type Settings struct {
	opts Options
	next int
	subs map[int]func(old, new Options)
	keys []int
}

// New wraps opts. A zero HoverDelay falls back to DefaultHoverDelay.
func New(opts Options) *Settings {
	if opts.HoverDelay <= 0 {
		opts.HoverDelay = DefaultHoverDelay
	}
	return &Settings{opts: opts, subs: make(map[int]func(old, new Options))}
}

// Options returns the current values.
func (s *Settings) Options() Options {
	if s == nil {
		return Defaults()
	}
	return s.opts
}

// Subscribe registers fn for change notifications, in registration order. The
// returned function removes the subscription.
func (s *Settings) Subscribe(fn func(old, new Options)) (unsubscribe func()) {
	id := s.next
	s.next++
	s.subs[id] = fn
	s.keys = append(s.keys, id)
	return func() {
		delete(s.subs, id)
		for i, k := range s.keys {
			if k == id {
				s.keys = append(s.keys[:i], s.keys[i+1:]...)
				break
			}
		}
	}
}

// Update replaces the options and notifies subscribers when anything changed.
func (s *Settings) Update(opts Options) {
	if opts.HoverDelay <= 0 {
		opts.HoverDelay = DefaultHoverDelay
	}
	old := s.opts
	if old == opts {
		return
	}
	s.opts = opts
	for _, id := range append([]int(nil), s.keys...) {
		if fn, ok := s.subs[id]; ok {
			fn(old, opts)
		}
	}
}
