// Package interaction drives keyboard and pointer navigation of a menu bar and
// of context menus. Both state machines run on the single UI goroutine; every
// deferred step goes through a loop.Scheduler.
package interaction

import (
	"context"
	"unicode"
)

// Key is the renderer-independent name of a key the menus react to.
type Key int

const (
	KeyNone Key = iota
	// KeyAlt is the primary activation key.
	KeyAlt
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
	// KeyRune carries a printable character in KeyEvent.Rune.
	KeyRune
)

func (k Key) String() string {
	switch k {
	case KeyAlt:
		return "alt"
	case KeyEscape:
		return "escape"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	case KeyRune:
		return "rune"
	default:
		return "none"
	}
}

// KeyEvent is one key press or release.
type KeyEvent struct {
	Key    Key
	Rune   rune
	Repeat bool
}

// Trigger returns the lower-cased character used for mnemonic matching.
func (e KeyEvent) Trigger() rune {
	switch e.Key {
	case KeyRune:
		return unicode.ToLower(e.Rune)
	case KeySpace:
		return ' '
	}
	return 0
}

// Activator delivers executed commands to the host. host.Router satisfies it.
type Activator interface {
	Activate(ctx context.Context, target, command string, detail any) error
}

// Option tunes a Controller or ContextMenu.
type Option func(*common)

// WithTarget names the context every activation is dispatched against.
func WithTarget(target string) Option {
	return func(c *common) { c.target = target }
}

// WithContext sets the context handed to the Activator.
func WithContext(ctx context.Context) Option {
	return func(c *common) { c.ctx = ctx }
}

// WithActivated is called on the UI goroutine after every activation, with
// the error returned by the Activator.
func WithActivated(fn func(command string, err error)) Option {
	return func(c *common) { c.activated = fn }
}
