package interaction

import (
	"time"

	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/loop"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/settings"
)

// State is the coarse mode of a menu bar.
type State string

const (
	StateIdle      State = "idle"
	StateAttentive State = "attentive"
	StateOpen      State = "open"
)

// BounceDuration is how long an entry executed with Space stays flashed.
const BounceDuration = 120 * time.Millisecond

// Controller is the interaction state machine of one menu bar.
type Controller struct {
	common
	bar *menu.Node

	attentive bool
	mnemonics bool
	visible   bool

	bounced *menu.Node
	bounce  loop.Handle
}

// New builds the controller for bar. Activations go to act after the closing
// paint; settings changes are picked up through a subscription released by
// Teardown.
func New(bar *menu.Node, s *settings.Settings, sched loop.Scheduler, act Activator, opts ...Option) *Controller {
	c := &Controller{common: newCommon(s, sched, act, opts), bar: bar}
	c.visible = !c.options().AutoHide
	if s != nil {
		c.unsub = s.Subscribe(c.settingsChanged)
	}
	return c
}

func (c *Controller) settingsChanged(old, new settings.Options) {
	c.setHoverDelay(old, new)
	if old.AutoHide != new.AutoHide && !c.isOpen() {
		c.visible = !new.AutoHide
	}
	if !new.Mnemonics {
		c.showMnemonics(false)
	}
}

// Bar returns the root the controller drives.
func (c *Controller) Bar() *menu.Node { return c.bar }

// State reports the coarse mode.
func (c *Controller) State() State {
	switch {
	case c.isOpen():
		return StateOpen
	case c.attentive:
		return StateAttentive
	}
	return StateIdle
}

// Attentive reports whether mnemonic mode is armed.
func (c *Controller) Attentive() bool { return c.attentive }

// BarVisible reports whether the bar chrome should be drawn.
func (c *Controller) BarVisible() bool { return c.visible || c.isOpen() }

// ShowingMnemonics reports whether trigger characters are underlined.
func (c *Controller) ShowingMnemonics() bool { return c.mnemonics }

// Bounced returns the entry currently flashed by a Space activation.
func (c *Controller) Bounced() *menu.Node { return c.bounced }

func (c *Controller) isOpen() bool { return c.bar.OpenChild() != nil }

// KeyDown handles a key press and reports whether the menu consumed it.
func (c *Controller) KeyDown(e KeyEvent) bool {
	if !e.Repeat && (e.Key == KeyAlt || e.Key == KeyEscape) &&
		(c.mnemonics || c.isOpen() || c.bar.FocusedChild() != nil) {
		c.dismiss(events.CloseEscape)
		return true
	}

	if e.Key == KeyAlt {
		if e.Repeat {
			return true
		}
		c.setAttentive(!c.attentive)
		if c.options().Mnemonics {
			c.showMnemonics(!c.mnemonics)
		}
		return true
	}

	if open := c.bar.OpenChild(); open != nil {
		if c.keyOpen(open, e) {
			return true
		}
	} else if c.keyClosed(e) {
		return true
	}

	c.setAttentive(false)
	c.showMnemonics(false)
	return false
}

func (c *Controller) keyOpen(open *menu.Node, e KeyEvent) bool {
	selected := menu.SelectedLeaf(c.bar)
	switch e.Key {
	case KeyUp, KeyDown:
		forward := e.Key == KeyDown
		switch {
		case selected == nil && forward:
			open.SelectFirst()
		case selected == nil:
			open.SelectLast()
		default:
			moveSelection(selected.Parent(), forward)
		}
		return true

	case KeyLeft:
		if selected == nil || selected.Parent().Kind() == menu.KindLabel {
			c.openAdjacent(-1)
		} else {
			selected.Parent().SetOpen(false)
		}
		return true

	case KeyRight:
		if selected == nil || !selected.HasSubmenu() {
			c.openAdjacent(1)
		} else {
			openAndSelectFirst(selected)
		}
		return true

	case KeyEnter:
		if selected == nil {
			break
		}
		if selected.HasSubmenu() {
			openAndSelectFirst(selected)
			return true
		}
		c.execute(selected)
		c.finish(events.CloseExecute)
		return true

	case KeySpace:
		if selected != nil && !selected.HasSubmenu() {
			c.flash(selected)
			c.execute(selected)
			return true
		}
	}

	if c.mnemonics && !e.Repeat {
		leaf := menu.OpenLeaf(c.bar)
		if match := leaf.MatchMnemonic(e.Trigger()); match != nil {
			if match.HasSubmenu() {
				openAndSelectFirst(match)
				return true
			}
			c.execute(match)
			c.finish(events.CloseExecute)
			return true
		}
	}
	return false
}

func (c *Controller) keyClosed(e KeyEvent) bool {
	focused := c.bar.FocusedChild()
	if focused != nil {
		switch e.Key {
		case KeyEnter, KeyDown:
			c.openLabel(focused)
			return true
		case KeyLeft:
			c.focusAdjacent(focused, -1)
			return true
		case KeyRight:
			c.focusAdjacent(focused, 1)
			return true
		}
	}

	if e.Repeat || !(c.mnemonics || c.attentive) {
		return false
	}
	label := c.bar.MatchMnemonic(e.Trigger())
	if label == nil {
		return false
	}
	if c.mnemonics {
		c.openLabel(label)
	} else {
		c.focusLabel(label)
	}
	return true
}

// KeyUp handles a key release. Only the activation key matters, and only
// while nothing is open or focused.
func (c *Controller) KeyUp(e KeyEvent) bool {
	if e.Key != KeyAlt || c.bar.FocusedChild() != nil || c.isOpen() {
		return false
	}
	opts := c.options()
	if c.mnemonics && !opts.AltGivesFocus && !opts.AutoHide {
		c.showMnemonics(false)
	}
	if c.attentive {
		if opts.AutoHide {
			c.visible = true
		}
		if opts.AutoHide || opts.AltGivesFocus {
			if first := firstSelectable(c.bar); first != nil {
				c.focusLabel(first)
			}
		}
	}
	c.setAttentive(false)
	return true
}

// LabelClick toggles label, closing any other open label.
func (c *Controller) LabelClick(label *menu.Node) {
	if label.IsOpen() {
		label.SetOpen(false)
		c.cancelIntents()
		events.Menu.Close(events.CloseToggle)
		return
	}
	if !label.IsEnabled() {
		return
	}
	c.openLabel(label)
}

// LabelEnter switches to label when another label is open and adjacent
// opening is enabled.
func (c *Controller) LabelEnter(label *menu.Node) {
	if c.isOpen() && !label.IsOpen() && c.options().OpenAdjacent {
		c.LabelClick(label)
	}
}

// ItemEnter starts hover intent on item.
func (c *Controller) ItemEnter(item *menu.Node) {
	if p := item.Parent(); p != nil {
		c.intent(p).Enter(item)
	}
}

// ItemMove debounces the pending open while the pointer moves over item.
func (c *Controller) ItemMove(item *menu.Node) {
	if p := item.Parent(); p != nil {
		c.intent(p).Move(item)
	}
}

// ItemClick opens a submenu right away or executes a leaf and closes.
func (c *Controller) ItemClick(item *menu.Node) {
	if item.IsSeparator() || !item.IsEnabled() || !item.Alive() {
		return
	}
	if p := item.Parent(); p != nil {
		c.intent(p).Cancel()
	}
	if item.HasSubmenu() {
		item.SetSelected(true)
		item.SetOpen(true)
		events.Menu.Open(item.ID().String(), item.Name(), item.Depth())
		return
	}
	c.execute(item)
	c.finish(events.CloseExecute)
}

// Leave clears the highlight of owner's entries whose submenu is closed.
func (c *Controller) Leave(owner *menu.Node) {
	c.intent(owner).ClearFocus()
}

// Blur closes everything when the window loses focus, the user clicks
// outside the menus, or the active pane changes.
func (c *Controller) Blur() {
	events.Menu.Blur()
	c.dismiss(events.CloseBlur)
}

// Close closes every open label. Without mnemonic display attentive mode is
// held so the keyboard interaction can continue; otherwise auto-hide hides
// the bar.
func (c *Controller) Close() {
	c.close(events.CloseToggle)
}

func (c *Controller) close(reason events.CloseReason) {
	wasOpen := c.isOpen()
	for _, label := range c.bar.Children() {
		if label.IsOpen() {
			label.SetOpen(false)
		}
	}
	c.cancelIntents()
	if wasOpen {
		events.Menu.Close(reason)
	}
	opts := c.options()
	if !opts.Mnemonics {
		c.setAttentive(true)
		return
	}
	if opts.AutoHide {
		c.visible = false
	}
}

// finish closes after an activation or cancel and drops every transient mode.
func (c *Controller) finish(reason events.CloseReason) {
	c.close(reason)
	c.setAttentive(false)
	c.showMnemonics(false)
	if c.options().AutoHide {
		c.visible = false
	}
}

func (c *Controller) dismiss(reason events.CloseReason) {
	if f := c.bar.FocusedChild(); f != nil {
		f.SetFocused(false)
	}
	c.finish(reason)
}

// Teardown cancels hover timers, pending activations and the settings
// subscription.
func (c *Controller) Teardown() {
	loop.Stop(c.bounce)
	c.bounced = nil
	c.teardown()
}

func (c *Controller) openLabel(label *menu.Node) {
	if f := c.bar.FocusedChild(); f != nil {
		f.SetFocused(false)
	}
	c.cancelIntents()
	label.SetOpen(true)
	c.visible = true
	events.Menu.Open(label.ID().String(), label.Name(), 0)
}

func (c *Controller) focusLabel(label *menu.Node) {
	label.SetFocused(true)
	events.Menu.Focus(label.Name())
}

func (c *Controller) openAdjacent(delta int) {
	open := c.bar.OpenChild()
	next := adjacent(c.bar, open, delta)
	if next == nil || next == open {
		return
	}
	open.SetOpen(false)
	c.openLabel(next)
}

func (c *Controller) focusAdjacent(focused *menu.Node, delta int) {
	if next := adjacent(c.bar, focused, delta); next != nil {
		c.focusLabel(next)
	}
}

func (c *Controller) setAttentive(on bool) {
	if c.attentive == on {
		return
	}
	c.attentive = on
	events.Menu.Attentive(on)
}

func (c *Controller) showMnemonics(on bool) {
	c.mnemonics = on
}

func (c *Controller) flash(n *menu.Node) {
	loop.Stop(c.bounce)
	c.bounced = n
	c.bounce = c.sched.AfterFunc(BounceDuration, func() {
		if c.bounced == n {
			c.bounced = nil
		}
		c.bounce = nil
	})
}

// adjacent returns the selectable sibling delta steps from cur, wrapping
// around.
func adjacent(parent, cur *menu.Node, delta int) *menu.Node {
	list := parent.Selectable()
	if len(list) == 0 {
		return nil
	}
	for i, n := range list {
		if n == cur {
			return list[((i+delta)%len(list)+len(list))%len(list)]
		}
	}
	return list[0]
}

func firstSelectable(parent *menu.Node) *menu.Node {
	if list := parent.Selectable(); len(list) > 0 {
		return list[0]
	}
	return nil
}
