package interaction

import (
	"github.com/atomicstack/menubar/internal/layout"
	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/loop"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/settings"
)

// ContextMenu is a transient menu opened at a point. It lives until an entry
// executes, Escape is pressed, the pointer acts outside it, or the window
// loses focus with close-on-blur enabled.
type ContextMenu struct {
	common
	root    *menu.Node
	surface Surface
	at      layout.Point
	offsets Offsets
	dead    bool
}

// NewContextMenu shows root at the point at.
func NewContextMenu(root *menu.Node, at layout.Point, surface Surface, s *settings.Settings, sched loop.Scheduler, act Activator, opts ...Option) *ContextMenu {
	m := &ContextMenu{
		common:  newCommon(s, sched, act, opts),
		root:    root,
		surface: surface,
		at:      at,
		offsets: make(Offsets),
	}
	if s != nil {
		m.unsub = s.Subscribe(m.setHoverDelay)
	}
	events.Menu.Context(at.X, at.Y, len(root.Children()))
	return m
}

// Root returns the menu's root node.
func (m *ContextMenu) Root() *menu.Node { return m.root }

// Alive reports whether the menu is still shown.
func (m *ContextMenu) Alive() bool { return !m.dead }

// KeyDown handles a key press and reports whether the menu consumed it.
func (m *ContextMenu) KeyDown(e KeyEvent) bool {
	if m.dead {
		return false
	}
	switch e.Key {
	case KeyEscape:
		m.destroy(events.CloseEscape)
	case KeyUp, KeyDown:
		list := m.root
		if leaf := menu.OpenLeaf(m.root); leaf != nil {
			list = leaf
		}
		moveSelection(list, e.Key == KeyDown)
	case KeyLeft:
		m.collapse()
	case KeyRight:
		if sel := menu.SelectedLeaf(m.root); sel != nil && sel.HasSubmenu() {
			openAndSelectFirst(sel)
		}
	case KeyEnter, KeySpace:
		m.activate(menu.SelectedLeaf(m.root))
	default:
		return false
	}
	if !m.dead {
		m.offsets.Reveal(m.surface.Geometry, m.Placements)
	}
	return true
}

// collapse closes the deepest open submenu and reselects its owner. With
// nothing open it steps the selection out of a nested list.
func (m *ContextMenu) collapse() {
	if leaf := menu.OpenLeaf(m.root); leaf != nil {
		leaf.SetOpen(false)
		leaf.SetSelected(true)
		return
	}
	sel := menu.SelectedLeaf(m.root)
	if sel == nil || sel.Parent() == nil || sel.Parent().IsRoot() {
		return
	}
	parent := sel.Parent()
	parent.SetOpen(false)
	parent.SetSelected(true)
}

func (m *ContextMenu) activate(n *menu.Node) {
	switch {
	case n == nil || !n.IsEnabled():
	case n.HasSubmenu():
		openAndSelectFirst(n)
	case n.IsExecutable():
		m.execute(n)
		m.destroy(events.CloseExecute)
	}
}

// ItemEnter starts hover intent on item.
func (m *ContextMenu) ItemEnter(item *menu.Node) {
	if p := item.Parent(); p != nil && !m.dead {
		m.intent(p).Enter(item)
	}
}

// ItemMove debounces the pending open while the pointer moves over item.
func (m *ContextMenu) ItemMove(item *menu.Node) {
	if p := item.Parent(); p != nil && !m.dead {
		m.intent(p).Move(item)
	}
}

// ItemClick opens a submenu right away or executes a leaf and destroys the
// menu.
func (m *ContextMenu) ItemClick(item *menu.Node) {
	if m.dead || item.IsSeparator() || !item.IsEnabled() {
		return
	}
	if p := item.Parent(); p != nil {
		m.intent(p).Cancel()
	}
	if item.HasSubmenu() {
		item.SetSelected(true)
		item.SetOpen(true)
		events.Menu.Open(item.ID().String(), item.Name(), item.Depth())
		return
	}
	m.activate(item)
}

// Leave clears the highlight of owner's entries whose submenu is closed.
func (m *ContextMenu) Leave(owner *menu.Node) {
	if !m.dead {
		m.intent(owner).ClearFocus()
	}
}

// Outside handles a click, scroll or wheel outside every box of the menu.
func (m *ContextMenu) Outside() {
	m.destroy(events.CloseOutside)
}

// Blur destroys the menu when close-on-blur is enabled.
func (m *ContextMenu) Blur() {
	if m.options().CloseOnBlur {
		events.Menu.Blur()
		m.destroy(events.CloseBlur)
	}
}

// Scroll moves the content of owner's box by delta, re-placing every open
// descendant on the next Placements call.
func (m *ContextMenu) Scroll(owner *menu.Node, delta int) {
	if m.dead {
		return
	}
	for _, b := range m.Placements() {
		if b.Owner == owner {
			m.offsets.Scroll(b, m.surface.Geometry, delta)
			return
		}
	}
}

// SetViewport updates the drawing area after a resize.
func (m *ContextMenu) SetViewport(r layout.Rect) {
	m.surface.Viewport = r
}

// Placements returns the top-level box followed by every open submenu box.
func (m *ContextMenu) Placements() []Box {
	if m.dead {
		return nil
	}
	boxes := Arrange(m.top(), m.surface, m.offsets)
	m.offsets.Prune(boxes)
	return boxes
}

func (m *ContextMenu) top() Box {
	size := m.surface.Geometry.BoxSize(m.root)
	p := layout.PlaceBox(m.at, size, m.surface.Viewport, m.surface.Metrics)
	return place(m.root, 0, p, size)
}

// Destroy tears the menu down without an activation.
func (m *ContextMenu) Destroy() {
	m.destroy(events.CloseToggle)
}

func (m *ContextMenu) destroy(reason events.CloseReason) {
	if m.dead {
		return
	}
	m.dead = true
	m.cancelIntents()
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	m.root.Destroy()
	events.Menu.Close(reason)
}

// Teardown cancels pending activations as well. Activations queued by an
// executed entry otherwise still run after the menu is gone.
func (m *ContextMenu) Teardown() {
	m.destroy(events.CloseToggle)
	m.teardown()
}
