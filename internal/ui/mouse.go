package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/interaction"
	"github.com/atomicstack/menubar/internal/layout"
	"github.com/atomicstack/menubar/internal/menu"
)

// pointerTarget is the hover surface shared by the bar controller and
// context menus.
type pointerTarget interface {
	ItemEnter(item *menu.Node)
	ItemMove(item *menu.Node)
	Leave(owner *menu.Node)
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || m.palette != nil {
		return nil
	}
	p := layout.Point{X: mouse.X, Y: mouse.Y}
	switch {
	case mouse.Button == tea.MouseButtonWheelUp:
		m.pointerWheel(p, -1)
	case mouse.Button == tea.MouseButtonWheelDown:
		m.pointerWheel(p, 1)
	case mouse.Action == tea.MouseActionMotion:
		m.pointerMove(p)
	case mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft:
		m.pointerClick(p)
	case mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonRight:
		m.openContextMenu(p)
	}
	m.dropDeadContextMenu()
	return nil
}

func (m *Model) labelAt(p layout.Point) *menu.Node {
	if !m.ctrl.BarVisible() {
		return nil
	}
	for _, span := range labelSpans(m.bar) {
		if span.rect.Contains(p) {
			return span.node
		}
	}
	return nil
}

func (m *Model) pointerMove(p layout.Point) {
	if m.ctxMenu != nil {
		m.track(m.ctxMenu, m.ctxMenu.Placements(), p)
		return
	}
	if label := m.labelAt(p); label != nil {
		m.ctrl.LabelEnter(label)
	}
	m.track(m.ctrl, m.barBoxes(), p)
}

// track turns pointer positions into enter, move and leave notifications.
func (m *Model) track(target pointerTarget, boxes []interaction.Box, p layout.Point) {
	box, node, _ := interaction.HitTest(boxes, cells{}, p)
	if node != nil && node.IsSeparator() {
		node = nil
	}
	switch {
	case node == nil:
		if m.hovered != nil && m.hoveredOwner.Alive() {
			target.Leave(m.hoveredOwner)
		}
		m.hovered, m.hoveredOwner = nil, nil
		return
	case node == m.hovered:
		target.ItemMove(node)
	default:
		if m.hovered != nil && m.hoveredOwner != box.Owner && m.hoveredOwner.Alive() {
			target.Leave(m.hoveredOwner)
		}
		target.ItemEnter(node)
	}
	m.hovered, m.hoveredOwner = node, box.Owner
}

func (m *Model) pointerClick(p layout.Point) {
	if m.ctxMenu != nil {
		_, node, inside := interaction.HitTest(m.ctxMenu.Placements(), cells{}, p)
		switch {
		case node != nil:
			m.ctxMenu.ItemClick(node)
		case !inside:
			m.ctxMenu.Outside()
		}
		return
	}
	if label := m.labelAt(p); label != nil {
		m.ctrl.LabelClick(label)
		return
	}
	_, node, inside := interaction.HitTest(m.barBoxes(), cells{}, p)
	switch {
	case node != nil:
		m.ctrl.ItemClick(node)
	case !inside:
		m.ctrl.Blur()
	}
}

// pointerWheel scrolls the box under the pointer. Wheeling outside a context
// menu dismisses it.
func (m *Model) pointerWheel(p layout.Point, delta int) {
	if m.ctxMenu != nil {
		box, _, inside := interaction.HitTest(m.ctxMenu.Placements(), cells{}, p)
		if !inside {
			m.ctxMenu.Outside()
			return
		}
		m.ctxMenu.Scroll(box.Owner, delta)
		return
	}
	if box, _, inside := interaction.HitTest(m.barBoxes(), cells{}, p); inside {
		m.barScroll.Scroll(box, cells{}, delta)
	}
}
