package ui

import (
	"github.com/atomicstack/menubar/internal/interaction"
	"github.com/atomicstack/menubar/internal/layout"
	"github.com/atomicstack/menubar/internal/menu"
)

// openContextMenu builds a fresh context tree from the current template and
// shows it at p, replacing any context menu already open.
func (m *Model) openContextMenu(p layout.Point) {
	m.closeContextMenu()
	if m.bar.OpenChild() != nil {
		m.ctrl.Blur()
	}
	if m.template.Context == nil {
		m.setInfo("no context menu in " + m.templateName())
		return
	}
	root := menu.NewContext()
	if res := m.opts.Reconciler.Run(root, m.template.Context); res.Err != nil {
		m.setError("context menu: " + res.Err.Error())
		root.Destroy()
		return
	}
	if len(root.Selectable()) == 0 {
		root.Destroy()
		return
	}
	m.ctxMenu = interaction.NewContextMenu(root, p, m.surface(), m.opts.Settings, m.opts.Scheduler, m.activator(), m.activationOptions()...)
}

// closeContextMenu destroys the open context menu without activating
// anything. Activations it already queued still run.
func (m *Model) closeContextMenu() {
	if m.ctxMenu == nil {
		return
	}
	m.ctxMenu.Destroy()
	m.dropDeadContextMenu()
}

// dropDeadContextMenu forgets a context menu that destroyed itself.
func (m *Model) dropDeadContextMenu() {
	if m.ctxMenu == nil || m.ctxMenu.Alive() {
		return
	}
	m.ctxMenu = nil
	if m.hoveredOwner != nil && !m.hoveredOwner.Alive() {
		m.hovered, m.hoveredOwner = nil, nil
	}
}
