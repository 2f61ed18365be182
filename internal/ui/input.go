package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/interaction"
	"github.com/atomicstack/menubar/internal/layout"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, keys.Quit) {
		return m.quit()
	}
	m.errMsg = ""
	if m.palette != nil {
		return m.handlePaletteKey(keyMsg)
	}
	steps := translateKey(keyMsg)

	if m.ctxMenu != nil {
		for _, step := range steps {
			if !step.up && step.event.Key != interaction.KeyAlt {
				m.ctxMenu.KeyDown(step.event)
			}
		}
		m.dropDeadContextMenu()
		return nil
	}

	switch {
	case key.Matches(keyMsg, keys.Palette):
		m.openPalette()
		return nil
	case key.Matches(keyMsg, keys.Context):
		m.openContextMenu(m.keyboardContextPoint())
		return nil
	}

	for _, step := range steps {
		if step.up {
			m.ctrl.KeyUp(step.event)
		} else {
			m.ctrl.KeyDown(step.event)
		}
	}
	m.revealBarSelection()
	return nil
}

// keyboardContextPoint is where a keyboard-opened context menu appears: at
// the focused label when there is one, otherwise in the top-left corner of
// the box area.
func (m *Model) keyboardContextPoint() layout.Point {
	vp := m.boxViewport()
	for _, span := range labelSpans(m.bar) {
		if span.node.IsFocused() {
			return layout.Point{X: span.rect.X, Y: vp.Y}
		}
	}
	return layout.Point{X: vp.X, Y: vp.Y}
}
