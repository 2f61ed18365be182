package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/menubar/internal/host"
	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/ui/command"
	"github.com/atomicstack/menubar/internal/ui/state"
)

const paletteID = "palette"

// palette lists every reachable command of the bar for fuzzy lookup.
type palette struct {
	level *state.Level
}

func (m *Model) openPalette() {
	if m.bar.OpenChild() != nil || m.ctrl.Attentive() {
		m.ctrl.Blur()
	}
	m.palette = &palette{level: state.NewLevel(paletteID, "Commands", state.Leaves(m.bar))}
	m.queue(m.filterCursor.Focus())
	m.filterCursorDirty = true
}

func (m *Model) closePalette() {
	m.palette = nil
	m.filterCursor.Blur()
}

// paletteRows is how many entries the palette shows at once.
func (m *Model) paletteRows() int {
	// bar, border, title, filter and status line
	return max(m.height-6, 1)
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	l := m.palette.level
	before := l.FilterCursorPos()
	defer m.noteFilterCursorChange(l, before)

	switch {
	case key.Matches(msg, paletteKeys.Close):
		m.closePalette()
	case key.Matches(msg, paletteKeys.Run):
		return m.runPaletteItem()
	case key.Matches(msg, paletteKeys.Up):
		l.MoveCursor(-1)
	case key.Matches(msg, paletteKeys.Down):
		l.MoveCursor(1)
	case key.Matches(msg, paletteKeys.PageUp):
		l.MoveCursorPageUp(m.paletteRows())
	case key.Matches(msg, paletteKeys.PageDown):
		l.MoveCursorPageDown(m.paletteRows())
	case key.Matches(msg, paletteKeys.Home):
		l.MoveCursorHome()
	case key.Matches(msg, paletteKeys.End):
		l.MoveCursorEnd()
	case key.Matches(msg, paletteKeys.WordLeft):
		l.MoveFilterCursorWordBackward()
	case key.Matches(msg, paletteKeys.WordRight):
		l.MoveFilterCursorWordForward()
	case key.Matches(msg, paletteKeys.Left):
		l.MoveFilterCursorRuneBackward()
	case key.Matches(msg, paletteKeys.Right):
		l.MoveFilterCursorRuneForward()
	case key.Matches(msg, paletteKeys.LineStart):
		l.MoveFilterCursorStart()
	case key.Matches(msg, paletteKeys.LineEnd):
		l.MoveFilterCursorEnd()
	case key.Matches(msg, paletteKeys.DeleteWord):
		if l.DeleteFilterWordBackward() {
			events.Filter.WordBackspace(l.ID, l.Filter)
		}
	case key.Matches(msg, paletteKeys.Backspace):
		if l.DeleteFilterRuneBackward() {
			events.Filter.Backspace(l.ID, l.Filter)
		}
	case key.Matches(msg, paletteKeys.Clear):
		if l.Filter != "" {
			l.SetFilter("", 0)
			events.Filter.Cleared(l.ID)
		}
	case msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace:
		if l.InsertFilterText(string(msg.Runes)) {
			events.Filter.Append(l.ID, l.Filter)
		}
	}
	if m.palette != nil {
		l.EnsureCursorVisible(m.paletteRows())
	}
	return nil
}

func (m *Model) noteFilterCursorChange(l *state.Level, before int) {
	if before != l.FilterCursorPos() {
		m.filterCursorDirty = true
		events.Filter.Cursor(l.ID, l.FilterCursorPos())
	}
}

// runPaletteItem closes the palette and delivers the highlighted command.
// Commands the UI reserves for itself run here on the UI goroutine; the rest
// go through the bus.
func (m *Model) runPaletteItem() tea.Cmd {
	item, ok := m.palette.level.Current()
	m.closePalette()
	if !ok {
		return nil
	}
	if item.Node == nil || !item.Node.Alive() || !item.Node.IsEnabled() {
		m.setError(item.Label + " is no longer available")
		return nil
	}
	req := command.Request{
		Target:  m.opts.Target,
		Command: item.Node.Command(),
		Label:   item.Label,
		Detail:  item.Node.Detail(),
	}
	if m.opts.Router != nil && m.opts.Router.RouteFor(req.Command) == host.RouteHost {
		m.activated(req.Command, m.opts.Router.Activate(m.ctx, req.Target, req.Command, req.Detail))
		return nil
	}
	return m.bus.Execute(req)
}

// renderFilter draws the query line with the cursor cell highlighted.
func (m *Model) renderFilter(l *state.Level) string {
	prompt := render(styles.FilterPrompt, "» ")
	text := []rune(l.Filter)
	if len(text) == 0 {
		placeholder := []rune("type to search commands")
		return prompt + m.renderFilterCursor(string(placeholder[0]), styles.FilterPlaceholder) +
			render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	pos := l.FilterCursorPos()
	at := " "
	rest := ""
	if pos < len(text) {
		at = string(text[pos])
		rest = string(text[pos+1:])
	}
	return prompt + render(styles.Filter, string(text[:pos])) + m.renderFilterCursor(at, styles.Filter) + render(styles.Filter, rest)
}

func (m *Model) renderFilterCursor(char string, text *lipgloss.Style) string {
	m.filterCursor.SetChar(char)
	if text != nil {
		m.filterCursor.TextStyle = text.Copy()
	}
	return m.filterCursor.View()
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
