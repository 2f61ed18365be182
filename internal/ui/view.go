package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/menubar/internal/format/table"
	"github.com/atomicstack/menubar/internal/interaction"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/theme"
)

const paletteMaxWidth = 72

var itemColumns = []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft}

// canvas is a fixed grid of terminal rows that blocks are painted onto.
type canvas struct {
	width int
	rows  []string
}

func newCanvas(width, height int) *canvas {
	rows := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range rows {
		rows[i] = blank
	}
	return &canvas{width: width, rows: rows}
}

// put paints block with its top-left corner at (x, y), clipping whatever
// falls outside the grid.
func (c *canvas) put(x, y int, block string) {
	if block == "" || x >= c.width {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.rows) {
			continue
		}
		c.rows[row] = overlay(c.rows[row], max(x, 0), line, c.width)
	}
}

func overlay(row string, x int, s string, width int) string {
	s = ansi.Truncate(s, width-x, "")
	w := ansi.StringWidth(s)
	left := ansi.Truncate(row, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	return left + s + ansi.TruncateLeft(row, x+w, "")
}

func (c *canvas) String() string {
	return strings.Join(c.rows, "\n")
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	c := newCanvas(m.width, m.height)
	if m.ctrl.BarVisible() {
		c.put(0, 0, m.renderBar())
	}
	for _, b := range m.barBoxes() {
		c.put(b.Rect.X, b.Rect.Y, m.renderBox(b))
	}
	if m.ctxMenu != nil {
		for _, b := range m.ctxMenu.Placements() {
			c.put(b.Rect.X, b.Rect.Y, m.renderBox(b))
		}
	}
	if m.palette != nil {
		c.put(2, m.barHeight(), m.renderPalette())
	}
	c.put(0, m.height-1, m.statusLine())
	return c.String()
}

func (m *Model) renderBar() string {
	var b strings.Builder
	used := 0
	for _, span := range labelSpans(m.bar) {
		style := styles.Label
		switch {
		case span.node.IsOpen():
			style = styles.LabelOpen
		case span.node.IsFocused():
			style = styles.LabelFocused
		}
		b.WriteString(render(style, " "))
		b.WriteString(m.renderLabelName(span.node, style))
		b.WriteString(render(style, " "))
		used += span.rect.W
	}

	var controls strings.Builder
	for _, ctl := range theme.Controls(m.opts.Settings.Options().ControlTheme) {
		controls.WriteString(" " + ctl.Style.Render(ctl.Glyph))
	}
	controls.WriteString(" ")
	gap := m.width - used - ansi.StringWidth(controls.String())
	if gap > 0 {
		b.WriteString(render(styles.Bar, strings.Repeat(" ", gap)))
		b.WriteString(controls.String())
	}
	return b.String()
}

// renderLabelName underlines the mnemonic while mnemonics are shown.
func (m *Model) renderLabelName(label *menu.Node, style *lipgloss.Style) string {
	name := []rune(label.Name())
	idx := menu.MnemonicIndex(label.Text())
	if !m.ctrl.ShowingMnemonics() || idx < 0 || idx >= len(name) {
		return render(style, string(name))
	}
	underline := styles.Mnemonic.Copy()
	if style != nil {
		underline = style.Copy().Underline(true)
	}
	return render(style, string(name[:idx])) + underline.Render(string(name[idx])) + render(style, string(name[idx+1:]))
}

// renderBox draws the entries of b.Owner inside a border, showing only the
// rows that fit the placed height from the box's scroll offset on.
func (m *Model) renderBox(b interaction.Box) string {
	g := cells{}
	nodes, rows := g.rows(b.Owner)
	inner := g.inner(b.Owner)

	var text [][]string
	for _, row := range rows {
		if row != nil {
			text = append(text, row)
		}
	}
	formatted := table.Fit(text, itemColumns, inner)

	lines := make([]string, 0, len(nodes))
	next := 0
	for i, n := range nodes {
		if rows[i] == nil {
			lines = append(lines, render(styles.Separator, strings.Repeat("─", inner+2)))
			continue
		}
		lines = append(lines, render(m.itemStyle(n), " "+formatted[next]+" "))
		next++
	}

	visible := b.Rect.H - 2
	if visible <= 0 {
		return ""
	}
	start := min(b.Offset, len(lines))
	end := min(start+visible, len(lines))
	return render(styles.Box, strings.Join(lines[start:end], "\n"))
}

func (m *Model) itemStyle(n *menu.Node) *lipgloss.Style {
	switch {
	case !n.IsEnabled():
		return styles.DisabledItem
	case n == m.ctrl.Bounced():
		return styles.BouncedItem
	case n.IsSelected():
		return styles.SelectedItem
	}
	return styles.Item
}

func (m *Model) renderPalette() string {
	l := m.palette.level
	width := max(min(m.width-6, paletteMaxWidth), 10)
	lines := []string{
		render(styles.Header, truncate.String(l.Title, uint(width))),
		m.renderFilter(l),
	}
	if len(l.Items) == 0 {
		msg := "(no commands)"
		if l.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", l.Filter)
		}
		lines = append(lines, render(styles.Info, truncate.String(msg, uint(width))))
		return render(styles.Box, strings.Join(lines, "\n"))
	}

	l.EnsureCursorVisible(m.paletteRows())
	end := min(l.ViewportOffset+m.paletteRows(), len(l.Items))
	shown := l.Items[l.ViewportOffset:end]
	rows := make([][]string, len(shown))
	for i, item := range shown {
		rows[i] = []string{item.Label, item.Hint}
	}
	for i, line := range table.Fit(rows, itemColumns, width) {
		line = truncate.String(line, uint(width))
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		style := styles.Item
		if l.ViewportOffset+i == l.Cursor {
			style = styles.SelectedItem
		}
		lines = append(lines, render(style, line))
	}
	return render(styles.Box, strings.Join(lines, "\n"))
}

func (m *Model) statusLine() string {
	var text string
	var style *lipgloss.Style
	switch {
	case m.errMsg != "":
		text, style = m.errMsg, styles.Error
	case m.templateErr != "":
		text, style = m.templateName()+": "+m.templateErr, styles.Error
	case m.currentInfo() != "":
		text, style = m.infoMsg, styles.Info
	case !m.loaded:
		text, style = "waiting for "+m.templateName()+"…", styles.Info
	default:
		var parts []string
		for _, b := range []key.Binding{keys.Activate, keys.Context, keys.Palette, keys.Quit} {
			parts = append(parts, b.Help().Key+" "+b.Help().Desc)
		}
		text, style = strings.Join(parts, " · "), styles.Info
	}
	return render(style, truncate.StringWithTail(text, uint(max(m.width, 0)), "…"))
}
