package ui

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/menubar/internal/format/table"
	"github.com/atomicstack/menubar/internal/layout"
	"github.com/atomicstack/menubar/internal/menu"
)

const (
	// boxChrome is the border plus one cell of padding on each side.
	boxChrome   = 4
	minBoxInner = 8
	submenuMark = "›"
)

// cells measures menu boxes in terminal cells. It is the interaction.Geometry
// used for both placement and hit testing, so it must agree with renderBox.
type cells struct{}

// rows returns the column cells of every visible child of owner, in display
// order. Separators yield nil.
func (cells) rows(owner *menu.Node) ([]*menu.Node, [][]string) {
	var nodes []*menu.Node
	var rows [][]string
	for _, child := range owner.Children() {
		if !child.IsVisible() {
			continue
		}
		nodes = append(nodes, child)
		if child.IsSeparator() {
			rows = append(rows, nil)
			continue
		}
		mark := ""
		if child.HasSubmenu() {
			mark = submenuMark
		}
		rows = append(rows, []string{child.Name(), menu.FormatKeystroke(child.Keystroke()), mark})
	}
	return nodes, rows
}

// Frame is the one-cell border renderBox draws.
func (cells) Frame() int { return 1 }

func (c cells) inner(owner *menu.Node) int {
	_, rows := c.rows(owner)
	return max(table.Width(rows), minBoxInner)
}

func (c cells) BoxSize(owner *menu.Node) layout.Size {
	nodes, _ := c.rows(owner)
	return layout.Size{W: c.inner(owner) + boxChrome, H: len(nodes) + 2}
}

func (c cells) Row(owner, child *menu.Node) layout.Rect {
	nodes, _ := c.rows(owner)
	for i, n := range nodes {
		if n == child {
			return layout.Rect{X: 1, Y: 1 + i, W: c.inner(owner) + 2, H: 1}
		}
	}
	return layout.Rect{}
}

// labelSpan is where one bar label is drawn.
type labelSpan struct {
	node *menu.Node
	rect layout.Rect
}

// labelSpans lays the bar labels out left to right on row 0, each padded by
// one cell on either side.
func labelSpans(bar *menu.Node) []labelSpan {
	spans := make([]labelSpan, 0, len(bar.Children()))
	x := 0
	for _, label := range bar.Children() {
		w := ansi.StringWidth(label.Name()) + 2
		spans = append(spans, labelSpan{node: label, rect: layout.Rect{X: x, Y: 0, W: w, H: 1}})
		x += w
	}
	return spans
}
