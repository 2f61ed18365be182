package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/menubar/internal/layout"
	"github.com/atomicstack/menubar/internal/testutil"
)

func TestCanvasClipsBlocks(t *testing.T) {
	c := newCanvas(10, 2)
	c.put(8, 0, "abcd")
	c.put(0, 1, "x\ny")
	c.put(12, 0, "never")
	want := "        ab\nx         "
	if got := c.String(); got != want {
		t.Fatalf("unexpected canvas %q", got)
	}
}

func TestCanvasOverlayKeepsRightEdge(t *testing.T) {
	c := newCanvas(6, 1)
	c.put(0, 0, "abcdef")
	c.put(2, 0, "XY")
	if got := c.String(); got != "abXYef" {
		t.Fatalf("unexpected row %q", got)
	}
}

func TestViewDrawsOpenSubmenu(t *testing.T) {
	f := newFixture(t, mnemonicOptions())
	f.h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}, Alt: true})
	view := ansi.Strip(f.h.View())
	for _, want := range []string{"New", "Ctrl+N", "Open Recent", "›", "Reload Menus", "─"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if rows := strings.Count(view, "\n") + 1; rows != 20 {
		t.Fatalf("expected 20 rows, got %d", rows)
	}
}

func TestViewHidesBarWithAutoHide(t *testing.T) {
	opts := mnemonicOptions()
	opts.AutoHide = true
	f := newFixture(t, opts)
	first := strings.Split(ansi.Strip(f.h.View()), "\n")[0]
	if strings.Contains(first, "File") {
		t.Fatalf("auto-hidden bar was drawn: %q", first)
	}
	f.key(tea.KeyF10)
	first = strings.Split(ansi.Strip(f.h.View()), "\n")[0]
	if !strings.Contains(first, "File") {
		t.Fatalf("tapping the activation key should reveal the bar: %q", first)
	}
}

func TestStatusLineShowsKeyHelp(t *testing.T) {
	f := newFixture(t, mnemonicOptions())
	last := ansi.Strip(strings.Split(f.h.View(), "\n")[19])
	for _, want := range []string{"f10", "ctrl+p"} {
		if !strings.Contains(last, want) {
			t.Fatalf("status line missing %q: %q", want, last)
		}
	}
}

func TestContextBoxGolden(t *testing.T) {
	f := newFixture(t, mnemonicOptions())
	f.click(layout.Point{X: 10, Y: 5}, tea.MouseButtonRight)
	cm := f.model().ContextMenu()
	if cm == nil {
		t.Fatalf("right click should open a context menu")
	}
	boxes := cm.Placements()
	if len(boxes) != 1 {
		t.Fatalf("expected one box, got %d", len(boxes))
	}
	testutil.AssertGolden(t, "context_box.golden", ansi.Strip(f.model().renderBox(boxes[0])))
}
