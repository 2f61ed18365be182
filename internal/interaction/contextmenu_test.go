package interaction

import (
	"testing"
	"time"

	"github.com/atomicstack/menubar/internal/host"
	"github.com/atomicstack/menubar/internal/layout"
	"github.com/atomicstack/menubar/internal/loop"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/settings"
	"github.com/atomicstack/menubar/internal/testutil"
)

type contextFixture struct {
	root  *menu.Node
	clock *loop.Manual
	rec   *testutil.Recorder
	set   *settings.Settings
	cm    *ContextMenu
}

func newContextFixture(t *testing.T, opts settings.Options, at layout.Point) contextFixture {
	t.Helper()
	root := menu.NewContext()
	errs := menu.Build(root, []menu.Descriptor{
		{Label: "Copy", Command: "core:copy"},
		{Label: "Paste", Command: "core:paste"},
		{Label: "Split", Submenu: []menu.Descriptor{
			{Label: "Split Up [Ctrl-K Up]", Command: "pane:split-up"},
			{Label: "pane:split-down", Command: "pane:split-down"},
		}},
	})
	if len(errs) != 0 {
		t.Fatalf("build: %v", errs)
	}
	clock := loop.NewManual(time.Unix(0, 0))
	rec := &testutil.Recorder{}
	set := settings.New(opts)
	surface := Surface{Geometry: fixedRows{width: 12}, Viewport: layout.Rect{W: 40, H: 10}, Metrics: layout.CellMetrics}
	return contextFixture{
		root:  root,
		clock: clock,
		rec:   rec,
		set:   set,
		cm:    NewContextMenu(root, at, surface, set, clock, host.NewRouter(rec, rec, nil)),
	}
}

func TestContextTopLevelDoesNotWrap(t *testing.T) {
	f := newContextFixture(t, settings.Defaults(), layout.Point{X: 1, Y: 1})
	f.cm.KeyDown(key(KeyUp))
	if got := f.root.Selected(); got == nil || got.Name() != "Split" {
		t.Fatalf("up with nothing selected picks the last entry, got %v", got)
	}
	f.cm.KeyDown(key(KeyDown))
	if f.root.Selected() != nil {
		t.Fatalf("top level clears the selection past the end")
	}
}

func TestContextNestedNavigation(t *testing.T) {
	f := newContextFixture(t, settings.Defaults(), layout.Point{X: 1, Y: 1})
	split := f.root.Find("Split")
	f.cm.KeyDown(key(KeyUp))
	f.cm.KeyDown(key(KeyRight))
	if !split.IsOpen() {
		t.Fatalf("right opens the selected submenu")
	}
	if got := menu.SelectedLeaf(f.root); got.Name() != "Split Up" {
		t.Fatalf("expected the cleaned first entry selected, got %q", got.Name())
	}
	f.cm.KeyDown(key(KeyDown))
	f.cm.KeyDown(key(KeyDown))
	if got := menu.SelectedLeaf(f.root); got.Name() != "Split Up" {
		t.Fatalf("nested lists wrap, got %q", got.Name())
	}
	f.cm.KeyDown(key(KeyLeft))
	if split.IsOpen() || !split.IsSelected() {
		t.Fatalf("left closes the open submenu and reselects its owner")
	}
}

func TestContextEnterExecutesAndDestroys(t *testing.T) {
	f := newContextFixture(t, settings.Defaults(), layout.Point{X: 1, Y: 1})
	f.cm.KeyDown(key(KeyUp))
	f.cm.KeyDown(key(KeyEnter))
	if !f.cm.Alive() {
		t.Fatalf("enter on a submenu entry must not destroy the menu")
	}
	f.cm.KeyDown(key(KeyDown))
	f.cm.KeyDown(key(KeySpace))
	if f.cm.Alive() || f.root.Alive() {
		t.Fatalf("executing destroys the menu")
	}
	f.clock.Advance(2 * loop.FrameInterval)
	if got := f.rec.Snapshot(); len(got) != 1 || got[0].Command != "pane:split-down" {
		t.Fatalf("unexpected activations %+v", got)
	}
	if f.cm.KeyDown(key(KeyDown)) {
		t.Fatalf("a destroyed menu consumes nothing")
	}
}

func TestContextDismissal(t *testing.T) {
	f := newContextFixture(t, settings.Defaults(), layout.Point{X: 1, Y: 1})
	f.cm.KeyDown(key(KeyEscape))
	if f.cm.Alive() {
		t.Fatalf("escape destroys")
	}

	f = newContextFixture(t, settings.Defaults(), layout.Point{X: 1, Y: 1})
	f.cm.Outside()
	if f.cm.Alive() {
		t.Fatalf("outside interaction destroys")
	}

	opts := settings.Defaults()
	opts.CloseOnBlur = false
	f = newContextFixture(t, opts, layout.Point{X: 1, Y: 1})
	f.cm.Blur()
	if !f.cm.Alive() {
		t.Fatalf("blur is ignored without close-on-blur")
	}
	opts.CloseOnBlur = true
	f.set.Update(opts)
	f.cm.Blur()
	if f.cm.Alive() {
		t.Fatalf("blur destroys with close-on-blur")
	}
}

func TestContextHoverCancelledByDestroy(t *testing.T) {
	f := newContextFixture(t, settings.Defaults(), layout.Point{X: 1, Y: 1})
	split := f.root.Find("Split")
	f.cm.ItemEnter(split)
	f.cm.Destroy()
	if f.clock.Pending() != 0 {
		t.Fatalf("destroy must cancel hover timers")
	}
	if split.IsOpen() {
		t.Fatalf("destroyed entries never open")
	}
}

func TestContextLeaveKeepsOpenEntry(t *testing.T) {
	f := newContextFixture(t, settings.Defaults(), layout.Point{X: 1, Y: 1})
	split := f.root.Find("Split")
	f.cm.ItemClick(split)
	f.cm.ItemEnter(f.root.Find("Copy"))
	f.cm.Leave(f.root)
	if f.root.Find("Copy").IsSelected() {
		t.Fatalf("leave clears closed entries")
	}
	if !split.IsOpen() {
		t.Fatalf("leave keeps open submenus")
	}
}

func TestContextPlacementAndScroll(t *testing.T) {
	f := newContextFixture(t, settings.Defaults(), layout.Point{X: 35, Y: 8})
	boxes := f.cm.Placements()
	if len(boxes) != 1 {
		t.Fatalf("expected one box, got %d", len(boxes))
	}
	if r := boxes[0].Rect; r.Right() > 40 || r.Bottom() > 10 {
		t.Fatalf("box escapes the viewport: %+v", r)
	}

	f.cm.ItemClick(f.root.Find("Split"))
	boxes = f.cm.Placements()
	if len(boxes) != 2 {
		t.Fatalf("expected the open submenu placed, got %d boxes", len(boxes))
	}
	if !boxes[1].Placement.Flipped {
		t.Fatalf("submenu near the trailing edge should flip")
	}

	f.cm.Scroll(f.root, 5)
	if got := f.cm.Placements()[0].Offset; got != 0 {
		t.Fatalf("a box that fits cannot scroll, got offset %d", got)
	}
}

func TestContextScrollRepositionsSubmenus(t *testing.T) {
	root := menu.NewContext()
	var descs []menu.Descriptor
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		descs = append(descs, menu.Descriptor{Label: name, Command: "x:" + name})
	}
	descs = append(descs, menu.Descriptor{Label: "More", Submenu: []menu.Descriptor{{Label: "z", Command: "x:z"}}})
	menu.Build(root, descs)
	surface := Surface{Geometry: fixedRows{width: 8}, Viewport: layout.Rect{W: 40, H: 6}, Metrics: layout.CellMetrics}
	cm := NewContextMenu(root, layout.Point{X: 0, Y: 0}, surface, nil, loop.NewManual(time.Unix(0, 0)), nil)

	first := cm.Placements()[0]
	if !first.Placement.Scrolls() || first.Rect.H != 6 {
		t.Fatalf("expected a scrolling box clamped to the viewport, got %+v", first)
	}
	cm.ItemClick(root.Find("More"))
	before := cm.Placements()[1].Rect.Y
	cm.Scroll(root, 3)
	after := cm.Placements()[1].Rect.Y
	if before == after {
		t.Fatalf("scrolling must re-place the open submenu (%d)", before)
	}
	cm.Scroll(root, 100)
	if got := cm.Placements()[0].Offset; got != 3 {
		t.Fatalf("offset clamps to the overflow, got %d", got)
	}
}

func TestContextKeyboardScrollsSelectionIntoView(t *testing.T) {
	root := menu.NewContext()
	var descs []menu.Descriptor
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		descs = append(descs, menu.Descriptor{Label: name, Command: "x:" + name})
	}
	menu.Build(root, descs)
	surface := Surface{Geometry: fixedRows{width: 8}, Viewport: layout.Rect{W: 40, H: 6}, Metrics: layout.CellMetrics}
	cm := NewContextMenu(root, layout.Point{X: 0, Y: 0}, surface, nil, loop.NewManual(time.Unix(0, 0)), nil)

	cm.KeyDown(key(KeyUp))
	box := cm.Placements()[0]
	if box.Offset != 3 || !box.Visible(surface.Geometry, root.Find("i")) {
		t.Fatalf("selecting the last entry should scroll it into view, offset %d", box.Offset)
	}
	cm.KeyDown(key(KeyDown))
	cm.KeyDown(key(KeyDown))
	if got := cm.Placements()[0].Offset; got != 0 {
		t.Fatalf("selecting the first entry should scroll back, offset %d", got)
	}
	if _, hit, _ := HitTest(cm.Placements(), surface.Geometry, layout.Point{X: 1, Y: 5}); hit == nil || hit.Name() != "f" {
		t.Fatalf("expected f on the last visible row, got %v", hit)
	}
}

func TestScrolledOutRowsAreNotHit(t *testing.T) {
	root := menu.NewContext()
	var descs []menu.Descriptor
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		descs = append(descs, menu.Descriptor{Label: name, Command: "x:" + name})
	}
	menu.Build(root, descs)
	g := framedRows{fixedRows{width: 8}}
	surface := Surface{Geometry: g, Viewport: layout.Rect{W: 40, H: 6}, Metrics: layout.CellMetrics}
	cm := NewContextMenu(root, layout.Point{X: 0, Y: 0}, surface, nil, loop.NewManual(time.Unix(0, 0)), nil)
	cm.Scroll(root, 2)

	box := cm.Placements()[0]
	if box.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", box.Offset)
	}
	if _, hit, inside := HitTest([]Box{box}, g, layout.Point{X: 1, Y: 0}); !inside || hit != nil {
		t.Fatalf("the top border must not hit a scrolled-out row, got %v", hit)
	}
	if _, hit, _ := HitTest([]Box{box}, g, layout.Point{X: 1, Y: 1}); hit == nil || hit.Name() != "c" {
		t.Fatalf("expected c on the first content row, got %v", hit)
	}
}

// framedRows draws a one-cell border around fixedRows.
type framedRows struct{ fixedRows }

func (g framedRows) BoxSize(owner *menu.Node) layout.Size {
	s := g.fixedRows.BoxSize(owner)
	return layout.Size{W: s.W + 2, H: s.H + 2}
}

func (g framedRows) Row(owner, child *menu.Node) layout.Rect {
	return layout.Rect{X: 1, Y: 1 + child.Index(), W: g.width, H: 1}
}

func (framedRows) Frame() int { return 1 }
