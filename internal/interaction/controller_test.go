package interaction

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/menubar/internal/host"
	"github.com/atomicstack/menubar/internal/layout"
	"github.com/atomicstack/menubar/internal/loop"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/settings"
	"github.com/atomicstack/menubar/internal/testutil"
)

func barTemplate() []menu.Descriptor {
	return []menu.Descriptor{
		{Label: "&File", Submenu: []menu.Descriptor{
			{Label: "&New", Command: "app:new"},
			{Label: "&Open Recent", Submenu: []menu.Descriptor{
				{Label: "alpha", Command: "recent:open", CommandDetail: "alpha"},
				{Label: "beta", Command: "recent:open", CommandDetail: "beta"},
			}},
			{Type: menu.SeparatorType},
			{Label: "&Quit", Command: "app:quit"},
			{Label: "Disabled", Command: "app:never", Enabled: menu.Bool(false)},
		}},
		{Label: "&Edit", Submenu: []menu.Descriptor{
			{Label: "&Undo", Command: "edit:undo"},
		}},
		{Label: "&View", Submenu: []menu.Descriptor{
			{Label: "&Zoom", Command: "view:zoom"},
		}},
	}
}

type barFixture struct {
	bar   *menu.Node
	clock *loop.Manual
	rec   *testutil.Recorder
	set   *settings.Settings
	ctl   *Controller
}

func newBarFixture(t *testing.T, opts settings.Options) barFixture {
	t.Helper()
	bar := menu.NewBar()
	if errs := menu.Build(bar, barTemplate()); len(errs) != 0 {
		t.Fatalf("build: %v", errs)
	}
	clock := loop.NewManual(time.Unix(0, 0))
	rec := &testutil.Recorder{}
	set := settings.New(opts)
	router := host.NewRouter(rec, rec, nil)
	return barFixture{
		bar:   bar,
		clock: clock,
		rec:   rec,
		set:   set,
		ctl:   New(bar, set, clock, router, WithTarget("workspace")),
	}
}

func (f barFixture) label(name string) *menu.Node {
	return f.bar.Find(name)
}

func (f barFixture) press(keys ...KeyEvent) {
	for _, k := range keys {
		f.ctl.KeyDown(k)
	}
}

func key(k Key) KeyEvent     { return KeyEvent{Key: k} }
func letter(r rune) KeyEvent { return KeyEvent{Key: KeyRune, Rune: r} }

func TestAltTapFocusesFirstLabel(t *testing.T) {
	opts := settings.Defaults()
	opts.AltGivesFocus = true
	f := newBarFixture(t, opts)

	f.ctl.KeyDown(key(KeyAlt))
	if f.ctl.State() != StateAttentive || !f.ctl.ShowingMnemonics() {
		t.Fatalf("alt should arm attentive mode with mnemonics, got %s", f.ctl.State())
	}
	f.ctl.KeyUp(key(KeyAlt))
	if !f.label("File").IsFocused() {
		t.Fatalf("expected first label focused")
	}
	if f.ctl.Attentive() {
		t.Fatalf("attentive mode ends on release")
	}
	if !f.ctl.ShowingMnemonics() {
		t.Fatalf("alt-gives-focus keeps the underline display")
	}
}

func TestAltTapWithoutFocusHidesMnemonics(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.KeyDown(key(KeyAlt))
	f.ctl.KeyUp(key(KeyAlt))
	if f.ctl.ShowingMnemonics() || f.bar.FocusedChild() != nil {
		t.Fatalf("expected a bare tap to leave nothing behind")
	}
	if f.ctl.State() != StateIdle {
		t.Fatalf("expected idle, got %s", f.ctl.State())
	}
}

func TestAltRepeatIsIgnored(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.KeyDown(key(KeyAlt))
	f.ctl.KeyDown(KeyEvent{Key: KeyAlt, Repeat: true})
	if !f.ctl.Attentive() {
		t.Fatalf("auto-repeat must not toggle attentive mode")
	}
}

func TestMnemonicOpensLabel(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.press(key(KeyAlt), letter('E'))
	if !f.label("Edit").IsOpen() {
		t.Fatalf("expected Edit open")
	}
	if f.ctl.State() != StateOpen {
		t.Fatalf("expected open state, got %s", f.ctl.State())
	}
}

func TestMnemonicWithoutDisplayFocuses(t *testing.T) {
	opts := settings.Defaults()
	opts.Mnemonics = false
	f := newBarFixture(t, opts)
	f.press(key(KeyAlt), letter('v'))
	if f.label("View").IsOpen() || !f.label("View").IsFocused() {
		t.Fatalf("expected View focused but closed")
	}
}

func TestFocusedLabelNavigation(t *testing.T) {
	opts := settings.Defaults()
	opts.AltGivesFocus = true
	f := newBarFixture(t, opts)
	f.ctl.KeyDown(key(KeyAlt))
	f.ctl.KeyUp(key(KeyAlt))

	f.press(key(KeyLeft))
	if !f.label("View").IsFocused() {
		t.Fatalf("left from the first label wraps to the last")
	}
	f.press(key(KeyRight))
	if !f.label("File").IsFocused() {
		t.Fatalf("right from the last label wraps to the first")
	}
	f.press(key(KeyDown))
	if !f.label("File").IsOpen() || f.label("File").IsFocused() {
		t.Fatalf("down opens the focused label and drops focus")
	}
}

func TestVerticalNavigationInTopLevelListDoesNotWrap(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.LabelClick(f.label("File"))

	f.press(key(KeyDown))
	if got := menu.SelectedLeaf(f.bar); got == nil || got.Name() != "New" {
		t.Fatalf("expected New selected, got %v", got)
	}
	f.press(key(KeyDown), key(KeyDown))
	if got := menu.SelectedLeaf(f.bar); got == nil || got.Name() != "Quit" {
		t.Fatalf("separator and disabled entries are skipped, got %v", got)
	}
	f.press(key(KeyDown))
	if got := menu.SelectedLeaf(f.bar); got != nil {
		t.Fatalf("moving past the end clears the selection, got %s", got.Name())
	}
	f.press(key(KeyUp))
	if got := menu.SelectedLeaf(f.bar); got == nil || got.Name() != "Quit" {
		t.Fatalf("up with nothing selected picks the last entry, got %v", got)
	}
}

func TestNestedSubmenuNavigation(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.LabelClick(f.label("File"))
	recent := f.label("File").Find("Open Recent")

	f.press(key(KeyDown), key(KeyDown), key(KeyRight))
	if !recent.IsOpen() {
		t.Fatalf("right on a submenu entry opens it")
	}
	if got := menu.SelectedLeaf(f.bar); got.Name() != "alpha" {
		t.Fatalf("expected the first nested entry selected, got %s", got.Name())
	}
	f.press(key(KeyUp))
	if got := menu.SelectedLeaf(f.bar); got.Name() != "beta" {
		t.Fatalf("nested lists wrap, got %s", got.Name())
	}
	f.press(key(KeyLeft))
	if recent.IsOpen() {
		t.Fatalf("left collapses one level")
	}
	if got := menu.SelectedLeaf(f.bar); got != recent {
		t.Fatalf("collapsing leaves the owner selected")
	}
	f.press(key(KeyLeft))
	if !f.label("View").IsOpen() || f.label("File").IsOpen() {
		t.Fatalf("left at the outermost level opens the previous label")
	}
	f.press(key(KeyRight))
	if !f.label("File").IsOpen() {
		t.Fatalf("right with no submenu opens the next label")
	}
}

func TestEnterExecutesAfterPaintAndCloses(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.press(key(KeyAlt), letter('f'), key(KeyDown), key(KeyEnter))

	if f.ctl.State() != StateIdle || f.ctl.ShowingMnemonics() {
		t.Fatalf("enter on a leaf closes everything, got %s", f.ctl.State())
	}
	if len(f.rec.Snapshot()) != 0 {
		t.Fatalf("command must wait for the closing paint")
	}
	f.clock.Advance(loop.FrameInterval)
	if len(f.rec.Snapshot()) != 0 {
		t.Fatalf("command must wait two frames")
	}
	f.clock.Advance(loop.FrameInterval)
	want := []host.Activation{{Target: "workspace", Command: "app:new"}}
	if diff := cmp.Diff(want, f.rec.Snapshot()); diff != "" {
		t.Fatalf("activation mismatch (-want +got):\n%s", diff)
	}
}

func TestEnterOnSubmenuEntryOpensIt(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.LabelClick(f.label("File"))
	f.press(key(KeyDown), key(KeyDown), key(KeyEnter))
	if got := menu.SelectedLeaf(f.bar); got == nil || got.Name() != "alpha" {
		t.Fatalf("expected alpha selected, got %v", got)
	}
	if f.ctl.State() != StateOpen {
		t.Fatalf("menu must stay open")
	}
}

func TestSpaceExecutesWithoutClosing(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.LabelClick(f.label("Edit"))
	f.press(key(KeyDown), key(KeySpace))
	undo := f.label("Edit").Find("Undo")
	if f.ctl.Bounced() != undo {
		t.Fatalf("expected Undo to bounce")
	}
	f.clock.Advance(2 * loop.FrameInterval)
	if f.ctl.State() != StateOpen {
		t.Fatalf("space keeps the menu open")
	}
	if got := f.rec.Snapshot(); len(got) != 1 || got[0].Command != "edit:undo" {
		t.Fatalf("unexpected activations %+v", got)
	}
	f.clock.Advance(BounceDuration)
	if f.ctl.Bounced() != nil {
		t.Fatalf("bounce should clear")
	}
}

func TestMnemonicInsideOpenMenu(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.press(key(KeyAlt), letter('f'), letter('o'))
	if !f.label("File").Find("Open Recent").IsOpen() {
		t.Fatalf("a submenu mnemonic opens it")
	}
	f.press(key(KeyLeft), letter('q'))
	if f.ctl.State() != StateIdle {
		t.Fatalf("a leaf mnemonic executes and closes")
	}
	f.clock.Advance(2 * loop.FrameInterval)
	if got := f.rec.Snapshot(); len(got) != 1 || got[0].Command != "app:quit" {
		t.Fatalf("unexpected activations %+v", got)
	}
}

func TestEscapeIsIdempotent(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.press(key(KeyAlt), letter('f'))
	if !f.ctl.KeyDown(key(KeyEscape)) {
		t.Fatalf("escape with an open menu is consumed")
	}
	first := menu.Serialize(f.bar)
	if f.ctl.KeyDown(key(KeyEscape)) {
		t.Fatalf("escape with nothing open is not consumed")
	}
	if f.ctl.State() != StateIdle || f.bar.OpenChild() != nil || f.bar.FocusedChild() != nil {
		t.Fatalf("expected everything closed")
	}
	if diff := cmp.Diff(first, menu.Serialize(f.bar)); diff != "" {
		t.Fatalf("second escape changed the tree:\n%s", diff)
	}
}

func TestBlurClearsEverything(t *testing.T) {
	opts := settings.Defaults()
	opts.AltGivesFocus = true
	f := newBarFixture(t, opts)
	f.ctl.KeyDown(key(KeyAlt))
	f.ctl.KeyUp(key(KeyAlt))
	f.ctl.Blur()
	if f.bar.FocusedChild() != nil || f.ctl.ShowingMnemonics() || f.ctl.Attentive() {
		t.Fatalf("blur must clear focus and modes")
	}

	f.ctl.LabelClick(f.label("File"))
	f.ctl.Blur()
	if f.ctl.State() != StateIdle {
		t.Fatalf("blur must close the open path")
	}
}

func TestLabelClickTogglesAndAdjacentHover(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	file, edit := f.label("File"), f.label("Edit")

	f.ctl.LabelEnter(edit)
	if edit.IsOpen() {
		t.Fatalf("hovering a label with nothing open does nothing")
	}
	f.ctl.LabelClick(file)
	f.ctl.LabelEnter(edit)
	if !edit.IsOpen() || file.IsOpen() {
		t.Fatalf("adjacent hover should switch labels")
	}
	f.ctl.LabelClick(edit)
	if edit.IsOpen() {
		t.Fatalf("clicking an open label closes it")
	}

	opts := settings.Defaults()
	opts.OpenAdjacent = false
	f.set.Update(opts)
	f.ctl.LabelClick(file)
	f.ctl.LabelEnter(edit)
	if edit.IsOpen() {
		t.Fatalf("adjacent hover is disabled")
	}
}

func TestItemHoverOpensAfterDelay(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.LabelClick(f.label("File"))
	recent := f.label("File").Find("Open Recent")

	f.ctl.ItemEnter(recent)
	if !recent.IsSelected() || recent.IsOpen() {
		t.Fatalf("hover highlights first and opens later")
	}
	f.clock.Advance(settings.DefaultHoverDelay)
	if !recent.IsOpen() {
		t.Fatalf("expected the submenu open after the settle delay")
	}
}

func TestHoverDelayFollowsSettings(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.LabelClick(f.label("File"))
	recent := f.label("File").Find("Open Recent")
	f.ctl.ItemEnter(f.label("File").Find("New"))

	opts := settings.Defaults()
	opts.HoverDelay = 50 * time.Millisecond
	f.set.Update(opts)

	f.ctl.ItemEnter(recent)
	f.clock.Advance(50 * time.Millisecond)
	if !recent.IsOpen() {
		t.Fatalf("expected the updated delay to apply")
	}
}

func TestItemClickExecutesAndLeaveClears(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.LabelClick(f.label("File"))
	file := f.label("File")

	f.ctl.ItemEnter(file.Find("New"))
	f.ctl.Leave(file)
	if file.Find("New").IsSelected() {
		t.Fatalf("leaving clears the highlight")
	}

	f.ctl.ItemClick(file.Find("Disabled"))
	if f.ctl.State() != StateOpen {
		t.Fatalf("disabled entries ignore clicks")
	}
	f.ctl.ItemClick(file.Find("Quit"))
	f.clock.Advance(2 * loop.FrameInterval)
	if f.ctl.State() != StateIdle || len(f.rec.Snapshot()) != 1 {
		t.Fatalf("click executes and closes")
	}
}

func TestReservedCommandGoesToOpener(t *testing.T) {
	bar := menu.NewBar()
	menu.Build(bar, []menu.Descriptor{{Label: "&Help", Submenu: []menu.Descriptor{
		{Label: "&FAQ", Command: "application:open-faq"},
	}}})
	clock := loop.NewManual(time.Unix(0, 0))
	rec := &testutil.Recorder{}
	var got []string
	ctl := New(bar, settings.New(settings.Defaults()), clock, host.NewRouter(rec, rec, nil),
		WithActivated(func(command string, err error) { got = append(got, command) }))

	ctl.LabelClick(bar.Find("Help"))
	ctl.ItemClick(bar.Find("Help").Find("FAQ"))
	clock.Advance(2 * loop.FrameInterval)
	if diff := cmp.Diff([]string{host.ExternalURLs["application:open-faq"]}, rec.Opened); diff != "" {
		t.Fatalf("opened mismatch (-want +got):\n%s", diff)
	}
	if len(rec.Snapshot()) != 0 {
		t.Fatalf("reserved commands never reach the dispatcher")
	}
	if diff := cmp.Diff([]string{"application:open-faq"}, got); diff != "" {
		t.Fatalf("activation callback mismatch:\n%s", diff)
	}
}

func TestAutoHide(t *testing.T) {
	opts := settings.Defaults()
	opts.AutoHide = true
	f := newBarFixture(t, opts)
	if f.ctl.BarVisible() {
		t.Fatalf("auto-hide starts hidden")
	}
	f.ctl.KeyDown(key(KeyAlt))
	f.ctl.KeyUp(key(KeyAlt))
	if !f.ctl.BarVisible() || !f.label("File").IsFocused() {
		t.Fatalf("alt reveals the bar and focuses the first label")
	}
	f.press(key(KeyDown), key(KeyEscape))
	if f.ctl.BarVisible() {
		t.Fatalf("escape hides the bar again")
	}

	opts.AutoHide = false
	f.set.Update(opts)
	if !f.ctl.BarVisible() {
		t.Fatalf("turning auto-hide off shows the bar")
	}
}

func TestCloseWithoutMnemonicsHoldsAttentive(t *testing.T) {
	opts := settings.Defaults()
	opts.Mnemonics = false
	f := newBarFixture(t, opts)
	f.ctl.LabelClick(f.label("File"))
	f.ctl.Close()
	if f.ctl.State() != StateAttentive {
		t.Fatalf("expected attentive held, got %s", f.ctl.State())
	}
}

func TestTeardownCancelsPendingWork(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.LabelClick(f.label("File"))
	f.ctl.ItemEnter(f.label("File").Find("Open Recent"))
	f.ctl.ItemClick(f.label("File").Find("New"))
	f.ctl.Teardown()
	if f.clock.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", f.clock.Pending())
	}
	f.clock.Advance(time.Second)
	if len(f.rec.Snapshot()) != 0 {
		t.Fatalf("torn down controller dispatched")
	}
}

// fixedRows lays every entry out as one row of a fixed-width box.
type fixedRows struct{ width int }

func (g fixedRows) BoxSize(owner *menu.Node) layout.Size {
	return layout.Size{W: g.width, H: len(owner.Children())}
}

func (g fixedRows) Row(owner, child *menu.Node) layout.Rect {
	return layout.Rect{Y: child.Index(), W: g.width, H: 1}
}

func (fixedRows) Frame() int { return 0 }

func TestArrangeFollowsOpenChain(t *testing.T) {
	f := newBarFixture(t, settings.Defaults())
	f.ctl.LabelClick(f.label("File"))
	recent := f.label("File").Find("Open Recent")
	recent.SetOpen(true)

	s := Surface{Geometry: fixedRows{width: 10}, Viewport: layout.Rect{W: 80, H: 24}, Metrics: layout.CellMetrics}
	size := s.Geometry.BoxSize(f.label("File"))
	first := place(f.label("File"), 0, layout.PlaceBox(layout.Point{X: 0, Y: 1}, size, s.Viewport, s.Metrics), size)
	boxes := Arrange(first, s, nil)
	if len(boxes) != 2 || boxes[1].Owner != recent {
		t.Fatalf("expected two boxes, got %d", len(boxes))
	}
	if boxes[1].Rect.X != 10 || boxes[1].Rect.Y != 1 {
		t.Fatalf("nested box should sit beside its row, got %+v", boxes[1].Rect)
	}

	_, hit, ok := HitTest(boxes, s.Geometry, layout.Point{X: 12, Y: 2})
	if !ok || hit == nil || hit.Name() != "beta" {
		t.Fatalf("expected beta under the pointer, got %v", hit)
	}
	if _, _, ok := HitTest(boxes, s.Geometry, layout.Point{X: 50, Y: 20}); ok {
		t.Fatalf("point outside every box should miss")
	}
}
