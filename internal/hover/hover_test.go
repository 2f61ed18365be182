package hover

import (
	"testing"
	"time"

	"github.com/atomicstack/menubar/internal/loop"
	"github.com/atomicstack/menubar/internal/menu"
)

const delay = 200 * time.Millisecond

type fixture struct {
	clock   *loop.Manual
	file    *menu.Node
	a, b, c *menu.Node
	off     *menu.Node
	intent  *Intent[*menu.Node]
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	bar := menu.NewBar()
	sub := []menu.Descriptor{{Label: "leaf", Command: "x"}}
	if errs := menu.Build(bar, []menu.Descriptor{{Label: "File", Submenu: []menu.Descriptor{
		{Label: "A", Submenu: sub},
		{Label: "B", Submenu: sub},
		{Label: "C", Submenu: sub},
		{Label: "Off", Command: "y", Enabled: menu.Bool(false)},
	}}}); len(errs) != 0 {
		t.Fatalf("build: %v", errs)
	}
	file := bar.Children()[0]
	file.SetOpen(true)
	clock := loop.NewManual(time.Unix(0, 0))
	kids := file.Children()
	return fixture{
		clock:  clock,
		file:   file,
		a:      kids[0],
		b:      kids[1],
		c:      kids[2],
		off:    kids[3],
		intent: New[*menu.Node](file, clock, delay),
	}
}

func TestSwitchingBeforeDelayOnlyOpensSettledEntry(t *testing.T) {
	f := newFixture(t)
	f.c.SetOpen(true)

	f.intent.Enter(f.a)
	if !f.a.IsSelected() {
		t.Fatalf("entry should highlight immediately")
	}
	f.clock.Advance(100 * time.Millisecond)
	f.intent.Enter(f.b)
	if f.a.IsSelected() || !f.b.IsSelected() {
		t.Fatalf("highlight should follow the pointer")
	}
	f.clock.Advance(199 * time.Millisecond)
	if f.a.IsOpen() || f.b.IsOpen() || !f.c.IsOpen() {
		t.Fatalf("nothing should change before B settles")
	}
	f.clock.Advance(time.Millisecond)
	if !f.b.IsOpen() {
		t.Fatalf("expected B open after settling")
	}
	if f.a.IsOpen() || f.c.IsOpen() {
		t.Fatalf("siblings must be closed once B opens")
	}
	if _, ok := f.intent.Pending(); ok {
		t.Fatalf("nothing should remain pending")
	}
}

func TestMoveWithinEntryDebounces(t *testing.T) {
	f := newFixture(t)
	f.intent.Enter(f.a)
	f.clock.Advance(150 * time.Millisecond)
	f.intent.Move(f.a)
	if f.clock.Pending() != 1 {
		t.Fatalf("expected exactly one pending timer, got %d", f.clock.Pending())
	}
	f.clock.Advance(150 * time.Millisecond)
	if f.a.IsOpen() {
		t.Fatalf("movement should have pushed the open back")
	}
	f.clock.Advance(50 * time.Millisecond)
	if !f.a.IsOpen() {
		t.Fatalf("expected A open after the debounced delay")
	}
}

func TestMoveOntoUnhighlightedEntryEnters(t *testing.T) {
	f := newFixture(t)
	f.intent.Move(f.b)
	if !f.b.IsSelected() {
		t.Fatalf("move over a fresh entry should highlight it")
	}
	if c, ok := f.intent.Pending(); !ok || c != f.b {
		t.Fatalf("expected B pending")
	}
}

func TestCancelOnCloseStopsStaleOpen(t *testing.T) {
	f := newFixture(t)
	f.intent.Enter(f.a)
	f.file.SetOpen(false)
	f.intent.Cancel()
	if f.clock.Pending() != 0 {
		t.Fatalf("cancel must clear the timer")
	}
	f.clock.Advance(time.Second)
	if f.a.IsOpen() {
		t.Fatalf("stale open fired after close")
	}
}

func TestClosedOwnerIgnoresLateFire(t *testing.T) {
	f := newFixture(t)
	f.intent.Enter(f.a)
	f.file.SetOpen(false)
	f.clock.Advance(time.Second)
	if f.a.IsOpen() {
		t.Fatalf("closing deselects, so the late fire must not open")
	}
}

func TestDestroyCancelsPending(t *testing.T) {
	f := newFixture(t)
	f.intent.Enter(f.a)
	f.file.Destroy()
	if f.clock.Pending() != 0 {
		t.Fatalf("destroying the owner must cancel the timer")
	}
	f.clock.Advance(time.Second)
	if f.a.IsOpen() {
		t.Fatalf("destroyed entry opened")
	}
}

func TestDisabledEntryIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.intent.Enter(f.a)
	f.intent.Enter(f.off)
	if f.off.IsSelected() {
		t.Fatalf("disabled entry must not highlight")
	}
	if f.a.IsSelected() {
		t.Fatalf("entering a disabled entry should clear the sibling highlight")
	}
	if _, ok := f.intent.Pending(); ok {
		t.Fatalf("previous pending open must be cancelled")
	}
}

func TestClearFocusKeepsOpenEntry(t *testing.T) {
	f := newFixture(t)
	f.intent.Enter(f.a)
	f.clock.Advance(delay)
	f.intent.ClearFocus()
	if !f.a.IsSelected() {
		t.Fatalf("open entry keeps its highlight")
	}
	f.intent.Enter(f.b)
	f.intent.ClearFocus()
	if f.b.IsSelected() {
		t.Fatalf("unopened entry should lose its highlight")
	}
}
