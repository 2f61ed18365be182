package interaction

import (
	"context"

	"github.com/atomicstack/menubar/internal/hover"
	"github.com/atomicstack/menubar/internal/logging"
	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/loop"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/settings"
)

// common is the state shared by the bar controller and context menus: the
// injected collaborators, one hover intent per open parent, and the
// activations still waiting for the closing paint.
type common struct {
	settings  *settings.Settings
	sched     loop.Scheduler
	act       Activator
	target    string
	ctx       context.Context
	activated func(command string, err error)

	intents  map[*menu.Node]*hover.Intent[*menu.Node]
	inflight map[*activation]struct{}
	unsub    func()
}

type activation struct {
	handle loop.Handle
}

func newCommon(s *settings.Settings, sched loop.Scheduler, act Activator, opts []Option) common {
	c := common{
		settings: s,
		sched:    sched,
		act:      act,
		ctx:      context.Background(),
		intents:  make(map[*menu.Node]*hover.Intent[*menu.Node]),
		inflight: make(map[*activation]struct{}),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c *common) options() settings.Options {
	return c.settings.Options()
}

// intent returns the hover intent owned by parent, creating it on first use.
// The entry is dropped again when parent is destroyed.
func (c *common) intent(parent *menu.Node) *hover.Intent[*menu.Node] {
	if in, ok := c.intents[parent]; ok {
		return in
	}
	in := hover.New[*menu.Node](parent, c.sched, c.options().HoverDelay)
	c.intents[parent] = in
	parent.OnDestroy(func() { delete(c.intents, parent) })
	return in
}

func (c *common) cancelIntents() {
	for _, in := range c.intents {
		in.Cancel()
	}
}

func (c *common) setHoverDelay(old, new settings.Options) {
	if old.HoverDelay == new.HoverDelay {
		return
	}
	for _, in := range c.intents {
		in.SetDelay(new.HoverDelay)
	}
}

// execute queues n's command behind two frame intervals so the closing paint
// lands first. The command and payload are captured now; n may be gone by
// the time the activation runs.
func (c *common) execute(n *menu.Node) {
	if n == nil || !n.IsExecutable() {
		return
	}
	command, detail := n.Command(), n.Detail()
	events.Command.Queue(command, n.Name())
	if c.act == nil {
		events.Command.Skip(command, n.Name())
		return
	}
	a := &activation{}
	c.inflight[a] = struct{}{}
	a.handle = loop.AfterPaint(c.sched, func() {
		delete(c.inflight, a)
		err := c.act.Activate(c.ctx, c.target, command, detail)
		if err != nil {
			logging.Error(err)
		}
		if c.activated != nil {
			c.activated(command, err)
		}
	})
}

// teardown cancels every pending timer and detaches from settings.
func (c *common) teardown() {
	c.cancelIntents()
	for a := range c.inflight {
		a.handle.Cancel()
		delete(c.inflight, a)
	}
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}

// moveSelection steps the selection among parent's selectable children.
// Top-level item lists, those directly under a bar label or a context root,
// stop at the ends; nested submenus wrap.
func moveSelection(parent *menu.Node, forward bool) {
	wrap := parent.Kind() != menu.KindLabel && !parent.IsRoot()
	if forward {
		parent.SelectNext(wrap)
	} else {
		parent.SelectPrevious(wrap)
	}
	if sel := parent.Selected(); sel != nil {
		events.Menu.Select(sel.ID().String(), sel.Name())
	}
}

// openAndSelectFirst expands n and highlights its first selectable entry.
func openAndSelectFirst(n *menu.Node) {
	n.SetSelected(true)
	n.SetOpen(true)
	n.SelectFirst()
	events.Menu.Open(n.ID().String(), n.Name(), n.Depth())
}
