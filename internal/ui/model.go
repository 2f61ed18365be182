package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/backend"
	"github.com/atomicstack/menubar/internal/host"
	"github.com/atomicstack/menubar/internal/interaction"
	"github.com/atomicstack/menubar/internal/layout"
	"github.com/atomicstack/menubar/internal/loop"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/reconcile"
	"github.com/atomicstack/menubar/internal/settings"
	"github.com/atomicstack/menubar/internal/theme"
	"github.com/atomicstack/menubar/internal/ui/command"
)

var styles = theme.Default()

// DefaultTarget names the dispatch target when none is configured.
const DefaultTarget = "workspace"

const (
	commandReload    = "menubar:reload"
	commandToggleBar = "menubar:toggle-menu-bar"
)

type msgHandler func(tea.Msg) tea.Cmd

// Options collects the collaborators of a Model. Settings, Scheduler and
// Router are required; the rest may be left zero.
type Options struct {
	TemplatePath string
	Width        int
	Height       int
	Target       string

	Settings   *settings.Settings
	Scheduler  loop.Scheduler
	Tasks      <-chan *loop.Task
	Router     *host.Router
	Reconciler *reconcile.Reconciler
	Watcher    *backend.Watcher
	// ReconcileInterval spaces reconciliation passes triggered by template
	// changes.
	ReconcileInterval time.Duration
}

// Model implements the Bubble Tea model for the menu bar.
type Model struct {
	opts Options
	ctx  context.Context

	bar     *menu.Node
	ctrl    *interaction.Controller
	ctxMenu *interaction.ContextMenu
	// barScroll holds the scroll position of each open bar box.
	barScroll interaction.Offsets
	template  menu.Template
	loaded    bool
	throttle  *backend.Throttle
	bus       *command.Bus
	palette   *palette

	// hovered is the row under the pointer and the box owning it.
	hovered      *menu.Node
	hoveredOwner *menu.Node

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	templateErr string

	watcher *backend.Watcher
	tasks   <-chan *loop.Task
	pending []tea.Cmd

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the bar, its controller and the reserved-command handlers.
// The bar stays empty until the first template arrives.
func NewModel(opts Options) *Model {
	if opts.Target == "" {
		opts.Target = DefaultTarget
	}
	if opts.Reconciler == nil {
		opts.Reconciler = reconcile.New()
	}
	m := &Model{
		opts:      opts,
		ctx:       context.Background(),
		bar:       menu.NewBar(),
		barScroll: make(interaction.Offsets),
		throttle:  backend.NewThrottle(opts.Scheduler, opts.ReconcileInterval),
		watcher:   opts.Watcher,
		tasks:     opts.Tasks,
	}
	m.bus = command.New(m.ctx, m.activator())
	m.ctrl = interaction.New(m.bar, opts.Settings, opts.Scheduler, m.activator(), m.activationOptions()...)
	if opts.Width > 0 {
		m.width, m.fixedWidth = opts.Width, true
	}
	if opts.Height > 0 {
		m.height, m.fixedHeight = opts.Height, true
	}
	if opts.Router != nil {
		opts.Router.Intercept(commandReload, m.interceptReload)
		opts.Router.Intercept(commandToggleBar, m.interceptToggleBar)
	}

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// activator keeps a nil router from turning into a non-nil interface.
func (m *Model) activator() interaction.Activator {
	if m.opts.Router == nil {
		return nil
	}
	return m.opts.Router
}

func (m *Model) activationOptions() []interaction.Option {
	return []interaction.Option{
		interaction.WithTarget(m.opts.Target),
		interaction.WithContext(m.ctx),
		interaction.WithActivated(m.activated),
	}
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.watcher != nil {
		cmds = append(cmds, waitForTemplateEvent(m.watcher))
	}
	if m.tasks != nil {
		cmds = append(cmds, waitForTask(m.tasks))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleBlurMsg,
		reflect.TypeOf(templateEventMsg{}):  m.handleTemplateEventMsg,
		reflect.TypeOf(templateDoneMsg{}):   m.handleTemplateDoneMsg,
		reflect.TypeOf(taskMsg{}):           m.handleTaskMsg,
		reflect.TypeOf(tasksDoneMsg{}):      m.handleTasksDoneMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// queue defers cmd to the end of the current update. Callbacks running
// inside scheduler tasks use it since they cannot return commands.
func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.pending...)
	m.pending = nil
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	if m.palette == nil {
		return nil
	}
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	if m.ctxMenu != nil {
		m.ctxMenu.SetViewport(m.boxViewport())
	}
	return nil
}

func (m *Model) handleBlurMsg(tea.Msg) tea.Cmd {
	m.ctrl.Blur()
	if m.ctxMenu != nil {
		m.ctxMenu.Blur()
		m.dropDeadContextMenu()
	}
	return nil
}

// barHeight is 1 while the bar is drawn and 0 while it is auto-hidden.
func (m *Model) barHeight() int {
	if m.ctrl.BarVisible() {
		return 1
	}
	return 0
}

// boxViewport is the area menu boxes may occupy: everything between the bar
// and the status line.
func (m *Model) boxViewport() layout.Rect {
	top := m.barHeight()
	return layout.Rect{X: 0, Y: top, W: m.width, H: max(m.height-top-1, 0)}
}

func (m *Model) surface() interaction.Surface {
	return interaction.Surface{Geometry: cells{}, Viewport: m.boxViewport(), Metrics: layout.CellMetrics}
}

// barBoxes places the open label's submenu under the label and every nested
// submenu beside the row that opened it. Boxes clamped by the viewport keep
// their own scroll offsets.
func (m *Model) barBoxes() []interaction.Box {
	open := m.bar.OpenChild()
	if open == nil {
		return nil
	}
	s := m.surface()
	var anchor layout.Rect
	for _, span := range labelSpans(m.bar) {
		if span.node == open {
			anchor = span.rect
		}
	}
	size := s.Geometry.BoxSize(open)
	p := layout.PlaceBox(layout.Point{X: anchor.X, Y: anchor.Bottom()}, size, s.Viewport, s.Metrics)
	first := interaction.Box{Owner: open, Rect: p.Rect(size), Placement: p}
	boxes := interaction.Arrange(first, s, m.barScroll)
	m.barScroll.Prune(boxes)
	return boxes
}

// revealBarSelection scrolls every open bar box so its selection shows.
func (m *Model) revealBarSelection() {
	m.barScroll.Reveal(cells{}, m.barBoxes)
}

// Teardown cancels every pending timer and closes all menus.
func (m *Model) Teardown() {
	m.throttle.Stop()
	if m.ctxMenu != nil {
		m.ctxMenu.Teardown()
		m.ctxMenu = nil
	}
	m.ctrl.Teardown()
}

func (m *Model) quit() tea.Cmd {
	m.Teardown()
	return tea.Quit
}

// Bar exposes the live bar root.
func (m *Model) Bar() *menu.Node { return m.bar }

// Controller exposes the bar state machine.
func (m *Model) Controller() *interaction.Controller { return m.ctrl }

// ContextMenu returns the open context menu, or nil.
func (m *Model) ContextMenu() *interaction.ContextMenu { return m.ctxMenu }
