package ui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/backend"
	"github.com/atomicstack/menubar/internal/logging"
	"github.com/atomicstack/menubar/internal/menu"
	"github.com/atomicstack/menubar/internal/ui/state"
)

func waitForTemplateEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return templateDoneMsg{}
		}
		return templateEventMsg{event: evt, watched: true}
	}
}

// readTemplate reads path once, outside the watcher. It backs the reload
// command.
func readTemplate(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			err = fmt.Errorf("read template: %w", err)
		}
		return templateEventMsg{event: backend.Event{Path: path, Data: data, Err: err}}
	}
}

type templateEventMsg struct {
	event backend.Event
	// watched marks events read from the watcher, which re-arm the wait.
	watched bool
}

type templateDoneMsg struct{}

func (m *Model) handleTemplateEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(templateEventMsg)
	if !ok {
		return nil
	}
	m.applyTemplateEvent(eventMsg.event)
	if m.watcher != nil && eventMsg.watched {
		return waitForTemplateEvent(m.watcher)
	}
	return nil
}

func (m *Model) handleTemplateDoneMsg(tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

// applyTemplateEvent decodes new template content and schedules a
// reconciliation. A file that fails to read or decode leaves the current
// menus in place.
func (m *Model) applyTemplateEvent(evt backend.Event) {
	if evt.Err != nil {
		logging.Error(evt.Err)
		m.templateErr = evt.Err.Error()
		return
	}
	tpl, err := menu.Decode(evt.Data)
	if err != nil {
		logging.Error(err)
		m.templateErr = err.Error()
		return
	}
	m.template = tpl
	m.loaded = true
	m.throttle.Do(m.reconcile)
}

// reconcile applies the latest template to the bar, to an open context menu
// and to the palette listing.
func (m *Model) reconcile() {
	res := m.opts.Reconciler.Run(m.bar, m.template.Menu)
	switch {
	case res.Err != nil:
		m.templateErr = res.Err.Error()
	case len(res.Malformed) > 0:
		m.templateErr = fmt.Sprintf("%d malformed entries skipped", len(res.Malformed))
	default:
		m.templateErr = ""
	}
	if m.ctxMenu != nil && m.template.Context != nil {
		m.opts.Reconciler.Run(m.ctxMenu.Root(), m.template.Context)
	}
	if m.palette != nil {
		m.palette.level.UpdateItems(state.Leaves(m.bar))
	}
}

func (m *Model) templateName() string {
	if m.opts.TemplatePath == "" {
		return "the template"
	}
	return filepath.Base(m.opts.TemplatePath)
}
