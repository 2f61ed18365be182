package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/ui/command"
)

// infoTTL is how long an activation notice stays on the status line.
const infoTTL = 4 * time.Second

// activated runs on the UI goroutine after the bar or a context menu
// delivered a command.
func (m *Model) activated(cmd string, err error) {
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.setInfo("ran " + cmd)
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	m.activated(res.Command, res.Err)
	return nil
}

func (m *Model) interceptReload(context.Context, any) error {
	if m.opts.TemplatePath == "" {
		return fmt.Errorf("reload: no template path configured")
	}
	m.queue(readTemplate(m.opts.TemplatePath))
	return nil
}

func (m *Model) interceptToggleBar(context.Context, any) error {
	if m.opts.Settings == nil {
		return fmt.Errorf("toggle menu bar: no settings")
	}
	opts := m.opts.Settings.Options()
	opts.AutoHide = !opts.AutoHide
	m.opts.Settings.Update(opts)
	return nil
}

func (m *Model) setInfo(text string) {
	m.infoMsg = text
	m.infoExpire = time.Now().Add(infoTTL)
	m.errMsg = ""
}

func (m *Model) setError(text string) {
	m.errMsg = text
	m.infoMsg = ""
}

// currentInfo returns the notice unless it has expired.
func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
	}
	return m.infoMsg
}
