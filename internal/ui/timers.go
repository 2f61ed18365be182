package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/loop"
)

// waitForTask hands the next due scheduler task to Update so every timer
// callback runs on the UI goroutine.
func waitForTask(tasks <-chan *loop.Task) tea.Cmd {
	return func() tea.Msg {
		task, ok := <-tasks
		if !ok {
			return tasksDoneMsg{}
		}
		return taskMsg{task: task}
	}
}

type taskMsg struct {
	task *loop.Task
}

type tasksDoneMsg struct{}

func (m *Model) handleTaskMsg(msg tea.Msg) tea.Cmd {
	tm, ok := msg.(taskMsg)
	if !ok {
		return nil
	}
	tm.task.Run()
	m.dropDeadContextMenu()
	if m.tasks == nil {
		return nil
	}
	return waitForTask(m.tasks)
}

func (m *Model) handleTasksDoneMsg(tea.Msg) tea.Cmd {
	m.tasks = nil
	return nil
}
