// Package command runs palette activations off the UI goroutine.
package command

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/menubar/internal/interaction"
	"github.com/atomicstack/menubar/internal/logging"
	"github.com/atomicstack/menubar/internal/logging/events"
)

// Request encapsulates one activation.
type Request struct {
	Target  string
	Command string
	Label   string
	Detail  any
}

// Result is the message produced once a Request has been delivered.
type Result struct {
	Command string
	Label   string
	Err     error
}

// Bus coordinates the delivery of activations to the host.
type Bus struct {
	ctx context.Context
	act interaction.Activator
}

// New initialises a command bus delivering to act.
func New(ctx context.Context, act interaction.Activator) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, act: act}
}

// Execute wraps an activation into a Bubble Tea command while emitting trace
// logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.Command, req.Label)
	return func() tea.Msg {
		if b.act == nil {
			events.Command.Skip(req.Command, req.Label)
			return Result{Command: req.Command, Label: req.Label, Err: fmt.Errorf("%s: no host to deliver to", req.Command)}
		}
		err := b.act.Activate(b.ctx, req.Target, req.Command, req.Detail)
		if err != nil {
			logging.Error(err)
		}
		res := Result{Command: req.Command, Label: req.Label, Err: err}
		events.Command.Result(req.Command, fmt.Sprintf("%T", res))
		return res
	}
}
