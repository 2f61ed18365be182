// Package host is the activation boundary between the menu layer and the
// program embedding it.
package host

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"

	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/metrics"
)

// Dispatcher delivers an activated command to the host.
type Dispatcher interface {
	Dispatch(ctx context.Context, target, command string, detail any) error
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(ctx context.Context, target, command string, detail any) error

func (f DispatchFunc) Dispatch(ctx context.Context, target, command string, detail any) error {
	return f(ctx, target, command, detail)
}

// Opener shows an external resource, typically in a browser.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// ExternalURLs maps commands that never reach the dispatcher to the resource
// they open.
var ExternalURLs = map[string]string{
	"application:open-terms-of-use":  "https://help.github.com/articles/github-terms-of-service/",
	"application:open-documentation": "http://flight-manual.atom.io/",
	"application:open-faq":           "https://atom.io/faq",
	"application:open-discussions":   "https://discuss.atom.io/",
	"application:report-issue":       "https://github.com/atom/atom/blob/master/CONTRIBUTING.md#submitting-issues",
	"application:search-issues":      "https://github.com/atom/atom/issues",
}

// Route names where an activation went.
type Route string

const (
	RouteDispatch Route = "dispatch"
	RouteExternal Route = "external"
	RouteHost     Route = "host"
)

// Router sends activations to the external opener, to an intercepting handler
// registered by the embedding program, or to the dispatcher.
type Router struct {
	dispatcher Dispatcher
	opener     Opener
	external   map[string]string
	intercepts map[string]func(ctx context.Context, detail any) error
	metrics    *metrics.Recorder
}

// NewRouter builds a router over the default external URL table.
func NewRouter(d Dispatcher, o Opener, rec *metrics.Recorder) *Router {
	external := make(map[string]string, len(ExternalURLs))
	for k, v := range ExternalURLs {
		external[k] = v
	}
	return &Router{
		dispatcher: d,
		opener:     o,
		external:   external,
		intercepts: make(map[string]func(context.Context, any) error),
		metrics:    rec,
	}
}

// Intercept handles command inside the embedding program instead of
// dispatching it.
func (r *Router) Intercept(command string, fn func(ctx context.Context, detail any) error) {
	r.intercepts[command] = fn
}

// RouteFor reports where command would be sent.
func (r *Router) RouteFor(command string) Route {
	if _, ok := r.external[command]; ok {
		return RouteExternal
	}
	if _, ok := r.intercepts[command]; ok {
		return RouteHost
	}
	return RouteDispatch
}

// Activate delivers one activation.
func (r *Router) Activate(ctx context.Context, target, command string, detail any) error {
	route := r.RouteFor(command)
	r.metrics.Command(string(route))
	switch route {
	case RouteExternal:
		url := r.external[command]
		events.Command.External(command, url)
		if r.opener == nil {
			return fmt.Errorf("open %s: no opener configured", url)
		}
		return r.opener.Open(ctx, url)
	case RouteHost:
		events.Command.Dispatch("host", command, detail)
		return r.intercepts[command](ctx, detail)
	}
	events.Command.Dispatch(target, command, detail)
	if r.dispatcher == nil {
		return nil
	}
	return r.dispatcher.Dispatch(ctx, target, command, detail)
}

// SystemOpener opens URLs with the platform's default handler.
type SystemOpener struct{}

func (SystemOpener) Open(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go cmd.Wait()
	return nil
}

// Activation is one dispatched command as written by JSONDispatcher.
type Activation struct {
	Target  string `json:"target"`
	Command string `json:"command"`
	Detail  any    `json:"commandDetail,omitempty"`
}

// JSONDispatcher writes each activation as a JSON line, letting a host process
// tail the stream.
type JSONDispatcher struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONDispatcher writes to w.
func NewJSONDispatcher(w io.Writer) *JSONDispatcher {
	return &JSONDispatcher{enc: json.NewEncoder(w)}
}

func (d *JSONDispatcher) Dispatch(_ context.Context, target, command string, detail any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enc.Encode(Activation{Target: target, Command: command, Detail: detail}); err != nil {
		return fmt.Errorf("dispatch %s: %w", command, err)
	}
	return nil
}
