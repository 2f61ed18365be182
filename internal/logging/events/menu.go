package events

import "github.com/atomicstack/menubar/internal/logging"

type MenuTracer struct{}

type HoverTracer struct{}

// CloseReason records what ended an open path.
type CloseReason string

const (
	CloseEscape  CloseReason = "escape"
	CloseExecute CloseReason = "execute"
	CloseToggle  CloseReason = "toggle"
	CloseBlur    CloseReason = "blur"
	CloseOutside CloseReason = "outside"
)

var (
	Menu  = MenuTracer{}
	Hover = HoverTracer{}
)

func (MenuTracer) Open(id, label string, depth int) {
	logging.Trace("menu.open", map[string]interface{}{"id": id, "label": label, "depth": depth})
}

func (MenuTracer) Close(reason CloseReason) {
	logging.Trace("menu.close", map[string]interface{}{"reason": string(reason)})
}

func (MenuTracer) Select(id, label string) {
	logging.Trace("menu.select", map[string]interface{}{"id": id, "label": label})
}

func (MenuTracer) Focus(label string) {
	logging.Trace("menu.focus", map[string]interface{}{"label": label})
}

func (MenuTracer) Attentive(on bool) {
	logging.Trace("menu.attentive", map[string]interface{}{"attentive": on})
}

func (MenuTracer) Blur() {
	logging.Trace("menu.blur", nil)
}

func (MenuTracer) Context(x, y, items int) {
	logging.Trace("menu.context", map[string]interface{}{"x": x, "y": y, "items": items})
}

func (HoverTracer) Schedule(label string, delayMS int64) {
	logging.Trace("hover.schedule", map[string]interface{}{"label": label, "delay_ms": delayMS})
}

func (HoverTracer) Fire(label string) {
	logging.Trace("hover.fire", map[string]interface{}{"label": label})
}

func (HoverTracer) Cancel(label string) {
	logging.Trace("hover.cancel", map[string]interface{}{"label": label})
}
