package events

import "github.com/atomicstack/menubar/internal/logging"

type FilterTracer struct{}

type CommandTracer struct{}

var (
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Cursor(levelID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (CommandTracer) Queue(command, label string) {
	logging.Trace("command.queue", map[string]interface{}{"command": command, "label": label})
}

func (CommandTracer) Skip(command, label string) {
	logging.Trace("command.skip", map[string]interface{}{"command": command, "label": label})
}

func (CommandTracer) Dispatch(target, command string, detail interface{}) {
	logging.Trace("command.dispatch", map[string]interface{}{"target": target, "command": command, "detail": detail})
}

func (CommandTracer) External(command, url string) {
	logging.Trace("command.external", map[string]interface{}{"command": command, "url": url})
}

func (CommandTracer) Result(command, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"command": command, "msg": msgType})
}
