package events

import "github.com/atomicstack/menubar/internal/logging"

type ReconcileTracer struct{}

type WatchTracer struct{}

var (
	Reconcile = ReconcileTracer{}
	Watch     = WatchTracer{}
)

func (ReconcileTracer) Pass(root string, edits int, ops map[string]int) {
	logging.Trace("reconcile.pass", map[string]interface{}{"root": root, "edits": edits, "ops": ops})
}

func (ReconcileTracer) Abort(root string, err error) {
	logging.Trace("reconcile.abort", map[string]interface{}{"root": root, "error": err.Error()})
}

func (ReconcileTracer) Skip(label, reason string) {
	logging.Trace("reconcile.skip", map[string]interface{}{"label": label, "reason": reason})
}

func (ReconcileTracer) Malformed(err error) {
	logging.Trace("template.malformed", map[string]interface{}{"error": err.Error()})
}

func (WatchTracer) Reload(path string, bytes int) {
	logging.Trace("watch.reload", map[string]interface{}{"path": path, "bytes": bytes})
}

func (WatchTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("watch.error", map[string]interface{}{"path": path, "error": err.Error()})
}
