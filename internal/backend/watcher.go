// Package backend feeds template updates from disk to the UI loop.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/menubar/internal/logging/events"
)

// ReadInterval is the minimum spacing between two reads of the template file.
// Editors often write a file in several steps; reads inside the window pick up
// the final content.
const ReadInterval = 50 * time.Millisecond

// Event conveys the current template file content or a watch error.
type Event struct {
	Path string
	Data []byte
	Err  error
}

// Watcher publishes the template file once at start and again whenever it
// changes on disk.
type Watcher struct {
	path string
	fs   *fsnotify.Watcher
	pace *pace

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The directory is watched rather than the
// file so that atomic rename-on-save is seen as a change.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:   abs,
		fs:     fsw,
		pace:   newPace(ReadInterval),
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Events returns the update channel. It is closed after Stop once the
// watch goroutine exits.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher and releases the notify handle.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch goroutine has exited and the events channel is
// closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()

	if !w.emit(w.read()) {
		return
	}
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			evt := w.read()
			if errors.Is(evt.Err, fs.ErrNotExist) {
				// Removed or renamed away; the replacing Create follows.
				continue
			}
			if !w.emit(evt) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Path: w.path, Err: fmt.Errorf("watch %s: %w", w.path, err)}) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) read() Event {
	w.pace.wait()
	data, err := os.ReadFile(w.path)
	if err != nil {
		events.Watch.Error(w.path, err)
		return Event{Path: w.path, Err: fmt.Errorf("read template: %w", err)}
	}
	events.Watch.Reload(w.path, len(data))
	return Event{Path: w.path, Data: data}
}

func (w *Watcher) emit(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
