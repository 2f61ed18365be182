package testutil

import (
	"context"
	"sync"

	"github.com/atomicstack/menubar/internal/host"
)

// Recorder is a host dispatcher and opener that keeps every call in memory.
type Recorder struct {
	mu          sync.Mutex
	Activations []host.Activation
	Opened      []string
}

func (r *Recorder) Dispatch(_ context.Context, target, command string, detail any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Activations = append(r.Activations, host.Activation{Target: target, Command: command, Detail: detail})
	return nil
}

func (r *Recorder) Open(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Opened = append(r.Opened, url)
	return nil
}

// Snapshot returns a copy of the recorded activations.
func (r *Recorder) Snapshot() []host.Activation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]host.Activation(nil), r.Activations...)
}
