// Package metrics counts reconciliation and activation activity on a
// per-instance Prometheus registry.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const namespace = "menubar"

// Counter increments a labelled counter.
type Counter interface {
	Increment(val ...string)
	Add(n float64, val ...string)
}

type counter struct {
	vec *prometheus.CounterVec
}

func (c *counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func (c *counter) Add(n float64, val ...string) {
	c.vec.WithLabelValues(val...).Add(n)
}

// NewCounterWithRegistry registers a counter vector on reg.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	reg.MustRegister(vec)
	return &counter{vec: vec}
}

// Recorder groups the counters of one menu instance. A nil Recorder discards
// everything, so components can be built without metrics.
type Recorder struct {
	reg       *prometheus.Registry
	passes    Counter
	edits     Counter
	commands  Counter
	malformed Counter
}

// New creates a Recorder on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	return &Recorder{
		reg:       reg,
		passes:    NewCounterWithRegistry(reg, "reconcile_passes_total", "Reconciliation passes by root and outcome.", "root", "aborted"),
		edits:     NewCounterWithRegistry(reg, "reconcile_edits_total", "Applied edit operations by kind.", "op"),
		commands:  NewCounterWithRegistry(reg, "commands_total", "Activated commands by route.", "route"),
		malformed: NewCounterWithRegistry(reg, "template_malformed_total", "Skipped template descriptors.", "root"),
	}
}

// Pass records a reconciliation pass over root.
func (r *Recorder) Pass(root string, aborted bool) {
	if r == nil {
		return
	}
	r.passes.Increment(root, strconv.FormatBool(aborted))
}

// Edits records n applied operations of kind op.
func (r *Recorder) Edits(op string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.edits.Add(float64(n), op)
}

// Command records an activation routed to route ("dispatch", "external", "host").
func (r *Recorder) Command(route string) {
	if r == nil {
		return
	}
	r.commands.Increment(route)
}

// Malformed records a skipped descriptor.
func (r *Recorder) Malformed(root string) {
	if r == nil {
		return
	}
	r.malformed.Increment(root)
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	return r.serve(ctx, listener)
}

func (r *Recorder) serve(ctx context.Context, listener net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
