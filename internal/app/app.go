package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/menubar/internal/backend"
	"github.com/atomicstack/menubar/internal/host"
	"github.com/atomicstack/menubar/internal/logging"
	"github.com/atomicstack/menubar/internal/logging/events"
	"github.com/atomicstack/menubar/internal/loop"
	"github.com/atomicstack/menubar/internal/metrics"
	"github.com/atomicstack/menubar/internal/reconcile"
	"github.com/atomicstack/menubar/internal/settings"
	"github.com/atomicstack/menubar/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	TemplatePath      string
	Width             int
	Height            int
	Menu              settings.Options
	ReconcileInterval time.Duration
	// SortLabel names the top-level label whose entries are kept sorted.
	SortLabel    string
	MetricsAddr  string
	DispatchFile string
}

// taskBuffer bounds how many due timer callbacks may wait for the UI loop.
const taskBuffer = 64

// session holds everything one run of the program owns.
type session struct {
	model   *ui.Model
	queue   *loop.Queue
	watcher *backend.Watcher
	metrics *metrics.Recorder
	router  *host.Router
	closers []io.Closer
}

func (s *session) close() {
	s.model.Teardown()
	s.queue.Stop()
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher.Wait()
	}
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			logging.Error(err)
		}
	}
}

// assemble wires the collaborators of the UI model from cfg.
func assemble(cfg Config) (*session, error) {
	s := &session{
		queue:   loop.NewQueue(taskBuffer),
		metrics: metrics.New(),
	}

	var dispatcher host.Dispatcher
	if cfg.DispatchFile != "" {
		f, err := os.OpenFile(cfg.DispatchFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			s.queue.Stop()
			return nil, fmt.Errorf("open dispatch file: %w", err)
		}
		s.closers = append(s.closers, f)
		dispatcher = host.NewJSONDispatcher(f)
	}

	watcher, err := backend.NewWatcher(cfg.TemplatePath)
	if err != nil {
		s.queue.Stop()
		for _, c := range s.closers {
			c.Close()
		}
		return nil, err
	}
	s.watcher = watcher

	var prePass []reconcile.Option
	if cfg.SortLabel != "" {
		prePass = append(prePass, reconcile.WithPrePass(reconcile.SortLabel(cfg.SortLabel)))
	}
	reconciler := reconcile.New(append(prePass,
		reconcile.WithMetrics(s.metrics),
		reconcile.WithReport(logging.Error),
	)...)

	s.router = host.NewRouter(dispatcher, host.SystemOpener{}, s.metrics)
	s.model = ui.NewModel(ui.Options{
		TemplatePath:      cfg.TemplatePath,
		Width:             cfg.Width,
		Height:            cfg.Height,
		Settings:          settings.New(cfg.Menu),
		Scheduler:         s.queue,
		Tasks:             s.queue.Tasks(),
		Router:            s.router,
		Reconciler:        reconciler,
		Watcher:           watcher,
		ReconcileInterval: cfg.ReconcileInterval,
	})
	return s, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	s, err := assemble(cfg)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gCtx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return s.metrics.Serve(gCtx, cfg.MetricsAddr)
		})
	}

	program := tea.NewProgram(s.model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(gCtx),
	)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			events.App.Stop("killed")
			return nil
		}
		events.App.Stop("exit")
		return err
	})
	return g.Wait()
}
