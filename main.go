package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/menubar/internal/app"
	"github.com/atomicstack/menubar/internal/config"
	"github.com/atomicstack/menubar/internal/logging"
	"github.com/atomicstack/menubar/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"terminal": probeTerminal(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

// terminalProbe describes one standard descriptor.
type terminalProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Error    string `json:"error,omitempty"`
}

// probeTerminal reports which standard descriptors are terminals and their
// size. Mouse and focus reporting only work when stdout is one.
func probeTerminal() []terminalProbe {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	probes := make([]terminalProbe, len(files))
	for i, f := range files {
		p := terminalProbe{Name: names[i]}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			p.Terminal = true
			if w, h, err := term.GetSize(fd); err != nil {
				p.Error = err.Error()
			} else {
				p.Width, p.Height = w, h
			}
		}
		probes[i] = p
	}
	return probes
}
