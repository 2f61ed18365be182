package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "menubar.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
)

// Error appends err to the log file. Diagnostics never reach the terminal,
// which belongs to the menu UI.
func Error(err error) {
	if err == nil {
		return
	}
	withFile("logging failed", func(f *os.File) {
		log.New(f, "", log.LstdFlags).Println(err)
	})
}

// Errorf formats and logs an error.
func Errorf(format string, args ...interface{}) {
	Error(fmt.Errorf(format, args...))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	withFile("trace logging failed", func(f *os.File) {
		if err := json.NewEncoder(f).Encode(entry); err != nil {
			fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
		}
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the current log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

func withFile(failure string, fn func(*os.File)) {
	f, err := os.OpenFile(Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", failure, err)
		return
	}
	defer f.Close()
	fn(f)
}
