package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "menubar.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})

	Trace("ignored", nil)
	SetTraceEnabled(true)
	Trace("menu.open", map[string]interface{}{"label": "File"})
	Error(errors.New("boom"))

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode trace: %v", err)
	}
	if entry.Event != "menu.open" || entry.Payload["label"] != "File" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if !strings.HasSuffix(lines[1], "boom") {
		t.Fatalf("expected error line, got %q", lines[1])
	}
}

func TestConfigureEmptyFallsBack(t *testing.T) {
	Configure("  ")
	if Path() != defaultLogFile {
		t.Fatalf("expected default path, got %q", Path())
	}
}
