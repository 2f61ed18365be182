// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// UpdateEnv rewrites golden files with the actual output when set.
const UpdateEnv = "UPDATE_GOLDEN"

// AssertGolden compares output with testdata/<name> of the calling package.
// A trailing newline in the golden file is ignored.
func AssertGolden(t testing.TB, name, output string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create testdata: %v", err)
		}
		if err := os.WriteFile(path, []byte(output+"\n"), 0o644); err != nil {
			t.Fatalf("update golden %s: %v", name, err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", name, err)
	}
	want := strings.TrimSuffix(string(data), "\n")
	if diff := cmp.Diff(strings.Split(want, "\n"), strings.Split(output, "\n")); diff != "" {
		t.Fatalf("output mismatch for %s (-want +got):\n%s", name, diff)
	}
}
