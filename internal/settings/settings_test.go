package settings

import (
	"testing"
	"time"
)

func TestNewAppliesHoverDelayDefault(t *testing.T) {
	s := New(Options{})
	if s.Options().HoverDelay != DefaultHoverDelay {
		t.Fatalf("expected default hover delay, got %v", s.Options().HoverDelay)
	}
}

func TestUpdateNotifiesInOrder(t *testing.T) {
	s := New(Defaults())
	var calls []string
	s.Subscribe(func(old, new Options) { calls = append(calls, "first") })
	unsub := s.Subscribe(func(old, new Options) {
		if old.AutoHide || !new.AutoHide {
			t.Fatalf("unexpected transition %+v -> %+v", old, new)
		}
		calls = append(calls, "second")
	})
	opts := s.Options()
	opts.AutoHide = true
	s.Update(opts)
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("unexpected calls %v", calls)
	}

	unsub()
	opts.HoverDelay = 50 * time.Millisecond
	s.Update(opts)
	if len(calls) != 3 {
		t.Fatalf("expected only the first subscriber, got %v", calls)
	}
}

func TestUpdateWithoutChangeIsSilent(t *testing.T) {
	s := New(Defaults())
	called := false
	s.Subscribe(func(old, new Options) { called = true })
	s.Update(s.Options())
	if called {
		t.Fatalf("no-op update should not notify")
	}
}

func TestNilSettingsReadsDefaults(t *testing.T) {
	var s *Settings
	if !s.Options().Mnemonics {
		t.Fatalf("expected defaults from a nil settings value")
	}
}
