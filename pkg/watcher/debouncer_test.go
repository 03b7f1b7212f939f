package watcher

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var fired atomic.Int32
	done := make(chan struct{})
	d := NewDebouncer(50 * time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Trigger(func() {
			fired.Add(1)
			close(done)
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("callback never fired")
	}
	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly one invocation, got %d", got)
	}
}

func TestDebouncer_LastCallbackWins(t *testing.T) {
	result := make(chan string, 2)
	d := NewDebouncer(50 * time.Millisecond)

	d.Trigger(func() { result <- "first" })
	d.Trigger(func() { result <- "second" })

	select {
	case got := <-result:
		if got != "second" {
			t.Errorf("expected the replacement callback, got %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("callback never fired")
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(50 * time.Millisecond)

	d.Trigger(func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected cancelled callback to stay silent, got %d invocations", got)
	}
}

func TestNewDebouncer_DefaultQuiet(t *testing.T) {
	d := NewDebouncer(0)
	if d.quiet != DefaultDebounce {
		t.Errorf("expected default quiet period, got %v", d.quiet)
	}
}
