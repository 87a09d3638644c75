package testutil

import (
	"testing"
	"time"
)

// Eventually polls fn every interval until it holds or timeout elapses.
func Eventually(t testing.TB, timeout, interval time.Duration, fn func() bool, msg string) {
	t.Helper()
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	deadline := time.After(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for !fn() {
		select {
		case <-deadline:
			if msg == "" {
				msg = "condition not met before timeout"
			}
			t.Fatalf("%s", msg)
		case <-ticker.C:
		}
	}
}

// Never fails if fn holds at any point during window.
func Never(t testing.TB, window, interval time.Duration, fn func() bool, msg string) {
	t.Helper()
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	deadline := time.After(window)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if fn() {
			t.Fatalf("%s", msg)
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}
