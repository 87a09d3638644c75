package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"pmconsole/internal/testutil"
)

// TestPollerRefreshesOnEachTick verifies refreshes run on the period.
func TestPollerRefreshesOnEachTick(t *testing.T) {
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(testutil.Context(t, 2*time.Second))
	p := New(Schedule{Interval: 10 * time.Millisecond}, func(context.Context) { calls.Add(1) }, nil)

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	testutil.Eventually(t, time.Second, 5*time.Millisecond, func() bool { return calls.Load() >= 3 }, "expected repeated refreshes")
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}

// TestPollerSkipsWhileBlocked verifies ticks with an open modal are dropped.
func TestPollerSkipsWhileBlocked(t *testing.T) {
	var calls atomic.Int32
	var blocked atomic.Bool
	blocked.Store(true)
	ctx, cancel := context.WithCancel(testutil.Context(t, 2*time.Second))
	defer cancel()
	schedule := Schedule{Interval: 5 * time.Millisecond, Blocked: blocked.Load}
	p := New(schedule, func(context.Context) { calls.Add(1) }, nil)
	go func() { _ = p.Run(ctx) }()

	testutil.Never(t, 60*time.Millisecond, 5*time.Millisecond, func() bool { return calls.Load() > 0 }, "expected no refresh while blocked")
	blocked.Store(false)
	testutil.Eventually(t, time.Second, 5*time.Millisecond, func() bool { return calls.Load() > 0 }, "expected refresh after unblocking")
}

// TestScheduleDefaults verifies the default period and route check.
func TestScheduleDefaults(t *testing.T) {
	if (Schedule{}).Period() != 30*time.Second {
		t.Fatalf("expected 30s default period")
	}
	if !(Schedule{}).ShouldRun() {
		t.Fatalf("expected unblocked schedule to run")
	}
	if !ShouldStart("/project/p1") || ShouldStart("/projects") {
		t.Fatalf("unexpected ShouldStart result")
	}
	if err := New(Schedule{}, nil, nil).Run(context.Background()); err == nil {
		t.Fatalf("expected error for nil refresh")
	}
}
