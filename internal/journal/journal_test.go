package journal

import (
	"path/filepath"
	"testing"
	"time"

	"pmconsole/internal/api"
	"pmconsole/internal/testutil"
)

func openTest(t *testing.T, path string) *Journal {
	t.Helper()
	j, err := Open(testutil.Context(t, 2*time.Second), path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

// TestRecordSkipsIdenticalSnapshots verifies repeated polls of an unchanged project store one row.
func TestRecordSkipsIdenticalSnapshots(t *testing.T) {
	j := openTest(t, "")
	clock := testutil.NewFakeClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	j.now = clock.Now
	ctx := testutil.Context(t, 0)

	snap := api.ProjectSnapshot{Progress: 0.25, Stages: []api.StageSnapshot{{Status: "completed", Progress: 1, TaskCount: 2}, {Status: "in_progress", Progress: 0.1, TaskCount: 4}}}
	for i := 0; i < 3; i++ {
		clock.Advance(time.Second)
		if err := j.Record(ctx, "p1", snap); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	snap.Progress = 0.5
	clock.Advance(time.Second)
	if err := j.Record(ctx, "p1", snap); err != nil {
		t.Fatalf("record changed: %v", err)
	}

	entries, err := j.History(ctx, "p1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Progress != 0.5 || entries[1].Progress != 0.25 {
		t.Fatalf("expected newest first, got %+v", entries)
	}
	if entries[1].CompletedStages != 1 || entries[1].TotalTasks != 6 {
		t.Fatalf("unexpected counters %+v", entries[1])
	}

	limited, err := j.History(ctx, "p1", 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected one limited entry, got %d (%v)", len(limited), err)
	}
}

// TestRecordPersistsAcrossOpen verifies the journal file survives reopening.
func TestRecordPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.duckdb")
	ctx := testutil.Context(t, 0)
	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Record(ctx, "p2", api.ProjectSnapshot{Progress: 1}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := openTest(t, path)
	entries, err := second.History(ctx, "p2", 10)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected persisted entry, got %d (%v)", len(entries), err)
	}
	if err := second.Record(ctx, "", api.ProjectSnapshot{}); err == nil {
		t.Fatalf("expected error for empty project id")
	}
}
