package testutil

import (
	"encoding/json"
	"testing"
)

// DecodeBody unmarshals a recorded request body.
func DecodeBody(t testing.TB, req Request) map[string]any {
	t.Helper()
	if len(req.Body) == 0 {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(req.Body, &out); err != nil {
		t.Fatalf("decode request body %q: %v", string(req.Body), err)
	}
	return out
}

// LastRequest returns the most recent call or fails the test.
func LastRequest(t testing.TB, fake *FakeAPI) Request {
	t.Helper()
	reqs := fake.Requests()
	if len(reqs) == 0 {
		t.Fatalf("expected at least one request")
	}
	return reqs[len(reqs)-1]
}

// Snapshot builds a project snapshot payload for the fake API.
func Snapshot(progress float64, stages ...map[string]any) map[string]any {
	list := make([]map[string]any, 0, len(stages))
	list = append(list, stages...)
	return map[string]any{"progress": progress, "stages": list}
}

// Stage builds a stage payload.
func Stage(status string, progress float64, taskCount int) map[string]any {
	return map[string]any{"status": status, "progress": progress, "task_count": taskCount}
}
