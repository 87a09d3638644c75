package cli

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"pmconsole/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// TestCreateProjectCommand verifies the request body and success alert.
func TestCreateProjectCommand(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/create_project", http.StatusCreated, map[string]any{"id": 5})

	code, out, errOut := runCLI(t, "create-project", "--base-url", fake.BaseURL, "--no-color", "--name", "Apollo", "--description", "moon")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	if !strings.Contains(out, `[success] Project "Apollo" created successfully!`) {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Project id: 5") {
		t.Fatalf("expected project id in output %q", out)
	}
	body := testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if body["name"] != "Apollo" || body["description"] != "moon" {
		t.Fatalf("unexpected body %v", body)
	}
}

// TestCreateProjectRequiresName verifies blank names never reach the server.
func TestCreateProjectRequiresName(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	code, _, errOut := runCLI(t, "create-project", "--base-url", fake.BaseURL, "--name", "   ")
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(errOut, "missing required flags: --name") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
	if fake.RequestCount() != 0 {
		t.Fatalf("expected no requests, got %d", fake.RequestCount())
	}
}

// TestAddTaskServerError verifies server errors reach stderr as danger alerts.
func TestAddTaskServerError(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/project/7/add_task", http.StatusBadRequest, map[string]any{"error": "No active stage found"})

	code, _, errOut := runCLI(t, "add-task", "7", "--name", "Write docs", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "[danger] Error adding task: No active stage found") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

// TestAdvanceStageRejection verifies a business rejection is a warning, not a failure.
func TestAdvanceStageRejection(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/project/7/next_stage", http.StatusOK, map[string]any{
		"success": false,
		"message": "Cannot complete stage: 2 tasks incomplete",
	})

	code, out, _ := runCLI(t, "advance-stage", "7", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out, "[warning] Cannot complete stage: 2 tasks incomplete") {
		t.Fatalf("unexpected output %q", out)
	}
}

// TestPreviousStageCommand verifies the supplemented stage endpoint.
func TestPreviousStageCommand(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/project/7/previous_stage", http.StatusOK, map[string]any{
		"success": true,
		"message": "Moved back to Planning",
	})

	code, out, _ := runCLI(t, "previous-stage", "7", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out, "[success] Moved back to Planning") {
		t.Fatalf("unexpected output %q", out)
	}
}

// TestSetTaskStatusCommand verifies status validation and the update request.
func TestSetTaskStatusCommand(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/task/t1/update", http.StatusOK, map[string]any{"id": "t1"})

	code, out, _ := runCLI(t, "set-task-status", "t1", "in_progress", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out, "Task status set to in progress.") {
		t.Fatalf("unexpected output %q", out)
	}
	body := testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if body["status"] != "in_progress" {
		t.Fatalf("unexpected body %v", body)
	}

	code, _, errOut := runCLI(t, "set-task-status", "t1", "done", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "Error updating task") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
	if fake.RequestCount() != 1 {
		t.Fatalf("expected invalid status to skip the request, got %d requests", fake.RequestCount())
	}
}

// TestCompleteTaskCommand verifies the complete endpoint.
func TestCompleteTaskCommand(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/task/t1/complete", http.StatusOK, map[string]any{"id": "t1"})

	code, out, _ := runCLI(t, "complete-task", "t1", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if !strings.Contains(out, "Task completed successfully!") {
		t.Fatalf("unexpected output %q", out)
	}
}

// TestProjectsCommand verifies the project table.
func TestProjectsCommand(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodGet, "/api/projects", http.StatusOK, []map[string]any{{
		"id":       "p1",
		"name":     "Apollo",
		"progress": 0.456,
		"stages":   []map[string]any{testutil.Stage("completed", 1, 2), testutil.Stage("in_progress", 0.2, 3)},
	}})

	code, out, _ := runCLI(t, "projects", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	for _, want := range []string{"Apollo", "45.6%", "1/2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}

// TestShowAndHistory verifies show records snapshots that history lists.
func TestShowAndHistory(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodGet, "/api/project/7", http.StatusOK, testutil.Snapshot(0.25,
		testutil.Stage("completed", 1, 2),
		testutil.Stage("in_progress", 0.5, 4),
	))
	journalPath := filepath.Join(t.TempDir(), "journal.duckdb")

	code, out, errOut := runCLI(t, "show", "7", "--base-url", fake.BaseURL, "--journal", journalPath, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	if !strings.Contains(out, "25.0%") || !strings.Contains(out, "Completed stages: 1   Total tasks: 6") {
		t.Fatalf("unexpected output %q", out)
	}

	code, out, errOut = runCLI(t, "history", "7", "--journal", journalPath, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	if !strings.Contains(out, "25.0%") {
		t.Fatalf("expected recorded snapshot in %q", out)
	}
}

// TestShowUnknownProject verifies refresh failures are reported on stderr.
func TestShowUnknownProject(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	code, _, errOut := runCLI(t, "show", "404", "--base-url", fake.BaseURL)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "Could not load project 404") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

// TestHistoryNeedsJournal verifies history explains the missing journal.
func TestHistoryNeedsJournal(t *testing.T) {
	code, _, errOut := runCLI(t, "history", "7")
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(errOut, "history needs a journal") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}
