package cli

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pmconsole/internal/testutil"
)

// TestSummaryCommand verifies the totals table.
func TestSummaryCommand(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodGet, "/api/summary", http.StatusOK, map[string]any{
		"total_projects":     3,
		"active_projects":    2,
		"completed_projects": 1,
		"total_tasks":        10,
		"completed_tasks":    4,
		"total_stages":       6,
		"completed_stages":   2,
		"overall_progress":   0.4,
	})

	code, out, errOut := runCLI(t, "summary", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	for _, want := range []string{"Projects", "Tasks", "Active projects: 2", "Overall progress: 40.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output %q", want, out)
		}
	}
}

// TestUpdateProjectSendsOnlySetFlags verifies unset flags stay out of the body.
func TestUpdateProjectSendsOnlySetFlags(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/project/7/update", http.StatusOK, map[string]any{
		"id":       "7",
		"name":     "Apollo",
		"deadline": "2099-01-31",
	})

	code, out, errOut := runCLI(t, "update-project", "7", "--deadline", "2099-01-31", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	if !strings.Contains(out, `[success] Project "Apollo" updated successfully!`) {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Deadline: 2099-01-31 (") {
		t.Fatalf("expected deadline in output %q", out)
	}
	body := testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if len(body) != 1 || body["deadline"] != "2099-01-31" {
		t.Fatalf("unexpected body %v", body)
	}
}

// TestUpdateProjectRejectsBadInput verifies local rejections never reach the server.
func TestUpdateProjectRejectsBadInput(t *testing.T) {
	fake := testutil.StartFakeAPI(t)

	code, _, errOut := runCLI(t, "update-project", "7", "--base-url", fake.BaseURL)
	if code != ExitUsage || !strings.Contains(errOut, "nothing to update") {
		t.Fatalf("expected usage error, got %d %q", code, errOut)
	}
	code, _, errOut = runCLI(t, "update-project", "7", "--name", " ", "--base-url", fake.BaseURL)
	if code != ExitUsage || !strings.Contains(errOut, "missing required flags: --name") {
		t.Fatalf("expected usage error, got %d %q", code, errOut)
	}
	code, _, errOut = runCLI(t, "update-project", "7", "--deadline", "next week", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitError || !strings.Contains(errOut, "[danger] Error updating project:") {
		t.Fatalf("expected deadline rejection, got %d %q", code, errOut)
	}
	if fake.RequestCount() != 0 {
		t.Fatalf("expected no requests, got %d", fake.RequestCount())
	}
}

// TestDeleteProjectCommand verifies the confirmation flag and both routes.
func TestDeleteProjectCommand(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodDelete, "/api/project/7/delete", http.StatusOK, map[string]any{"message": "Project deleted"})
	fake.Reply(http.MethodPost, "/api/projects/batch_delete", http.StatusPartialContent, map[string]any{
		"deleted_count":    1,
		"failed_deletions": []string{"9"},
		"message":          "Deleted 1 projects. Failed to delete 1 projects.",
	})

	code, _, errOut := runCLI(t, "delete-project", "7", "--base-url", fake.BaseURL)
	if code != ExitUsage || !strings.Contains(errOut, "without --yes") {
		t.Fatalf("expected confirmation error, got %d %q", code, errOut)
	}
	if fake.RequestCount() != 0 {
		t.Fatalf("expected no requests, got %d", fake.RequestCount())
	}

	code, out, _ := runCLI(t, "delete-project", "7", "--yes", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK || !strings.Contains(out, "[success] Project deleted") {
		t.Fatalf("unexpected single delete %d %q", code, out)
	}

	code, out, _ = runCLI(t, "delete-project", "8", "9", "--yes", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitError {
		t.Fatalf("expected exit %d for a partial batch, got %d", ExitError, code)
	}
	if !strings.Contains(out, "[warning] Deleted 1 projects.") || !strings.Contains(out, "Not deleted: 9") {
		t.Fatalf("unexpected batch output %q", out)
	}
	req := testutil.LastRequest(t, fake)
	var body struct {
		ProjectIDs []string `json:"project_ids"`
	}
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if strings.Join(body.ProjectIDs, ",") != "8,9" {
		t.Fatalf("unexpected ids %v", body.ProjectIDs)
	}
}

// TestCategoryCommands verifies listing, creating, assigning and clearing.
func TestCategoryCommands(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodGet, "/api/categories", http.StatusOK, []map[string]any{
		{"id": "c1", "name": "Research", "color": "#007bff"},
	})
	fake.Reply(http.MethodPost, "/api/categories", http.StatusCreated, map[string]any{"id": "c2", "name": "Ops"})
	fake.Reply(http.MethodPost, "/api/project/7/assign_category", http.StatusOK, map[string]any{"message": "Category assigned"})
	fake.Reply(http.MethodDelete, "/api/category/c1", http.StatusOK, map[string]any{"message": "Category deleted"})

	code, out, _ := runCLI(t, "categories", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK || !strings.Contains(out, "Research") || !strings.Contains(out, "#007bff") {
		t.Fatalf("unexpected categories %d %q", code, out)
	}

	code, _, errOut := runCLI(t, "create-category", "--base-url", fake.BaseURL)
	if code != ExitUsage || !strings.Contains(errOut, "missing required flags: --name") {
		t.Fatalf("expected usage error, got %d %q", code, errOut)
	}
	code, out, _ = runCLI(t, "create-category", "--name", "Ops", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK || !strings.Contains(out, `Category "Ops" created successfully!`) || !strings.Contains(out, "Category id: c2") {
		t.Fatalf("unexpected create output %d %q", code, out)
	}
	body := testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if _, ok := body["color"]; ok {
		t.Fatalf("expected color to be omitted, got %v", body)
	}

	code, _, _ = runCLI(t, "assign-category", "7", "c1", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if body := testutil.DecodeBody(t, testutil.LastRequest(t, fake)); body["category_id"] != "c1" {
		t.Fatalf("unexpected assign body %v", body)
	}
	code, _, _ = runCLI(t, "assign-category", "7", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	body = testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if value, ok := body["category_id"]; !ok || value != nil {
		t.Fatalf("expected explicit null category, got %v", body)
	}

	code, out, _ = runCLI(t, "delete-category", "c1", "--yes", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK || !strings.Contains(out, "[success] Category deleted") {
		t.Fatalf("unexpected delete output %d %q", code, out)
	}
}

// TestExportCommand verifies the export is written to a file as JSON.
func TestExportCommand(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.ReplyRaw(http.MethodGet, "/api/export/projects", http.StatusOK,
		`{"projects":[{"id":"7","name":"Apollo"}],"exported_at":"2026-10-19T10:00:00","count":1}`)
	output := filepath.Join(t.TempDir(), "export.json")

	code, out, errOut := runCLI(t, "export", "--output", output, "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	if !strings.Contains(out, "Exported 1 projects to "+output) {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var export struct {
		Projects []map[string]any `json:"projects"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if export.Count != 1 || len(export.Projects) != 1 || export.Projects[0]["name"] != "Apollo" {
		t.Fatalf("unexpected export %+v", export)
	}
}

// TestProjectDeadlines verifies overdue projects are marked in the table and in show.
func TestProjectDeadlines(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	overdue := testutil.Snapshot(0.5, testutil.Stage("in_progress", 0.5, 2))
	overdue["id"] = "7"
	overdue["name"] = "Apollo"
	overdue["deadline"] = "2020-01-01"
	fake.Reply(http.MethodGet, "/api/projects", http.StatusOK, []map[string]any{overdue})
	fake.Reply(http.MethodGet, "/api/project/7", http.StatusOK, overdue)

	code, out, _ := runCLI(t, "projects", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK || !strings.Contains(out, "2020-01-01 (overdue)") {
		t.Fatalf("unexpected projects output %d %q", code, out)
	}
	code, out, _ = runCLI(t, "show", "7", "--base-url", fake.BaseURL, "--no-color")
	if code != ExitOK || !strings.Contains(out, "Deadline: 2020-01-01 (overdue by") {
		t.Fatalf("unexpected show output %d %q", code, out)
	}
}
