package api

import (
	"net/http"
	"testing"

	"pmconsole/internal/testutil"
)

// TestEndpointPathsAndBodies verifies each typed call hits its route with its payload.
func TestEndpointPathsAndBodies(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/create_project", http.StatusCreated, map[string]any{"id": "p1"})
	fake.Reply(http.MethodPost, "/api/project/p1/add_task", http.StatusCreated, map[string]any{"id": "t1"})
	fake.Reply(http.MethodPost, "/api/task/t1/complete", http.StatusOK, map[string]any{"id": "t1", "status": "completed"})
	fake.Reply(http.MethodPost, "/api/task/t1/update", http.StatusOK, map[string]any{"id": "t1", "status": "blocked"})
	client := New(fake.BaseURL)
	ctx := testutil.Context(t, 0)

	if _, err := client.CreateProject(ctx, "Launch", "Q3 launch"); err != nil {
		t.Fatalf("create project: %v", err)
	}
	body := testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if body["name"] != "Launch" || body["description"] != "Q3 launch" {
		t.Fatalf("unexpected create body %v", body)
	}

	if _, err := client.AddTask(ctx, "p1", "Docs", "write docs", "sam"); err != nil {
		t.Fatalf("add task: %v", err)
	}
	body = testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if body["assignee"] != "sam" || body["name"] != "Docs" {
		t.Fatalf("unexpected task body %v", body)
	}

	res, err := client.CompleteTask(ctx, "t1")
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if res["status"] != "completed" {
		t.Fatalf("unexpected complete result %v", res)
	}
	if req := testutil.LastRequest(t, fake); len(req.Body) != 0 {
		t.Fatalf("expected empty complete body, got %q", string(req.Body))
	}

	if _, err := client.UpdateTaskStatus(ctx, "t1", TaskBlocked); err != nil {
		t.Fatalf("update status: %v", err)
	}
	body = testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if body["status"] != "blocked" {
		t.Fatalf("unexpected status body %v", body)
	}
}

// TestStageTransitionsAndSnapshots verifies decoding of stage and snapshot payloads.
func TestStageTransitionsAndSnapshots(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/project/p1/next_stage", http.StatusOK, map[string]any{"success": false, "message": "Tasks incomplete"})
	fake.Reply(http.MethodPost, "/api/project/p1/previous_stage", http.StatusOK, map[string]any{"success": true, "message": "Moved back"})
	fake.Reply(http.MethodGet, "/api/project/p1", http.StatusOK, testutil.Snapshot(0.5,
		testutil.Stage("completed", 1, 3),
		testutil.Stage("in_progress", 0.25, 4),
	))
	fake.Reply(http.MethodGet, "/api/projects", http.StatusOK, []any{map[string]any{"id": "p1", "name": "Launch", "progress": 0.5}})
	client := New(fake.BaseURL)
	ctx := testutil.Context(t, 0)

	next, err := client.AdvanceStage(ctx, "p1")
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if next.Success || next.Message != "Tasks incomplete" {
		t.Fatalf("unexpected transition %+v", next)
	}
	prev, err := client.PreviousStage(ctx, "p1")
	if err != nil || !prev.Success {
		t.Fatalf("unexpected previous stage %+v, %v", prev, err)
	}

	snap, err := client.FetchProject(ctx, "p1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(snap.Stages) != 2 || snap.Stages[1].TaskCount != 4 || snap.Stages[0].Status != StageCompleted {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	list, err := client.ListProjects(ctx)
	if err != nil || len(list) != 1 || list[0].Name != "Launch" {
		t.Fatalf("unexpected project list %+v, %v", list, err)
	}
}

// TestParseTaskStatus verifies accepted status names.
func TestParseTaskStatus(t *testing.T) {
	if status, err := ParseTaskStatus(" In_Progress "); err != nil || status != TaskInProgress {
		t.Fatalf("unexpected parse result %q, %v", status, err)
	}
	if _, err := ParseTaskStatus("done"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

// TestObjectID verifies id extraction for string and numeric ids.
func TestObjectID(t *testing.T) {
	if (Object{"id": "abc"}).ID() != "abc" {
		t.Fatalf("expected string id")
	}
	if (Object{"id": float64(12)}).ID() != "12" {
		t.Fatalf("expected numeric id")
	}
	if (Object{}).ID() != "" || Object(nil).ID() != "" {
		t.Fatalf("expected empty id")
	}
}

// TestProjectManagementEndpoints verifies update, delete, batch delete and
// export routes and payloads.
func TestProjectManagementEndpoints(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodPost, "/api/project/p1/update", http.StatusOK, map[string]any{
		"id": "p1", "name": "Renamed", "deadline": "2026-03-01", "category_id": nil, "stages": []any{},
	})
	fake.Reply(http.MethodDelete, "/api/project/p1/delete", http.StatusOK, map[string]any{"message": "Project deleted successfully"})
	fake.Reply(http.MethodPost, "/api/projects/batch_delete", http.StatusPartialContent, map[string]any{
		"deleted_count":    1,
		"failed_deletions": []string{"p9"},
		"message":          "Deleted 1 projects. Failed to delete 1 projects.",
	})
	fake.ReplyRaw(http.MethodGet, "/api/export/projects", http.StatusOK, `{"projects":[{"id":"p1","extra":true}],"exported_at":"2026-01-02T03:04:05","count":1}`)
	client := New(fake.BaseURL)
	ctx := testutil.Context(t, 0)

	name, deadline := "Renamed", "2026-03-01"
	project, err := client.UpdateProject(ctx, "p1", ProjectUpdate{Name: &name, Deadline: &deadline})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	if project.Name != "Renamed" || project.Deadline != "2026-03-01" || project.CategoryID != "" {
		t.Fatalf("unexpected project %+v", project)
	}
	body := testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if len(body) != 2 || body["name"] != "Renamed" || body["deadline"] != "2026-03-01" {
		t.Fatalf("expected only the set fields, got %v", body)
	}

	msg, err := client.DeleteProject(ctx, "p1")
	if err != nil || msg.Message != "Project deleted successfully" {
		t.Fatalf("unexpected delete result %+v, %v", msg, err)
	}
	if req := testutil.LastRequest(t, fake); req.Method != http.MethodDelete {
		t.Fatalf("expected DELETE, got %s", req.Method)
	}

	batch, err := client.BatchDeleteProjects(ctx, []string{"p1", "p9"})
	if err != nil {
		t.Fatalf("batch delete: %v", err)
	}
	if batch.DeletedCount != 1 || len(batch.FailedDeletions) != 1 || batch.FailedDeletions[0] != "p9" {
		t.Fatalf("unexpected batch result %+v", batch)
	}
	body = testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if ids, ok := body["project_ids"].([]any); !ok || len(ids) != 2 {
		t.Fatalf("unexpected batch body %v", body)
	}

	export, err := client.ExportProjects(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if export.Count != 1 || string(export.Projects) != `[{"id":"p1","extra":true}]` {
		t.Fatalf("unexpected export %+v", export)
	}
}

// TestSummaryAndCategoryEndpoints verifies the summary and category routes.
func TestSummaryAndCategoryEndpoints(t *testing.T) {
	fake := testutil.StartFakeAPI(t)
	fake.Reply(http.MethodGet, "/api/summary", http.StatusOK, map[string]any{
		"total_projects": 3, "active_projects": 2, "completed_projects": 1,
		"total_tasks": 12, "completed_tasks": 5, "total_stages": 9, "completed_stages": 4,
		"overall_progress": 0.456,
	})
	fake.Reply(http.MethodGet, "/api/categories", http.StatusOK, []any{map[string]any{"id": "c1", "name": "Ops", "color": "#007bff"}})
	fake.Reply(http.MethodPost, "/api/categories", http.StatusCreated, map[string]any{"id": "c2", "name": "Web"})
	fake.Reply(http.MethodDelete, "/api/category/c2", http.StatusOK, map[string]any{"message": "Category deleted successfully"})
	fake.Reply(http.MethodPost, "/api/project/p1/assign_category", http.StatusOK, map[string]any{"message": "Category assigned successfully"})
	client := New(fake.BaseURL)
	ctx := testutil.Context(t, 0)

	summary, err := client.FetchSummary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalProjects != 3 || summary.CompletedStages != 4 || summary.OverallProgress != 0.456 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	categories, err := client.ListCategories(ctx)
	if err != nil || len(categories) != 1 || categories[0].Name != "Ops" {
		t.Fatalf("unexpected categories %+v, %v", categories, err)
	}
	created, err := client.CreateCategory(ctx, "Web", "", "")
	if err != nil || created.ID != "c2" {
		t.Fatalf("unexpected category %+v, %v", created, err)
	}
	body := testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if _, ok := body["color"]; ok {
		t.Fatalf("expected empty color to be omitted, got %v", body)
	}
	if _, err := client.DeleteCategory(ctx, "c2"); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	if _, err := client.AssignCategory(ctx, "p1", "c1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	body = testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if body["category_id"] != "c1" {
		t.Fatalf("unexpected assign body %v", body)
	}
	if _, err := client.AssignCategory(ctx, "p1", ""); err != nil {
		t.Fatalf("clear category: %v", err)
	}
	body = testutil.DecodeBody(t, testutil.LastRequest(t, fake))
	if value, ok := body["category_id"]; !ok || value != nil {
		t.Fatalf("expected null category_id, got %v", body)
	}
}
