package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StageCompleted is the stage status counted as done.
const StageCompleted = "completed"

// StageSnapshot is the server's view of one project stage.
type StageSnapshot struct {
	ID        string         `json:"id,omitempty"`
	Name      string         `json:"name,omitempty"`
	Status    string         `json:"status"`
	Progress  float64        `json:"progress"`
	TaskCount int            `json:"task_count"`
	Tasks     []TaskSnapshot `json:"tasks,omitempty"`
}

// TaskSnapshot is one task inside a stage.
type TaskSnapshot struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Assignee    string `json:"assignee,omitempty"`
	Status      string `json:"status"`
}

// ProjectSnapshot is the server's view of a project at fetch time.
// Deadline is an ISO 8601 date or timestamp; empty means none.
type ProjectSnapshot struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	Deadline    string          `json:"deadline,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	Progress    float64         `json:"progress"`
	Stages      []StageSnapshot `json:"stages"`
}

// Summary aggregates every project on the server.
type Summary struct {
	TotalProjects     int     `json:"total_projects"`
	ActiveProjects    int     `json:"active_projects"`
	CompletedProjects int     `json:"completed_projects"`
	TotalTasks        int     `json:"total_tasks"`
	CompletedTasks    int     `json:"completed_tasks"`
	TotalStages       int     `json:"total_stages"`
	CompletedStages   int     `json:"completed_stages"`
	OverallProgress   float64 `json:"overall_progress"`
}

// Category groups projects.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ProjectUpdate lists the project fields to change. Nil fields are left
// as they are.
type ProjectUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	CategoryID  *string `json:"category_id,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u ProjectUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Deadline == nil && u.CategoryID == nil
}

// Message is the server's acknowledgement for deletes and assignments.
type Message struct {
	Message string `json:"message"`
}

// BatchDeleteResult reports a multi-project delete. The server answers
// 206 with FailedDeletions set when some ids were not found.
type BatchDeleteResult struct {
	DeletedCount    int      `json:"deleted_count"`
	FailedDeletions []string `json:"failed_deletions,omitempty"`
	Message         string   `json:"message"`
}

// ProjectExport is the server's full project dump. Projects is kept
// verbatim so an export round-trips every server field.
type ProjectExport struct {
	Projects   json.RawMessage `json:"projects"`
	ExportedAt string          `json:"exported_at"`
	Count      int             `json:"count"`
}

// StageTransition is the result of moving a project between stages.
// Success false is a business rejection, not a failure.
type StageTransition struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Project *ProjectSnapshot `json:"project,omitempty"`
}

// Object is a server-defined result payload.
type Object map[string]any

// ID returns the "id" field as a string when present.
func (o Object) ID() string {
	if o == nil {
		return ""
	}
	switch v := o["id"].(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

// TaskStatus is a task lifecycle value accepted by the update endpoint.
type TaskStatus string

// Task status values.
const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
)

// ParseTaskStatus validates a task status name.
func ParseTaskStatus(value string) (TaskStatus, error) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case TaskTodo, TaskInProgress, TaskCompleted, TaskBlocked:
		return status, nil
	default:
		return "", fmt.Errorf("invalid task status %q (expected todo|in_progress|completed|blocked)", value)
	}
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type taskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color,omitempty"`
}

// assignRequest sends a null category_id to clear the assignment.
type assignRequest struct {
	CategoryID *string `json:"category_id"`
}

type batchDeleteRequest struct {
	ProjectIDs []string `json:"project_ids"`
}

type statusRequest struct {
	Status TaskStatus `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}
