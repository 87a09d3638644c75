package api

import (
	"context"
	"net/http"
	"net/url"
)

// CreateProject posts a new project.
func (c *Client) CreateProject(ctx context.Context, name, description string) (Object, error) {
	var res Object
	err := c.Call(ctx, http.MethodPost, "/api/create_project", projectRequest{Name: name, Description: description}, &res)
	return res, err
}

// AddTask posts a task to the project's current stage.
func (c *Client) AddTask(ctx context.Context, projectID, name, description, assignee string) (Object, error) {
	var res Object
	req := taskRequest{Name: name, Description: description, Assignee: assignee}
	err := c.Call(ctx, http.MethodPost, projectPath(projectID)+"/add_task", req, &res)
	return res, err
}

// CompleteTask marks a task completed.
func (c *Client) CompleteTask(ctx context.Context, taskID string) (Object, error) {
	var res Object
	err := c.Call(ctx, http.MethodPost, "/api/task/"+url.PathEscape(taskID)+"/complete", nil, &res)
	return res, err
}

// UpdateTaskStatus sets a task's status.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, status TaskStatus) (Object, error) {
	var res Object
	err := c.Call(ctx, http.MethodPost, "/api/task/"+url.PathEscape(taskID)+"/update", statusRequest{Status: status}, &res)
	return res, err
}

// AdvanceStage asks the server to move the project to its next stage.
func (c *Client) AdvanceStage(ctx context.Context, projectID string) (StageTransition, error) {
	var res StageTransition
	err := c.Call(ctx, http.MethodPost, projectPath(projectID)+"/next_stage", nil, &res)
	return res, err
}

// PreviousStage asks the server to move the project back one stage.
func (c *Client) PreviousStage(ctx context.Context, projectID string) (StageTransition, error) {
	var res StageTransition
	err := c.Call(ctx, http.MethodPost, projectPath(projectID)+"/previous_stage", nil, &res)
	return res, err
}

// FetchProject reads a project snapshot.
func (c *Client) FetchProject(ctx context.Context, projectID string) (ProjectSnapshot, error) {
	var res ProjectSnapshot
	err := c.Call(ctx, http.MethodGet, projectPath(projectID), nil, &res)
	return res, err
}

// ListProjects reads all project snapshots.
func (c *Client) ListProjects(ctx context.Context) ([]ProjectSnapshot, error) {
	var res []ProjectSnapshot
	err := c.Call(ctx, http.MethodGet, "/api/projects", nil, &res)
	return res, err
}

// UpdateProject changes the fields set in update and returns the project.
func (c *Client) UpdateProject(ctx context.Context, projectID string, update ProjectUpdate) (ProjectSnapshot, error) {
	var res ProjectSnapshot
	err := c.Call(ctx, http.MethodPost, projectPath(projectID)+"/update", update, &res)
	return res, err
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) (Message, error) {
	var res Message
	err := c.Call(ctx, http.MethodDelete, projectPath(projectID)+"/delete", nil, &res)
	return res, err
}

// BatchDeleteProjects removes several projects in one call.
func (c *Client) BatchDeleteProjects(ctx context.Context, projectIDs []string) (BatchDeleteResult, error) {
	var res BatchDeleteResult
	err := c.Call(ctx, http.MethodPost, "/api/projects/batch_delete", batchDeleteRequest{ProjectIDs: projectIDs}, &res)
	return res, err
}

// FetchSummary reads the totals across all projects.
func (c *Client) FetchSummary(ctx context.Context) (Summary, error) {
	var res Summary
	err := c.Call(ctx, http.MethodGet, "/api/summary", nil, &res)
	return res, err
}

// ListCategories reads every category, sorted by name on the server.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var res []Category
	err := c.Call(ctx, http.MethodGet, "/api/categories", nil, &res)
	return res, err
}

// CreateCategory adds a category. An empty color takes the server default.
func (c *Client) CreateCategory(ctx context.Context, name, description, color string) (Category, error) {
	var res Category
	err := c.Call(ctx, http.MethodPost, "/api/categories", categoryRequest{Name: name, Description: description, Color: color}, &res)
	return res, err
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, categoryID string) (Message, error) {
	var res Message
	err := c.Call(ctx, http.MethodDelete, "/api/category/"+url.PathEscape(categoryID), nil, &res)
	return res, err
}

// AssignCategory moves a project into a category. An empty categoryID
// clears the assignment.
func (c *Client) AssignCategory(ctx context.Context, projectID, categoryID string) (Message, error) {
	var req assignRequest
	if categoryID != "" {
		req.CategoryID = &categoryID
	}
	var res Message
	err := c.Call(ctx, http.MethodPost, projectPath(projectID)+"/assign_category", req, &res)
	return res, err
}

// ExportProjects downloads every project.
func (c *Client) ExportProjects(ctx context.Context) (ProjectExport, error) {
	var res ProjectExport
	err := c.Call(ctx, http.MethodGet, "/api/export/projects", nil, &res)
	return res, err
}

func projectPath(projectID string) string {
	return "/api/project/" + url.PathEscape(projectID)
}
