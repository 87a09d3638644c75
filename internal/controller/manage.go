package controller

import (
	"context"
	"errors"
	"fmt"

	"pmconsole/internal/alert"
	"pmconsole/internal/api"
	"pmconsole/internal/view"
)

// ErrNoChanges is returned by UpdateProject when no field is set.
var ErrNoChanges = errors.New("nothing to update")

// FetchSummary reads the totals across all projects.
func (c *Controller) FetchSummary(ctx context.Context) (api.Summary, error) {
	res, err := c.client.FetchSummary(ctx)
	if err != nil {
		c.ShowAlert("Error loading summary: "+err.Error(), alert.Danger)
		return api.Summary{}, fmt.Errorf("fetch summary: %w", err)
	}
	return res, nil
}

// UpdateProject changes a project's name, description, deadline or
// category. An empty or unparseable update is rejected before any request.
func (c *Controller) UpdateProject(ctx context.Context, projectID string, update api.ProjectUpdate) (api.ProjectSnapshot, error) {
	if update.Empty() {
		c.ShowAlert("Error updating project: "+ErrNoChanges.Error(), alert.Warning)
		return api.ProjectSnapshot{}, ErrNoChanges
	}
	if update.Deadline != nil && *update.Deadline != "" {
		if _, err := view.ParseDeadline(*update.Deadline); err != nil {
			c.ShowAlert("Error updating project: "+err.Error(), alert.Danger)
			return api.ProjectSnapshot{}, err
		}
	}
	res, err := c.client.UpdateProject(ctx, projectID, update)
	if err != nil {
		c.ShowAlert("Error updating project: "+err.Error(), alert.Danger)
		return api.ProjectSnapshot{}, fmt.Errorf("update project: %w", err)
	}
	name := res.Name
	if name == "" {
		name = projectID
	}
	c.logger.Info("project updated", "project_id", projectID)
	c.ShowAlert("Project \""+name+"\" updated successfully!", alert.Success)
	return res, nil
}

// DeleteProjects removes one or more projects. A single id uses the
// per-project route; several ids go in one batch call, and a partial
// batch is reported as a warning.
func (c *Controller) DeleteProjects(ctx context.Context, projectIDs ...string) (api.BatchDeleteResult, error) {
	switch len(projectIDs) {
	case 0:
		return api.BatchDeleteResult{}, errors.New("delete projects: no project ids")
	case 1:
		res, err := c.client.DeleteProject(ctx, projectIDs[0])
		if err != nil {
			c.ShowAlert("Error deleting project: "+err.Error(), alert.Danger)
			return api.BatchDeleteResult{}, fmt.Errorf("delete project: %w", err)
		}
		c.logger.Info("project deleted", "project_id", projectIDs[0])
		c.ShowAlert(messageOr(res.Message, "Project deleted successfully"), alert.Success)
		return api.BatchDeleteResult{DeletedCount: 1, Message: res.Message}, nil
	}
	res, err := c.client.BatchDeleteProjects(ctx, projectIDs)
	if err != nil {
		c.ShowAlert("Error deleting projects: "+err.Error(), alert.Danger)
		return api.BatchDeleteResult{}, fmt.Errorf("delete projects: %w", err)
	}
	c.logger.Info("projects deleted", "requested", len(projectIDs), "deleted", res.DeletedCount, "failed", len(res.FailedDeletions))
	if len(res.FailedDeletions) > 0 {
		c.ShowAlert(messageOr(res.Message, fmt.Sprintf("Deleted %d projects. Failed to delete %d projects.", res.DeletedCount, len(res.FailedDeletions))), alert.Warning)
		return res, nil
	}
	c.ShowAlert(messageOr(res.Message, fmt.Sprintf("Successfully deleted %d projects", res.DeletedCount)), alert.Success)
	return res, nil
}

// ListCategories reads every category.
func (c *Controller) ListCategories(ctx context.Context) ([]api.Category, error) {
	res, err := c.client.ListCategories(ctx)
	if err != nil {
		c.ShowAlert("Error loading categories: "+err.Error(), alert.Danger)
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return res, nil
}

// CreateCategory adds a category.
func (c *Controller) CreateCategory(ctx context.Context, name, description, color string) (api.Category, error) {
	res, err := c.client.CreateCategory(ctx, name, description, color)
	if err != nil {
		c.ShowAlert("Error creating category: "+err.Error(), alert.Danger)
		return api.Category{}, fmt.Errorf("create category: %w", err)
	}
	c.logger.Info("category created", "name", name, "id", res.ID)
	c.ShowAlert("Category \""+name+"\" created successfully!", alert.Success)
	return res, nil
}

// DeleteCategory removes a category.
func (c *Controller) DeleteCategory(ctx context.Context, categoryID string) error {
	res, err := c.client.DeleteCategory(ctx, categoryID)
	if err != nil {
		c.ShowAlert("Error deleting category: "+err.Error(), alert.Danger)
		return fmt.Errorf("delete category: %w", err)
	}
	c.logger.Info("category deleted", "category_id", categoryID)
	c.ShowAlert(messageOr(res.Message, "Category deleted successfully"), alert.Success)
	return nil
}

// AssignCategory puts a project in a category. An empty categoryID
// removes it from its category.
func (c *Controller) AssignCategory(ctx context.Context, projectID, categoryID string) error {
	res, err := c.client.AssignCategory(ctx, projectID, categoryID)
	if err != nil {
		c.ShowAlert("Error assigning category: "+err.Error(), alert.Danger)
		return fmt.Errorf("assign category: %w", err)
	}
	c.logger.Info("category assigned", "project_id", projectID, "category_id", categoryID)
	c.ShowAlert(messageOr(res.Message, "Category assigned successfully"), alert.Success)
	return nil
}

// ExportProjects downloads every project. Success is not announced so the
// export can be written to stdout.
func (c *Controller) ExportProjects(ctx context.Context) (api.ProjectExport, error) {
	res, err := c.client.ExportProjects(ctx)
	if err != nil {
		c.ShowAlert("Error exporting projects: "+err.Error(), alert.Danger)
		return api.ProjectExport{}, fmt.Errorf("export projects: %w", err)
	}
	c.logger.Info("projects exported", "count", res.Count)
	return res, nil
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
