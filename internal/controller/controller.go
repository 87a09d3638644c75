package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pmconsole/internal/alert"
	"pmconsole/internal/api"
	"pmconsole/internal/form"
	"pmconsole/internal/location"
	"pmconsole/internal/view"
)

// Recorder stores snapshots fetched by refreshes.
type Recorder interface {
	Record(ctx context.Context, projectID string, snap api.ProjectSnapshot) error
}

// Config wires dependencies for the controller.
type Config struct {
	Client   *api.Client
	Alerts   alert.Sink
	Location *location.Location
	Bindings view.Bindings
	Recorder Recorder
	Logger   *slog.Logger
}

// Controller bundles every user-facing operation of the client: project
// and task actions, refreshes, alerts and form validation.
type Controller struct {
	client   *api.Client
	alerts   alert.Sink
	location *location.Location
	bindings view.Bindings
	recorder Recorder
	logger   *slog.Logger
}

// New builds a controller. Client is required.
func New(cfg Config) *Controller {
	if cfg.Location == nil {
		cfg.Location = location.New("/")
	}
	if cfg.Alerts == nil {
		cfg.Alerts = alert.NewStack(alert.DefaultTTL, nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		client:   cfg.Client,
		alerts:   cfg.Alerts,
		location: cfg.Location,
		bindings: cfg.Bindings,
		recorder: cfg.Recorder,
		logger:   cfg.Logger,
	}
}

// Location returns the route the controller reads project ids from.
func (c *Controller) Location() *location.Location {
	return c.location
}

// ShowAlert raises a notification. The zero severity is informational.
func (c *Controller) ShowAlert(message string, severity alert.Severity) {
	c.alerts.Show(message, severity)
}

// ValidateForm marks blank required fields and reports whether the form is complete.
func (c *Controller) ValidateForm(f *form.Form) bool {
	return form.Validate(f)
}

// CreateProject creates a project and announces the outcome.
func (c *Controller) CreateProject(ctx context.Context, name, description string) (api.Object, error) {
	res, err := c.client.CreateProject(ctx, name, description)
	if err != nil {
		c.ShowAlert("Error creating project: "+err.Error(), alert.Danger)
		return nil, fmt.Errorf("create project: %w", err)
	}
	c.logger.Info("project created", "name", name, "id", res.ID())
	c.ShowAlert("Project \""+name+"\" created successfully!", alert.Success)
	return res, nil
}

// AddTask adds a task to a project's current stage.
func (c *Controller) AddTask(ctx context.Context, projectID, name, description, assignee string) (api.Object, error) {
	res, err := c.client.AddTask(ctx, projectID, name, description, assignee)
	if err != nil {
		c.ShowAlert("Error adding task: "+err.Error(), alert.Danger)
		return nil, fmt.Errorf("add task: %w", err)
	}
	c.logger.Info("task added", "project_id", projectID, "name", name, "id", res.ID())
	c.ShowAlert("Task \""+name+"\" added successfully!", alert.Success)
	return res, nil
}

// CompleteTask marks a task completed.
func (c *Controller) CompleteTask(ctx context.Context, taskID string) (api.Object, error) {
	res, err := c.client.CompleteTask(ctx, taskID)
	if err != nil {
		c.ShowAlert("Error completing task: "+err.Error(), alert.Danger)
		return nil, fmt.Errorf("complete task: %w", err)
	}
	c.logger.Info("task completed", "task_id", taskID)
	c.ShowAlert("Task completed successfully!", alert.Success)
	return res, nil
}

// SetTaskStatus changes a task's status.
func (c *Controller) SetTaskStatus(ctx context.Context, taskID, status string) (api.Object, error) {
	parsed, err := api.ParseTaskStatus(status)
	if err != nil {
		c.ShowAlert("Error updating task: "+err.Error(), alert.Danger)
		return nil, err
	}
	res, err := c.client.UpdateTaskStatus(ctx, taskID, parsed)
	if err != nil {
		c.ShowAlert("Error updating task: "+err.Error(), alert.Danger)
		return nil, fmt.Errorf("update task status: %w", err)
	}
	c.logger.Info("task status updated", "task_id", taskID, "status", string(parsed))
	c.ShowAlert("Task status set to "+strings.ReplaceAll(string(parsed), "_", " ")+".", alert.Success)
	return res, nil
}

// AdvanceStage moves a project to its next stage. A rejection by the
// server's rules is reported as a warning and is not an error.
func (c *Controller) AdvanceStage(ctx context.Context, projectID string) (api.StageTransition, error) {
	res, err := c.client.AdvanceStage(ctx, projectID)
	if err != nil {
		c.ShowAlert("Error advancing stage: "+err.Error(), alert.Danger)
		return api.StageTransition{}, fmt.Errorf("advance stage: %w", err)
	}
	c.announceTransition(projectID, res)
	return res, nil
}

// PreviousStage moves a project back one stage, with the same outcome
// rules as AdvanceStage.
func (c *Controller) PreviousStage(ctx context.Context, projectID string) (api.StageTransition, error) {
	res, err := c.client.PreviousStage(ctx, projectID)
	if err != nil {
		c.ShowAlert("Error reverting stage: "+err.Error(), alert.Danger)
		return api.StageTransition{}, fmt.Errorf("previous stage: %w", err)
	}
	c.announceTransition(projectID, res)
	return res, nil
}

func (c *Controller) announceTransition(projectID string, res api.StageTransition) {
	c.logger.Info("stage transition", "project_id", projectID, "success", res.Success, "message", res.Message)
	if res.Success {
		c.ShowAlert(res.Message, alert.Success)
		return
	}
	c.ShowAlert(res.Message, alert.Warning)
}

// ListProjects reads every project.
func (c *Controller) ListProjects(ctx context.Context) ([]api.ProjectSnapshot, error) {
	res, err := c.client.ListProjects(ctx)
	if err != nil {
		c.ShowAlert("Error loading projects: "+err.Error(), alert.Danger)
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return res, nil
}

// RefreshProjectData re-reads the project named by the current location
// and pushes the result to the bindings. It never raises an alert: a
// failure is logged and the view keeps its previous values. It reports
// whether the bindings were updated.
func (c *Controller) RefreshProjectData(ctx context.Context) (view.ProjectView, bool) {
	projectID, ok := location.ProjectID(c.location.Path())
	if !ok {
		return view.ProjectView{}, false
	}
	snap, err := c.client.FetchProject(ctx, projectID)
	if err != nil {
		c.logger.Warn("Failed to refresh project data", "project_id", projectID, "error", err.Error())
		return view.ProjectView{}, false
	}
	v := view.Build(projectID, snap)
	view.Apply(c.bindings, v)
	if c.recorder != nil {
		if err := c.recorder.Record(ctx, projectID, snap); err != nil {
			c.logger.Warn("record snapshot", "project_id", projectID, "error", err.Error())
		}
	}
	return v, true
}
