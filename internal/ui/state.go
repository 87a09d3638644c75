package ui

import (
	"pmconsole/internal/api"
	"pmconsole/internal/view"
)

// Screen identifies the active route.
type Screen int

const (
	// ScreenProjects lists every project.
	ScreenProjects Screen = iota
	// ScreenProject shows one project's progress and tasks.
	ScreenProject
)

// State captures what the UI shows outside of widgets.
type State struct {
	Screen    Screen
	ProjectID string
	Projects  []api.ProjectSnapshot
	Summary   *api.Summary
	Project   view.ProjectView
	Loaded    bool
	LastError string
}
