package ui

import (
	"pmconsole/internal/api"
	"pmconsole/internal/view"
)

// actionKind identifies a user action sent to the server.
type actionKind int

const (
	actionCreateProject actionKind = iota
	actionAddTask
	actionCompleteTask
	actionSetStatus
	actionAdvanceStage
	actionPreviousStage
)

// projectsLoadedMsg carries the project list and, when it could be read,
// the server-wide summary.
type projectsLoadedMsg struct {
	projects []api.ProjectSnapshot
	summary  *api.Summary
	err      error
}

// projectRefreshedMsg carries the result of a detail refresh. ok is false
// when the refresh was skipped or failed.
type projectRefreshedMsg struct {
	view view.ProjectView
	ok   bool
}

// actionDoneMsg reports a finished user action.
type actionDoneMsg struct {
	kind      actionKind
	projectID string
	err       error
}

// pollTickMsg fires the detail poll. Ticks from an older poll are dropped.
type pollTickMsg struct {
	seq int
}

// alertExpiredMsg removes an alert once its lifetime is over.
type alertExpiredMsg struct {
	id int
}
