package ui

import (
	"pmconsole/internal/api"
	"pmconsole/internal/location"
	"pmconsole/internal/view"
)

// Navigate moves the state to the screen named by path.
func Navigate(state State, path string) State {
	if projectID, ok := location.ProjectID(path); ok && location.IsProjectDetail(path) {
		if state.Screen != ScreenProject || state.ProjectID != projectID {
			state.Project = emptyProject(projectID)
			state.Loaded = false
		}
		state.Screen = ScreenProject
		state.ProjectID = projectID
		return state
	}
	state.Screen = ScreenProjects
	state.ProjectID = ""
	state.Loaded = false
	return state
}

// ReduceProjects applies a project list result. A failure keeps the
// previous list.
func ReduceProjects(state State, msg projectsLoadedMsg) State {
	if msg.err != nil {
		state.LastError = msg.err.Error()
		return state
	}
	state.Projects = msg.projects
	state.Summary = msg.summary
	state.LastError = ""
	return state
}

// ReduceRefresh applies a detail refresh and reports whether it was used.
// Failed or skipped refreshes keep the previous values, as do results for
// a project other than the one on screen. Results for the open project are
// applied in arrival order.
func ReduceRefresh(state State, msg projectRefreshedMsg) (State, bool) {
	if !msg.ok || state.Screen != ScreenProject || msg.view.ProjectID != state.ProjectID {
		return state, false
	}
	state.Project = msg.view
	state.Loaded = true
	return state, true
}

// nextStatus returns the status that follows current in the cycle
// todo, in_progress, completed, blocked.
func nextStatus(current string) api.TaskStatus {
	switch api.TaskStatus(current) {
	case api.TaskTodo:
		return api.TaskInProgress
	case api.TaskInProgress:
		return api.TaskCompleted
	case api.TaskCompleted:
		return api.TaskBlocked
	default:
		return api.TaskTodo
	}
}

func emptyProject(projectID string) view.ProjectView {
	return view.ProjectView{ProjectID: projectID}
}
