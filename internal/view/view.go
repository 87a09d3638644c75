package view

import (
	"strconv"
	"sync"
	"time"

	"pmconsole/internal/api"
)

// Bar is one progress indicator.
type Bar struct {
	Name    string
	Percent float64
	Label   string
}

// ProjectView is the view-model derived from a project snapshot.
type ProjectView struct {
	ProjectID       string
	Name            string
	Overall         Bar
	Stages          []Bar
	StageStatuses   []string
	CompletedStages int
	TotalTasks      int
	Tasks           []TaskRow
	Completed       bool
	Deadline        Deadline
}

// TaskRow is one task listed under the project's stages.
type TaskRow struct {
	ID       string
	Name     string
	Stage    string
	Assignee string
	Status   string
}

// Bindings receives view-model updates. Each method targets one named
// view region, so updates never depend on element position.
type Bindings interface {
	SetProgress(overall Bar, stages []Bar)
	SetStageInfo(completedStages, totalTasks int)
}

// FormatPercent renders a [0,1] fraction as a one-decimal percentage.
func FormatPercent(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 1, 64) + "%"
}

// NewBar builds a bar from a [0,1] fraction.
func NewBar(name string, fraction float64) Bar {
	return Bar{Name: name, Percent: fraction * 100, Label: FormatPercent(fraction)}
}

// Build maps a snapshot onto the view-model at the current time.
func Build(projectID string, snap api.ProjectSnapshot) ProjectView {
	return BuildAt(projectID, snap, time.Now())
}

// BuildAt maps a snapshot onto the view-model, evaluating the deadline at
// now. A project counts as completed when all of its stages are.
func BuildAt(projectID string, snap api.ProjectSnapshot, now time.Time) ProjectView {
	v := ProjectView{
		ProjectID: projectID,
		Name:      snap.Name,
		Overall:   NewBar("overall", snap.Progress),
		Stages:    make([]Bar, 0, len(snap.Stages)),
	}
	for i, stage := range snap.Stages {
		name := stage.Name
		if name == "" {
			name = "Stage " + strconv.Itoa(i+1)
		}
		v.Stages = append(v.Stages, NewBar(name, stage.Progress))
		v.StageStatuses = append(v.StageStatuses, stage.Status)
		if stage.Status == api.StageCompleted {
			v.CompletedStages++
		}
		v.TotalTasks += stage.TaskCount
		for _, task := range stage.Tasks {
			v.Tasks = append(v.Tasks, TaskRow{
				ID:       task.ID,
				Name:     task.Name,
				Stage:    name,
				Assignee: task.Assignee,
				Status:   task.Status,
			})
		}
	}
	v.Completed = v.CompletedStages == len(snap.Stages)
	v.Deadline = DeadlineAt(snap.Deadline, v.Completed, now)
	return v
}

// Apply pushes a view-model to its bindings.
func Apply(b Bindings, v ProjectView) {
	if b == nil {
		return
	}
	b.SetProgress(v.Overall, v.Stages)
	b.SetStageInfo(v.CompletedStages, v.TotalTasks)
}

// Panel is a Bindings implementation that keeps the latest values for
// rendering. It is safe for concurrent use.
type Panel struct {
	mu        sync.RWMutex
	overall   Bar
	stages    []Bar
	completed int
	tasks     int
	loaded    bool
}

// SetProgress implements Bindings.
func (p *Panel) SetProgress(overall Bar, stages []Bar) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overall = overall
	p.stages = append([]Bar(nil), stages...)
	p.loaded = true
}

// SetStageInfo implements Bindings.
func (p *Panel) SetStageInfo(completedStages, totalTasks int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = completedStages
	p.tasks = totalTasks
	p.loaded = true
}

// Reset clears the panel, e.g. after navigating away.
func (p *Panel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.overall = Bar{}
	p.stages = nil
	p.completed = 0
	p.tasks = 0
	p.loaded = false
}

// Snapshot returns the current panel values.
func (p *Panel) Snapshot() (overall Bar, stages []Bar, completed, tasks int, loaded bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.overall, append([]Bar(nil), p.stages...), p.completed, p.tasks, p.loaded
}
