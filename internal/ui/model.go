package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"pmconsole/internal/alert"
	"pmconsole/internal/api"
	"pmconsole/internal/busy"
	"pmconsole/internal/controller"
	"pmconsole/internal/location"
	"pmconsole/internal/poll"
	"pmconsole/internal/view"
)

// Options configures the UI model.
type Options struct {
	Controller   *controller.Controller
	Alerts       *alert.Stack
	Busy         busy.Indicator
	Panel        *view.Panel
	PollInterval time.Duration
	Tooltips     bool
	NoColor      bool
	Logger       *slog.Logger
}

// Model is the Bubble Tea model for the project console.
type Model struct {
	ctx       context.Context
	ctrl      *controller.Controller
	location  *location.Location
	alerts    *alert.Stack
	busy      busy.Indicator
	panel     *view.Panel
	logger    *slog.Logger
	keys      keyMap
	modalKeys modalKeyMap
	help      help.Model
	spinner   spinner.Model
	table     table.Model
	state     State
	modal     *Modal
	interval  time.Duration
	tooltips  bool
	noColor   bool
	width     int
	pollSeq   int
	scheduled map[int]bool
}

// NewModel builds a model around a controller. Alerts must be the sink the
// controller writes to.
func NewModel(ctx context.Context, opts Options) Model {
	if opts.Alerts == nil {
		opts.Alerts = alert.NewStack(alert.DefaultTTL, nil)
	}
	if opts.Busy == nil {
		opts.Busy = busy.New(busy.ModeCounted)
	}
	if opts.Panel == nil {
		opts.Panel = &view.Panel{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	t := table.New(
		table.WithColumns(projectColumns(80)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(8),
		table.WithKeyMap(tableKeyMap()),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		location:  opts.Controller.Location(),
		alerts:    opts.Alerts,
		busy:      opts.Busy,
		panel:     opts.Panel,
		logger:    opts.Logger,
		keys:      defaultKeyMap(),
		modalKeys: defaultModalKeyMap(),
		help:      help.New(),
		spinner:   spin,
		table:     t,
		interval:  poll.Schedule{Interval: opts.PollInterval}.Period(),
		tooltips:  opts.Tooltips,
		noColor:   opts.NoColor,
		width:     80,
		scheduled: map[int]bool{},
	}
	m.state = Navigate(State{}, m.location.Path())
	return m
}

// State returns the current screen state.
func (m Model) State() State {
	return m.state
}

// Modal returns the open dialog or nil.
func (m Model) Modal() *Modal {
	return m.modal
}

// Init loads the starting screen and starts the poll on detail routes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if poll.ShouldStart(m.location.Path()) {
		cmds = append(cmds, m.refreshCmd(), pollTick(m.pollSeq, m.interval))
	} else {
		cmds = append(cmds, m.loadProjectsCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles input, command results and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, next.scheduleAlertExpiry())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.help.Width = typed.Width
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-16, 4))
		m.syncTable()
		return m, nil
	case tea.KeyMsg:
		if m.modal != nil {
			return m.updateModal(typed)
		}
		return m.updateKeys(typed)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case projectsLoadedMsg:
		m.state = ReduceProjects(m.state, typed)
		m.syncTable()
		return m, nil
	case projectRefreshedMsg:
		return m.handleRefresh(typed), nil
	case actionDoneMsg:
		return m.handleActionDone(typed)
	case pollTickMsg:
		refresh, next := m.handlePollTick(typed)
		return m, tea.Batch(refresh, next)
	case alertExpiredMsg:
		m.alerts.Dismiss(typed.id)
		delete(m.scheduled, typed.id)
		return m, nil
	}
	if m.modal != nil {
		return m, m.modal.update(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	keys := m.keys.forScreen(m.state.Screen)
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.Dismiss):
		m.alerts.DismissFirst()
		return m, nil
	case key.Matches(msg, keys.NewProject):
		m.modal = newCreateProjectModal()
		return m, nil
	case key.Matches(msg, keys.AddTask):
		m.modal = newAddTaskModal(m.state.ProjectID)
		return m, nil
	case key.Matches(msg, keys.Advance):
		return m, m.actionCmd(actionAdvanceStage, m.state.ProjectID, func(ctx context.Context) error {
			_, err := m.ctrl.AdvanceStage(ctx, m.state.ProjectID)
			return err
		})
	case key.Matches(msg, keys.Previous):
		return m, m.actionCmd(actionPreviousStage, m.state.ProjectID, func(ctx context.Context) error {
			_, err := m.ctrl.PreviousStage(ctx, m.state.ProjectID)
			return err
		})
	case key.Matches(msg, keys.Complete):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		return m, m.actionCmd(actionCompleteTask, m.state.ProjectID, func(ctx context.Context) error {
			_, err := m.ctrl.CompleteTask(ctx, task.ID)
			return err
		})
	case key.Matches(msg, keys.Status):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		status := string(nextStatus(task.Status))
		return m, m.actionCmd(actionSetStatus, m.state.ProjectID, func(ctx context.Context) error {
			_, err := m.ctrl.SetTaskStatus(ctx, task.ID, status)
			return err
		})
	case key.Matches(msg, keys.Refresh):
		if m.state.Screen == ScreenProject {
			return m, m.refreshCmd()
		}
		return m, m.loadProjectsCmd()
	case key.Matches(msg, keys.Open):
		project, ok := m.selectedProject()
		if !ok {
			return m, nil
		}
		return m.navigate(location.ProjectPath(project.ID))
	case key.Matches(msg, keys.Back):
		return m.navigate("/projects")
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateModal(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.modalKeys.Submit):
		return m.submitModal()
	case key.Matches(msg, m.modalKeys.Close):
		m.modal = nil
		return m, nil
	case key.Matches(msg, m.modalKeys.Next):
		return m, m.modal.next()
	case key.Matches(msg, m.modalKeys.Prev):
		return m, m.modal.prev()
	}
	return m, m.modal.update(msg)
}

// submitModal validates the open form and dispatches it. An invalid form
// stays open with its blank required fields marked.
func (m Model) submitModal() (Model, tea.Cmd) {
	modal := m.modal
	f := modal.Form()
	if !m.ctrl.ValidateForm(f) {
		return m, modal.focusFirstInvalid()
	}
	name, description := f.Value("name"), f.Value("description")
	switch modal.kind {
	case modalAddTask:
		assignee := f.Value("assignee")
		return m, m.actionCmd(actionAddTask, modal.projectID, func(ctx context.Context) error {
			_, err := m.ctrl.AddTask(ctx, modal.projectID, name, description, assignee)
			return err
		})
	default:
		return m, m.actionCmd(actionCreateProject, "", func(ctx context.Context) error {
			_, err := m.ctrl.CreateProject(ctx, name, description)
			return err
		})
	}
}

// handleActionDone closes the dialog that produced a successful action and
// reloads the current screen. Failed actions leave the dialog open.
func (m Model) handleActionDone(msg actionDoneMsg) (Model, tea.Cmd) {
	if msg.err != nil {
		return m, nil
	}
	if m.modal != nil && modalMatches(m.modal.kind, msg.kind) {
		m.modal = nil
	}
	if m.state.Screen == ScreenProject {
		return m, m.refreshCmd()
	}
	return m, m.loadProjectsCmd()
}

func modalMatches(kind modalKind, action actionKind) bool {
	switch kind {
	case modalCreateProject:
		return action == actionCreateProject
	case modalAddTask:
		return action == actionAddTask
	}
	return false
}

// handlePollTick returns the refresh to run for this tick, if any, and the
// next tick. A tick that lands while a modal is open is skipped.
func (m Model) handlePollTick(msg pollTickMsg) (refresh tea.Cmd, next tea.Cmd) {
	if msg.seq != m.pollSeq || m.state.Screen != ScreenProject {
		return nil, nil
	}
	schedule := poll.Schedule{Interval: m.interval, Blocked: m.modalOpen}
	next = pollTick(m.pollSeq, schedule.Period())
	if !schedule.ShouldRun() {
		m.logger.Debug("poll tick skipped", "reason", "modal open", "project_id", m.state.ProjectID)
		return nil, next
	}
	return m.refreshCmd(), next
}

// handleRefresh applies a refresh for the open project. The controller
// writes every refresh to the panel before the result arrives here, so a
// dropped result puts the panel back to what the screen shows.
func (m Model) handleRefresh(msg projectRefreshedMsg) Model {
	state, applied := ReduceRefresh(m.state, msg)
	if !applied {
		if msg.ok {
			m.logger.Debug("refresh dropped", "project_id", msg.view.ProjectID, "current", m.state.ProjectID)
			m.restorePanel()
		}
		return m
	}
	m.state = state
	view.Apply(m.panel, m.state.Project)
	m.syncTable()
	return m
}

func (m Model) restorePanel() {
	if m.state.Screen == ScreenProject && m.state.Loaded {
		view.Apply(m.panel, m.state.Project)
		return
	}
	m.panel.Reset()
}

func (m Model) modalOpen() bool {
	return m.modal != nil
}

// navigate changes the route. Entering a detail route starts a fresh poll;
// ticks from the previous poll are ignored.
func (m Model) navigate(path string) (Model, tea.Cmd) {
	m.location.Navigate(path)
	m.state = Navigate(m.state, path)
	m.pollSeq++
	m.panel.Reset()
	m.table.SetCursor(0)
	m.syncTable()
	if poll.ShouldStart(path) {
		return m, tea.Batch(m.refreshCmd(), pollTick(m.pollSeq, m.interval))
	}
	return m, m.loadProjectsCmd()
}

// scheduleAlertExpiry starts a timer for every alert not yet tracked.
func (m Model) scheduleAlertExpiry() tea.Cmd {
	var cmds []tea.Cmd
	ttl := m.alerts.TTL()
	now := time.Now()
	for _, entry := range m.alerts.Alerts() {
		if m.scheduled[entry.ID] {
			continue
		}
		m.scheduled[entry.ID] = true
		remaining := max(ttl-now.Sub(entry.CreatedAt), 0)
		cmds = append(cmds, expireAlert(entry.ID, remaining))
	}
	return tea.Batch(cmds...)
}

func (m Model) selectedTask() (view.TaskRow, bool) {
	if m.state.Screen != ScreenProject {
		return view.TaskRow{}, false
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.state.Project.Tasks) {
		return view.TaskRow{}, false
	}
	return m.state.Project.Tasks[cursor], true
}

func (m Model) selectedProject() (api.ProjectSnapshot, bool) {
	if m.state.Screen != ScreenProjects {
		return api.ProjectSnapshot{}, false
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.state.Projects) || m.state.Projects[cursor].ID == "" {
		return api.ProjectSnapshot{}, false
	}
	return m.state.Projects[cursor], true
}

// syncTable replaces the table columns and rows for the current screen.
func (m *Model) syncTable() {
	if m.state.Screen == ScreenProject {
		m.table.SetRows(nil)
		m.table.SetColumns(taskColumns(m.width))
		m.table.SetRows(taskRows(m.state.Project.Tasks))
	} else {
		m.table.SetRows(nil)
		m.table.SetColumns(projectColumns(m.width))
		m.table.SetRows(projectRows(m.state.Projects))
	}
	rows := len(m.table.Rows())
	switch {
	case rows == 0:
	case m.table.Cursor() < 0:
		m.table.SetCursor(0)
	case m.table.Cursor() >= rows:
		m.table.SetCursor(rows - 1)
	}
}

func (m Model) refreshCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		v, ok := ctrl.RefreshProjectData(ctx)
		return projectRefreshedMsg{view: v, ok: ok}
	}
}

func (m Model) loadProjectsCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		projects, err := ctrl.ListProjects(ctx)
		if err != nil {
			return projectsLoadedMsg{err: err}
		}
		msg := projectsLoadedMsg{projects: projects}
		if summary, err := ctrl.FetchSummary(ctx); err == nil {
			msg.summary = &summary
		}
		return msg
	}
}

// actionCmd runs fn off the update loop. Nothing prevents the same action
// from being submitted again while it is in flight.
func (m Model) actionCmd(kind actionKind, projectID string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{kind: kind, projectID: projectID, err: fn(ctx)}
	}
}

func pollTick(seq int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return pollTickMsg{seq: seq} })
}

func expireAlert(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return alertExpiredMsg{id: id} })
}
