package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"pmconsole/internal/api"
	"pmconsole/internal/location"
	"pmconsole/internal/poll"
	"pmconsole/internal/view"
)

var runProjects = actionCommand(0, 0, func(*flag.FlagSet) actionFunc {
	return func(ctx context.Context, a *app, _ []string, stdout, _ io.Writer) error {
		projects, err := a.ctrl.ListProjects(ctx)
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Fprintln(stdout, "No projects.")
			return nil
		}
		fmt.Fprintln(stdout, renderProjectTable(projects, a.cfg.UI.NoColor))
		return nil
	}
})

var runShow = actionCommand(1, 1, func(*flag.FlagSet) actionFunc {
	return func(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error {
		panel := &view.Panel{}
		v, ok := refreshInto(ctx, a, args[0], panel)
		if !ok {
			fmt.Fprintf(stderr, "Could not load project %s\n", args[0])
			return fmt.Errorf("show %s: refresh failed", args[0])
		}
		if v.Name != "" {
			fmt.Fprintln(stdout, v.Name)
		}
		if deadline := view.FormatDeadline(v.Deadline); deadline != "" {
			fmt.Fprintln(stdout, deadline)
		}
		fmt.Fprintln(stdout, view.RenderPanel(panel, 72, a.cfg.UI.NoColor))
		for _, task := range v.Tasks {
			fmt.Fprintf(stdout, "  [%s] %s (%s) %s\n", task.Status, task.Name, task.Stage, task.Assignee)
		}
		return nil
	}
})

var runWatch = actionCommand(1, 1, func(flags *flag.FlagSet) actionFunc {
	interval := flags.Duration("interval", 0, "Poll interval (default: poll_interval from config)")
	return func(ctx context.Context, a *app, args []string, stdout, _ io.Writer) error {
		projectID := args[0]
		every := *interval
		if every <= 0 {
			every = a.cfg.PollInterval
		}
		printLine := func(ctx context.Context) {
			if v, ok := refreshInto(ctx, a, projectID, nil); ok {
				fmt.Fprintf(stdout, "%s %s\n", time.Now().Format(time.TimeOnly), view.RenderLine(v))
			}
		}
		printLine(ctx)
		poller := poll.New(poll.Schedule{Interval: every}, printLine, a.logger.Logger)
		return poller.Run(ctx)
	}
})

var runHistory = actionCommand(1, 1, func(flags *flag.FlagSet) actionFunc {
	limit := flags.Int("limit", 20, "Maximum entries to print (0 for all)")
	return func(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error {
		if a.journal == nil {
			return errUsage{message: "history needs a journal: set journal_path in the config or pass --journal"}
		}
		entries, err := a.journal.History(ctx, args[0], *limit)
		if err != nil {
			fmt.Fprintf(stderr, "history failed: %v\n", err)
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(stdout, "No snapshots recorded for project %s.\n", args[0])
			return nil
		}
		t := newTable(a.cfg.UI.NoColor).Headers("Fetched", "Progress", "Completed stages", "Tasks")
		for _, entry := range entries {
			t.Row(
				entry.FetchedAt.Local().Format(time.DateTime),
				view.FormatPercent(entry.Progress),
				strconv.Itoa(entry.CompletedStages),
				strconv.Itoa(entry.TotalTasks),
			)
		}
		fmt.Fprintln(stdout, t.Render())
		return nil
	}
})

// refreshInto points the controller at a project and refreshes it. Bindings
// default to nothing when panel is nil.
func refreshInto(ctx context.Context, a *app, projectID string, panel *view.Panel) (view.ProjectView, bool) {
	a.ctrl.Location().Navigate(location.ProjectPath(projectID))
	v, ok := a.ctrl.RefreshProjectData(ctx)
	if ok && panel != nil {
		view.Apply(panel, v)
	}
	return v, ok
}

func renderProjectTable(projects []api.ProjectSnapshot, noColor bool) string {
	t := newTable(noColor).Headers("ID", "Name", "Progress", "Stages", "Deadline")
	for _, project := range projects {
		v := view.Build(project.ID, project)
		due := project.Deadline
		if v.Deadline.Overdue {
			due += " (overdue)"
		}
		t.Row(
			project.ID,
			project.Name,
			v.Overall.Label,
			strconv.Itoa(v.CompletedStages)+"/"+strconv.Itoa(len(v.Stages)),
			due,
		)
	}
	return t.Render()
}

func newTable(noColor bool) *table.Table {
	t := table.New().Border(lipgloss.NormalBorder())
	if noColor {
		return t
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return t.
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}
