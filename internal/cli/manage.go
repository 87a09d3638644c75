package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"pmconsole/internal/api"
	"pmconsole/internal/form"
	"pmconsole/internal/view"
)

var runSummary = actionCommand(0, 0, func(*flag.FlagSet) actionFunc {
	return func(ctx context.Context, a *app, _ []string, stdout, _ io.Writer) error {
		s, err := a.ctrl.FetchSummary(ctx)
		if err != nil {
			return err
		}
		t := newTable(a.cfg.UI.NoColor).Headers("", "Total", "Completed")
		t.Row("Projects", strconv.Itoa(s.TotalProjects), strconv.Itoa(s.CompletedProjects))
		t.Row("Stages", strconv.Itoa(s.TotalStages), strconv.Itoa(s.CompletedStages))
		t.Row("Tasks", strconv.Itoa(s.TotalTasks), strconv.Itoa(s.CompletedTasks))
		fmt.Fprintln(stdout, t.Render())
		fmt.Fprintf(stdout, "Active projects: %d   Overall progress: %s\n", s.ActiveProjects, view.FormatPercent(s.OverallProgress))
		return nil
	}
})

var runUpdateProject = actionCommand(1, 1, func(flags *flag.FlagSet) actionFunc {
	name := flags.String("name", "", "New project name")
	description := flags.String("description", "", "New project description")
	deadline := flags.String("deadline", "", "Deadline as YYYY-MM-DD or an ISO 8601 timestamp")
	category := flags.String("category", "", "Category id")
	return func(ctx context.Context, a *app, args []string, stdout, _ io.Writer) error {
		var update api.ProjectUpdate
		flags.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				update.Name = name
			case "description":
				update.Description = description
			case "deadline":
				update.Deadline = deadline
			case "category":
				update.CategoryID = category
			}
		})
		if update.Empty() {
			return errUsage{message: "nothing to update: pass at least one of --name, --description, --deadline, --category"}
		}
		if update.Name != nil {
			f := form.New("update-project", form.Field{Name: "name", Value: *name, Required: true})
			if err := requireFields(a, f); err != nil {
				return err
			}
		}
		project, err := a.ctrl.UpdateProject(ctx, args[0], update)
		if err != nil {
			return err
		}
		if text := view.FormatDeadline(view.Build(args[0], project).Deadline); text != "" {
			fmt.Fprintln(stdout, text)
		}
		return nil
	}
})

var runDeleteProject = actionCommand(1, math.MaxInt, func(flags *flag.FlagSet) actionFunc {
	yes := flags.Bool("yes", false, "Confirm the deletion")
	return func(ctx context.Context, a *app, args []string, stdout, _ io.Writer) error {
		if !*yes {
			return errUsage{message: "refusing to delete without --yes"}
		}
		res, err := a.ctrl.DeleteProjects(ctx, args...)
		if err != nil {
			return err
		}
		for _, id := range res.FailedDeletions {
			fmt.Fprintf(stdout, "Not deleted: %s\n", id)
		}
		if len(res.FailedDeletions) > 0 {
			return fmt.Errorf("delete projects: %d not deleted", len(res.FailedDeletions))
		}
		return nil
	}
})

var runCategories = actionCommand(0, 0, func(*flag.FlagSet) actionFunc {
	return func(ctx context.Context, a *app, _ []string, stdout, _ io.Writer) error {
		categories, err := a.ctrl.ListCategories(ctx)
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			fmt.Fprintln(stdout, "No categories.")
			return nil
		}
		t := newTable(a.cfg.UI.NoColor).Headers("ID", "Name", "Color", "Description")
		for _, category := range categories {
			t.Row(category.ID, category.Name, category.Color, category.Description)
		}
		fmt.Fprintln(stdout, t.Render())
		return nil
	}
})

var runCreateCategory = actionCommand(0, 0, func(flags *flag.FlagSet) actionFunc {
	name := flags.String("name", "", "Category name")
	description := flags.String("description", "", "Category description")
	color := flags.String("color", "", "Hex color such as #007bff (default: server default)")
	return func(ctx context.Context, a *app, _ []string, stdout, _ io.Writer) error {
		f := form.New("create-category",
			form.Field{Name: "name", Value: *name, Required: true},
			form.Field{Name: "description", Value: *description},
			form.Field{Name: "color", Value: *color},
		)
		if err := requireFields(a, f); err != nil {
			return err
		}
		category, err := a.ctrl.CreateCategory(ctx, *name, *description, *color)
		if err != nil {
			return err
		}
		if category.ID != "" {
			fmt.Fprintf(stdout, "Category id: %s\n", category.ID)
		}
		return nil
	}
})

var runDeleteCategory = actionCommand(1, 1, func(flags *flag.FlagSet) actionFunc {
	yes := flags.Bool("yes", false, "Confirm the deletion")
	return func(ctx context.Context, a *app, args []string, _, _ io.Writer) error {
		if !*yes {
			return errUsage{message: "refusing to delete without --yes"}
		}
		return a.ctrl.DeleteCategory(ctx, args[0])
	}
})

var runAssignCategory = actionCommand(1, 2, func(*flag.FlagSet) actionFunc {
	return func(ctx context.Context, a *app, args []string, _, _ io.Writer) error {
		categoryID := ""
		if len(args) == 2 {
			categoryID = args[1]
		}
		return a.ctrl.AssignCategory(ctx, args[0], categoryID)
	}
})

var runExport = actionCommand(0, 0, func(flags *flag.FlagSet) actionFunc {
	output := flags.String("output", "", "Write the export to this file instead of stdout")
	return func(ctx context.Context, a *app, _ []string, stdout, stderr io.Writer) error {
		export, err := a.ctrl.ExportProjects(ctx)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "export failed: %v\n", err)
			return err
		}
		data = append(data, '\n')
		if *output == "" {
			_, err = stdout.Write(data)
			return err
		}
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			fmt.Fprintf(stderr, "export failed: %v\n", err)
			return err
		}
		fmt.Fprintf(stdout, "Exported %d projects to %s\n", export.Count, *output)
		return nil
	}
})
