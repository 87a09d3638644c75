package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pmconsole <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-16s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"pmconsole <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .pmconsole/config.yml", []string{
		"pmconsole init [--config <path>]",
	}, runInit),
	command("validate", "Validate .pmconsole/config.yml", []string{
		"pmconsole validate [--config <path>] [--base-url <url>] [--journal <path>] [--ping]",
	}, runValidate),
	command("tui", "Open the interactive console", []string{
		"pmconsole tui [project-id] [--ui auto|live|plain]",
	}, runTUI),
	command("projects", "List projects", []string{
		"pmconsole projects",
	}, runProjects),
	command("show", "Print a project's progress", []string{
		"pmconsole show <project-id>",
	}, runShow),
	command("watch", "Poll a project and print progress updates", []string{
		"pmconsole watch <project-id> [--interval <duration>]",
	}, runWatch),
	command("history", "List recorded snapshots of a project", []string{
		"pmconsole history <project-id> [--limit <n>]",
	}, runHistory),
	command("create-project", "Create a project", []string{
		"pmconsole create-project --name <name> [--description <text>]",
	}, runCreateProject),
	command("add-task", "Add a task to a project's current stage", []string{
		"pmconsole add-task <project-id> --name <name> [--description <text>] [--assignee <name>]",
	}, runAddTask),
	command("complete-task", "Mark a task completed", []string{
		"pmconsole complete-task <task-id>",
	}, runCompleteTask),
	command("set-task-status", "Change a task's status", []string{
		"pmconsole set-task-status <task-id> <todo|in_progress|completed|blocked>",
	}, runSetTaskStatus),
	command("advance-stage", "Move a project to its next stage", []string{
		"pmconsole advance-stage <project-id>",
	}, runAdvanceStage),
	command("previous-stage", "Move a project back one stage", []string{
		"pmconsole previous-stage <project-id>",
	}, runPreviousStage),
	command("summary", "Print totals across all projects", []string{
		"pmconsole summary",
	}, runSummary),
	command("update-project", "Change a project's name, description, deadline or category", []string{
		"pmconsole update-project <project-id> [--name <name>] [--description <text>] [--deadline <date>] [--category <id>]",
	}, runUpdateProject),
	command("delete-project", "Delete one or more projects", []string{
		"pmconsole delete-project <project-id>... --yes",
	}, runDeleteProject),
	command("categories", "List categories", []string{
		"pmconsole categories",
	}, runCategories),
	command("create-category", "Create a category", []string{
		"pmconsole create-category --name <name> [--description <text>] [--color <#rrggbb>]",
	}, runCreateCategory),
	command("delete-category", "Delete a category", []string{
		"pmconsole delete-category <category-id> --yes",
	}, runDeleteCategory),
	command("assign-category", "Put a project in a category, or clear it", []string{
		"pmconsole assign-category <project-id> [category-id]",
	}, runAssignCategory),
	command("export", "Export every project as JSON", []string{
		"pmconsole export [--output <path>]",
	}, runExport),
}
