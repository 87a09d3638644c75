package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"pmconsole/internal/alert"
	"pmconsole/internal/form"
)

// actionFunc performs one controller operation. Failures have already been
// reported through the alert sink when it returns an error.
type actionFunc func(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error

// errUsage marks an action error caused by bad input rather than the server.
type errUsage struct {
	message string
}

func (e errUsage) Error() string {
	return e.message
}

// actionCommand builds a command that runs one controller operation with
// alerts printed to the terminal.
func actionCommand(minArgs, maxArgs int, define func(flags *flag.FlagSet) actionFunc) func(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
		return func(args []string, stdout, stderr io.Writer) int {
			if wantsHelp(args) {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
			common := registerCommonFlags(flags)
			act := define(flags)
			positional, code, ok := parseCommand(cmd, flags, args, minArgs, maxArgs, stdout, stderr)
			if !ok {
				return code
			}
			cfg, err := common.load()
			if err != nil {
				fmt.Fprintf(stderr, "Config error:\n%v\n", err)
				return ExitError
			}

			ctx, stop := signalContext()
			defer stop()
			a, err := openApp(ctx, cfg, appOptions{alerts: newTerminalSink(stdout, stderr, cfg.UI.NoColor), path: "/"})
			if err != nil {
				fmt.Fprintf(stderr, "%s failed: %v\n", cmd.Name, err)
				return ExitError
			}
			defer a.Close()

			if err := act(ctx, a, positional, stdout, stderr); err != nil {
				if usage, ok := err.(errUsage); ok {
					fmt.Fprintln(stderr, usage.message)
					printCommandUsage(cmd, stderr)
					return ExitUsage
				}
				return ExitError
			}
			return ExitOK
		}
	}
}

// terminalSink prints danger alerts to stderr and the rest to stdout.
type terminalSink struct {
	out *alert.WriterSink
	err *alert.WriterSink
}

func newTerminalSink(stdout, stderr io.Writer, noColor bool) *terminalSink {
	return &terminalSink{
		out: alert.NewWriterSink(stdout, noColor),
		err: alert.NewWriterSink(stderr, noColor),
	}
}

// Show implements alert.Sink.
func (s *terminalSink) Show(message string, severity alert.Severity) {
	if severity == alert.Danger {
		s.err.Show(message, severity)
		return
	}
	s.out.Show(message, severity)
}

// requireFields validates a form built from flag values.
func requireFields(a *app, f *form.Form) error {
	if a.ctrl.ValidateForm(f) {
		return nil
	}
	names := f.InvalidFields()
	for i, name := range names {
		names[i] = "--" + name
	}
	return errUsage{message: "missing required flags: " + strings.Join(names, ", ")}
}

var runCreateProject = actionCommand(0, 0, func(flags *flag.FlagSet) actionFunc {
	name := flags.String("name", "", "Project name")
	description := flags.String("description", "", "Project description")
	return func(ctx context.Context, a *app, _ []string, stdout, _ io.Writer) error {
		f := form.New("create-project",
			form.Field{Name: "name", Value: *name, Required: true},
			form.Field{Name: "description", Value: *description},
		)
		if err := requireFields(a, f); err != nil {
			return err
		}
		res, err := a.ctrl.CreateProject(ctx, *name, *description)
		if err != nil {
			return err
		}
		if id := res.ID(); id != "" {
			fmt.Fprintf(stdout, "Project id: %s\n", id)
		}
		return nil
	}
})

var runAddTask = actionCommand(1, 1, func(flags *flag.FlagSet) actionFunc {
	name := flags.String("name", "", "Task name")
	description := flags.String("description", "", "Task description")
	assignee := flags.String("assignee", "", "Task assignee")
	return func(ctx context.Context, a *app, args []string, stdout, _ io.Writer) error {
		f := form.New("add-task",
			form.Field{Name: "name", Value: *name, Required: true},
			form.Field{Name: "description", Value: *description},
			form.Field{Name: "assignee", Value: *assignee},
		)
		if err := requireFields(a, f); err != nil {
			return err
		}
		res, err := a.ctrl.AddTask(ctx, args[0], *name, *description, *assignee)
		if err != nil {
			return err
		}
		if id := res.ID(); id != "" {
			fmt.Fprintf(stdout, "Task id: %s\n", id)
		}
		return nil
	}
})

var runCompleteTask = actionCommand(1, 1, func(*flag.FlagSet) actionFunc {
	return func(ctx context.Context, a *app, args []string, _, _ io.Writer) error {
		_, err := a.ctrl.CompleteTask(ctx, args[0])
		return err
	}
})

var runSetTaskStatus = actionCommand(2, 2, func(*flag.FlagSet) actionFunc {
	return func(ctx context.Context, a *app, args []string, _, _ io.Writer) error {
		_, err := a.ctrl.SetTaskStatus(ctx, args[0], args[1])
		return err
	}
})

var runAdvanceStage = actionCommand(1, 1, func(*flag.FlagSet) actionFunc {
	return func(ctx context.Context, a *app, args []string, _, _ io.Writer) error {
		_, err := a.ctrl.AdvanceStage(ctx, args[0])
		return err
	}
})

var runPreviousStage = actionCommand(1, 1, func(*flag.FlagSet) actionFunc {
	return func(ctx context.Context, a *app, args []string, _, _ io.Writer) error {
		_, err := a.ctrl.PreviousStage(ctx, args[0])
		return err
	}
})
