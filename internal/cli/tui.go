package cli

import (
	"flag"
	"fmt"
	"io"

	"pmconsole/internal/alert"
	"pmconsole/internal/location"
	"pmconsole/internal/ui"
	"pmconsole/internal/view"
)

// runTUI builds the handler for the tui command.
func runTUI(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		common := registerCommonFlags(flags)
		uiMode := flags.String("ui", "", "UI mode: auto|live|plain (default: ui.mode from config)")
		positional, code, ok := parseCommand(cmd, flags, args, 0, 1, stdout, stderr)
		if !ok {
			return code
		}
		cfg, err := common.load()
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		mode := cfg.UI.Mode
		if *uiMode != "" {
			mode = *uiMode
		}
		decision, err := resolveUIMode(mode, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}
		if !decision.interactive {
			fmt.Fprintln(stderr, "The console needs a terminal. Use \"pmconsole watch <project-id>\" for plain output.")
			return ExitError
		}

		path := cfg.UI.StartPath
		if len(positional) == 1 {
			path = location.ProjectPath(positional[0])
		}
		ctx, stop := signalContext()
		defer stop()
		alerts := alert.NewStack(cfg.AlertTTL, nil)
		panel := &view.Panel{}
		a, err := openApp(ctx, cfg, appOptions{alerts: alerts, bindings: panel, path: path})
		if err != nil {
			fmt.Fprintf(stderr, "%s failed: %v\n", cmd.Name, err)
			return ExitError
		}
		defer a.Close()

		err = ui.Run(ctx, stdout, ui.Options{
			Controller:   a.ctrl,
			Alerts:       alerts,
			Busy:         a.client.Busy(),
			Panel:        panel,
			PollInterval: cfg.PollInterval,
			Tooltips:     cfg.UI.TooltipsEnabled(),
			NoColor:      cfg.UI.NoColor,
			Logger:       a.logger.Logger,
		})
		if err != nil {
			fmt.Fprintf(stderr, "%s failed: %v\n", cmd.Name, err)
			return ExitError
		}
		return ExitOK
	}
}
