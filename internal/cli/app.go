package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"strings"

	"pmconsole/internal/alert"
	"pmconsole/internal/api"
	"pmconsole/internal/busy"
	"pmconsole/internal/config"
	"pmconsole/internal/controller"
	"pmconsole/internal/journal"
	"pmconsole/internal/location"
	"pmconsole/internal/logging"
	"pmconsole/internal/view"
)

// commonFlags are accepted by every command that talks to the server.
type commonFlags struct {
	configPath *string
	baseURL    *string
	journal    *string
	noColor    *bool
}

func registerCommonFlags(flags *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: flags.String("config", "", "Path to config file (default: search for .pmconsole/config.yml)"),
		baseURL:    flags.String("base-url", "", "Server base URL (overrides config)"),
		journal:    flags.String("journal", "", "Snapshot journal path (overrides config)"),
		noColor:    flags.Bool("no-color", false, "Disable colored output"),
	}
}

// load reads the config and applies flag overrides.
func (f commonFlags) load() (config.Config, error) {
	cfg, err := loadConfig(*f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	f.apply(&cfg)
	return cfg, nil
}

// apply copies the flags that were set onto cfg.
func (f commonFlags) apply(cfg *config.Config) {
	if value := strings.TrimRight(strings.TrimSpace(*f.baseURL), "/"); value != "" {
		cfg.BaseURL = value
	}
	if value := strings.TrimSpace(*f.journal); value != "" {
		cfg.JournalPath = value
	}
	if *f.noColor {
		cfg.UI.NoColor = true
	}
}

// parseArgs parses flags that may appear before, between or after
// positional arguments and returns the positionals.
func parseArgs(flags *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := flags.Parse(args); err != nil {
			return nil, err
		}
		args = flags.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// parseCommand parses args for cmd and checks the positional count. It
// returns ok=false with the exit code when the command should stop.
func parseCommand(cmd *Command, flags *flag.FlagSet, args []string, minArgs, maxArgs int, stdout, stderr io.Writer) ([]string, int, bool) {
	flags.SetOutput(stderr)
	positional, err := parseArgs(flags, args)
	if err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return nil, ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return nil, ExitUsage, false
	}
	if len(positional) < minArgs {
		fmt.Fprintln(stderr, "missing arguments")
		printCommandUsage(cmd, stderr)
		return nil, ExitUsage, false
	}
	if len(positional) > maxArgs {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(positional[maxArgs:], " "))
		printCommandUsage(cmd, stderr)
		return nil, ExitUsage, false
	}
	return positional, ExitOK, true
}

// app holds the wired client stack for one command invocation.
type app struct {
	cfg     config.Config
	logger  *logging.Logger
	client  *api.Client
	ctrl    *controller.Controller
	journal *journal.Journal
}

// appOptions selects where controller output goes.
type appOptions struct {
	alerts   alert.Sink
	bindings view.Bindings
	path     string
}

// openApp builds the logger, API client, journal and controller.
func openApp(ctx context.Context, cfg config.Config, opts appOptions) (*app, error) {
	logger, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	mode, err := busy.ParseMode(cfg.BusyMode)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	client := api.New(cfg.BaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithBusy(busy.New(mode)),
		api.WithLogger(logger.Logger),
	)
	a := &app{cfg: cfg, logger: logger, client: client}

	ctrlCfg := controller.Config{
		Client:   client,
		Alerts:   opts.alerts,
		Location: location.New(opts.path),
		Bindings: opts.bindings,
		Logger:   logger.Logger,
	}
	if cfg.JournalPath != "" {
		j, err := journal.Open(ctx, cfg.JournalPath)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
		a.journal = j
		ctrlCfg.Recorder = j
	}
	a.ctrl = controller.New(ctrlCfg)
	logger.Debug("client ready", "base_url", cfg.BaseURL, "busy_mode", cfg.BusyMode, "journal", cfg.JournalPath)
	return a, nil
}

// Close releases the journal and log file.
func (a *app) Close() {
	if a == nil {
		return
	}
	_ = a.journal.Close()
	_ = a.logger.Close()
}

// signalContext returns a context cancelled by the shutdown signals.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), shutdownSignals()...)
}
