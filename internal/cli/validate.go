package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"pmconsole/internal/api"
	"pmconsole/internal/config"
)

// runValidate builds the handler for the validate command. Flag overrides
// are validated together with the file, and --ping checks that the server
// answers at the resolved base URL.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		common := registerCommonFlags(flags)
		ping := flags.Bool("ping", false, "Also fetch the server summary at the resolved base URL")
		if _, code, ok := parseCommand(cmd, flags, args, 0, 0, stdout, stderr); !ok {
			return code
		}

		resolved, err := resolveConfigPath(*common.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		common.apply(&cfg)
		if err := config.Validate(&cfg); err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		fmt.Fprintf(stdout, "Config OK: %s\n", resolved)
		fmt.Fprintf(stdout, "  base_url: %s\n", cfg.BaseURL)
		fmt.Fprintf(stdout, "  journal:  %s\n", orDefault(cfg.JournalPath, "off"))
		fmt.Fprintf(stdout, "  log_file: %s\n", orDefault(cfg.LogFile, "discarded"))
		if !*ping {
			return ExitOK
		}

		ctx, stop := signalContext()
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
		summary, err := api.New(cfg.BaseURL, api.WithTimeout(cfg.RequestTimeout)).FetchSummary(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Server check failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Server OK: %d projects (%d active)\n", summary.TotalProjects, summary.ActiveProjects)
		return ExitOK
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
