package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type consoleMode string

const (
	consoleAuto  consoleMode = "auto"
	consoleLive  consoleMode = "live"
	consolePlain consoleMode = "plain"
)

// consoleDecision says whether tui may take over the terminal.
type consoleDecision struct {
	interactive bool
	warning     string
}

// isTerminal is replaced in tests.
var isTerminal = fdIsTerminal

func parseConsoleMode(value string) (consoleMode, error) {
	switch mode := consoleMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return consoleAuto, nil
	case consoleAuto, consoleLive, consolePlain:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", value)
	}
}

// resolveUIMode combines the configured mode with what stdout supports.
func resolveUIMode(value string, stdout io.Writer) (consoleDecision, error) {
	mode, err := parseConsoleMode(value)
	if err != nil {
		return consoleDecision{}, err
	}
	if mode == consolePlain {
		return consoleDecision{}, nil
	}
	tty := isTerminal(stdout)
	if mode == consoleLive && !tty {
		return consoleDecision{warning: "ui mode live ignored: stdout is not a terminal"}, nil
	}
	return consoleDecision{interactive: tty}, nil
}

func fdIsTerminal(w io.Writer) bool {
	switch out := w.(type) {
	case *os.File:
		return out != nil && term.IsTerminal(int(out.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(out.Fd()))
	default:
		return false
	}
}
