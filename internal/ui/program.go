package ui

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the console on the alternate screen and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, stdout io.Writer, opts Options) error {
	if stdout == nil {
		stdout = os.Stdout
	}
	model := NewModel(ctx, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(stdout),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
