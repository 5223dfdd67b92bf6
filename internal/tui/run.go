package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/task"
)

// Run starts the interactive view and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, store *task.Store, opts Options, in io.Reader, out io.Writer) error {
	m := New(ctx, store, opts)

	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithOutput(out),
	}
	if in != nil {
		progOpts = append(progOpts, tea.WithInput(in))
	}

	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("interactive view failed: %w", err)
	}
	return nil
}
