package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/logging"
	"taskpad/internal/task"
	"taskpad/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd implements the ui command.
type UICmd struct {
	clock
	run func(ctx context.Context, store *task.Store, opts tui.Options, in io.Reader, out io.Writer) error
}

// SetRunner replaces the interactive program (for testing).
func (c *UICmd) SetRunner(run func(ctx context.Context, store *task.Store, opts tui.Options, in io.Reader, out io.Writer) error) {
	c.run = run
}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Open the interactive view" }
func (c *UICmd) Usage() string     { return "taskpad ui" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	run := c.run
	if run == nil {
		run = tui.Run
	}

	// Log lines would corrupt the alternate screen.
	opts := tui.Options{
		NotifyTimeout: cfg.UI.NotifyTimeout,
		Status:        cfg.Status(),
		Now:           c.clockFunc(),
		Logger:        logging.Discard(),
	}
	if err := run(ctx, store, opts, cfg.In, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	return exitcode.Success
}
