package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/form"
	"taskpad/internal/task"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	clock
	yes bool
}

// SetYes sets the yes flag (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return nil }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskpad rm [--yes] <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	t, ok := resolveArgs(store, args, errOut)
	if !ok {
		return exitcode.UserError
	}

	var confirmer form.Confirmer = form.AlwaysConfirm
	if !c.yes {
		fmt.Fprintf(errOut, "%s  %s\n", t.DueDate, t.Title)
		confirmer = newPromptConfirmer(cfg.In, errOut)
	}

	ctl := newController(cfg, store, c.clockFunc(), out, form.WithConfirmer(confirmer))
	deleted, err := ctl.Delete(ctx, t.ID)
	if err != nil {
		return report(errOut, err)
	}
	if !deleted && !cfg.Quiet {
		fmt.Fprintln(out, "Deletion cancelled")
	}
	return exitcode.Success
}
