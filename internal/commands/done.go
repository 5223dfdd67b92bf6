package commands

import (
	"context"
	"flag"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. Running it on a completed task
// marks it pending again.
type DoneCmd struct {
	clock
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle task completion" }
func (c *DoneCmd) Usage() string     { return "taskpad done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	t, ok := resolveArgs(store, args, errOut)
	if !ok {
		return exitcode.UserError
	}

	ctl := newController(cfg, store, c.clockFunc(), out)
	if _, err := ctl.ToggleCompletion(ctx, t.ID); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
