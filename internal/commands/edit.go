package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields without a flag keep their
// stored value.
type EditCmd struct {
	clock
	title    optString
	desc     optString
	due      optString
	priority optString
}

// SetTitle sets the --title flag (for testing).
func (c *EditCmd) SetTitle(s string) { _ = c.title.Set(s) }

// SetDesc sets the --desc flag (for testing).
func (c *EditCmd) SetDesc(s string) { _ = c.desc.Set(s) }

// SetDue sets the --due flag (for testing).
func (c *EditCmd) SetDue(s string) { _ = c.due.Set(s) }

// SetPriority sets the --priority flag (for testing).
func (c *EditCmd) SetPriority(s string) { _ = c.priority.Set(s) }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task" }
func (c *EditCmd) Usage() string {
	return "taskpad edit [--title <text>] [--desc <text>] [--due YYYY-MM-DD] [--priority low|medium|high] <ref>"
}
func (c *EditCmd) NeedsStore() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.desc, c.due, c.priority = optString{}, optString{}, optString{}, optString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.desc, "desc", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.priority, "priority", "")
	fs.Var(&c.priority, "p", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	t, ok := resolveArgs(store, args, errOut)
	if !ok {
		return exitcode.UserError
	}

	if !c.title.set && !c.desc.set && !c.due.set && !c.priority.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --desc, --due or --priority)")
		return exitcode.UserError
	}

	ctl := newController(cfg, store, c.clockFunc(), out)
	ctl.BeginEdit(t.ID)

	fields := ctl.Fields()
	fields.Title = c.title.or(fields.Title)
	fields.Description = c.desc.or(fields.Description)
	fields.DueDate = c.due.or(fields.DueDate)
	fields.Priority = task.Priority(c.priority.or(string(fields.Priority)))
	ctl.SetFields(fields)

	if err := ctl.Submit(ctx); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
