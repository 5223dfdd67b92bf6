package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/form"
	"taskpad/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	clock
	desc     string
	due      string
	priority string
}

// SetFields sets the flag values (for testing).
func (c *AddCmd) SetFields(desc, due, priority string) {
	c.desc = desc
	c.due = due
	c.priority = priority
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskpad add [--desc <text>] [--due YYYY-MM-DD] [--priority low|medium|high] <title...>"
}
func (c *AddCmd) NeedsStore() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	for _, arg := range args {
		if strings.HasPrefix(arg, "--") {
			fmt.Fprintf(errOut, "error: flags must come before the title: %s\n", arg)
			return exitcode.UserError
		}
	}

	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	now := c.clockFunc()
	fields := form.Defaults(now())
	fields.Title = title
	fields.Description = c.desc
	if c.due != "" {
		fields.DueDate = c.due
	}
	if c.priority != "" {
		fields.Priority = task.Priority(c.priority)
	}

	ctl := newController(cfg, store, now, out)
	ctl.SetFields(fields)
	if err := ctl.Submit(ctx); err != nil {
		return report(errOut, err)
	}
	return exitcode.Success
}
