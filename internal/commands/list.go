package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/query"
	"taskpad/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args) and `taskpad list`.
type ListCmd struct {
	clock
	search string
	status string
}

// SetFilter sets the search text and status flags (for testing).
func (c *ListCmd) SetFilter(search, status string) {
	c.search = search
	c.status = status
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks by due date" }
func (c *ListCmd) Usage() string {
	return "taskpad list [--search <text>] [--status all|completed|pending]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "s", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, store *task.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	status := cfg.Status()
	if c.status != "" {
		var err error
		status, err = query.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	filter := query.Filter{Search: c.search, Status: status}

	today := c.clockFunc()()
	all := store.All()

	// Numbers come from the unfiltered order so they stay valid refs.
	var items []output.Item
	for i, t := range Numbered(all) {
		if !filter.Matches(t) {
			continue
		}
		item := output.NewItem(t, today)
		item.Num = i + 1
		items = append(items, item)
	}

	if len(items) == 0 && cfg.Quiet {
		return exitcode.Success
	}
	output.RenderList(out, items)

	if len(items) > 0 && !cfg.Quiet {
		fmt.Fprintln(out)
		output.RenderSummary(out, query.Counts(all, today))
	}
	return exitcode.Success
}
