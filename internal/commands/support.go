package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/form"
	"taskpad/internal/task"
)

// clock is embedded by commands that depend on today's date.
type clock struct {
	now func() time.Time
}

// SetClock overrides the current time (for testing).
func (c *clock) SetClock(now func() time.Time) {
	c.now = now
}

func (c *clock) clockFunc() func() time.Time {
	if c.now == nil {
		return time.Now
	}
	return c.now
}

// printNotifier prints success notifications. Failures are reported by
// the command itself so it can choose the exit code.
type printNotifier struct {
	out   io.Writer
	quiet bool
}

func (n printNotifier) Notify(message string, kind form.Kind) {
	if kind == form.KindSuccess && !n.quiet {
		fmt.Fprintln(n.out, message)
	}
}

// promptConfirmer asks on out and reads a y/n answer from in.
// Anything but y or yes is a refusal.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) promptConfirmer {
	if in == nil {
		in = strings.NewReader("")
	}
	return promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (p promptConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// newController builds a form controller that prints to out.
func newController(cfg *config.Config, store *task.Store, now func() time.Time, out io.Writer, opts ...form.Option) *form.Controller {
	opts = append([]form.Option{
		form.WithClock(now),
		form.WithNotifier(printNotifier{out: out, quiet: cfg.Quiet}),
	}, opts...)
	return form.New(store, opts...)
}

// report prints err and maps it to an exit code.
func report(errOut io.Writer, err error) int {
	var verr *task.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(errOut, "error: %s\n", verr.Message)
		return exitcode.UserError
	case errors.Is(err, task.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}

// optString is a string flag that remembers whether it was given.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}

// or returns the flag value if it was given, otherwise fallback.
func (o *optString) or(fallback string) string {
	if o.set {
		return o.value
	}
	return fallback
}
