// Package form implements the create/edit state machine that mediates
// between user input and the task store.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"taskpad/internal/query"
	"taskpad/internal/task"
)

// Mode is the controller state.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// User-facing messages.
const (
	MsgAdded         = "Task added successfully"
	MsgUpdated       = "Task updated successfully"
	MsgDeleted       = "Task deleted successfully"
	MsgNotFound      = "Task not found"
	MsgConfirmDelete = "Are you sure you want to delete this task?"
)

// Fields is the content of the form.
type Fields struct {
	Title       string
	Description string
	DueDate     string
	Priority    task.Priority
}

// Defaults returns a cleared form: due tomorrow, medium priority.
func Defaults(now time.Time) Fields {
	return Fields{
		DueDate:  task.Tomorrow(now),
		Priority: task.DefaultPriority,
	}
}

// ActionKind names a per-item action exposed by the view.
type ActionKind string

const (
	ActionToggle ActionKind = "toggle"
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
)

// Action is one dispatched view event.
type Action struct {
	Kind ActionKind
	ID   string
}

// Controller is the form state machine. Every method runs to completion
// synchronously; a Controller is driven from a single goroutine.
type Controller struct {
	store     *task.Store
	view      View
	notifier  Notifier
	confirmer Confirmer
	now       func() time.Time
	logger    *slog.Logger

	mode      Mode
	editingID string
	fields    Fields
	filter    query.Filter
}

// Option configures a Controller.
type Option func(*Controller)

// WithView sets the list renderer.
func WithView(v View) Option {
	return func(c *Controller) { c.view = v }
}

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithConfirmer sets the delete confirmation. Defaults to AlwaysConfirm.
func WithConfirmer(cf Confirmer) Option {
	return func(c *Controller) { c.confirmer = cf }
}

// WithClock overrides the clock used for form defaults.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithFilter sets the initial filter.
func WithFilter(f query.Filter) Option {
	return func(c *Controller) { c.filter = f }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a controller in create mode with default fields.
func New(store *task.Store, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		view:      nopView,
		notifier:  nopNotifier,
		confirmer: AlwaysConfirm,
		now:       time.Now,
		logger:    slog.Default(),
		filter:    query.Filter{Status: query.StatusAll},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

// Mode returns the current state.
func (c *Controller) Mode() Mode { return c.mode }

// EditingID returns the id being edited, or "" in create mode.
func (c *Controller) EditingID() string { return c.editingID }

// Fields returns the current form content.
func (c *Controller) Fields() Fields { return c.fields }

// SetFields replaces the form content without submitting.
func (c *Controller) SetFields(f Fields) { c.fields = f }

// Filter returns the current filter.
func (c *Controller) Filter() query.Filter { return c.filter }

// SetFilter changes the filter and re-renders.
func (c *Controller) SetFilter(f query.Filter) {
	c.filter = f
	c.Refresh()
}

// Visible returns the filtered, ordered task list.
func (c *Controller) Visible() []task.Task {
	return query.Apply(c.store.All(), c.filter)
}

// Refresh renders the visible list.
func (c *Controller) Refresh() {
	c.view.Render(c.Visible())
}

// Submit creates a task in create mode or updates the edited task in edit
// mode. On success the form returns to create mode with default fields.
// On a validation failure nothing changes and the error is returned after
// being surfaced to the notifier.
func (c *Controller) Submit(ctx context.Context) error {
	in := task.Input(c.fields)

	if c.mode == ModeCreate {
		t, err := c.store.Create(ctx, in)
		if err != nil {
			return c.fail(err)
		}
		c.logger.Debug("task created", "id", t.ID)
		c.reset()
		c.succeed(MsgAdded)
		return nil
	}

	t, err := c.store.Update(ctx, c.editingID, in)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			// The task vanished while being edited.
			c.reset()
			c.Refresh()
		}
		return c.fail(err)
	}
	c.logger.Debug("task updated", "id", t.ID)
	c.reset()
	c.succeed(MsgUpdated)
	return nil
}

// BeginEdit switches to edit mode for id and loads its fields.
// Unknown ids are ignored and false is returned.
func (c *Controller) BeginEdit(id string) bool {
	t, ok := c.store.GetByID(id)
	if !ok {
		return false
	}
	c.mode = ModeEdit
	c.editingID = id
	c.fields = Fields{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
	}
	return true
}

// Cancel leaves edit mode and clears the form. The store is untouched.
func (c *Controller) Cancel() {
	c.reset()
}

// Delete removes id after the confirmer agrees. It reports whether the
// task was deleted. Deleting the task under edit resets the form.
func (c *Controller) Delete(ctx context.Context, id string) (bool, error) {
	if !c.confirmer.Confirm(MsgConfirmDelete) {
		return false, nil
	}

	if err := c.store.Delete(ctx, id); err != nil {
		return false, c.fail(err)
	}
	c.logger.Debug("task deleted", "id", id)

	if c.mode == ModeEdit && c.editingID == id {
		c.reset()
	}
	c.succeed(MsgDeleted)
	return true, nil
}

// ToggleCompletion flips completion of id. The form state is unaffected.
func (c *Controller) ToggleCompletion(ctx context.Context, id string) (task.Task, error) {
	t, err := c.store.ToggleCompletion(ctx, id)
	if err != nil {
		return task.Task{}, c.fail(err)
	}
	status := "pending"
	if t.Completed {
		status = "completed"
	}
	c.succeed("Task marked as " + status)
	return t, nil
}

// Dispatch routes a view action to its handler.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	switch a.Kind {
	case ActionToggle:
		_, err := c.ToggleCompletion(ctx, a.ID)
		return err
	case ActionEdit:
		c.BeginEdit(a.ID)
		return nil
	case ActionDelete:
		_, err := c.Delete(ctx, a.ID)
		return err
	}
	return fmt.Errorf("unknown action: %s", a.Kind)
}

func (c *Controller) reset() {
	c.mode = ModeCreate
	c.editingID = ""
	c.fields = Defaults(c.now())
}

func (c *Controller) succeed(msg string) {
	c.Refresh()
	c.notifier.Notify(msg, KindSuccess)
}

// fail surfaces err to the notifier and returns it unchanged.
func (c *Controller) fail(err error) error {
	var verr *task.ValidationError
	switch {
	case errors.As(err, &verr):
		c.notifier.Notify(verr.Message, KindError)
	case errors.Is(err, task.ErrNotFound):
		c.notifier.Notify(MsgNotFound, KindError)
	default:
		c.logger.Error("task operation failed", "error", err)
		c.notifier.Notify(err.Error(), KindError)
	}
	return err
}
