package form

import "taskpad/internal/task"

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// View renders the visible task list. An empty slice is the empty state.
type View interface {
	Render(tasks []task.Task)
}

// Notifier shows a transient message. Notifications are informational
// and never gate controller logic.
type Notifier interface {
	Notify(message string, kind Kind)
}

// Confirmer asks the user a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ViewFunc adapts a function to View.
type ViewFunc func(tasks []task.Task)

func (f ViewFunc) Render(tasks []task.Task) { f(tasks) }

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, kind Kind)

func (f NotifierFunc) Notify(message string, kind Kind) { f(message, kind) }

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm answers yes without asking. Used when the caller has
// already obtained consent (e.g. a --yes flag).
var AlwaysConfirm Confirmer = ConfirmerFunc(func(string) bool { return true })

var (
	nopView     View     = ViewFunc(func([]task.Task) {})
	nopNotifier Notifier = NotifierFunc(func(string, Kind) {})
)
