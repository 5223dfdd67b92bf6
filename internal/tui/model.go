// Package tui implements the interactive terminal view on top of the form
// controller.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/form"
	"taskpad/internal/output"
	"taskpad/internal/query"
	"taskpad/internal/task"
)

// FocusArea represents which part of the UI has focus.
type FocusArea int

const (
	FocusList FocusArea = iota
	FocusSearch
	FocusForm
	FocusConfirm
)

// Form fields in tab order.
const (
	fieldTitle = iota
	fieldDesc
	fieldDue
	fieldPriority
	fieldCount
)

// Options configures the view.
type Options struct {
	// NotifyTimeout is how long a notification stays visible.
	NotifyTimeout time.Duration

	// Status is the initial status filter.
	Status query.Status

	// Now overrides the clock.
	Now func() time.Time

	Logger *slog.Logger
}

// dismissMsg clears the notification it was scheduled for.
type dismissMsg struct {
	seq int
}

// Model is the bubbletea model. It is the controller's View, Notifier and
// Confirmer, so it must be used through a pointer.
type Model struct {
	ctx    context.Context
	ctl    *form.Controller
	keys   KeyMap
	styles *Styles
	help   help.Model
	now    func() time.Time
	logger *slog.Logger

	width  int
	height int

	focus  FocusArea
	items  []output.Item
	cursor int

	search   textinput.Model
	title    textinput.Model
	desc     textarea.Model
	due      textinput.Model
	priority task.Priority
	field    int

	// Delete confirmation
	deleteID    string
	deleteTitle string
	answer      bool

	// Notification
	notice        string
	noticeKind    form.Kind
	noticeSeq     int
	notifyTimeout time.Duration
	pending       []tea.Cmd
}

// New creates the view over store and renders the initial list.
func New(ctx context.Context, store *task.Store, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = 3 * time.Second
	}
	if opts.Status == "" {
		opts.Status = query.StatusAll
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 1000
	desc.SetWidth(50)
	desc.SetHeight(3)
	desc.ShowLineNumbers = false

	due := textinput.New()
	due.Placeholder = task.DateLayout
	due.CharLimit = len(task.DateLayout)

	m := &Model{
		ctx:           ctx,
		keys:          DefaultKeyMap(),
		styles:        NewStyles(),
		help:          help.New(),
		now:           opts.Now,
		logger:        opts.Logger,
		search:        search,
		title:         title,
		desc:          desc,
		due:           due,
		notifyTimeout: opts.NotifyTimeout,
	}
	m.ctl = form.New(store,
		form.WithView(m),
		form.WithNotifier(m),
		form.WithConfirmer(m),
		form.WithClock(opts.Now),
		form.WithLogger(opts.Logger),
		form.WithFilter(query.Filter{Status: opts.Status}),
	)
	m.ctl.Refresh()
	return m
}

// Controller exposes the underlying form controller.
func (m *Model) Controller() *form.Controller { return m.ctl }

// Focus returns the focused area.
func (m *Model) Focus() FocusArea { return m.focus }

// Items returns the rendered list.
func (m *Model) Items() []output.Item { return m.items }

// Cursor returns the selected row.
func (m *Model) Cursor() int { return m.cursor }

// Notice returns the visible notification, if any.
func (m *Model) Notice() (string, form.Kind) { return m.notice, m.noticeKind }

// Render implements form.View.
func (m *Model) Render(tasks []task.Task) {
	m.items = output.Items(tasks, m.now())
	m.cursor = clamp(m.cursor, 0, len(m.items)-1)
}

// Notify implements form.Notifier. A newer notification replaces the
// current one; the older dismiss tick then finds a stale sequence number.
func (m *Model) Notify(message string, kind form.Kind) {
	m.noticeSeq++
	m.notice = message
	m.noticeKind = kind
	seq := m.noticeSeq
	m.pending = append(m.pending, tea.Tick(m.notifyTimeout, func(time.Time) tea.Msg {
		return dismissMsg{seq: seq}
	}))
}

// Confirm implements form.Confirmer with the answer collected by the
// y/n prompt.
func (m *Model) Confirm(string) bool {
	return m.answer
}

// Init initializes the view.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.desc.SetWidth(clamp(msg.Width-20, 20, 80))
	case dismissMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Abort) {
			return m, m.flush(tea.Quit)
		}
		switch m.focus {
		case FocusList:
			cmd = m.updateList(msg)
		case FocusSearch:
			cmd = m.updateSearch(msg)
		case FocusForm:
			cmd = m.updateForm(msg)
		case FocusConfirm:
			m.updateConfirm(msg)
		}
	}
	return m, m.flush(cmd)
}

// flush batches cmd with the ticks queued by Notify.
func (m *Model) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(m.pending, cmd)
	m.pending = nil
	return tea.Batch(cmds...)
}

func (m *Model) selected() (output.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return output.Item{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(m.items)-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(m.items)-1)
	case key.Matches(msg, m.keys.New):
		m.ctl.Cancel()
		return m.openForm()
	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.selected(); ok {
			m.dispatch(form.Action{Kind: form.ActionEdit, ID: item.ID})
			if m.ctl.Mode() == form.ModeEdit {
				return m.openForm()
			}
		}
	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.selected(); ok {
			m.dispatch(form.Action{Kind: form.ActionToggle, ID: item.ID})
		}
	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.selected(); ok {
			m.deleteID = item.ID
			m.deleteTitle = item.Title
			m.focus = FocusConfirm
		}
	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		return m.search.Focus()
	case key.Matches(msg, m.keys.Filter):
		f := m.ctl.Filter()
		f.Status = f.Status.Next()
		m.ctl.SetFilter(f)
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) || msg.Type == tea.KeyEnter {
		m.search.Blur()
		m.focus = FocusList
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if f := m.ctl.Filter(); f.Search != m.search.Value() {
		f.Search = m.search.Value()
		m.ctl.SetFilter(f)
	}
	return cmd
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.ctl.Cancel()
		m.closeForm()
		return nil
	case key.Matches(msg, m.keys.Submit) && !(m.field == fieldDesc && msg.Type == tea.KeyEnter):
		m.submit()
		return nil
	case key.Matches(msg, m.keys.Next):
		return m.focusField((m.field + 1) % fieldCount)
	case key.Matches(msg, m.keys.Prev):
		return m.focusField((m.field + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	switch m.field {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDesc:
		m.desc, cmd = m.desc.Update(msg)
	case fieldDue:
		m.due, cmd = m.due.Update(msg)
	case fieldPriority:
		if key.Matches(msg, m.keys.Priority) {
			m.priority = m.priority.Next()
		}
	}
	return cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) {
	m.answer = key.Matches(msg, m.keys.Yes)
	id := m.deleteID
	m.deleteID, m.deleteTitle = "", ""
	m.focus = FocusList

	// A refusal still goes through the controller, which leaves the store
	// untouched when the confirmer says no.
	m.dispatch(form.Action{Kind: form.ActionDelete, ID: id})
	m.answer = false
}

func (m *Model) dispatch(a form.Action) {
	if err := m.ctl.Dispatch(m.ctx, a); err != nil {
		m.logger.Debug("action failed", "action", a.Kind, "id", a.ID, "error", err)
	}
}

func (m *Model) submit() {
	m.ctl.SetFields(m.formFields())
	err := m.ctl.Submit(m.ctx)
	if err == nil || errors.Is(err, task.ErrNotFound) {
		m.closeForm()
	}
}

func (m *Model) formFields() form.Fields {
	return form.Fields{
		Title:       m.title.Value(),
		Description: m.desc.Value(),
		DueDate:     m.due.Value(),
		Priority:    m.priority,
	}
}

// openForm loads the controller's fields into the inputs.
func (m *Model) openForm() tea.Cmd {
	f := m.ctl.Fields()
	m.title.SetValue(f.Title)
	m.desc.SetValue(f.Description)
	m.due.SetValue(f.DueDate)
	m.priority = f.Priority
	m.focus = FocusForm
	return m.focusField(fieldTitle)
}

func (m *Model) closeForm() {
	m.title.Blur()
	m.desc.Blur()
	m.due.Blur()
	m.focus = FocusList
}

func (m *Model) focusField(field int) tea.Cmd {
	m.field = field
	m.title.Blur()
	m.desc.Blur()
	m.due.Blur()
	switch field {
	case fieldTitle:
		return m.title.Focus()
	case fieldDesc:
		return m.desc.Focus()
	case fieldDue:
		return m.due.Focus()
	}
	return nil
}

// View renders the UI.
func (m *Model) View() string {
	var b strings.Builder
	s := m.styles

	f := m.ctl.Filter()
	b.WriteString(s.Title.Render("taskpad"))
	b.WriteString(s.Muted.Render(fmt.Sprintf("  status: %s", f.Status)))
	if f.Search != "" || m.focus == FocusSearch {
		b.WriteString(s.Muted.Render("  search: "))
		b.WriteString(m.search.View())
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderList())
	b.WriteString("\n")

	switch m.focus {
	case FocusForm:
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	case FocusConfirm:
		b.WriteString(s.Prompt.Render(fmt.Sprintf("%s %q (y/n)", form.MsgConfirmDelete, m.deleteTitle)))
		b.WriteString("\n")
	default:
		if item, ok := m.selected(); ok {
			b.WriteString(s.Muted.Render(item.ShortID + "  " + item.Description))
			b.WriteString("\n")
		}
	}

	if m.notice != "" {
		b.WriteString(s.notice(m.noticeKind).Render(m.notice))
	}
	b.WriteString("\n")

	if m.focus == FocusForm {
		b.WriteString(m.help.View(formHelp(m.keys)))
	} else {
		keys := m.keys
		if item, ok := m.selected(); ok {
			keys.Toggle.SetHelp("space", strings.ToLower(item.ToggleLabel))
		}
		b.WriteString(m.help.View(listHelp(keys)))
	}
	return b.String()
}

func (m *Model) renderList() string {
	s := m.styles
	if len(m.items) == 0 {
		return s.Muted.Render(output.EmptyState) + "\n"
	}

	var b strings.Builder
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor && m.focus != FocusForm {
			cursor = "> "
		}

		title := item.Title
		switch {
		case item.Completed:
			title = s.Completed.Render(title)
		case item.Overdue:
			title = s.Overdue.Render(title + " (overdue)")
		case i == m.cursor:
			title = s.Selected.Render(title)
		}

		fmt.Fprintf(&b, "%s%s  %-12s  %s  %s\n",
			cursor,
			output.Checkbox(item.Completed),
			item.DueLabel,
			s.priority(item.Priority).Render(fmt.Sprintf("%-6s", item.Priority)),
			title,
		)
	}
	return b.String()
}

func (m *Model) renderForm() string {
	s := m.styles
	heading := "New task"
	if m.ctl.Mode() == form.ModeEdit {
		heading = "Edit task"
	}

	priority := fmt.Sprintf("< %s >", m.priority)
	if m.field == fieldPriority {
		priority = s.Selected.Render(priority)
	}

	body := strings.Join([]string{
		s.Title.Render(heading),
		s.Label.Render("Title") + m.title.View(),
		s.Label.Render("Description") + "\n" + m.desc.View(),
		s.Label.Render("Due") + m.due.View(),
		s.Label.Render("Priority") + s.priority(m.priority).Render(priority),
	}, "\n")
	return s.Pane.Render(body)
}

// clamp returns val clamped between minVal and maxVal. An empty range
// yields minVal.
func clamp(val, minVal, maxVal int) int {
	if val > maxVal {
		val = maxVal
	}
	if val < minVal {
		val = minVal
	}
	return val
}
