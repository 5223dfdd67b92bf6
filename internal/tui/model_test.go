package tui_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpad/internal/form"
	"taskpad/internal/query"
	"taskpad/internal/task"
	"taskpad/internal/testutil"
	"taskpad/internal/tui"
)

func newModel(t *testing.T, seed ...task.Input) (*tui.Model, *task.Store) {
	t.Helper()
	ctx := context.Background()
	clock := testutil.NewClock(testutil.FixedNow)
	store := task.NewStore(testutil.NewFakeStorage(),
		task.WithClock(clock.Now),
		task.WithIDFunc(testutil.SequentialIDs("t")),
	)
	require.NoError(t, store.Load(ctx))
	for _, in := range seed {
		_, err := store.Create(ctx, in)
		require.NoError(t, err)
	}
	m := tui.New(ctx, store, tui.Options{
		NotifyTimeout: time.Second,
		Now:           clock.Now,
	})
	return m, store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *tui.Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *tui.Model, s string) {
	for _, r := range s {
		press(m, runes(string(r)))
	}
}

func TestNew_RendersSortedList(t *testing.T) {
	m, _ := newModel(t,
		task.Input{Title: "Later", DueDate: "2024-05-20"},
		task.Input{Title: "Sooner", DueDate: "2024-05-04"},
	)

	items := m.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Sooner", items[0].Title)
	assert.Equal(t, "Later", items[1].Title)
	assert.Equal(t, tui.FocusList, m.Focus())
	assert.Contains(t, m.View(), "Sooner")
}

func TestEmptyState(t *testing.T) {
	m, _ := newModel(t)

	assert.Empty(t, m.Items())
	assert.Contains(t, m.View(), "No tasks found.")
}

func TestAddTask(t *testing.T) {
	m, store := newModel(t)

	press(m, runes("a"))
	require.Equal(t, tui.FocusForm, m.Focus())
	assert.Contains(t, m.View(), "New task")

	typeText(m, "Buy milk")
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Equal(t, 1, store.Len())
	got := store.All()[0]
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "2024-05-04", got.DueDate)
	assert.Equal(t, task.PriorityMedium, got.Priority)

	assert.Equal(t, tui.FocusList, m.Focus())
	msg, kind := m.Notice()
	assert.Equal(t, form.MsgAdded, msg)
	assert.Equal(t, form.KindSuccess, kind)
}

func TestAddTask_EmptyTitleStaysInForm(t *testing.T) {
	m, store := newModel(t)

	press(m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, tui.FocusForm, m.Focus())
	msg, kind := m.Notice()
	assert.Equal(t, "Task title cannot be empty", msg)
	assert.Equal(t, form.KindError, kind)
}

func TestAddTask_CyclePriority(t *testing.T) {
	m, store := newModel(t)

	press(m, runes("a"))
	typeText(m, "Urgent")
	press(m,
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)

	require.Equal(t, 1, store.Len())
	assert.Equal(t, task.PriorityHigh, store.All()[0].Priority)
}

func TestEditTask(t *testing.T) {
	m, store := newModel(t, task.Input{Title: "Draft", DueDate: "2024-05-10"})

	press(m, runes("e"))
	require.Equal(t, tui.FocusForm, m.Focus())
	assert.Equal(t, form.ModeEdit, m.Controller().Mode())
	assert.Contains(t, m.View(), "Edit task")

	typeText(m, " v2")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	got, ok := store.GetByID("t-1")
	require.True(t, ok)
	assert.Equal(t, "Draft v2", got.Title)
	assert.Equal(t, form.ModeCreate, m.Controller().Mode())
	msg, _ := m.Notice()
	assert.Equal(t, form.MsgUpdated, msg)
}

func TestCancelEdit(t *testing.T) {
	m, store := newModel(t, task.Input{Title: "Keep", DueDate: "2024-05-10"})

	press(m, runes("e"))
	typeText(m, "zzz")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, tui.FocusList, m.Focus())
	assert.Equal(t, form.ModeCreate, m.Controller().Mode())
	got, _ := store.GetByID("t-1")
	assert.Equal(t, "Keep", got.Title)
}

func TestToggle(t *testing.T) {
	m, store := newModel(t, task.Input{Title: "Flip", DueDate: "2024-05-10"})

	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	got, _ := store.GetByID("t-1")
	assert.True(t, got.Completed)
	assert.True(t, m.Items()[0].Completed)
	msg, _ := m.Notice()
	assert.Equal(t, "Task marked as completed", msg)
}

func TestDelete_Confirmed(t *testing.T) {
	m, store := newModel(t, task.Input{Title: "Trash", DueDate: "2024-05-10"})

	press(m, runes("d"))
	require.Equal(t, tui.FocusConfirm, m.Focus())
	assert.Contains(t, m.View(), form.MsgConfirmDelete)

	press(m, runes("y"))

	assert.Equal(t, 0, store.Len())
	assert.Equal(t, tui.FocusList, m.Focus())
	assert.Empty(t, m.Items())
	msg, _ := m.Notice()
	assert.Equal(t, form.MsgDeleted, msg)
}

func TestDelete_Refused(t *testing.T) {
	m, store := newModel(t, task.Input{Title: "Keep", DueDate: "2024-05-10"})

	press(m, runes("d"), runes("n"))

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, tui.FocusList, m.Focus())
	msg, _ := m.Notice()
	assert.Empty(t, msg)
}

func TestSearchAndFilter(t *testing.T) {
	m, _ := newModel(t,
		task.Input{Title: "Report A", DueDate: "2024-05-10"},
		task.Input{Title: "Groceries", DueDate: "2024-05-11"},
	)

	press(m, runes("/"))
	require.Equal(t, tui.FocusSearch, m.Focus())
	typeText(m, "report")
	require.Len(t, m.Items(), 1)
	assert.Equal(t, "Report A", m.Items()[0].Title)

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, tui.FocusList, m.Focus())
	assert.Equal(t, "report", m.Controller().Filter().Search)

	press(m, runes("f"))
	assert.Equal(t, query.StatusPending, m.Controller().Filter().Status)
	assert.Len(t, m.Items(), 1)

	press(m, runes("f"))
	assert.Equal(t, query.StatusCompleted, m.Controller().Filter().Status)
	assert.Empty(t, m.Items())
}

func TestCursorMovement(t *testing.T) {
	m, _ := newModel(t,
		task.Input{Title: "One", DueDate: "2024-05-10"},
		task.Input{Title: "Two", DueDate: "2024-05-11"},
	)

	press(m, runes("j"), runes("j"), runes("j"))
	assert.Equal(t, 1, m.Cursor())

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor())
}

func TestNotificationDismiss(t *testing.T) {
	m, _ := newModel(t, task.Input{Title: "Flip", DueDate: "2024-05-10"})

	cmd := press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.NotNil(t, cmd, "expected a dismiss tick to be scheduled")

	// A second notification supersedes the first; the first tick is stale.
	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	msg, _ := m.Notice()
	require.Equal(t, "Task marked as pending", msg)

	m.Update(tui.DismissMsg(1))
	msg, _ = m.Notice()
	assert.Equal(t, "Task marked as pending", msg, "stale tick must not dismiss")

	m.Update(tui.DismissMsg(2))
	msg, _ = m.Notice()
	assert.Empty(t, msg)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)

	cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok, "expected quit")
}

func TestCtrlCQuitsFromEveryFocus(t *testing.T) {
	ctrlC := tea.KeyMsg{Type: tea.KeyCtrlC}
	tests := []struct {
		name  string
		enter []tea.Msg
		focus tui.FocusArea
	}{
		{"list", nil, tui.FocusList},
		{"form", []tea.Msg{runes("a")}, tui.FocusForm},
		{"search", []tea.Msg{runes("/")}, tui.FocusSearch},
		{"confirm", []tea.Msg{runes("d")}, tui.FocusConfirm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := newModel(t, task.Input{Title: "Keep me", DueDate: "2024-05-10"})
			press(m, tt.enter...)
			require.Equal(t, tt.focus, m.Focus())

			cmd := press(m, ctrlC)
			require.NotNil(t, cmd)
			_, ok := cmd().(tea.QuitMsg)
			assert.True(t, ok, "expected quit")
			assert.Equal(t, 1, store.Len(), "quitting must not mutate")
		})
	}
}

func TestSelectedTaskShowsShortIDAndToggleLabel(t *testing.T) {
	m, _ := newModel(t, task.Input{Title: "Only", DueDate: "2024-05-10"})

	view := m.View()
	assert.Contains(t, view, "t-1  No description")
	assert.Contains(t, view, "complete")

	press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Contains(t, m.View(), "mark as pending")
}
