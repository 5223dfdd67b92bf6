// Package query derives the visible, ordered task list from the collection.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"taskpad/internal/task"
)

// Status selects tasks by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
)

// Next cycles all -> pending -> completed -> all.
func (s Status) Next() Status {
	switch s {
	case StatusAll:
		return StatusPending
	case StatusPending:
		return StatusCompleted
	}
	return StatusAll
}

// ParseStatus parses a status name, case-insensitively. Empty means all.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusAll, nil
	case StatusAll, StatusCompleted, StatusPending:
		return st, nil
	}
	return "", fmt.Errorf("invalid status: %s (want all, completed or pending)", s)
}

// Filter is the user-supplied criteria.
type Filter struct {
	Search string
	Status Status
}

// Matches reports whether t passes both the text and the status predicate.
func (f Filter) Matches(t task.Task) bool {
	return f.matchesText(t) && f.matchesStatus(t)
}

func (f Filter) matchesText(t task.Task) bool {
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

func (f Filter) matchesStatus(t task.Task) bool {
	switch f.Status {
	case StatusCompleted:
		return t.Completed
	case StatusPending:
		return !t.Completed
	}
	return true
}

// Apply returns the tasks matching f, ordered by ascending due date.
// The sort is stable, so equal due dates keep insertion order. Tasks whose
// due date does not parse come after all valid dates, in insertion order.
// The input slice is not modified.
func Apply(tasks []task.Task, f Filter) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	SortByDue(out)
	return out
}

// SortByDue stable-sorts tasks in place by ascending due date.
func SortByDue(tasks []task.Task) {
	keys := make(map[string]dueKey, len(tasks))
	for _, t := range tasks {
		if _, ok := keys[t.DueDate]; !ok {
			keys[t.DueDate] = newDueKey(t.DueDate)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return keys[tasks[i].DueDate].less(keys[tasks[j].DueDate])
	})
}

type dueKey struct {
	valid bool
	at    time.Time
}

func newDueKey(s string) dueKey {
	at, err := task.ParseDate(s)
	if err != nil {
		return dueKey{}
	}
	return dueKey{valid: true, at: at}
}

func (k dueKey) less(o dueKey) bool {
	if k.valid != o.valid {
		return k.valid
	}
	return k.valid && k.at.Before(o.at)
}

// Summary counts tasks by state.
type Summary struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
}

// Counts summarises tasks as of today.
func Counts(tasks []task.Task, today time.Time) Summary {
	var s Summary
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		if t.Overdue(today) {
			s.Overdue++
		}
	}
	return s
}
