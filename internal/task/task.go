// Package task holds the task data model and the write-through task store.
package task

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the persisted and accepted due date format.
const DateLayout = "2006-01-02"

// Priority is a task's importance.
type Priority string

// Priorities in ascending order of importance.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when none is given.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Next cycles low -> medium -> high -> low. Unknown values become medium.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	case PriorityHigh:
		return PriorityLow
	}
	return DefaultPriority
}

// ParsePriority parses a priority name, case-insensitively.
// An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.Valid() {
		return "", &ValidationError{
			Field:   "priority",
			Message: fmt.Sprintf("invalid priority: %s (want low, medium or high)", s),
		}
	}
	return p, nil
}

// Task is a single to-do record.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"dueDate"` // YYYY-MM-DD
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Due parses the task's due date.
func (t Task) Due() (time.Time, error) {
	return ParseDate(t.DueDate)
}

// Overdue reports whether the task is pending and due strictly before today.
// Tasks with an unparseable due date are never overdue.
func (t Task) Overdue(today time.Time) bool {
	if t.Completed {
		return false
	}
	due, err := t.Due()
	if err != nil {
		return false
	}
	return due.Before(DateOf(today))
}

// Input carries the user-editable fields for create and update.
type Input struct {
	Title       string
	Description string
	DueDate     string
	Priority    Priority
}

// normalize trims the input and validates every field.
func (in Input) normalize() (Input, error) {
	out := Input{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		DueDate:     strings.TrimSpace(in.DueDate),
	}

	if out.Title == "" {
		return Input{}, &ValidationError{Field: "title", Message: "Task title cannot be empty"}
	}

	if out.DueDate == "" {
		return Input{}, &ValidationError{Field: "dueDate", Message: "Due date is required"}
	}
	if _, err := ParseDate(out.DueDate); err != nil {
		return Input{}, &ValidationError{
			Field:   "dueDate",
			Message: fmt.Sprintf("invalid due date: %s (want YYYY-MM-DD)", out.DueDate),
		}
	}

	p, err := ParsePriority(string(in.Priority))
	if err != nil {
		return Input{}, err
	}
	out.Priority = p

	return out, nil
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateOf returns the calendar date of t (in t's location) as midnight UTC,
// comparable with values returned by ParseDate.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Tomorrow returns the calendar day after now, formatted with DateLayout.
func Tomorrow(now time.Time) string {
	return DateOf(now).AddDate(0, 0, 1).Format(DateLayout)
}
