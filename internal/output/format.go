// Package output maps tasks to view models and formats them for the CLI.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskpad/internal/query"
	"taskpad/internal/task"
)

const (
	// EmptyState is printed when no task matches the filter.
	EmptyState = "No tasks found."

	// NoDescription stands in for an empty description.
	NoDescription = "No description"

	// InvalidDate is shown for due dates that do not parse.
	InvalidDate = "Invalid Date"

	// dueLabelLayout renders due dates, e.g. "May 5, 2024".
	dueLabelLayout = "Jan 2, 2006"

	// shortIDLen is the id prefix length shown in listings.
	shortIDLen = 8
)

// Item is the view model of one rendered task.
type Item struct {
	Num         int // list number, 1-based
	ID          string
	ShortID     string
	Title       string
	Description string // NoDescription when empty
	HasDesc     bool
	DueDate     string // raw YYYY-MM-DD
	DueLabel    string
	Priority    task.Priority
	Completed   bool
	Overdue     bool
	ToggleLabel string // label of the toggle action
	CreatedAt   time.Time
}

// NewItem builds the view model of t as of today.
func NewItem(t task.Task, today time.Time) Item {
	item := Item{
		ID:          t.ID,
		ShortID:     ShortID(t.ID),
		Title:       normalizeTitle(t.Title),
		Description: t.Description,
		HasDesc:     strings.TrimSpace(t.Description) != "",
		DueDate:     t.DueDate,
		DueLabel:    FormatDue(t.DueDate),
		Priority:    t.Priority,
		Completed:   t.Completed,
		Overdue:     t.Overdue(today),
		ToggleLabel: "Complete",
		CreatedAt:   t.CreatedAt,
	}
	if !item.HasDesc {
		item.Description = NoDescription
	}
	if t.Completed {
		item.ToggleLabel = "Mark as Pending"
	}
	return item
}

// Items maps tasks to view models numbered by position.
func Items(tasks []task.Task, today time.Time) []Item {
	items := make([]Item, len(tasks))
	for i, t := range tasks {
		items[i] = NewItem(t, today)
		items[i].Num = i + 1
	}
	return items
}

// FormatDue renders a YYYY-MM-DD date as "May 5, 2024".
func FormatDue(s string) string {
	d, err := task.ParseDate(s)
	if err != nil {
		return InvalidDate
	}
	return d.Format(dueLabelLayout)
}

// ShortID returns the leading characters of id used in listings.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// Checkbox renders the completion marker.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// FormatItem writes one numbered list line.
// Format: "{N:>4}  {[ ]|[x]}  {DUE:<12}  {PRIORITY:<6}  {TITLE}[ (overdue)]\n"
func FormatItem(w io.Writer, num int, item Item) {
	suffix := ""
	if item.Overdue {
		suffix = " (overdue)"
	}
	fmt.Fprintf(w, "%4d  %s  %-12s  %-6s  %s%s\n",
		num, Checkbox(item.Completed), item.DueLabel, item.Priority, item.Title, suffix)
}

// RenderList writes items under their Num, or the empty state.
func RenderList(w io.Writer, items []Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, EmptyState)
		return
	}
	for _, item := range items {
		FormatItem(w, item.Num, item)
	}
}

// RenderSummary writes the footer line with task counts.
func RenderSummary(w io.Writer, s query.Summary) {
	fmt.Fprintf(w, "%d tasks, %d pending, %d completed", s.Total, s.Pending, s.Completed)
	if s.Overdue > 0 {
		fmt.Fprintf(w, ", %d overdue", s.Overdue)
	}
	fmt.Fprintln(w)
}

// RenderDetail writes every field of one task.
func RenderDetail(w io.Writer, item Item) {
	due := item.DueLabel
	if item.Overdue {
		due += " (overdue)"
	}
	status := "pending"
	if item.Completed {
		status = "completed"
	}

	fmt.Fprintf(w, "ID:          %s\n", item.ID)
	fmt.Fprintf(w, "Title:       %s\n", item.Title)
	fmt.Fprintf(w, "Description: %s\n", item.Description)
	fmt.Fprintf(w, "Due:         %s\n", due)
	fmt.Fprintf(w, "Priority:    %s\n", item.Priority)
	fmt.Fprintf(w, "Status:      %s\n", status)
	fmt.Fprintf(w, "Created:     %s\n", item.CreatedAt.Local().Format("2006-01-02 15:04"))
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
