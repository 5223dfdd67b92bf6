package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"taskpad/internal/query"
	"taskpad/internal/task"
)

// MinIDPrefix is the shortest id prefix accepted as a task reference.
const MinIDPrefix = 4

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num      int    // 1-based list number, 0 if not numeric
	IDPrefix string // lowercased id prefix, empty if too short
}

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → error: task reference required
// 2. More than one arg → error: too many arguments
// 3. All digits → list number (and id prefix if long enough)
// 4. At least MinIDPrefix characters → id prefix
// 5. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}

	ref := strings.TrimSpace(args[0])
	if ref == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	var r TaskRef
	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		if num < 1 && len(ref) < MinIDPrefix {
			return TaskRef{}, fmt.Errorf("task number out of range: %d", num)
		}
		r.Num = num
	}
	if len(ref) >= MinIDPrefix {
		r.IDPrefix = strings.ToLower(ref)
	}
	if r.Num == 0 && r.IDPrefix == "" {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
	}
	return r, nil
}

// Numbered returns the tasks in the order `list` numbers them: every task,
// sorted by due date.
func Numbered(tasks []task.Task) []task.Task {
	return query.Apply(tasks, query.Filter{Status: query.StatusAll})
}

// Resolve finds the task ref points at. A number within the list wins
// over an id prefix made of the same digits.
func (r TaskRef) Resolve(tasks []task.Task) (task.Task, error) {
	if r.Num > 0 {
		ordered := Numbered(tasks)
		if r.Num <= len(ordered) {
			return ordered[r.Num-1], nil
		}
		if r.IDPrefix == "" {
			return task.Task{}, fmt.Errorf("task number out of range: %d", r.Num)
		}
	}
	if r.IDPrefix == "" {
		return task.Task{}, fmt.Errorf("task number out of range: %d", r.Num)
	}

	var matches []task.Task
	for _, t := range tasks {
		if strings.EqualFold(t.ID, r.IDPrefix) {
			return t, nil
		}
		if strings.HasPrefix(strings.ToLower(t.ID), r.IDPrefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		if r.Num > 0 {
			return task.Task{}, fmt.Errorf("task number out of range: %d", r.Num)
		}
		return task.Task{}, &task.NotFoundError{ID: r.IDPrefix}
	case 1:
		return matches[0], nil
	}
	return task.Task{}, fmt.Errorf("ambiguous task reference: %s", r.IDPrefix)
}

// resolveArgs parses and resolves a reference, printing any error.
// ok is false when the command should exit with exitcode.UserError.
func resolveArgs(store *task.Store, args []string, errOut io.Writer) (task.Task, bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, false
	}
	t, err := ref.Resolve(store.All())
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return task.Task{}, false
	}
	return t, true
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
