package commands

import (
	"errors"
	"testing"

	"taskpad/internal/task"
)

func TestParseTaskRef_Number(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
	if ref.IDPrefix != "" {
		t.Errorf("expected no id prefix, got %q", ref.IDPrefix)
	}
}

func TestParseTaskRef_LongNumberIsAlsoPrefix(t *testing.T) {
	ref, err := ParseTaskRef([]string{"1234"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 1234 || ref.IDPrefix != "1234" {
		t.Errorf("expected Num 1234 and prefix 1234, got %+v", ref)
	}
}

func TestParseTaskRef_IDPrefix(t *testing.T) {
	ref, err := ParseTaskRef([]string{"AbCd12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 0 {
		t.Errorf("expected Num 0, got %d", ref.Num)
	}
	if ref.IDPrefix != "abcd12" {
		t.Errorf("expected lowercased prefix, got %q", ref.IDPrefix)
	}
}

func TestParseTaskRef_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, "task reference required"},
		{"blank", []string{"  "}, "task reference required"},
		{"too many", []string{"1", "2", "3"}, "too many arguments: 2 3"},
		{"zero", []string{"0"}, "task number out of range: 0"},
		{"short prefix", []string{"ab"}, "invalid task reference: ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTaskRef(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestParseTaskRef_RequiredSentinel(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func refTasks() []task.Task {
	return []task.Task{
		{ID: "abcd-1111", Title: "later", DueDate: "2024-06-01"},
		{ID: "abcd-2222", Title: "sooner", DueDate: "2024-05-01"},
		{ID: "9999-0000", Title: "digits", DueDate: "2024-07-01"},
	}
}

func TestResolve_ByNumberUsesDueOrder(t *testing.T) {
	got, err := TaskRef{Num: 1}.Resolve(refTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "sooner" {
		t.Errorf("expected 'sooner', got %q", got.Title)
	}
}

func TestResolve_NumberOutOfRange(t *testing.T) {
	_, err := TaskRef{Num: 4}.Resolve(refTasks())
	if err == nil || err.Error() != "task number out of range: 4" {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestResolve_ByPrefix(t *testing.T) {
	got, err := TaskRef{IDPrefix: "abcd-2"}.Resolve(refTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "abcd-2222" {
		t.Errorf("expected abcd-2222, got %q", got.ID)
	}
}

func TestResolve_ExactIDWins(t *testing.T) {
	tasks := append(refTasks(), task.Task{ID: "abcd", Title: "exact", DueDate: "2024-08-01"})

	got, err := TaskRef{IDPrefix: "abcd"}.Resolve(tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "exact" {
		t.Errorf("expected exact match, got %q", got.Title)
	}
}

func TestResolve_AmbiguousPrefix(t *testing.T) {
	_, err := TaskRef{IDPrefix: "abcd"}.Resolve(refTasks())
	if err == nil || err.Error() != "ambiguous task reference: abcd" {
		t.Errorf("expected ambiguous error, got %v", err)
	}
}

func TestResolve_UnknownPrefix(t *testing.T) {
	_, err := TaskRef{IDPrefix: "zzzz"}.Resolve(refTasks())
	if !errors.Is(err, task.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestResolve_LongNumberFallsBackToPrefix(t *testing.T) {
	ref, err := ParseTaskRef([]string{"9999"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := ref.Resolve(refTasks())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "digits" {
		t.Errorf("expected 'digits', got %q", got.Title)
	}

	ref, _ = ParseTaskRef([]string{"1234"})
	_, err = ref.Resolve(refTasks())
	if err == nil || err.Error() != "task number out of range: 1234" {
		t.Errorf("expected out of range error, got %v", err)
	}
}
