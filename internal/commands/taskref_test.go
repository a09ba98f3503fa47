package commands

import (
	"context"
	"testing"

	"taskboard/internal/task"
	"taskboard/internal/testutil"
	"taskboard/internal/view"
)

func TestParseTaskRef_NumericOnly(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.HasLetter {
		t.Error("expected HasLetter to be false")
	}
	if ref.List != task.PendingList {
		t.Errorf("expected pending list, got %v", ref.List)
	}
	if ref.TaskNum != 5 {
		t.Errorf("expected TaskNum 5, got %d", ref.TaskNum)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining args, got %v", rest)
	}
}

func TestParseTaskRef_CombinedRef(t *testing.T) {
	ref, _, err := ParseTaskRef([]string{"c12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.HasLetter {
		t.Error("expected HasLetter to be true")
	}
	if ref.List != task.CompletedList {
		t.Errorf("expected completed list, got %v", ref.List)
	}
	if ref.TaskNum != 12 {
		t.Errorf("expected TaskNum 12, got %d", ref.TaskNum)
	}
}

func TestParseTaskRef_SeparatedRef(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"x", "3", "tail"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.List != task.CanceledList || ref.TaskNum != 3 {
		t.Errorf("unexpected ref %+v", ref)
	}
	if len(rest) != 1 || rest[0] != "tail" {
		t.Errorf("expected [tail], got %v", rest)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, rest, err := ParseTaskRef([]string{"#42", "new", "text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "42" {
		t.Errorf("expected ID 42, got %q", ref.ID)
	}
	if len(rest) != 2 {
		t.Errorf("expected 2 remaining args, got %v", rest)
	}
	if ref.String() != "#42" {
		t.Errorf("expected #42, got %q", ref.String())
	}
}

func TestParseTaskRef_Errors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "task reference required"},
		{[]string{"p"}, "task reference required"},
		{[]string{"#"}, "invalid task reference: #"},
		{[]string{"p", "x"}, "invalid task reference: p"},
		{[]string{"a1"}, "unknown list letter: a"},
		{[]string{"P1"}, "invalid task reference: P1"},
		{[]string{"-1"}, "invalid task reference: -1"},
		{[]string{"p1x"}, "invalid task reference: p1x"},
		{[]string{"٣"}, "invalid task reference: ٣"},
		{[]string{"c", "１"}, "invalid task reference: c"},
	}
	for _, tt := range tests {
		_, _, err := ParseTaskRef(tt.args)
		if err == nil {
			t.Errorf("ParseTaskRef(%v): expected error", tt.args)
			continue
		}
		if err.Error() != tt.want {
			t.Errorf("ParseTaskRef(%v): expected %q, got %q", tt.args, tt.want, err.Error())
		}
	}
}

func TestResolveTaskRef(t *testing.T) {
	st := testutil.NewFakeStore(
		task.Task{Description: "a", Status: task.Pending},
		task.Task{Description: "b", Status: task.Done},
		task.Task{Description: "c", Status: task.Pending},
	)
	b := view.New(context.Background(), st)
	if err := view.Run(context.Background(), b, b.Load()); err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		ref    TaskRef
		wantID string
	}{
		{TaskRef{List: task.PendingList, TaskNum: 2}, "3"},
		{TaskRef{List: task.CompletedList, TaskNum: 1, HasLetter: true}, "2"},
		{TaskRef{ID: "1"}, "1"},
	}
	for _, tt := range tests {
		it, err := ResolveTaskRef(b, tt.ref)
		if err != nil {
			t.Errorf("ResolveTaskRef(%s): unexpected error: %v", tt.ref, err)
			continue
		}
		if it.Task.ID != tt.wantID {
			t.Errorf("ResolveTaskRef(%s): expected #%s, got #%s", tt.ref, tt.wantID, it.Task.ID)
		}
	}

	if _, err := ResolveTaskRef(b, TaskRef{List: task.CanceledList, TaskNum: 1}); err == nil ||
		err.Error() != "task number out of range: x1" {
		t.Errorf("expected out of range error, got %v", err)
	}
	if _, err := ResolveTaskRef(b, TaskRef{ID: "9"}); err == nil || err.Error() != "task not found: #9" {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestIsAllDigits(t *testing.T) {
	for s, want := range map[string]bool{
		"0":   true,
		"042": true,
		"":    false,
		"4a":  false,
		"٣":   false, // Arabic-Indic three
		"１":   false, // fullwidth one
		"²":   false,
	} {
		if got := isAllDigits(s); got != want {
			t.Errorf("isAllDigits(%q) = %v, want %v", s, got, want)
		}
	}
}
