package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"taskboard/internal/output"
	"taskboard/internal/task"
	"taskboard/internal/view"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	List      task.List // list addressed by position
	TaskNum   int       // 1-based position in List
	HasLetter bool      // true if a list letter was provided
	ID        string    // set for #<id> references
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the task reference at the head of args and returns the
// arguments that follow it.
//
// Accepted forms:
//  1. all digits: position in the pending list (3)
//  2. <letter><digits>: position in the lettered list (c2)
//  3. <letter> <digits>: same, separated (x 1)
//  4. #<id>: task identifier (#42)
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	first := args[0]

	if id, ok := strings.CutPrefix(first, "#"); ok {
		if id == "" {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{ID: id}, args[1:], nil
	}

	if isAllDigits(first) {
		num, err := strconv.Atoi(first)
		if err != nil {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{List: task.PendingList, TaskNum: num}, args[1:], nil
	}

	if first == "" || !isLetter(rune(first[0])) {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
	}

	letter := rune(first[0])
	digits, rest := first[1:], args[1:]
	if digits == "" {
		if len(rest) == 0 {
			return TaskRef{}, nil, ErrTaskRefRequired
		}
		digits, rest = rest[0], rest[1:]
	}
	if !isAllDigits(digits) {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
	}

	list, ok := output.ListForLetter(letter)
	if !ok {
		return TaskRef{}, nil, fmt.Errorf("unknown list letter: %c", letter)
	}
	num, err := strconv.Atoi(digits)
	if err != nil {
		return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
	}
	return TaskRef{List: list, TaskNum: num, HasLetter: true}, rest, nil
}

// String formats the reference the way it is typed.
func (r TaskRef) String() string {
	if r.ID != "" {
		return "#" + r.ID
	}
	return fmt.Sprintf("%c%d", output.ListLetter(r.List), r.TaskNum)
}

// ResolveTaskRef finds the item a reference points to on a loaded board.
func ResolveTaskRef(b *view.Board, ref TaskRef) (view.Item, error) {
	if ref.ID != "" {
		it, ok := b.Lookup(ref.ID)
		if !ok {
			return view.Item{}, fmt.Errorf("task not found: %s", ref)
		}
		return it, nil
	}

	items := b.Items(ref.List)
	if ref.TaskNum < 1 || ref.TaskNum > len(items) {
		return view.Item{}, fmt.Errorf("task number out of range: %s", ref)
	}
	return items[ref.TaskNum-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isLetter returns true if r is a lowercase letter a-z.
func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}
