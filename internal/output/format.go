// Package output renders the task board as text.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/task"
	"taskboard/internal/view"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"
)

var listTitles = map[task.List]string{
	task.PendingList:   "Pendientes",
	task.CompletedList: "Terminadas",
	task.CanceledList:  "Canceladas",
}

var listLetters = map[task.List]rune{
	task.PendingList:   'p',
	task.CompletedList: 'c',
	task.CanceledList:  'x',
}

// ListTitle returns the heading shown for a list.
func ListTitle(l task.List) string {
	return listTitles[l]
}

// ListLetter returns the letter that addresses a list in task references.
func ListLetter(l task.List) rune {
	return listLetters[l]
}

// ListForLetter maps a task reference letter back to its list.
func ListForLetter(r rune) (task.List, bool) {
	for l, letter := range listLetters {
		if letter == r {
			return l, true
		}
	}
	return 0, false
}

// Board is the read side of view.Board used for rendering.
type Board interface {
	Items(list task.List) []view.Item
	Banner() view.Banner
}

// FormatBoard writes the banner, if visible, followed by the three lists.
func FormatBoard(w io.Writer, b Board) {
	FormatBanner(w, b.Banner())
	for _, l := range task.Lists {
		items := b.Items(l)
		FormatListHeader(w, l, len(items))
		for i, it := range items {
			FormatItem(w, ListLetter(l), i+1, it)
		}
	}
}

// FormatBanner writes a visible banner as a single line.
func FormatBanner(w io.Writer, bn view.Banner) {
	if !bn.Visible {
		return
	}
	fmt.Fprintf(w, "! %s\n", bn.Text)
}

// FormatListHeader formats a list section header.
func FormatListHeader(w io.Writer, l task.List, count int) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s (%d)\n", ListTitle(l), count)
	fmt.Fprintln(w, ListSeparator)
}

// FormatItem formats one rendered item.
// Format: "{L}{N:<3} {BOX} {LABEL}  #{ID}\n"
func FormatItem(w io.Writer, letter rune, num int, it view.Item) {
	fmt.Fprintf(w, "%c%-3d %s %s  #%s\n", letter, num, Checkbox(it), ItemLabel(it), it.Task.ID)
}

// Checkbox renders the checkbox state of an item.
func Checkbox(it view.Item) string {
	switch {
	case it.Editing() || !it.ShowCheckbox:
		return "[-]"
	case it.Checked:
		return "[x]"
	}
	return "[ ]"
}

// ItemLabel renders the label, or the edit input and its controls.
func ItemLabel(it view.Item) string {
	if it.Editing() {
		s := fmt.Sprintf("> %s [OK] [Cancelar]", singleLine(it.Edit.Input))
		if it.Edit.Saving {
			s += " ..."
		}
		return s
	}
	label := normalizeLabel(it.Label)
	if it.Deleting {
		label += " ..."
	}
	return label
}

// normalizeLabel normalizes a task description for display.
// Empty or whitespace-only descriptions become "(sin descripción)".
func normalizeLabel(label string) string {
	label = singleLine(label)
	if strings.TrimSpace(label) == "" {
		return "(sin descripción)"
	}
	return label
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
