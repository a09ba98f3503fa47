package view

import "taskboard/internal/task"

// Item is the rendered form of one task: its list membership, checkbox and
// controls, and an optional edit state.
type Item struct {
	Task    task.Task
	Checked bool
	Label   string

	ShowCheckbox bool
	ShowEdit     bool
	ShowDelete   bool
	ShowCancel   bool

	// Edit is non-nil while the item is in edit mode.
	Edit *EditState

	// Deleting is set while a delete for this item is in flight.
	Deleting bool

	list task.List
}

// EditState replaces the label with an input and OK/Cancel controls.
type EditState struct {
	Input    string
	Original task.Task

	// Saving is set while the edited description is being sent.
	Saving bool
}

func newItem(t task.Task) *Item {
	canceled := t.Status == task.Canceled
	return &Item{
		Task:         t,
		Checked:      t.Status == task.Done,
		Label:        t.Description,
		ShowCheckbox: !canceled,
		ShowEdit:     true,
		ShowDelete:   true,
		ShowCancel:   !canceled,
		list:         t.Status.List(),
	}
}

// List returns the list the item is rendered in.
func (it *Item) List() task.List {
	return it.list
}

// Editing reports whether the item is in edit mode.
func (it *Item) Editing() bool {
	return it.Edit != nil
}

func (it *Item) enterEdit() {
	it.Edit = &EditState{Input: it.Task.Description, Original: it.Task}
	it.ShowCheckbox = false
	it.ShowEdit = false
	it.ShowDelete = false
	it.ShowCancel = false
}

// leaveEdit restores normal controls for the unmodified task.
func (it *Item) leaveEdit() {
	restored := newItem(it.Edit.Original)
	restored.list = it.list
	*it = *restored
}

func (it *Item) clone() Item {
	c := *it
	if it.Edit != nil {
		e := *it.Edit
		c.Edit = &e
	}
	return c
}
