// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"taskboard/internal/store"
	"taskboard/internal/task"
)

// FakeStore is an in-memory implementation of store.Store for testing.
// Ids are assigned sequentially starting at 1.
type FakeStore struct {
	mu     sync.Mutex
	tasks  []task.Task
	nextID int
	calls  []string

	// Error injection for testing
	ListErr      error
	CreateErr    error
	UpdateErr    error
	SetStatusErr error
	DeleteErr    error
}

// NewFakeStore creates a FakeStore holding the given tasks.
// Tasks without an id are assigned one.
func NewFakeStore(tasks ...task.Task) *FakeStore {
	f := &FakeStore{nextID: 1}
	for _, t := range tasks {
		f.Add(t)
	}
	return f
}

// Add stores t directly, assigning an id if it has none, and returns it.
func (f *FakeStore) Add(t task.Task) task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = strconv.Itoa(f.nextID)
		f.nextID++
	} else if n, err := strconv.Atoi(t.ID); err == nil && n >= f.nextID {
		f.nextID = n + 1
	}
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a snapshot of the stored tasks.
func (f *FakeStore) Tasks() []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Get returns the stored task with id.
func (f *FakeStore) Get(id string) (task.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return f.tasks[i], true
}

// Calls returns the operations performed so far, e.g. "update 3".
func (f *FakeStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeStore) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *FakeStore) index(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func notFound() error {
	return &store.RemoteError{StatusCode: http.StatusNotFound}
}

// List implements store.Store.
func (f *FakeStore) List(ctx context.Context) ([]task.Task, error) {
	f.record("list")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Tasks(), nil
}

// Create implements store.Store.
func (f *FakeStore) Create(ctx context.Context, t task.Task) (task.Task, error) {
	f.record("create")
	if f.CreateErr != nil {
		return task.Task{}, f.CreateErr
	}
	t.ID = ""
	return f.Add(t), nil
}

// Update implements store.Store.
func (f *FakeStore) Update(ctx context.Context, id string, t task.Task) (task.Task, error) {
	f.record("update " + id)
	if f.UpdateErr != nil {
		return task.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return task.Task{}, notFound()
	}
	t.ID = id
	f.tasks[i] = t
	return t, nil
}

// SetStatus implements store.Store.
func (f *FakeStore) SetStatus(ctx context.Context, id string, status task.Status) (task.Task, error) {
	f.record("status " + id)
	if f.SetStatusErr != nil {
		return task.Task{}, f.SetStatusErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return task.Task{}, notFound()
	}
	f.tasks[i].Status = status
	return f.tasks[i], nil
}

// Delete implements store.Store.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	f.record("delete " + id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return notFound()
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

var _ store.Store = (*FakeStore)(nil)
