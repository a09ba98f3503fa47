// Package view keeps the rendered task board consistent with the store.
//
// A Board is owned by a single goroutine. Operations that reach the store
// return a tea.Cmd; running the command performs the round trip off that
// goroutine and yields a message which must be handed back to Board.Update
// on the owning goroutine. Responses may come back in any order.
package view

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"taskboard/internal/store"
	"taskboard/internal/task"
)

// DefaultBannerDelay is how long an error banner stays visible.
const DefaultBannerDelay = 5 * time.Second

// Board holds the three task lists and the state around them.
type Board struct {
	ctx   context.Context
	store store.Store
	log   *zap.Logger
	now   func() time.Time
	delay time.Duration

	lists [3][]string
	items map[string]*Item

	// epochs counts confirmed deletes per id. A response issued under an
	// older epoch belongs to a task that no longer exists, even if the
	// store has since handed the id out again. deletedAt is the value of
	// deletes when each id was last deleted.
	epochs    map[string]int
	deletedAt map[string]int
	deletes   int

	input    string
	banner   Banner
	lastErr  error
	inFlight int
	loaded   bool
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger used to trace failures.
func WithLogger(log *zap.Logger) Option {
	return func(b *Board) {
		if log != nil {
			b.log = log
		}
	}
}

// WithClock sets the clock used to stamp new tasks.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithBannerDelay sets how long the error banner stays up.
func WithBannerDelay(d time.Duration) Option {
	return func(b *Board) {
		if d > 0 {
			b.delay = d
		}
	}
}

// New creates an empty board backed by st. Store calls use ctx.
func New(ctx context.Context, st store.Store, opts ...Option) *Board {
	b := &Board{
		ctx:     ctx,
		store:   st,
		log:     zap.NewNop(),
		now:     time.Now,
		delay:   DefaultBannerDelay,
		items:   make(map[string]*Item),
		epochs:    make(map[string]int),
		deletedAt: make(map[string]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Message types carrying store results back to the board.
type (
	loadedMsg struct {
		tasks   []task.Task
		deletes int
		err     error
	}
	createdMsg struct {
		task task.Task
		err  error
	}
	toggledMsg struct {
		epoch int
		prior task.Task
		list  task.List
		index int
		task  task.Task
		err   error
	}
	canceledMsg struct {
		epoch int
		id    string
		task  task.Task
		err   error
	}
	editedMsg struct {
		epoch int
		id    string
		task  task.Task
		err   error
	}
	deletedMsg struct {
		epoch int
		id    string
		err   error
	}
)

// op is the category of a failed operation; it selects the banner message.
type op int

const (
	opLoad op = iota
	opAdd
	opUpdate
	opDelete
)

func (o op) String() string {
	switch o {
	case opLoad:
		return "load"
	case opAdd:
		return "add"
	case opUpdate:
		return "update"
	case opDelete:
		return "delete"
	}
	return "unknown"
}

func (o op) message() string {
	switch o {
	case opLoad:
		return MsgLoadFailed
	case opAdd:
		return MsgAddFailed
	case opDelete:
		return MsgDeleteFailed
	}
	return MsgUpdateFailed
}

// call counts a store operation as in flight and wraps it as a command.
func (b *Board) call(fn func(ctx context.Context, st store.Store) tea.Msg) tea.Cmd {
	b.inFlight++
	ctx, st := b.ctx, b.store
	return func() tea.Msg {
		return fn(ctx, st)
	}
}

// Load fetches the whole collection. Nothing is rendered until it arrives;
// on success the board is replaced by the fetched collection.
func (b *Board) Load() tea.Cmd {
	deletes := b.deletes
	return b.call(func(ctx context.Context, st store.Store) tea.Msg {
		tasks, err := st.List(ctx)
		return loadedMsg{tasks: tasks, deletes: deletes, err: err}
	})
}

// SetInput sets the new-task input text.
func (b *Board) SetInput(s string) {
	b.input = s
}

// Input returns the new-task input text.
func (b *Board) Input() string {
	return b.input
}

// Add submits the new-task input. An empty input is ignored. The input is
// cleared as soon as the task is submitted.
func (b *Board) Add() tea.Cmd {
	desc := b.input
	if strings.TrimSpace(desc) == "" {
		return nil
	}
	b.input = ""

	t := task.New(desc, b.now())
	return b.call(func(ctx context.Context, st store.Store) tea.Msg {
		created, err := st.Create(ctx, t)
		return createdMsg{task: created, err: err}
	})
}

// Toggle flips a task between pending and done. The item leaves the board
// until the store confirms; on failure it is put back where it was.
func (b *Board) Toggle(id string) tea.Cmd {
	it, ok := b.items[id]
	if !ok || it.Editing() || it.Deleting || it.Task.Status == task.Canceled {
		return nil
	}

	prior := it.Task
	next := prior
	next.Status = prior.Status.Toggled()
	list, index, _ := b.remove(id)
	epoch := b.epochs[id]

	return b.call(func(ctx context.Context, st store.Store) tea.Msg {
		updated, err := st.Update(ctx, id, next)
		return toggledMsg{epoch: epoch, prior: prior, list: list, index: index, task: updated, err: err}
	})
}

// Cancel moves a pending task to the canceled list. It does nothing for a
// checked, already canceled or absent item.
func (b *Board) Cancel(id string) tea.Cmd {
	it, ok := b.items[id]
	if !ok || it.Checked || it.Editing() || it.Deleting || !it.Task.Status.CanCancel() {
		return nil
	}

	epoch := b.epochs[id]
	return b.call(func(ctx context.Context, st store.Store) tea.Msg {
		updated, err := st.SetStatus(ctx, id, task.Canceled)
		return canceledMsg{epoch: epoch, id: id, task: updated, err: err}
	})
}

// Edit puts an item in edit mode. It returns false if the item is absent or
// already being edited.
func (b *Board) Edit(id string) bool {
	it, ok := b.items[id]
	if !ok || it.Editing() || it.Deleting {
		return false
	}
	it.enterEdit()
	return true
}

// SetEditText replaces the text of an item's edit input.
func (b *Board) SetEditText(id, text string) bool {
	it, ok := b.items[id]
	if !ok || !it.Editing() || it.Edit.Saving {
		return false
	}
	it.Edit.Input = text
	return true
}

// ConfirmEdit sends the edited description. The item stays in edit mode
// until the store answers.
func (b *Board) ConfirmEdit(id string) tea.Cmd {
	it, ok := b.items[id]
	if !ok || !it.Editing() || it.Edit.Saving {
		return nil
	}

	edited := it.Edit.Original
	edited.Description = it.Edit.Input
	it.Edit.Saving = true

	epoch := b.epochs[id]
	return b.call(func(ctx context.Context, st store.Store) tea.Msg {
		updated, err := st.Update(ctx, id, edited)
		return editedMsg{epoch: epoch, id: id, task: updated, err: err}
	})
}

// DiscardEdit leaves edit mode showing the unmodified task. No store call.
func (b *Board) DiscardEdit(id string) bool {
	it, ok := b.items[id]
	if !ok || !it.Editing() {
		return false
	}
	it.leaveEdit()
	return true
}

// Delete removes a task from the store, and from the board once confirmed.
func (b *Board) Delete(id string) tea.Cmd {
	it, ok := b.items[id]
	if !ok || it.Editing() || it.Deleting {
		return nil
	}
	it.Deleting = true

	epoch := b.epochs[id]
	return b.call(func(ctx context.Context, st store.Store) tea.Msg {
		return deletedMsg{epoch: epoch, id: id, err: st.Delete(ctx, id)}
	})
}

// Update applies a message produced by one of the board's commands.
// It returns a follow-up command, if any.
func (b *Board) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		b.inFlight--
		if msg.err != nil {
			return b.fail(opLoad, msg.err)
		}
		b.reset()
		for _, t := range msg.tasks {
			if t.ID == "" {
				b.log.Warn("skipping task without id", zap.String("description", t.Description))
				continue
			}
			if b.deletedAt[t.ID] > msg.deletes {
				// listed before a delete that has since been confirmed
				continue
			}
			b.render(t)
		}
		b.loaded = true

	case createdMsg:
		b.inFlight--
		if msg.err != nil {
			return b.fail(opAdd, msg.err)
		}
		if msg.task.ID == "" {
			return b.fail(opAdd, &store.RemoteError{Err: errors.New("store returned a task without id")})
		}
		b.render(msg.task)

	case toggledMsg:
		b.inFlight--
		id := msg.prior.ID
		if b.stale(id, msg.epoch) {
			return nil
		}
		if msg.err != nil {
			if _, ok := b.items[id]; !ok {
				b.insert(msg.list, msg.index, newItem(msg.prior))
			}
			return b.fail(opUpdate, msg.err)
		}
		b.render(withID(msg.task, id))

	case canceledMsg:
		b.inFlight--
		if b.stale(msg.id, msg.epoch) {
			return nil
		}
		if msg.err != nil {
			return b.fail(opUpdate, msg.err)
		}
		b.render(withID(msg.task, msg.id))

	case editedMsg:
		b.inFlight--
		if b.stale(msg.id, msg.epoch) {
			return nil
		}
		if msg.err != nil {
			if it, ok := b.items[msg.id]; ok && it.Editing() {
				it.Edit.Saving = false
			}
			return b.fail(opUpdate, msg.err)
		}
		b.render(withID(msg.task, msg.id))

	case deletedMsg:
		b.inFlight--
		if b.stale(msg.id, msg.epoch) {
			return nil
		}
		if msg.err != nil {
			if it, ok := b.items[msg.id]; ok {
				it.Deleting = false
			}
			return b.fail(opDelete, msg.err)
		}
		b.remove(msg.id)
		b.epochs[msg.id]++
		b.deletes++
		b.deletedAt[msg.id] = b.deletes

	case bannerExpiredMsg:
		b.banner.expire(msg.seq)
	}
	return nil
}

// fail traces a failed operation and raises the banner.
func (b *Board) fail(o op, err error) tea.Cmd {
	code := store.StatusCode(err)
	message := o.message()
	b.lastErr = err
	b.log.Warn(message,
		zap.String("op", o.String()),
		zap.Int("code", code),
		zap.Error(err),
	)
	return b.banner.show(bannerText(message, code), b.delay)
}

// stale reports whether a response issued under epoch refers to a task
// deleted since.
func (b *Board) stale(id string, epoch int) bool {
	return b.epochs[id] != epoch
}

func withID(t task.Task, id string) task.Task {
	if t.ID == "" {
		t.ID = id
	}
	return t
}

// render shows t, replacing any item with the same id. An item that stays in
// the same list keeps its position; otherwise it goes to the end of its new list.
func (b *Board) render(t task.Task) {
	it := newItem(t)
	if old, ok := b.items[t.ID]; ok {
		if old.list == it.list {
			b.items[t.ID] = it
			return
		}
		b.remove(t.ID)
	}
	b.lists[it.list] = append(b.lists[it.list], t.ID)
	b.items[t.ID] = it
}

// insert places it at index in list, clamped to the list bounds.
func (b *Board) insert(list task.List, index int, it *Item) {
	ids := b.lists[list]
	if index < 0 || index > len(ids) {
		index = len(ids)
	}
	ids = append(ids, "")
	copy(ids[index+1:], ids[index:])
	ids[index] = it.Task.ID
	b.lists[list] = ids
	it.list = list
	b.items[it.Task.ID] = it
}

// remove drops the item with id, reporting where it was.
func (b *Board) remove(id string) (task.List, int, bool) {
	it, ok := b.items[id]
	if !ok {
		return 0, -1, false
	}
	delete(b.items, id)
	ids := b.lists[it.list]
	for i, v := range ids {
		if v == id {
			b.lists[it.list] = append(ids[:i], ids[i+1:]...)
			return it.list, i, true
		}
	}
	return it.list, -1, true
}

func (b *Board) reset() {
	b.lists = [3][]string{}
	b.items = make(map[string]*Item)
}

// Items returns copies of the items of list in display order.
func (b *Board) Items(list task.List) []Item {
	ids := b.lists[list]
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.items[id].clone())
	}
	return out
}

// Lookup returns a copy of the item with id, if it is rendered.
func (b *Board) Lookup(id string) (Item, bool) {
	it, ok := b.items[id]
	if !ok {
		return Item{}, false
	}
	return it.clone(), true
}

// Len returns the number of rendered items.
func (b *Board) Len() int {
	return len(b.items)
}

// Banner returns the current state of the error banner.
func (b *Board) Banner() Banner {
	return b.banner
}

// Err returns the error of the most recent failed operation.
func (b *Board) Err() error {
	return b.lastErr
}

// InFlight returns the number of store operations awaiting a response.
func (b *Board) InFlight() int {
	return b.inFlight
}

// Loaded reports whether a full collection has been rendered.
func (b *Board) Loaded() bool {
	return b.loaded
}
