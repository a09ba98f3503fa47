package view_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/backend/rest"
	"taskboard/internal/task"
	"taskboard/internal/testutil"
	"taskboard/internal/view"
)

func restBoard(t *testing.T, srv *testutil.TaskServer) *view.Board {
	t.Helper()
	client, err := rest.NewWithHTTPClient(srv.TasksURL(), srv.Client(), nil)
	require.NoError(t, err)
	return newBoard(client)
}

func TestRun_CreateBuyMilk(t *testing.T) {
	srv := testutil.NewTaskServer(t)
	b := restBoard(t, srv)
	ctx := context.Background()

	require.NoError(t, view.Run(ctx, b, b.Load()))
	b.SetInput("Buy milk")
	require.NoError(t, view.Run(ctx, b, b.Add()))

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[1].Method)
	assert.Equal(t, "/tasks", reqs[1].Path)
	assert.JSONEq(t, `{"id":null,"description":"Buy milk","status":"PENDIENTE","date":"Mon, 04 Mar 2019 12:00:00 GMT"}`, reqs[1].Body)

	pending := b.Items(task.PendingList)
	require.Len(t, pending, 1)
	assert.Equal(t, "1", pending[0].Task.ID)
	assert.Equal(t, "Buy milk", pending[0].Label)
	assert.False(t, pending[0].Checked)
}

func TestRun_DeleteSeven(t *testing.T) {
	srv := testutil.NewTaskServer(t,
		task.Task{ID: "7", Description: "Buy bread", Status: task.Done},
	)
	b := restBoard(t, srv)
	ctx := context.Background()

	require.NoError(t, view.Run(ctx, b, b.Load()))
	require.NoError(t, view.Run(ctx, b, b.Delete("7")))

	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.Equal(t, "/tasks/7", last.Path)
	_, ok := b.Lookup("7")
	assert.False(t, ok)
}

func TestRun_ToggleFailureKeepsList(t *testing.T) {
	srv := testutil.NewTaskServer(t,
		task.Task{ID: "1", Description: "a", Status: task.Pending},
	)
	b := restBoard(t, srv)
	ctx := context.Background()
	require.NoError(t, view.Run(ctx, b, b.Load()))

	srv.Fail(http.MethodPut, http.StatusInternalServerError)
	require.NoError(t, view.Run(ctx, b, b.Toggle("1")))

	item, ok := b.Lookup("1")
	require.True(t, ok)
	assert.Equal(t, task.PendingList, item.List())
	assert.Equal(t, view.MsgUpdateFailed+" (código 500)", b.Banner().Text)
}

func TestRun_ConcurrentOperations(t *testing.T) {
	srv := testutil.NewTaskServer(t,
		task.Task{ID: "1", Description: "a", Status: task.Pending},
		task.Task{ID: "2", Description: "b", Status: task.Pending},
		task.Task{ID: "3", Description: "c", Status: task.Done},
	)
	b := restBoard(t, srv)
	ctx := context.Background()
	require.NoError(t, view.Run(ctx, b, b.Load()))

	b.SetInput("d")
	require.NoError(t, view.Run(ctx, b, b.Toggle("1"), b.Cancel("2"), b.Delete("3"), b.Add()))

	assert.Equal(t, 0, b.InFlight())
	assert.Equal(t, []string{"4"}, ids(b.Items(task.PendingList)))
	assert.Equal(t, []string{"1"}, ids(b.Items(task.CompletedList)))
	assert.Equal(t, []string{"2"}, ids(b.Items(task.CanceledList)))
}

func TestRun_FollowsBatches(t *testing.T) {
	b := newBoard(testutil.NewFakeStore(task.Task{Description: "a"}))

	require.NoError(t, view.Run(context.Background(), b, tea.Batch(b.Load(), nil, func() tea.Msg { return nil })))

	assert.Equal(t, 1, b.Len())
}

func TestRun_StopsOnContextDone(t *testing.T) {
	b := newBoard(testutil.NewFakeStore())
	blocked := make(chan struct{})
	defer close(blocked)

	// A command that never answers keeps the board waiting.
	b.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := view.Run(ctx, b, func() tea.Msg { <-blocked; return nil })

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
