package googletasks

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskboard/internal/store"
	"taskboard/internal/task"
)

const testDate = "Mon, 04 Mar 2019 12:00:00 GMT"

// fakeAPI answers the subset of the Google Tasks API the client uses.
type fakeAPI struct {
	mu     sync.Mutex
	items  map[string]*tasks.Task
	order  []string
	bodies map[string]map[string]any // method -> last decoded body
	calls  []string                  // "METHOD id" per request
	fail   int
}

func newFakeAPI(t *testing.T, seed ...*tasks.Task) (*fakeAPI, *Client) {
	t.Helper()
	f := &fakeAPI{items: make(map[string]*tasks.Task), bodies: make(map[string]map[string]any)}
	for _, it := range seed {
		f.items[it.Id] = it
		f.order = append(f.order, it.Id)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/v1/lists/{list}/tasks", f.list)
	mux.HandleFunc("POST /tasks/v1/lists/{list}/tasks", f.insert)
	mux.HandleFunc("GET /tasks/v1/lists/{list}/tasks/{id}", f.get)
	mux.HandleFunc("PUT /tasks/v1/lists/{list}/tasks/{id}", f.replace)
	mux.HandleFunc("PATCH /tasks/v1/lists/{list}/tasks/{id}", f.patch)
	mux.HandleFunc("DELETE /tasks/v1/lists/{list}/tasks/{id}", f.remove)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		code := f.fail
		f.calls = append(f.calls, r.Method+" "+path.Base(r.URL.Path))
		f.mu.Unlock()
		if code != 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			_, _ = io.WriteString(w, `{"error":{"code":`+strconv.Itoa(code)+`,"message":"injected"}}`)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewWithHTTPClient(context.Background(), srv.Client(), nil, option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return f, c
}

func (f *fakeAPI) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeAPI) decode(r *http.Request) *tasks.Task {
	data, _ := io.ReadAll(r.Body)
	var raw map[string]any
	_ = json.Unmarshal(data, &raw)
	f.bodies[r.Method] = raw
	var t tasks.Task
	_ = json.Unmarshal(data, &t)
	return &t
}

func (f *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resp := &tasks.Tasks{}
	for _, id := range f.order {
		resp.Items = append(resp.Items, f.items[id])
	}
	f.writeJSON(w, resp)
}

func (f *fakeAPI) insert(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.decode(r)
	t.Id = "g" + strconv.Itoa(len(f.order)+1)
	t.Updated = "2019-03-04T12:00:00.000Z"
	f.items[t.Id] = t
	f.order = append(f.order, t.Id)
	f.writeJSON(w, t)
}

func (f *fakeAPI) get(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.items[r.PathValue("id")]
	if !ok {
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
		return
	}
	f.writeJSON(w, t)
}

func (f *fakeAPI) replace(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.decode(r)
	t.Id = r.PathValue("id")
	f.items[t.Id] = t
	f.writeJSON(w, t)
}

func (f *fakeAPI) patch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.decode(r)
	t, ok := f.items[r.PathValue("id")]
	if !ok {
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
		return
	}
	if p.Status != "" {
		t.Status = p.Status
	}
	if _, ok := f.bodies[r.Method]["notes"]; ok {
		t.Notes = p.Notes
	}
	f.writeJSON(w, t)
}

func (f *fakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.PathValue("id")
	delete(f.items, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func TestClient_ListMapsStatuses(t *testing.T) {
	_, c := newFakeAPI(t,
		&tasks.Task{Id: "a", Title: "open", Status: "needsAction", Updated: "2019-03-04T12:00:00.000Z"},
		&tasks.Task{Id: "b", Title: "done", Status: "completed", Notes: "date:" + testDate},
		&tasks.Task{Id: "c", Title: "dropped", Status: "completed", Notes: "date:" + testDate + "\nstatus:CANCELADO"},
	)

	got, err := c.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, task.Task{ID: "a", Description: "open", Status: task.Pending, Date: testDate}, got[0])
	assert.Equal(t, task.Done, got[1].Status)
	assert.Equal(t, task.Canceled, got[2].Status)
	assert.Equal(t, testDate, got[2].Date)
}

func TestClient_CreateKeepsDate(t *testing.T) {
	f, c := newFakeAPI(t)

	created, err := c.Create(context.Background(), task.Task{ID: "ignored", Description: "Buy milk", Status: task.Pending, Date: testDate})

	require.NoError(t, err)
	assert.Equal(t, "g1", created.ID)
	assert.Equal(t, "Buy milk", created.Description)
	assert.Equal(t, task.Pending, created.Status)
	assert.Equal(t, testDate, created.Date)
	assert.NotContains(t, f.bodies[http.MethodPost], "id")
}

func TestClient_SetStatusCanceled(t *testing.T) {
	f, c := newFakeAPI(t,
		&tasks.Task{Id: "a", Title: "open", Status: "needsAction", Notes: "date:" + testDate},
	)

	got, err := c.SetStatus(context.Background(), "a", task.Canceled)

	require.NoError(t, err)
	assert.Equal(t, task.Canceled, got.Status)
	assert.Equal(t, "open", got.Description)
	body := f.bodies[http.MethodPatch]
	assert.Equal(t, "completed", body["status"])
	assert.NotContains(t, body, "title")
}

func TestClient_SetStatusReadsBeforePatching(t *testing.T) {
	f, c := newFakeAPI(t,
		&tasks.Task{Id: "a", Title: "open", Status: "needsAction", Notes: "date:" + testDate},
	)

	_, err := c.SetStatus(context.Background(), "a", task.Canceled)

	require.NoError(t, err)
	assert.Equal(t, []string{"GET a", "PATCH a"}, f.calls)
	assert.Equal(t, "date:"+testDate+"\nstatus:CANCELADO", f.bodies[http.MethodPatch]["notes"])
}

func TestClient_SetStatusPendingClearsCompletion(t *testing.T) {
	f, c := newFakeAPI(t,
		&tasks.Task{Id: "a", Title: "x", Status: "completed", Notes: "status:CANCELADO"},
	)

	got, err := c.SetStatus(context.Background(), "a", task.Pending)

	require.NoError(t, err)
	assert.Equal(t, task.Pending, got.Status)
	body := f.bodies[http.MethodPatch]
	assert.Equal(t, "needsAction", body["status"])
	assert.Contains(t, body, "completed")
	assert.Nil(t, body["completed"])
}

func TestClient_UpdateAndDelete(t *testing.T) {
	f, c := newFakeAPI(t,
		&tasks.Task{Id: "a", Title: "old", Status: "needsAction"},
	)
	ctx := context.Background()

	updated, err := c.Update(ctx, "a", task.Task{Description: "new", Status: task.Done, Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, "a", updated.ID)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, task.Done, updated.Status)

	require.NoError(t, c.Delete(ctx, "a"))
	assert.Empty(t, f.items)
}

func TestClient_ErrorsCarryStatusCode(t *testing.T) {
	f, c := newFakeAPI(t)
	f.fail = http.StatusForbidden

	_, err := c.List(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, store.StatusCode(err))
	assert.True(t, store.IsAuth(err))
}

func TestClient_MissingTaskIsNotFound(t *testing.T) {
	_, c := newFakeAPI(t)

	_, err := c.SetStatus(context.Background(), "nope", task.Done)

	assert.Equal(t, http.StatusNotFound, store.StatusCode(err))
}

func TestFromAPI_DateFallsBackToUpdated(t *testing.T) {
	got := fromAPI(&tasks.Task{Id: "a", Status: "needsAction", Updated: "2019-03-04T09:00:00-03:00"})

	assert.Equal(t, testDate, got.Date)
}
