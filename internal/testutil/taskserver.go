package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"taskboard/internal/task"
)

// Request is a request received by TaskServer.
type Request struct {
	Method string
	Path   string
	Body   string
	Header http.Header
}

// TaskServer is an httptest server speaking the /tasks collection protocol.
type TaskServer struct {
	*httptest.Server

	mu       sync.Mutex
	tasks    []task.Task
	nextID   int
	requests []Request
	failures map[string]int // method -> status code
}

// NewTaskServer starts a TaskServer that is closed when the test ends.
func NewTaskServer(t testing.TB, seed ...task.Task) *TaskServer {
	t.Helper()
	s := &TaskServer{nextID: 1, failures: make(map[string]int)}
	for _, tk := range seed {
		if tk.ID == "" {
			tk.ID = strconv.Itoa(s.nextID)
		}
		if n, err := strconv.Atoi(tk.ID); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
		s.tasks = append(s.tasks, tk)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", s.list)
	mux.HandleFunc("POST /tasks", s.create)
	mux.HandleFunc("PUT /tasks/{id}", s.update)
	mux.HandleFunc("DELETE /tasks/{id}", s.remove)

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Close)
	return s
}

// TasksURL returns the collection endpoint.
func (s *TaskServer) TasksURL() string {
	return s.URL + "/tasks"
}

// Fail makes every request with method answer with code until cleared.
func (s *TaskServer) Fail(method string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = code
}

// ClearFailures removes all injected failures.
func (s *TaskServer) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]int)
}

// Requests returns every request received so far.
func (s *TaskServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Tasks returns a snapshot of the stored collection.
func (s *TaskServer) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Body:   string(body),
			Header: r.Header.Clone(),
		})
		code, failing := s.failures[r.Method]
		s.mu.Unlock()

		if failing {
			http.Error(w, http.StatusText(code), code)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *TaskServer) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Tasks())
}

func (s *TaskServer) create(w http.ResponseWriter, r *http.Request) {
	var tk task.Task
	if err := json.NewDecoder(r.Body).Decode(&tk); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	tk.ID = strconv.Itoa(s.nextID)
	s.nextID++
	s.tasks = append(s.tasks, tk)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, tk)
}

func (s *TaskServer) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	tk := s.tasks[i]
	if raw, ok := fields["description"]; ok {
		if err := json.Unmarshal(raw, &tk.Description); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if raw, ok := fields["status"]; ok {
		if err := json.Unmarshal(raw, &tk.Status); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if raw, ok := fields["date"]; ok {
		if err := json.Unmarshal(raw, &tk.Date); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	s.tasks[i] = tk
	writeJSON(w, http.StatusOK, tk)
}

func (s *TaskServer) remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *TaskServer) index(id string) int {
	for i, tk := range s.tasks {
		if tk.ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
