// Package googletasks implements store.Store on the user's default Google Tasks list.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskboard/internal/config"
	"taskboard/internal/store"
	"taskboard/internal/task"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	apiNeedsAction = "needsAction"
	apiCompleted   = "completed"

	// Google Tasks has no canceled state. Canceled tasks are completed tasks
	// whose notes carry this line; the creation date is kept the same way.
	notesStatusPrefix = "status:"
	notesDatePrefix   = "date:"
)

// Client implements store.Store using the Google Tasks API.
type Client struct {
	svc    *tasks.Service
	listID string
	log    *zap.Logger
}

// New creates a Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Client, error) {
	oauthConfig, err := LoadOAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := oauthConfig.Client(ctx, token)
	return NewWithHTTPClient(ctx, httpClient, log)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, log *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{svc: svc, listID: DefaultListID, log: log}, nil
}

// List returns every task of the default list, completed and hidden included.
func (c *Client) List(ctx context.Context) ([]task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []task.Task
	err := c.svc.Tasks.List(c.listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, item := range resp.Items {
				result = append(result, fromAPI(item))
			}
			return nil
		})
	if err != nil {
		return nil, c.wrapError("list", err)
	}
	return result, nil
}

// Create inserts a new task.
func (c *Client) Create(ctx context.Context, t task.Task) (task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	t.ID = ""
	created, err := c.svc.Tasks.Insert(c.listID, toAPI(t)).Context(ctx).Do()
	if err != nil {
		return task.Task{}, c.wrapError("create", err)
	}
	return fromAPI(created), nil
}

// Update replaces a task.
func (c *Client) Update(ctx context.Context, id string, t task.Task) (task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	t.ID = id
	updated, err := c.svc.Tasks.Update(c.listID, id, toAPI(t)).Context(ctx).Do()
	if err != nil {
		return task.Task{}, c.wrapError("update", err)
	}
	return fromAPI(updated), nil
}

// SetStatus patches only the fields that encode the status. The canceled
// marker shares the notes with the date, so the task is read first: this
// takes two requests, a get and a patch.
func (c *Client) SetStatus(ctx context.Context, id string, status task.Status) (task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	current, err := c.svc.Tasks.Get(c.listID, id).Context(ctx).Do()
	if err != nil {
		return task.Task{}, c.wrapError("get", err)
	}
	existing := fromAPI(current)
	existing.Status = status
	full := toAPI(existing)

	patch := &tasks.Task{
		Status:          full.Status,
		Notes:           full.Notes,
		ForceSendFields: []string{"Notes"},
		NullFields:      full.NullFields,
	}
	updated, err := c.svc.Tasks.Patch(c.listID, id, patch).Context(ctx).Do()
	if err != nil {
		return task.Task{}, c.wrapError("patch", err)
	}
	return fromAPI(updated), nil
}

// Delete deletes a task.
func (c *Client) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do(); err != nil {
		return c.wrapError("delete", err)
	}
	return nil
}

func toAPI(t task.Task) *tasks.Task {
	at := &tasks.Task{
		Id:              t.ID,
		Title:           t.Description,
		ForceSendFields: []string{"Notes"},
	}

	var notes []string
	if t.Date != "" {
		notes = append(notes, notesDatePrefix+t.Date)
	}
	switch t.Status {
	case task.Done:
		at.Status = apiCompleted
	case task.Canceled:
		at.Status = apiCompleted
		notes = append(notes, notesStatusPrefix+task.WireCanceled)
	default:
		at.Status = apiNeedsAction
		at.NullFields = []string{"Completed"}
	}
	at.Notes = strings.Join(notes, "\n")
	return at
}

func fromAPI(at *tasks.Task) task.Task {
	t := task.Task{
		ID:          at.Id,
		Description: at.Title,
		Status:      task.Pending,
	}
	canceled := false
	for _, line := range strings.Split(at.Notes, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, notesDatePrefix):
			t.Date = strings.TrimPrefix(line, notesDatePrefix)
		case line == notesStatusPrefix+task.WireCanceled:
			canceled = true
		}
	}
	if at.Status == apiCompleted {
		t.Status = task.Done
		if canceled {
			t.Status = task.Canceled
		}
	}
	if t.Date == "" {
		if updated, err := time.Parse(time.RFC3339, at.Updated); err == nil {
			t.Date = updated.UTC().Format(http.TimeFormat)
		}
	}
	return t
}

// wrapError turns API failures into store errors carrying the HTTP status.
func (c *Client) wrapError(op string, err error) error {
	c.log.Debug("google tasks call failed", zap.String("op", op), zap.Error(err))

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &store.RemoteError{StatusCode: apiErr.Code, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &store.RemoteError{Err: fmt.Errorf("request timed out: %w", err)}
	}
	return &store.RemoteError{Err: err}
}

var _ store.Store = (*Client)(nil)
