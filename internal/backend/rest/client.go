// Package rest implements store.Store against the remote /tasks JSON collection.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"taskboard/internal/config"
	"taskboard/internal/store"
	"taskboard/internal/task"
)

const (
	// RequestIDHeader carries a fresh UUID on every round trip.
	RequestIDHeader = "X-Request-ID"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 10 << 20
)

// Client implements store.Store over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a REST client from config.
// When cfg.Token is set every request carries it as a bearer token.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Client, error) {
	base := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	httpClient := base
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), src)
		httpClient.Timeout = cfg.Timeout
	}

	return NewWithHTTPClient(cfg.APIURL, httpClient, log)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url: %s", baseURL)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    httpClient,
		log:     log,
	}, nil
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create posts an unsaved task. The id is always sent as null.
func (c *Client) Create(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = ""
	var created task.Task
	if err := c.do(ctx, http.MethodPost, c.baseURL, t, &created); err != nil {
		return task.Task{}, err
	}
	return created, nil
}

// Update replaces a task with a full body.
func (c *Client) Update(ctx context.Context, id string, t task.Task) (task.Task, error) {
	target, err := c.taskURL(id)
	if err != nil {
		return task.Task{}, err
	}
	t.ID = id
	var updated task.Task
	if err := c.do(ctx, http.MethodPut, target, t, &updated); err != nil {
		return task.Task{}, err
	}
	return updated, nil
}

// SetStatus sends a body containing only the status field.
func (c *Client) SetStatus(ctx context.Context, id string, status task.Status) (task.Task, error) {
	target, err := c.taskURL(id)
	if err != nil {
		return task.Task{}, err
	}
	var updated task.Task
	if err := c.do(ctx, http.MethodPut, target, task.StatusPatch{Status: status}, &updated); err != nil {
		return task.Task{}, err
	}
	return updated, nil
}

// Delete removes a task. Any response body is ignored.
func (c *Client) Delete(ctx context.Context, id string) error {
	target, err := c.taskURL(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, target, nil, nil)
}

func (c *Client) taskURL(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", &store.RemoteError{Err: errors.New("task id required")}
	}
	return c.baseURL + "/" + url.PathEscape(id), nil
}

// do performs one round trip. body and out may be nil.
func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &store.RemoteError{Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &store.RemoteError{Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("store request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.String("request_id", reqID),
			zap.Error(err),
		)
		return &store.RemoteError{Err: err}
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))

	c.log.Debug("store round trip",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &store.RemoteError{StatusCode: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if readErr != nil {
		return &store.RemoteError{Err: fmt.Errorf("read response: %w", readErr)}
	}
	if err := decodeBody(data, out); err != nil {
		return &store.RemoteError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeBody unmarshals data into out. Some deployments of the collection
// answer with the JSON document encoded as a JSON string; that is unwrapped
// once.
func decodeBody(data []byte, out any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("empty body")
	}
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		data = []byte(inner)
	}
	return json.Unmarshal(data, out)
}
