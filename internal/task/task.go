// Package task defines the task record shared by the store and the board.
package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Task represents a single to-do item.
type Task struct {
	// ID is assigned by the store. Empty until the task is first persisted.
	ID string

	Description string
	Status      Status

	// Date is set by the client at creation time and kept verbatim afterwards.
	Date string
}

// New creates an unsaved pending task stamped with now.
func New(description string, now time.Time) Task {
	return Task{
		Description: description,
		Status:      Pending,
		Date:        now.UTC().Format(http.TimeFormat),
	}
}

// Persisted reports whether the store has assigned an identifier.
func (t Task) Persisted() bool {
	return t.ID != ""
}

// wireTask is the JSON shape exchanged with the remote collection.
type wireTask struct {
	ID          *string `json:"id"`
	Description string  `json:"description"`
	Status      Status  `json:"status"`
	Date        string  `json:"date"`
}

// MarshalJSON encodes the task, writing a null id for unsaved tasks.
func (t Task) MarshalJSON() ([]byte, error) {
	w := wireTask{
		Description: t.Description,
		Status:      t.Status,
		Date:        t.Date,
	}
	if t.ID != "" {
		id := t.ID
		w.ID = &id
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a task. The id may arrive as a string, a number or null.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		Description string          `json:"description"`
		Status      Status          `json:"status"`
		Date        string          `json:"date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}
	*t = Task{
		ID:          id,
		Description: raw.Description,
		Status:      raw.Status,
		Date:        raw.Date,
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid task id %s", raw)
	}
	return n.String(), nil
}

// StatusPatch is the body of a status-only update.
type StatusPatch struct {
	Status Status `json:"status"`
}
