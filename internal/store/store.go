// Package store defines the backend-agnostic contract for the remote task collection.
package store

import (
	"context"

	"taskboard/internal/task"
)

// Store is the remote collection of record.
// Every method is one logical operation and keeps no state between calls.
// A backend may need more than one request for it; see googletasks SetStatus.
// Every error returned is a *RemoteError.
type Store interface {
	// List returns the full collection.
	List(ctx context.Context) ([]task.Task, error)

	// Create persists an unsaved task and returns the stored version,
	// carrying the identifier assigned by the store.
	Create(ctx context.Context, t task.Task) (task.Task, error)

	// Update replaces the task with the given id.
	Update(ctx context.Context, id string, t task.Task) (task.Task, error)

	// SetStatus sends a status-only update.
	SetStatus(ctx context.Context, id string, status task.Status) (task.Task, error)

	// Delete removes the task with the given id.
	Delete(ctx context.Context, id string) error
}
