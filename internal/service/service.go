// Package service defines the storage-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task repository operations.
// CLI commands and the terminal UI go through this interface and never
// touch a storage backend directly.
type Service interface {
	// ListTasks returns the full task collection in stored order.
	// Returns an empty slice if nothing has been stored yet.
	ListTasks(ctx context.Context) ([]Task, error)

	// FindTask returns the task with the given ID.
	// Returns ErrNotFound if no task has that ID.
	FindTask(ctx context.Context, id string) (Task, error)

	// CreateTask validates the draft, assigns a fresh ID and appends the task.
	// Returns a *ValidationError without touching storage if the draft is invalid.
	CreateTask(ctx context.Context, draft Draft) (Task, error)

	// UpdateTask validates the draft and replaces every field except the ID
	// of the task with the given ID. Returns ErrNotFound if absent.
	UpdateTask(ctx context.Context, id string, draft Draft) (Task, error)

	// DeleteTask removes the task with the given ID.
	// Deleting an absent ID succeeds and writes nothing.
	DeleteTask(ctx context.Context, id string) error
}
