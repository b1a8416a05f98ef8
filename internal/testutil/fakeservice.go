// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskpad/internal/service"
	"taskpad/internal/validate"
)

// FakeService is an in-memory implementation of service.Service for testing.
// IDs are assigned as "task-1", "task-2", ...
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// Error injection for testing
	ListErr   error
	FindErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Writes counts successful mutations.
	Writes int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds a task with the given id and title. The description is
// derived from the title, the due date is 2024-01-01 and the status Pending.
func (f *FakeService) AddTask(id, title string) service.Task {
	return f.Seed(service.Task{
		ID:          id,
		Title:       title,
		Description: title + " details",
		DueDate:     service.NewDate(2024, time.January, 1),
		Status:      service.StatusPending,
	})
}

// Seed appends a task as-is.
func (f *FakeService) Seed(t service.Task) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	return t
}

// Tasks returns a copy of the current collection.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Tasks(), nil
}

// FindTask implements service.Service.
func (f *FakeService) FindTask(ctx context.Context, id string) (service.Task, error) {
	if f.FindErr != nil {
		return service.Task{}, f.FindErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	res := validate.Validate(draft)
	if !res.Valid() {
		return service.Task{}, res.Err()
	}
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	t := service.Task{ID: fmt.Sprintf("task-%d", f.nextID)}
	t.Apply(res.Fields)
	f.tasks = append(f.tasks, t)
	f.Writes++
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, draft service.Draft) (service.Task, error) {
	res := validate.Validate(draft)
	if !res.Valid() {
		return service.Task{}, res.Err()
	}
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Apply(res.Fields)
			f.Writes++
			return f.tasks[i], nil
		}
	}
	return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			f.Writes++
			return nil
		}
	}
	return nil
}
