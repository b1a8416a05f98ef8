// Package repository implements service.Service as load-mutate-save over a
// store.Store. Every mutation reads the whole collection right before it
// writes; there is no locking, so concurrent writers follow last-writer-wins.
package repository

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"taskpad/internal/logging"
	"taskpad/internal/service"
	"taskpad/internal/store"
	"taskpad/internal/validate"
)

// IDFunc produces a new unique task ID.
type IDFunc func() string

// Options configures a Repository.
type Options struct {
	// NewID generates task IDs. Defaults to uuid.NewString.
	NewID IDFunc

	// CheckRevision refuses a save with service.ErrConflict when the stored
	// collection changed after it was loaded. Requires the store to
	// implement store.Revisioner; ignored otherwise.
	CheckRevision bool

	Logger *log.Logger
}

// Repository implements service.Service.
type Repository struct {
	store  store.Store
	newID  IDFunc
	check  bool
	logger *log.Logger
}

var _ service.Service = (*Repository)(nil)

// New creates a Repository on st.
func New(st store.Store, opts Options) *Repository {
	r := &Repository{
		store:  st,
		newID:  opts.NewID,
		logger: opts.Logger,
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	if r.logger == nil {
		r.logger = logging.Discard()
	}
	if _, ok := st.(store.Revisioner); ok {
		r.check = opts.CheckRevision
	}
	return r
}

// Close closes the store if it can be closed.
func (r *Repository) Close() error {
	if c, ok := r.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// snapshot is a loaded collection plus the revision it was loaded at.
type snapshot struct {
	tasks    []service.Task
	revision uint64
}

func (r *Repository) load(ctx context.Context) (snapshot, error) {
	var snap snapshot
	if r.check {
		rev, err := r.store.(store.Revisioner).Revision(ctx)
		if err != nil {
			return snap, err
		}
		snap.revision = rev
	}
	tasks, err := r.store.Load(ctx)
	if err != nil {
		return snap, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	snap.tasks = tasks
	return snap, nil
}

func (r *Repository) save(ctx context.Context, snap snapshot, tasks []service.Task) error {
	if r.check {
		rev, err := r.store.(store.Revisioner).Revision(ctx)
		if err != nil {
			return err
		}
		if rev != snap.revision {
			r.logger.Debug("collection changed since load", "loaded", snap.revision, "current", rev)
			return service.ErrConflict
		}
	}
	return r.store.Save(ctx, tasks)
}

// ListTasks implements service.Service.
func (r *Repository) ListTasks(ctx context.Context) ([]service.Task, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("list", "tasks", len(snap.tasks))
	return snap.tasks, nil
}

// FindTask implements service.Service.
func (r *Repository) FindTask(ctx context.Context, id string) (service.Task, error) {
	snap, err := r.load(ctx)
	if err != nil {
		return service.Task{}, err
	}
	if i := indexOf(snap.tasks, id); i >= 0 {
		return snap.tasks[i], nil
	}
	return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
}

// CreateTask implements service.Service.
func (r *Repository) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	res := validate.Validate(draft)
	if !res.Valid() {
		r.logger.Debug("create rejected", "errors", res.Errors)
		return service.Task{}, res.Err()
	}

	snap, err := r.load(ctx)
	if err != nil {
		return service.Task{}, err
	}

	task := service.Task{ID: r.newID()}
	for indexOf(snap.tasks, task.ID) >= 0 {
		task.ID = r.newID()
	}
	task.Apply(res.Fields)

	tasks := make([]service.Task, 0, len(snap.tasks)+1)
	tasks = append(tasks, snap.tasks...)
	tasks = append(tasks, task)

	if err := r.save(ctx, snap, tasks); err != nil {
		return service.Task{}, err
	}
	r.logger.Debug("created", "id", task.ID)
	return task, nil
}

// UpdateTask implements service.Service.
func (r *Repository) UpdateTask(ctx context.Context, id string, draft service.Draft) (service.Task, error) {
	res := validate.Validate(draft)
	if !res.Valid() {
		r.logger.Debug("update rejected", "id", id, "errors", res.Errors)
		return service.Task{}, res.Err()
	}

	snap, err := r.load(ctx)
	if err != nil {
		return service.Task{}, err
	}
	i := indexOf(snap.tasks, id)
	if i < 0 {
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}

	tasks := make([]service.Task, len(snap.tasks))
	copy(tasks, snap.tasks)
	tasks[i].Apply(res.Fields)

	if err := r.save(ctx, snap, tasks); err != nil {
		return service.Task{}, err
	}
	r.logger.Debug("updated", "id", id)
	return tasks[i], nil
}

// DeleteTask implements service.Service.
func (r *Repository) DeleteTask(ctx context.Context, id string) error {
	snap, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(snap.tasks, id)
	if i < 0 {
		r.logger.Debug("delete no-op", "id", id)
		return nil
	}

	tasks := make([]service.Task, 0, len(snap.tasks)-1)
	tasks = append(tasks, snap.tasks[:i]...)
	tasks = append(tasks, snap.tasks[i+1:]...)

	if err := r.save(ctx, snap, tasks); err != nil {
		return err
	}
	r.logger.Debug("deleted", "id", id)
	return nil
}

func indexOf(tasks []service.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
