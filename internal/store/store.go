// Package store persists the task collection as a single blob in a key-value slot.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"

	"taskpad/internal/logging"
	"taskpad/internal/service"
)

// DefaultKey is the slot key the task collection lives under.
const DefaultKey = "taskData"

var (
	// ErrStorageUnavailable is returned when the backend cannot be read.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageWriteFailed is returned when a write was attempted but not confirmed.
	ErrStorageWriteFailed = errors.New("storage write failed")

	// ErrCorruptData is returned when the stored blob cannot be decoded.
	ErrCorruptData = errors.New("stored task data is corrupt")
)

// Slot is a key-value backend holding raw bytes.
type Slot interface {
	// Get returns the value for key. ok is false if key was never written.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set overwrites the value for key in one operation.
	Set(ctx context.Context, key string, data []byte) error

	// Close releases the backend.
	Close() error
}

// Store loads and saves the full task collection.
type Store interface {
	Load(ctx context.Context) ([]service.Task, error)
	Save(ctx context.Context, tasks []service.Task) error
}

// Revisioner reports a fingerprint of the stored collection.
type Revisioner interface {
	Revision(ctx context.Context) (uint64, error)
}

// BlobStore implements Store over a Slot. Saves are last-writer-wins.
type BlobStore struct {
	slot   Slot
	key    string
	logger *log.Logger
}

// Option configures a BlobStore.
type Option func(*BlobStore)

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(s *BlobStore) {
		s.key = key
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *BlobStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewBlobStore creates a BlobStore on slot.
func NewBlobStore(slot Slot, opts ...Option) *BlobStore {
	s := &BlobStore{
		slot:   slot,
		key:    DefaultKey,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads and decodes the collection. A slot that was never written
// yields an empty slice.
func (s *BlobStore) Load(ctx context.Context) ([]service.Task, error) {
	data, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		s.logger.Debug("load failed", "key", s.key, "err", err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		s.logger.Debug("slot empty", "key", s.key)
		return []service.Task{}, nil
	}

	tasks, migrated, err := Decode(data)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded", "key", s.key, "tasks", len(tasks), "migrated", migrated)
	return tasks, nil
}

// Save encodes tasks and overwrites the slot.
func (s *BlobStore) Save(ctx context.Context, tasks []service.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}
	if err := s.slot.Set(ctx, s.key, data); err != nil {
		s.logger.Debug("save failed", "key", s.key, "err", err)
		return fmt.Errorf("%w: %v", ErrStorageWriteFailed, err)
	}
	s.logger.Debug("saved", "key", s.key, "tasks", len(tasks), "bytes", len(data))
	return nil
}

// Revision returns the xxhash of the stored blob, or 0 if nothing is stored.
func (s *BlobStore) Revision(ctx context.Context) (uint64, error) {
	data, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !ok {
		return 0, nil
	}
	return xxhash.Sum64(data), nil
}

// Close closes the underlying slot.
func (s *BlobStore) Close() error {
	return s.slot.Close()
}
