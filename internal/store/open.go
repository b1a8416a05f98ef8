package store

import (
	"fmt"
	"path/filepath"

	"taskpad/internal/config"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// OpenSlot opens the slot backend named by cfg.Backend inside cfg.DataDir.
// Failures wrap ErrStorageUnavailable.
func OpenSlot(cfg *config.Config) (Slot, error) {
	var (
		slot Slot
		err  error
	)
	switch cfg.Backend {
	case BackendFile, "":
		slot = NewFileSlot(cfg.DataDir)
	case BackendSQLite:
		slot, err = OpenSQLite(filepath.Join(cfg.DataDir, "taskpad.db"))
	case BackendBolt:
		slot, err = OpenBolt(filepath.Join(cfg.DataDir, "taskpad.bolt"))
	case BackendMemory:
		slot = NewMemorySlot()
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	cfg.Logger().Debug("opened storage", "backend", cfg.Backend, "dir", cfg.DataDir)
	return slot, nil
}

// Open opens the configured slot and wraps it in a BlobStore.
func Open(cfg *config.Config) (*BlobStore, error) {
	slot, err := OpenSlot(cfg)
	if err != nil {
		return nil, err
	}
	return NewBlobStore(slot, WithLogger(cfg.Logger())), nil
}
