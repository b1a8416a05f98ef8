package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"taskpad/internal/config"
	"taskpad/internal/service"
)

func openSlots(t *testing.T) map[string]Slot {
	t.Helper()
	dir := t.TempDir()

	sqlite, err := OpenSQLite(filepath.Join(dir, "sqlite", "taskpad.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	bolt, err := OpenBolt(filepath.Join(dir, "bolt", "taskpad.bolt"))
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}

	slots := map[string]Slot{
		"file":   NewFileSlot(filepath.Join(dir, "file")),
		"sqlite": sqlite,
		"bolt":   bolt,
		"memory": NewMemorySlot(),
	}
	t.Cleanup(func() {
		for _, s := range slots {
			s.Close()
		}
	})
	return slots
}

func TestSlots_GetSet(t *testing.T) {
	ctx := context.Background()
	for name, slot := range openSlots(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := slot.Get(ctx, "k"); err != nil || ok {
				t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
			}
			if err := slot.Set(ctx, "k", []byte("one")); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := slot.Set(ctx, "k", []byte("two")); err != nil {
				t.Fatalf("second Set failed: %v", err)
			}
			data, ok, err := slot.Get(ctx, "k")
			if err != nil || !ok {
				t.Fatalf("expected key present, got ok=%v err=%v", ok, err)
			}
			if string(data) != "two" {
				t.Errorf("expected last write to win, got %q", data)
			}
		})
	}
}

func TestSlots_TaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := []service.Task{sampleTask("a"), sampleTask("b")}
	want[1].Status = service.StatusCompleted

	for name, slot := range openSlots(t) {
		t.Run(name, func(t *testing.T) {
			s := NewBlobStore(slot)
			if err := s.Save(ctx, want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch\nwant %#v\ngot  %#v", want, got)
			}
		})
	}
}

func TestFileSlot_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	slot := NewFileSlot(dir)
	if err := slot.Set(context.Background(), "taskData", []byte("[]")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "taskData.json" {
		t.Errorf("expected only taskData.json, got %v", entries)
	}
	info, err := os.Stat(slot.Path("taskData"))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}
}

func TestFileSlot_Unreachable(t *testing.T) {
	// a regular file where the data directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	s := NewBlobStore(NewFileSlot(blocker))

	if _, err := s.Load(context.Background()); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
	if err := s.Save(context.Background(), nil); !errors.Is(err, ErrStorageWriteFailed) {
		t.Errorf("expected ErrStorageWriteFailed, got %v", err)
	}
}

func TestOpen_Backends(t *testing.T) {
	for _, backend := range []string{BackendFile, BackendSQLite, BackendBolt, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			cfg := &config.Config{Backend: backend, DataDir: t.TempDir()}
			s, err := Open(cfg)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer s.Close()
			tasks, err := s.Load(context.Background())
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(tasks) != 0 {
				t.Errorf("expected empty store, got %d tasks", len(tasks))
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := &config.Config{Backend: "floppy", DataDir: t.TempDir()}
	if _, err := Open(cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
