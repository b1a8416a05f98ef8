package store

import (
	"context"
	"sync"
)

// MemorySlot is an in-process Slot. Error fields inject failures for tests.
type MemorySlot struct {
	mu   sync.Mutex
	data map[string][]byte

	GetErr error
	SetErr error

	// Sets counts successful writes.
	Sets int
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: make(map[string][]byte)}
}

// Get implements Slot.
func (m *MemorySlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements Slot.
func (m *MemorySlot) Set(ctx context.Context, key string, data []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(data))
	copy(v, data)
	m.data[key] = v
	m.Sets++
	return nil
}

// Close implements Slot.
func (m *MemorySlot) Close() error { return nil }

// Raw returns the stored bytes for key, or nil.
func (m *MemorySlot) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}
