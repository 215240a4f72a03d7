package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in process memory. Used for development and
// unit tests; nothing survives a restart.
type MemoryBackend struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{store: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.store[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }

func (m *MemoryBackend) Close() error { return nil }
