// Package state persists per-session client state: the resolved location,
// the view preference and the dismissed event ids. Every mutation writes
// the full new value under a namespaced key.
package state

import (
	"context"
	"errors"
	"sync"
)

var ErrMissing = errors.New("state: key not found")

// Namespaces for persisted values; the session id is appended.
const (
	NamespaceLocation  = "smorg_location"
	NamespaceViewMode  = "smorg_viewMode"
	NamespaceDismissed = "smorg_dismissedEvents"
)

func Key(namespace, session string) string {
	return namespace + ":" + session
}

// KV is a string-keyed byte store. Get returns ErrMissing for absent keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrMissing
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
