package localstore

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory. Used when redis is not
// reachable at startup and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, merchantID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[storeKey(merchantID, key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, merchantID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[storeKey(merchantID, key)] = v
	return nil
}

func (m *MemoryStore) List(_ context.Context, merchantID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	prefix := storeKey(merchantID, "")
	var names []string
	for k := range m.data {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			names = append(names, k[len(prefix):])
		}
	}
	return names, nil
}

func (m *MemoryStore) Delete(_ context.Context, merchantID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, storeKey(merchantID, key))
	return nil
}
